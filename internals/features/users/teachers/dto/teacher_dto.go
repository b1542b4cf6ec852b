package dto

import (
	"time"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/features/users/teachers/service"
)

const dateLayout = "2006-01-02"

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func position(s *string) *constants.TeacherPosition {
	if s == nil || *s == "" {
		return nil
	}
	p := constants.TeacherPosition(*s)
	return &p
}

type TeacherCreateDTO struct {
	TeacherSurname    string  `json:"teacher_surname"               validate:"required,max=50"`
	TeacherFirstName  *string `json:"teacher_first_name,omitempty"  validate:"omitempty,max=50"`
	TeacherMiddleName *string `json:"teacher_middle_name,omitempty" validate:"omitempty,max=50"`
	TeacherEmail      *string `json:"teacher_email,omitempty"       validate:"omitempty,email,max=255"`
	TeacherPosition   *string `json:"teacher_position,omitempty"    validate:"omitempty,oneof=assistant lecturer senior_lecturer docent professor"`
	TeacherBirthdate  *string `json:"teacher_birthdate,omitempty"   validate:"omitempty,datetime=2006-01-02"`
}

func (p TeacherCreateDTO) ToInput() service.TeacherInput {
	return service.TeacherInput{
		Surname:    p.TeacherSurname,
		FirstName:  p.TeacherFirstName,
		MiddleName: p.TeacherMiddleName,
		Email:      p.TeacherEmail,
		Position:   position(p.TeacherPosition),
		Birthdate:  parseDate(p.TeacherBirthdate),
	}
}

// TeacherUpdateDTO: "" clears names, email, position and birthdate.
type TeacherUpdateDTO struct {
	TeacherSurname    *string `json:"teacher_surname,omitempty"     validate:"omitempty,max=50"`
	TeacherFirstName  *string `json:"teacher_first_name,omitempty"  validate:"omitempty,max=50"`
	TeacherMiddleName *string `json:"teacher_middle_name,omitempty" validate:"omitempty,max=50"`
	TeacherEmail      *string `json:"teacher_email,omitempty"       validate:"omitempty,email,max=255"`
	TeacherPosition   *string `json:"teacher_position,omitempty"    validate:"omitempty,oneof=assistant lecturer senior_lecturer docent professor"`
	TeacherBirthdate  *string `json:"teacher_birthdate,omitempty"   validate:"omitempty,datetime=2006-01-02"`
}

func (p TeacherUpdateDTO) ToPatch() service.TeacherPatch {
	return service.TeacherPatch{
		Surname:        p.TeacherSurname,
		FirstName:      p.TeacherFirstName,
		MiddleName:     p.TeacherMiddleName,
		Email:          p.TeacherEmail,
		Position:       position(p.TeacherPosition),
		ClearPosition:  p.TeacherPosition != nil && *p.TeacherPosition == "",
		Birthdate:      parseDate(p.TeacherBirthdate),
		ClearBirthdate: p.TeacherBirthdate != nil && *p.TeacherBirthdate == "",
	}
}
