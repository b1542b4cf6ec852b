package dto

import (
	"github.com/google/uuid"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/features/academics/subjects/service"
)

// =======================
// Subject
// =======================

type SubjectCreateDTO struct {
	SubjectShortTitle string `json:"subject_short_title" validate:"required,max=10"`
	SubjectTitle      string `json:"subject_title"       validate:"required,max=60"`
}

func (p SubjectCreateDTO) ToInput() service.SubjectInput {
	return service.SubjectInput{ShortTitle: p.SubjectShortTitle, Title: p.SubjectTitle}
}

type SubjectUpdateDTO struct {
	SubjectShortTitle *string `json:"subject_short_title,omitempty" validate:"omitempty,max=10"`
	SubjectTitle      *string `json:"subject_title,omitempty"       validate:"omitempty,max=60"`
}

func (p SubjectUpdateDTO) ToPatch() service.SubjectPatch {
	return service.SubjectPatch{ShortTitle: p.SubjectShortTitle, Title: p.SubjectTitle}
}

// =======================
// SubjectTeacher
// =======================

type SubjectTeacherCreateDTO struct {
	SubjectTeacherTeacherID    uuid.UUID `json:"subject_teacher_teacher_id"     validate:"required"`
	SubjectTeacherTypeOfLesson string    `json:"subject_teacher_type_of_lesson" validate:"required,oneof=lecture laboratory practice seminar"`
}

// ToInput takes the subject from the path.
func (p SubjectTeacherCreateDTO) ToInput(subjectID uuid.UUID) service.SubjectTeacherInput {
	return service.SubjectTeacherInput{
		SubjectID:    subjectID,
		TeacherID:    p.SubjectTeacherTeacherID,
		TypeOfLesson: constants.TypeOfLesson(p.SubjectTeacherTypeOfLesson),
	}
}
