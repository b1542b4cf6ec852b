package dto

import (
	"github.com/google/uuid"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/features/schedules/records/service"
)

// =======================
// Request DTO
// =======================

type RecordCreateDTO struct {
	RecordSubjectTeacherID uuid.UUID   `json:"record_subject_teacher_id" validate:"required"`
	RecordDayOfWeek        int16       `json:"record_day_of_week"        validate:"required,min=1,max=5"`
	RecordPairNum          int16       `json:"record_pair_num"           validate:"required,min=1,max=4"`
	RecordTypeOfWeek       string      `json:"record_type_of_week"       validate:"omitempty,oneof=both even odd"`
	RecordLink             *string     `json:"record_link,omitempty"     validate:"omitempty,url,max=2048"`
	RecordGroupIDs         []uuid.UUID `json:"record_group_ids"          validate:"required,min=1,dive,required"`
}

func (p RecordCreateDTO) ToInput() service.RecordInput {
	return service.RecordInput{
		SubjectTeacherID: p.RecordSubjectTeacherID,
		DayOfWeek:        constants.DayOfWeek(p.RecordDayOfWeek),
		PairNum:          constants.PairNum(p.RecordPairNum),
		TypeOfWeek:       constants.TypeOfWeek(p.RecordTypeOfWeek),
		Link:             p.RecordLink,
		GroupIDs:         p.RecordGroupIDs,
	}
}

// RecordCheckDTO is RecordCreateDTO plus the record being edited, if any.
type RecordCheckDTO struct {
	RecordCreateDTO
	RecordID *uuid.UUID `json:"record_id,omitempty"`
}

type RecordUpdateDTO struct {
	RecordSubjectTeacherID *uuid.UUID  `json:"record_subject_teacher_id,omitempty"`
	RecordDayOfWeek        *int16      `json:"record_day_of_week,omitempty"  validate:"omitempty,min=1,max=5"`
	RecordPairNum          *int16      `json:"record_pair_num,omitempty"     validate:"omitempty,min=1,max=4"`
	RecordTypeOfWeek       *string     `json:"record_type_of_week,omitempty" validate:"omitempty,oneof=both even odd"`
	// "" clears the link; anything else must be a url, as on create
	RecordLink     *string     `json:"record_link,omitempty"      validate:"omitempty,max=2048,url|len=0"`
	RecordGroupIDs []uuid.UUID `json:"record_group_ids,omitempty" validate:"omitempty,min=1,dive,required"`
}

func (p RecordUpdateDTO) ToPatch() service.RecordPatch {
	out := service.RecordPatch{
		SubjectTeacherID: p.RecordSubjectTeacherID,
		Link:             p.RecordLink,
		GroupIDs:         p.RecordGroupIDs,
	}
	if p.RecordDayOfWeek != nil {
		d := constants.DayOfWeek(*p.RecordDayOfWeek)
		out.DayOfWeek = &d
	}
	if p.RecordPairNum != nil {
		n := constants.PairNum(*p.RecordPairNum)
		out.PairNum = &n
	}
	if p.RecordTypeOfWeek != nil {
		w := constants.TypeOfWeek(*p.RecordTypeOfWeek)
		out.TypeOfWeek = &w
	}
	return out
}
