package dto

import (
	"time"

	"github.com/google/uuid"

	"schedules_backend/internals/features/schedules/exams/service"
)

type ExamCreateDTO struct {
	ExamSubjectID  uuid.UUID   `json:"exam_subject_id"            validate:"required"`
	ExamDate       *time.Time  `json:"exam_date,omitempty"`
	ExamGroupIDs   []uuid.UUID `json:"exam_group_ids"             validate:"required,min=1,dive,required"`
	ExamTeacherIDs []uuid.UUID `json:"exam_teacher_ids,omitempty" validate:"omitempty,dive,required"`
}

func (p ExamCreateDTO) ToInput() service.ExamInput {
	return service.ExamInput{
		SubjectID:  p.ExamSubjectID,
		Date:       p.ExamDate,
		GroupIDs:   p.ExamGroupIDs,
		TeacherIDs: p.ExamTeacherIDs,
	}
}

// ExamUpdateDTO replaces the group or teacher set when present; the date has its own endpoint.
type ExamUpdateDTO struct {
	ExamSubjectID  *uuid.UUID  `json:"exam_subject_id,omitempty"`
	ExamGroupIDs   []uuid.UUID `json:"exam_group_ids,omitempty"   validate:"omitempty,min=1,dive,required"`
	ExamTeacherIDs []uuid.UUID `json:"exam_teacher_ids,omitempty" validate:"omitempty,dive,required"`
}

func (p ExamUpdateDTO) ToPatch() service.ExamPatch {
	return service.ExamPatch{
		SubjectID:  p.ExamSubjectID,
		GroupIDs:   p.ExamGroupIDs,
		TeacherIDs: p.ExamTeacherIDs,
	}
}

// ExamScheduleDTO: a null date unschedules the exam.
type ExamScheduleDTO struct {
	ExamDate *time.Time `json:"exam_date"`
}
