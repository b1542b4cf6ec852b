package dto

import (
	"github.com/google/uuid"

	"schedules_backend/internals/features/academics/groups/service"
)

type GroupCreateDTO struct {
	GroupName           string    `json:"group_name"              validate:"required,max=8"`
	GroupCourse         int       `json:"group_course"            validate:"required,min=1"`
	GroupFieldOfStudyID uuid.UUID `json:"group_field_of_study_id" validate:"required"`
	GroupAcademicTermID uuid.UUID `json:"group_academic_term_id"  validate:"required"`
}

func (p GroupCreateDTO) ToInput() service.GroupInput {
	return service.GroupInput{
		Name:           p.GroupName,
		Course:         p.GroupCourse,
		FieldOfStudyID: p.GroupFieldOfStudyID,
		AcademicTermID: p.GroupAcademicTermID,
	}
}

type GroupUpdateDTO struct {
	GroupName           *string    `json:"group_name,omitempty"   validate:"omitempty,max=8"`
	GroupCourse         *int       `json:"group_course,omitempty" validate:"omitempty,min=1"`
	GroupFieldOfStudyID *uuid.UUID `json:"group_field_of_study_id,omitempty"`
	GroupAcademicTermID *uuid.UUID `json:"group_academic_term_id,omitempty"`
}

func (p GroupUpdateDTO) ToPatch() service.GroupPatch {
	return service.GroupPatch{
		Name:           p.GroupName,
		Course:         p.GroupCourse,
		FieldOfStudyID: p.GroupFieldOfStudyID,
		AcademicTermID: p.GroupAcademicTermID,
	}
}
