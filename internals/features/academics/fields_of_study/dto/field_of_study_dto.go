package dto

import "schedules_backend/internals/features/academics/fields_of_study/service"

type FieldOfStudyCreateDTO struct {
	FieldOfStudyShortTitle string `json:"field_of_study_short_title" validate:"required,max=2"`
	FieldOfStudyTitle      string `json:"field_of_study_title"       validate:"required,max=30"`
}

func (p FieldOfStudyCreateDTO) ToInput() service.FieldOfStudyInput {
	return service.FieldOfStudyInput{ShortTitle: p.FieldOfStudyShortTitle, Title: p.FieldOfStudyTitle}
}

type FieldOfStudyUpdateDTO struct {
	FieldOfStudyShortTitle *string `json:"field_of_study_short_title,omitempty" validate:"omitempty,max=2"`
	FieldOfStudyTitle      *string `json:"field_of_study_title,omitempty"       validate:"omitempty,max=30"`
}

func (p FieldOfStudyUpdateDTO) ToPatch() service.FieldOfStudyPatch {
	return service.FieldOfStudyPatch{ShortTitle: p.FieldOfStudyShortTitle, Title: p.FieldOfStudyTitle}
}
