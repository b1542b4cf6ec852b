package dto

import (
	"time"

	"github.com/google/uuid"

	"schedules_backend/internals/features/academics/academic_terms/service"
)

const dateLayout = "2006-01-02"

// parseDate expects a value that already passed the datetime validator.
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

// =======================
// Terms
// =======================

type AcademicTermCreateDTO struct {
	AcademicTermName      *string `json:"academic_term_name,omitempty"       validate:"omitempty,max=30"`
	AcademicTermStartDate *string `json:"academic_term_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AcademicTermEndDate   *string `json:"academic_term_end_date,omitempty"   validate:"omitempty,datetime=2006-01-02"`
}

func (p AcademicTermCreateDTO) ToInput() service.TermInput {
	return service.TermInput{
		Name:      p.AcademicTermName,
		StartDate: parseDate(p.AcademicTermStartDate),
		EndDate:   parseDate(p.AcademicTermEndDate),
	}
}

type AcademicTermUpdateDTO struct {
	AcademicTermName      *string `json:"academic_term_name,omitempty"       validate:"omitempty,max=30"`
	AcademicTermStartDate *string `json:"academic_term_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AcademicTermEndDate   *string `json:"academic_term_end_date,omitempty"   validate:"omitempty,datetime=2006-01-02"`
	ClearDates            bool    `json:"clear_dates,omitempty"`
}

func (p AcademicTermUpdateDTO) ToPatch() service.TermPatch {
	return service.TermPatch{
		Name:       p.AcademicTermName,
		StartDate:  parseDate(p.AcademicTermStartDate),
		EndDate:    parseDate(p.AcademicTermEndDate),
		ClearDates: p.ClearDates,
	}
}

// =======================
// Years
// =======================

type AcademicYearCreateDTO struct {
	AcademicYearStartYear int       `json:"academic_year_start_year" validate:"required,min=1900,max=2200"`
	AcademicYearTerm1ID   uuid.UUID `json:"academic_year_term1_id"   validate:"required"`
	AcademicYearTerm2ID   uuid.UUID `json:"academic_year_term2_id"   validate:"required"`
}

func (p AcademicYearCreateDTO) ToInput() service.YearInput {
	return service.YearInput{
		StartYear: p.AcademicYearStartYear,
		Term1ID:   p.AcademicYearTerm1ID,
		Term2ID:   p.AcademicYearTerm2ID,
	}
}

type AcademicYearUpdateDTO struct {
	AcademicYearStartYear *int       `json:"academic_year_start_year,omitempty" validate:"omitempty,min=1900,max=2200"`
	AcademicYearTerm1ID   *uuid.UUID `json:"academic_year_term1_id,omitempty"`
	AcademicYearTerm2ID   *uuid.UUID `json:"academic_year_term2_id,omitempty"`
}

func (p AcademicYearUpdateDTO) ToPatch() service.YearPatch {
	return service.YearPatch{
		StartYear: p.AcademicYearStartYear,
		Term1ID:   p.AcademicYearTerm1ID,
		Term2ID:   p.AcademicYearTerm2ID,
	}
}
