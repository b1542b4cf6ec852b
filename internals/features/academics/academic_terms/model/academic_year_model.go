package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYearModel pairs two distinct terms. Each term column is unique on its own;
// cross-column reuse is caught by academic_term_claims.
type AcademicYearModel struct {
	AcademicYearID        uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_year_id" json:"academic_year_id"`
	AcademicYearStartYear int       `gorm:"not null;check:chk_academic_years_start_year,academic_year_start_year BETWEEN 1900 AND 2200;column:academic_year_start_year" json:"academic_year_start_year"`
	AcademicYearTerm1ID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_academic_years_term1;column:academic_year_term1_id" json:"academic_year_term1_id"`
	AcademicYearTerm2ID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_academic_years_term2;column:academic_year_term2_id" json:"academic_year_term2_id"`

	AcademicYearCreatedAt time.Time `gorm:"not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}

// Terms returns both term references in slot order.
func (m AcademicYearModel) Terms() [2]uuid.UUID {
	return [2]uuid.UUID{m.AcademicYearTerm1ID, m.AcademicYearTerm2ID}
}

// AcademicTermClaimModel: one row per referenced term, system wide.
type AcademicTermClaimModel struct {
	TermID         uuid.UUID `gorm:"type:uuid;primaryKey;column:term_id" json:"term_id"`
	AcademicYearID uuid.UUID `gorm:"type:uuid;not null;index:idx_academic_term_claims_year;column:academic_year_id" json:"academic_year_id"`
	Slot           int16     `gorm:"not null;check:chk_academic_term_claims_slot,slot IN (1, 2);column:slot" json:"slot"`
}

func (AcademicTermClaimModel) TableName() string { return "academic_term_claims" }
