// file: internals/features/academics/academic_terms/model/academic_term_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AcademicTermModel struct {
	AcademicTermID uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_term_id" json:"academic_term_id"`

	// Example name: "Осінній 2025"
	AcademicTermName      *string         `gorm:"type:varchar(30);column:academic_term_name" json:"academic_term_name,omitempty"`
	AcademicTermStartDate *datatypes.Date `gorm:"column:academic_term_start_date" json:"academic_term_start_date,omitempty"`
	AcademicTermEndDate   *datatypes.Date `gorm:"column:academic_term_end_date" json:"academic_term_end_date,omitempty"`

	AcademicTermCreatedAt time.Time `gorm:"not null;autoCreateTime;column:academic_term_created_at" json:"academic_term_created_at"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicTermID == uuid.Nil {
		m.AcademicTermID = uuid.New()
	}
	return nil
}

func (m *AcademicTermModel) BeforeSave(tx *gorm.DB) error {
	if m.AcademicTermName != nil {
		s := strings.TrimSpace(*m.AcademicTermName)
		if s == "" {
			m.AcademicTermName = nil
		} else {
			m.AcademicTermName = &s
		}
	}
	return nil
}
