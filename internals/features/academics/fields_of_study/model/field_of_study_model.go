package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// short_title is not unique on purpose, see DESIGN.md.
type FieldOfStudyModel struct {
	FieldOfStudyID         uuid.UUID `gorm:"type:uuid;primaryKey;column:field_of_study_id" json:"field_of_study_id"`
	FieldOfStudyShortTitle string    `gorm:"type:varchar(2);not null;index:idx_fields_of_study_short_title;column:field_of_study_short_title" json:"field_of_study_short_title"`
	FieldOfStudyTitle      string    `gorm:"type:varchar(30);not null;column:field_of_study_title" json:"field_of_study_title"`
	FieldOfStudyCreatedAt  time.Time `gorm:"not null;autoCreateTime;column:field_of_study_created_at" json:"field_of_study_created_at"`
}

func (FieldOfStudyModel) TableName() string { return "fields_of_study" }

func (m *FieldOfStudyModel) BeforeCreate(tx *gorm.DB) error {
	if m.FieldOfStudyID == uuid.Nil {
		m.FieldOfStudyID = uuid.New()
	}
	return nil
}
