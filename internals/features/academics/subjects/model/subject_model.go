package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID           uuid.UUID `gorm:"type:uuid;primaryKey;column:subject_id" json:"subject_id"`
	SubjectShortTitle   string    `gorm:"type:varchar(10);not null;index:idx_subjects_short_title;column:subject_short_title" json:"subject_short_title"`
	SubjectTitle        string    `gorm:"type:varchar(60);not null;column:subject_title" json:"subject_title"`
	SubjectCreatedAt    time.Time `gorm:"not null;autoCreateTime;column:subject_created_at" json:"subject_created_at"`
	SubjectLastEditedAt time.Time `gorm:"not null;autoUpdateTime;column:subject_last_edited_at" json:"subject_last_edited_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
