package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
)

type TeacherModel struct {
	TeacherID         uuid.UUID                  `gorm:"type:uuid;primaryKey;column:teacher_id" json:"teacher_id"`
	TeacherSurname    string                     `gorm:"type:varchar(50);not null;index:idx_teachers_surname;column:teacher_surname" json:"teacher_surname"`
	TeacherFirstName  *string                    `gorm:"type:varchar(50);column:teacher_first_name" json:"teacher_first_name,omitempty"`
	TeacherMiddleName *string                    `gorm:"type:varchar(50);column:teacher_middle_name" json:"teacher_middle_name,omitempty"`
	TeacherEmail      *string                    `gorm:"type:varchar(255);column:teacher_email" json:"teacher_email,omitempty"`
	TeacherPosition   *constants.TeacherPosition `gorm:"type:varchar(32);column:teacher_position" json:"teacher_position,omitempty"`
	TeacherBirthdate  *datatypes.Date            `gorm:"column:teacher_birthdate" json:"teacher_birthdate,omitempty"`

	TeacherCreatedAt    time.Time `gorm:"not null;autoCreateTime;column:teacher_created_at" json:"teacher_created_at"`
	TeacherLastEditedAt time.Time `gorm:"not null;autoUpdateTime;column:teacher_last_edited_at" json:"teacher_last_edited_at"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}

// FullName renders "Surname First Middle" skipping empty parts.
func (m TeacherModel) FullName() string {
	parts := []string{m.TeacherSurname}
	for _, p := range []*string{m.TeacherFirstName, m.TeacherMiddleName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, " ")
}
