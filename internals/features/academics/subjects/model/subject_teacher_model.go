package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
)

// SubjectTeacherModel: "this teacher teaches this subject as this lesson type".
type SubjectTeacherModel struct {
	SubjectTeacherID           uuid.UUID              `gorm:"type:uuid;primaryKey;column:subject_teacher_id" json:"subject_teacher_id"`
	SubjectTeacherSubjectID    uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:uq_subject_teachers_triple,priority:1;column:subject_teacher_subject_id" json:"subject_teacher_subject_id"`
	SubjectTeacherTeacherID    uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:uq_subject_teachers_triple,priority:2;index:idx_subject_teachers_teacher;column:subject_teacher_teacher_id" json:"subject_teacher_teacher_id"`
	SubjectTeacherTypeOfLesson constants.TypeOfLesson `gorm:"type:varchar(16);not null;uniqueIndex:uq_subject_teachers_triple,priority:3;column:subject_teacher_type_of_lesson" json:"subject_teacher_type_of_lesson"`
	SubjectTeacherCreatedAt    time.Time              `gorm:"not null;autoCreateTime;column:subject_teacher_created_at" json:"subject_teacher_created_at"`
}

func (SubjectTeacherModel) TableName() string { return "subject_teachers" }

func (m *SubjectTeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectTeacherID == uuid.Nil {
		m.SubjectTeacherID = uuid.New()
	}
	return nil
}
