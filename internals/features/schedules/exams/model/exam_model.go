package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamModel: date stays NULL until the exam is scheduled.
type ExamModel struct {
	ExamID           uuid.UUID  `gorm:"type:uuid;primaryKey;column:exam_id" json:"exam_id"`
	ExamSubjectID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_exams_subject;column:exam_subject_id" json:"exam_subject_id"`
	ExamDate         *time.Time `gorm:"column:exam_date" json:"exam_date,omitempty"`
	ExamCreatedAt    time.Time  `gorm:"not null;autoCreateTime;column:exam_created_at" json:"exam_created_at"`
	ExamLastEditedAt time.Time  `gorm:"not null;autoUpdateTime;column:exam_last_edited_at" json:"exam_last_edited_at"`
}

func (ExamModel) TableName() string { return "exams" }

func (m *ExamModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExamID == uuid.Nil {
		m.ExamID = uuid.New()
	}
	return nil
}

func (m ExamModel) IsScheduled() bool { return m.ExamDate != nil }

type GroupExamModel struct {
	ExamID  uuid.UUID `gorm:"type:uuid;primaryKey;column:exam_id" json:"exam_id"`
	GroupID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_group_exams_group;column:group_id" json:"group_id"`
}

func (GroupExamModel) TableName() string { return "group_exams" }

type ExamTeacherModel struct {
	ExamID    uuid.UUID `gorm:"type:uuid;primaryKey;column:exam_id" json:"exam_id"`
	TeacherID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_exam_teachers_teacher;column:teacher_id" json:"teacher_id"`
}

func (ExamTeacherModel) TableName() string { return "exam_teachers" }
