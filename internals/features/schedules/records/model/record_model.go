package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
)

// RecordInScheduleModel is one recurring weekly lesson slot.
type RecordInScheduleModel struct {
	RecordID               uuid.UUID            `gorm:"type:uuid;primaryKey;column:record_id" json:"record_id"`
	RecordSubjectTeacherID uuid.UUID            `gorm:"type:uuid;not null;index:idx_records_subject_teacher;column:record_subject_teacher_id" json:"record_subject_teacher_id"`
	RecordPairNum          constants.PairNum    `gorm:"not null;check:chk_records_pair_num,record_pair_num BETWEEN 1 AND 4;index:idx_records_slot,priority:2;column:record_pair_num" json:"record_pair_num"`
	RecordDayOfWeek        constants.DayOfWeek  `gorm:"not null;check:chk_records_day_of_week,record_day_of_week BETWEEN 1 AND 5;index:idx_records_slot,priority:1;column:record_day_of_week" json:"record_day_of_week"`
	RecordTypeOfWeek       constants.TypeOfWeek `gorm:"type:varchar(8);not null;default:'both';column:record_type_of_week" json:"record_type_of_week"`
	RecordLink             *string              `gorm:"type:text;column:record_link" json:"record_link,omitempty"`

	RecordCreatedAt    time.Time `gorm:"not null;autoCreateTime;column:record_created_at" json:"record_created_at"`
	RecordLastEditedAt time.Time `gorm:"not null;autoUpdateTime;column:record_last_edited_at" json:"record_last_edited_at"`
}

func (RecordInScheduleModel) TableName() string { return "records_in_schedule" }

func (m *RecordInScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.RecordID == uuid.Nil {
		m.RecordID = uuid.New()
	}
	return nil
}

// GroupRecordModel: composite-key join between student groups and records.
type GroupRecordModel struct {
	GroupID  uuid.UUID `gorm:"type:uuid;primaryKey;column:group_id" json:"group_id"`
	LessonID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_group_records_lesson;column:lesson_id" json:"lesson_id"`
}

func (GroupRecordModel) TableName() string { return "group_records" }
