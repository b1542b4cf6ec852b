package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupModel struct {
	GroupID             uuid.UUID `gorm:"type:uuid;primaryKey;column:group_id" json:"group_id"`
	GroupName           string    `gorm:"type:varchar(8);not null;column:group_name" json:"group_name"`
	GroupCourse         int       `gorm:"not null;check:chk_student_groups_course,group_course > 0;column:group_course" json:"group_course"`
	GroupFieldOfStudyID uuid.UUID `gorm:"type:uuid;not null;index:idx_student_groups_field_of_study;column:group_field_of_study_id" json:"group_field_of_study_id"`
	GroupAcademicTermID uuid.UUID `gorm:"type:uuid;not null;index:idx_student_groups_academic_term;column:group_academic_term_id" json:"group_academic_term_id"`
	GroupCreatedAt      time.Time `gorm:"not null;autoCreateTime;column:group_created_at" json:"group_created_at"`
}

func (GroupModel) TableName() string { return "student_groups" }

func (m *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupID == uuid.Nil {
		m.GroupID = uuid.New()
	}
	return nil
}
