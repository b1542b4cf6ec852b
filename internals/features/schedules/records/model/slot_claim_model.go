package model

import (
	"github.com/google/uuid"

	"schedules_backend/internals/constants"
)

/*
Claim tables encode the overlap rule as plain uniqueness: a record with
type_of_week=both writes one row per parity (even, odd), so two overlapping
records always collide on the primary key.
*/

type GroupSlotClaimModel struct {
	GroupID    uuid.UUID            `gorm:"type:uuid;primaryKey;column:group_id"`
	DayOfWeek  constants.DayOfWeek  `gorm:"primaryKey;autoIncrement:false;column:day_of_week"`
	PairNum    constants.PairNum    `gorm:"primaryKey;autoIncrement:false;column:pair_num"`
	WeekParity constants.TypeOfWeek `gorm:"type:varchar(8);primaryKey;column:week_parity"`
	RecordID   uuid.UUID            `gorm:"type:uuid;not null;index:idx_schedule_group_slots_record;column:record_id"`
}

func (GroupSlotClaimModel) TableName() string { return "schedule_group_slots" }

type TeacherSlotClaimModel struct {
	TeacherID  uuid.UUID            `gorm:"type:uuid;primaryKey;column:teacher_id"`
	DayOfWeek  constants.DayOfWeek  `gorm:"primaryKey;autoIncrement:false;column:day_of_week"`
	PairNum    constants.PairNum    `gorm:"primaryKey;autoIncrement:false;column:pair_num"`
	WeekParity constants.TypeOfWeek `gorm:"type:varchar(8);primaryKey;column:week_parity"`
	RecordID   uuid.UUID            `gorm:"type:uuid;not null;index:idx_schedule_teacher_slots_record;column:record_id"`
}

func (TeacherSlotClaimModel) TableName() string { return "schedule_teacher_slots" }

// ClaimsFor expands one record into its group and teacher claim rows.
func ClaimsFor(rec RecordInScheduleModel, teacherID uuid.UUID, groupIDs []uuid.UUID) ([]GroupSlotClaimModel, []TeacherSlotClaimModel) {
	parities := rec.RecordTypeOfWeek.Parities()
	groups := make([]GroupSlotClaimModel, 0, len(parities)*len(groupIDs))
	teachers := make([]TeacherSlotClaimModel, 0, len(parities))
	for _, p := range parities {
		for _, g := range groupIDs {
			groups = append(groups, GroupSlotClaimModel{
				GroupID: g, DayOfWeek: rec.RecordDayOfWeek, PairNum: rec.RecordPairNum, WeekParity: p, RecordID: rec.RecordID,
			})
		}
		teachers = append(teachers, TeacherSlotClaimModel{
			TeacherID: teacherID, DayOfWeek: rec.RecordDayOfWeek, PairNum: rec.RecordPairNum, WeekParity: p, RecordID: rec.RecordID,
		})
	}
	return groups, teachers
}
