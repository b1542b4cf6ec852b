package service

import (
	"github.com/google/uuid"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/helpers/apperr"
)

// Slot is the part of a record the conflict rule looks at.
type Slot struct {
	RecordID  uuid.UUID
	Day       constants.DayOfWeek
	Pair      constants.PairNum
	Week      constants.TypeOfWeek
	TeacherID uuid.UUID
	GroupIDs  []uuid.UUID
}

func (s Slot) sameTime(o Slot) bool {
	return s.Day == o.Day && s.Pair == o.Pair && s.Week.Overlaps(o.Week)
}

// FindConflicts returns one entry per existing slot that collides with the
// candidate, in the order of existing. A slot with the candidate's own
// RecordID is skipped so updates do not collide with themselves.
func FindConflicts(candidate Slot, existing []Slot) []apperr.Conflict {
	var out []apperr.Conflict
	for _, ex := range existing {
		if candidate.RecordID != uuid.Nil && ex.RecordID == candidate.RecordID {
			continue
		}
		if !candidate.sameTime(ex) {
			continue
		}

		c := apperr.Conflict{RecordID: ex.RecordID}
		if shared := sharedGroups(candidate.GroupIDs, ex.GroupIDs); len(shared) > 0 {
			c.Reasons = append(c.Reasons, apperr.ReasonGroup)
			c.GroupIDs = shared
		}
		if candidate.TeacherID != uuid.Nil && candidate.TeacherID == ex.TeacherID {
			c.Reasons = append(c.Reasons, apperr.ReasonTeacher)
			tid := ex.TeacherID
			c.TeacherID = &tid
		}
		if len(c.Reasons) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// CheckSlot is FindConflicts as an error. It never mutates its inputs.
func CheckSlot(candidate Slot, existing []Slot) error {
	conflicts := FindConflicts(candidate, existing)
	if len(conflicts) == 0 {
		return nil
	}
	return &apperr.ScheduleConflictError{
		DayOfWeek:  int16(candidate.Day),
		PairNum:    int16(candidate.Pair),
		TypeOfWeek: string(candidate.Week),
		Conflicts:  conflicts,
	}
}

// shared ids in the order they appear in a
func sharedGroups(a, b []uuid.UUID) []uuid.UUID {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	in := make(map[uuid.UUID]struct{}, len(b))
	for _, id := range b {
		in[id] = struct{}{}
	}
	var out []uuid.UUID
	for _, id := range a {
		if _, ok := in[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
