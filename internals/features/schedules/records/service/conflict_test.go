package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/helpers/apperr"
)

var (
	g1 = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	g2 = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	t1 = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	t2 = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
)

func slot(id string, day constants.DayOfWeek, pair constants.PairNum, week constants.TypeOfWeek, teacher uuid.UUID, groups ...uuid.UUID) Slot {
	var rid uuid.UUID
	if id != "" {
		rid = uuid.MustParse(id)
	}
	return Slot{RecordID: rid, Day: day, Pair: pair, Week: week, TeacherID: teacher, GroupIDs: groups}
}

const recA = "00000000-0000-0000-0000-00000000000a"

func TestBothOverlapsEvenForSharedGroup(t *testing.T) {
	existing := []Slot{slot(recA, constants.Monday, constants.FirstPair, constants.WeekEven, t1, g1)}
	cand := slot("", constants.Monday, constants.FirstPair, constants.WeekBoth, t2, g1)

	err := CheckSlot(cand, existing)
	var sc *apperr.ScheduleConflictError
	if !errors.As(err, &sc) {
		t.Fatalf("want conflict, got %v", err)
	}
	if len(sc.Conflicts) != 1 {
		t.Fatalf("conflicts = %+v", sc.Conflicts)
	}
	c := sc.Conflicts[0]
	if c.RecordID.String() != recA || !reflect.DeepEqual(c.Reasons, []string{apperr.ReasonGroup}) {
		t.Fatalf("conflict = %+v", c)
	}
	if !reflect.DeepEqual(c.GroupIDs, []uuid.UUID{g1}) || c.TeacherID != nil {
		t.Fatalf("conflict = %+v", c)
	}
}

func TestEvenAndOddNeverOverlap(t *testing.T) {
	existing := []Slot{slot(recA, constants.Monday, constants.FirstPair, constants.WeekEven, t1, g1)}
	cand := slot("", constants.Monday, constants.FirstPair, constants.WeekOdd, t1, g1)
	if err := CheckSlot(cand, existing); err != nil {
		t.Fatalf("want accept, got %v", err)
	}
}

func TestTeacherDoubleBookingWithDisjointGroups(t *testing.T) {
	existing := []Slot{slot(recA, constants.Tuesday, constants.SecondPair, constants.WeekBoth, t1, g1)}
	cand := slot("", constants.Tuesday, constants.SecondPair, constants.WeekOdd, t1, g2)

	got := FindConflicts(cand, existing)
	if len(got) != 1 || !reflect.DeepEqual(got[0].Reasons, []string{apperr.ReasonTeacher}) {
		t.Fatalf("got %+v", got)
	}
	if got[0].TeacherID == nil || *got[0].TeacherID != t1 || got[0].GroupIDs != nil {
		t.Fatalf("got %+v", got[0])
	}
}

func TestBothReasonsReported(t *testing.T) {
	existing := []Slot{slot(recA, constants.Friday, constants.FourthPair, constants.WeekOdd, t1, g1, g2)}
	cand := slot("", constants.Friday, constants.FourthPair, constants.WeekOdd, t1, g2)
	got := FindConflicts(cand, existing)
	if len(got) != 1 || !reflect.DeepEqual(got[0].Reasons, []string{apperr.ReasonGroup, apperr.ReasonTeacher}) {
		t.Fatalf("got %+v", got)
	}
}

func TestDifferentSlotNeverConflicts(t *testing.T) {
	existing := []Slot{slot(recA, constants.Monday, constants.FirstPair, constants.WeekBoth, t1, g1)}
	for _, cand := range []Slot{
		slot("", constants.Monday, constants.SecondPair, constants.WeekBoth, t1, g1),
		slot("", constants.Tuesday, constants.FirstPair, constants.WeekBoth, t1, g1),
	} {
		if err := CheckSlot(cand, existing); err != nil {
			t.Fatalf("%+v: %v", cand, err)
		}
	}
}

func TestGroupWithoutRecordsNeverConflicts(t *testing.T) {
	cand := slot("", constants.Monday, constants.FirstPair, constants.WeekBoth, t1, g1)
	if err := CheckSlot(cand, nil); err != nil {
		t.Fatal(err)
	}
	// no groups on either side and another teacher
	existing := []Slot{slot(recA, constants.Monday, constants.FirstPair, constants.WeekBoth, t2)}
	if err := CheckSlot(slot("", constants.Monday, constants.FirstPair, constants.WeekBoth, t1), existing); err != nil {
		t.Fatal(err)
	}
}

func TestOwnRecordIsExcluded(t *testing.T) {
	existing := []Slot{slot(recA, constants.Monday, constants.FirstPair, constants.WeekBoth, t1, g1)}
	cand := slot(recA, constants.Monday, constants.FirstPair, constants.WeekEven, t1, g1)
	if err := CheckSlot(cand, existing); err != nil {
		t.Fatal(err)
	}
}

func TestCheckIsIdempotentAndPure(t *testing.T) {
	existing := []Slot{
		slot(recA, constants.Monday, constants.FirstPair, constants.WeekEven, t1, g1),
		slot("00000000-0000-0000-0000-00000000000b", constants.Monday, constants.FirstPair, constants.WeekOdd, t2, g2),
	}
	snapshot := append([]Slot(nil), existing...)
	cand := slot("", constants.Monday, constants.FirstPair, constants.WeekBoth, t2, g1)

	first := FindConflicts(cand, existing)
	second := FindConflicts(cand, existing)
	if !reflect.DeepEqual(first, second) || len(first) != 2 {
		t.Fatalf("first=%+v second=%+v", first, second)
	}
	if !reflect.DeepEqual(existing, snapshot) {
		t.Fatal("existing slots were mutated")
	}
}

func TestAuditSlotsReportsEachPairOnce(t *testing.T) {
	slots := []Slot{
		slot(recA, constants.Monday, constants.FirstPair, constants.WeekBoth, t1, g1),
		slot("00000000-0000-0000-0000-00000000000b", constants.Monday, constants.FirstPair, constants.WeekOdd, t2, g1),
		slot("00000000-0000-0000-0000-00000000000c", constants.Monday, constants.SecondPair, constants.WeekOdd, t1, g1),
	}
	got := auditSlots(slots)
	if len(got) != 1 || got[0].RecordID.String() != recA {
		t.Fatalf("got %+v", got)
	}
}

func TestSortedKeysDedupesAndOrders(t *testing.T) {
	got := sortedKeys([]SlotKey{{Day: 2, Pair: 1}, {Day: 1, Pair: 3}, {Day: 2, Pair: 1}, {Day: 1, Pair: 2}})
	want := []SlotKey{{Day: 1, Pair: 2}, {Day: 1, Pair: 3}, {Day: 2, Pair: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
}
