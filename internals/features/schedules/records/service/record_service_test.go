package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/dbtest"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/schedules/records/model"
	"schedules_backend/internals/helpers/apperr"
)

type fixture struct {
	db   *gorm.DB
	svc  *RecordService
	term uuid.UUID
	g1   uuid.UUID
	g2   uuid.UUID
	t1   uuid.UUID
	t2   uuid.UUID
	st1  uuid.UUID // math lecture by t1
	st2  uuid.UUID // physics practice by t2
	st1b uuid.UUID // physics lecture by t1
}

func newFixture(t *testing.T) *fixture {
	db, reg := dbtest.Open(t)
	f := &fixture{db: db, svc: NewRecordService(db, reg)}
	f.term = dbtest.Term(t, db)
	f.g1 = dbtest.Group(t, db, "КН-11", f.term)
	f.g2 = dbtest.Group(t, db, "КН-12", f.term)
	f.t1 = dbtest.Teacher(t, db, "Шевченко")
	f.t2 = dbtest.Teacher(t, db, "Франко")
	math := dbtest.Subject(t, db, "МА", "Математичний аналіз")
	phys := dbtest.Subject(t, db, "Фіз", "Фізика")
	f.st1 = dbtest.SubjectTeacher(t, db, math, f.t1, constants.LessonLecture)
	f.st2 = dbtest.SubjectTeacher(t, db, phys, f.t2, constants.LessonPractice)
	f.st1b = dbtest.SubjectTeacher(t, db, phys, f.t1, constants.LessonLecture)
	return f
}

func (f *fixture) input(st uuid.UUID, day constants.DayOfWeek, pair constants.PairNum, week constants.TypeOfWeek, groups ...uuid.UUID) RecordInput {
	return RecordInput{SubjectTeacherID: st, DayOfWeek: day, PairNum: pair, TypeOfWeek: week, GroupIDs: groups}
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCreateRejectsOverlappingGroupSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekEven, f.g1))
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.Create(ctx, f.input(f.st2, constants.Monday, constants.FirstPair, constants.WeekBoth, f.g1))
	var sc *apperr.ScheduleConflictError
	if !errors.As(err, &sc) {
		t.Fatalf("want conflict, got %v", err)
	}
	if ids := sc.RecordIDs(); len(ids) != 1 || ids[0] != a.RecordID {
		t.Fatalf("conflict ids = %v", ids)
	}
	if n := countRows(t, f.db, &model.RecordInScheduleModel{}); n != 1 {
		t.Fatalf("records = %d", n)
	}
}

func TestCreateAcceptsOppositeParity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekEven, f.g1)); err != nil {
		t.Fatal(err)
	}
	c, err := f.svc.Create(ctx, f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekOdd, f.g1))
	if err != nil {
		t.Fatalf("want accept, got %v", err)
	}
	if c.TeacherID != f.t1 || len(c.GroupIDs) != 1 || c.GroupIDs[0] != f.g1 {
		t.Fatalf("record = %+v", c)
	}
	// one teacher claim per parity
	if n := countRows(t, f.db, &model.TeacherSlotClaimModel{}); n != 2 {
		t.Fatalf("teacher claims = %d", n)
	}
}

func TestCreateRejectsTeacherDoubleBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.input(f.st1, constants.Wednesday, constants.ThirdPair, constants.WeekBoth, f.g1)); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Create(ctx, f.input(f.st1b, constants.Wednesday, constants.ThirdPair, constants.WeekOdd, f.g2))
	var sc *apperr.ScheduleConflictError
	if !errors.As(err, &sc) || sc.Conflicts[0].Reasons[0] != apperr.ReasonTeacher {
		t.Fatalf("want teacher conflict, got %v", err)
	}
}

func TestCreateValidatesBeforeWriting(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), RecordInput{SubjectTeacherID: f.st1, DayOfWeek: 6, PairNum: 5, TypeOfWeek: "weekly"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
	for _, field := range []string{"record_day_of_week", "record_pair_num", "record_type_of_week", "record_group_ids"} {
		if len(ve.Fields[field]) == 0 {
			t.Errorf("missing %s in %v", field, ve.Fields)
		}
	}

	_, err = f.svc.Create(context.Background(), f.input(uuid.New(), constants.Monday, constants.FirstPair, constants.WeekBoth, f.g1))
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "subject_teacher" {
		t.Fatalf("want subject_teacher not found, got %v", err)
	}
	_, err = f.svc.Create(context.Background(), f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekBoth, uuid.New()))
	if !errors.As(err, &nf) || nf.Entity != "group" {
		t.Fatalf("want group not found, got %v", err)
	}
}

func TestCheckDoesNotWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekBoth, f.g1)

	for i := 0; i < 2; i++ {
		if err := f.svc.Check(ctx, in, nil); err != nil {
			t.Fatal(err)
		}
	}
	if n := countRows(t, f.db, &model.RecordInScheduleModel{}); n != 0 {
		t.Fatalf("records = %d", n)
	}
}

func TestConcurrentConflictingCreatesOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 6
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		st := f.st1
		if i%2 == 1 {
			st = f.st2
		}
		wg.Add(1)
		go func(st uuid.UUID) {
			defer wg.Done()
			_, err := f.svc.Create(ctx, f.input(st, constants.Thursday, constants.SecondPair, constants.WeekBoth, f.g1))
			errs <- err
		}(st)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		var sc *apperr.ScheduleConflictError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &sc):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("successful inserts = %d", ok)
	}
}

func TestClaimTablesRejectWhatTheCheckerWouldReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.svc.Create(ctx, f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekBoth, f.g1))
	if err != nil {
		t.Fatal(err)
	}

	// bypass the checker: the group claim primary key still collides
	rec := model.RecordInScheduleModel{
		RecordSubjectTeacherID: f.st2, RecordDayOfWeek: constants.Monday,
		RecordPairNum: constants.FirstPair, RecordTypeOfWeek: constants.WeekOdd,
	}
	err = f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return writeLinks(ctx, tx, rec, f.t2, []uuid.UUID{f.g1})
	})
	var sc *apperr.ScheduleConflictError
	if !errors.As(err, &sc) {
		t.Fatalf("want conflict from claims, got %v", err)
	}
	if _, err := f.svc.Get(ctx, a.RecordID); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateMovesRecordAndRechecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekBoth, f.g1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.svc.Create(ctx, f.input(f.st2, constants.Monday, constants.SecondPair, constants.WeekBoth, f.g2))
	if err != nil {
		t.Fatal(err)
	}

	// narrowing its own week never conflicts with itself
	even := constants.WeekEven
	if _, err := f.svc.Update(ctx, a.RecordID, RecordPatch{TypeOfWeek: &even}); err != nil {
		t.Fatal(err)
	}

	// moving b onto a with a shared group is rejected
	first := constants.FirstPair
	_, err = f.svc.Update(ctx, b.RecordID, RecordPatch{PairNum: &first, GroupIDs: []uuid.UUID{f.g1, f.g2}})
	var sc *apperr.ScheduleConflictError
	if !errors.As(err, &sc) {
		t.Fatalf("want conflict, got %v", err)
	}

	// moving b to the odd week of pair 1 is fine; its old claims are released
	odd := constants.WeekOdd
	moved, err := f.svc.Update(ctx, b.RecordID, RecordPatch{PairNum: &first, TypeOfWeek: &odd, GroupIDs: []uuid.UUID{f.g1, f.g2}})
	if err != nil {
		t.Fatal(err)
	}
	if moved.RecordPairNum != constants.FirstPair || len(moved.GroupIDs) != 2 {
		t.Fatalf("moved = %+v", moved)
	}
	var stale int64
	f.db.Model(&model.TeacherSlotClaimModel{}).Where("pair_num = ?", constants.SecondPair).Count(&stale)
	if stale != 0 {
		t.Fatalf("stale claims = %d", stale)
	}

	if _, err := f.svc.Update(ctx, uuid.New(), RecordPatch{}); !errors.As(err, new(*apperr.NotFoundError)) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdateKeepsConcurrentGroupChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g3 := dbtest.Group(t, f.db, "КН-13", f.term)

	rec, err := f.svc.Create(ctx, f.input(f.st1, constants.Tuesday, constants.FirstPair, constants.WeekBoth, f.g1))
	if err != nil {
		t.Fatal(err)
	}

	// another dispatcher regroups the record after each read the link update
	// makes outside its transaction
	regroups := [][]uuid.UUID{{f.g2}, {g3}}
	var armed, busy bool
	var last []uuid.UUID
	err = f.db.Callback().Query().After("gorm:query").Register("test:regroup", func(tx *gorm.DB) {
		if !armed || busy || len(regroups) == 0 {
			return
		}
		if _, inTx := tx.Statement.ConnPool.(gorm.TxCommitter); inTx {
			return
		}
		busy = true
		defer func() { busy = false }()
		next := regroups[0]
		regroups = regroups[1:]
		if _, err := f.svc.Update(ctx, rec.RecordID, RecordPatch{GroupIDs: next}); err != nil {
			t.Errorf("regroup: %v", err)
			return
		}
		last = next
	})
	if err != nil {
		t.Fatal(err)
	}

	link := "https://meet.example.com/kn-11"
	armed = true
	updated, err := f.svc.Update(ctx, rec.RecordID, RecordPatch{Link: &link})
	armed = false
	if err != nil {
		t.Fatal(err)
	}
	if last == nil {
		t.Fatal("no concurrent regroup happened")
	}
	if !slices.Equal(updated.GroupIDs, last) {
		t.Fatalf("update returned groups %v, want %v", updated.GroupIDs, last)
	}

	got, err := f.svc.Get(ctx, rec.RecordID)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.GroupIDs, last) {
		t.Fatalf("concurrent group change lost: groups %v, want %v", got.GroupIDs, last)
	}
	if got.RecordLink == nil || *got.RecordLink != link {
		t.Fatalf("link = %v", got.RecordLink)
	}
}

func TestCreateThenGetMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	groups := store.Sorted([]uuid.UUID{f.g1, f.g2})
	slices.Reverse(groups)
	link := "https://meet.example.com/ma"
	in := f.input(f.st1, constants.Wednesday, constants.ThirdPair, constants.WeekOdd, groups...)
	in.Link = &link

	created, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.svc.Get(ctx, created.RecordID)
	if err != nil {
		t.Fatal(err)
	}

	if got.RecordID != created.RecordID ||
		got.RecordSubjectTeacherID != created.RecordSubjectTeacherID ||
		got.RecordDayOfWeek != created.RecordDayOfWeek ||
		got.RecordPairNum != created.RecordPairNum ||
		got.RecordTypeOfWeek != created.RecordTypeOfWeek ||
		got.SubjectID != created.SubjectID ||
		got.TeacherID != created.TeacherID ||
		got.TypeOfLesson != created.TypeOfLesson {
		t.Fatalf("get = %+v\ncreate = %+v", got, created)
	}
	if got.RecordLink == nil || created.RecordLink == nil || *got.RecordLink != *created.RecordLink {
		t.Fatalf("link: get %v, create %v", got.RecordLink, created.RecordLink)
	}
	if !slices.Equal(got.GroupIDs, created.GroupIDs) {
		t.Fatalf("groups: get %v, create %v", got.GroupIDs, created.GroupIDs)
	}
}

func TestQueryFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otherTerm := dbtest.Term(t, f.db)
	g3 := dbtest.Group(t, f.db, "ПМ-21", otherTerm)

	mustCreate := func(in RecordInput) *Record {
		t.Helper()
		r, err := f.svc.Create(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	r1 := mustCreate(f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekBoth, f.g1))
	r2 := mustCreate(f.input(f.st2, constants.Monday, constants.FirstPair, constants.WeekBoth, f.g2))
	r3 := mustCreate(f.input(f.st2, constants.Tuesday, constants.FirstPair, constants.WeekBoth, f.g1, g3))

	ids := func(recs []Record) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.RecordID)
		}
		return out
	}
	contains := func(got []uuid.UUID, want ...uuid.UUID) bool {
		if len(got) != len(want) {
			return false
		}
		set := map[uuid.UUID]bool{}
		for _, id := range got {
			set[id] = true
		}
		for _, id := range want {
			if !set[id] {
				return false
			}
		}
		return true
	}

	monday := constants.Monday
	cases := []struct {
		name   string
		filter RecordFilter
		want   []uuid.UUID
	}{
		{"all", RecordFilter{}, []uuid.UUID{r1.RecordID, r2.RecordID, r3.RecordID}},
		{"group", RecordFilter{GroupID: &f.g1}, []uuid.UUID{r1.RecordID, r3.RecordID}},
		{"teacher", RecordFilter{TeacherID: &f.t2}, []uuid.UUID{r2.RecordID, r3.RecordID}},
		{"day", RecordFilter{DayOfWeek: &monday}, []uuid.UUID{r1.RecordID, r2.RecordID}},
		{"term", RecordFilter{TermID: &otherTerm}, []uuid.UUID{r3.RecordID}},
		{"teacher+day", RecordFilter{TeacherID: &f.t2, DayOfWeek: &monday}, []uuid.UUID{r2.RecordID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, total, err := f.svc.Query(ctx, tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			if total != int64(len(tc.want)) || !contains(ids(got), tc.want...) {
				t.Fatalf("total=%d got=%v want=%v", total, ids(got), tc.want)
			}
		})
	}

	page, total, err := f.svc.Query(ctx, RecordFilter{Limit: 1, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(page) != 1 || page[0].RecordID != r3.RecordID {
		t.Fatalf("page total=%d ids=%v", total, ids(page))
	}

	recs, err := f.svc.RecordsForGroup(ctx, g3)
	if err != nil || len(recs) != 1 || recs[0].RecordID != r3.RecordID {
		t.Fatalf("records for group: %v %v", recs, err)
	}
	groups, err := f.svc.GroupsForRecord(ctx, r3.RecordID)
	if err != nil || len(groups) != 2 {
		t.Fatalf("groups for record: %v %v", groups, err)
	}
}

func TestDeleteCascadesLinksAndFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := f.input(f.st1, constants.Friday, constants.FourthPair, constants.WeekBoth, f.g1, f.g2)

	a, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Delete(ctx, a.RecordID); err != nil {
		t.Fatal(err)
	}
	for _, m := range []any{&model.GroupRecordModel{}, &model.GroupSlotClaimModel{}, &model.TeacherSlotClaimModel{}} {
		if n := countRows(t, f.db, m); n != 0 {
			t.Fatalf("%T rows left: %d", m, n)
		}
	}
	if _, err := f.svc.Create(ctx, in); err != nil {
		t.Fatalf("slot not freed: %v", err)
	}
	if err := f.svc.Delete(ctx, uuid.New()); !errors.As(err, new(*apperr.NotFoundError)) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestAuditFindsNothingOnCleanSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Create(ctx, f.input(f.st1, constants.Monday, constants.FirstPair, constants.WeekEven, f.g1)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Create(ctx, f.input(f.st2, constants.Monday, constants.FirstPair, constants.WeekOdd, f.g1)); err != nil {
		t.Fatal(err)
	}
	got, err := f.svc.Audit(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("violations=%v err=%v", got, err)
	}
}
