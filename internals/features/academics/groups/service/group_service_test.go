package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"schedules_backend/internals/databases/dbtest"
	"schedules_backend/internals/helpers/apperr"
)

func TestGroupCreateAndTerm(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewGroupService(db, reg)
	ctx := context.Background()

	term := dbtest.Term(t, db)
	fos := dbtest.FieldOfStudy(t, db, "КН", "Комп'ютерні науки")
	g, err := s.Create(ctx, GroupInput{Name: "КН-11", Course: 1, FieldOfStudyID: fos, AcademicTermID: term})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.TermForGroup(ctx, g.GroupID)
	if err != nil {
		t.Fatal(err)
	}
	if got.AcademicTermID != term {
		t.Fatalf("term = %s, want %s", got.AcademicTermID, term)
	}
}

func TestGroupCreateValidation(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewGroupService(db, reg)
	ctx := context.Background()

	_, err := s.Create(ctx, GroupInput{Name: "КН-11-ДОВГА", Course: 0})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation, got %v", err)
	}
	for _, f := range []string{"group_name", "group_course", "group_field_of_study_id", "group_academic_term_id"} {
		if len(ve.Fields[f]) == 0 {
			t.Errorf("missing error for %s: %v", f, ve.Fields)
		}
	}

	fos := dbtest.FieldOfStudy(t, db, "КН", "Комп'ютерні науки")
	missing := uuid.New()
	_, err = s.Create(ctx, GroupInput{Name: "КН-11", Course: 1, FieldOfStudyID: fos, AcademicTermID: missing})
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.ID != missing {
		t.Fatalf("want NotFound term, got %v", err)
	}
}

func TestGroupListFilters(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewGroupService(db, reg)
	ctx := context.Background()

	t1, t2 := dbtest.Term(t, db), dbtest.Term(t, db)
	fos := dbtest.FieldOfStudy(t, db, "КН", "Комп'ютерні науки")
	for _, in := range []GroupInput{
		{Name: "КН-11", Course: 1, FieldOfStudyID: fos, AcademicTermID: t1},
		{Name: "КН-21", Course: 2, FieldOfStudyID: fos, AcademicTermID: t1},
		{Name: "КН-12", Course: 1, FieldOfStudyID: fos, AcademicTermID: t2},
	} {
		if _, err := s.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	rows, total, err := s.List(ctx, GroupFilter{TermID: &t1, Order: "group_name ASC"})
	if err != nil || total != 2 || rows[0].GroupName != "КН-11" {
		t.Fatalf("by term: %v %d %v", rows, total, err)
	}
	course := 1
	_, total, err = s.List(ctx, GroupFilter{Course: &course})
	if err != nil || total != 2 {
		t.Fatalf("by course: %d %v", total, err)
	}
}

func TestGroupUpdateAndDelete(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewGroupService(db, reg)
	ctx := context.Background()

	term := dbtest.Term(t, db)
	g := dbtest.Group(t, db, "КН-11", term)

	course := 2
	name := "КН-21"
	m, err := s.Update(ctx, g, GroupPatch{Name: &name, Course: &course})
	if err != nil {
		t.Fatal(err)
	}
	if m.GroupCourse != 2 || m.GroupName != "КН-21" {
		t.Fatalf("got %+v", m)
	}

	bad := uuid.New()
	var nf *apperr.NotFoundError
	if _, err := s.Update(ctx, g, GroupPatch{AcademicTermID: &bad}); !errors.As(err, &nf) {
		t.Fatalf("want NotFound, got %v", err)
	}

	if err := s.Delete(ctx, g); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Update(ctx, g, GroupPatch{Name: &name}); !errors.As(err, &nf) {
		t.Fatalf("update after delete: %v", err)
	}
}
