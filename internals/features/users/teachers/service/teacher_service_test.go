package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/dbtest"
	"schedules_backend/internals/helpers/apperr"
)

func ptr[T any](v T) *T { return &v }

func TestTeacherCreateOptionalFields(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewTeacherService(db, reg)
	ctx := context.Background()

	bare, err := s.Create(ctx, TeacherInput{Surname: "Франко"})
	if err != nil {
		t.Fatal(err)
	}
	if bare.TeacherFirstName != nil || bare.TeacherEmail != nil || bare.TeacherBirthdate != nil {
		t.Fatalf("optional fields set: %+v", bare)
	}

	birth := time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC)
	full, err := s.Create(ctx, TeacherInput{
		Surname:    "Шевченко",
		FirstName:  ptr("Тарас"),
		MiddleName: ptr("Григорович"),
		Email:      ptr(" T.Shevchenko@Univ.edu "),
		Position:   ptr(constants.PositionDocent),
		Birthdate:  &birth,
	})
	if err != nil {
		t.Fatal(err)
	}
	if *full.TeacherEmail != "t.shevchenko@univ.edu" {
		t.Fatalf("email = %q", *full.TeacherEmail)
	}
	if full.FullName() != "Шевченко Тарас Григорович" {
		t.Fatalf("full name = %q", full.FullName())
	}

	got, err := s.Get(ctx, full.TeacherID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TeacherBirthdate == nil || !time.Time(*got.TeacherBirthdate).Equal(birth) {
		t.Fatalf("birthdate = %v", got.TeacherBirthdate)
	}
}

func TestTeacherValidation(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewTeacherService(db, reg)

	future := time.Now().AddDate(1, 0, 0)
	_, err := s.Create(context.Background(), TeacherInput{
		Surname:   " ",
		Email:     ptr("not-an-email"),
		Position:  ptr(constants.TeacherPosition("dean")),
		Birthdate: &future,
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation, got %v", err)
	}
	for _, f := range []string{"teacher_surname", "teacher_email", "teacher_position", "teacher_birthdate"} {
		if len(ve.Fields[f]) == 0 {
			t.Errorf("missing %s in %v", f, ve.Fields)
		}
	}
}

func TestTeacherUpdateClearsAndFilters(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewTeacherService(db, reg)
	ctx := context.Background()

	m, err := s.Create(ctx, TeacherInput{Surname: "Шевчук", Position: ptr(constants.PositionLecturer), Email: ptr("a@b.ua")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, TeacherInput{Surname: "Коваль"}); err != nil {
		t.Fatal(err)
	}

	rows, total, err := s.List(ctx, TeacherFilter{Surname: "Шев"})
	if err != nil || total != 1 || rows[0].TeacherID != m.TeacherID {
		t.Fatalf("prefix: %v %d %v", rows, total, err)
	}
	_, total, _ = s.List(ctx, TeacherFilter{Position: ptr(constants.PositionLecturer)})
	if total != 1 {
		t.Fatalf("position filter total = %d", total)
	}

	got, err := s.Update(ctx, m.TeacherID, TeacherPatch{Email: ptr(""), ClearPosition: true})
	if err != nil {
		t.Fatal(err)
	}
	if got.TeacherEmail != nil || got.TeacherPosition != nil {
		t.Fatalf("not cleared: %+v", got)
	}
}

func TestTeacherDeleteRestrictedBySubjects(t *testing.T) {
	db, reg := dbtest.Open(t)
	s := NewTeacherService(db, reg)
	ctx := context.Background()

	teacher := dbtest.Teacher(t, db, "Франко")
	dbtest.SubjectTeacher(t, db, dbtest.Subject(t, db, "БД", "Бази даних"), teacher, constants.LessonLecture)

	var ri *apperr.ReferentialIntegrityError
	if err := s.Delete(ctx, teacher); !errors.As(err, &ri) {
		t.Fatalf("want referential integrity error, got %v", err)
	}
	if ri.Dependents["subject_teachers"] != 1 {
		t.Fatalf("dependents = %v", ri.Dependents)
	}
}
