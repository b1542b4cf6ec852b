package schema

import (
	"errors"
	"strings"
	"testing"
)

type fakeModel struct{ table string }

func (f fakeModel) TableName() string { return f.table }

func names(es []*Entity) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Name)
	}
	return out
}

func TestOrderIsTopological(t *testing.T) {
	r := New().MustRegister(
		Entity{Name: "record", Model: fakeModel{"records"}, DependsOn: []string{"subject_teacher"}},
		Entity{Name: "subject", Model: fakeModel{"subjects"}},
		Entity{Name: "subject_teacher", Model: fakeModel{"subject_teachers"}, DependsOn: []string{"subject", "teacher"}},
		Entity{Name: "teacher", Model: fakeModel{"teachers"}},
	)
	ordered, err := r.Order()
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(names(ordered), ",")
	if got != "subject,teacher,subject_teacher,record" {
		t.Fatalf("order = %s", got)
	}
}

func TestOrderErrors(t *testing.T) {
	r := New().MustRegister(Entity{Name: "group", Model: fakeModel{"groups"}, DependsOn: []string{"field_of_study"}})
	if _, err := r.Order(); !errors.Is(err, ErrUnknownDep) {
		t.Fatalf("want unknown dep, got %v", err)
	}

	r = New().MustRegister(
		Entity{Name: "a", Model: fakeModel{"a"}, DependsOn: []string{"b"}},
		Entity{Name: "b", Model: fakeModel{"b"}, DependsOn: []string{"a"}},
	)
	if _, err := r.Order(); !errors.Is(err, ErrCycle) {
		t.Fatalf("want cycle, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	if err := r.Register(Entity{Name: "subject", Model: fakeModel{"subjects"}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(Entity{Name: "subject", Model: fakeModel{"subjects"}}); !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("got %v", err)
	}
	if err := r.Register(Entity{Name: "", Model: fakeModel{"x"}}); err == nil {
		t.Fatal("empty name accepted")
	}
}

func TestDependents(t *testing.T) {
	r := New().MustRegister(
		Entity{Name: "teacher", Model: fakeModel{"teachers"}},
		Entity{Name: "subject_teacher", Model: fakeModel{"subject_teachers"}, DependsOn: []string{"teacher"},
			Refs: []Ref{{Column: "teacher_id", Table: "teachers", IDColumn: "teacher_id", OnDelete: Restrict}}},
		Entity{Name: "exam_teacher", Model: fakeModel{"exam_teachers"}, DependsOn: []string{"teacher"},
			Refs: []Ref{{Column: "teacher_id", Table: "teachers", IDColumn: "teacher_id", OnDelete: Restrict}}},
	)
	deps := r.Dependents("teachers")
	if len(deps) != 2 || deps[0].Table != "subject_teachers" || deps[1].Table != "exam_teachers" {
		t.Fatalf("deps = %+v", deps)
	}
	if len(r.Dependents("subjects")) != 0 {
		t.Fatal("no refs into subjects")
	}
}

func TestForeignKeyDDL(t *testing.T) {
	sql := foreignKeyDDL("groups", Ref{Column: "academic_term_id", Table: "academic_terms", IDColumn: "academic_term_id"})
	for _, want := range []string{
		`ALTER TABLE "groups"`,
		`"fk_groups_academic_term_id"`,
		`REFERENCES "academic_terms" ("academic_term_id")`,
		"ON DELETE RESTRICT",
		"duplicate_object",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("ddl missing %q:\n%s", want, sql)
		}
	}
}
