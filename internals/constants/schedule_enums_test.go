package constants

import "testing"

func TestTypeOfWeekOverlaps(t *testing.T) {
	cases := []struct {
		a, b TypeOfWeek
		want bool
	}{
		{WeekBoth, WeekBoth, true},
		{WeekBoth, WeekEven, true},
		{WeekOdd, WeekBoth, true},
		{WeekEven, WeekEven, true},
		{WeekEven, WeekOdd, false},
		{WeekOdd, WeekEven, false},
	}
	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Errorf("%s overlaps %s = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := c.b.Overlaps(c.a); got != c.want {
			t.Errorf("overlap not symmetric for %s/%s", c.a, c.b)
		}
	}
}

func TestParitiesAgreeWithOverlaps(t *testing.T) {
	for _, a := range AllWeekTypes {
		for _, b := range AllWeekTypes {
			shared := false
			for _, pa := range a.Parities() {
				for _, pb := range b.Parities() {
					if pa == pb {
						shared = true
					}
				}
			}
			if shared != a.Overlaps(b) {
				t.Errorf("parities of %s/%s share=%v but Overlaps=%v", a, b, shared, a.Overlaps(b))
			}
		}
	}
}

func TestOverlappingWeeks(t *testing.T) {
	if got := OverlappingWeeks(WeekBoth); len(got) != 3 {
		t.Fatalf("both overlaps everything, got %v", got)
	}
	got := OverlappingWeeks(WeekEven)
	if len(got) != 2 || got[0] != WeekBoth || got[1] != WeekEven {
		t.Fatalf("even overlaps [both even], got %v", got)
	}
}

func TestEnumValidity(t *testing.T) {
	if DayOfWeek(0).Valid() || DayOfWeek(6).Valid() || !Friday.Valid() {
		t.Error("day range must be 1..5")
	}
	if PairNum(0).Valid() || PairNum(5).Valid() || !FourthPair.Valid() {
		t.Error("pair range must be 1..4")
	}
	if TypeOfWeek("weekly").Valid() {
		t.Error("unexpected week type accepted")
	}
	if !LessonSeminar.Valid() || TypeOfLesson("exam").Valid() {
		t.Error("lesson type validity")
	}
	if !PositionDocent.Valid() || TeacherPosition("dean").Valid() {
		t.Error("position validity")
	}
}

func TestParseTypeOfWeek(t *testing.T) {
	if w, err := ParseTypeOfWeek(" EVEN "); err != nil || w != WeekEven {
		t.Fatalf("got %q %v", w, err)
	}
	if w, err := ParseTypeOfWeek(""); err != nil || w != WeekBoth {
		t.Fatalf("empty should default to both, got %q %v", w, err)
	}
	if _, err := ParseTypeOfWeek("sometimes"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLabels(t *testing.T) {
	if got := Label(LangEN, LabelDayOfWeek, Monday.Code()); got != "Monday" {
		t.Errorf("got %q", got)
	}
	if got := Label("fr", LabelTypeOfWeek, string(WeekOdd)); got != "Непарний тиждень" {
		t.Errorf("unknown language must fall back to uk, got %q", got)
	}
	if got := Label(LangEN, LabelTypeOfLesson, "unknown"); got != "unknown" {
		t.Errorf("unknown code must echo, got %q", got)
	}

	all := Labels(LangEN)
	all[LabelDayOfWeek]["1"] = "changed"
	if Label(LangEN, LabelDayOfWeek, "1") != "Monday" {
		t.Error("Labels must return a copy")
	}
	for _, kind := range []string{LabelDayOfWeek, LabelPairNum, LabelTypeOfWeek, LabelTypeOfLesson, LabelTeacherPosition} {
		for _, lang := range []string{LangUK, LangEN} {
			if len(Labels(lang)[kind]) == 0 {
				t.Errorf("missing %s labels for %s", kind, lang)
			}
		}
	}
	for _, p := range AllPositions {
		if Label(LangUK, LabelTeacherPosition, string(p)) == string(p) {
			t.Errorf("position %s has no uk label", p)
		}
	}
}
