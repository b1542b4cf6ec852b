// file: internals/constants/schedule_enums.go
package constants

import (
	"fmt"
	"strings"
)

/* =========================================================
   Enumerations stored in the schedule tables.
   Values here are storage codes; display strings live in labels.go.
========================================================= */

// DayOfWeek is a teaching day, stored as smallint 1..5.
type DayOfWeek int16

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

var AllDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d DayOfWeek) Valid() bool { return d >= Monday && d <= Friday }

func (d DayOfWeek) Code() string { return fmt.Sprintf("%d", d) }

// PairNum is the ordinal of a pair within a teaching day (1..4).
type PairNum int16

const (
	FirstPair PairNum = iota + 1
	SecondPair
	ThirdPair
	FourthPair
)

var AllPairs = []PairNum{FirstPair, SecondPair, ThirdPair, FourthPair}

func (p PairNum) Valid() bool { return p >= FirstPair && p <= FourthPair }

func (p PairNum) Code() string { return fmt.Sprintf("%d", p) }

// TypeOfWeek is the recurrence of a lesson.
type TypeOfWeek string

const (
	WeekBoth TypeOfWeek = "both"
	WeekEven TypeOfWeek = "even"
	WeekOdd  TypeOfWeek = "odd"
)

var AllWeekTypes = []TypeOfWeek{WeekBoth, WeekEven, WeekOdd}

func (w TypeOfWeek) Valid() bool {
	switch w {
	case WeekBoth, WeekEven, WeekOdd:
		return true
	}
	return false
}

// Overlaps reports whether two recurrences meet in at least one week.
func (w TypeOfWeek) Overlaps(o TypeOfWeek) bool {
	return w == o || w == WeekBoth || o == WeekBoth
}

// Parities expands a recurrence into the concrete week parities it occupies.
func (w TypeOfWeek) Parities() []TypeOfWeek {
	switch w {
	case WeekBoth:
		return []TypeOfWeek{WeekEven, WeekOdd}
	case WeekEven, WeekOdd:
		return []TypeOfWeek{w}
	}
	return nil
}

// OverlappingWeeks lists every stored recurrence that overlaps w.
func OverlappingWeeks(w TypeOfWeek) []TypeOfWeek {
	out := make([]TypeOfWeek, 0, len(AllWeekTypes))
	for _, o := range AllWeekTypes {
		if w.Overlaps(o) {
			out = append(out, o)
		}
	}
	return out
}

// TypeOfLesson is the format a subject is taught in.
type TypeOfLesson string

const (
	LessonLecture    TypeOfLesson = "lecture"
	LessonLaboratory TypeOfLesson = "laboratory"
	LessonPractice   TypeOfLesson = "practice"
	LessonSeminar    TypeOfLesson = "seminar"
)

var AllLessonTypes = []TypeOfLesson{LessonLecture, LessonLaboratory, LessonPractice, LessonSeminar}

func (t TypeOfLesson) Valid() bool {
	for _, v := range AllLessonTypes {
		if v == t {
			return true
		}
	}
	return false
}

// TeacherPosition is the academic rank of a teacher.
type TeacherPosition string

const (
	PositionAssistant      TeacherPosition = "assistant"
	PositionLecturer       TeacherPosition = "lecturer"
	PositionSeniorLecturer TeacherPosition = "senior_lecturer"
	PositionDocent         TeacherPosition = "docent"
	PositionProfessor      TeacherPosition = "professor"
)

var AllPositions = []TeacherPosition{
	PositionAssistant,
	PositionLecturer,
	PositionSeniorLecturer,
	PositionDocent,
	PositionProfessor,
}

func (p TeacherPosition) Valid() bool {
	for _, v := range AllPositions {
		if v == p {
			return true
		}
	}
	return false
}

// ParseTypeOfWeek accepts a code in any case; empty input defaults to both.
func ParseTypeOfWeek(s string) (TypeOfWeek, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WeekBoth, nil
	}
	w := TypeOfWeek(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown type_of_week %q", s)
	}
	return w, nil
}
