package constants

import "strings"

// Label kinds
const (
	LabelDayOfWeek       = "day_of_week"
	LabelPairNum         = "pair_num"
	LabelTypeOfWeek      = "type_of_week"
	LabelTypeOfLesson    = "type_of_lesson"
	LabelTeacherPosition = "teacher_position"
)

const (
	LangUK      = "uk"
	LangEN      = "en"
	DefaultLang = LangUK
)

// LabelTable maps a storage code to its display string.
type LabelTable map[string]string

var labels = map[string]map[string]LabelTable{
	LangUK: {
		LabelDayOfWeek: {
			"1": "Понеділок",
			"2": "Вівторок",
			"3": "Середа",
			"4": "Четвер",
			"5": "П'ятниця",
		},
		LabelPairNum: {
			"1": "1 пара",
			"2": "2 пара",
			"3": "3 пара",
			"4": "4 пара",
		},
		LabelTypeOfWeek: {
			string(WeekBoth): "Щотижня",
			string(WeekEven): "Парний тиждень",
			string(WeekOdd):  "Непарний тиждень",
		},
		LabelTypeOfLesson: {
			string(LessonLecture):    "Лекція",
			string(LessonLaboratory): "Лабораторна",
			string(LessonPractice):   "Практика",
			string(LessonSeminar):    "Семінар",
		},
		LabelTeacherPosition: {
			string(PositionAssistant):      "Асистент",
			string(PositionLecturer):       "Викладач",
			string(PositionSeniorLecturer): "Старший викладач",
			string(PositionDocent):         "Доцент",
			string(PositionProfessor):      "Професор",
		},
	},
	LangEN: {
		LabelDayOfWeek: {
			"1": "Monday",
			"2": "Tuesday",
			"3": "Wednesday",
			"4": "Thursday",
			"5": "Friday",
		},
		LabelPairNum: {
			"1": "1st pair",
			"2": "2nd pair",
			"3": "3rd pair",
			"4": "4th pair",
		},
		LabelTypeOfWeek: {
			string(WeekBoth): "Every week",
			string(WeekEven): "Even week",
			string(WeekOdd):  "Odd week",
		},
		LabelTypeOfLesson: {
			string(LessonLecture):    "Lecture",
			string(LessonLaboratory): "Laboratory",
			string(LessonPractice):   "Practice",
			string(LessonSeminar):    "Seminar",
		},
		LabelTeacherPosition: {
			string(PositionAssistant):      "Assistant",
			string(PositionLecturer):       "Lecturer",
			string(PositionSeniorLecturer): "Senior lecturer",
			string(PositionDocent):         "Associate professor",
			string(PositionProfessor):      "Professor",
		},
	},
}

// NormalizeLang falls back to the default language for unknown input.
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := labels[lang]; ok {
		return lang
	}
	return DefaultLang
}

// Label returns the display string for code, or the code itself when unknown.
func Label(lang, kind, code string) string {
	if t, ok := labels[NormalizeLang(lang)][kind]; ok {
		if s, ok := t[code]; ok {
			return s
		}
	}
	return code
}

// Labels returns a copy of every label table for lang.
func Labels(lang string) map[string]LabelTable {
	src := labels[NormalizeLang(lang)]
	out := make(map[string]LabelTable, len(src))
	for kind, t := range src {
		cp := make(LabelTable, len(t))
		for k, v := range t {
			cp[k] = v
		}
		out[kind] = cp
	}
	return out
}
