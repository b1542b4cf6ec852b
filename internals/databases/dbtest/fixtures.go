package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	termModel "schedules_backend/internals/features/academics/academic_terms/model"
	fosModel "schedules_backend/internals/features/academics/fields_of_study/model"
	groupModel "schedules_backend/internals/features/academics/groups/model"
	subjectModel "schedules_backend/internals/features/academics/subjects/model"
	teacherModel "schedules_backend/internals/features/users/teachers/model"
)

// MustCreate inserts v or fails the test.
func MustCreate[T any](t *testing.T, db *gorm.DB, v *T) *T {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
	return v
}

func Term(t *testing.T, db *gorm.DB) uuid.UUID {
	return MustCreate(t, db, &termModel.AcademicTermModel{}).AcademicTermID
}

func FieldOfStudy(t *testing.T, db *gorm.DB, short, title string) uuid.UUID {
	return MustCreate(t, db, &fosModel.FieldOfStudyModel{
		FieldOfStudyShortTitle: short,
		FieldOfStudyTitle:      title,
	}).FieldOfStudyID
}

// Group creates a group in term under a fresh field of study.
func Group(t *testing.T, db *gorm.DB, name string, termID uuid.UUID) uuid.UUID {
	fos := FieldOfStudy(t, db, "КН", "Комп'ютерні науки")
	return GroupIn(t, db, name, fos, termID)
}

func GroupIn(t *testing.T, db *gorm.DB, name string, fosID, termID uuid.UUID) uuid.UUID {
	return MustCreate(t, db, &groupModel.GroupModel{
		GroupName:           name,
		GroupCourse:         1,
		GroupFieldOfStudyID: fosID,
		GroupAcademicTermID: termID,
	}).GroupID
}

func Teacher(t *testing.T, db *gorm.DB, surname string) uuid.UUID {
	return MustCreate(t, db, &teacherModel.TeacherModel{TeacherSurname: surname}).TeacherID
}

func Subject(t *testing.T, db *gorm.DB, short, title string) uuid.UUID {
	return MustCreate(t, db, &subjectModel.SubjectModel{SubjectShortTitle: short, SubjectTitle: title}).SubjectID
}

func SubjectTeacher(t *testing.T, db *gorm.DB, subjectID, teacherID uuid.UUID, lesson constants.TypeOfLesson) uuid.UUID {
	return MustCreate(t, db, &subjectModel.SubjectTeacherModel{
		SubjectTeacherSubjectID:    subjectID,
		SubjectTeacherTeacherID:    teacherID,
		SubjectTeacherTypeOfLesson: lesson,
	}).SubjectTeacherID
}
