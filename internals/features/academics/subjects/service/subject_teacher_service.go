package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/academics/subjects/model"
	"schedules_backend/internals/helpers/apperr"
)

type SubjectTeacherInput struct {
	SubjectID    uuid.UUID
	TeacherID    uuid.UUID
	TypeOfLesson constants.TypeOfLesson
}

type SubjectTeacherFilter struct {
	SubjectID     *uuid.UUID
	TeacherID     *uuid.UUID
	TypeOfLesson  *constants.TypeOfLesson
	Offset, Limit int
}

// AssignTeacher links a teacher to a subject for one lesson type.
// The (subject, teacher, type) triple is unique.
func (s *SubjectService) AssignTeacher(ctx context.Context, in SubjectTeacherInput) (*model.SubjectTeacherModel, error) {
	verr := apperr.NewValidation(catalog.EntitySubjectTeacher)
	if in.SubjectID == uuid.Nil {
		verr.Add("subject_teacher_subject_id", "required")
	}
	if in.TeacherID == uuid.Nil {
		verr.Add("subject_teacher_teacher_id", "required")
	}
	if !in.TypeOfLesson.Valid() {
		verr.Add("subject_teacher_type_of_lesson", "oneof=lecture laboratory practice seminar")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	m := &model.SubjectTeacherModel{
		SubjectTeacherSubjectID:    in.SubjectID,
		SubjectTeacherTeacherID:    in.TeacherID,
		SubjectTeacherTypeOfLesson: in.TypeOfLesson,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := store.MustExist(ctx, tx, catalog.EntitySubject, "subjects", "subject_id", in.SubjectID); err != nil {
			return err
		}
		if err := store.MustExist(ctx, tx, catalog.EntityTeacher, "teachers", "teacher_id", in.TeacherID); err != nil {
			return err
		}
		var n int64
		if err := tx.WithContext(ctx).Model(&model.SubjectTeacherModel{}).
			Where("subject_teacher_subject_id = ? AND subject_teacher_teacher_id = ? AND subject_teacher_type_of_lesson = ?",
				in.SubjectID, in.TeacherID, in.TypeOfLesson).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Validation(catalog.EntitySubjectTeacher, "subject_teacher_type_of_lesson", "teacher already assigned to this subject for this lesson type")
		}
		return store.Create(ctx, tx, catalog.EntitySubjectTeacher, m)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[SubjectTeacher] assigned subject=%s teacher=%s type=%s", in.SubjectID, in.TeacherID, in.TypeOfLesson)
	return m, nil
}

func (s *SubjectService) GetSubjectTeacher(ctx context.Context, id uuid.UUID) (*model.SubjectTeacherModel, error) {
	return store.Get[model.SubjectTeacherModel](ctx, s.DB, catalog.EntitySubjectTeacher, "subject_teacher_id", id)
}

func (s *SubjectService) ListSubjectTeachers(ctx context.Context, f SubjectTeacherFilter) ([]model.SubjectTeacherModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.SubjectTeacherModel{})
	if f.SubjectID != nil {
		q = q.Where("subject_teacher_subject_id = ?", *f.SubjectID)
	}
	if f.TeacherID != nil {
		q = q.Where("subject_teacher_teacher_id = ?", *f.TeacherID)
	}
	if f.TypeOfLesson != nil {
		q = q.Where("subject_teacher_type_of_lesson = ?", *f.TypeOfLesson)
	}
	var out []model.SubjectTeacherModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, "subject_teacher_created_at ASC", &out)
	return out, total, err
}

// UnassignTeacher is refused while schedule records use the link.
func (s *SubjectService) UnassignTeacher(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntitySubjectTeacher, "subject_teachers", "subject_teacher_id", id)
	})
}
