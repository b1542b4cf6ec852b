package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	groupModel "schedules_backend/internals/features/academics/groups/model"
	model "schedules_backend/internals/features/schedules/exams/model"
	teacherModel "schedules_backend/internals/features/users/teachers/model"
	"schedules_backend/internals/helpers/apperr"
)

/* ============================================
   Types
============================================ */

// Exam is the exam row with its join rows folded in.
type Exam struct {
	model.ExamModel
	GroupIDs   []uuid.UUID `json:"exam_group_ids"`
	TeacherIDs []uuid.UUID `json:"exam_teacher_ids"`
}

type ExamInput struct {
	SubjectID  uuid.UUID
	Date       *time.Time
	GroupIDs   []uuid.UUID
	TeacherIDs []uuid.UUID
}

// ExamPatch: nil slices keep the current links.
type ExamPatch struct {
	SubjectID  *uuid.UUID
	GroupIDs   []uuid.UUID
	TeacherIDs []uuid.UUID
}

type ExamFilter struct {
	GroupID   *uuid.UUID
	TeacherID *uuid.UUID
	SubjectID *uuid.UUID
	Scheduled *bool
	From, To  *time.Time
	Offset    int
	Limit     int
}

type ExamService struct {
	DB       *gorm.DB
	Registry *schema.Registry
}

func NewExamService(db *gorm.DB, reg *schema.Registry) *ExamService {
	return &ExamService{DB: db, Registry: reg}
}

/* ============================================
   Create
============================================ */

func (in *ExamInput) validate() error {
	in.GroupIDs = store.Unique(in.GroupIDs)
	in.TeacherIDs = store.Unique(in.TeacherIDs)

	verr := apperr.NewValidation(catalog.EntityExam)
	if in.SubjectID == uuid.Nil {
		verr.Add("exam_subject_id", "required")
	}
	if len(in.GroupIDs) == 0 {
		verr.Add("exam_group_ids", "at least one group")
	}
	if in.Date != nil && in.Date.IsZero() {
		verr.Add("exam_date", "invalid date")
	}
	return verr.OrNil()
}

func (s *ExamService) Create(ctx context.Context, in ExamInput) (*Exam, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	m := &model.ExamModel{ExamSubjectID: in.SubjectID, ExamDate: in.Date}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkRefs(ctx, tx, in.SubjectID, in.GroupIDs, in.TeacherIDs); err != nil {
			return err
		}
		if err := store.Create(ctx, tx, catalog.EntityExam, m); err != nil {
			return err
		}
		return writeLinks(ctx, tx, m.ExamID, in.GroupIDs, in.TeacherIDs)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Exam] created id=%s subject=%s groups=%d teachers=%d scheduled=%t",
		m.ExamID, m.ExamSubjectID, len(in.GroupIDs), len(in.TeacherIDs), m.IsScheduled())
	return &Exam{ExamModel: *m, GroupIDs: store.Sorted(in.GroupIDs), TeacherIDs: store.Sorted(in.TeacherIDs)}, nil
}

func (s *ExamService) checkRefs(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID, groups, teachers []uuid.UUID) error {
	if err := store.MustExist(ctx, tx, catalog.EntitySubject, "subjects", "subject_id", subjectID); err != nil {
		return err
	}
	if err := store.MustExist(ctx, tx, catalog.EntityGroup, "student_groups", "group_id", groups...); err != nil {
		return err
	}
	return store.MustExist(ctx, tx, catalog.EntityTeacher, "teachers", "teacher_id", teachers...)
}

func writeLinks(ctx context.Context, tx *gorm.DB, examID uuid.UUID, groups, teachers []uuid.UUID) error {
	if len(groups) > 0 {
		rows := make([]model.GroupExamModel, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, model.GroupExamModel{ExamID: examID, GroupID: g})
		}
		if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
			return apperr.FromDB(catalog.EntityGroupExam, examID, err)
		}
	}
	if len(teachers) > 0 {
		rows := make([]model.ExamTeacherModel, 0, len(teachers))
		for _, t := range teachers {
			rows = append(rows, model.ExamTeacherModel{ExamID: examID, TeacherID: t})
		}
		if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
			return apperr.FromDB(catalog.EntityExamTeacher, examID, err)
		}
	}
	return nil
}

/* ============================================
   Read
============================================ */

func (s *ExamService) Get(ctx context.Context, id uuid.UUID) (*Exam, error) {
	m, err := store.Get[model.ExamModel](ctx, s.DB, catalog.EntityExam, "exam_id", id)
	if err != nil {
		return nil, err
	}
	out, err := s.hydrate(ctx, []model.ExamModel{*m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ExamService) Query(ctx context.Context, f ExamFilter) ([]Exam, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.ExamModel{})
	if f.GroupID != nil {
		q = q.Where("exam_id IN (?)", s.DB.Model(&model.GroupExamModel{}).Select("exam_id").Where("group_id = ?", *f.GroupID))
	}
	if f.TeacherID != nil {
		q = q.Where("exam_id IN (?)", s.DB.Model(&model.ExamTeacherModel{}).Select("exam_id").Where("teacher_id = ?", *f.TeacherID))
	}
	if f.SubjectID != nil {
		q = q.Where("exam_subject_id = ?", *f.SubjectID)
	}
	if f.Scheduled != nil {
		if *f.Scheduled {
			q = q.Where("exam_date IS NOT NULL")
		} else {
			q = q.Where("exam_date IS NULL")
		}
	}
	if f.From != nil {
		q = q.Where("exam_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("exam_date < ?", *f.To)
	}

	var rows []model.ExamModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, "exam_date IS NULL, exam_date, exam_id", &rows)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.hydrate(ctx, rows)
	return out, total, err
}

func (s *ExamService) hydrate(ctx context.Context, rows []model.ExamModel) ([]Exam, error) {
	out := make([]Exam, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(rows))
	idx := make(map[uuid.UUID]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ExamID
		idx[r.ExamID] = i
		out[i] = Exam{ExamModel: r, GroupIDs: []uuid.UUID{}, TeacherIDs: []uuid.UUID{}}
	}

	var groups []model.GroupExamModel
	if err := s.DB.WithContext(ctx).Where("exam_id IN ?", ids).Order("group_id").Find(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		i := idx[g.ExamID]
		out[i].GroupIDs = append(out[i].GroupIDs, g.GroupID)
	}

	var teachers []model.ExamTeacherModel
	if err := s.DB.WithContext(ctx).Where("exam_id IN ?", ids).Order("teacher_id").Find(&teachers).Error; err != nil {
		return nil, err
	}
	for _, t := range teachers {
		i := idx[t.ExamID]
		out[i].TeacherIDs = append(out[i].TeacherIDs, t.TeacherID)
	}
	return out, nil
}

/* ============================================
   Update
============================================ */

func (s *ExamService) Update(ctx context.Context, id uuid.UUID, p ExamPatch) (*Exam, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.ExamModel
		if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("exam_id = ?", id).First(&m).Error; err != nil {
			return apperr.FromDB(catalog.EntityExam, id, err)
		}

		if p.SubjectID != nil {
			m.ExamSubjectID = *p.SubjectID
		}
		var groups, teachers []uuid.UUID
		if p.GroupIDs != nil {
			groups = store.Unique(p.GroupIDs)
			if len(groups) == 0 {
				return apperr.Validation(catalog.EntityExam, "exam_group_ids", "at least one group")
			}
		}
		if p.TeacherIDs != nil {
			teachers = store.Unique(p.TeacherIDs)
		}
		if err := s.checkRefs(ctx, tx, m.ExamSubjectID, groups, teachers); err != nil {
			return err
		}
		if err := store.Save(ctx, tx, catalog.EntityExam, id, &m); err != nil {
			return err
		}

		if p.GroupIDs != nil {
			if err := tx.WithContext(ctx).Where("exam_id = ?", id).Delete(&model.GroupExamModel{}).Error; err != nil {
				return err
			}
		}
		if p.TeacherIDs != nil {
			if err := tx.WithContext(ctx).Where("exam_id = ?", id).Delete(&model.ExamTeacherModel{}).Error; err != nil {
				return err
			}
		}
		return writeLinks(ctx, tx, id, groups, teachers)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Schedule sets the exam date; Unschedule puts it back to NULL.
func (s *ExamService) Schedule(ctx context.Context, id uuid.UUID, date time.Time) (*Exam, error) {
	if date.IsZero() {
		return nil, apperr.Validation(catalog.EntityExam, "exam_date", "required")
	}
	if err := s.setDate(ctx, id, &date); err != nil {
		return nil, err
	}
	log.Printf("[Exam] scheduled id=%s date=%s", id, date.Format(time.RFC3339))
	return s.Get(ctx, id)
}

func (s *ExamService) Unschedule(ctx context.Context, id uuid.UUID) (*Exam, error) {
	if err := s.setDate(ctx, id, nil); err != nil {
		return nil, err
	}
	log.Printf("[Exam] unscheduled id=%s", id)
	return s.Get(ctx, id)
}

func (s *ExamService) setDate(ctx context.Context, id uuid.UUID, date *time.Time) error {
	res := s.DB.WithContext(ctx).Model(&model.ExamModel{}).
		Where("exam_id = ?", id).
		Updates(map[string]any{"exam_date": date, "exam_last_edited_at": time.Now()})
	if res.Error != nil {
		return apperr.FromDB(catalog.EntityExam, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(catalog.EntityExam, id)
	}
	return nil
}

/* ============================================
   Delete
============================================ */

// Delete removes the exam with its group and teacher links.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityExam, "exams", "exam_id", id)
	})
}

/* ============================================
   Accessors
============================================ */

func (s *ExamService) GroupsForExam(ctx context.Context, examID uuid.UUID) ([]groupModel.GroupModel, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityExam, "exams", "exam_id", examID); err != nil {
		return nil, err
	}
	var out []groupModel.GroupModel
	err := s.DB.WithContext(ctx).
		Where("group_id IN (?)", s.DB.Model(&model.GroupExamModel{}).Select("group_id").Where("exam_id = ?", examID)).
		Order("group_name").
		Find(&out).Error
	return out, err
}

func (s *ExamService) TeachersForExam(ctx context.Context, examID uuid.UUID) ([]teacherModel.TeacherModel, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityExam, "exams", "exam_id", examID); err != nil {
		return nil, err
	}
	var out []teacherModel.TeacherModel
	err := s.DB.WithContext(ctx).
		Where("teacher_id IN (?)", s.DB.Model(&model.ExamTeacherModel{}).Select("teacher_id").Where("exam_id = ?", examID)).
		Order("teacher_surname").
		Find(&out).Error
	return out, err
}

func (s *ExamService) ExamsForGroup(ctx context.Context, groupID uuid.UUID) ([]Exam, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityGroup, "student_groups", "group_id", groupID); err != nil {
		return nil, err
	}
	out, _, err := s.Query(ctx, ExamFilter{GroupID: &groupID})
	return out, err
}
