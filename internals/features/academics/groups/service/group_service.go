package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	termModel "schedules_backend/internals/features/academics/academic_terms/model"
	model "schedules_backend/internals/features/academics/groups/model"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

type GroupService struct {
	DB       *gorm.DB
	Registry *schema.Registry
}

func NewGroupService(db *gorm.DB, reg *schema.Registry) *GroupService {
	return &GroupService{DB: db, Registry: reg}
}

type GroupInput struct {
	Name           string
	Course         int
	FieldOfStudyID uuid.UUID
	AcademicTermID uuid.UUID
}

type GroupPatch struct {
	Name           *string
	Course         *int
	FieldOfStudyID *uuid.UUID
	AcademicTermID *uuid.UUID
}

type GroupFilter struct {
	TermID         *uuid.UUID
	FieldOfStudyID *uuid.UUID
	Course         *int
	Offset, Limit  int
	Order          string
}

func validate(m *model.GroupModel) error {
	verr := apperr.NewValidation(catalog.EntityGroup)
	switch n := len([]rune(m.GroupName)); {
	case n == 0:
		verr.Add("group_name", "required")
	case n > 8:
		verr.Add("group_name", "max=8")
	}
	if m.GroupCourse < 1 {
		verr.Add("group_course", "must be positive")
	}
	if m.GroupFieldOfStudyID == uuid.Nil {
		verr.Add("group_field_of_study_id", "required")
	}
	if m.GroupAcademicTermID == uuid.Nil {
		verr.Add("group_academic_term_id", "required")
	}
	return verr.OrNil()
}

func (s *GroupService) checkRefs(ctx context.Context, db *gorm.DB, m *model.GroupModel) error {
	if err := store.MustExist(ctx, db, catalog.EntityFieldOfStudy, "fields_of_study", "field_of_study_id", m.GroupFieldOfStudyID); err != nil {
		return err
	}
	return store.MustExist(ctx, db, catalog.EntityAcademicTerm, "academic_terms", "academic_term_id", m.GroupAcademicTermID)
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (*model.GroupModel, error) {
	m := &model.GroupModel{
		GroupName:           helper.NormalizeText(in.Name),
		GroupCourse:         in.Course,
		GroupFieldOfStudyID: in.FieldOfStudyID,
		GroupAcademicTermID: in.AcademicTermID,
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkRefs(ctx, tx, m); err != nil {
			return err
		}
		return store.Create(ctx, tx, catalog.EntityGroup, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *GroupService) Get(ctx context.Context, id uuid.UUID) (*model.GroupModel, error) {
	return store.Get[model.GroupModel](ctx, s.DB, catalog.EntityGroup, "group_id", id)
}

func (s *GroupService) List(ctx context.Context, f GroupFilter) ([]model.GroupModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.GroupModel{})
	if f.TermID != nil {
		q = q.Where("group_academic_term_id = ?", *f.TermID)
	}
	if f.FieldOfStudyID != nil {
		q = q.Where("group_field_of_study_id = ?", *f.FieldOfStudyID)
	}
	if f.Course != nil {
		q = q.Where("group_course = ?", *f.Course)
	}
	var out []model.GroupModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, f.Order, &out)
	return out, total, err
}

func (s *GroupService) Update(ctx context.Context, id uuid.UUID, p GroupPatch) (*model.GroupModel, error) {
	var m *model.GroupModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if m, err = store.Get[model.GroupModel](ctx, tx, catalog.EntityGroup, "group_id", id); err != nil {
			return err
		}
		if p.Name != nil {
			m.GroupName = helper.NormalizeText(*p.Name)
		}
		if p.Course != nil {
			m.GroupCourse = *p.Course
		}
		if p.FieldOfStudyID != nil {
			m.GroupFieldOfStudyID = *p.FieldOfStudyID
		}
		if p.AcademicTermID != nil {
			m.GroupAcademicTermID = *p.AcademicTermID
		}
		if err := validate(m); err != nil {
			return err
		}
		if err := s.checkRefs(ctx, tx, m); err != nil {
			return err
		}
		return store.Save(ctx, tx, catalog.EntityGroup, id, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete is refused while the group still has schedule records or exams.
func (s *GroupService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityGroup, "student_groups", "group_id", id)
	})
}

// TermForGroup follows the group's term reference.
func (s *GroupService) TermForGroup(ctx context.Context, groupID uuid.UUID) (*termModel.AcademicTermModel, error) {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return store.Get[termModel.AcademicTermModel](ctx, s.DB, catalog.EntityAcademicTerm, "academic_term_id", g.GroupAcademicTermID)
}
