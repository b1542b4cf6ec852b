package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/academics/subjects/model"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

type SubjectService struct {
	DB       *gorm.DB
	Registry *schema.Registry
}

func NewSubjectService(db *gorm.DB, reg *schema.Registry) *SubjectService {
	return &SubjectService{DB: db, Registry: reg}
}

type SubjectInput struct {
	ShortTitle string
	Title      string
}

type SubjectPatch struct {
	ShortTitle *string
	Title      *string
}

type SubjectFilter struct {
	// substring of short_title or title, case-insensitive
	Search        string
	Offset, Limit int
	Order         string
}

func validateSubject(m *model.SubjectModel) error {
	verr := apperr.NewValidation(catalog.EntitySubject)
	switch n := len([]rune(m.SubjectShortTitle)); {
	case n == 0:
		verr.Add("subject_short_title", "required")
	case n > 10:
		verr.Add("subject_short_title", "max=10")
	}
	switch n := len([]rune(m.SubjectTitle)); {
	case n == 0:
		verr.Add("subject_title", "required")
	case n > 60:
		verr.Add("subject_title", "max=60")
	}
	return verr.OrNil()
}

func (s *SubjectService) Create(ctx context.Context, in SubjectInput) (*model.SubjectModel, error) {
	m := &model.SubjectModel{
		SubjectShortTitle: helper.NormalizeText(in.ShortTitle),
		SubjectTitle:      helper.NormalizeText(in.Title),
	}
	if err := validateSubject(m); err != nil {
		return nil, err
	}
	if err := store.Create(ctx, s.DB, catalog.EntitySubject, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SubjectService) Get(ctx context.Context, id uuid.UUID) (*model.SubjectModel, error) {
	return store.Get[model.SubjectModel](ctx, s.DB, catalog.EntitySubject, "subject_id", id)
}

func (s *SubjectService) List(ctx context.Context, f SubjectFilter) ([]model.SubjectModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.SubjectModel{})
	if term := helper.NormalizeText(f.Search); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(subject_short_title) LIKE LOWER(?) OR LOWER(subject_title) LIKE LOWER(?)", like, like)
	}
	var out []model.SubjectModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, f.Order, &out)
	return out, total, err
}

func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, p SubjectPatch) (*model.SubjectModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ShortTitle != nil {
		m.SubjectShortTitle = helper.NormalizeText(*p.ShortTitle)
	}
	if p.Title != nil {
		m.SubjectTitle = helper.NormalizeText(*p.Title)
	}
	if err := validateSubject(m); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, s.DB, catalog.EntitySubject, id, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete is refused while teachers are assigned to the subject or exams reference it.
func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntitySubject, "subjects", "subject_id", id)
	})
}
