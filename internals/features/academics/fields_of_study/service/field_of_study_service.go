package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/academics/fields_of_study/model"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

type FieldOfStudyService struct {
	DB       *gorm.DB
	Registry *schema.Registry
}

func NewFieldOfStudyService(db *gorm.DB, reg *schema.Registry) *FieldOfStudyService {
	return &FieldOfStudyService{DB: db, Registry: reg}
}

type FieldOfStudyInput struct {
	ShortTitle string
	Title      string
}

type FieldOfStudyPatch struct {
	ShortTitle *string
	Title      *string
}

type FieldOfStudyFilter struct {
	ShortTitle    string
	Offset, Limit int
	Order         string
}

func validate(m *model.FieldOfStudyModel) error {
	verr := apperr.NewValidation(catalog.EntityFieldOfStudy)
	switch n := len([]rune(m.FieldOfStudyShortTitle)); {
	case n == 0:
		verr.Add("field_of_study_short_title", "required")
	case n > 2:
		verr.Add("field_of_study_short_title", "max=2")
	}
	switch n := len([]rune(m.FieldOfStudyTitle)); {
	case n == 0:
		verr.Add("field_of_study_title", "required")
	case n > 30:
		verr.Add("field_of_study_title", "max=30")
	}
	return verr.OrNil()
}

func (s *FieldOfStudyService) Create(ctx context.Context, in FieldOfStudyInput) (*model.FieldOfStudyModel, error) {
	m := &model.FieldOfStudyModel{
		FieldOfStudyShortTitle: helper.NormalizeText(in.ShortTitle),
		FieldOfStudyTitle:      helper.NormalizeText(in.Title),
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := store.Create(ctx, s.DB, catalog.EntityFieldOfStudy, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FieldOfStudyService) Get(ctx context.Context, id uuid.UUID) (*model.FieldOfStudyModel, error) {
	return store.Get[model.FieldOfStudyModel](ctx, s.DB, catalog.EntityFieldOfStudy, "field_of_study_id", id)
}

// List filters by exact short_title; several fields may share one.
func (s *FieldOfStudyService) List(ctx context.Context, f FieldOfStudyFilter) ([]model.FieldOfStudyModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.FieldOfStudyModel{})
	if short := helper.NormalizeText(f.ShortTitle); short != "" {
		q = q.Where("field_of_study_short_title = ?", short)
	}
	var out []model.FieldOfStudyModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, f.Order, &out)
	return out, total, err
}

func (s *FieldOfStudyService) Update(ctx context.Context, id uuid.UUID, p FieldOfStudyPatch) (*model.FieldOfStudyModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ShortTitle != nil {
		m.FieldOfStudyShortTitle = helper.NormalizeText(*p.ShortTitle)
	}
	if p.Title != nil {
		m.FieldOfStudyTitle = helper.NormalizeText(*p.Title)
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, s.DB, catalog.EntityFieldOfStudy, id, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete is refused while groups belong to the field.
func (s *FieldOfStudyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityFieldOfStudy, "fields_of_study", "field_of_study_id", id)
	})
}
