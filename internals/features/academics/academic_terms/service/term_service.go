package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/academics/academic_terms/model"
	groupModel "schedules_backend/internals/features/academics/groups/model"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

type AcademicService struct {
	DB       *gorm.DB
	Registry *schema.Registry
}

func NewAcademicService(db *gorm.DB, reg *schema.Registry) *AcademicService {
	return &AcademicService{DB: db, Registry: reg}
}

/* ============================================
   Terms
============================================ */

type TermInput struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// TermPatch: nil leaves a field unchanged; Clear* empties it.
type TermPatch struct {
	Name       *string
	StartDate  *time.Time
	EndDate    *time.Time
	ClearDates bool
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}

func validateTerm(m *model.AcademicTermModel) error {
	verr := apperr.NewValidation(catalog.EntityAcademicTerm)
	if m.AcademicTermName != nil && len([]rune(*m.AcademicTermName)) > 30 {
		verr.Add("academic_term_name", "max=30")
	}
	if m.AcademicTermStartDate != nil && m.AcademicTermEndDate != nil &&
		time.Time(*m.AcademicTermEndDate).Before(time.Time(*m.AcademicTermStartDate)) {
		verr.Add("academic_term_end_date", "must not be before start date")
	}
	return verr.OrNil()
}

func (s *AcademicService) CreateTerm(ctx context.Context, in TermInput) (*model.AcademicTermModel, error) {
	m := &model.AcademicTermModel{
		AcademicTermName:      helper.NormalizePtr(in.Name),
		AcademicTermStartDate: toDate(in.StartDate),
		AcademicTermEndDate:   toDate(in.EndDate),
	}
	if err := validateTerm(m); err != nil {
		return nil, err
	}
	if err := store.Create(ctx, s.DB, catalog.EntityAcademicTerm, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AcademicService) GetTerm(ctx context.Context, id uuid.UUID) (*model.AcademicTermModel, error) {
	return store.Get[model.AcademicTermModel](ctx, s.DB, catalog.EntityAcademicTerm, "academic_term_id", id)
}

func (s *AcademicService) ListTerms(ctx context.Context, offset, limit int, order string) ([]model.AcademicTermModel, int64, error) {
	var out []model.AcademicTermModel
	total, err := store.Page(ctx, s.DB.WithContext(ctx).Model(&model.AcademicTermModel{}), offset, limit, order, &out)
	return out, total, err
}

func (s *AcademicService) UpdateTerm(ctx context.Context, id uuid.UUID, p TermPatch) (*model.AcademicTermModel, error) {
	m, err := s.GetTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		m.AcademicTermName = helper.NormalizePtr(p.Name)
	}
	if p.ClearDates {
		m.AcademicTermStartDate, m.AcademicTermEndDate = nil, nil
	}
	if p.StartDate != nil {
		m.AcademicTermStartDate = toDate(p.StartDate)
	}
	if p.EndDate != nil {
		m.AcademicTermEndDate = toDate(p.EndDate)
	}
	if err := validateTerm(m); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, s.DB, catalog.EntityAcademicTerm, id, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteTerm is refused while a year or a group still points at the term.
func (s *AcademicService) DeleteTerm(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityAcademicTerm, "academic_terms", "academic_term_id", id)
	})
}

/* ============================================
   Accessors
============================================ */

// YearForTerm returns the year holding the term, or nil when it is unassigned.
func (s *AcademicService) YearForTerm(ctx context.Context, termID uuid.UUID) (*model.AcademicYearModel, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityAcademicTerm, "academic_terms", "academic_term_id", termID); err != nil {
		return nil, err
	}
	var years []model.AcademicYearModel
	err := s.DB.WithContext(ctx).
		Where("academic_year_term1_id = ? OR academic_year_term2_id = ?", termID, termID).
		Limit(1).
		Find(&years).Error
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, nil
	}
	return &years[0], nil
}

func (s *AcademicService) GroupsForTerm(ctx context.Context, termID uuid.UUID) ([]groupModel.GroupModel, error) {
	if err := store.MustExist(ctx, s.DB, catalog.EntityAcademicTerm, "academic_terms", "academic_term_id", termID); err != nil {
		return nil, err
	}
	var out []groupModel.GroupModel
	err := s.DB.WithContext(ctx).
		Where("group_academic_term_id = ?", termID).
		Order("group_course, group_name").
		Find(&out).Error
	return out, err
}

func logYear(action string, y *model.AcademicYearModel) {
	log.Printf("[AcademicYear] %s id=%s start_year=%d term1=%s term2=%s",
		action, y.AcademicYearID, y.AcademicYearStartYear, y.AcademicYearTerm1ID, y.AcademicYearTerm2ID)
}
