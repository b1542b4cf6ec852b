package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/academics/academic_terms/model"
	"schedules_backend/internals/helpers/apperr"
)

type YearInput struct {
	StartYear int
	Term1ID   uuid.UUID
	Term2ID   uuid.UUID
}

type YearPatch struct {
	StartYear *int
	Term1ID   *uuid.UUID
	Term2ID   *uuid.UUID
}

func validateYear(in YearInput) error {
	verr := apperr.NewValidation(catalog.EntityAcademicYear)
	if in.StartYear < 1900 || in.StartYear > 2200 {
		verr.Add("academic_year_start_year", "must be between 1900 and 2200")
	}
	if in.Term1ID == uuid.Nil {
		verr.Add("academic_year_term1_id", "required")
	}
	if in.Term2ID == uuid.Nil {
		verr.Add("academic_year_term2_id", "required")
	}
	return verr.OrNil()
}

// ValidatePairing enforces that a year holds two distinct, existing terms
// that no other year holds. yearID is the year being edited, uuid.Nil on create.
func ValidatePairing(ctx context.Context, db *gorm.DB, yearID, term1, term2 uuid.UUID) error {
	if term1 == term2 {
		return &apperr.TermReuseError{TermID: term1}
	}
	if err := store.MustExist(ctx, db, catalog.EntityAcademicTerm, "academic_terms", "academic_term_id", term1, term2); err != nil {
		return err
	}

	var claims []model.AcademicTermClaimModel
	q := db.WithContext(ctx).Where("term_id IN ?", []uuid.UUID{term1, term2})
	if yearID != uuid.Nil {
		q = q.Where("academic_year_id <> ?", yearID)
	}
	if err := q.Order("slot").Find(&claims).Error; err != nil {
		return err
	}
	// report term1 before term2
	for _, want := range []uuid.UUID{term1, term2} {
		for _, c := range claims {
			if c.TermID == want {
				other := c.AcademicYearID
				return &apperr.TermReuseError{TermID: want, ClaimedByYearID: &other}
			}
		}
	}
	return nil
}

// errClaimTaken carries the terms of a write that collided inside a transaction.
// The transaction is unusable by then, so the claimant is looked up afterwards.
type errClaimTaken struct{ terms []uuid.UUID }

func (e errClaimTaken) Error() string { return fmt.Sprintf("term claim taken: %v", e.terms) }

func writeClaims(ctx context.Context, tx *gorm.DB, y *model.AcademicYearModel) error {
	for i, term := range y.Terms() {
		claim := model.AcademicTermClaimModel{TermID: term, AcademicYearID: y.AcademicYearID, Slot: int16(i + 1)}
		if err := tx.WithContext(ctx).Create(&claim).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				return errClaimTaken{terms: []uuid.UUID{term}}
			}
			return apperr.FromDB(catalog.EntityTermClaim, term, err)
		}
	}
	return nil
}

// claimConflict turns a lost claim race into a TermReuseError naming the winner.
func (s *AcademicService) claimConflict(ctx context.Context, err error) error {
	var taken errClaimTaken
	if !errors.As(err, &taken) {
		return err
	}
	for _, term := range taken.terms {
		var claims []model.AcademicTermClaimModel
		if e := s.DB.WithContext(ctx).Where("term_id = ?", term).Limit(1).Find(&claims).Error; e == nil && len(claims) > 0 {
			return &apperr.TermReuseError{TermID: term, ClaimedByYearID: &claims[0].AcademicYearID}
		}
	}
	return &apperr.TermReuseError{TermID: taken.terms[0]}
}

func (s *AcademicService) CreateYear(ctx context.Context, in YearInput) (*model.AcademicYearModel, error) {
	if err := validateYear(in); err != nil {
		return nil, err
	}
	y := &model.AcademicYearModel{
		AcademicYearStartYear: in.StartYear,
		AcademicYearTerm1ID:   in.Term1ID,
		AcademicYearTerm2ID:   in.Term2ID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ValidatePairing(ctx, tx, uuid.Nil, in.Term1ID, in.Term2ID); err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Create(y).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				return errClaimTaken{terms: []uuid.UUID{in.Term1ID, in.Term2ID}}
			}
			return apperr.FromDB(catalog.EntityAcademicYear, uuid.Nil, err)
		}
		return writeClaims(ctx, tx, y)
	})
	if err != nil {
		return nil, s.claimConflict(ctx, err)
	}
	logYear("created", y)
	return y, nil
}

func (s *AcademicService) GetYear(ctx context.Context, id uuid.UUID) (*model.AcademicYearModel, error) {
	return store.Get[model.AcademicYearModel](ctx, s.DB, catalog.EntityAcademicYear, "academic_year_id", id)
}

func (s *AcademicService) ListYears(ctx context.Context, offset, limit int, order string) ([]model.AcademicYearModel, int64, error) {
	var out []model.AcademicYearModel
	total, err := store.Page(ctx, s.DB.WithContext(ctx).Model(&model.AcademicYearModel{}), offset, limit, order, &out)
	return out, total, err
}

func (s *AcademicService) UpdateYear(ctx context.Context, id uuid.UUID, p YearPatch) (*model.AcademicYearModel, error) {
	var y model.AcademicYearModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("academic_year_id = ?", id).First(&y).Error; err != nil {
			return apperr.FromDB(catalog.EntityAcademicYear, id, err)
		}
		in := YearInput{StartYear: y.AcademicYearStartYear, Term1ID: y.AcademicYearTerm1ID, Term2ID: y.AcademicYearTerm2ID}
		if p.StartYear != nil {
			in.StartYear = *p.StartYear
		}
		if p.Term1ID != nil {
			in.Term1ID = *p.Term1ID
		}
		if p.Term2ID != nil {
			in.Term2ID = *p.Term2ID
		}
		if err := validateYear(in); err != nil {
			return err
		}
		if err := ValidatePairing(ctx, tx, id, in.Term1ID, in.Term2ID); err != nil {
			return err
		}

		// release old claims first so swapping term1/term2 is allowed
		if err := tx.WithContext(ctx).Where("academic_year_id = ?", id).Delete(&model.AcademicTermClaimModel{}).Error; err != nil {
			return err
		}
		y.AcademicYearStartYear = in.StartYear
		y.AcademicYearTerm1ID = in.Term1ID
		y.AcademicYearTerm2ID = in.Term2ID
		if err := tx.WithContext(ctx).Save(&y).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				return errClaimTaken{terms: []uuid.UUID{in.Term1ID, in.Term2ID}}
			}
			return apperr.FromDB(catalog.EntityAcademicYear, id, err)
		}
		return writeClaims(ctx, tx, &y)
	})
	if err != nil {
		return nil, s.claimConflict(ctx, err)
	}
	logYear("updated", &y)
	return &y, nil
}

// DeleteYear releases the year's term claims with it.
func (s *AcademicService) DeleteYear(ctx context.Context, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityAcademicYear, "academic_years", "academic_year_id", id)
	})
	if err == nil {
		logYear("deleted", &model.AcademicYearModel{AcademicYearID: id})
	}
	return err
}
