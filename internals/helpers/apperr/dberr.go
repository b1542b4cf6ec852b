package apperr

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE codes we translate
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// pgCode extracts the SQLSTATE from pgx or lib/pq errors.
func pgCode(err error) (code, constraint string) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if code, _ := pgCode(err); code == pgUniqueViolation {
		return true
	}
	// sqlite without TranslateError
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if code, _ := pgCode(err); code == pgForeignKeyViolation {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func IsCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if code, _ := pgCode(err); code == pgCheckViolation {
		return true
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// FromDB translates a GORM/driver error raised while touching entity id.
// Errors that are already typed pass through untouched.
func FromDB(entity string, id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	if isTyped(err) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(entity, id)
	case IsUniqueViolation(err):
		_, constraint := pgCode(err)
		field := "unique"
		if constraint != "" {
			field = constraint
		}
		return Validation(entity, field, "value already exists")
	case IsForeignKeyViolation(err):
		return &ReferentialIntegrityError{Entity: entity, ID: id}
	case IsCheckViolation(err):
		_, constraint := pgCode(err)
		field := "check"
		if constraint != "" {
			field = constraint
		}
		return Validation(entity, field, "value out of range")
	}
	return err
}

func isTyped(err error) bool {
	var (
		ve *ValidationError
		nf *NotFoundError
		sc *ScheduleConflictError
		tr *TermReuseError
		ri *ReferentialIntegrityError
	)
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &sc) ||
		errors.As(err, &tr) || errors.As(err, &ri)
}
