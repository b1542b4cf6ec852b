// Package apperr holds the typed errors returned by the storage layer.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Error codes rendered in the JSON envelope.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeScheduleConflict     = "SCHEDULE_CONFLICT"
	CodeTermReuse            = "TERM_REUSE"
	CodeReferentialIntegrity = "REFERENTIAL_INTEGRITY"
	CodeNotFound             = "NOT_FOUND"
)

/* ===============================
   ValidationError
=================================*/

type ValidationError struct {
	Entity string
	Fields map[string][]string
}

func NewValidation(entity string) *ValidationError {
	return &ValidationError{Entity: entity, Fields: map[string][]string{}}
}

// Validation builds a single-field validation error.
func Validation(entity, field, msg string) *ValidationError {
	return NewValidation(entity).Add(field, msg)
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil keeps call sites short: `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

/* ===============================
   NotFoundError
=================================*/

type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func NotFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

/* ===============================
   ScheduleConflictError
=================================*/

// Conflict reasons
const (
	ReasonGroup   = "group"
	ReasonTeacher = "teacher"
)

// Conflict describes one existing record colliding with a candidate.
type Conflict struct {
	RecordID  uuid.UUID   `json:"record_id"`
	Reasons   []string    `json:"reasons"`
	GroupIDs  []uuid.UUID `json:"group_ids,omitempty"`
	TeacherID *uuid.UUID  `json:"teacher_id,omitempty"`
}

type ScheduleConflictError struct {
	DayOfWeek  int16      `json:"day_of_week"`
	PairNum    int16      `json:"pair_num"`
	TypeOfWeek string     `json:"type_of_week"`
	Conflicts  []Conflict `json:"conflicts"`
}

func (e *ScheduleConflictError) Error() string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		ids = append(ids, c.RecordID.String())
	}
	return fmt.Sprintf("schedule conflict on day %d pair %d (%s) with record(s) %s",
		e.DayOfWeek, e.PairNum, e.TypeOfWeek, strings.Join(ids, ", "))
}

// RecordIDs lists the colliding record ids in report order.
func (e *ScheduleConflictError) RecordIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		out = append(out, c.RecordID)
	}
	return out
}

/* ===============================
   TermReuseError
=================================*/

type TermReuseError struct {
	TermID uuid.UUID `json:"term_id"`
	// nil when both slots of the same year point at one term
	ClaimedByYearID *uuid.UUID `json:"claimed_by_year_id,omitempty"`
}

func (e *TermReuseError) Error() string {
	if e.ClaimedByYearID == nil {
		return fmt.Sprintf("academic term %s used for both slots of one year", e.TermID)
	}
	return fmt.Sprintf("academic term %s already belongs to academic year %s", e.TermID, *e.ClaimedByYearID)
}

/* ===============================
   ReferentialIntegrityError
=================================*/

type ReferentialIntegrityError struct {
	Entity string
	ID     uuid.UUID
	// dependent table -> number of rows still pointing at the entity
	Dependents map[string]int64
}

func (e *ReferentialIntegrityError) Error() string {
	if len(e.Dependents) == 0 {
		return fmt.Sprintf("%s %s is still referenced", e.Entity, e.ID)
	}
	keys := make([]string, 0, len(e.Dependents))
	for k := range e.Dependents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, e.Dependents[k]))
	}
	return fmt.Sprintf("%s %s is still referenced by %s", e.Entity, e.ID, strings.Join(parts, ", "))
}

/* ===============================
   HTTP mapping
=================================*/

// Status maps an error to its HTTP status and envelope code.
func Status(err error) (int, string) {
	var (
		ve *ValidationError
		nf *NotFoundError
		sc *ScheduleConflictError
		tr *TermReuseError
		ri *ReferentialIntegrityError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity, CodeValidation
	case errors.As(err, &nf):
		return fiber.StatusNotFound, CodeNotFound
	case errors.As(err, &sc):
		return fiber.StatusConflict, CodeScheduleConflict
	case errors.As(err, &tr):
		return fiber.StatusConflict, CodeTermReuse
	case errors.As(err, &ri):
		return fiber.StatusConflict, CodeReferentialIntegrity
	case errors.As(err, &fe):
		return fe.Code, ""
	}
	return fiber.StatusInternalServerError, "INTERNAL_ERROR"
}

// Details returns the structured payload for the error envelope, if any.
func Details(err error) any {
	var (
		ve *ValidationError
		sc *ScheduleConflictError
		tr *TermReuseError
		ri *ReferentialIntegrityError
		nf *NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Fields
	case errors.As(err, &sc):
		return sc
	case errors.As(err, &tr):
		return tr
	case errors.As(err, &ri):
		return map[string]any{"entity": ri.Entity, "id": ri.ID, "dependents": ri.Dependents}
	case errors.As(err, &nf):
		return map[string]any{"entity": nf.Entity, "id": nf.ID}
	}
	return nil
}
