// Package store holds the generic insert/get/update primitives shared by the
// feature services. Errors come back already translated into apperr types.
package store

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"schedules_backend/internals/helpers/apperr"
)

func Create[T any](ctx context.Context, db *gorm.DB, entity string, m *T) error {
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return apperr.FromDB(entity, uuid.Nil, err)
	}
	return nil
}

func Get[T any](ctx context.Context, db *gorm.DB, entity, idColumn string, id uuid.UUID) (*T, error) {
	var m T
	if err := db.WithContext(ctx).Where(pq.QuoteIdentifier(idColumn)+" = ?", id).First(&m).Error; err != nil {
		return nil, apperr.FromDB(entity, id, err)
	}
	return &m, nil
}

// Save writes every column of m; the caller loaded m first.
func Save[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID, m *T) error {
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return apperr.FromDB(entity, id, err)
	}
	return nil
}

// MustExist fails with NotFound for the first id missing from table.
func MustExist(ctx context.Context, db *gorm.DB, entity, table, idColumn string, ids ...uuid.UUID) error {
	uniq := Unique(ids)
	if len(uniq) == 0 {
		return nil
	}
	var found []uuid.UUID
	if err := db.WithContext(ctx).Table(table).
		Where(pq.QuoteIdentifier(idColumn)+" IN ?", uniq).
		Pluck(idColumn, &found).Error; err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	seen := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	for _, id := range uniq {
		if _, ok := seen[id]; !ok {
			return apperr.NotFound(entity, id)
		}
	}
	return nil
}

// Unique drops duplicates and uuid.Nil while keeping order.
func Unique(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Sorted returns a copy of ids in the order ORDER BY puts a uuid column.
func Sorted(ids []uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	if out == nil {
		out = []uuid.UUID{}
	}
	return out
}

// Page applies offset/limit and returns the total count before paging.
func Page[T any](ctx context.Context, q *gorm.DB, offset, limit int, order string, out *[]T) (int64, error) {
	var total int64
	if err := q.WithContext(ctx).Count(&total).Error; err != nil {
		return 0, err
	}
	if order != "" {
		q = q.Order(order)
	}
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.WithContext(ctx).Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}
