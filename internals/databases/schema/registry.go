// Package schema is the explicit table registry. Every entity is registered with
// its dependencies and references; migration runs in dependency order.
package schema

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	database "schedules_backend/internals/databases"
	"schedules_backend/internals/helpers/apperr"
)

// OnDelete policies for a reference.
type OnDelete string

const (
	Restrict OnDelete = "RESTRICT"
	Cascade  OnDelete = "CASCADE"
)

// Ref is a foreign key from Column of the registering entity to Table.IDColumn.
type Ref struct {
	Column   string
	Table    string
	IDColumn string
	OnDelete OnDelete
}

type Entity struct {
	Name  string
	Model any
	// Tables this entity's table points at; must be registered first.
	DependsOn []string
	Refs      []Ref
	// Extra DDL run after AutoMigrate on Postgres only (idempotent).
	PostgresDDL []string
}

type tabler interface{ TableName() string }

func (e Entity) Table() string {
	if t, ok := e.Model.(tabler); ok {
		return t.TableName()
	}
	return e.Name
}

// Registry keeps registration order; it is built once at startup and passed around.
type Registry struct {
	entities map[string]*Entity
	names    []string
}

func New() *Registry {
	return &Registry{entities: map[string]*Entity{}}
}

var (
	ErrDuplicateEntity = errors.New("schema: entity registered twice")
	ErrUnknownDep      = errors.New("schema: dependency not registered")
	ErrCycle           = errors.New("schema: dependency cycle")
)

func (r *Registry) Register(e Entity) error {
	if strings.TrimSpace(e.Name) == "" || e.Model == nil {
		return fmt.Errorf("schema: entity needs a name and a model")
	}
	if _, ok := r.entities[e.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.Name)
	}
	cp := e
	r.entities[e.Name] = &cp
	r.names = append(r.names, e.Name)
	return nil
}

// MustRegister is for static catalogs where a failure is a programming error.
func (r *Registry) MustRegister(entities ...Entity) *Registry {
	for _, e := range entities {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) Entity(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

func (r *Registry) byTable(table string) *Entity {
	for _, n := range r.names {
		if e := r.entities[n]; e.Table() == table {
			return e
		}
	}
	return nil
}

// Order returns entities in dependency order. Ties keep registration order.
func (r *Registry) Order() ([]*Entity, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(r.names))
	out := make([]*Entity, 0, len(r.names))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		e, ok := r.entities[name]
		if !ok {
			return fmt.Errorf("%w: %s (needed by %s)", ErrUnknownDep, name, strings.Join(path, " -> "))
		}
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(path, name), " -> "))
		}
		state[name] = visiting
		for _, dep := range e.DependsOn {
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		out = append(out, e)
		return nil
	}

	for _, n := range r.names {
		if err := visit(n, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Migrate creates/updates every table in dependency order.
func (r *Registry) Migrate(db *gorm.DB) error {
	ordered, err := r.Order()
	if err != nil {
		return err
	}
	pg := database.IsPostgres(db)
	for _, e := range ordered {
		if err := db.AutoMigrate(e.Model); err != nil {
			return fmt.Errorf("migrate %s: %w", e.Name, err)
		}
		if !pg {
			continue
		}
		for _, ref := range e.Refs {
			if err := db.Exec(foreignKeyDDL(e.Table(), ref)).Error; err != nil {
				return fmt.Errorf("fk %s.%s: %w", e.Table(), ref.Column, err)
			}
		}
		for _, stmt := range e.PostgresDDL {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("ddl %s: %w", e.Name, err)
			}
		}
	}
	log.Printf("[INFO] schema migrated (%d tables)", len(ordered))
	return nil
}

func ForeignKeyName(table string, ref Ref) string {
	return fmt.Sprintf("fk_%s_%s", table, ref.Column)
}

// foreignKeyDDL is re-runnable: duplicate_object is swallowed inside the DO block.
func foreignKeyDDL(table string, ref Ref) string {
	policy := ref.OnDelete
	if policy == "" {
		policy = Restrict
	}
	return fmt.Sprintf(`DO $$ BEGIN
  ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s;
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`,
		pq.QuoteIdentifier(table),
		pq.QuoteIdentifier(ForeignKeyName(table, ref)),
		pq.QuoteIdentifier(ref.Column),
		pq.QuoteIdentifier(ref.Table),
		pq.QuoteIdentifier(ref.IDColumn),
		policy,
	)
}

// Dependent is a table/column pair pointing at a parent table.
type Dependent struct {
	Table    string
	Column   string
	OnDelete OnDelete
}

// Dependents lists every registered reference into table, in registration order.
func (r *Registry) Dependents(table string) []Dependent {
	var out []Dependent
	for _, n := range r.names {
		e := r.entities[n]
		for _, ref := range e.Refs {
			if ref.Table == table {
				out = append(out, Dependent{Table: e.Table(), Column: ref.Column, OnDelete: ref.OnDelete})
			}
		}
	}
	return out
}

// DeleteByID removes one row from table applying the registered policy:
// restricting references must be empty, cascading ones are removed first.
// Run it inside a transaction.
func (r *Registry) DeleteByID(ctx context.Context, tx *gorm.DB, entity, table, idColumn string, id uuid.UUID) error {
	deps := r.Dependents(table)

	blocked := map[string]int64{}
	for _, d := range deps {
		if d.OnDelete == Cascade {
			continue
		}
		var n int64
		if err := tx.WithContext(ctx).Table(d.Table).Where(pq.QuoteIdentifier(d.Column)+" = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			blocked[d.Table] += n
		}
	}
	if len(blocked) > 0 {
		return &apperr.ReferentialIntegrityError{Entity: entity, ID: id, Dependents: blocked}
	}

	for _, d := range deps {
		if d.OnDelete != Cascade {
			continue
		}
		if child := r.byTable(d.Table); child != nil {
			if err := tx.WithContext(ctx).Where(pq.QuoteIdentifier(d.Column)+" = ?", id).Delete(child.Model).Error; err != nil {
				return err
			}
		}
	}

	res := tx.WithContext(ctx).Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", pq.QuoteIdentifier(table), pq.QuoteIdentifier(idColumn)), id)
	if res.Error != nil {
		return apperr.FromDB(entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}
