package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/databases/schema"
	"schedules_backend/internals/databases/store"
	model "schedules_backend/internals/features/users/teachers/model"
	helper "schedules_backend/internals/helpers"
	"schedules_backend/internals/helpers/apperr"
)

type TeacherService struct {
	DB       *gorm.DB
	Registry *schema.Registry
}

func NewTeacherService(db *gorm.DB, reg *schema.Registry) *TeacherService {
	return &TeacherService{DB: db, Registry: reg}
}

type TeacherInput struct {
	Surname    string
	FirstName  *string
	MiddleName *string
	Email      *string
	Position   *constants.TeacherPosition
	Birthdate  *time.Time
}

// TeacherPatch: nil keeps the field; an empty string clears optional text fields.
type TeacherPatch struct {
	Surname        *string
	FirstName      *string
	MiddleName     *string
	Email          *string
	Position       *constants.TeacherPosition
	ClearPosition  bool
	Birthdate      *time.Time
	ClearBirthdate bool
}

type TeacherFilter struct {
	// prefix of the surname
	Surname       string
	Position      *constants.TeacherPosition
	Offset, Limit int
	Order         string
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}

func validate(m *model.TeacherModel) error {
	verr := apperr.NewValidation(catalog.EntityTeacher)
	switch n := len([]rune(m.TeacherSurname)); {
	case n == 0:
		verr.Add("teacher_surname", "required")
	case n > 50:
		verr.Add("teacher_surname", "max=50")
	}
	for field, v := range map[string]*string{
		"teacher_first_name":  m.TeacherFirstName,
		"teacher_middle_name": m.TeacherMiddleName,
	} {
		if v != nil && len([]rune(*v)) > 50 {
			verr.Add(field, "max=50")
		}
	}
	if m.TeacherEmail != nil {
		if _, err := mail.ParseAddress(*m.TeacherEmail); err != nil || len(*m.TeacherEmail) > 255 {
			verr.Add("teacher_email", "email")
		}
	}
	if m.TeacherPosition != nil && !m.TeacherPosition.Valid() {
		verr.Add("teacher_position", "unknown position")
	}
	if m.TeacherBirthdate != nil && time.Time(*m.TeacherBirthdate).After(time.Now()) {
		verr.Add("teacher_birthdate", "must be in the past")
	}
	return verr.OrNil()
}

func (s *TeacherService) Create(ctx context.Context, in TeacherInput) (*model.TeacherModel, error) {
	m := &model.TeacherModel{
		TeacherSurname:    helper.NormalizeText(in.Surname),
		TeacherFirstName:  helper.NormalizePtr(in.FirstName),
		TeacherMiddleName: helper.NormalizePtr(in.MiddleName),
		TeacherEmail:      helper.NormalizeEmail(in.Email),
		TeacherPosition:   in.Position,
		TeacherBirthdate:  toDate(in.Birthdate),
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := store.Create(ctx, s.DB, catalog.EntityTeacher, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TeacherService) Get(ctx context.Context, id uuid.UUID) (*model.TeacherModel, error) {
	return store.Get[model.TeacherModel](ctx, s.DB, catalog.EntityTeacher, "teacher_id", id)
}

func (s *TeacherService) List(ctx context.Context, f TeacherFilter) ([]model.TeacherModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.TeacherModel{})
	if prefix := helper.NormalizeText(f.Surname); prefix != "" {
		q = q.Where("teacher_surname LIKE ?", prefix+"%")
	}
	if f.Position != nil {
		q = q.Where("teacher_position = ?", *f.Position)
	}
	var out []model.TeacherModel
	total, err := store.Page(ctx, q, f.Offset, f.Limit, f.Order, &out)
	return out, total, err
}

func (s *TeacherService) Update(ctx context.Context, id uuid.UUID, p TeacherPatch) (*model.TeacherModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Surname != nil {
		m.TeacherSurname = helper.NormalizeText(*p.Surname)
	}
	if p.FirstName != nil {
		m.TeacherFirstName = helper.NormalizePtr(p.FirstName)
	}
	if p.MiddleName != nil {
		m.TeacherMiddleName = helper.NormalizePtr(p.MiddleName)
	}
	if p.Email != nil {
		m.TeacherEmail = helper.NormalizeEmail(p.Email)
	}
	if p.ClearPosition {
		m.TeacherPosition = nil
	} else if p.Position != nil {
		m.TeacherPosition = p.Position
	}
	if p.ClearBirthdate {
		m.TeacherBirthdate = nil
	} else if p.Birthdate != nil {
		m.TeacherBirthdate = toDate(p.Birthdate)
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, s.DB, catalog.EntityTeacher, id, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete is refused while the teacher has subject assignments, exams or booked slots.
func (s *TeacherService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Registry.DeleteByID(ctx, tx, catalog.EntityTeacher, "teachers", "teacher_id", id)
	})
}
