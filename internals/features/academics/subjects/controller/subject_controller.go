package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/academics/subjects/dto"
	"schedules_backend/internals/features/academics/subjects/service"
	helper "schedules_backend/internals/helpers"
)

type SubjectController struct {
	Svc       *service.SubjectService
	Validator *validator.Validate
}

func NewSubjectController(svc *service.SubjectService, v *validator.Validate) *SubjectController {
	if v == nil {
		v = helper.Validator()
	}
	return &SubjectController{Svc: svc, Validator: v}
}

var sortable = map[string]string{
	"short_title": "subject_short_title",
	"title":       "subject_title",
	"created_at":  "subject_created_at",
}

/* ============================================
   Subjects
============================================ */

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var p dto.SubjectCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntitySubject, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Create(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "subject created", m)
}

func (ctl *SubjectController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.SubjectUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntitySubject, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "subject updated", m)
}

func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "subject deleted", fiber.Map{"subject_id": id})
}

func (ctl *SubjectController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /api/public/subjects?q=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	pg := helper.ParseFiber(c, "title", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), service.SubjectFilter{
		Search: c.Query("q"),
		Offset: pg.Offset(),
		Limit:  pg.Limit(),
		Order:  pg.OrderBy(sortable, "title"),
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}

/* ============================================
   Subject teachers
============================================ */

// POST /api/a/subjects/:id/teachers
func (ctl *SubjectController) AssignTeacher(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.SubjectTeacherCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntitySubjectTeacher, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.AssignTeacher(c.UserContext(), p.ToInput(id))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "teacher assigned", m)
}

// DELETE /api/a/subject-teachers/:id
func (ctl *SubjectController) UnassignTeacher(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.UnassignTeacher(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "teacher unassigned", fiber.Map{"subject_teacher_id": id})
}

// GET /api/public/subject-teachers?subject_id= &teacher_id= &type_of_lesson=
func (ctl *SubjectController) ListSubjectTeachers(c *fiber.Ctx) error {
	var f service.SubjectTeacherFilter
	var err error
	if f.SubjectID, err = helper.ParseUUIDQuery(c, "subject_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.TeacherID, err = helper.ParseUUIDQuery(c, "teacher_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if raw := strings.TrimSpace(c.Query("type_of_lesson")); raw != "" {
		tl := constants.TypeOfLesson(raw)
		if !tl.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown type_of_lesson")
		}
		f.TypeOfLesson = &tl
	}
	pg := helper.ParseFiber(c, "", "asc", helper.DefaultOpts)
	f.Offset, f.Limit = pg.Offset(), pg.Limit()

	rows, total, err := ctl.Svc.ListSubjectTeachers(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}

// GET /api/public/subject-teachers/:id
func (ctl *SubjectController) GetSubjectTeacher(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.GetSubjectTeacher(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}
