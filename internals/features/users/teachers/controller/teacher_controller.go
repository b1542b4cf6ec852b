package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/users/teachers/dto"
	"schedules_backend/internals/features/users/teachers/service"
	helper "schedules_backend/internals/helpers"
)

type TeacherController struct {
	Svc       *service.TeacherService
	Validator *validator.Validate
}

func NewTeacherController(svc *service.TeacherService, v *validator.Validate) *TeacherController {
	if v == nil {
		v = helper.Validator()
	}
	return &TeacherController{Svc: svc, Validator: v}
}

var sortable = map[string]string{
	"surname":    "teacher_surname",
	"created_at": "teacher_created_at",
}

func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	var p dto.TeacherCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityTeacher, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Create(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "teacher created", m)
}

func (ctl *TeacherController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.TeacherUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityTeacher, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "teacher updated", m)
}

func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "teacher deleted", fiber.Map{"teacher_id": id})
}

func (ctl *TeacherController) GetByID(c *fiber.Ctx) error {
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

// GET /api/public/teachers?surname= &position=
func (ctl *TeacherController) List(c *fiber.Ctx) error {
	f := service.TeacherFilter{Surname: c.Query("surname")}
	if raw := strings.TrimSpace(c.Query("position")); raw != "" {
		pos := constants.TeacherPosition(raw)
		if !pos.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown position")
		}
		f.Position = &pos
	}
	pg := helper.ParseFiber(c, "surname", "asc", helper.DefaultOpts)
	f.Offset, f.Limit, f.Order = pg.Offset(), pg.Limit(), pg.OrderBy(sortable, "surname")

	rows, total, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}
