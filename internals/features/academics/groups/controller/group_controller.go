package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/academics/groups/dto"
	"schedules_backend/internals/features/academics/groups/service"
	helper "schedules_backend/internals/helpers"
)

type GroupController struct {
	Svc       *service.GroupService
	Validator *validator.Validate
}

func NewGroupController(svc *service.GroupService, v *validator.Validate) *GroupController {
	if v == nil {
		v = helper.Validator()
	}
	return &GroupController{Svc: svc, Validator: v}
}

var sortable = map[string]string{
	"name":       "group_name",
	"course":     "group_course",
	"created_at": "group_created_at",
}

/* ============================================
   Admin
============================================ */

func (ctl *GroupController) Create(c *fiber.Ctx) error {
	var p dto.GroupCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityGroup, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Create(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "group created", m)
}

func (ctl *GroupController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.GroupUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityGroup, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "group updated", m)
}

func (ctl *GroupController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "group deleted", fiber.Map{"group_id": id})
}

/* ============================================
   Public
============================================ */

func (ctl *GroupController) GetByID(c *fiber.Ctx) error {
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

// GET /api/public/groups?term_id= &field_of_study_id= &course=
func (ctl *GroupController) List(c *fiber.Ctx) error {
	var f service.GroupFilter
	var err error
	if f.TermID, err = helper.ParseUUIDQuery(c, "term_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.FieldOfStudyID, err = helper.ParseUUIDQuery(c, "field_of_study_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if raw := strings.TrimSpace(c.Query("course")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			return helper.JsonError(c, fiber.StatusBadRequest, "course must be a positive integer")
		}
		f.Course = &n
	}

	pg := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	f.Offset, f.Limit, f.Order = pg.Offset(), pg.Limit(), pg.OrderBy(sortable, "name")

	rows, total, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}

// GET /api/public/groups/:id/term
func (ctl *GroupController) Term(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	term, err := ctl.Svc.TermForGroup(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", term)
}
