package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/academics/fields_of_study/dto"
	"schedules_backend/internals/features/academics/fields_of_study/service"
	helper "schedules_backend/internals/helpers"
)

type FieldOfStudyController struct {
	Svc       *service.FieldOfStudyService
	Validator *validator.Validate
}

func NewFieldOfStudyController(svc *service.FieldOfStudyService, v *validator.Validate) *FieldOfStudyController {
	if v == nil {
		v = helper.Validator()
	}
	return &FieldOfStudyController{Svc: svc, Validator: v}
}

var sortable = map[string]string{
	"short_title": "field_of_study_short_title",
	"title":       "field_of_study_title",
	"created_at":  "field_of_study_created_at",
}

// POST /api/a/fields-of-study
func (ctl *FieldOfStudyController) Create(c *fiber.Ctx) error {
	var p dto.FieldOfStudyCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityFieldOfStudy, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Create(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "field of study created", m)
}

// PATCH /api/a/fields-of-study/:id
func (ctl *FieldOfStudyController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.FieldOfStudyUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityFieldOfStudy, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "field of study updated", m)
}

// DELETE /api/a/fields-of-study/:id
func (ctl *FieldOfStudyController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "field of study deleted", fiber.Map{"field_of_study_id": id})
}

// GET /api/public/fields-of-study/:id
func (ctl *FieldOfStudyController) GetByID(c *fiber.Ctx) error {
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

// GET /api/public/fields-of-study?short_title=
func (ctl *FieldOfStudyController) List(c *fiber.Ctx) error {
	pg := helper.ParseFiber(c, "short_title", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), service.FieldOfStudyFilter{
		ShortTitle: c.Query("short_title"),
		Offset:     pg.Offset(),
		Limit:      pg.Limit(),
		Order:      pg.OrderBy(sortable, "short_title"),
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}
