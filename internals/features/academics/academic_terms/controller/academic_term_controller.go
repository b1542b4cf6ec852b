package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/academics/academic_terms/dto"
	"schedules_backend/internals/features/academics/academic_terms/service"
	helper "schedules_backend/internals/helpers"
)

type AcademicController struct {
	Svc       *service.AcademicService
	Validator *validator.Validate
}

func NewAcademicController(svc *service.AcademicService, v *validator.Validate) *AcademicController {
	if v == nil {
		v = helper.Validator()
	}
	return &AcademicController{Svc: svc, Validator: v}
}

var termSort = map[string]string{
	"start_date": "academic_term_start_date",
	"name":       "academic_term_name",
	"created_at": "academic_term_created_at",
}

var yearSort = map[string]string{
	"start_year": "academic_year_start_year",
	"created_at": "academic_year_created_at",
}

/* ============================================
   Terms
============================================ */

func (ctl *AcademicController) CreateTerm(c *fiber.Ctx) error {
	var p dto.AcademicTermCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityAcademicTerm, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.CreateTerm(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "academic term created", m)
}

func (ctl *AcademicController) PatchTerm(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.AcademicTermUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityAcademicTerm, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.UpdateTerm(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "academic term updated", m)
}

func (ctl *AcademicController) DeleteTerm(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.DeleteTerm(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "academic term deleted", fiber.Map{"academic_term_id": id})
}

func (ctl *AcademicController) GetTerm(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.GetTerm(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

func (ctl *AcademicController) ListTerms(c *fiber.Ctx) error {
	pg := helper.ParseFiber(c, "start_date", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ListTerms(c.UserContext(), pg.Offset(), pg.Limit(), pg.OrderBy(termSort, "start_date"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}

// GET /academic-terms/:id/year
func (ctl *AcademicController) YearForTerm(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	y, err := ctl.Svc.YearForTerm(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", y)
}

// GET /academic-terms/:id/groups
func (ctl *AcademicController) GroupsForTerm(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	groups, err := ctl.Svc.GroupsForTerm(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", groups)
}

/* ============================================
   Years
============================================ */

func (ctl *AcademicController) CreateYear(c *fiber.Ctx) error {
	var p dto.AcademicYearCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityAcademicYear, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	y, err := ctl.Svc.CreateYear(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "academic year created", y)
}

func (ctl *AcademicController) PatchYear(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.AcademicYearUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityAcademicYear, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	y, err := ctl.Svc.UpdateYear(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "academic year updated", y)
}

func (ctl *AcademicController) DeleteYear(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.DeleteYear(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "academic year deleted", fiber.Map{"academic_year_id": id})
}

func (ctl *AcademicController) GetYear(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	y, err := ctl.Svc.GetYear(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", y)
}

func (ctl *AcademicController) ListYears(c *fiber.Ctx) error {
	pg := helper.ParseFiber(c, "start_year", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ListYears(c.UserContext(), pg.Offset(), pg.Limit(), pg.OrderBy(yearSort, "start_year"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}
