package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/schedules/records/dto"
	"schedules_backend/internals/features/schedules/records/service"
	helper "schedules_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type RecordController struct {
	Svc       *service.RecordService
	Validator *validator.Validate
}

func NewRecordController(svc *service.RecordService, v *validator.Validate) *RecordController {
	if v == nil {
		v = helper.Validator()
	}
	return &RecordController{Svc: svc, Validator: v}
}

/* ============================================
   POST /api/a/schedule/records
============================================ */

func (ctl *RecordController) Create(c *fiber.Ctx) error {
	var p dto.RecordCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityRecord, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	rec, err := ctl.Svc.Create(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "schedule record created", rec)
}

/* ============================================
   POST /api/a/schedule/records/check
   200 when the slot is free, 409 with the colliding records otherwise.
============================================ */

func (ctl *RecordController) Check(c *fiber.Ctx) error {
	var p dto.RecordCheckDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityRecord, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Check(c.UserContext(), p.ToInput(), p.RecordID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "slot is free", fiber.Map{"conflicts": []any{}})
}

/* ============================================
   PATCH /api/a/schedule/records/:id
============================================ */

func (ctl *RecordController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.RecordUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityRecord, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "schedule record updated", rec)
}

/* ============================================
   DELETE /api/a/schedule/records/:id
============================================ */

func (ctl *RecordController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "schedule record deleted", fiber.Map{"record_id": id})
}

/* ============================================
   GET /api/public/schedule/records/:id
============================================ */

func (ctl *RecordController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", rec)
}

/* ============================================
   GET /api/public/schedule/records
   ?group_id= &teacher_id= &day_of_week= &term_id= &page= &per_page=
============================================ */

func (ctl *RecordController) List(c *fiber.Ctx) error {
	var f service.RecordFilter
	var err error
	if f.GroupID, err = helper.ParseUUIDQuery(c, "group_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.TeacherID, err = helper.ParseUUIDQuery(c, "teacher_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.TermID, err = helper.ParseUUIDQuery(c, "term_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if raw := strings.TrimSpace(c.Query("day_of_week")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		day := constants.DayOfWeek(n)
		if convErr != nil || !day.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "day_of_week must be 1..5")
		}
		f.DayOfWeek = &day
	}

	pg := helper.ParseFiber(c, "", "asc", helper.DefaultOpts)
	f.Offset, f.Limit = pg.Offset(), pg.Limit()

	recs, total, err := ctl.Svc.Query(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", recs, pg.Pagination(total))
}

/* ============================================
   GET /api/public/groups/:id/records
============================================ */

func (ctl *RecordController) ListForGroup(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	recs, err := ctl.Svc.RecordsForGroup(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", recs)
}

/* ============================================
   GET /api/public/schedule/records/:id/groups
============================================ */

func (ctl *RecordController) ListGroups(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	groups, err := ctl.Svc.GroupsForRecord(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", groups)
}
