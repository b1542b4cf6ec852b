package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/databases/catalog"
	"schedules_backend/internals/features/schedules/exams/dto"
	"schedules_backend/internals/features/schedules/exams/service"
	helper "schedules_backend/internals/helpers"
)

type ExamController struct {
	Svc       *service.ExamService
	Validator *validator.Validate
}

func NewExamController(svc *service.ExamService, v *validator.Validate) *ExamController {
	if v == nil {
		v = helper.Validator()
	}
	return &ExamController{Svc: svc, Validator: v}
}

/* ============================================
   Admin
============================================ */

func (ctl *ExamController) Create(c *fiber.Ctx) error {
	var p dto.ExamCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityExam, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	exam, err := ctl.Svc.Create(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "exam created", exam)
}

func (ctl *ExamController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.ExamUpdateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityExam, &p); err != nil {
		return helper.JsonAppError(c, err)
	}
	exam, err := ctl.Svc.Update(c.UserContext(), id, p.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "exam updated", exam)
}

// PATCH /api/a/exams/:id/schedule
func (ctl *ExamController) Schedule(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var p dto.ExamScheduleDTO
	if err := helper.BindAndValidate(c, ctl.Validator, catalog.EntityExam, &p); err != nil {
		return helper.JsonAppError(c, err)
	}

	var exam *service.Exam
	if p.ExamDate == nil {
		exam, err = ctl.Svc.Unschedule(c.UserContext(), id)
	} else {
		exam, err = ctl.Svc.Schedule(c.UserContext(), id, *p.ExamDate)
	}
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "exam schedule updated", exam)
}

func (ctl *ExamController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "exam deleted", fiber.Map{"exam_id": id})
}

/* ============================================
   Public
============================================ */

func (ctl *ExamController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	exam, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", exam)
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, name+" must be RFC3339 or YYYY-MM-DD")
}

// GET /api/public/exams?group_id= &teacher_id= &subject_id= &scheduled= &from= &to=
func (ctl *ExamController) List(c *fiber.Ctx) error {
	var f service.ExamFilter
	var err error
	if f.GroupID, err = helper.ParseUUIDQuery(c, "group_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.TeacherID, err = helper.ParseUUIDQuery(c, "teacher_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.SubjectID, err = helper.ParseUUIDQuery(c, "subject_id"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if raw := strings.TrimSpace(c.Query("scheduled")); raw != "" {
		b, convErr := strconv.ParseBool(raw)
		if convErr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "scheduled must be true or false")
		}
		f.Scheduled = &b
	}
	if f.From, err = parseTimeQuery(c, "from"); err != nil {
		return helper.JsonAppError(c, err)
	}
	if f.To, err = parseTimeQuery(c, "to"); err != nil {
		return helper.JsonAppError(c, err)
	}

	pg := helper.ParseFiber(c, "", "asc", helper.DefaultOpts)
	f.Offset, f.Limit = pg.Offset(), pg.Limit()

	rows, total, err := ctl.Svc.Query(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, pg.Pagination(total))
}

// GET /api/public/exams/:id/groups
func (ctl *ExamController) ListGroups(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	groups, err := ctl.Svc.GroupsForExam(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", groups)
}

// GET /api/public/exams/:id/teachers
func (ctl *ExamController) ListTeachers(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	teachers, err := ctl.Svc.TeachersForExam(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", teachers)
}

// GET /api/public/groups/:id/exams
func (ctl *ExamController) ListForGroup(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	exams, err := ctl.Svc.ExamsForGroup(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", exams)
}
