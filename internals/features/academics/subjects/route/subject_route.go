package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/schema"
	subjectCtl "schedules_backend/internals/features/academics/subjects/controller"
	"schedules_backend/internals/features/academics/subjects/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

func SubjectAdminRoutes(admin fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := subjectCtl.NewSubjectController(service.NewSubjectService(db, reg), nil)
	guard := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorDispatcher("manage subjects"),
		constants.DispatcherAndAbove,
	)

	r := admin.Group("/subjects", guard)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Patch)
	r.Delete("/:id", ctl.Delete)
	r.Post("/:id/teachers", ctl.AssignTeacher)

	admin.Delete("/subject-teachers/:id", guard, ctl.UnassignTeacher)
}

func SubjectPublicRoutes(public fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := subjectCtl.NewSubjectController(service.NewSubjectService(db, reg), nil)

	r := public.Group("/subjects")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)

	st := public.Group("/subject-teachers")
	st.Get("/", ctl.ListSubjectTeachers)
	st.Get("/:id", ctl.GetSubjectTeacher)
}
