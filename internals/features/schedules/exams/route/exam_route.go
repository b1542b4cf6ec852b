package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/schema"
	examCtl "schedules_backend/internals/features/schedules/exams/controller"
	"schedules_backend/internals/features/schedules/exams/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

func ExamAdminRoutes(admin fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := examCtl.NewExamController(service.NewExamService(db, reg), nil)

	r := admin.Group("/exams",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorDispatcher("manage exams"),
			constants.DispatcherAndAbove,
		),
	)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Patch)
	r.Patch("/:id/schedule", ctl.Schedule)
	r.Delete("/:id", ctl.Delete)
}

func ExamPublicRoutes(public fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := examCtl.NewExamController(service.NewExamService(db, reg), nil)

	r := public.Group("/exams")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
	r.Get("/:id/groups", ctl.ListGroups)
	r.Get("/:id/teachers", ctl.ListTeachers)

	public.Get("/groups/:id/exams", ctl.ListForGroup)
}
