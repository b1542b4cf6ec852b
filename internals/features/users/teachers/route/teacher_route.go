package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/schema"
	teacherCtl "schedules_backend/internals/features/users/teachers/controller"
	"schedules_backend/internals/features/users/teachers/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

func TeacherAdminRoutes(admin fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := teacherCtl.NewTeacherController(service.NewTeacherService(db, reg), nil)

	r := admin.Group("/teachers",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorDispatcher("manage teachers"),
			constants.DispatcherAndAbove,
		),
	)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Patch)
	r.Delete("/:id", ctl.Delete)
}

func TeacherPublicRoutes(public fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := teacherCtl.NewTeacherController(service.NewTeacherService(db, reg), nil)

	r := public.Group("/teachers")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
}
