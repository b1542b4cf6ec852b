package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/schema"
	fosCtl "schedules_backend/internals/features/academics/fields_of_study/controller"
	"schedules_backend/internals/features/academics/fields_of_study/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

func FieldOfStudyAdminRoutes(admin fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := fosCtl.NewFieldOfStudyController(service.NewFieldOfStudyService(db, reg), nil)

	r := admin.Group("/fields-of-study",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorDispatcher("manage fields of study"),
			constants.DispatcherAndAbove,
		),
	)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Patch)
	r.Delete("/:id", ctl.Delete)
}

func FieldOfStudyPublicRoutes(public fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := fosCtl.NewFieldOfStudyController(service.NewFieldOfStudyService(db, reg), nil)

	r := public.Group("/fields-of-study")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
}
