package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/constants"
	"schedules_backend/internals/databases/schema"
	groupCtl "schedules_backend/internals/features/academics/groups/controller"
	"schedules_backend/internals/features/academics/groups/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

func GroupAdminRoutes(admin fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := groupCtl.NewGroupController(service.NewGroupService(db, reg), nil)

	r := admin.Group("/groups",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorDispatcher("manage groups"),
			constants.DispatcherAndAbove,
		),
	)
	r.Post("/", ctl.Create)
	r.Patch("/:id", ctl.Patch)
	r.Delete("/:id", ctl.Delete)
}

// GroupPublicRoutes; /groups/:id/records is mounted by the records feature.
func GroupPublicRoutes(public fiber.Router, db *gorm.DB, reg *schema.Registry) {
	ctl := groupCtl.NewGroupController(service.NewGroupService(db, reg), nil)

	r := public.Group("/groups")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
	r.Get("/:id/term", ctl.Term)
}
