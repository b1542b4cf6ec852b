package route

import (
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	recordCtl "schedules_backend/internals/features/schedules/records/controller"
	"schedules_backend/internals/features/schedules/records/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

// The service is passed in, not built here: its slot locks must be shared by
// every handler in the process.

// RecordAdminRoutes: /api/a/schedule/records (dispatcher and above)
func RecordAdminRoutes(admin fiber.Router, svc *service.RecordService) {
	ctl := recordCtl.NewRecordController(svc, nil)

	r := admin.Group("/schedule/records",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorDispatcher("manage the schedule"),
			constants.DispatcherAndAbove,
		),
	)
	r.Post("/", ctl.Create)
	r.Post("/check", ctl.Check)
	r.Patch("/:id", ctl.Patch)
	r.Delete("/:id", ctl.Delete)
}

// RecordPublicRoutes: read-only schedule
func RecordPublicRoutes(public fiber.Router, svc *service.RecordService) {
	ctl := recordCtl.NewRecordController(svc, nil)

	r := public.Group("/schedule/records")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
	r.Get("/:id/groups", ctl.ListGroups)

	public.Get("/groups/:id/records", ctl.ListForGroup)
}
