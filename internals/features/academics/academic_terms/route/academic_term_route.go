package route

import (
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	academicCtl "schedules_backend/internals/features/academics/academic_terms/controller"
	"schedules_backend/internals/features/academics/academic_terms/service"
	authMiddleware "schedules_backend/internals/middlewares/auth"
)

// AcademicAdminRoutes: /api/a/academic-terms, /api/a/academic-years
func AcademicAdminRoutes(admin fiber.Router, svc *service.AcademicService) {
	ctl := academicCtl.NewAcademicController(svc, nil)
	guard := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorDispatcher("manage academic terms"),
		constants.DispatcherAndAbove,
	)

	terms := admin.Group("/academic-terms", guard)
	terms.Post("/", ctl.CreateTerm)
	terms.Patch("/:id", ctl.PatchTerm)
	terms.Delete("/:id", ctl.DeleteTerm)

	years := admin.Group("/academic-years", guard)
	years.Post("/", ctl.CreateYear)
	years.Patch("/:id", ctl.PatchYear)
	years.Delete("/:id", ctl.DeleteYear)
}

func AcademicPublicRoutes(public fiber.Router, svc *service.AcademicService) {
	ctl := academicCtl.NewAcademicController(svc, nil)

	terms := public.Group("/academic-terms")
	terms.Get("/", ctl.ListTerms)
	terms.Get("/:id", ctl.GetTerm)
	terms.Get("/:id/year", ctl.YearForTerm)
	terms.Get("/:id/groups", ctl.GroupsForTerm)

	years := public.Group("/academic-years")
	years.Get("/", ctl.ListYears)
	years.Get("/:id", ctl.GetYear)
}
