package route

import (
	"github.com/gofiber/fiber/v2"

	labelController "schedules_backend/internals/features/utils/labels/controller"
)

func LabelPublicRoutes(public fiber.Router) {
	ctl := labelController.NewLabelController()

	r := public.Group("/labels")
	r.Get("/", ctl.All)
	r.Get("/:kind", ctl.Kind)
}
