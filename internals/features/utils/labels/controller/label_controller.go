package controller

import (
	"github.com/gofiber/fiber/v2"

	"schedules_backend/internals/constants"
	helper "schedules_backend/internals/helpers"
)

// LabelController serves display strings for the schedule enums.
// Labels are static, so responses are cacheable.
type LabelController struct{}

func NewLabelController() *LabelController { return &LabelController{} }

// GET /labels?lang=uk|en
func (ctl *LabelController) All(c *fiber.Ctx) error {
	lang := constants.NormalizeLang(c.Query("lang"))
	c.Set(fiber.HeaderContentLanguage, lang)
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return helper.JsonOK(c, "labels", constants.Labels(lang))
}

// GET /labels/:kind?lang=uk|en
func (ctl *LabelController) Kind(c *fiber.Ctx) error {
	lang := constants.NormalizeLang(c.Query("lang"))
	table, ok := constants.Labels(lang)[c.Params("kind")]
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "unknown label kind")
	}
	c.Set(fiber.HeaderContentLanguage, lang)
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return helper.JsonOK(c, "labels", table)
}
