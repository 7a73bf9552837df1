package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feekhata_backend/internals/features/home/activity/service"
	helper "feekhata_backend/internals/helpers"
)

type ActivityController struct {
	Recorder *service.GormRecorder
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{Recorder: service.NewGormRecorder(db)}
}

// GET /api/a/activity?limit=20
func (ctrl *ActivityController) ListRecent(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, perr := strconv.Atoi(raw); perr == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	logs, err := ctrl.Recorder.ListRecent(c.UserContext(), instituteID, limit)
	if err != nil {
		log.Printf("[ERROR] list activity failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch activity")
	}

	return helper.Success(c, "Recent activity fetched", logs)
}
