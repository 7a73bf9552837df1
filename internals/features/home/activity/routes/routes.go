package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityCtl "feekhata_backend/internals/features/home/activity/controller"
)

func ActivityAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := activityCtl.NewActivityController(db)
	r.Get("/activity", ctl.ListRecent) // GET /api/a/activity
}
