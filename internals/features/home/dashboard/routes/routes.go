package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardCtl "feekhata_backend/internals/features/home/dashboard/controller"
)

func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dashboardCtl.NewDashboardController(db)
	r.Get("/dashboard", ctl.Summary) // GET /api/a/dashboard
}
