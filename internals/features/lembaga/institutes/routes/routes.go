package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instituteCtl "feekhata_backend/internals/features/lembaga/institutes/controller"
)

func InstituteAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := instituteCtl.NewInstituteController(db)

	institutes := r.Group("/institutes")
	institutes.Get("/me", ctl.GetMine) // GET /api/a/institutes/me
}
