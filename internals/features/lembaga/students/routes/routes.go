package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtl "feekhata_backend/internals/features/lembaga/students/controller"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentCtl.NewStudentController(db)

	students := r.Group("/students")
	students.Post("/", ctl.Create)      // POST   /api/a/students
	students.Get("/", ctl.List)         // GET    /api/a/students
	students.Get("/:id", ctl.GetByID)   // GET    /api/a/students/:id
	students.Patch("/:id", ctl.Update)  // PATCH  /api/a/students/:id
	students.Delete("/:id", ctl.Delete) // DELETE /api/a/students/:id
}
