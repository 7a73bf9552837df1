package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerCtl "feekhata_backend/internals/features/finance/ledger/controller"
)

func LedgerAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := ledgerCtl.NewFeeLedgerController(db)

	ledger := r.Group("/ledger")
	ledger.Get("/current", ctl.ListCurrentMonth)           // GET /api/a/ledger/current
	ledger.Get("/students/:student_id", ctl.ListByStudent) // GET /api/a/ledger/students/:student_id
}
