package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "feekhata_backend/internals/middlewares/auth"

	ledgerRoutes "feekhata_backend/internals/features/finance/ledger/routes"
	paymentRoutes "feekhata_backend/internals/features/finance/payments/routes"
	activityRoutes "feekhata_backend/internals/features/home/activity/routes"
	dashboardRoutes "feekhata_backend/internals/features/home/dashboard/routes"
	instituteRoutes "feekhata_backend/internals/features/lembaga/institutes/routes"
	studentRoutes "feekhata_backend/internals/features/lembaga/students/routes"
	reminderRoutes "feekhata_backend/internals/features/messaging/reminders/routes"
	whatsappRoutes "feekhata_backend/internals/features/messaging/whatsapp/routes"
	whatsappService "feekhata_backend/internals/features/messaging/whatsapp/service"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, sender whatsappService.Sender) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app)

	// ===================== PUBLIC =====================
	// Webhook ingress + local WhatsApp shim. No JWT; the webhook is
	// signature-verified instead.
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	paymentRoutes.PaymentPublicRoutes(public, db)
	whatsappRoutes.WhatsappPublicRoutes(public)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (JWT)...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware())

	instituteRoutes.InstituteAdminRoutes(admin, db)
	studentRoutes.StudentAdminRoutes(admin, db)
	ledgerRoutes.LedgerAdminRoutes(admin, db)
	paymentRoutes.PaymentAdminRoutes(admin, db)
	reminderRoutes.ReminderAdminRoutes(admin, db, sender)
	dashboardRoutes.DashboardAdminRoutes(admin, db)
	activityRoutes.ActivityAdminRoutes(admin, db)
}
