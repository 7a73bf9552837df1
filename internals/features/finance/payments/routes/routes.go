package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentCtl "feekhata_backend/internals/features/finance/payments/controller"
)

// Admin endpoints, behind auth
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentCtl.NewPaymentController(db)

	payments := r.Group("/payments")
	payments.Get("/", ctl.List)                // GET  /api/a/payments
	payments.Post("/manual", ctl.CreateManual) // POST /api/a/payments/manual
}

// Public webhook ingress, no auth (signature-verified)
func PaymentPublicRoutes(app fiber.Router, db *gorm.DB) {
	webhook := paymentCtl.NewWebhookController(db)
	app.Post("/razorpay/webhook", webhook.HandleRazorpayWebhook)
}
