package routes

import (
	"github.com/gofiber/fiber/v2"

	whatsappCtl "feekhata_backend/internals/features/messaging/whatsapp/controller"
)

// Public shim endpoint so local runs have somewhere to deliver messages.
func WhatsappPublicRoutes(app fiber.Router) {
	ctl := whatsappCtl.NewMockController()
	app.Post("/whatsapp/mock", ctl.Send)
}
