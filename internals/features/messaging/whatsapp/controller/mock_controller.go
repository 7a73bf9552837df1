package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	whatsappService "feekhata_backend/internals/features/messaging/whatsapp/service"
)

type MockController struct{}

func NewMockController() *MockController {
	return &MockController{}
}

// POST /api/whatsapp/mock
// Stand-in shim for local/dev: logs the outbound message and acks.
func (h *MockController) Send(c *fiber.Ctx) error {
	var msg whatsappService.Message
	if err := c.BodyParser(&msg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if msg.Body != "" {
		log.Printf("📱 [WA MOCK] to=%s: %s", msg.ParentPhone, msg.Body)
	} else {
		log.Printf("📱 [WA MOCK] to=%s student=%s due=₹%.0f link=%s",
			msg.ParentPhone, msg.StudentName, msg.DueAmount, msg.PaymentLink)
	}

	return c.JSON(fiber.Map{"success": true, "status": "sent"})
}
