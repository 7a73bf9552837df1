package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reminderCtl "feekhata_backend/internals/features/messaging/reminders/controller"
	whatsappService "feekhata_backend/internals/features/messaging/whatsapp/service"
	middlewares "feekhata_backend/internals/middlewares"
)

func ReminderAdminRoutes(r fiber.Router, db *gorm.DB, sender whatsappService.Sender) {
	ctl := reminderCtl.NewReminderController(db, sender)
	fanout := middlewares.BroadcastRateLimiter()

	r.Post("/reminders/send", fanout, ctl.SendReminders) // POST /api/a/reminders/send
	r.Post("/broadcast", fanout, ctl.Broadcast)          // POST /api/a/broadcast
}
