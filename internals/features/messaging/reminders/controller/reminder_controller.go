package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feekhata_backend/internals/features/messaging/reminders/dto"
	"feekhata_backend/internals/features/messaging/reminders/service"
	whatsappModel "feekhata_backend/internals/features/messaging/whatsapp/model"
	whatsappService "feekhata_backend/internals/features/messaging/whatsapp/service"
	helper "feekhata_backend/internals/helpers"
)

type ReminderController struct {
	Service  *service.ReminderService
	Validate *validator.Validate
}

func NewReminderController(db *gorm.DB, sender whatsappService.Sender) *ReminderController {
	return &ReminderController{
		Service:  service.NewReminderService(db, sender),
		Validate: validator.New(),
	}
}

// POST /api/a/reminders/send
func (ctrl *ReminderController) SendReminders(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var teacherID *uuid.UUID
	if helper.IsTeacher(c) {
		id, terr := helper.GetUserIDFromToken(c)
		if terr != nil {
			return helper.Error(c, fiber.StatusUnauthorized, terr.Error())
		}
		teacherID = &id
	}

	summary, err := ctrl.Service.SendReminders(c.UserContext(), instituteID, teacherID)
	if err != nil {
		if errors.Is(err, service.ErrInstituteNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Institute not found")
		}
		log.Printf("[ERROR] reminder run failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to send reminders")
	}

	return helper.Success(c, "Reminders processed", summary)
}

// POST /api/a/broadcast
func (ctrl *ReminderController) Broadcast(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sent, err := ctrl.Service.Broadcast(c.UserContext(), instituteID,
		whatsappModel.WhatsappMessageType(req.MessageType), req.StudentIDs)
	if err != nil {
		if errors.Is(err, service.ErrInstituteNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Institute not found")
		}
		log.Printf("[ERROR] broadcast failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to send broadcast")
	}

	return helper.Success(c, "Broadcast sent", fiber.Map{
		"sent":  sent,
		"total": len(req.StudentIDs),
	})
}
