package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "feekhata_backend/internals/features/lembaga/institutes/model"
	helper "feekhata_backend/internals/helpers"
)

type InstituteController struct {
	DB *gorm.DB
}

func NewInstituteController(db *gorm.DB) *InstituteController {
	return &InstituteController{DB: db}
}

// GET /api/a/institutes/me — the actor's own institute record.
// Onboarding/management is handled elsewhere; this is read-only.
func (h *InstituteController) GetMine(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	var row model.InstituteModel
	if err := h.DB.
		Where("institute_id = ?", instituteID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Institute not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch institute")
	}

	return helper.Success(c, "OK", row)
}
