package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "feekhata_backend/internals/features/finance/ledger/dto"
	model "feekhata_backend/internals/features/finance/ledger/model"
	service "feekhata_backend/internals/features/finance/ledger/service"
	helper "feekhata_backend/internals/helpers"
)

type FeeLedgerController struct {
	DB      *gorm.DB
	Store   service.LedgerStore
	Ensurer *service.Ensurer
}

func NewFeeLedgerController(db *gorm.DB) *FeeLedgerController {
	store := service.NewGormLedgerStore(db)
	students := service.NewGormStudentFeeSource(db)
	return &FeeLedgerController{
		DB:      db,
		Store:   store,
		Ensurer: service.NewEnsurer(store, students),
	}
}

/* ======================= CURRENT MONTH ======================= */
// GET /api/a/ledger/current
//
// Dashboard read path: current-month rows are lazily created here so the
// roster is always fully covered before it renders.
func (h *FeeLedgerController) ListCurrentMonth(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.Ensurer.EnsureCurrentMonth(ctx, instituteID, nil); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to ensure ledger rows")
	}

	rows, err := h.Store.ListForMonth(ctx, instituteID, service.CurrentMonth())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list ledger")
	}

	return helper.Success(c, "OK", dto.FromModels(rows))
}

/* ======================= STUDENT HISTORY ======================= */
// GET /api/a/ledger/students/:student_id
func (h *FeeLedgerController) ListByStudent(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var rows []model.FeeLedgerModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("fee_ledger_institute_id = ? AND fee_ledger_student_id = ?", instituteID, studentID).
		Order("fee_ledger_month ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list ledger history")
	}

	return helper.Success(c, "OK", dto.FromModels(rows))
}
