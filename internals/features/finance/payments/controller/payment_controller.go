package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "feekhata_backend/internals/features/finance/payments/dto"
	model "feekhata_backend/internals/features/finance/payments/model"
	paymentService "feekhata_backend/internals/features/finance/payments/service"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	activityService "feekhata_backend/internals/features/home/activity/service"
	helper "feekhata_backend/internals/helpers"
)

type PaymentController struct {
	DB     *gorm.DB
	Manual *paymentService.ManualPaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	ledgers := ledgerService.NewGormLedgerStore(db)
	students := ledgerService.NewGormStudentFeeSource(db)
	return &PaymentController{
		DB: db,
		Manual: paymentService.NewManualPaymentService(
			paymentService.NewGormPaymentStore(db),
			ledgers,
			ledgerService.NewEnsurer(ledgers, students),
			ledgerService.NewAllocator(ledgers, students),
			paymentService.NewGormStudentReader(db),
			activityService.NewGormRecorder(db),
		),
	}
}

/* ======================= LIST ======================= */
// GET /api/a/payments?status=pending
func (h *PaymentController) List(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListPaymentsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query params")
	}
	if err := validator.New().Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 100)

	query := h.DB.
		Where("payment_institute_id = ?", instituteID).
		Order("payment_created_at DESC")
	if q.Status != nil {
		query = query.Where("payment_status = ?", *q.Status)
	}
	if q.StudentID != nil {
		query = query.Where("payment_student_id = ?", *q.StudentID)
	}

	var rows []model.PaymentModel
	if err := query.Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list payments")
	}

	return helper.Success(c, "OK", rows)
}

/* ======================= MANUAL PAYMENT ======================= */
// POST /api/a/payments/manual
func (h *PaymentController) CreateManual(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ManualPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	payment, err := h.Manual.Pay(c.UserContext(), instituteID, req.StudentID, req.Amount, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, ledgerService.ErrNonPositiveAmount):
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
		}
	}

	return helper.JsonCreated(c, "Payment recorded", payment)
}
