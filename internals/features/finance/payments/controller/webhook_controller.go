package controller

import (
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feekhata_backend/internals/configs"
	dto "feekhata_backend/internals/features/finance/payments/dto"
	paymentService "feekhata_backend/internals/features/finance/payments/service"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	activityService "feekhata_backend/internals/features/home/activity/service"
)

type WebhookController struct {
	Service *paymentService.WebhookService
}

func NewWebhookController(db *gorm.DB) *WebhookController {
	ledgers := ledgerService.NewGormLedgerStore(db)
	students := ledgerService.NewGormStudentFeeSource(db)
	return &WebhookController{
		Service: paymentService.NewWebhookService(
			paymentService.NewGormPaymentStore(db),
			ledgers,
			ledgerService.NewAllocator(ledgers, students),
			paymentService.NewGormStudentReader(db),
			activityService.NewGormRecorder(db),
		),
	}
}

/* ======================= WEBHOOK INGRESS ======================= */
// POST /api/razorpay/webhook
//
// Signature verification runs before any store lookup. A missing secret
// is a server misconfiguration, never a pass-through.
func (h *WebhookController) HandleRazorpayWebhook(c *fiber.Ctx) error {
	secret := configs.RazorpayWebhookSecret
	if secret == "" {
		log.Println("[ERROR] RAZORPAY_WEBHOOK_SECRET not set")
		return fiber.NewError(fiber.StatusInternalServerError, "Webhook not configured")
	}

	body := c.Body()
	signature := c.Get("X-Razorpay-Signature")
	if !paymentService.VerifyWebhookSignature(body, signature, secret) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid signature")
	}

	var evt dto.WebhookEvent
	if err := sonic.Unmarshal(body, &evt); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON")
	}

	if evt.Event != dto.EventPaymentLinkPaid {
		return c.JSON(fiber.Map{"received": true})
	}

	if err := h.Service.HandlePaymentLinkPaid(c.UserContext(), evt, body); err != nil {
		if errors.Is(err, ledgerService.ErrNonPositiveAmount) {
			return fiber.NewError(fiber.StatusBadRequest, "Settled amount must be positive")
		}
		log.Printf("[ERROR] webhook settle failed: %v", err)
		// Surface a 500; the gateway redelivers on its own schedule and
		// the row is still pending.
		return fiber.NewError(fiber.StatusInternalServerError, "Settlement failed")
	}

	return c.JSON(fiber.Map{"received": true})
}
