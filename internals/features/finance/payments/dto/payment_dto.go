package dto

import (
	"github.com/google/uuid"
)

/* ================== REQUESTS ================== */

type ManualPaymentRequest struct {
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=cash upi"`
}

type ListPaymentsQuery struct {
	Status    *string    `query:"status" validate:"omitempty,oneof=pending paid"`
	StudentID *uuid.UUID `query:"student_id" validate:"omitempty"`
}
