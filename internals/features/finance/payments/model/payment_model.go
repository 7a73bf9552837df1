package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type PaymentSource string

const (
	PaymentSourceLink   PaymentSource = "link"
	PaymentSourceManual PaymentSource = "manual"
)

// PaymentModel tracks one payment-link request (or one manual payment).
// Link payments transition pending → paid exactly once, driven by the
// gateway webhook; the transition is guarded by a conditional update.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentInstituteID uuid.UUID  `gorm:"column:payment_institute_id;type:uuid;not null;index:idx_payments_institute_status" json:"payment_institute_id"`
	PaymentStudentID   uuid.UUID  `gorm:"column:payment_student_id;type:uuid;not null" json:"payment_student_id"`
	PaymentTeacherID   *uuid.UUID `gorm:"column:payment_teacher_id;type:uuid" json:"payment_teacher_id,omitempty"`

	PaymentAmount float64 `gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount >= 0" json:"payment_amount"`

	// Gateway identifiers (NULL for manual payments)
	PaymentLinkID  *string `gorm:"column:payment_link_id;type:text;index:idx_payments_link" json:"payment_link_id,omitempty"`
	PaymentLinkURL *string `gorm:"column:payment_link_url;type:text" json:"payment_link_url,omitempty"`

	PaymentStatus PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:pending;index:idx_payments_institute_status" json:"payment_status"`
	PaymentSource PaymentSource `gorm:"column:payment_source;type:varchar(20);not null;default:link" json:"payment_source"`
	PaymentMethod *string       `gorm:"column:payment_method;type:varchar(20)" json:"payment_method,omitempty"` // cash|upi for manual

	// Ledger entry the link was issued against; set to the first entry
	// touched once the allocation settles
	PaymentLedgerID *uuid.UUID `gorm:"column:payment_ledger_id;type:uuid" json:"payment_ledger_id,omitempty"`

	// Raw gateway event snapshot, stored at settlement
	PaymentGatewayPayload datatypes.JSON `gorm:"column:payment_gateway_payload;type:jsonb" json:"payment_gateway_payload,omitempty"`

	PaymentPaidAt    *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }
