package model

import (
	"time"

	"github.com/google/uuid"
)

type LedgerStatus string

const (
	LedgerUnpaid  LedgerStatus = "unpaid"
	LedgerPartial LedgerStatus = "partial"
	LedgerPaid    LedgerStatus = "paid"
)

// FeeLedgerModel is one (institute, student, month) row. Rows are created
// lazily, mutated only by payment allocation, and never deleted.
type FeeLedgerModel struct {
	FeeLedgerID uuid.UUID `gorm:"column:fee_ledger_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_ledger_id"`

	FeeLedgerInstituteID uuid.UUID `gorm:"column:fee_ledger_institute_id;type:uuid;not null;uniqueIndex:uq_fee_ledger_institute_student_month" json:"fee_ledger_institute_id"`
	FeeLedgerStudentID   uuid.UUID `gorm:"column:fee_ledger_student_id;type:uuid;not null;uniqueIndex:uq_fee_ledger_institute_student_month" json:"fee_ledger_student_id"`

	// First day of the calendar month, date granularity
	FeeLedgerMonth time.Time `gorm:"column:fee_ledger_month;type:date;not null;uniqueIndex:uq_fee_ledger_institute_student_month" json:"fee_ledger_month"`

	// Snapshot of the student's monthly fee at row creation time
	FeeLedgerAmountDue  float64 `gorm:"column:fee_ledger_amount_due;type:numeric(12,2);not null;default:0;check:fee_ledger_amount_due >= 0" json:"fee_ledger_amount_due"`
	FeeLedgerAmountPaid float64 `gorm:"column:fee_ledger_amount_paid;type:numeric(12,2);not null;default:0;check:fee_ledger_amount_paid >= 0" json:"fee_ledger_amount_paid"`

	// Always derived from due/paid, never set independently
	FeeLedgerStatus LedgerStatus `gorm:"column:fee_ledger_status;type:varchar(20);not null;default:unpaid" json:"fee_ledger_status"`

	FeeLedgerCreatedAt time.Time  `gorm:"column:fee_ledger_created_at;autoCreateTime" json:"fee_ledger_created_at"`
	FeeLedgerUpdatedAt *time.Time `gorm:"column:fee_ledger_updated_at;autoUpdateTime" json:"fee_ledger_updated_at,omitempty"`
}

func (FeeLedgerModel) TableName() string { return "fee_ledger" }

// Outstanding is max(0, due - paid).
func (m *FeeLedgerModel) Outstanding() float64 {
	out := m.FeeLedgerAmountDue - m.FeeLedgerAmountPaid
	if out < 0 {
		return 0
	}
	return out
}
