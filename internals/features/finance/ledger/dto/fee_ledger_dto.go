package dto

import (
	"time"

	"github.com/google/uuid"

	m "feekhata_backend/internals/features/finance/ledger/model"
)

/* ================== RESPONSES ================== */

type FeeLedgerResponse struct {
	FeeLedgerID          uuid.UUID      `json:"fee_ledger_id"`
	FeeLedgerInstituteID uuid.UUID      `json:"fee_ledger_institute_id"`
	FeeLedgerStudentID   uuid.UUID      `json:"fee_ledger_student_id"`
	FeeLedgerMonth       string         `json:"fee_ledger_month"` // YYYY-MM-DD, first of month
	FeeLedgerAmountDue   float64        `json:"fee_ledger_amount_due"`
	FeeLedgerAmountPaid  float64        `json:"fee_ledger_amount_paid"`
	FeeLedgerOutstanding float64        `json:"fee_ledger_outstanding"`
	FeeLedgerStatus      m.LedgerStatus `json:"fee_ledger_status"`
	FeeLedgerCreatedAt   time.Time      `json:"fee_ledger_created_at"`
}

func FromModel(row m.FeeLedgerModel) FeeLedgerResponse {
	return FeeLedgerResponse{
		FeeLedgerID:          row.FeeLedgerID,
		FeeLedgerInstituteID: row.FeeLedgerInstituteID,
		FeeLedgerStudentID:   row.FeeLedgerStudentID,
		FeeLedgerMonth:       row.FeeLedgerMonth.Format("2006-01-02"),
		FeeLedgerAmountDue:   row.FeeLedgerAmountDue,
		FeeLedgerAmountPaid:  row.FeeLedgerAmountPaid,
		FeeLedgerOutstanding: row.Outstanding(),
		FeeLedgerStatus:      row.FeeLedgerStatus,
		FeeLedgerCreatedAt:   row.FeeLedgerCreatedAt,
	}
}

func FromModels(rows []m.FeeLedgerModel) []FeeLedgerResponse {
	out := make([]FeeLedgerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
