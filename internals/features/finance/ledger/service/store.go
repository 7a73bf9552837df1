package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	model "feekhata_backend/internals/features/finance/ledger/model"
)

var (
	ErrLedgerNotFound  = errors.New("ledger entry not found")
	ErrLedgerExists    = errors.New("ledger entry already exists")
	ErrStudentNotFound = errors.New("student not found")
)

// LedgerStore is the persistence boundary for fee_ledger rows, keyed by
// (institute, student, month).
type LedgerStore interface {
	Get(ctx context.Context, instituteID, studentID uuid.UUID, month MonthKey) (*model.FeeLedgerModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.FeeLedgerModel, error)

	// Create inserts a new row; a duplicate (institute, student, month)
	// surfaces as ErrLedgerExists so concurrent creators can re-read.
	Create(ctx context.Context, entry *model.FeeLedgerModel) error

	// UpdatePayment sets amount_paid and the recomputed status.
	UpdatePayment(ctx context.Context, id uuid.UUID, amountPaid float64, status model.LedgerStatus) error

	ListForMonth(ctx context.Context, instituteID uuid.UUID, month MonthKey) ([]model.FeeLedgerModel, error)
}

// StudentFee is the roster slice the ensurer needs: id + fee baseline.
type StudentFee struct {
	StudentID  uuid.UUID
	MonthlyFee float64
}

// StudentFeeSource is read-only access to monthly-fee baselines.
type StudentFeeSource interface {
	MonthlyFee(ctx context.Context, instituteID, studentID uuid.UUID) (float64, error)

	// ActiveStudents returns the institute's students, optionally
	// restricted to the given ids (e.g. one teacher's assignments).
	ActiveStudents(ctx context.Context, instituteID uuid.UUID, onlyIDs []uuid.UUID) ([]StudentFee, error)
}
