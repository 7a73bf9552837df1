package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	model "feekhata_backend/internals/features/finance/ledger/model"
)

// Ensurer guarantees every active student has a fee_ledger row for the
// current month, creating missing ones from the fee baseline.
type Ensurer struct {
	Store    LedgerStore
	Students StudentFeeSource
}

func NewEnsurer(store LedgerStore, students StudentFeeSource) *Ensurer {
	return &Ensurer{Store: store, Students: students}
}

// EnsureCurrentMonth is idempotent: existing rows are left untouched even
// if the student's fee has changed since (due is a creation-time snapshot).
// onlyStudentIDs restricts the target set, e.g. to one teacher's students.
func (e *Ensurer) EnsureCurrentMonth(ctx context.Context, instituteID uuid.UUID, onlyStudentIDs []uuid.UUID) error {
	return e.EnsureMonth(ctx, instituteID, onlyStudentIDs, CurrentMonth())
}

func (e *Ensurer) EnsureMonth(ctx context.Context, instituteID uuid.UUID, onlyStudentIDs []uuid.UUID, month MonthKey) error {
	students, err := e.Students.ActiveStudents(ctx, instituteID, onlyStudentIDs)
	if err != nil {
		return fmt.Errorf("load students: %w", err)
	}
	if len(students) == 0 {
		return nil
	}

	existing, err := e.Store.ListForMonth(ctx, instituteID, month)
	if err != nil {
		return fmt.Errorf("list ledger month %s: %w", month, err)
	}
	have := make(map[uuid.UUID]struct{}, len(existing))
	for _, row := range existing {
		have[row.FeeLedgerStudentID] = struct{}{}
	}

	for _, s := range students {
		if _, ok := have[s.StudentID]; ok {
			continue
		}
		fee := s.MonthlyFee
		if fee < 0 {
			fee = 0
		}
		entry := &model.FeeLedgerModel{
			FeeLedgerID:          uuid.New(),
			FeeLedgerInstituteID: instituteID,
			FeeLedgerStudentID:   s.StudentID,
			FeeLedgerMonth:       month.Date(),
			FeeLedgerAmountDue:   fee,
			FeeLedgerAmountPaid:  0,
			FeeLedgerStatus:      ComputeLedgerStatus(fee, 0),
		}
		if err := e.Store.Create(ctx, entry); err != nil {
			// A concurrent ensure already inserted the row; fine.
			if errors.Is(err, ErrLedgerExists) {
				continue
			}
			return fmt.Errorf("create ledger row for student %s: %w", s.StudentID, err)
		}
	}
	return nil
}
