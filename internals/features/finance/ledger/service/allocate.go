package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	model "feekhata_backend/internals/features/finance/ledger/model"
)

var ErrNonPositiveAmount = errors.New("allocation amount must be positive")

// AllocationResult reports which ledger rows a payment touched.
type AllocationResult struct {
	// FirstLedgerID is the first entry mutated; nil when the allocation
	// terminated before touching anything (zero-fee student).
	FirstLedgerID *uuid.UUID
	MonthsTouched int
}

// Allocator applies one incoming payment across consecutive months,
// oldest first, fully satisfying each month before moving on. Entries
// for future months are manufactured on demand from the student's
// current fee baseline.
type Allocator struct {
	Store    LedgerStore
	Students StudentFeeSource
}

func NewAllocator(store LedgerStore, students StudentFeeSource) *Allocator {
	return &Allocator{Store: store, Students: students}
}

// Allocate walks forward from startMonth until amount is consumed. The
// walk is strictly sequential; callers must guarantee at most one
// allocation per payment event (conditional status update upstream).
//
// Termination: a missing month for a zero-fee student, or a month with
// nothing left to apply, stops the walk. Any unconsumed remainder is
// dropped silently — accepted overpayment slippage, not an error.
func (a *Allocator) Allocate(ctx context.Context, instituteID, studentID uuid.UUID, startMonth MonthKey, amount float64) (AllocationResult, error) {
	var res AllocationResult
	if amount <= 0 {
		return res, ErrNonPositiveAmount
	}

	remaining := amount
	cursor := startMonth

	for remaining > 0 {
		entry, err := a.Store.Get(ctx, instituteID, studentID, cursor)
		if err != nil {
			if !errors.Is(err, ErrLedgerNotFound) {
				return res, fmt.Errorf("fetch ledger %s: %w", cursor, err)
			}

			fee, ferr := a.Students.MonthlyFee(ctx, instituteID, studentID)
			if ferr != nil {
				return res, fmt.Errorf("read monthly fee: %w", ferr)
			}
			if fee <= 0 {
				// Zero-fee student: creating months ahead would never
				// consume the remainder, so stop here.
				break
			}

			entry = &model.FeeLedgerModel{
				FeeLedgerID:          uuid.New(),
				FeeLedgerInstituteID: instituteID,
				FeeLedgerStudentID:   studentID,
				FeeLedgerMonth:       cursor.Date(),
				FeeLedgerAmountDue:   fee,
				FeeLedgerAmountPaid:  0,
				FeeLedgerStatus:      model.LedgerUnpaid,
			}
			if cerr := a.Store.Create(ctx, entry); cerr != nil {
				if !errors.Is(cerr, ErrLedgerExists) {
					return res, fmt.Errorf("create ledger %s: %w", cursor, cerr)
				}
				// Lost a create race; re-read the winner's row.
				entry, err = a.Store.Get(ctx, instituteID, studentID, cursor)
				if err != nil {
					return res, fmt.Errorf("re-fetch ledger %s: %w", cursor, err)
				}
			}
		}

		outstanding := entry.Outstanding()
		toApply := remaining
		if outstanding < toApply {
			toApply = outstanding
		}
		if toApply <= 0 {
			// Nothing left to apply into this month; the walk ends and
			// any remainder is not allocated.
			break
		}

		newPaid := entry.FeeLedgerAmountPaid + toApply
		newStatus := ComputeLedgerStatus(entry.FeeLedgerAmountDue, newPaid)
		if err := a.Store.UpdatePayment(ctx, entry.FeeLedgerID, newPaid, newStatus); err != nil {
			return res, fmt.Errorf("update ledger %s: %w", cursor, err)
		}

		if res.FirstLedgerID == nil {
			id := entry.FeeLedgerID
			res.FirstLedgerID = &id
		}
		res.MonthsTouched++
		remaining -= toApply
		cursor = cursor.Next()
	}

	return res, nil
}
