package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	model "feekhata_backend/internals/features/finance/ledger/model"
)

func TestEnsureMonthCreatesMissingRows(t *testing.T) {
	store := newMemStore()
	fees := newMemFees()
	instituteID := uuid.New()
	a, b := uuid.New(), uuid.New()
	fees.fees[a] = 2000
	fees.fees[b] = 1500

	ensurer := NewEnsurer(store, fees)
	month := MonthKey{2026, time.August}

	if err := ensurer.EnsureMonth(context.Background(), instituteID, nil, month); err != nil {
		t.Fatalf("EnsureMonth: %v", err)
	}

	rows, _ := store.ListForMonth(context.Background(), instituteID, month)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if row.FeeLedgerAmountPaid != 0 {
			t.Errorf("new row has paid=%v, want 0", row.FeeLedgerAmountPaid)
		}
		if row.FeeLedgerStatus != model.LedgerUnpaid {
			t.Errorf("new row status=%v, want unpaid", row.FeeLedgerStatus)
		}
	}
}

func TestEnsureMonthIsIdempotent(t *testing.T) {
	store := newMemStore()
	fees := newMemFees()
	instituteID := uuid.New()
	studentID := uuid.New()
	fees.fees[studentID] = 2000

	ensurer := NewEnsurer(store, fees)
	month := MonthKey{2026, time.August}
	ctx := context.Background()

	if err := ensurer.EnsureMonth(ctx, instituteID, nil, month); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	// Pay the month, change the fee baseline, ensure again: the row
	// must be left exactly as it was.
	row, _ := store.Get(ctx, instituteID, studentID, month)
	if err := store.UpdatePayment(ctx, row.FeeLedgerID, 2000, model.LedgerPaid); err != nil {
		t.Fatalf("update: %v", err)
	}
	fees.fees[studentID] = 9999

	if err := ensurer.EnsureMonth(ctx, instituteID, nil, month); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
	row, _ = store.Get(ctx, instituteID, studentID, month)
	if row.FeeLedgerAmountDue != 2000 || row.FeeLedgerAmountPaid != 2000 || row.FeeLedgerStatus != model.LedgerPaid {
		t.Errorf("row mutated by ensure: due=%v paid=%v status=%v", row.FeeLedgerAmountDue, row.FeeLedgerAmountPaid, row.FeeLedgerStatus)
	}
}

func TestEnsureMonthRestrictsToGivenStudents(t *testing.T) {
	store := newMemStore()
	fees := newMemFees()
	instituteID := uuid.New()
	mine, other := uuid.New(), uuid.New()
	fees.fees[mine] = 1000
	fees.fees[other] = 1000

	ensurer := NewEnsurer(store, fees)
	month := MonthKey{2026, time.August}

	if err := ensurer.EnsureMonth(context.Background(), instituteID, []uuid.UUID{mine}, month); err != nil {
		t.Fatalf("EnsureMonth: %v", err)
	}

	if _, err := store.Get(context.Background(), instituteID, mine, month); err != nil {
		t.Errorf("restricted student missing: %v", err)
	}
	if _, err := store.Get(context.Background(), instituteID, other, month); err == nil {
		t.Errorf("unrestricted student was created")
	}
}

func TestEnsureMonthZeroFeeStudent(t *testing.T) {
	store := newMemStore()
	fees := newMemFees()
	instituteID := uuid.New()
	studentID := uuid.New()
	fees.fees[studentID] = 0

	ensurer := NewEnsurer(store, fees)
	month := MonthKey{2026, time.August}

	if err := ensurer.EnsureMonth(context.Background(), instituteID, nil, month); err != nil {
		t.Fatalf("EnsureMonth: %v", err)
	}

	row, err := store.Get(context.Background(), instituteID, studentID, month)
	if err != nil {
		t.Fatalf("zero-fee row missing: %v", err)
	}
	if row.FeeLedgerAmountDue != 0 || row.FeeLedgerStatus != model.LedgerUnpaid {
		t.Errorf("zero-fee row: due=%v status=%v", row.FeeLedgerAmountDue, row.FeeLedgerStatus)
	}
}
