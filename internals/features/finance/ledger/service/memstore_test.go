package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	model "feekhata_backend/internals/features/finance/ledger/model"
)

type ledgerKey struct {
	institute uuid.UUID
	student   uuid.UUID
	month     MonthKey
}

// memStore is an in-memory LedgerStore with the same uniqueness
// semantics as the fee_ledger table.
type memStore struct {
	mu      sync.Mutex
	rows    map[ledgerKey]*model.FeeLedgerModel
	byID    map[uuid.UUID]ledgerKey
	creates int
	updates int
}

func newMemStore() *memStore {
	return &memStore{
		rows: make(map[ledgerKey]*model.FeeLedgerModel),
		byID: make(map[uuid.UUID]ledgerKey),
	}
}

func keyOf(entry *model.FeeLedgerModel) ledgerKey {
	return ledgerKey{
		institute: entry.FeeLedgerInstituteID,
		student:   entry.FeeLedgerStudentID,
		month:     FirstOfMonth(entry.FeeLedgerMonth),
	}
}

func (s *memStore) Get(_ context.Context, instituteID, studentID uuid.UUID, month MonthKey) (*model.FeeLedgerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[ledgerKey{institute: instituteID, student: studentID, month: month}]
	if !ok {
		return nil, ErrLedgerNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*model.FeeLedgerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.byID[id]
	if !ok {
		return nil, ErrLedgerNotFound
	}
	cp := *s.rows[key]
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, entry *model.FeeLedgerModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := keyOf(entry)
	if _, exists := s.rows[key]; exists {
		return ErrLedgerExists
	}
	cp := *entry
	s.rows[key] = &cp
	s.byID[entry.FeeLedgerID] = key
	s.creates++
	return nil
}

func (s *memStore) UpdatePayment(_ context.Context, id uuid.UUID, amountPaid float64, status model.LedgerStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.byID[id]
	if !ok {
		return ErrLedgerNotFound
	}
	s.rows[key].FeeLedgerAmountPaid = amountPaid
	s.rows[key].FeeLedgerStatus = status
	s.updates++
	return nil
}

func (s *memStore) ListForMonth(_ context.Context, instituteID uuid.UUID, month MonthKey) ([]model.FeeLedgerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.FeeLedgerModel
	for key, row := range s.rows {
		if key.institute == instituteID && key.month == month {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *memStore) totalPaid() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, row := range s.rows {
		sum += row.FeeLedgerAmountPaid
	}
	return sum
}

// memFees is an in-memory StudentFeeSource.
type memFees struct {
	fees map[uuid.UUID]float64
}

func newMemFees() *memFees {
	return &memFees{fees: make(map[uuid.UUID]float64)}
}

func (f *memFees) MonthlyFee(_ context.Context, _, studentID uuid.UUID) (float64, error) {
	fee, ok := f.fees[studentID]
	if !ok {
		return 0, ErrStudentNotFound
	}
	return fee, nil
}

func (f *memFees) ActiveStudents(_ context.Context, _ uuid.UUID, onlyIDs []uuid.UUID) ([]StudentFee, error) {
	var out []StudentFee
	if len(onlyIDs) > 0 {
		for _, id := range onlyIDs {
			if fee, ok := f.fees[id]; ok {
				out = append(out, StudentFee{StudentID: id, MonthlyFee: fee})
			}
		}
		return out, nil
	}
	for id, fee := range f.fees {
		out = append(out, StudentFee{StudentID: id, MonthlyFee: fee})
	}
	return out, nil
}
