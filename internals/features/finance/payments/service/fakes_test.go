package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	ledgerModel "feekhata_backend/internals/features/finance/ledger/model"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	model "feekhata_backend/internals/features/finance/payments/model"
	studentModel "feekhata_backend/internals/features/lembaga/students/model"
)

/* ---------- ledger store ---------- */

type ledgerKey struct {
	institute uuid.UUID
	student   uuid.UUID
	month     ledgerService.MonthKey
}

type fakeLedgerStore struct {
	mu   sync.Mutex
	rows map[ledgerKey]*ledgerModel.FeeLedgerModel
	byID map[uuid.UUID]ledgerKey
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		rows: make(map[ledgerKey]*ledgerModel.FeeLedgerModel),
		byID: make(map[uuid.UUID]ledgerKey),
	}
}

func (s *fakeLedgerStore) Get(_ context.Context, instituteID, studentID uuid.UUID, month ledgerService.MonthKey) (*ledgerModel.FeeLedgerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[ledgerKey{instituteID, studentID, month}]
	if !ok {
		return nil, ledgerService.ErrLedgerNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *fakeLedgerStore) GetByID(_ context.Context, id uuid.UUID) (*ledgerModel.FeeLedgerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.byID[id]
	if !ok {
		return nil, ledgerService.ErrLedgerNotFound
	}
	cp := *s.rows[key]
	return &cp, nil
}

func (s *fakeLedgerStore) Create(_ context.Context, entry *ledgerModel.FeeLedgerModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ledgerKey{entry.FeeLedgerInstituteID, entry.FeeLedgerStudentID, ledgerService.FirstOfMonth(entry.FeeLedgerMonth)}
	if _, exists := s.rows[key]; exists {
		return ledgerService.ErrLedgerExists
	}
	cp := *entry
	s.rows[key] = &cp
	s.byID[entry.FeeLedgerID] = key
	return nil
}

func (s *fakeLedgerStore) UpdatePayment(_ context.Context, id uuid.UUID, amountPaid float64, status ledgerModel.LedgerStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.byID[id]
	if !ok {
		return ledgerService.ErrLedgerNotFound
	}
	s.rows[key].FeeLedgerAmountPaid = amountPaid
	s.rows[key].FeeLedgerStatus = status
	return nil
}

func (s *fakeLedgerStore) ListForMonth(_ context.Context, instituteID uuid.UUID, month ledgerService.MonthKey) ([]ledgerModel.FeeLedgerModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledgerModel.FeeLedgerModel
	for key, row := range s.rows {
		if key.institute == instituteID && key.month == month {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *fakeLedgerStore) totalPaid() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, row := range s.rows {
		sum += row.FeeLedgerAmountPaid
	}
	return sum
}

/* ---------- fee source ---------- */

type fakeFeeSource struct {
	fees map[uuid.UUID]float64
}

func newFakeFeeSource() *fakeFeeSource {
	return &fakeFeeSource{fees: make(map[uuid.UUID]float64)}
}

func (f *fakeFeeSource) MonthlyFee(_ context.Context, _, studentID uuid.UUID) (float64, error) {
	fee, ok := f.fees[studentID]
	if !ok {
		return 0, ledgerService.ErrStudentNotFound
	}
	return fee, nil
}

func (f *fakeFeeSource) ActiveStudents(_ context.Context, _ uuid.UUID, onlyIDs []uuid.UUID) ([]ledgerService.StudentFee, error) {
	var out []ledgerService.StudentFee
	if len(onlyIDs) > 0 {
		for _, id := range onlyIDs {
			if fee, ok := f.fees[id]; ok {
				out = append(out, ledgerService.StudentFee{StudentID: id, MonthlyFee: fee})
			}
		}
		return out, nil
	}
	for id, fee := range f.fees {
		out = append(out, ledgerService.StudentFee{StudentID: id, MonthlyFee: fee})
	}
	return out, nil
}

/* ---------- payment store ---------- */

type fakePaymentStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.PaymentModel
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{rows: make(map[uuid.UUID]*model.PaymentModel)}
}

func (s *fakePaymentStore) Create(_ context.Context, p *model.PaymentModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.rows[p.PaymentID] = &cp
	return nil
}

func (s *fakePaymentStore) FindPendingByLinkID(_ context.Context, linkID string) (*model.PaymentModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.PaymentLinkID != nil && *row.PaymentLinkID == linkID && row.PaymentStatus == model.PaymentPending {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (s *fakePaymentStore) MarkPaid(_ context.Context, paymentID uuid.UUID, paidAt time.Time, ledgerID *uuid.UUID, gatewayPayload []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[paymentID]
	if !ok || row.PaymentStatus != model.PaymentPending {
		return false, nil
	}
	row.PaymentStatus = model.PaymentPaid
	row.PaymentPaidAt = &paidAt
	if ledgerID != nil {
		row.PaymentLedgerID = ledgerID
	}
	if len(gatewayPayload) > 0 {
		row.PaymentGatewayPayload = datatypes.JSON(gatewayPayload)
	}
	return true, nil
}

/* ---------- students / activity ---------- */

type fakeStudentReader struct {
	students map[uuid.UUID]*studentModel.StudentModel
}

func newFakeStudentReader() *fakeStudentReader {
	return &fakeStudentReader{students: make(map[uuid.UUID]*studentModel.StudentModel)}
}

func (r *fakeStudentReader) Find(_ context.Context, _, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	st, ok := r.students[studentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return st, nil
}

type recordedActivity struct {
	activityType string
	message      string
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []recordedActivity
}

func (r *fakeRecorder) Record(_ context.Context, _ uuid.UUID, activityType string, _ *uuid.UUID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, recordedActivity{activityType, message})
}
