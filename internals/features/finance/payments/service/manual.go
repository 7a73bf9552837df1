package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"feekhata_backend/internals/constants"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	model "feekhata_backend/internals/features/finance/payments/model"
	activityService "feekhata_backend/internals/features/home/activity/service"
)

// ManualPaymentService records cash/UPI payments taken at the desk.
// Ledger mutation goes through the same allocator as webhook
// settlements, so the status rule and waterfall behave identically.
type ManualPaymentService struct {
	Payments  PendingPaymentStore
	Ledgers   ledgerService.LedgerStore
	Ensurer   *ledgerService.Ensurer
	Allocator *ledgerService.Allocator
	Students  StudentReader
	Activity  activityService.Recorder
}

func NewManualPaymentService(
	payments PendingPaymentStore,
	ledgers ledgerService.LedgerStore,
	ensurer *ledgerService.Ensurer,
	allocator *ledgerService.Allocator,
	students StudentReader,
	activity activityService.Recorder,
) *ManualPaymentService {
	return &ManualPaymentService{
		Payments:  payments,
		Ledgers:   ledgers,
		Ensurer:   ensurer,
		Allocator: allocator,
		Students:  students,
		Activity:  activity,
	}
}

func (s *ManualPaymentService) Pay(ctx context.Context, instituteID, studentID uuid.UUID, amount float64, method string) (*model.PaymentModel, error) {
	if amount <= 0 {
		return nil, ledgerService.ErrNonPositiveAmount
	}

	student, err := s.Students.Find(ctx, instituteID, studentID)
	if err != nil {
		return nil, err
	}

	month := ledgerService.CurrentMonth()
	if err := s.Ensurer.EnsureMonth(ctx, instituteID, []uuid.UUID{studentID}, month); err != nil {
		return nil, fmt.Errorf("ensure current month: %w", err)
	}

	res, err := s.Allocator.Allocate(ctx, instituteID, studentID, month, amount)
	if err != nil {
		return nil, fmt.Errorf("allocate manual payment: %w", err)
	}

	ledgerID := res.FirstLedgerID
	if ledgerID == nil {
		// Zero-fee student: nothing to allocate into, the payment row
		// still records the money against the current-month entry if any.
		if entry, lerr := s.Ledgers.Get(ctx, instituteID, studentID, month); lerr == nil {
			ledgerID = &entry.FeeLedgerID
		} else if !errors.Is(lerr, ledgerService.ErrLedgerNotFound) {
			return nil, lerr
		}
	}

	now := time.Now().UTC()
	payment := &model.PaymentModel{
		PaymentID:          uuid.New(),
		PaymentInstituteID: instituteID,
		PaymentStudentID:   studentID,
		PaymentAmount:      amount,
		PaymentStatus:      model.PaymentPaid,
		PaymentSource:      model.PaymentSourceManual,
		PaymentMethod:      &method,
		PaymentLedgerID:    ledgerID,
		PaymentPaidAt:      &now,
	}
	if err := s.Payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("record manual payment: %w", err)
	}

	sid := studentID
	s.Activity.Record(ctx, instituteID, constants.ActivityManualPayment, &sid,
		fmt.Sprintf("₹%d received from %s (%s)", int64(math.Round(amount)), student.StudentName, method))

	return payment, nil
}
