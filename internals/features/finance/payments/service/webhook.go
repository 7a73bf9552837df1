package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"feekhata_backend/internals/constants"
	dto "feekhata_backend/internals/features/finance/payments/dto"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	activityService "feekhata_backend/internals/features/home/activity/service"
)

// WebhookService settles pending payments from verified gateway events.
// Ordering matters: every ledger mutation happens before the pending →
// paid transition, so a crash mid-allocation leaves the row pending and
// the gateway's redelivery resumes the work.
type WebhookService struct {
	Payments  PendingPaymentStore
	Ledgers   ledgerService.LedgerStore
	Allocator *ledgerService.Allocator
	Students  StudentReader
	Activity  activityService.Recorder
}

func NewWebhookService(
	payments PendingPaymentStore,
	ledgers ledgerService.LedgerStore,
	allocator *ledgerService.Allocator,
	students StudentReader,
	activity activityService.Recorder,
) *WebhookService {
	return &WebhookService{
		Payments:  payments,
		Ledgers:   ledgers,
		Allocator: allocator,
		Students:  students,
		Activity:  activity,
	}
}

// HandlePaymentLinkPaid processes one settlement notification. Unknown
// or already-settled link ids return nil: the gateway gets a 200 and
// duplicate deliveries never re-apply money.
func (s *WebhookService) HandlePaymentLinkPaid(ctx context.Context, evt dto.WebhookEvent, rawBody []byte) error {
	linkID := evt.LinkID()
	if linkID == "" {
		return nil
	}
	if evt.AmountPaise() <= 0 {
		return ledgerService.ErrNonPositiveAmount
	}

	pending, err := s.Payments.FindPendingByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			log.Printf("[INFO] webhook for link %s matched no pending payment, ack no-op", linkID)
			return nil
		}
		return fmt.Errorf("resolve pending payment: %w", err)
	}

	amountPaid := float64(evt.AmountPaise()) / 100

	// Allocation starts at the month the link was issued against, or the
	// current month when none was recorded.
	startMonth := ledgerService.CurrentMonth()
	if pending.PaymentLedgerID != nil {
		entry, lerr := s.Ledgers.GetByID(ctx, *pending.PaymentLedgerID)
		if lerr == nil {
			startMonth = ledgerService.FirstOfMonth(entry.FeeLedgerMonth)
		} else if !errors.Is(lerr, ledgerService.ErrLedgerNotFound) {
			return fmt.Errorf("resolve origin ledger: %w", lerr)
		}
	}

	res, err := s.Allocator.Allocate(ctx, pending.PaymentInstituteID, pending.PaymentStudentID, startMonth, amountPaid)
	if err != nil {
		return fmt.Errorf("allocate payment %s: %w", pending.PaymentID, err)
	}

	ledgerID := res.FirstLedgerID
	if ledgerID == nil {
		ledgerID = pending.PaymentLedgerID
	}

	settled, err := s.Payments.MarkPaid(ctx, pending.PaymentID, time.Now().UTC(), ledgerID, rawBody)
	if err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	if !settled {
		log.Printf("[INFO] payment %s already settled by a concurrent delivery", pending.PaymentID)
		return nil
	}

	studentName := "student"
	if st, serr := s.Students.Find(ctx, pending.PaymentInstituteID, pending.PaymentStudentID); serr == nil {
		studentName = st.StudentName
	}
	sid := pending.PaymentStudentID
	s.Activity.Record(ctx, pending.PaymentInstituteID, constants.ActivityPaymentReceived, &sid,
		fmt.Sprintf("₹%d received from %s", int64(math.Round(amountPaid)), studentName))

	return nil
}
