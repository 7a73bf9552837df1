package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	ledgerModel "feekhata_backend/internals/features/finance/ledger/model"
	ledgerService "feekhata_backend/internals/features/finance/ledger/service"
	dto "feekhata_backend/internals/features/finance/payments/dto"
	model "feekhata_backend/internals/features/finance/payments/model"
	studentModel "feekhata_backend/internals/features/lembaga/students/model"
)

type webhookFixture struct {
	store    *fakeLedgerStore
	fees     *fakeFeeSource
	payments *fakePaymentStore
	students *fakeStudentReader
	activity *fakeRecorder
	svc      *WebhookService

	instituteID uuid.UUID
	studentID   uuid.UUID
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		store:       newFakeLedgerStore(),
		fees:        newFakeFeeSource(),
		payments:    newFakePaymentStore(),
		students:    newFakeStudentReader(),
		activity:    &fakeRecorder{},
		instituteID: uuid.New(),
		studentID:   uuid.New(),
	}
	f.fees.fees[f.studentID] = 2000
	f.students.students[f.studentID] = &studentModel.StudentModel{
		StudentID:          f.studentID,
		StudentInstituteID: f.instituteID,
		StudentName:        "Ravi",
		StudentMonthlyFee:  2000,
	}
	f.svc = NewWebhookService(
		f.payments,
		f.store,
		ledgerService.NewAllocator(f.store, f.fees),
		f.students,
		f.activity,
	)
	return f
}

func (f *webhookFixture) seedLedger(t *testing.T, month ledgerService.MonthKey, due, paid float64) *ledgerModel.FeeLedgerModel {
	t.Helper()
	entry := &ledgerModel.FeeLedgerModel{
		FeeLedgerID:          uuid.New(),
		FeeLedgerInstituteID: f.instituteID,
		FeeLedgerStudentID:   f.studentID,
		FeeLedgerMonth:       month.Date(),
		FeeLedgerAmountDue:   due,
		FeeLedgerAmountPaid:  paid,
		FeeLedgerStatus:      ledgerService.ComputeLedgerStatus(due, paid),
	}
	if err := f.store.Create(context.Background(), entry); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return entry
}

func (f *webhookFixture) seedPending(t *testing.T, linkID string, amount float64, ledgerID *uuid.UUID) *model.PaymentModel {
	t.Helper()
	p := &model.PaymentModel{
		PaymentID:          uuid.New(),
		PaymentInstituteID: f.instituteID,
		PaymentStudentID:   f.studentID,
		PaymentAmount:      amount,
		PaymentLinkID:      &linkID,
		PaymentStatus:      model.PaymentPending,
		PaymentSource:      model.PaymentSourceLink,
		PaymentLedgerID:    ledgerID,
	}
	if err := f.payments.Create(context.Background(), p); err != nil {
		t.Fatalf("seed pending: %v", err)
	}
	return p
}

func paidEvent(linkID string, amountPaise int64) dto.WebhookEvent {
	var evt dto.WebhookEvent
	evt.Event = dto.EventPaymentLinkPaid
	evt.Payload.PaymentLink.Entity.ID = linkID
	evt.Payload.Payment.Entity.Amount = amountPaise
	evt.Payload.Payment.Entity.Status = "captured"
	return evt
}

func TestWebhookSettlesPendingPayment(t *testing.T) {
	f := newWebhookFixture()
	month := ledgerService.MonthKey{Year: 2026, Month: time.August}
	entry := f.seedLedger(t, month, 2000, 0)
	pending := f.seedPending(t, "plink_abc", 2000, &entry.FeeLedgerID)

	err := f.svc.HandlePaymentLinkPaid(context.Background(), paidEvent("plink_abc", 200000), []byte(`{"raw":true}`))
	if err != nil {
		t.Fatalf("HandlePaymentLinkPaid: %v", err)
	}

	row, _ := f.store.Get(context.Background(), f.instituteID, f.studentID, month)
	if row.FeeLedgerAmountPaid != 2000 || row.FeeLedgerStatus != ledgerModel.LedgerPaid {
		t.Errorf("ledger: paid=%v status=%v", row.FeeLedgerAmountPaid, row.FeeLedgerStatus)
	}

	settled := f.payments.rows[pending.PaymentID]
	if settled.PaymentStatus != model.PaymentPaid || settled.PaymentPaidAt == nil {
		t.Errorf("payment not settled: status=%v", settled.PaymentStatus)
	}
	if len(settled.PaymentGatewayPayload) == 0 {
		t.Errorf("gateway payload not captured")
	}

	if len(f.activity.entries) != 1 {
		t.Fatalf("activity entries = %d, want 1", len(f.activity.entries))
	}
	if !strings.Contains(f.activity.entries[0].message, "₹2000") || !strings.Contains(f.activity.entries[0].message, "Ravi") {
		t.Errorf("activity message = %q", f.activity.entries[0].message)
	}
}

// The gateway redelivers webhooks; a second delivery must not double
// the money.
func TestWebhookDuplicateDeliveryIsNoOp(t *testing.T) {
	f := newWebhookFixture()
	month := ledgerService.MonthKey{Year: 2026, Month: time.August}
	entry := f.seedLedger(t, month, 2000, 0)
	f.seedPending(t, "plink_dup", 2000, &entry.FeeLedgerID)

	evt := paidEvent("plink_dup", 200000)
	if err := f.svc.HandlePaymentLinkPaid(context.Background(), evt, nil); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := f.svc.HandlePaymentLinkPaid(context.Background(), evt, nil); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	if got := f.store.totalPaid(); got != 2000 {
		t.Errorf("total paid = %v after duplicate delivery, want 2000", got)
	}
	if len(f.activity.entries) != 1 {
		t.Errorf("activity entries = %d, want 1", len(f.activity.entries))
	}
}

func TestWebhookUnknownLinkIsAcknowledged(t *testing.T) {
	f := newWebhookFixture()
	if err := f.svc.HandlePaymentLinkPaid(context.Background(), paidEvent("plink_nobody", 100000), nil); err != nil {
		t.Errorf("unknown link should be a no-op, got %v", err)
	}
	if len(f.activity.entries) != 0 {
		t.Errorf("activity recorded for unknown link")
	}
}

func TestWebhookMissingLinkIDIsIgnored(t *testing.T) {
	f := newWebhookFixture()
	if err := f.svc.HandlePaymentLinkPaid(context.Background(), paidEvent("", 100000), nil); err != nil {
		t.Errorf("empty link id should be a no-op, got %v", err)
	}
}

func TestWebhookRejectsNonPositiveAmount(t *testing.T) {
	f := newWebhookFixture()
	err := f.svc.HandlePaymentLinkPaid(context.Background(), paidEvent("plink_zero", 0), nil)
	if !errors.Is(err, ledgerService.ErrNonPositiveAmount) {
		t.Errorf("err = %v, want ErrNonPositiveAmount", err)
	}
}

// Paying more than one month from the link's origin month walks the
// remainder forward into freshly created rows.
func TestWebhookOverpaymentSpillsForward(t *testing.T) {
	f := newWebhookFixture()
	month := ledgerService.MonthKey{Year: 2026, Month: time.January}
	entry := f.seedLedger(t, month, 2000, 0)
	f.seedPending(t, "plink_over", 2000, &entry.FeeLedgerID)

	// 5000 paid against the 2000 link
	if err := f.svc.HandlePaymentLinkPaid(context.Background(), paidEvent("plink_over", 500000), nil); err != nil {
		t.Fatalf("HandlePaymentLinkPaid: %v", err)
	}

	feb, err := f.store.Get(context.Background(), f.instituteID, f.studentID, month.Next())
	if err != nil {
		t.Fatalf("february not created: %v", err)
	}
	mar, err := f.store.Get(context.Background(), f.instituteID, f.studentID, month.Next().Next())
	if err != nil {
		t.Fatalf("march not created: %v", err)
	}
	if feb.FeeLedgerStatus != ledgerModel.LedgerPaid || mar.FeeLedgerAmountPaid != 1000 {
		t.Errorf("feb status=%v mar paid=%v", feb.FeeLedgerStatus, mar.FeeLedgerAmountPaid)
	}
}

// When the pending row has no ledger reference the allocation starts at
// the current month.
func TestWebhookWithoutLedgerRefStartsAtCurrentMonth(t *testing.T) {
	f := newWebhookFixture()
	f.seedPending(t, "plink_free", 2000, nil)

	if err := f.svc.HandlePaymentLinkPaid(context.Background(), paidEvent("plink_free", 200000), nil); err != nil {
		t.Fatalf("HandlePaymentLinkPaid: %v", err)
	}

	row, err := f.store.Get(context.Background(), f.instituteID, f.studentID, ledgerService.CurrentMonth())
	if err != nil {
		t.Fatalf("current month row not created: %v", err)
	}
	if row.FeeLedgerAmountPaid != 2000 {
		t.Errorf("current month paid = %v, want 2000", row.FeeLedgerAmountPaid)
	}
}
