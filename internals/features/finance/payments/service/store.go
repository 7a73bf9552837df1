package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "feekhata_backend/internals/features/finance/payments/model"
	studentModel "feekhata_backend/internals/features/lembaga/students/model"
)

var ErrPaymentNotFound = errors.New("pending payment not found")

// PendingPaymentStore is the persistence boundary for payment rows.
type PendingPaymentStore interface {
	Create(ctx context.Context, p *model.PaymentModel) error

	// FindPendingByLinkID resolves a gateway link id to the single
	// payment still in status pending. Already-settled or unknown link
	// ids surface as ErrPaymentNotFound.
	FindPendingByLinkID(ctx context.Context, linkID string) (*model.PaymentModel, error)

	// MarkPaid flips pending → paid, conditional on the row still being
	// pending. Returns false when another delivery won the race.
	MarkPaid(ctx context.Context, paymentID uuid.UUID, paidAt time.Time, ledgerID *uuid.UUID, gatewayPayload []byte) (bool, error)
}

// StudentReader gives the payments feature read-only roster access.
type StudentReader interface {
	Find(ctx context.Context, instituteID, studentID uuid.UUID) (*studentModel.StudentModel, error)
}

/* ======================= GORM IMPLEMENTATIONS ======================= */

type GormPaymentStore struct {
	DB *gorm.DB
}

func NewGormPaymentStore(db *gorm.DB) *GormPaymentStore {
	return &GormPaymentStore{DB: db}
}

func (s *GormPaymentStore) Create(ctx context.Context, p *model.PaymentModel) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *GormPaymentStore) FindPendingByLinkID(ctx context.Context, linkID string) (*model.PaymentModel, error) {
	var row model.PaymentModel
	err := s.DB.WithContext(ctx).
		Where("payment_link_id = ? AND payment_status = ?", linkID, model.PaymentPending).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormPaymentStore) MarkPaid(ctx context.Context, paymentID uuid.UUID, paidAt time.Time, ledgerID *uuid.UUID, gatewayPayload []byte) (bool, error) {
	updates := map[string]interface{}{
		"payment_status":  model.PaymentPaid,
		"payment_paid_at": paidAt,
	}
	if ledgerID != nil {
		updates["payment_ledger_id"] = *ledgerID
	}
	if len(gatewayPayload) > 0 {
		updates["payment_gateway_payload"] = gatewayPayload
	}

	// Compare-and-swap on status: duplicate webhook deliveries find zero
	// pending rows here and become no-ops.
	res := s.DB.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("payment_id = ? AND payment_status = ?", paymentID, model.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type GormStudentReader struct {
	DB *gorm.DB
}

func NewGormStudentReader(db *gorm.DB) *GormStudentReader {
	return &GormStudentReader{DB: db}
}

func (s *GormStudentReader) Find(ctx context.Context, instituteID, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	var row studentModel.StudentModel
	err := s.DB.WithContext(ctx).
		Where("student_id = ? AND student_institute_id = ?", studentID, instituteID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
