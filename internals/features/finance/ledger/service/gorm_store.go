package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "feekhata_backend/internals/features/finance/ledger/model"
	studentModel "feekhata_backend/internals/features/lembaga/students/model"
)

/* ======================= LEDGER STORE (GORM) ======================= */

type GormLedgerStore struct {
	DB *gorm.DB
}

func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{DB: db}
}

func (s *GormLedgerStore) Get(ctx context.Context, instituteID, studentID uuid.UUID, month MonthKey) (*model.FeeLedgerModel, error) {
	var row model.FeeLedgerModel
	err := s.DB.WithContext(ctx).
		Where("fee_ledger_institute_id = ? AND fee_ledger_student_id = ? AND fee_ledger_month = ?",
			instituteID, studentID, month.Date()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLedgerNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormLedgerStore) GetByID(ctx context.Context, id uuid.UUID) (*model.FeeLedgerModel, error) {
	var row model.FeeLedgerModel
	err := s.DB.WithContext(ctx).
		Where("fee_ledger_id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLedgerNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormLedgerStore) Create(ctx context.Context, entry *model.FeeLedgerModel) error {
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return ErrLedgerExists
		}
		return err
	}
	return nil
}

func (s *GormLedgerStore) UpdatePayment(ctx context.Context, id uuid.UUID, amountPaid float64, status model.LedgerStatus) error {
	return s.DB.WithContext(ctx).
		Model(&model.FeeLedgerModel{}).
		Where("fee_ledger_id = ?", id).
		Updates(map[string]interface{}{
			"fee_ledger_amount_paid": amountPaid,
			"fee_ledger_status":      status,
		}).Error
}

func (s *GormLedgerStore) ListForMonth(ctx context.Context, instituteID uuid.UUID, month MonthKey) ([]model.FeeLedgerModel, error) {
	var rows []model.FeeLedgerModel
	err := s.DB.WithContext(ctx).
		Where("fee_ledger_institute_id = ? AND fee_ledger_month = ?", instituteID, month.Date()).
		Find(&rows).Error
	return rows, err
}

/* ======================= STUDENT FEE SOURCE (GORM) ======================= */

type GormStudentFeeSource struct {
	DB *gorm.DB
}

func NewGormStudentFeeSource(db *gorm.DB) *GormStudentFeeSource {
	return &GormStudentFeeSource{DB: db}
}

func (s *GormStudentFeeSource) MonthlyFee(ctx context.Context, instituteID, studentID uuid.UUID) (float64, error) {
	var row studentModel.StudentModel
	err := s.DB.WithContext(ctx).
		Select("student_monthly_fee").
		Where("student_id = ? AND student_institute_id = ?", studentID, instituteID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStudentNotFound
		}
		return 0, err
	}
	return row.StudentMonthlyFee, nil
}

func (s *GormStudentFeeSource) ActiveStudents(ctx context.Context, instituteID uuid.UUID, onlyIDs []uuid.UUID) ([]StudentFee, error) {
	q := s.DB.WithContext(ctx).
		Model(&studentModel.StudentModel{}).
		Where("student_institute_id = ?", instituteID)
	if len(onlyIDs) > 0 {
		q = q.Where("student_id IN ?", onlyIDs)
	}

	var rows []studentModel.StudentModel
	if err := q.Select("student_id", "student_monthly_fee").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]StudentFee, 0, len(rows))
	for _, r := range rows {
		out = append(out, StudentFee{StudentID: r.StudentID, MonthlyFee: r.StudentMonthlyFee})
	}
	return out, nil
}
