package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "feekhata_backend/internals/features/home/activity/model"
)

// Recorder is the append-only audit sink. Record is fire-and-forget: a
// failed append must never roll back the financial mutation that
// triggered it, so implementations swallow and log their own errors.
type Recorder interface {
	Record(ctx context.Context, instituteID uuid.UUID, activityType string, studentID *uuid.UUID, message string)
}

type GormRecorder struct {
	DB *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{DB: db}
}

func (r *GormRecorder) Record(ctx context.Context, instituteID uuid.UUID, activityType string, studentID *uuid.UUID, message string) {
	row := model.ActivityLogModel{
		ActivityLogInstituteID: instituteID,
		ActivityLogStudentID:   studentID,
		ActivityLogType:        activityType,
		ActivityLogMessage:     message,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[WARN] activity log append failed (type=%s): %v", activityType, err)
	}
}

// ListRecent returns the newest activity rows for an institute.
func (r *GormRecorder) ListRecent(ctx context.Context, instituteID uuid.UUID, limit int) ([]model.ActivityLogModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []model.ActivityLogModel
	err := r.DB.WithContext(ctx).
		Where("activity_log_institute_id = ?", instituteID).
		Order("activity_log_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
