package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLogModel is the append-only audit trail. Rows are write-once;
// there is no update or delete path.
type ActivityLogModel struct {
	ActivityLogID uuid.UUID `gorm:"column:activity_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"activity_log_id"`

	ActivityLogInstituteID uuid.UUID  `gorm:"column:activity_log_institute_id;type:uuid;not null;index:idx_activity_logs_institute_created" json:"activity_log_institute_id"`
	ActivityLogStudentID   *uuid.UUID `gorm:"column:activity_log_student_id;type:uuid" json:"activity_log_student_id,omitempty"`

	ActivityLogType    string `gorm:"column:activity_log_type;type:varchar(30);not null" json:"activity_log_type"`
	ActivityLogMessage string `gorm:"column:activity_log_message;type:text;not null" json:"activity_log_message"`

	ActivityLogCreatedAt time.Time `gorm:"column:activity_log_created_at;autoCreateTime" json:"activity_log_created_at"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }
