package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	// FK (NOT NULL → CASCADE)
	StudentInstituteID uuid.UUID `gorm:"column:student_institute_id;type:uuid;not null;index:idx_students_institute" json:"student_institute_id"`

	// Staff member this student is assigned to (nullable)
	StudentTeacherID *uuid.UUID `gorm:"column:student_teacher_id;type:uuid" json:"student_teacher_id,omitempty"`

	StudentName        string `gorm:"column:student_name;type:text;not null" json:"student_name"`
	StudentParentName  string `gorm:"column:student_parent_name;type:text;not null;default:''" json:"student_parent_name"`
	StudentParentPhone string `gorm:"column:student_parent_phone;type:text;not null;default:''" json:"student_parent_phone"`

	// Monthly fee baseline; ledger entries snapshot it at creation time
	StudentMonthlyFee float64 `gorm:"column:student_monthly_fee;type:numeric(12,2);not null;default:0;check:student_monthly_fee >= 0" json:"student_monthly_fee"`
	StudentFeeDueDay  int16   `gorm:"column:student_fee_due_day;type:smallint;not null;default:5" json:"student_fee_due_day"` // 1..28

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
