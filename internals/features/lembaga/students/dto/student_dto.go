package dto

import (
	"github.com/google/uuid"

	m "feekhata_backend/internals/features/lembaga/students/model"
)

/* ================== REQUESTS ================== */

type CreateStudentRequest struct {
	StudentName        string     `json:"student_name" validate:"required"`
	StudentParentName  string     `json:"student_parent_name" validate:"omitempty"`
	StudentParentPhone string     `json:"student_parent_phone" validate:"required"`
	StudentMonthlyFee  float64    `json:"student_monthly_fee" validate:"gte=0"`
	StudentFeeDueDay   *int16     `json:"student_fee_due_day" validate:"omitempty,gte=1,lte=28"`
	StudentTeacherID   *uuid.UUID `json:"student_teacher_id" validate:"omitempty"`
}

func (r CreateStudentRequest) ToModel(instituteID uuid.UUID) *m.StudentModel {
	dueDay := int16(5)
	if r.StudentFeeDueDay != nil {
		dueDay = *r.StudentFeeDueDay
	}
	return &m.StudentModel{
		StudentInstituteID: instituteID,
		StudentTeacherID:   r.StudentTeacherID,
		StudentName:        r.StudentName,
		StudentParentName:  r.StudentParentName,
		StudentParentPhone: r.StudentParentPhone,
		StudentMonthlyFee:  r.StudentMonthlyFee,
		StudentFeeDueDay:   dueDay,
	}
}

// Update (partial)
type UpdateStudentRequest struct {
	StudentName        *string    `json:"student_name" validate:"omitempty"`
	StudentParentName  *string    `json:"student_parent_name" validate:"omitempty"`
	StudentParentPhone *string    `json:"student_parent_phone" validate:"omitempty"`
	StudentMonthlyFee  *float64   `json:"student_monthly_fee" validate:"omitempty,gte=0"`
	StudentFeeDueDay   *int16     `json:"student_fee_due_day" validate:"omitempty,gte=1,lte=28"`
	StudentTeacherID   *uuid.UUID `json:"student_teacher_id" validate:"omitempty"`
}

// Apply changes onto the existing model. A fee change never rewrites
// ledger rows that already exist; due amounts are creation-time snapshots.
func (r UpdateStudentRequest) ApplyTo(mo *m.StudentModel) {
	if r.StudentName != nil {
		mo.StudentName = *r.StudentName
	}
	if r.StudentParentName != nil {
		mo.StudentParentName = *r.StudentParentName
	}
	if r.StudentParentPhone != nil {
		mo.StudentParentPhone = *r.StudentParentPhone
	}
	if r.StudentMonthlyFee != nil {
		mo.StudentMonthlyFee = *r.StudentMonthlyFee
	}
	if r.StudentFeeDueDay != nil {
		mo.StudentFeeDueDay = *r.StudentFeeDueDay
	}
	if r.StudentTeacherID != nil {
		mo.StudentTeacherID = r.StudentTeacherID
	}
}
