package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type WhatsappMessageType string

const (
	WhatsappMessageFee      WhatsappMessageType = "fee"
	WhatsappMessageHomework WhatsappMessageType = "homework"
	WhatsappMessageAbsent   WhatsappMessageType = "absent"
	WhatsappMessageTest     WhatsappMessageType = "test"
)

type WhatsappLogModel struct {
	WhatsappLogID uuid.UUID `gorm:"column:whatsapp_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"whatsapp_log_id"`

	WhatsappLogInstituteID uuid.UUID  `gorm:"column:whatsapp_log_institute_id;type:uuid;not null;index:idx_whatsapp_logs_institute" json:"whatsapp_log_institute_id"`
	WhatsappLogTeacherID   *uuid.UUID `gorm:"column:whatsapp_log_teacher_id;type:uuid" json:"whatsapp_log_teacher_id,omitempty"`
	WhatsappLogStudentID   *uuid.UUID `gorm:"column:whatsapp_log_student_id;type:uuid" json:"whatsapp_log_student_id,omitempty"`

	WhatsappLogMessageType WhatsappMessageType `gorm:"column:whatsapp_log_message_type;type:varchar(20);not null;default:fee" json:"whatsapp_log_message_type"`
	WhatsappLogStatus      string              `gorm:"column:whatsapp_log_status;type:varchar(20);not null;default:sent" json:"whatsapp_log_status"`

	// Phone snapshot; broadcasts record every recipient on one row
	WhatsappLogRecipientPhones pq.StringArray `gorm:"column:whatsapp_log_recipient_phones;type:text[]" json:"whatsapp_log_recipient_phones"`

	WhatsappLogCreatedAt time.Time `gorm:"column:whatsapp_log_created_at;autoCreateTime" json:"whatsapp_log_created_at"`
}

func (WhatsappLogModel) TableName() string { return "whatsapp_logs" }
