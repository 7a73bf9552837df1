package dto

import "github.com/google/uuid"

type BroadcastRequest struct {
	MessageType string      `json:"message_type" validate:"required,oneof=homework absent test"`
	StudentIDs  []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
}
