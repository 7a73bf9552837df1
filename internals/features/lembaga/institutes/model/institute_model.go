package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstituteModel struct {
	InstituteID uuid.UUID `gorm:"column:institute_id;type:uuid;default:gen_random_uuid();primaryKey" json:"institute_id"`

	InstituteName        string    `gorm:"column:institute_name;type:text;not null" json:"institute_name"`
	InstituteOwnerUserID uuid.UUID `gorm:"column:institute_owner_user_id;type:uuid;not null" json:"institute_owner_user_id"`
	InstitutePhone       string    `gorm:"column:institute_phone;type:text;not null;default:''" json:"institute_phone"`
	InstituteCity        string    `gorm:"column:institute_city;type:text;not null;default:''" json:"institute_city"`

	InstituteCreatedAt time.Time      `gorm:"column:institute_created_at;autoCreateTime" json:"institute_created_at"`
	InstituteUpdatedAt *time.Time     `gorm:"column:institute_updated_at;autoUpdateTime" json:"institute_updated_at,omitempty"`
	InstituteDeletedAt gorm.DeletedAt `gorm:"column:institute_deleted_at;index" json:"institute_deleted_at,omitempty"`
}

func (InstituteModel) TableName() string { return "institutes" }
