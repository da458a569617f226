package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Resource is an org-scoped file (PDF, video, slide deck). The file itself
// lives in object storage under StorageKey.
type Resource struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	CreatorID      uint           `gorm:"not null;index" json:"creator_id"`
	Title          string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=2,max=255"`
	StorageKey     string         `gorm:"type:varchar(255)" json:"-"`
	MimeType       string         `gorm:"type:varchar(100)" json:"mime_type"`
	FileSize       int64          `gorm:"default:0" json:"file_size"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Resource) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
