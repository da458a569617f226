package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Formation is an org-scoped course.
type Formation struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	CreatorID      uint           `gorm:"not null;index" json:"creator_id"`
	Title          string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=2,max=255"`
	Description    string         `gorm:"type:text" json:"description" validate:"max=5000"`
	Published      bool           `gorm:"default:false" json:"published"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Formation) Validate() error {
	v := validator.New()

	return v.Struct(f)
}
