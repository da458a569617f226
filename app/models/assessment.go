package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Assessment is an org-scoped test.
type Assessment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	CreatorID      uint           `gorm:"not null;index" json:"creator_id"`
	Title          string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=2,max=255"`
	QuestionCount  int            `gorm:"default:0" json:"question_count" validate:"min=0"`
	PassScore      int            `gorm:"default:0" json:"pass_score" validate:"min=0,max=100"`
	Published      bool           `gorm:"default:false" json:"published"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Assessment) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
