package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Organization is a tenant. Content and memberships are scoped to it.
// The slug is the external-facing identifier used in URLs; it is stored
// lowercase and matched case-insensitively at the routing boundary.
type Organization struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Slug         string         `gorm:"uniqueIndex;type:varchar(100)" json:"slug" validate:"required,min=2,max=100"`
	Name         string         `gorm:"type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	LogoKey      string         `gorm:"type:varchar(255);default:null" json:"-"`
	PrimaryColor string         `gorm:"type:varchar(20);default:null" json:"primary_color" validate:"max=20"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Organization) Validate() error {
	if !slugPattern.MatchString(o.Slug) {
		return ErrInvalidSlug
	}
	v := validator.New()

	return v.Struct(o)
}

// NormalizeSlug lowercases and trims an externally supplied slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
