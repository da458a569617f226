package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership roles. Route prefixes are derived from these in the access package.
const (
	ROLE_ADMIN     = "admin"
	ROLE_FORMATEUR = "formateur"
	ROLE_TUTEUR    = "tuteur"
	ROLE_APPRENANT = "apprenant"
)

// Membership grants a user a role within one organization. A user may hold
// memberships in several organizations; role changes are row updates, the
// rows themselves are never versioned.
type Membership struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index:ux_memberships_org_user,unique,priority:1" json:"organization_id"`
	UserID         uint           `gorm:"not null;index:ux_memberships_org_user,unique,priority:2;index" json:"user_id"`
	Role           string         `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Membership) Validate() error {
	if !ValidRole(m.Role) {
		return ErrInvalidRole
	}
	return nil
}

// ValidRole reports whether role is one of the four membership roles.
func ValidRole(role string) bool {
	switch role {
	case ROLE_ADMIN, ROLE_FORMATEUR, ROLE_TUTEUR, ROLE_APPRENANT:
		return true
	}
	return false
}

// CanManageContent reports whether the role may create or mutate org content.
func CanManageContent(role string) bool {
	return role == ROLE_ADMIN || role == ROLE_FORMATEUR
}
