package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog item kinds mirror the content entity a listed item points at.
const (
	CATALOG_FORMATION  = "formation"
	CATALOG_PATHWAY    = "pathway"
	CATALOG_RESOURCE   = "resource"
	CATALOG_ASSESSMENT = "assessment"
)

// CatalogItem exposes a unit of content to learners outside their tenant
// context (the B2C path). Free items are consumable by anyone; paid items
// require a CatalogAccess grant or creatorship.
type CatalogItem struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UUID       string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Kind       string         `gorm:"type:varchar(50);not null" json:"kind"`
	RefID      uint           `gorm:"not null;index" json:"ref_id"`
	CreatorID  uint           `gorm:"not null;index" json:"creator_id"`
	Title      string         `gorm:"type:varchar(255)" json:"title"`
	IsFree     bool           `gorm:"default:false" json:"is_free"`
	PriceCents int64          `gorm:"default:0" json:"price_cents"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public identifier.
func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if ci.UUID == "" {
		ci.UUID = uuid.New().String()
	}
	return nil
}

// ValidCatalogKind reports whether kind names a listable content type.
func ValidCatalogKind(kind string) bool {
	switch kind {
	case CATALOG_FORMATION, CATALOG_PATHWAY, CATALOG_RESOURCE, CATALOG_ASSESSMENT:
		return true
	}
	return false
}
