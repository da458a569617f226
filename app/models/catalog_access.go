package models

import "time"

// Grant statuses. Access is a pure existence check over these rows; there is
// no TTL and no revocable lease. Revocation deletes the row.
const (
	ACCESS_PURCHASED = "purchased"
	ACCESS_GRANTED   = "manually_granted"
	ACCESS_FREE      = "free"
)

// CatalogAccess records that a user may consume a catalog item. Rows are
// inserted by the payment webhook or a backoffice grant and never mutated.
type CatalogAccess struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:ux_catalog_access_user_item,unique,priority:1" json:"user_id"`
	CatalogItemID uint      `gorm:"not null;index:ux_catalog_access_user_item,unique,priority:2" json:"catalog_item_id"`
	AccessStatus  string    `gorm:"type:varchar(50);not null" json:"access_status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ValidAccessStatus reports whether status is a grant status the catalog
// gate honors.
func ValidAccessStatus(status string) bool {
	switch status {
	case ACCESS_PURCHASED, ACCESS_GRANTED, ACCESS_FREE:
		return true
	}
	return false
}
