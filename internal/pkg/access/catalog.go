package access

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// CatalogStore is the slice of the catalog repository the gate needs.
type CatalogStore interface {
	GetItemByUUID(uuid string) (*models.CatalogItem, error)
	GetGrant(userID, itemID uint) (*models.CatalogAccess, error)
}

// CatalogGate decides whether a principal may consume a catalog item. It
// never writes; grant rows are inserted by the payment webhook and the
// backoffice.
type CatalogGate struct {
	catalog CatalogStore
	log     *zap.Logger
}

// NewCatalogGate creates a catalog access gate over the given store.
func NewCatalogGate(catalog CatalogStore, log *zap.Logger) *CatalogGate {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogGate{catalog: catalog, log: log}
}

// Check evaluates access of userID to the item with the given public id.
// userID 0 means no authenticated principal and yields an immediate denial
// with RequiresAuth set. A missing item fails with ErrItemNotFound.
//
// Decision order, first match wins: the item is free; the principal created
// the item; a grant row exists for the pair. Anything else is a denial with
// RequiresPayment set.
func (g *CatalogGate) Check(itemUUID string, userID uint) (Decision, *models.CatalogItem, error) {
	if userID == 0 {
		return Decision{RequiresAuth: true}, nil, nil
	}

	item, err := g.catalog.GetItemByUUID(itemUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{}, nil, ErrItemNotFound
		}
		return Decision{}, nil, fmt.Errorf("catalog item lookup: %w", err)
	}

	if item.IsFree {
		return Decision{Granted: true, AccessType: AccessTypeFree}, item, nil
	}

	if item.CreatorID == userID {
		return Decision{Granted: true, AccessType: AccessTypeCreator}, item, nil
	}

	grant, err := g.catalog.GetGrant(userID, item.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{RequiresPayment: true}, item, nil
		}
		return Decision{}, nil, fmt.Errorf("grant lookup: %w", err)
	}

	if !models.ValidAccessStatus(grant.AccessStatus) {
		g.log.Warn("grant row with unknown status",
			zap.Uint("user_id", userID),
			zap.Uint("catalog_item_id", item.ID),
			zap.String("status", grant.AccessStatus))
		return Decision{RequiresPayment: true}, item, nil
	}

	return Decision{Granted: true, AccessType: grant.AccessStatus}, item, nil
}
