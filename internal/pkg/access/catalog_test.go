package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

type fakeCatalogStore struct {
	items  []models.CatalogItem
	grants []models.CatalogAccess
}

func (f *fakeCatalogStore) GetItemByUUID(uuid string) (*models.CatalogItem, error) {
	for i := range f.items {
		if f.items[i].UUID == uuid {
			return &f.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogStore) GetGrant(userID, itemID uint) (*models.CatalogAccess, error) {
	for i := range f.grants {
		if f.grants[i].UserID == userID && f.grants[i].CatalogItemID == itemID {
			return &f.grants[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestGate() *CatalogGate {
	store := &fakeCatalogStore{
		items: []models.CatalogItem{
			{ID: 1, UUID: "free-item", Kind: models.CATALOG_FORMATION, RefID: 1, CreatorID: 5, IsFree: true},
			{ID: 2, UUID: "paid-item", Kind: models.CATALOG_PATHWAY, RefID: 2, CreatorID: 5, PriceCents: 4900},
			{ID: 3, UUID: "granted-item", Kind: models.CATALOG_RESOURCE, RefID: 3, CreatorID: 5, PriceCents: 1900},
		},
		grants: []models.CatalogAccess{
			{UserID: 7, CatalogItemID: 3, AccessStatus: models.ACCESS_GRANTED},
			// A grant row on a free item must not change the outcome.
			{UserID: 7, CatalogItemID: 1, AccessStatus: models.ACCESS_PURCHASED},
		},
	}
	return NewCatalogGate(store, nil)
}

func TestCatalogGateFreeShortCircuits(t *testing.T) {
	g := newTestGate()

	d, item, err := g.Check("free-item", 7)
	assert.NoError(t, err)
	assert.NotNil(t, item)
	assert.True(t, d.Granted)
	assert.Equal(t, AccessTypeFree, d.AccessType)
	assert.False(t, d.RequiresPayment)
}

func TestCatalogGateCreator(t *testing.T) {
	g := newTestGate()

	d, _, err := g.Check("paid-item", 5)
	assert.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, AccessTypeCreator, d.AccessType)
}

func TestCatalogGateGrantRow(t *testing.T) {
	g := newTestGate()

	d, _, err := g.Check("granted-item", 7)
	assert.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, models.ACCESS_GRANTED, d.AccessType)
}

func TestCatalogGateDeniedRequiresPayment(t *testing.T) {
	g := newTestGate()

	d, _, err := g.Check("paid-item", 7)
	assert.NoError(t, err)
	assert.False(t, d.Granted)
	assert.True(t, d.RequiresPayment)
	assert.False(t, d.RequiresAuth)
}

func TestCatalogGateAnonymous(t *testing.T) {
	g := newTestGate()

	d, item, err := g.Check("paid-item", 0)
	assert.NoError(t, err)
	assert.Nil(t, item)
	assert.False(t, d.Granted)
	assert.True(t, d.RequiresAuth)
}

func TestCatalogGateItemNotFound(t *testing.T) {
	g := newTestGate()

	_, _, err := g.Check("no-such-item", 7)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCatalogGateIsIdempotent(t *testing.T) {
	g := newTestGate()

	first, _, err1 := g.Check("granted-item", 7)
	second, _, err2 := g.Check("granted-item", 7)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}
