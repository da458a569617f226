package payments

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

type fakeStore struct {
	events []models.PaymentWebhookEvent
	items  []models.CatalogItem
	grants []models.CatalogAccess
	marked map[uint]string
	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items: []models.CatalogItem{
			{ID: 42, UUID: "item-uuid", CreatorID: 1, PriceCents: 4900},
		},
		marked: make(map[uint]string),
		nextID: 1,
	}
}

func (f *fakeStore) CreateEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	for i := range f.events {
		if f.events[i].Provider == event.Provider && f.events[i].ProviderEventID == event.ProviderEventID {
			return false, &f.events[i], nil
		}
	}
	event.ID = f.nextID
	f.nextID++
	f.events = append(f.events, *event)
	return true, event, nil
}

func (f *fakeStore) MarkEventProcessed(id uint, processingError string) error {
	f.marked[id] = processingError
	return nil
}

func (f *fakeStore) GetItemByUUID(uuid string) (*models.CatalogItem, error) {
	for i := range f.items {
		if f.items[i].UUID == uuid {
			return &f.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) CreateGrantIfNotExists(grant *models.CatalogAccess) (bool, error) {
	for _, g := range f.grants {
		if g.UserID == grant.UserID && g.CatalogItemID == grant.CatalogItemID {
			return false, nil
		}
	}
	f.grants = append(f.grants, *grant)
	return true, nil
}

func (f *fakeStore) DeleteGrant(userID, itemID uint) error {
	for i, g := range f.grants {
		if g.UserID == userID && g.CatalogItemID == itemID {
			f.grants = append(f.grants[:i], f.grants[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

const testSecret = "whsec_test"

func checkoutPayload(eventID string) []byte {
	return []byte(fmt.Sprintf(`{"id":%q,"type":"checkout.completed","data":{"user_id":7,"catalog_item_uuid":"item-uuid"}}`, eventID))
}

func TestHandleEventCheckoutInsertsGrant(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := checkoutPayload("evt_1")
	result, err := svc.HandleEvent(payload, sign(payload, testSecret))
	assert.NoError(t, err)
	assert.True(t, result.Granted)
	assert.False(t, result.Duplicate)

	assert.Len(t, store.grants, 1)
	assert.Equal(t, models.ACCESS_PURCHASED, store.grants[0].AccessStatus)
	assert.Equal(t, uint(7), store.grants[0].UserID)
	assert.Equal(t, uint(42), store.grants[0].CatalogItemID)
}

func TestHandleEventReplayIsNoOp(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := checkoutPayload("evt_1")
	_, err := svc.HandleEvent(payload, sign(payload, testSecret))
	assert.NoError(t, err)

	result, err := svc.HandleEvent(payload, sign(payload, testSecret))
	assert.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Len(t, store.grants, 1)
}

func TestHandleEventBadSignature(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := checkoutPayload("evt_1")
	_, err := svc.HandleEvent(payload, sign(payload, "wrong"))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	// A rejected delivery never touches the ledger.
	assert.Empty(t, store.events)
	assert.Empty(t, store.grants)
}

func TestHandleEventForgedEventIDDoesNotShadowLegitimateDelivery(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := checkoutPayload("evt_1")
	_, err := svc.HandleEvent(payload, sign(payload, "wrong"))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	// The real delivery with the same provider event id must still go through.
	result, err := svc.HandleEvent(payload, sign(payload, testSecret))
	assert.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.True(t, result.Granted)
	assert.Len(t, store.grants, 1)
}

func TestHandleEventRefundRevokesGrant(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := checkoutPayload("evt_1")
	_, err := svc.HandleEvent(payload, sign(payload, testSecret))
	assert.NoError(t, err)

	refund := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"user_id":7,"catalog_item_uuid":"item-uuid"}}`)
	result, err := svc.HandleEvent(refund, sign(refund, testSecret))
	assert.NoError(t, err)
	assert.True(t, result.Revoked)
	assert.Empty(t, store.grants)
}

func TestHandleEventRefundWithoutGrant(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	refund := []byte(`{"id":"evt_1","type":"charge.refunded","data":{"user_id":7,"catalog_item_uuid":"item-uuid"}}`)
	result, err := svc.HandleEvent(refund, sign(refund, testSecret))
	assert.NoError(t, err)
	assert.False(t, result.Revoked)
}

func TestHandleEventUnknownTypeIgnored(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := []byte(`{"id":"evt_1","type":"invoice.created","data":{}}`)
	result, err := svc.HandleEvent(payload, sign(payload, testSecret))
	assert.NoError(t, err)
	assert.True(t, result.Ignored)
}

func TestHandleEventMalformedPayload(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testSecret, nil)

	payload := []byte(`not json`)
	_, err := svc.HandleEvent(payload, sign(payload, testSecret))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}
