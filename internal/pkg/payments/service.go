package payments

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
)

var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrMalformedPayload = errors.New("webhook payload is not a valid event")
)

// Store provides the DB operations used by the payments service.
type Store interface {
	CreateEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkEventProcessed(id uint, processingError string) error
	GetItemByUUID(uuid string) (*models.CatalogItem, error)
	CreateGrantIfNotExists(grant *models.CatalogAccess) (bool, error)
	DeleteGrant(userID, itemID uint) error
}

type repoStore struct {
	events  repository.WebhookEventRepository
	catalog repository.CatalogRepository
}

// NewStore builds a payments store over the application repositories.
func NewStore(repos *repository.Repositories) Store {
	return &repoStore{events: repos.WebhookEvent, catalog: repos.Catalog}
}

func (s *repoStore) CreateEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	return s.events.CreateIfNotExists(event)
}

func (s *repoStore) MarkEventProcessed(id uint, processingError string) error {
	return s.events.MarkProcessed(id, processingError)
}

func (s *repoStore) GetItemByUUID(uuid string) (*models.CatalogItem, error) {
	return s.catalog.GetItemByUUID(uuid)
}

func (s *repoStore) CreateGrantIfNotExists(grant *models.CatalogAccess) (bool, error) {
	return s.catalog.CreateGrantIfNotExists(grant)
}

func (s *repoStore) DeleteGrant(userID, itemID uint) error {
	return s.catalog.DeleteGrant(userID, itemID)
}

// Service ingests payment processor webhooks. A completed checkout inserts a
// purchased grant, a refund deletes it. Events are deduplicated by
// provider event id, so replays are no-ops.
type Service struct {
	store  Store
	secret string
	log    *zap.Logger
}

// NewService creates a payments service from an injected store.
func NewService(store Store, webhookSecret string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, secret: webhookSecret, log: log}
}

// HandleEvent verifies, records and processes one raw webhook delivery.
// Signature verification happens before the dedupe insert: a forged delivery
// must not be able to claim a provider event id and shadow the legitimate
// delivery that arrives later.
func (s *Service) HandleEvent(payload []byte, signatureHeader string) (*Result, error) {
	if !VerifyWebhookSignature(payload, signatureHeader, s.secret) {
		s.log.Warn("webhook signature rejected",
			zap.Int("payload_bytes", len(payload)))
		return nil, ErrInvalidSignature
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.ID == "" || envelope.Type == "" {
		return nil, ErrMalformedPayload
	}

	event := &models.PaymentWebhookEvent{
		Provider:        ProviderName,
		ProviderEventID: envelope.ID,
		EventType:       envelope.Type,
		PayloadJSON:     string(payload),
		SignatureValid:  true,
	}
	created, stored, err := s.store.CreateEventIfNotExists(event)
	if err != nil {
		return nil, fmt.Errorf("record webhook event: %w", err)
	}

	result := &Result{EventID: stored.ID, EventType: envelope.Type}

	if !created {
		s.log.Info("webhook replay ignored",
			zap.String("provider_event_id", envelope.ID),
			zap.String("event_type", envelope.Type))
		result.Duplicate = true
		return result, nil
	}

	switch envelope.Type {
	case EventCheckoutCompleted:
		err = s.applyCheckout(envelope.Data, result)
	case EventChargeRefunded:
		err = s.applyRefund(envelope.Data, result)
	default:
		result.Ignored = true
	}

	processingError := ""
	if err != nil {
		processingError = err.Error()
	}
	if markErr := s.store.MarkEventProcessed(stored.ID, processingError); markErr != nil {
		s.log.Error("failed to mark webhook event processed",
			zap.Uint("event_id", stored.ID), zap.Error(markErr))
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) applyCheckout(data webhookData, result *Result) error {
	if data.UserID == 0 || data.CatalogItemUUID == "" {
		return ErrMalformedPayload
	}

	item, err := s.store.GetItemByUUID(data.CatalogItemUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checkout for unknown catalog item %s", data.CatalogItemUUID)
		}
		return fmt.Errorf("catalog item lookup: %w", err)
	}

	grant := &models.CatalogAccess{
		UserID:        data.UserID,
		CatalogItemID: item.ID,
		AccessStatus:  models.ACCESS_PURCHASED,
	}
	inserted, err := s.store.CreateGrantIfNotExists(grant)
	if err != nil {
		return fmt.Errorf("insert grant: %w", err)
	}
	result.Granted = inserted
	s.log.Info("checkout grant applied",
		zap.Uint("user_id", data.UserID),
		zap.Uint("catalog_item_id", item.ID),
		zap.Bool("inserted", inserted))
	return nil
}

func (s *Service) applyRefund(data webhookData, result *Result) error {
	if data.UserID == 0 || data.CatalogItemUUID == "" {
		return ErrMalformedPayload
	}

	item, err := s.store.GetItemByUUID(data.CatalogItemUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to revoke if the item is gone.
			return nil
		}
		return fmt.Errorf("catalog item lookup: %w", err)
	}

	if err := s.store.DeleteGrant(data.UserID, item.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("delete grant: %w", err)
	}
	result.Revoked = true
	s.log.Info("refund revoked grant",
		zap.Uint("user_id", data.UserID),
		zap.Uint("catalog_item_id", item.ID))
	return nil
}
