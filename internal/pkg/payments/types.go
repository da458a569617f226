package payments

// Provider identifier recorded on webhook ledger rows.
const ProviderName = "payproc"

// Webhook event types this service acts on. Everything else is recorded and
// ignored.
const (
	EventCheckoutCompleted = "checkout.completed"
	EventChargeRefunded    = "charge.refunded"
)

// webhookEnvelope is the wire shape of an incoming payment processor event.
type webhookEnvelope struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data webhookData `json:"data"`
}

type webhookData struct {
	UserID          uint   `json:"user_id"`
	CatalogItemUUID string `json:"catalog_item_uuid"`
}

// Result reports what processing an event did.
type Result struct {
	EventID   uint   `json:"event_id"`
	EventType string `json:"event_type"`
	Duplicate bool   `json:"duplicate"`
	Granted   bool   `json:"granted"`
	Revoked   bool   `json:"revoked"`
	Ignored   bool   `json:"ignored"`
}
