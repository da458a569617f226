package controllers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/branding"
	"github.com/formaflow/formaflow/internal/pkg/resourcestore"
)

// Super-admin handlers. All routes in this file are mounted behind
// RequireSuperAdmin; tenant scoping does not apply here.

func HandleBackofficeOrgList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	orgs, err := repos.Organization.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load organizations")
	}

	total, _ := repos.Organization.Count()

	return c.JSON(fiber.Map{"organizations": orgs, "total": total})
}

func HandleBackofficeOrgCreate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	var body struct {
		Slug         string `json:"slug"`
		Name         string `json:"name"`
		PrimaryColor string `json:"primary_color"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	org := &models.Organization{
		Slug:         models.NormalizeSlug(body.Slug),
		Name:         body.Name,
		PrimaryColor: body.PrimaryColor,
	}
	if err := org.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	if exists, _ := repos.Organization.SlugExists(org.Slug); exists {
		return jsonError(c, fiber.StatusConflict, "conflict", fmt.Sprintf("Slug %q is already taken", org.Slug))
	}

	if err := repos.Organization.Create(org); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create organization")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"organization": org})
}

func HandleBackofficeOrgUpdate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid organization id")
	}

	org, err := repos.Organization.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Organization not found")
	}

	var body struct {
		Name         *string `json:"name"`
		PrimaryColor *string `json:"primary_color"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	// The slug is immutable; org URLs must stay stable.
	if body.Name != nil {
		org.Name = *body.Name
	}
	if body.PrimaryColor != nil {
		org.PrimaryColor = *body.PrimaryColor
	}

	if err := org.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if err := repos.Organization.Update(org); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update organization")
	}

	return c.JSON(fiber.Map{"organization": org})
}

func HandleBackofficeOrgDelete(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid organization id")
	}

	if _, err := repos.Organization.GetByID(id); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Organization not found")
	}

	if err := repos.Organization.Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete organization")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBackofficeOrgLogo uploads and normalizes an organization logo.
func HandleBackofficeOrgLogo(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid organization id")
	}

	org, err := repos.Organization.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Organization not found")
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Missing logo file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := branding.LogoExtension(contentType); !ok {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", fmt.Sprintf("Unsupported logo type %q", contentType))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Unreadable file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to read file")
	}

	processed, err := branding.ProcessLogo(data)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid image data")
	}
	store := resourcestore.GetClient()
	if store == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "Object storage is not configured")
	}

	// ProcessLogo re-encodes as PNG regardless of the input format.
	objectKey := resourcestore.BrandingObjectKey(org.ID, ".png")
	if err := store.Upload(c.Context(), objectKey, processed, "image/png"); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to store logo")
	}

	org.LogoKey = objectKey
	if err := repos.Organization.Update(org); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save organization")
	}

	return c.JSON(fiber.Map{"logo_key": objectKey})
}

func HandleBackofficeCatalogItemCreate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	var body struct {
		Kind       string `json:"kind"`
		RefID      uint   `json:"ref_id"`
		CreatorID  uint   `json:"creator_id"`
		Title      string `json:"title"`
		IsFree     bool   `json:"is_free"`
		PriceCents int64  `json:"price_cents"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if !models.ValidCatalogKind(body.Kind) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", fmt.Sprintf("Unknown catalog kind %q", body.Kind))
	}
	if body.RefID == 0 || body.CreatorID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Missing content or creator reference")
	}
	if !body.IsFree && body.PriceCents <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Paid items need a positive price")
	}

	item := &models.CatalogItem{
		Kind:       body.Kind,
		RefID:      body.RefID,
		CreatorID:  body.CreatorID,
		Title:      body.Title,
		IsFree:     body.IsFree,
		PriceCents: body.PriceCents,
	}
	if err := repos.Catalog.CreateItem(item); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create catalog item")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": item})
}

func HandleBackofficeCatalogItemUpdate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid catalog item id")
	}

	item, err := repos.Catalog.GetItemByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Catalog item not found")
	}

	var body struct {
		Title      *string `json:"title"`
		IsFree     *bool   `json:"is_free"`
		PriceCents *int64  `json:"price_cents"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if body.Title != nil {
		item.Title = *body.Title
	}
	if body.IsFree != nil {
		item.IsFree = *body.IsFree
	}
	if body.PriceCents != nil {
		item.PriceCents = *body.PriceCents
	}
	if !item.IsFree && item.PriceCents <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Paid items need a positive price")
	}

	if err := repos.Catalog.UpdateItem(item); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update catalog item")
	}

	return c.JSON(fiber.Map{"item": item})
}

func HandleBackofficeCatalogItemDelete(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid catalog item id")
	}

	if _, err := repos.Catalog.GetItemByID(id); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Catalog item not found")
	}

	if err := repos.Catalog.DeleteItem(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete catalog item")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBackofficeGrantAccess inserts a manual grant. Granting twice is a
// no-op, the existing row wins.
func HandleBackofficeGrantAccess(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	var body struct {
		UserID        uint `json:"user_id"`
		CatalogItemID uint `json:"catalog_item_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if body.UserID == 0 || body.CatalogItemID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Missing user or item reference")
	}

	if _, err := repos.User.GetByID(body.UserID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
	}
	if _, err := repos.Catalog.GetItemByID(body.CatalogItemID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Catalog item not found")
	}

	grant := &models.CatalogAccess{
		UserID:        body.UserID,
		CatalogItemID: body.CatalogItemID,
		AccessStatus:  models.ACCESS_GRANTED,
	}
	created, err := repos.Catalog.CreateGrantIfNotExists(grant)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to grant access")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"granted": true, "created": created})
}

// HandleBackofficeRevokeAccess deletes the grant row.
func HandleBackofficeRevokeAccess(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	var body struct {
		UserID        uint `json:"user_id"`
		CatalogItemID uint `json:"catalog_item_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if err := repos.Catalog.DeleteGrant(body.UserID, body.CatalogItemID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "No grant to revoke")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBackofficeWebhookEvents shows the recent payment webhook ledger.
func HandleBackofficeWebhookEvents(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	limit := c.QueryInt("limit", 100)
	events, err := repos.WebhookEvent.ListRecent(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load webhook events")
	}

	out := make([]fiber.Map, 0, len(events))
	for _, e := range events {
		out = append(out, fiber.Map{
			"id":                e.ID,
			"provider":          e.Provider,
			"provider_event_id": e.ProviderEventID,
			"event_type":        e.EventType,
			"signature_valid":   e.SignatureValid,
			"processed_at":      formatTimePtr(e.ProcessedAt),
			"processing_error":  e.ProcessingError,
			"created_at":        e.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"events": out})
}
