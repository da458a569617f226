package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/resourcestore"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// HandleCatalogList lists items available on the public catalog.
func HandleCatalogList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	items, err := repos.Catalog.ListItems(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load catalog")
	}

	return c.JSON(fiber.Map{"items": items})
}

// HandleCatalogShow returns one catalog item together with the access
// decision for the caller. Anonymous callers always see requires_auth on
// paid items; the item metadata itself is public.
func HandleCatalogShow(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	gate := access.NewCatalogGate(repos.Catalog, logging.GetLogger())

	itemUUID := c.Params("uuid")
	userID := usercontext.GetUserID(c)

	decision, item, err := gate.Check(itemUUID, userID)
	if err != nil {
		if errors.Is(err, access.ErrItemNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Catalog item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check access")
	}

	if item == nil {
		// Anonymous caller on a route that needs a principal: expose only
		// the decision, the client redirects to login.
		item, err = repos.Catalog.GetItemByUUID(itemUUID)
		if err != nil {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Catalog item not found")
		}
	}

	return c.JSON(fiber.Map{
		"item": item,
		"access": fiber.Map{
			"granted":          decision.Granted,
			"access_type":      decision.AccessType,
			"requires_payment": decision.RequiresPayment,
			"requires_auth":    decision.RequiresAuth,
		},
	})
}

// HandleCatalogConsume gates actual content delivery: for resource-backed
// items it returns a presigned download, otherwise the content reference.
func HandleCatalogConsume(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	gate := access.NewCatalogGate(repos.Catalog, logging.GetLogger())

	itemUUID := c.Params("uuid")
	userID := usercontext.GetUserID(c)

	decision, item, err := gate.Check(itemUUID, userID)
	if err != nil {
		if errors.Is(err, access.ErrItemNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Catalog item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check access")
	}
	if decision.RequiresAuth {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Login required")
	}
	if !decision.Granted {
		return jsonError(c, fiber.StatusPaymentRequired, "payment_required", "Purchase required for this item")
	}

	response := fiber.Map{
		"item":        item,
		"access_type": decision.AccessType,
	}

	if item.Kind == models.CATALOG_RESOURCE {
		resource, rerr := repos.Resource.GetByID(item.RefID)
		if rerr != nil {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Resource no longer exists")
		}
		store := resourcestore.GetClient()
		if store == nil {
			return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "Object storage is not configured")
		}
		url, perr := store.PresignDownload(c.Context(), resource.StorageKey, 15*time.Minute)
		if perr != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to sign download")
		}
		response["download_url"] = url
	}

	return c.JSON(response)
}

// HandleCatalogLibrary lists everything the caller holds a grant for.
func HandleCatalogLibrary(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	userID := usercontext.GetUserID(c)

	grants, err := repos.Catalog.ListGrantsByUser(userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load library")
	}

	entries := make([]fiber.Map, 0, len(grants))
	for _, g := range grants {
		entry := fiber.Map{
			"access_status": g.AccessStatus,
			"granted_at":    g.CreatedAt,
		}
		if item, ierr := repos.Catalog.GetItemByID(g.CatalogItemID); ierr == nil {
			entry["item"] = item
		}
		entries = append(entries, entry)
	}

	return c.JSON(fiber.Map{"library": entries})
}
