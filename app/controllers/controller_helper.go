package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/models"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// jsonError writes the shared error envelope used by every JSON handler.
func jsonError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// parseIDParam reads a numeric path parameter; 0 means missing/invalid.
func parseIDParam(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// canManageContent reports whether the caller may create or edit content
// inside their organization.
func canManageContent(c *fiber.Ctx) bool {
	userCtx := usercontext.GetUserContext(c)
	return userCtx.IsLoggedIn && models.CanManageContent(userCtx.Role)
}

// sameOrganization guards against cross-tenant access through guessed ids.
func sameOrganization(c *fiber.Ctx, orgID uint) bool {
	return usercontext.GetOrgID(c) == orgID
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
