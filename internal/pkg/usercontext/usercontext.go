package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext represents the complete caller context for a request: the
// authenticated principal plus the authoritative membership resolved for it.
type UserContext struct {
	UserID       uint   `json:"user_id"`
	Name         string `json:"name"`
	OrgID        uint   `json:"organization_id"`
	OrgSlug      string `json:"organization_slug"`
	Role         string `json:"role"`
	IsLoggedIn   bool   `json:"is_logged_in"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// GetUserContext retrieves the user context from fiber context.
// Returns a default anonymous context if none is set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals("USER_CONTEXT"); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsSuperAdmin checks if the current user is a platform super-admin
func IsSuperAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsSuperAdmin
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetRole returns the role of the caller's authoritative membership, or an
// empty string when the caller has none.
func GetRole(c *fiber.Ctx) string {
	return GetUserContext(c).Role
}

// GetOrgID returns the organization of the caller's authoritative
// membership, or 0 when the caller has none.
func GetOrgID(c *fiber.Ctx) uint {
	return GetUserContext(c).OrgID
}
