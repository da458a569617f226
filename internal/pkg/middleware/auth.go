package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// RouteRoleGate applies the role/route decision to every request: excluded
// and unprotected routes pass, everything under a role prefix must match the
// caller's role or gets redirected.
func RouteRoleGate(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	d := access.EvaluateRoute(c.Path(), access.RouteState{LoggedIn: uc.IsLoggedIn, Role: uc.Role})
	if d.Allow {
		return c.Next()
	}
	return c.Redirect(d.RedirectTo, fiber.StatusSeeOther)
}

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireRole ensures the caller's authoritative membership carries one of
// the given roles; redirects to the unauthorized page otherwise.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		if !uc.IsLoggedIn {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		for _, role := range roles {
			if uc.Role == role {
				return c.Next()
			}
		}
		return c.Redirect("/unauthorized", fiber.StatusSeeOther)
	}
}

// RequireSuperAdmin ensures a logged-in platform super-admin.
func RequireSuperAdmin(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if !uc.IsSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "super-admin required",
		})
	}
	return c.Next()
}

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}
