package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/formaflow/formaflow/app/controllers"
	"github.com/formaflow/formaflow/internal/pkg/env"
	"github.com/formaflow/formaflow/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Social OAuth (own session store, outside the app session middleware)
	app.Get("/auth/:provider", controllers.HandleOAuthLogin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhooks (no CSRF, signature-verified in the service)
	app.Post("/webhooks/payments", controllers.HandlePaymentWebhook)

	// Public catalog
	app.Get("/catalog", controllers.HandleCatalogList)
	app.Get("/catalog/:uuid", controllers.HandleCatalogShow)
	app.Get("/catalog/:uuid/consume", controllers.HandleCatalogConsume)

	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", controllers.HandleHome)
	group.Get("/unauthorized", controllers.HandleUnauthorized)

	// Auth
	group.Post("/login", controllers.HandleAuthLogin)
	group.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
	group.Post("/register", controllers.HandleAuthRegister)
	group.Get("/activate/:token", controllers.HandleAuthActivate)
	group.Post("/forgot-password", controllers.HandleForgotPassword)
	group.Post("/reset-password", controllers.HandleResetPassword)
	// Invited accounts set their first password through the same token flow.
	group.Post("/create-password", controllers.HandleResetPassword)

	// Tenant switching
	group.Get("/org/:slug", middleware.RequireAuth, controllers.HandleTenantEnter)
	group.Get("/me/organizations", middleware.RequireAuth, controllers.HandleTenantList)

	// Learner library
	group.Get("/library", middleware.RequireAuth, controllers.HandleCatalogLibrary)
}
