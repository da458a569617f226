package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/controllers"
	"github.com/formaflow/formaflow/internal/pkg/middleware"
)

// registerBackofficeRoutes mounts the platform super-admin area. This layer
// sits above tenants: organization lifecycle, public catalog curation,
// manual access grants and the payment webhook ledger.
func (h HttpRouter) registerBackofficeRoutes(app *fiber.App) {
	bo := app.Group("/backoffice", middleware.RequireSuperAdmin)

	bo.Get("/organizations", controllers.HandleBackofficeOrgList)
	bo.Post("/organizations", controllers.HandleBackofficeOrgCreate)
	bo.Put("/organizations/:id", controllers.HandleBackofficeOrgUpdate)
	bo.Delete("/organizations/:id", controllers.HandleBackofficeOrgDelete)
	bo.Post("/organizations/:id/logo", controllers.HandleBackofficeOrgLogo)

	bo.Post("/catalog-items", controllers.HandleBackofficeCatalogItemCreate)
	bo.Put("/catalog-items/:id", controllers.HandleBackofficeCatalogItemUpdate)
	bo.Delete("/catalog-items/:id", controllers.HandleBackofficeCatalogItemDelete)

	bo.Post("/access-grants", controllers.HandleBackofficeGrantAccess)
	bo.Delete("/access-grants", controllers.HandleBackofficeRevokeAccess)

	bo.Get("/webhook-events", controllers.HandleBackofficeWebhookEvents)
}
