package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/formaflow/formaflow/app/controllers"
	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/middleware"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// APIServer serves the JSON API consumed by mobile and SPA clients.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// RegisterHandlers mounts all v1 endpoints on the given router group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)
	r.Get("/me", middleware.RequireAPISessionAuth, s.GetMe)
	r.Get("/me/organizations", middleware.RequireAPISessionAuth, s.GetMyOrganizations)
	r.Get("/catalog/:uuid/access", s.GetCatalogAccess)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// GetMe returns the caller's account and resolved membership.
func (s *APIServer) GetMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"status":   user.Status,
		"org_id":   userCtx.OrgID,
		"org_slug": userCtx.OrgSlug,
		"role":     userCtx.Role,
	})
}

// GetMyOrganizations lists the caller's memberships for the org switcher.
func (s *APIServer) GetMyOrganizations(c *fiber.Ctx) error {
	return controllers.HandleTenantList(c)
}

// GetCatalogAccess exposes the catalog access decision for one item, without
// delivering any content. Anonymous calls are allowed and answer with
// requires_auth.
func (s *APIServer) GetCatalogAccess(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	gate := access.NewCatalogGate(repos.Catalog, logging.GetLogger())

	decision, _, err := gate.Check(c.Params("uuid"), usercontext.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Catalog item not found"})
	}

	return c.JSON(fiber.Map{
		"granted":          decision.Granted,
		"access_type":      decision.AccessType,
		"requires_payment": decision.RequiresPayment,
		"requires_auth":    decision.RequiresAuth,
	})
}
