package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/internal/pkg/middleware"
	"github.com/formaflow/formaflow/internal/pkg/oauth"
	"github.com/formaflow/formaflow/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// UserContext first, then the role/route gate: the gate needs the
	// resolved membership on every request.
	app.Use(middleware.UserContextMiddleware)
	app.Use(middleware.RouteRoleGate)

	h.registerPublicRoutes(app)
	h.registerRoleRoutes(app)
	h.registerBackofficeRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
