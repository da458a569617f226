package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/session"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// HandleTenantEnter resolves the slug in /org/:slug against the caller's
// memberships and switches the session into that organization. This is how
// a user active in several organizations moves between them.
func HandleTenantEnter(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	repos := repository.GetGlobalRepositories()
	resolver := access.NewResolver(repos.Organization, repos.Membership, access.StrategyMostRecent, logging.GetLogger())

	res, err := resolver.ResolveSlug(c.Params("slug"), userCtx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrTenantNotFound):
			return jsonError(c, fiber.StatusNotFound, "not_found", "Organization not found")
		case errors.Is(err, access.ErrNoAccess):
			fm := fiber.Map{"type": "error", "message": "Tu n'es pas membre de cette organisation"}
			return flash.WithError(c, fm).Redirect("/unauthorized")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve organization")
		}
	}

	// Only the selection is stored; the role itself is re-resolved from the
	// membership row on every request.
	_ = session.SetSessionValue(c, usercontext.KeyOrgID, strconv.FormatUint(uint64(res.OrgID), 10))

	target, ok := access.RoleRoute(res.Role)
	if !ok {
		return c.Redirect("/unauthorized", fiber.StatusSeeOther)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// HandleTenantList returns the organizations the caller belongs to, for the
// organization switcher.
func HandleTenantList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	userID := usercontext.GetUserID(c)

	memberships, err := repos.Membership.ListByUser(userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load memberships")
	}

	orgs := make([]fiber.Map, 0, len(memberships))
	for _, m := range memberships {
		org, oerr := repos.Organization.GetByID(m.OrganizationID)
		if oerr != nil {
			continue
		}
		orgs = append(orgs, fiber.Map{
			"slug": org.Slug,
			"name": org.Name,
			"role": m.Role,
		})
	}

	return c.JSON(fiber.Map{"organizations": orgs})
}
