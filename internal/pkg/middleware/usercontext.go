package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/access"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/session"
	"github.com/formaflow/formaflow/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete caller context for every
// request: session principal plus the authoritative membership, resolved
// fresh through the access resolver on each request.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth uses its own fiber session store on the OAuth routes; skip our
	// app session there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		setAnonymous(c)
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		setAnonymous(c)
		return c.Next()
	}

	uid := userID.(uint)
	name := session.GetSessionValue(c, usercontext.KeyUserName)
	isSuperAdmin := sess.Get(usercontext.KeyIsSuperAdmin)

	// The session only remembers which organization the user selected; the
	// membership itself is re-resolved on every request so revocations and
	// role changes bite immediately.
	var selectedOrg uint
	if v, err := strconv.ParseUint(session.GetSessionValue(c, usercontext.KeyOrgID), 10, 64); err == nil {
		selectedOrg = uint(v)
	}

	var role, orgSlug string
	var orgID uint
	repos := repository.GetGlobalRepositories()
	resolver := access.NewResolver(repos.Organization, repos.Membership, access.StrategyMostRecent, logging.GetLogger())
	if res, err := resolver.ResolveOrg(selectedOrg, uid); err == nil {
		role = res.Role
		orgID = res.OrgID
		orgSlug = res.OrgSlug
		if orgID != selectedOrg {
			_ = session.SetSessionValue(c, usercontext.KeyOrgID, strconv.FormatUint(uint64(orgID), 10))
		}
	}

	userCtx := usercontext.UserContext{
		UserID:       uid,
		Name:         name,
		OrgID:        orgID,
		OrgSlug:      orgSlug,
		Role:         role,
		IsLoggedIn:   true,
		IsSuperAdmin: isSuperAdmin != nil && isSuperAdmin.(bool),
	}
	c.Locals("USER_CONTEXT", userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, uid)
	c.Locals(usercontext.KeyUserName, name)

	return c.Next()
}

func setAnonymous(c *fiber.Ctx) {
	c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
	c.Locals(usercontext.KeyFromProtected, false)
}
