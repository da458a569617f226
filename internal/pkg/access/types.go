package access

import (
	"errors"

	"github.com/formaflow/formaflow/app/models"
)

// Failure kinds of the access gates. Each is terminal for the request that
// triggered it: handlers translate them into a redirect, a 404 or a 401 at
// the boundary and never propagate them further.
var (
	ErrNoSession           = errors.New("no authenticated principal")
	ErrTenantNotFound      = errors.New("organization not found")
	ErrNoAccess            = errors.New("no membership or grant for principal")
	ErrItemNotFound        = errors.New("catalog item not found")
	ErrAmbiguousMembership = errors.New("principal belongs to several organizations")
)

// Resolution is the authoritative (tenant, role) pair for a principal.
type Resolution struct {
	OrgID   uint   `json:"organization_id"`
	OrgSlug string `json:"organization_slug"`
	OrgName string `json:"organization_name"`
	Role    string `json:"role"`
}

// Decision is the tri-state result of the catalog access gate. "No access"
// is a value here, never an error.
type Decision struct {
	Granted         bool   `json:"granted"`
	AccessType      string `json:"access_type,omitempty"`
	RequiresPayment bool   `json:"requires_payment"`
	RequiresAuth    bool   `json:"requires_auth"`
}

// Access types reported by the catalog gate. Grant-backed decisions report
// the grant's own status instead.
const (
	AccessTypeFree    = "free"
	AccessTypeCreator = "creator"
)

// roleRoutes maps a membership role to the URL prefix its holder belongs
// under. The table is fixed.
var roleRoutes = map[string]string{
	models.ROLE_ADMIN:     "/admin",
	models.ROLE_FORMATEUR: "/formateur",
	models.ROLE_TUTEUR:    "/tuteur",
	models.ROLE_APPRENANT: "/apprenant",
}

// RoleRoute returns the expected URL prefix for a role.
func RoleRoute(role string) (string, bool) {
	prefix, ok := roleRoutes[role]
	return prefix, ok
}

// Routes the gate never touches: authentication and recovery flows plus the
// unauthorized landing page.
var excludedPrefixes = []string{
	"/login",
	"/auth",
	"/unauthorized",
	"/create-password",
	"/forgot-password",
	"/reset-password",
}

// Role-gated route prefixes.
var protectedPrefixes = []string{
	"/admin",
	"/formateur",
	"/tuteur",
	"/apprenant",
}
