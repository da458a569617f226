package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUserName      = "username"
	KeyOrgID         = "org_id"
	KeyIsSuperAdmin  = "isSuperAdmin"
	KeyFromProtected = "from_protected"
)
