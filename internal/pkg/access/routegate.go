package access

import "strings"

// RouteState is what the route gate knows about the caller: whether a
// session exists and, if so, the role of the authoritative membership
// (empty when the principal has none).
type RouteState struct {
	LoggedIn bool
	Role     string
}

// RouteDecision is the terminal outcome of the route gate for one request.
type RouteDecision struct {
	Allow      bool
	RedirectTo string
}

// EvaluateRoute decides whether a request may proceed. It is a pure function
// of the fixed route tables and the caller state; it holds no state across
// requests and every branch is safe to retry.
//
// Decision order: excluded route → allow; unprotected route → allow; no
// session → redirect to login; no membership → redirect to the unauthorized
// page; role/prefix mismatch → redirect to the role's own prefix; otherwise
// allow.
func EvaluateRoute(path string, st RouteState) RouteDecision {
	for _, prefix := range excludedPrefixes {
		if matchesPrefix(path, prefix) {
			return RouteDecision{Allow: true}
		}
	}

	protected := false
	for _, prefix := range protectedPrefixes {
		if matchesPrefix(path, prefix) {
			protected = true
			break
		}
	}
	if !protected {
		return RouteDecision{Allow: true}
	}

	if !st.LoggedIn {
		return RouteDecision{RedirectTo: "/login"}
	}

	expected, ok := RoleRoute(st.Role)
	if !ok {
		return RouteDecision{RedirectTo: "/unauthorized"}
	}

	if firstSegment(path) != expected {
		return RouteDecision{RedirectTo: expected}
	}
	return RouteDecision{Allow: true}
}

// matchesPrefix reports whether path sits under prefix at a segment
// boundary: "/admin" matches "/admin" and "/admin/x" but not "/administrate".
func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// firstSegment returns "/<first path segment>" of a request path.
func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
