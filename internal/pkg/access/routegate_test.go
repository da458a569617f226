package access

import (
	"testing"

	"github.com/formaflow/formaflow/app/models"
)

func TestEvaluateRoute(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		state    RouteState
		allow    bool
		redirect string
	}{
		{name: "login always allowed", path: "/login", state: RouteState{}, allow: true},
		{name: "auth callback always allowed", path: "/auth/google/callback", state: RouteState{}, allow: true},
		{name: "password reset always allowed", path: "/reset-password", state: RouteState{}, allow: true},
		{name: "unprotected route allowed without session", path: "/catalog/items", state: RouteState{}, allow: true},
		{name: "prefix match is segment based", path: "/administrate", state: RouteState{}, allow: true},
		{name: "no session redirects to login", path: "/admin/dashboard", state: RouteState{}, redirect: "/login"},
		{name: "no membership redirects to unauthorized", path: "/apprenant", state: RouteState{LoggedIn: true}, redirect: "/unauthorized"},
		{name: "learner on admin route is sent home", path: "/admin/dashboard", state: RouteState{LoggedIn: true, Role: models.ROLE_APPRENANT}, redirect: "/apprenant"},
		{name: "admin on learner route is sent home", path: "/apprenant/cours", state: RouteState{LoggedIn: true, Role: models.ROLE_ADMIN}, redirect: "/admin"},
		{name: "role matching its prefix is allowed", path: "/formateur/formations", state: RouteState{LoggedIn: true, Role: models.ROLE_FORMATEUR}, allow: true},
		{name: "tutor root path allowed", path: "/tuteur", state: RouteState{LoggedIn: true, Role: models.ROLE_TUTEUR}, allow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateRoute(tt.path, tt.state)
			if d.Allow != tt.allow {
				t.Fatalf("EvaluateRoute(%q, %+v).Allow = %v, want %v", tt.path, tt.state, d.Allow, tt.allow)
			}
			if d.RedirectTo != tt.redirect {
				t.Fatalf("EvaluateRoute(%q, %+v).RedirectTo = %q, want %q", tt.path, tt.state, d.RedirectTo, tt.redirect)
			}
		})
	}
}

// Every (role, protected prefix) pair must either be the role's own prefix
// (allow) or redirect to exactly that prefix. Never allow on a mismatch.
func TestEvaluateRouteRolePrefixMatrix(t *testing.T) {
	roles := []string{models.ROLE_ADMIN, models.ROLE_FORMATEUR, models.ROLE_TUTEUR, models.ROLE_APPRENANT}

	for _, role := range roles {
		expected, ok := RoleRoute(role)
		if !ok {
			t.Fatalf("no route mapping for role %q", role)
		}
		for _, prefix := range protectedPrefixes {
			d := EvaluateRoute(prefix+"/page", RouteState{LoggedIn: true, Role: role})
			if prefix == expected {
				if !d.Allow {
					t.Fatalf("role %q on own prefix %q not allowed", role, prefix)
				}
				continue
			}
			if d.Allow {
				t.Fatalf("role %q allowed on foreign prefix %q", role, prefix)
			}
			if d.RedirectTo != expected {
				t.Fatalf("role %q on %q redirected to %q, want %q", role, prefix, d.RedirectTo, expected)
			}
		}
	}
}

func TestEvaluateRouteIsStateless(t *testing.T) {
	st := RouteState{LoggedIn: true, Role: models.ROLE_APPRENANT}
	first := EvaluateRoute("/admin/dashboard", st)
	second := EvaluateRoute("/admin/dashboard", st)
	if first != second {
		t.Fatalf("gate is not idempotent: %+v vs %+v", first, second)
	}
}
