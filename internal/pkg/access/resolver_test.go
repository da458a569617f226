package access

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

type fakeOrgStore struct {
	orgs []models.Organization
}

func (f *fakeOrgStore) GetByID(id uint) (*models.Organization, error) {
	for i := range f.orgs {
		if f.orgs[i].ID == id {
			return &f.orgs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrgStore) GetBySlug(slug string) (*models.Organization, error) {
	for i := range f.orgs {
		if f.orgs[i].Slug == slug {
			return &f.orgs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeMembershipStore struct {
	// ordered most-recent-created first, as the repository contract requires
	memberships []models.Membership
}

func (f *fakeMembershipStore) GetByOrgAndUser(orgID, userID uint) (*models.Membership, error) {
	for i := range f.memberships {
		if f.memberships[i].OrganizationID == orgID && f.memberships[i].UserID == userID {
			return &f.memberships[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMembershipStore) ListByUser(userID uint) ([]models.Membership, error) {
	var out []models.Membership
	for _, m := range f.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newTestResolver(strategy MembershipStrategy) *Resolver {
	orgs := &fakeOrgStore{orgs: []models.Organization{
		{ID: 1, Slug: "acme", Name: "ACME Corp"},
		{ID: 2, Slug: "globex", Name: "Globex"},
	}}
	memberships := &fakeMembershipStore{memberships: []models.Membership{
		{ID: 10, OrganizationID: 2, UserID: 7, Role: models.ROLE_FORMATEUR}, // newest
		{ID: 9, OrganizationID: 1, UserID: 7, Role: models.ROLE_APPRENANT},
		{ID: 8, OrganizationID: 1, UserID: 3, Role: models.ROLE_ADMIN},
	}}
	return NewResolver(orgs, memberships, strategy, nil)
}

func TestResolveSlugNormalizesCase(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	res, err := r.ResolveSlug("ACME", 3)
	if err != nil {
		t.Fatalf("ResolveSlug(ACME) failed: %v", err)
	}
	if res.OrgID != 1 || res.Role != models.ROLE_ADMIN {
		t.Fatalf("ResolveSlug(ACME) = %+v, want org 1 role admin", res)
	}
	if res.OrgName != "ACME Corp" {
		t.Fatalf("expected tenant name to be resolved, got %q", res.OrgName)
	}
}

func TestResolveSlugUnknownTenant(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	if _, err := r.ResolveSlug("unknown-org", 3); !errors.Is(err, ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestResolveSlugNoMembership(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	if _, err := r.ResolveSlug("globex", 3); !errors.Is(err, ErrNoAccess) {
		t.Fatalf("expected ErrNoAccess, got %v", err)
	}
}

func TestResolveSlugNoSession(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	if _, err := r.ResolveSlug("acme", 0); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestResolveMostRecentMembershipWins(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	res, err := r.Resolve(7)
	if err != nil {
		t.Fatalf("Resolve(7) failed: %v", err)
	}
	if res.OrgID != 2 || res.Role != models.ROLE_FORMATEUR {
		t.Fatalf("Resolve(7) = %+v, want the newest membership (org 2, formateur)", res)
	}
}

func TestResolveZeroMemberships(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	if _, err := r.Resolve(99); !errors.Is(err, ErrNoAccess) {
		t.Fatalf("expected ErrNoAccess for a user without memberships, got %v", err)
	}
}

func TestResolveExplicitStrategyRefusesToGuess(t *testing.T) {
	r := newTestResolver(StrategyExplicit)

	if _, err := r.Resolve(7); !errors.Is(err, ErrAmbiguousMembership) {
		t.Fatalf("expected ErrAmbiguousMembership, got %v", err)
	}

	// A single membership stays unambiguous.
	res, err := r.Resolve(3)
	if err != nil {
		t.Fatalf("Resolve(3) failed: %v", err)
	}
	if res.Role != models.ROLE_ADMIN {
		t.Fatalf("Resolve(3) role = %q, want admin", res.Role)
	}
}

func TestResolveOrgHonorsSelectedOrganization(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	// User 7's newest membership is org 2, but the selection points at org 1.
	res, err := r.ResolveOrg(1, 7)
	if err != nil {
		t.Fatalf("ResolveOrg(1, 7) failed: %v", err)
	}
	if res.OrgID != 1 || res.Role != models.ROLE_APPRENANT {
		t.Fatalf("ResolveOrg(1, 7) = %+v, want org 1 role apprenant", res)
	}
}

func TestResolveOrgZeroPreferenceFallsBack(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	res, err := r.ResolveOrg(0, 7)
	if err != nil {
		t.Fatalf("ResolveOrg(0, 7) failed: %v", err)
	}
	if res.OrgID != 2 || res.Role != models.ROLE_FORMATEUR {
		t.Fatalf("ResolveOrg(0, 7) = %+v, want the newest membership (org 2, formateur)", res)
	}
}

func TestResolveOrgNoSession(t *testing.T) {
	r := newTestResolver(StrategyMostRecent)

	if _, err := r.ResolveOrg(1, 0); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestResolveOrgRevocationTakesEffectOnNextResolve(t *testing.T) {
	orgs := &fakeOrgStore{orgs: []models.Organization{
		{ID: 1, Slug: "acme", Name: "ACME Corp"},
		{ID: 2, Slug: "globex", Name: "Globex"},
	}}
	memberships := &fakeMembershipStore{memberships: []models.Membership{
		{ID: 10, OrganizationID: 2, UserID: 7, Role: models.ROLE_FORMATEUR}, // newest
		{ID: 9, OrganizationID: 1, UserID: 7, Role: models.ROLE_ADMIN},
	}}
	r := NewResolver(orgs, memberships, StrategyMostRecent, nil)

	res, err := r.ResolveOrg(1, 7)
	if err != nil || res.Role != models.ROLE_ADMIN {
		t.Fatalf("before revocation: res=%+v err=%v, want org 1 admin", res, err)
	}

	// Admin removes the org 1 membership mid-session. The selection still
	// points at org 1, but the next resolve must fall back to what remains.
	memberships.memberships = memberships.memberships[:1]

	res, err = r.ResolveOrg(1, 7)
	if err != nil {
		t.Fatalf("after revocation: %v", err)
	}
	if res.OrgID != 2 || res.Role != models.ROLE_FORMATEUR {
		t.Fatalf("after revocation res = %+v, want fallback to org 2 formateur", res)
	}

	// The last membership goes too: the principal must lose access entirely,
	// regardless of what the session still remembers.
	memberships.memberships = nil

	if _, err = r.ResolveOrg(1, 7); !errors.Is(err, ErrNoAccess) {
		t.Fatalf("expected ErrNoAccess after losing all memberships, got %v", err)
	}
}

func TestResolveOrgDemotionTakesEffectOnNextResolve(t *testing.T) {
	orgs := &fakeOrgStore{orgs: []models.Organization{
		{ID: 1, Slug: "acme", Name: "ACME Corp"},
	}}
	memberships := &fakeMembershipStore{memberships: []models.Membership{
		{ID: 9, OrganizationID: 1, UserID: 7, Role: models.ROLE_ADMIN},
	}}
	r := NewResolver(orgs, memberships, StrategyMostRecent, nil)

	res, err := r.ResolveOrg(1, 7)
	if err != nil || res.Role != models.ROLE_ADMIN {
		t.Fatalf("before demotion: res=%+v err=%v, want admin", res, err)
	}

	memberships.memberships[0].Role = models.ROLE_APPRENANT

	res, err = r.ResolveOrg(1, 7)
	if err != nil {
		t.Fatalf("after demotion: %v", err)
	}
	if res.Role != models.ROLE_APPRENANT {
		t.Fatalf("after demotion role = %q, want apprenant", res.Role)
	}
}
