package access

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// OrganizationStore is the slice of the organization repository the resolver
// needs.
type OrganizationStore interface {
	GetByID(id uint) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
}

// MembershipStore is the slice of the membership repository the resolver
// needs. ListByUser must return rows most-recent-created first.
type MembershipStore interface {
	GetByOrgAndUser(orgID, userID uint) (*models.Membership, error)
	ListByUser(userID uint) ([]models.Membership, error)
}

// MembershipStrategy decides which membership is authoritative when a
// principal belongs to more than one organization.
type MembershipStrategy int

const (
	// StrategyMostRecent takes the most recently created membership and
	// silently ignores the rest.
	StrategyMostRecent MembershipStrategy = iota
	// StrategyExplicit refuses to guess: more than one membership yields
	// ErrAmbiguousMembership and the caller must supply a slug.
	StrategyExplicit
)

// Resolver produces the authoritative (tenant, role) pair for a principal.
// All lookups are pure reads.
type Resolver struct {
	orgs        OrganizationStore
	memberships MembershipStore
	strategy    MembershipStrategy
	log         *zap.Logger
}

// NewResolver creates a resolver over the given stores.
func NewResolver(orgs OrganizationStore, memberships MembershipStore, strategy MembershipStrategy, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{orgs: orgs, memberships: memberships, strategy: strategy, log: log}
}

// ResolveSlug resolves an explicit tenant slug for a principal. The slug is
// matched case-insensitively. An unknown slug fails with ErrTenantNotFound;
// a known tenant without a membership for the principal fails with
// ErrNoAccess.
func (r *Resolver) ResolveSlug(slug string, userID uint) (*Resolution, error) {
	if userID == 0 {
		return nil, ErrNoSession
	}

	org, err := r.orgs.GetBySlug(models.NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("organization lookup: %w", err)
	}

	m, err := r.memberships.GetByOrgAndUser(org.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("no membership for slug",
				zap.String("slug", org.Slug),
				zap.Uint("user_id", userID))
			return nil, ErrNoAccess
		}
		return nil, fmt.Errorf("membership lookup: %w", err)
	}

	return &Resolution{OrgID: org.ID, OrgSlug: org.Slug, OrgName: org.Name, Role: m.Role}, nil
}

// Resolve resolves the principal's own membership when no slug was supplied.
// Zero memberships fail with ErrNoAccess. With several, the configured
// strategy decides.
func (r *Resolver) Resolve(userID uint) (*Resolution, error) {
	if userID == 0 {
		return nil, ErrNoSession
	}

	memberships, err := r.memberships.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("membership lookup: %w", err)
	}
	if len(memberships) == 0 {
		return nil, ErrNoAccess
	}
	if len(memberships) > 1 && r.strategy == StrategyExplicit {
		return nil, ErrAmbiguousMembership
	}

	m := memberships[0]
	org, err := r.orgs.GetByID(m.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Membership pointing at a deleted tenant counts as no access.
			return nil, ErrNoAccess
		}
		return nil, fmt.Errorf("organization lookup: %w", err)
	}

	return &Resolution{OrgID: org.ID, OrgSlug: org.Slug, OrgName: org.Name, Role: m.Role}, nil
}

// ResolveOrg resolves the principal's membership in a preferred organization,
// falling back to Resolve when orgID is zero or the membership no longer
// exists. The membership row is read fresh on every call, so revocations and
// demotions take effect on the next request.
func (r *Resolver) ResolveOrg(orgID, userID uint) (*Resolution, error) {
	if userID == 0 {
		return nil, ErrNoSession
	}

	if orgID != 0 {
		m, err := r.memberships.GetByOrgAndUser(orgID, userID)
		if err == nil {
			org, oerr := r.orgs.GetByID(orgID)
			if oerr == nil {
				return &Resolution{OrgID: org.ID, OrgSlug: org.Slug, OrgName: org.Name, Role: m.Role}, nil
			}
			if !errors.Is(oerr, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("organization lookup: %w", oerr)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("membership lookup: %w", err)
		}
		r.log.Debug("preferred organization no longer resolvable",
			zap.Uint("org_id", orgID),
			zap.Uint("user_id", userID))
	}

	return r.Resolve(userID)
}
