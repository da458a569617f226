package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// OrganizationRepository defines the interface for tenant operations
type OrganizationRepository interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Organization, error)
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
}

// MembershipRepository defines the interface for membership operations.
// ListByUser returns memberships most-recent-created first; the resolver
// relies on that ordering.
type MembershipRepository interface {
	Create(m *models.Membership) error
	GetByID(id uint) (*models.Membership, error)
	GetByOrgAndUser(orgID, userID uint) (*models.Membership, error)
	ListByUser(userID uint) ([]models.Membership, error)
	ListByOrganization(orgID uint) ([]models.Membership, error)
	UpdateRole(id uint, role string) error
	Delete(id uint) error
	CountByOrganization(orgID uint) (int64, error)
}

// FormationRepository defines the interface for course operations
type FormationRepository interface {
	Create(f *models.Formation) error
	GetByID(id uint) (*models.Formation, error)
	ListByOrganization(orgID uint, offset, limit int) ([]models.Formation, error)
	Update(f *models.Formation) error
	Delete(id uint) error
	CountByOrganization(orgID uint) (int64, error)
}

// PathwayRepository defines the interface for curriculum operations
type PathwayRepository interface {
	Create(p *models.Pathway) error
	GetByID(id uint) (*models.Pathway, error)
	ListByOrganization(orgID uint, offset, limit int) ([]models.Pathway, error)
	Update(p *models.Pathway) error
	Delete(id uint) error
	GetSteps(pathwayID uint) ([]models.PathwayStep, error)
	AddStep(step *models.PathwayStep) error
	RemoveStep(pathwayID, stepID uint) error
	SaveSteps(steps []models.PathwayStep) error
}

// ResourceRepository defines the interface for file resource operations
type ResourceRepository interface {
	Create(r *models.Resource) error
	GetByID(id uint) (*models.Resource, error)
	ListByOrganization(orgID uint, offset, limit int) ([]models.Resource, error)
	Update(r *models.Resource) error
	Delete(id uint) error
}

// AssessmentRepository defines the interface for test operations
type AssessmentRepository interface {
	Create(a *models.Assessment) error
	GetByID(id uint) (*models.Assessment, error)
	ListByOrganization(orgID uint, offset, limit int) ([]models.Assessment, error)
	Update(a *models.Assessment) error
	Delete(id uint) error
}

// CatalogRepository defines the interface for catalog items and access grants
type CatalogRepository interface {
	CreateItem(item *models.CatalogItem) error
	GetItemByID(id uint) (*models.CatalogItem, error)
	GetItemByUUID(uuid string) (*models.CatalogItem, error)
	ListItems(offset, limit int) ([]models.CatalogItem, error)
	UpdateItem(item *models.CatalogItem) error
	DeleteItem(id uint) error

	GetGrant(userID, itemID uint) (*models.CatalogAccess, error)
	CreateGrantIfNotExists(grant *models.CatalogAccess) (bool, error)
	DeleteGrant(userID, itemID uint) error
	ListGrantsByUser(userID uint) ([]models.CatalogAccess, error)
	ListGrantsByItem(itemID uint) ([]models.CatalogAccess, error)
}

// WebhookEventRepository defines the interface for the payment webhook ledger
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
	GetByID(id uint) (*models.PaymentWebhookEvent, error)
	ListRecent(limit int) ([]models.PaymentWebhookEvent, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Organization OrganizationRepository
	Membership   MembershipRepository
	Formation    FormationRepository
	Pathway      PathwayRepository
	Resource     ResourceRepository
	Assessment   AssessmentRepository
	Catalog      CatalogRepository
	WebhookEvent WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Organization: NewOrganizationRepository(db),
		Membership:   NewMembershipRepository(db),
		Formation:    NewFormationRepository(db),
		Pathway:      NewPathwayRepository(db),
		Resource:     NewResourceRepository(db),
		Assessment:   NewAssessmentRepository(db),
		Catalog:      NewCatalogRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
	}
}
