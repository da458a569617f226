package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

// Create creates a new organization in the database
func (r *organizationRepository) Create(org *models.Organization) error {
	org.Slug = models.NormalizeSlug(org.Slug)
	return r.db.Create(org).Error
}

// GetByID retrieves an organization by its ID
func (r *organizationRepository) GetByID(id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetBySlug retrieves an organization by slug. The lookup is
// case-insensitive: slugs are stored lowercase and the input is normalized.
func (r *organizationRepository) GetBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("slug = ?", models.NormalizeSlug(slug)).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an existing organization in the database
func (r *organizationRepository) Update(org *models.Organization) error {
	org.Slug = models.NormalizeSlug(org.Slug)
	return r.db.Save(org).Error
}

// Delete soft deletes an organization by its ID
func (r *organizationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Organization{}, id).Error
}

// List retrieves a paginated list of organizations
func (r *organizationRepository) List(offset, limit int) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orgs).Error
	return orgs, err
}

// Count returns the total number of organizations
func (r *organizationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug is already taken
func (r *organizationRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("slug = ?", models.NormalizeSlug(slug)).Count(&count).Error
	return count > 0, err
}
