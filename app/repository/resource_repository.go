package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// resourceRepository implements the ResourceRepository interface
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository instance
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create creates a new resource in the database
func (r *resourceRepository) Create(res *models.Resource) error {
	return r.db.Create(res).Error
}

// GetByID retrieves a resource by its ID
func (r *resourceRepository) GetByID(id uint) (*models.Resource, error) {
	var res models.Resource
	err := r.db.First(&res, id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByOrganization retrieves a paginated list of resources within an organization
func (r *resourceRepository) ListByOrganization(orgID uint, offset, limit int) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Where("organization_id = ?", orgID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&resources).Error
	return resources, err
}

// Update updates an existing resource in the database
func (r *resourceRepository) Update(res *models.Resource) error {
	return r.db.Save(res).Error
}

// Delete soft deletes a resource by its ID
func (r *resourceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Resource{}, id).Error
}
