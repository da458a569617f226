package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// formationRepository implements the FormationRepository interface
type formationRepository struct {
	db *gorm.DB
}

// NewFormationRepository creates a new formation repository instance
func NewFormationRepository(db *gorm.DB) FormationRepository {
	return &formationRepository{db: db}
}

// Create creates a new formation in the database
func (r *formationRepository) Create(f *models.Formation) error {
	return r.db.Create(f).Error
}

// GetByID retrieves a formation by its ID
func (r *formationRepository) GetByID(id uint) (*models.Formation, error) {
	var f models.Formation
	err := r.db.First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByOrganization retrieves a paginated list of formations within an organization
func (r *formationRepository) ListByOrganization(orgID uint, offset, limit int) ([]models.Formation, error) {
	var formations []models.Formation
	err := r.db.Where("organization_id = ?", orgID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&formations).Error
	return formations, err
}

// Update updates an existing formation in the database
func (r *formationRepository) Update(f *models.Formation) error {
	return r.db.Save(f).Error
}

// Delete soft deletes a formation by its ID
func (r *formationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Formation{}, id).Error
}

// CountByOrganization returns the number of formations in an organization
func (r *formationRepository) CountByOrganization(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Formation{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}
