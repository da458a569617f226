package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// assessmentRepository implements the AssessmentRepository interface
type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new assessment repository instance
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Create creates a new assessment in the database
func (r *assessmentRepository) Create(a *models.Assessment) error {
	return r.db.Create(a).Error
}

// GetByID retrieves an assessment by its ID
func (r *assessmentRepository) GetByID(id uint) (*models.Assessment, error) {
	var a models.Assessment
	err := r.db.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByOrganization retrieves a paginated list of assessments within an organization
func (r *assessmentRepository) ListByOrganization(orgID uint, offset, limit int) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.Where("organization_id = ?", orgID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&assessments).Error
	return assessments, err
}

// Update updates an existing assessment in the database
func (r *assessmentRepository) Update(a *models.Assessment) error {
	return r.db.Save(a).Error
}

// Delete soft deletes an assessment by its ID
func (r *assessmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Assessment{}, id).Error
}
