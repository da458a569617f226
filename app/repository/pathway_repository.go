package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// pathwayRepository implements the PathwayRepository interface
type pathwayRepository struct {
	db *gorm.DB
}

// NewPathwayRepository creates a new pathway repository instance
func NewPathwayRepository(db *gorm.DB) PathwayRepository {
	return &pathwayRepository{db: db}
}

// Create creates a new pathway in the database
func (r *pathwayRepository) Create(p *models.Pathway) error {
	return r.db.Create(p).Error
}

// GetByID retrieves a pathway with its steps in outline order
func (r *pathwayRepository) GetByID(id uint) (*models.Pathway, error) {
	var p models.Pathway
	err := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOrganization retrieves a paginated list of pathways within an organization
func (r *pathwayRepository) ListByOrganization(orgID uint, offset, limit int) ([]models.Pathway, error) {
	var pathways []models.Pathway
	err := r.db.Where("organization_id = ?", orgID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&pathways).Error
	return pathways, err
}

// Update updates an existing pathway in the database
func (r *pathwayRepository) Update(p *models.Pathway) error {
	return r.db.Save(p).Error
}

// Delete soft deletes a pathway and removes its steps
func (r *pathwayRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pathway_id = ?", id).Delete(&models.PathwayStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pathway{}, id).Error
	})
}

// GetSteps returns the steps of a pathway in outline order
func (r *pathwayRepository) GetSteps(pathwayID uint) ([]models.PathwayStep, error) {
	var steps []models.PathwayStep
	err := r.db.Where("pathway_id = ?", pathwayID).Order("position ASC").Find(&steps).Error
	return steps, err
}

// AddStep appends a step at the end of the outline
func (r *pathwayRepository) AddStep(step *models.PathwayStep) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos *int
		err := tx.Model(&models.PathwayStep{}).
			Where("pathway_id = ?", step.PathwayID).
			Select("MAX(position)").Scan(&maxPos).Error
		if err != nil {
			return err
		}
		step.Position = 0
		if maxPos != nil {
			step.Position = *maxPos + 1
		}
		return tx.Create(step).Error
	})
}

// RemoveStep deletes a step and renumbers the remaining ones densely
func (r *pathwayRepository) RemoveStep(pathwayID, stepID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("pathway_id = ? AND id = ?", pathwayID, stepID).Delete(&models.PathwayStep{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var steps []models.PathwayStep
		if err := tx.Where("pathway_id = ?", pathwayID).Order("position ASC").Find(&steps).Error; err != nil {
			return err
		}
		for i := range steps {
			if steps[i].Position != i {
				if err := tx.Model(&models.PathwayStep{}).Where("id = ?", steps[i].ID).Update("position", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SaveSteps persists the positions of an already reordered outline
func (r *pathwayRepository) SaveSteps(steps []models.PathwayStep) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range steps {
			if err := tx.Model(&models.PathwayStep{}).Where("id = ?", steps[i].ID).Update("position", steps[i].Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
