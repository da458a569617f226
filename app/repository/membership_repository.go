package repository

import (
	"gorm.io/gorm"

	"github.com/formaflow/formaflow/app/models"
)

// membershipRepository implements the MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository instance
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Create creates a new membership in the database
func (r *membershipRepository) Create(m *models.Membership) error {
	return r.db.Create(m).Error
}

// GetByID retrieves a membership by its ID
func (r *membershipRepository) GetByID(id uint) (*models.Membership, error) {
	var m models.Membership
	err := r.db.First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByOrgAndUser retrieves the membership for a (organization, user) pair
func (r *membershipRepository) GetByOrgAndUser(orgID, userID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.db.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns all memberships of a user, most recently created first.
// The access resolver takes the first row as the authoritative membership.
func (r *membershipRepository) ListByUser(userID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&memberships).Error
	return memberships, err
}

// ListByOrganization returns all memberships within an organization
func (r *membershipRepository) ListByOrganization(orgID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Where("organization_id = ?", orgID).Order("created_at ASC").Find(&memberships).Error
	return memberships, err
}

// UpdateRole updates the role of a membership row in place
func (r *membershipRepository) UpdateRole(id uint, role string) error {
	return r.db.Model(&models.Membership{}).Where("id = ?", id).Update("role", role).Error
}

// Delete soft deletes a membership by its ID
func (r *membershipRepository) Delete(id uint) error {
	return r.db.Delete(&models.Membership{}, id).Error
}

// CountByOrganization returns the number of members in an organization
func (r *membershipRepository) CountByOrganization(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}
