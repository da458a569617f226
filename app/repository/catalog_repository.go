package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/formaflow/formaflow/app/models"
)

// catalogRepository implements the CatalogRepository interface
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateItem creates a new catalog item in the database
func (r *catalogRepository) CreateItem(item *models.CatalogItem) error {
	return r.db.Create(item).Error
}

// GetItemByID retrieves a catalog item by its internal ID
func (r *catalogRepository) GetItemByID(id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByUUID retrieves a catalog item by its public identifier
func (r *catalogRepository) GetItemByUUID(uuid string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.Where("uuid = ?", uuid).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems retrieves a paginated list of catalog items
func (r *catalogRepository) ListItems(offset, limit int) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

// UpdateItem updates an existing catalog item in the database
func (r *catalogRepository) UpdateItem(item *models.CatalogItem) error {
	return r.db.Save(item).Error
}

// DeleteItem soft deletes a catalog item by its ID
func (r *catalogRepository) DeleteItem(id uint) error {
	return r.db.Delete(&models.CatalogItem{}, id).Error
}

// GetGrant retrieves the access grant for a (user, item) pair
func (r *catalogRepository) GetGrant(userID, itemID uint) (*models.CatalogAccess, error) {
	var grant models.CatalogAccess
	err := r.db.Where("user_id = ? AND catalog_item_id = ?", userID, itemID).First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// CreateGrantIfNotExists inserts a grant row unless one already exists for
// the (user, item) pair. Returns true when a row was inserted. Grants are
// never mutated: a replayed insert with a different status is a no-op.
func (r *catalogRepository) CreateGrantIfNotExists(grant *models.CatalogAccess) (bool, error) {
	var existing models.CatalogAccess
	err := r.db.Where("user_id = ? AND catalog_item_id = ?", grant.UserID, grant.CatalogItemID).First(&existing).Error
	if err == nil {
		*grant = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	// The unique index covers the race between the check and the insert.
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "catalog_item_id"}},
		DoNothing: true,
	}).Create(grant).Error; err != nil {
		return false, err
	}
	return true, nil
}

// DeleteGrant removes the grant row for a (user, item) pair. This is the only
// revocation path.
func (r *catalogRepository) DeleteGrant(userID, itemID uint) error {
	res := r.db.Where("user_id = ? AND catalog_item_id = ?", userID, itemID).Delete(&models.CatalogAccess{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListGrantsByUser returns all grants held by a user
func (r *catalogRepository) ListGrantsByUser(userID uint) ([]models.CatalogAccess, error) {
	var grants []models.CatalogAccess
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&grants).Error
	return grants, err
}

// ListGrantsByItem returns all grants on a catalog item
func (r *catalogRepository) ListGrantsByItem(itemID uint) ([]models.CatalogAccess, error) {
	var grants []models.CatalogAccess
	err := r.db.Where("catalog_item_id = ?", itemID).Order("created_at DESC").Find(&grants).Error
	return grants, err
}
