package repositories

import (
	"time"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/orm"
)

// MenuCacheKey is the redis key for the cached public menu listing.
const MenuCacheKey = "menu:all"

// MenuCacheTTL bounds staleness if invalidation is ever missed.
const MenuCacheTTL = 10 * time.Minute

// CatalogRepository handles menu items and delivery areas.
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// AllMenuItems returns the full menu through the read-through cache.
func (r *CatalogRepository) AllMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := orm.DB().Model(&models.MenuItem{}).Cache(MenuCacheKey, MenuCacheTTL, &items)
	return items, err
}

// FindMenuItem looks up one menu item by primary key.
func (r *CatalogRepository) FindMenuItem(id uint) (models.MenuItem, error) {
	var item models.MenuItem
	err := orm.DB().Model(&models.MenuItem{}).Where("id = ?", id).First(&item)
	return item, err
}

// AllAreas returns every delivery area.
func (r *CatalogRepository) AllAreas() ([]models.DeliveryArea, error) {
	var areas []models.DeliveryArea
	err := orm.DB().Model(&models.DeliveryArea{}).Order("name").Get(&areas)
	return areas, err
}

// FindAreaByName looks up a delivery area by its exact name.
func (r *CatalogRepository) FindAreaByName(name string) (models.DeliveryArea, error) {
	var area models.DeliveryArea
	err := orm.DB().Model(&models.DeliveryArea{}).Where("name = ?", name).First(&area)
	return area, err
}
