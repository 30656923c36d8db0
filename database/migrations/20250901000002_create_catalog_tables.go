package migrations

import (
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250901000002_create_catalog_tables", &createCatalogTables{})
}

type createCatalogTables struct{}

func (m *createCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.MenuItem{}, &models.DeliveryArea{})
}

func (m *createCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.MenuItem{}, &models.DeliveryArea{})
}
