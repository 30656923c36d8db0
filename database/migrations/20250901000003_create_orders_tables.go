package migrations

import (
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250901000003_create_orders_tables", &createOrdersTables{})
}

type createOrdersTables struct{}

func (m *createOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *createOrdersTables) Down(db *gorm.DB) error {
	// Items first, they carry the foreign key.
	return db.Migrator().DropTable(&models.OrderItem{}, &models.Order{})
}
