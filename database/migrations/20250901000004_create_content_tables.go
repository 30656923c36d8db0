package migrations

import (
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250901000004_create_content_tables", &createContentTables{})
}

type createContentTables struct{}

func (m *createContentTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Announcement{},
		&models.GalleryImage{},
		&models.Video{},
		&models.WorkingTime{},
	)
}

func (m *createContentTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.Announcement{},
		&models.GalleryImage{},
		&models.Video{},
		&models.WorkingTime{},
	)
}
