package migrations

import (
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250901000005_create_feedback_tables", &createFeedbackTables{})
}

type createFeedbackTables struct{}

func (m *createFeedbackTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Rating{},
		&models.Contact{},
		&models.NewsletterSubscriber{},
	)
}

func (m *createFeedbackTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.Rating{},
		&models.Contact{},
		&models.NewsletterSubscriber{},
	)
}
