// Package migrations holds the schema migrations. Each file registers
// itself in init(); the CLI imports this package for its side effects.
package migrations

import (
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250901000001_create_users_table", &createUsersTable{})
}

type createUsersTable struct{}

func (m *createUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *createUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}
