package seeders

import (
	"errors"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/config"
	"github.com/tyabelawras/api/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("superadmin-user", seedSuperadmin)
}

// seedSuperadmin creates the initial back-office account. Email and
// password come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; the default
// password is fine for local work only.
func seedSuperadmin(db *gorm.DB) error {
	email := config.Get("SEED_ADMIN_EMAIL", "admin@tyabelawras.com")

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(config.Get("SEED_ADMIN_PASSWORD", "changeme123"))
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "Super Admin",
		Email:    email,
		Password: hash,
		UserType: "superadmin",
	}).Error
}
