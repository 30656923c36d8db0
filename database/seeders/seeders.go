// Package seeders populates a fresh database with the records the
// application needs to be usable: a superadmin account and a row per
// weekday for opening hours.
package seeders

import (
	"fmt"

	"gorm.io/gorm"
)

// SeederFunc inserts records. Seeders must be idempotent; running the
// seed command twice must not duplicate rows.
type SeederFunc func(db *gorm.DB) error

type registered struct {
	name string
	fn   SeederFunc
}

var registry []registered

// Register adds a seeder under a name used for CLI output.
func Register(name string, fn SeederFunc) {
	registry = append(registry, registered{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order.
func RunAll(db *gorm.DB) error {
	for _, s := range registry {
		fmt.Printf("  Seeding: %s\n", s.name)
		if err := s.fn(db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.name, err)
		}
	}
	return nil
}
