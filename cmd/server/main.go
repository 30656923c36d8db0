// Command server is the API entry point. Running it with no arguments
// starts the HTTP server; subcommands cover migrations, seeding and
// route inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tyabelawras/api/app/routes"
	"github.com/tyabelawras/api/config"
	"github.com/tyabelawras/api/internal/server"
	"github.com/tyabelawras/api/pkg/database"
	"github.com/tyabelawras/api/pkg/migration"
	"github.com/tyabelawras/api/pkg/router"
	"github.com/tyabelawras/api/pkg/workerpool"
	"github.com/tyabelawras/api/pkg/ws"

	_ "github.com/tyabelawras/api/database/migrations"
	"github.com/tyabelawras/api/database/seeders"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Tyab El Awras restaurant API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return migration.New(db).Run()
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the most recent migration batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return migration.New(db).Rollback()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return migration.New(db).Status()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with initial records",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return seeders.RunAll(db)
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Build the route table without booting any subsystem.
		r := router.New()
		pool := workerpool.New(1)
		defer pool.Shutdown()
		routes.RegisterAPI(r, ws.NewHub(), pool)

		for _, line := range r.Routes() {
			fmt.Println(line)
		}
		return nil
	},
}

// bootDB loads config and opens the database for CLI subcommands.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	if err := database.Connect(); err != nil {
		return nil, err
	}
	return database.DB, nil
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, migrateRollbackCmd, migrateStatusCmd, seedCmd, routeListCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
