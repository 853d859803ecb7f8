package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go-sales-crm/internal/config"
	"go-sales-crm/internal/repository"
	"go-sales-crm/internal/service"
	"go-sales-crm/pkg/database"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "crmctl [command]",
	Short: "sales CRM maintenance tool",
	Long:  "Run migrations, seed accounts and load reference data for the sales CRM.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Usage()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedAdminCmd, resetPasswordCmd, importLocationsCmd)

	f := seedAdminCmd.Flags()
	f.StringVar(&adminEmail, "email", "", "admin email (defaults to ADMIN_EMAIL)")
	f.StringVar(&adminPassword, "password", "", "admin password (defaults to ADMIN_PASSWORD)")
	f.StringVar(&adminName, "name", "Administrator", "admin full name")

	resetPasswordCmd.Flags().StringVar(&newPassword, "password", "", "new password, at least 6 characters")
	_ = resetPasswordCmd.MarkFlagRequired("password")
}

var (
	adminEmail    string
	adminPassword string
	adminName     string
	newPassword   string
)

// openDB loads configuration and connects.
func openDB() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, errors.Wrap(err, "config")
	}
	return cfg, database.ConnectDB(cfg.DatabaseURL), nil
}

var migrateCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "creates or updates all tables",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return errors.Wrap(err, "migrate")
		}
		if err := repository.NewProductRepo(db).SeedCategories(cfg.Categories); err != nil {
			return errors.Wrap(err, "seed categories")
		}
		fmt.Println("✅ Migration complete")
		return nil
	},
}

var seedAdminCmd = &cobra.Command{
	Use:          "seed-admin",
	Short:        "creates the admin account if it does not exist",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		email, password := adminEmail, adminPassword
		if email == "" {
			email = cfg.AdminEmail
		}
		if password == "" {
			password = cfg.AdminPassword
		}
		created, err := service.NewUserService(repository.NewUserRepo(db)).EnsureAdmin(email, password, adminName)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("✅ Admin user created: %s\n", email)
		} else {
			fmt.Printf("Admin user %s already exists\n", email)
		}
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:          "reset-password <email>",
	Short:        "sets a new password for an account",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		if err := service.NewUserService(repository.NewUserRepo(db)).ResetPassword(args[0], newPassword); err != nil {
			return err
		}
		fmt.Printf("✅ Password for %s has been reset\n", args[0])
		return nil
	},
}

var importLocationsCmd = &cobra.Command{
	Use:   "import-locations <file.json>",
	Short: "loads cities and towns from a JSON file",
	Long: `
Loads the address pickers from a JSON array of {"name": "...", "towns": ["..."]}.
Existing cities and towns are left untouched.
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var cities []service.CityImport
		if err := json.Unmarshal(raw, &cities); err != nil {
			return errors.Wrapf(err, "parse %s", args[0])
		}
		_, db, err := openDB()
		if err != nil {
			return err
		}
		added, err := service.NewLocationService(repository.NewLocationRepo(db)).ImportLocations(cities)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Imported %d cities, %d new towns\n", len(cities), added)
		return nil
	},
}
