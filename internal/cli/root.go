// internal/cli/root.go

// Package cli implements the foodgram management commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/javajoker/foodgram-backend/internal/config"
	"github.com/javajoker/foodgram-backend/internal/database"
)

// RootOptions holds state shared by all commands.
type RootOptions struct {
	Verbose bool
	Config  *config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "foodgram",
		Short: "Foodgram management commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if opts.Verbose {
				cfg.Log.Level = "debug"
			}
			config.ConfigureLogging(cfg.Log)
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewImportDataCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))

	return cmd
}

// openDatabase connects and migrates the schema.
func openDatabase(opts *RootOptions) (*gorm.DB, error) {
	db, err := database.Initialize(opts.Config.Database)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}
