package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"speclab-backend/config"
	"speclab-backend/logger"
)

// App carries what every command needs. DB is opened on first use.
type App struct {
	Config config.Config
	Log    *logger.Logger

	db *gorm.DB
}

func (a *App) DB() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := config.OpenDB(a.Config)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.db = db
	return db, nil
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	a.db = nil
}

// NewRootCmd creates the top-level "speclab" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "speclab",
		Short:         "Certification roadmap API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Config.Validate()
		},
	}

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newSeedCmd(app),
	)

	return root
}
