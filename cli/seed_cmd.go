package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speclab-backend/repository"
	"speclab-backend/seed"
)

func newSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter catalog, careers and first superuser",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()
			data, err := loadSeedData(file)
			if err != nil {
				return err
			}
			res, err := seedWith(cmd.Context(), app, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d certifications, %d prerequisites, %d careers, %d requirements\n",
				res.Certifications, res.Prerequisites, res.Careers, res.Requirements)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file to load instead of the embedded data")
	return cmd
}

func loadSeedData(file string) (*seed.Data, error) {
	if file == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return seed.Parse(raw)
}

func runSeed(ctx context.Context, app *App) error {
	data, err := seed.Default()
	if err != nil {
		return err
	}
	_, err = seedWith(ctx, app, data)
	return err
}

func seedWith(ctx context.Context, app *App, data *seed.Data) (seed.Result, error) {
	db, err := app.DB()
	if err != nil {
		return seed.Result{}, err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return seed.Result{}, err
	}
	return seed.NewSeeder(db, app.Log).Run(ctx, data, seed.Superuser{
		Email:    app.Config.FirstSuperuserEmail,
		Password: app.Config.FirstSuperuserPassword,
	})
}
