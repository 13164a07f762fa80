package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"speclab-backend/config"
	"speclab-backend/controllers"
	"speclab-backend/metrics"
	"speclab-backend/repository"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var port string
	var migrate, seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if port != "" {
				app.Config.Port = port
			}
			db, err := app.DB()
			if err != nil {
				return err
			}
			defer app.Close()

			if migrate {
				if err := repository.AutoMigrate(db); err != nil {
					return err
				}
			}
			if seed {
				if err := runSeed(ctx, app); err != nil {
					return err
				}
			}

			handler := controllers.NewRouter(app.Config, db, config.NewSessionStore(app.Config), metrics.New(), app.Log)
			srv := &http.Server{
				Addr:              ":" + app.Config.Port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				app.Log.Info("server listening", "addr", srv.Addr, "env", app.Config.Env)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			app.Log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run schema migration before serving")
	cmd.Flags().BoolVar(&seed, "seed", false, "load the starter catalog before serving")
	return cmd
}
