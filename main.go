package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/inventory-manager/config"
	"github.com/Govind-619/inventory-manager/controllers"
	"github.com/Govind-619/inventory-manager/repository"
	"github.com/Govind-619/inventory-manager/routes"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Inventory manager HTTP API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(envFile, cmd.Flags())
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load")
	rootCmd.Flags().String("port", "", "HTTP port (overrides PORT)")
	rootCmd.Flags().String("log-dir", "", "log directory (overrides LOG_DIR)")
	rootCmd.Flags().String("db-url", "", "postgres connection URL (overrides DATABASE_URL)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		utils.LogError("Fatal: %v", err)
		log.Fatal(err)
	}
}

// serve runs the HTTP server until ctx is cancelled. The database handle
// is opened here and released on the way out.
func serve(ctx context.Context, cfg *config.Config) error {
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		return err
	}
	defer utils.CloseLogger()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			utils.LogError("Error closing database: %v", err)
		}
		utils.LogInfo("Database connection closed")
	}()

	repo := repository.New(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	router := routes.SetupRouter(controllers.NewHandler(repo))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			utils.LogError("Error starting server: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
