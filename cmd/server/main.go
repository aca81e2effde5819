// @title           Print Shop Orders API
// @version         1.0.0
// @description     Order intake for a print shop: a public order form with file uploads and an admin API for reviewing and managing orders.

// @contact.name   API Support

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey Session
// @in header
// @name sessionid
// @description Admin session token returned by /admin/login.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"printshop-backend/docs"
	"printshop-backend/internal/auth"
	"printshop-backend/internal/config"
	"printshop-backend/internal/database"
	"printshop-backend/internal/handlers"
	"printshop-backend/internal/logging"
	"printshop-backend/internal/router"
	"printshop-backend/internal/services"
	"printshop-backend/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		port        string
		migrateOnly bool
	)

	flagSet := pflag.NewFlagSet("printshop-server", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML config file (default: ./config.yaml if present)")
	flagSet.StringVar(&port, "port", "", "listen port, overrides server.port")
	flagSet.BoolVar(&migrateOnly, "migrate-only", false, "apply database migrations and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}

	logFormat := cfg.Log.Format
	if cfg.IsProduction() {
		logFormat = "json"
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logging.New(cfg.Log.Level, logFormat, os.Stderr)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	store := database.NewStore(db, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	applied, err := database.NewMigrator(db, logger).Run()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations complete", "applied", len(applied))
	if migrateOnly {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	authority, err := newAuthority(cfg, store, logger)
	if err != nil {
		return err
	}
	if pruned, err := authority.PruneExpired(ctx); err != nil {
		logger.Warn("failed to prune expired sessions", "error", err)
	} else if pruned > 0 {
		logger.Info("pruned expired sessions", "count", pruned)
	}

	updateSwaggerHost(cfg.Server.BaseURL)

	engine := router.SetupRouter(router.Deps{
		Orders:    services.NewOrderService(store, files, logger),
		Authority: authority,
		Limits: handlers.UploadLimits{
			MaxFileBytes: cfg.Uploads.MaxFileBytes,
			MaxFiles:     cfg.Uploads.MaxFiles,
		},
		DistDir: cfg.Frontend.DistDir,
		Logger:  logger,
		Swagger: !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"database", cfg.Database.Driver,
			"uploads", cfg.Uploads.Backend,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		logger.Info("shutdown complete")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	switch cfg.Uploads.Backend {
	case config.BackendSupabase:
		return storage.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Bucket)
	case config.BackendMinio:
		return storage.NewMinioStore(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket)
	default:
		return storage.NewLocalStore(cfg.Uploads.Dir)
	}
}

func newAuthority(cfg *config.Config, store *database.Store, logger *slog.Logger) (*auth.Authority, error) {
	var credentials auth.CredentialVerifier = auth.StaticCredentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}
	if cfg.Admin.PasswordHash != "" {
		bcryptCredentials, err := auth.NewBcryptCredentials(cfg.Admin.Username, cfg.Admin.PasswordHash)
		if err != nil {
			return nil, err
		}
		credentials = bcryptCredentials
	}

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		generated, err := auth.RandomSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		logger.Warn("session.secret not set; using a random secret, admin sessions will not survive a restart")
	}

	return auth.NewAuthority(credentials, store, secret), nil
}

// updateSwaggerHost points the API docs at the public base URL.
func updateSwaggerHost(baseURL string) {
	if baseURL == "" {
		return
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return
	}
	docs.SwaggerInfo.Host = u.Host
	if u.Scheme == "https" {
		docs.SwaggerInfo.Schemes = []string{"https", "http"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
	}
}
