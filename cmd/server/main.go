package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutorlink/internal/app"
	"github.com/Freeeeeet/tutorlink/internal/config"
	"github.com/Freeeeeet/tutorlink/internal/controller/httpapi"
	"github.com/Freeeeeet/tutorlink/internal/identity"
	"github.com/Freeeeeet/tutorlink/internal/repository"
	"github.com/Freeeeeet/tutorlink/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := app.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.MigrationsEnabled {
		migrator, err := app.NewMigrator(pool, logger)
		if err != nil {
			return err
		}
		if err := migrator.Run(ctx); err != nil {
			migrator.Close()
			return err
		}
		migrator.Close()
	}

	accounts := repository.NewAccountRepository(pool)
	tutors := repository.NewTutorProfileRepository(pool)
	posts := repository.NewPostRepository(pool)
	applications := repository.NewApplicationRepository(pool)
	requests := repository.NewTutorRequestRepository(pool)

	identityClient := identity.NewClient(identity.ClientConfig{
		BaseURL:     cfg.SupabaseURL,
		AnonKey:     cfg.SupabaseAnonKey,
		RedirectURL: cfg.AuthRedirectURL,
		Timeout:     cfg.IdentityTimeout,
	})

	svc := httpapi.Services{
		Accounts:     service.NewAccountService(accounts, identityClient, logger),
		Posts:        service.NewPostService(posts, accounts, logger),
		Tutors:       service.NewTutorService(tutors, accounts, logger),
		Applications: service.NewApplicationService(applications, posts, accounts, logger),
		Requests:     service.NewTutorRequestService(requests, tutors, accounts, logger),
		Admin:        service.NewAdminService(accounts, tutors, posts, applications, logger),
	}
	server := httpapi.NewServer(svc, identity.NewVerifier(cfg.SupabaseJWTSecret), logger, cfg.CORSAllowedOrigins)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar().Infow("Starting tutorlink API",
			"environment", cfg.Environment,
			"addr", cfg.HTTPAddr,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
