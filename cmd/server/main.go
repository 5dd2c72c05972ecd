package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hindipath/internal/audio"
	"hindipath/internal/badges"
	"hindipath/internal/completion"
	"hindipath/internal/config"
	"hindipath/internal/database"
	"hindipath/internal/handlers"
	"hindipath/internal/logger"
	"hindipath/internal/repository"
	"hindipath/internal/security"
	"hindipath/internal/service"
)

const (
	stepDatabase   = "Database connection"
	stepMigrations = "Running migrations"
	stepServices   = "Initializing services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server failed", "error", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	if !cfg.TutorEnabled() {
		log.Warn("SARVAM_KEY not set: chat and speech are disabled")
	}
	if cfg.SessionSecretGenerated {
		log.Warn("SECRET_KEY not set: using a random secret, sessions will not survive a restart")
	}

	readiness := handlers.NewReadiness(stepDatabase, stepMigrations, stepServices)

	readiness.Start(stepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	readiness.Complete(stepDatabase)
	log.Info("database connection established", "type", cfg.DatabaseType)

	readiness.Start(stepMigrations)
	ctx := context.Background()
	applied, err := db.RunMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	readiness.Complete(stepMigrations)
	log.Info("migrations completed", "applied", applied)

	readiness.Start(stepServices)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	vocabularyRepo := repository.NewVocabularyRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	// Upstream clients
	httpClient := &http.Client{}
	completer := completion.New(completion.Config{
		BaseURL: cfg.SarvamBaseURL,
		APIKey:  cfg.SarvamAPIKey,
		Model:   cfg.ChatModel,
		Timeout: cfg.ChatTimeout,
	}, httpClient)
	tts := audio.NewGateway(cfg.SarvamBaseURL, cfg.SarvamAPIKey, cfg.TTSTimeout, httpClient, log)

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	// Services
	badgeService := service.NewBadgeService(db, badges.DefaultCatalog())
	authService := service.NewAuthService(userRepo, security.NewTokenSigner(cfg.SessionSecret), cfg.SessionDuration, emailService, log)
	profileService := service.NewProfileService(userRepo, badgeService)
	tutorService := service.NewTutorService(db, completer, badgeService, log)
	progressService := service.NewProgressService(progressRepo, vocabularyRepo, conversationRepo, badgeService)

	// Handlers
	router := handlers.NewRouter(handlers.Handlers{
		Middleware: handlers.NewMiddleware(authService, security.NewRateLimiter(cfg.RateLimitPerMinute), cfg.TrustProxy, log),
		Auth:       handlers.NewAuthHandler(authService, cfg.StaticFilesPath, log),
		Profile:    handlers.NewProfileHandler(profileService, log),
		Chat:       handlers.NewChatHandler(tutorService, log),
		Progress:   handlers.NewProgressHandler(progressService, log),
		TTS:        handlers.NewTTSHandler(tts, log),
		Health:     handlers.NewHealthHandler(readiness, db, log),
	}, cfg.StaticFilesPath, log)
	readiness.Complete(stepServices)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ChatTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
