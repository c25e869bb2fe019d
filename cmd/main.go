package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/soccer-tournament/brackets"
	"github.com/Dosada05/soccer-tournament/config"
	"github.com/Dosada05/soccer-tournament/db"
	"github.com/Dosada05/soccer-tournament/handlers"
	"github.com/Dosada05/soccer-tournament/jobs"
	"github.com/Dosada05/soccer-tournament/notify"
	"github.com/Dosada05/soccer-tournament/repositories"
	api "github.com/Dosada05/soccer-tournament/routes"
	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/storage"
	"github.com/Dosada05/soccer-tournament/store"
	"github.com/Dosada05/soccer-tournament/utils"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))
	if !utils.IsBcryptHash(cfg.AdminPasswordHash) {
		logger.Error("ADMIN_PASSWORD_HASH is not a bcrypt hash, generate one with cmd/hashpw")
		os.Exit(1)
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := db.EnsureSchema(migrateCtx, dbConn)
		cancel()
		if err != nil {
			logger.Error("failed to apply schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database schema ensured")
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Экспорт отчётов в Cloudflare R2, если настроен
	var uploader storage.FileUploader
	if cfg.ExportEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(appCtx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("report export disabled: R2 is not configured")
	}

	var mailer services.Mailer
	if cfg.EmailEnabled() {
		mailer = services.NewEmailService(cfg)
		logger.Info("SMTP mailer initialized", slog.String("host", cfg.SMTPHost))
	} else {
		logger.Info("match reminders disabled: SMTP is not configured")
	}

	// Инициализация WebSocket Hub
	wsHub := notify.NewHub(logger)
	go wsHub.Run(appCtx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tx := repositories.NewTransactor(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	tournamentTeamRepo := repositories.NewPostgresTournamentTeamRepository(dbConn)
	rosterRepo := repositories.NewPostgresRosterRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	reportRepo := repositories.NewPostgresReportRepository(dbConn)
	statusRepo := repositories.NewPostgresStatusRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	tournamentService := services.NewTournamentService(tournamentRepo, tournamentTeamRepo, rosterRepo, matchRepo, tx, logger)
	teamService := services.NewTeamService(teamRepo, tournamentRepo, tournamentTeamRepo, rosterRepo, tx, logger)
	standingService := services.NewStandingService(tournamentTeamRepo, matchRepo, tx, logger)
	matchService := services.NewMatchService(
		matchRepo,
		tournamentRepo,
		teamRepo,
		venueRepo,
		tournamentTeamRepo,
		brackets.NewRoundRobinGenerator(),
		tx,
		logger,
	)
	statsService := services.NewStatsService(reportRepo)
	playerService := services.NewPlayerService(rosterRepo, logger)
	dashboardService := services.NewDashboardService(statusRepo, logger)
	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecretKey)
	reminderService := services.NewReminderService(matchRepo, rosterRepo, mailer, logger)
	exportService := services.NewExportService(uploader, logger)
	logger.Info("Services initialized")

	appStore := store.New(store.Services{
		Tournaments: tournamentService,
		Teams:       teamService,
		Matches:     matchService,
		Standings:   standingService,
		Stats:       statsService,
		Players:     playerService,
		Reminders:   reminderService,
		Exports:     exportService,
	}, store.Options{Notifier: wsHub, Logger: logger})

	loadCtx, cancelLoad := context.WithTimeout(appCtx, 15*time.Second)
	if err := appStore.Load(loadCtx); err != nil {
		// Сервер всё равно стартует: коллекции перечитаются по ?refresh=true
		logger.Warn("initial store load failed", slog.Any("error", err))
	} else {
		logger.Info("store loaded")
	}
	cancelLoad()

	// Плановый пересчёт турнирных таблиц
	scheduler, err := jobs.NewStandingsCron(cfg.StandingsCron, jobs.NewStandingsJob(standingService, appStore, logger), logger)
	if err != nil {
		logger.Error("failed to schedule standings job", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
		logger.Info("scheduler stopped")
	}()

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Reports:     handlers.NewReportHandler(appStore, matchService),
		Tournaments: handlers.NewTournamentHandler(appStore),
		Teams:       handlers.NewTeamHandler(appStore),
		Matches:     handlers.NewMatchHandler(appStore),
		Players:     handlers.NewPlayerHandler(appStore),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, appStore),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins),
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, h, authService, cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stopApp()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	stopApp()
	logger.Info("application exited")
}
