package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "portfolio-customizer/internal/adapter/http"
	repo "portfolio-customizer/internal/adapter/repository"
	"portfolio-customizer/internal/config"
	"portfolio-customizer/internal/infrastructure/migration"
	"portfolio-customizer/internal/usecase"
	ai "portfolio-customizer/pkg/ai"
	"portfolio-customizer/pkg/extract"
	infra "portfolio-customizer/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	sessionIdle   = 2 * time.Hour
	sweepInterval = 10 * time.Minute
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	svc := usecase.NewService(
		store,
		ai.NewClientWithLanguage(cfg.AIServiceURL, cfg.Language, logger),
		infra.NewChromedpRenderer(cfg.ChromePath, logger),
		extract.New(cfg.MaxUploadBytes(), logger),
		usecase.WithLogger(logger),
		usecase.WithRandomTheme(cfg.RandomTheme),
	)

	app := fiber.New(fiber.Config{
		AppName:               "portfolio-customizer",
		BodyLimit:             cfg.MaxUploadBytes(),
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.AllowedOrigins, ",")}))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": svc.Sessions().Len()})
	})
	httpadapter.NewHandler(svc, logger).Register(app)

	go sweepSessions(ctx, svc.Sessions(), logger)

	go func() {
		logger.Info("listening", "port", cfg.Port, "storage", cfg.Storage)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

// openStore picks the portfolio store. An unreachable Postgres falls back to
// memory so editing still works.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (usecase.PortfolioRepo, func()) {
	switch cfg.Storage {
	case "postgres":
		pool, err := infra.NewPortfolioPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("portfolio DB not available, keeping portfolios in memory", "error", err)
			return repo.NewMemoryRepo(), func() {}
		}
		if err := migration.RunMigrations(ctx, pool, logger); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		return repo.NewPortfolioRepo(pool, logger), pool.Close
	case "sqlite":
		r, err := repo.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			log.Fatalf("sqlite: %v", err)
		}
		return r, func() { _ = r.Close() }
	default:
		return repo.NewMemoryRepo(), func() {}
	}
}

func sweepSessions(ctx context.Context, sessions *usecase.SessionStore, logger *slog.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Sweep(sessionIdle); n > 0 {
				logger.Info("closed idle sessions", "count", n)
			}
		}
	}
}
