package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/marketplace-backoffice/internal/application/analytics"
	"github.com/jhoicas/marketplace-backoffice/internal/application/auth"
	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
	"github.com/jhoicas/marketplace-backoffice/internal/infrastructure/metrics"
	infraoidc "github.com/jhoicas/marketplace-backoffice/internal/infrastructure/oidc"
	"github.com/jhoicas/marketplace-backoffice/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/marketplace-backoffice/internal/infrastructure/redis"
	"github.com/jhoicas/marketplace-backoffice/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/marketplace-backoffice/internal/interfaces/http"
	"github.com/jhoicas/marketplace-backoffice/pkg/config"
	"github.com/jhoicas/marketplace-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("arranque fallido")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arranca la API y bloquea hasta SIGINT/SIGTERM. Un error de arranque vuelve a main
// después de cerrar lo que ya estuviera abierto.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()

	if cfg.App.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("esquema al día")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	// Sesiones por cookie solo si hay Redis; sin él la API funciona con Bearer.
	var sessions repository.SessionRepository
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("conexión a Redis: %w", err)
		}
		defer rdb.Close()
		sessions = infraredis.NewSessionStore(rdb)
	} else {
		log.Warn().Msg("REDIS_URL vacío: sesiones por cookie deshabilitadas")
	}

	var federated httpRouter.FederatedProvider
	if cfg.OIDC.Enabled() {
		provider, err := infraoidc.New(ctx, cfg.OIDC)
		if err != nil {
			return fmt.Errorf("proveedor OIDC: %w", err)
		}
		federated = provider
		log.Info().Str("issuer", cfg.OIDC.IssuerURL).Msg("login federado habilitado")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	messageRepo := postgres.NewContactMessageRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Session.TTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		CORSOrigins:    cfg.App.CORSOrigins,
		DocsPath:       cfg.App.DocsPath,
		Recorder:       metrics.NewCollector(registry),
		MetricsHandler: metrics.Handler(registry),
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(productRepo),
		CategoryUC: usecase.NewCategoryUseCase(categoryRepo),
		OrderUC:    usecase.NewOrderUseCase(orderRepo),
		MessageUC:  usecase.NewContactMessageUseCase(messageRepo, security.NewContentSanitizer()),
		UserUC:     usecase.NewUserUseCase(userRepo),
		StatsUC:    analytics.NewStatsUseCase(statsRepo, cfg.Catalog.LowStockThreshold),
		OIDC:       federated,
		Session: httpRouter.SessionCookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.App.IsProduction(),
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}
