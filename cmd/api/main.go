package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hanifnrh/helpdesk-bumi/internal/api/http"
	"github.com/hanifnrh/helpdesk-bumi/internal/api/http/handlers"
	"github.com/hanifnrh/helpdesk-bumi/internal/auth"
	"github.com/hanifnrh/helpdesk-bumi/internal/config"
	"github.com/hanifnrh/helpdesk-bumi/internal/events"
	"github.com/hanifnrh/helpdesk-bumi/internal/mail"
	"github.com/hanifnrh/helpdesk-bumi/internal/observability"
	"github.com/hanifnrh/helpdesk-bumi/internal/persistence"
	"github.com/hanifnrh/helpdesk-bumi/internal/repository"
	"github.com/hanifnrh/helpdesk-bumi/internal/service"
	"github.com/hanifnrh/helpdesk-bumi/internal/storage"
	"github.com/hanifnrh/helpdesk-bumi/internal/taxonomy"
	"github.com/hanifnrh/helpdesk-bumi/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	taxonomyRepo := repository.NewTaxonomyRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	taxonomyLoader := taxonomy.NewLoader(taxonomyRepo, redis.Client, logger, 5*time.Minute)
	attachmentStore := storage.NewClient(cfg.Storage, logger)
	mailer := mail.NewClient(cfg.Mail, logger)
	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		ProfileRepo:       profileRepo,
		PasswordResetRepo: resetRepo,
		Mailer:            mailer,
		Dispatcher:        dispatcher,
		Logger:            logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		Attachments: attachmentStore,
		Taxonomy:    taxonomyLoader,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), profileRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, taxonomyLoader),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService, taxonomyLoader),
		Taxonomy:       handlers.NewTaxonomyHandler(taxonomyLoader),
		Mail:           handlers.NewMailHandler(mailer),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
