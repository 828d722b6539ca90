package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/field-service/internal/api/http"
	"github.com/spec-kit/field-service/internal/api/http/handlers"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/config"
	"github.com/spec-kit/field-service/internal/events"
	"github.com/spec-kit/field-service/internal/observability"
	"github.com/spec-kit/field-service/internal/persistence"
	"github.com/spec-kit/field-service/internal/repository"
	"github.com/spec-kit/field-service/internal/service"
	"github.com/spec-kit/field-service/internal/worker"
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
	profileRepo := repository.NewProfileRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	accessRequestRepo := repository.NewAccessRequestRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	throttle := auth.NewPinThrottle(redis.ClientHandle(), cfg.Kiosk.MaxAttempts, cfg.Kiosk.WindowMinutes)
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		ProfileRepo: profileRepo,
		ClientRepo:  clientRepo,
		Throttle:    throttle,
	})
	staffService := service.NewStaffService(service.StaffDependencies{
		ProfileRepo: profileRepo,
		ClientRepo:  clientRepo,
		RequestRepo: accessRequestRepo,
		BcryptCost:  cfg.Auth.BcryptCost,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:  ticketRepo,
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
	})
	plannerService := service.NewPlannerService(ticketRepo, profileRepo)
	intakeService := service.NewIntakeService(pool, dispatcher)
	attendanceService := service.NewAttendanceService(attendanceRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), profileRepo, clientRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, intakeService, assignmentService),
		Portal:         handlers.NewClientPortalHandler(ticketService, intakeService),
		Planner:        handlers.NewPlannerHandler(plannerService),
		Clients:        handlers.NewClientsHandler(staffService, clientRepo),
		Assets:         handlers.NewAssetsHandler(assetRepo),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Staff:          handlers.NewStaffHandler(staffService),
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
