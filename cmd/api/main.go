package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/makeup-booking/internal/api/http"
	"github.com/spec-kit/makeup-booking/internal/api/http/handlers"
	"github.com/spec-kit/makeup-booking/internal/auth"
	"github.com/spec-kit/makeup-booking/internal/config"
	"github.com/spec-kit/makeup-booking/internal/events"
	"github.com/spec-kit/makeup-booking/internal/observability"
	"github.com/spec-kit/makeup-booking/internal/persistence"
	"github.com/spec-kit/makeup-booking/internal/repository"
	"github.com/spec-kit/makeup-booking/internal/service"
	"github.com/spec-kit/makeup-booking/internal/worker"
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

	pool := pg.PoolHandle()
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	userRepo := repository.NewUserRepository(pool)
	templateRepo := repository.NewSlotTemplateRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	noShowRepo := repository.NewNoShowRepository(pool)

	if cfg.Postgres.SeedOnEmpty && pool != nil {
		if err := persistence.SeedIfEmpty(ctx, userRepo, templateRepo, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	authService := service.NewAuthService(*cfg, userRepo)
	scheduleService := service.NewScheduleService(cfg.Booking, templateRepo, bookingRepo)
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		Schedule:    scheduleService,
		Dispatcher:  dispatcher,
	})
	attendanceService := service.NewAttendanceService(cfg.Booking, service.AttendanceDependencies{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		NoShowRepo:  noShowRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Bookings:       handlers.NewBookingsHandler(bookingService, scheduleService),
		AdminBookings:  handlers.NewAdminBookingsHandler(bookingService),
		Schedule:       handlers.NewScheduleHandler(scheduleService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
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
