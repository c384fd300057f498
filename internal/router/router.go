package router

import (
	"belutin-web/internal/coa"
	"belutin-web/internal/config"
	"belutin-web/internal/handler"
	"belutin-web/internal/middleware"
	"belutin-web/internal/repository"
	"belutin-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Options are the shared resources the routes are built from. Redis is
// optional; without it OTP challenges live in process memory.
type Options struct {
	DB       *sqlx.DB
	Redis    *redis.Client
	Config   *config.Config
	Sessions *session.Store
	Sender   service.OTPSender
	Logger   *logrus.Logger
}

type handlers struct {
	auth        *handler.AuthHandler
	dashboard   *handler.DashboardHandler
	opening     *handler.OpeningBalanceHandler
	transaction *handler.TransactionHandler
	ledger      *handler.LedgerHandler
	adjustment  *handler.AdjustmentHandler
	report      *handler.ReportHandler
}

func newHandlers(opts Options) *handlers {
	chart := coa.Default()
	log := opts.Logger

	userRepo := repository.NewUserRepository(opts.DB)
	journalRepo := repository.NewJournalRepository(opts.DB, log)
	openingRepo := repository.NewOpeningBalanceRepository(opts.DB)
	adjustmentRepo := repository.NewAdjustmentRepository(opts.DB)

	var otpStore service.OTPStore
	if opts.Redis != nil {
		otpStore = service.NewRedisOTPStore(opts.Redis)
	} else {
		log.Warn("Redis unavailable, OTP challenges kept in memory")
		otpStore = service.NewMemoryOTPStore()
	}

	authService := service.NewAuthService(userRepo, otpStore, opts.Sender, opts.Config, log)
	ledgerService := service.NewLedgerService(journalRepo, openingRepo, adjustmentRepo, chart, log)
	excelService := service.NewExcelService()
	store := opts.Sessions

	return &handlers{
		auth:        handler.NewAuthHandler(authService, store, int64(opts.Config.SessionExpire.Seconds()), log),
		dashboard:   handler.NewDashboardHandler(ledgerService, store, log),
		opening:     handler.NewOpeningBalanceHandler(service.NewOpeningBalanceService(openingRepo, chart, log), store, log),
		transaction: handler.NewTransactionHandler(service.NewTransactionService(journalRepo, chart, log), store, log),
		ledger:      handler.NewLedgerHandler(ledgerService, excelService, store, log),
		adjustment:  handler.NewAdjustmentHandler(service.NewAdjustmentService(adjustmentRepo, chart, log), store, log),
		report:      handler.NewReportHandler(ledgerService, excelService, store, log),
	}
}

func Setup(app *fiber.App, opts Options) error {
	app.Use(middleware.Metrics())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if err := opts.DB.PingContext(c.UserContext()); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"app":    opts.Config.AppName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	otpLimiter, err := middleware.NewOTPLimiter(opts.Config.OTPRateLimit)
	if err != nil {
		return err
	}
	h := newHandlers(opts)

	// API routes (JSON)
	SetupAPIRoutes(app.Group("/api/v1"), h, opts, otpLimiter)

	// Web routes (HTML)
	setupWebRoutes(app, h, opts, otpLimiter)
	return nil
}
