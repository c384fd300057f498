package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"belutin-web/internal/config"
	"belutin-web/internal/database"
	"belutin-web/internal/handler"
	"belutin-web/internal/notify"
	"belutin-web/internal/router"
	"belutin-web/internal/service"
	"belutin-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

func main() {
	log := utils.GetLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	utils.SetLogLevel(cfg.LogLevel)

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize Redis (optional - for OTP challenges and the mail queue)
	redisClient, err := database.NewRedis(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, OTP challenges kept in memory and mail sent inline")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	sender, closeSender, err := otpSender(cfg, redisClient != nil, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up OTP delivery")
	}
	defer closeSender()

	// Initialize template engine
	engine := html.New("./views", ".html")
	engine.Reload(!cfg.IsProduction())
	engine.AddFuncMap(handler.TemplateFuncs())

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	// Only the token-authenticated API is cross-origin; pages rely on cookies.
	app.Use("/api", cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Static files
	app.Static("/static", "./public")

	sessions := session.New(session.Config{
		Expiration:     cfg.SessionExpire,
		KeyLookup:      "cookie:belutin_session",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: "Lax",
	})

	// Setup routes
	if err := router.Setup(app, router.Options{
		DB:       db,
		Redis:    redisClient,
		Config:   cfg,
		Sessions: sessions,
		Sender:   sender,
		Logger:   log,
	}); err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := fmt.Sprintf(":%s", cfg.AppPort)
	log.WithField("port", port).Info("Server starting")
	if err := app.Listen(port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	log.Info("Server exited")
}

// otpSender queues codes for the worker when Redis is up and OTP_QUEUE is on,
// and sends them inline otherwise.
func otpSender(cfg *config.Config, haveRedis bool, log *logrus.Logger) (service.OTPSender, func(), error) {
	if cfg.OTPQueue && haveRedis {
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return notify.NewQueueSender(client, log), func() { client.Close() }, nil
	}
	direct, err := notify.Direct(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return direct, func() {}, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		utils.GetLogger().WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	}

	// Check if request expects JSON
	if strings.HasPrefix(c.Path(), "/api/") || c.Accepts("text/html") == "" {
		return c.Status(code).JSON(utils.Response{
			Success: false,
			Message: message,
		})
	}

	// Return HTML error page
	return c.Status(code).Render("error", fiber.Map{
		"Title":   "Terjadi Kesalahan",
		"Code":    code,
		"Message": message,
	}, "layouts/main")
}
