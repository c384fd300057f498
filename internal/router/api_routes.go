package router

import (
	"belutin-web/internal/handler"
	"belutin-web/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
)

func SetupAPIRoutes(router fiber.Router, h *handlers, opts Options, otpLimiter *limiter.Limiter) {
	// Public routes
	auth := router.Group("/auth")
	auth.Post("/register", h.auth.Register)
	auth.Post("/login", h.auth.Login)
	auth.Post("/verify", middleware.RateLimit(otpLimiter, opts.Logger), h.auth.Verify)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(opts.Config))
	protected.Get("/auth/me", h.auth.Me)
	protected.Get("/dashboard", h.dashboard.Show)
	protected.Get("/accounts", h.dashboard.Accounts)

	opening := protected.Group("/opening-balances")
	opening.Get("/", h.opening.Show)
	opening.Post("/", h.opening.Create)
	opening.Delete("/:id", h.opening.Delete)
	opening.Delete("/", h.opening.Reset)

	tx := protected.Group("/transactions")
	tx.Get("/forms", h.transaction.Index)
	tx.Post("/sales", h.transaction.RecordSale)
	tx.Post("/purchases", h.transaction.RecordPurchase)
	tx.Post("/other", h.transaction.RecordOther)

	journal := protected.Group("/journal")
	journal.Get("/", h.ledger.Journal)
	journal.Get("/history", h.ledger.History)
	journal.Delete("/:id", h.ledger.Delete)
	journal.Delete("/", h.ledger.DeleteAll)
	protected.Get("/general-ledger", h.ledger.GeneralLedger)

	adj := protected.Group("/adjustments")
	adj.Get("/templates", h.adjustment.Index)
	adj.Get("/", h.adjustment.View)
	adj.Post("/", h.adjustment.Create)
	adj.Delete("/:id", h.adjustment.Delete)

	reports := protected.Group("/reports")
	reports.Get("/", h.report.All)
	reports.Get("/export", h.report.Export)
	for _, r := range handler.Reports {
		reports.Get("/"+r.Key, h.report.Show(r))
	}
}
