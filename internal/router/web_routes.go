package router

import (
	"belutin-web/internal/handler"
	"belutin-web/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
)

// setupWebRoutes attaches the session middlewares per route. A prefix-less
// group would apply them to every later route, /api/v1 included.
func setupWebRoutes(app *fiber.App, h *handlers, opts Options, otpLimiter *limiter.Limiter) {
	guest := middleware.GuestMiddleware(opts.Sessions)
	auth := middleware.WebAuthMiddleware(opts.Sessions)

	app.Get("/tentang", h.dashboard.About)
	app.Get("/informasi-produk", h.dashboard.ProductInfo)
	app.Get("/logout", h.auth.Logout)

	app.Get("/login", guest, h.auth.ShowLogin)
	app.Post("/auth", guest, h.auth.Auth)
	app.Get("/verify_otp", guest, h.auth.ShowVerify)
	app.Post("/verify_otp", guest, middleware.RateLimit(otpLimiter, opts.Logger), h.auth.VerifyOTP)

	app.Get("/", auth, h.dashboard.Show)
	app.Get("/dashboard", auth, h.dashboard.Show)
	app.Get("/akuntansi", auth, h.dashboard.Accounts)

	app.Get("/saldo_awal", auth, h.opening.Show)
	app.Post("/saldo_awal", auth, h.opening.Post)

	app.Get("/transaksi", auth, h.transaction.Index)
	app.Get("/transaksi/penjualan", auth, h.transaction.ShowSale)
	app.Post("/transaksi/penjualan", auth, h.transaction.RecordSale)
	app.Get("/transaksi/pembelian", auth, h.transaction.ShowPurchase)
	app.Post("/transaksi/pembelian", auth, h.transaction.RecordPurchase)
	app.Get("/transaksi/lainnya", auth, h.transaction.ShowOther)
	app.Post("/transaksi/lainnya", auth, h.transaction.RecordOther)

	app.Get("/jurnal", auth, h.ledger.Journal)
	app.Get("/jurnal/export", auth, h.ledger.ExportJournal)
	app.Get("/buku_besar", auth, h.ledger.GeneralLedger)
	app.Get("/histori", auth, h.ledger.History)
	app.Post("/histori", auth, h.ledger.PostHistory)

	app.Get("/jurnal_penyesuaian", auth, h.adjustment.Index)
	app.Get("/jurnal_penyesuaian/input", auth, h.adjustment.ShowInput)
	app.Post("/jurnal_penyesuaian/input", auth, h.adjustment.Create)
	app.Get("/jurnal_penyesuaian/view", auth, h.adjustment.View)
	app.Post("/jurnal_penyesuaian/view", auth, h.adjustment.Delete)

	app.Get("/laporan", auth, h.dashboard.Reports)
	app.Get("/laporan/export", auth, h.report.Export)
	for _, r := range handler.Reports {
		app.Get("/"+r.Key, auth, h.report.Show(r))
	}
}
