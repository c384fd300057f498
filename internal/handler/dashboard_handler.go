package handler

import (
	"belutin-web/internal/coa"
	"belutin-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	base
	ledger *service.LedgerService
}

func NewDashboardHandler(ledger *service.LedgerService, store *session.Store, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{base: base{store: store, logger: logger}, ledger: ledger}
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	d, err := h.ledger.Dashboard(c.UserContext(), owner(c))
	if err != nil {
		return h.failRead(c, err)
	}
	return h.page(c, "dashboard/index", "Dashboard", d, fiber.Map{"Dashboard": d})
}

// Accounts lists the chart of accounts.
func (h *DashboardHandler) Accounts(c *fiber.Ctx) error {
	groups := coa.GroupByCategory(h.ledger.Chart().All())
	return h.page(c, "pages/akuntansi", "Akuntansi", groups, fiber.Map{"Groups": groups})
}

// Static pages carry no data of their own.

func (h *DashboardHandler) About(c *fiber.Ctx) error {
	return h.render(c, "pages/tentang", "Tentang", nil)
}

func (h *DashboardHandler) ProductInfo(c *fiber.Ctx) error {
	return h.render(c, "pages/informasi_produk", "Informasi Produk", fiber.Map{
		"PriceStandard": service.PriceStandard,
		"PriceSuper":    service.PriceSuper,
	})
}

func (h *DashboardHandler) Reports(c *fiber.Ctx) error {
	return h.render(c, "pages/laporan", "Laporan", nil)
}
