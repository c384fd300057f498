package handler

import (
	"belutin-web/internal/models"
	"belutin-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

type TransactionHandler struct {
	base
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService, store *session.Store, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{base: base{store: store, logger: logger}, transactions: transactions}
}

func (h *TransactionHandler) Index(c *fiber.Ctx) error {
	forms := h.transactions.Forms()
	return h.page(c, "transactions/index", "Transaksi", forms, fiber.Map{"Forms": forms})
}

func (h *TransactionHandler) ShowSale(c *fiber.Ctx) error {
	return h.render(c, "transactions/sale", "Penjualan", fiber.Map{"Forms": h.transactions.Forms()})
}

func (h *TransactionHandler) ShowPurchase(c *fiber.Ctx) error {
	return h.render(c, "transactions/purchase", "Pembelian", fiber.Map{"Forms": h.transactions.Forms()})
}

func (h *TransactionHandler) ShowOther(c *fiber.Ctx) error {
	return h.render(c, "transactions/other", "Transaksi Lainnya", fiber.Map{"Forms": h.transactions.Forms()})
}

func (h *TransactionHandler) recorded(c *fiber.Ctx, back string, entry *models.RecordedEntry, err error) error {
	if err != nil {
		return h.fail(c, back, err)
	}
	return h.done(c, back, "Transaksi berhasil disimpan: "+entry.Description, entry)
}

func (h *TransactionHandler) RecordSale(c *fiber.Ctx) error {
	const back = "/transaksi/penjualan"
	var req models.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, back, errBadForm)
	}
	entry, err := h.transactions.RecordSale(c.UserContext(), owner(c), req)
	return h.recorded(c, back, entry, err)
}

func (h *TransactionHandler) RecordPurchase(c *fiber.Ctx) error {
	const back = "/transaksi/pembelian"
	var req models.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, back, errBadForm)
	}
	entry, err := h.transactions.RecordPurchase(c.UserContext(), owner(c), req)
	return h.recorded(c, back, entry, err)
}

func (h *TransactionHandler) RecordOther(c *fiber.Ctx) error {
	const back = "/transaksi/lainnya"
	var req models.OtherTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, back, errBadForm)
	}
	entry, err := h.transactions.RecordOther(c.UserContext(), owner(c), req)
	return h.recorded(c, back, entry, err)
}
