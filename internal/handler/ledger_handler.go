package handler

import (
	"fmt"

	"belutin-web/internal/service"
	"belutin-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const historyPath = "/histori"

// LedgerHandler serves the journal, the general ledger and the deletable
// transaction history.
type LedgerHandler struct {
	base
	ledger *service.LedgerService
	excel  *service.ExcelService
}

func NewLedgerHandler(ledger *service.LedgerService, excel *service.ExcelService, store *session.Store, logger *logrus.Logger) *LedgerHandler {
	return &LedgerHandler{base: base{store: store, logger: logger}, ledger: ledger, excel: excel}
}

func (h *LedgerHandler) Journal(c *fiber.Ctx) error {
	listing, err := h.ledger.Journal(c.UserContext(), owner(c))
	if err != nil {
		return h.failRead(c, err)
	}
	return h.page(c, "ledger/journal", "Jurnal Umum", listing, fiber.Map{"Journal": listing})
}

func (h *LedgerHandler) ExportJournal(c *fiber.Ctx) error {
	listing, err := h.ledger.Journal(c.UserContext(), owner(c))
	if err != nil {
		return h.failRead(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment("jurnal-umum.xlsx")
	return h.excel.WriteJournal(c.Response().BodyWriter(), owner(c), listing)
}

// GeneralLedger shows every account's postings. ?adj=0 hides adjustment rows.
func (h *LedgerHandler) GeneralLedger(c *fiber.Ctx) error {
	includeAdj := c.Query("adj", "1") != "0"
	accounts, err := h.ledger.GeneralLedger(c.UserContext(), owner(c), includeAdj)
	if err != nil {
		return h.failRead(c, err)
	}
	return h.page(c, "ledger/general_ledger", "Buku Besar", accounts, fiber.Map{
		"Accounts":           accounts,
		"IncludeAdjustments": includeAdj,
	})
}

func (h *LedgerHandler) History(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	page, err := h.ledger.History(c.UserContext(), owner(c), params.Page, params.Limit)
	if err != nil {
		return h.failRead(c, err)
	}
	if isAPI(c) {
		return utils.PaginatedResponseBuilder(c, "Histori Transaksi", page.Rows, page.Pagination)
	}
	return h.page(c, "ledger/history", "Histori Transaksi", page, fiber.Map{
		"History":      page,
		"LimitOptions": utils.GetLimitOptions(),
	})
}

// PostHistory dispatches the history page form: delete or reset_all.
func (h *LedgerHandler) PostHistory(c *fiber.Ctx) error {
	if c.FormValue("action") == "reset_all" {
		return h.DeleteAll(c)
	}
	return h.Delete(c)
}

func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	name := "id"
	if !isAPI(c) {
		name = "entry_id"
	}
	id, err := paramID(c, name)
	if err != nil {
		return h.fail(c, historyPath, err)
	}
	if err := h.ledger.DeleteEntry(c.UserContext(), owner(c), id); err != nil {
		return h.fail(c, historyPath, err)
	}
	return h.done(c, historyPath, "Transaksi berhasil dihapus!", nil)
}

func (h *LedgerHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.ledger.DeleteAllEntries(c.UserContext(), owner(c))
	if err != nil {
		return h.fail(c, historyPath, err)
	}
	return h.done(c, historyPath, fmt.Sprintf("Semua transaksi berhasil dihapus! (%d)", n), fiber.Map{"deleted": n})
}
