package handler

import (
	"belutin-web/internal/ledger"
	"belutin-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Report names one statement page: its view, title and the slice of
// Statements it shows.
type Report struct {
	Key   string
	View  string
	Title string
	Pick  func(*ledger.Statements) interface{}
}

var Reports = []Report{
	{"neraca_saldo", "reports/trial_balance", "Neraca Saldo",
		func(s *ledger.Statements) interface{} { return s.TrialBalance }},
	{"neraca_saldo_setelah_penyesuaian", "reports/trial_balance", "Neraca Saldo Setelah Penyesuaian",
		func(s *ledger.Statements) interface{} { return s.AdjustedTrialBalance }},
	{"laporan_laba_rugi", "reports/income", "Laporan Laba Rugi",
		func(s *ledger.Statements) interface{} { return s.IncomeStatement }},
	{"laporan_perubahan_modal", "reports/equity", "Laporan Perubahan Modal",
		func(s *ledger.Statements) interface{} { return s.EquityStatement }},
	{"laporan_posisi_keuangan", "reports/balance_sheet", "Laporan Posisi Keuangan",
		func(s *ledger.Statements) interface{} { return s.BalanceSheet }},
	{"laporan_arus_kas", "reports/cash_flow", "Laporan Arus Kas",
		func(s *ledger.Statements) interface{} { return s.CashFlow }},
	{"jurnal_penutup", "reports/closing", "Jurnal Penutup",
		func(s *ledger.Statements) interface{} { return s.Closing }},
	{"neraca_saldo_penutup", "reports/trial_balance", "Neraca Saldo Setelah Penutupan",
		func(s *ledger.Statements) interface{} { return s.PostClosing }},
}

type ReportHandler struct {
	base
	ledger *service.LedgerService
	excel  *service.ExcelService
}

func NewReportHandler(ledger *service.LedgerService, excel *service.ExcelService, store *session.Store, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{base: base{store: store, logger: logger}, ledger: ledger, excel: excel}
}

// Show returns the handler for one report page.
func (h *ReportHandler) Show(r Report) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := h.ledger.Statements(c.UserContext(), owner(c))
		if err != nil {
			return h.failRead(c, err)
		}
		report := r.Pick(st)
		return h.page(c, r.View, r.Title, report, fiber.Map{"Report": report})
	}
}

// All returns every statement at once.
func (h *ReportHandler) All(c *fiber.Ctx) error {
	st, err := h.ledger.Statements(c.UserContext(), owner(c))
	if err != nil {
		return h.failRead(c, err)
	}
	return h.page(c, "pages/laporan", "Laporan", st, fiber.Map{"Statements": st})
}

func (h *ReportHandler) Export(c *fiber.Ctx) error {
	st, err := h.ledger.Statements(c.UserContext(), owner(c))
	if err != nil {
		return h.failRead(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(h.excel.StatementsFilename())
	if err := h.excel.WriteStatements(c.Response().BodyWriter(), owner(c), st); err != nil {
		h.logger.WithError(err).WithField("owner", owner(c)).Error("Failed to export statements")
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat file Excel")
	}
	return nil
}
