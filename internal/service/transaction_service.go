package service

import (
	"context"
	"fmt"
	"strings"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/coa"
	"belutin-web/internal/metrics"
	"belutin-web/internal/models"
	"belutin-web/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Price per kilogram of live eel.
var (
	PriceStandard = decimal.NewFromInt(50000)
	PriceSuper    = decimal.NewFromInt(65000)
)

// TransactionService turns the three transaction forms into two-line journal
// entries.
type TransactionService struct {
	journal JournalStore
	chart   *coa.Chart
	logger  *logrus.Logger
}

func NewTransactionService(journal JournalStore, chart *coa.Chart, logger *logrus.Logger) *TransactionService {
	if chart == nil {
		chart = coa.Default()
	}
	return &TransactionService{journal: journal, chart: chart, logger: logger}
}

// TransactionForms lists the accounts each form may offer.
type TransactionForms struct {
	SalesAccounts    []models.Account           `json:"sales_accounts"`
	PurchaseAccounts []models.Account           `json:"purchase_accounts"`
	OtherAccounts    []models.AccountGroup      `json:"other_accounts"`
	Methods          []models.PaymentMethod     `json:"methods"`
	Prices           map[string]decimal.Decimal `json:"prices"`
}

func (s *TransactionService) Forms() TransactionForms {
	return TransactionForms{
		SalesAccounts:    s.chart.SalesAccounts(),
		PurchaseAccounts: s.chart.PurchaseAccounts(),
		OtherAccounts:    coa.GroupByCategory(s.chart.OtherAccounts()),
		Methods:          []models.PaymentMethod{models.PaymentCash, models.PaymentTransfer, models.PaymentCredit},
		Prices: map[string]decimal.Decimal{
			coa.SalesEelStandard: PriceStandard,
			coa.SalesEelSuper:    PriceSuper,
		},
	}
}

// unitPrice picks the per-kg price from the grade named by the sales account.
func unitPrice(acc models.Account) decimal.Decimal {
	if strings.Contains(acc.Name, "Super") {
		return PriceSuper
	}
	return PriceStandard
}

// settlementAccount is the debit leg of a sale or the credit leg of a purchase.
func (s *TransactionService) settlementAccount(method models.PaymentMethod, creditCode string) (models.Account, error) {
	switch method {
	case models.PaymentCash:
		return s.chart.Lookup(coa.Cash)
	case models.PaymentTransfer:
		return s.chart.Lookup(coa.Bank)
	case models.PaymentCredit:
		return s.chart.Lookup(creditCode)
	}
	return models.Account{}, apperrors.Validation(fmt.Sprintf("Metode pembayaran tidak dikenal: %q", method))
}

func validateDate(date string) error {
	if date == "" {
		return apperrors.Validation("Tanggal wajib diisi")
	}
	if !utils.ValidDate(date) {
		return apperrors.Validation("Format tanggal harus YYYY-MM-DD")
	}
	return nil
}

func positiveAmount(raw, field string) (decimal.Decimal, error) {
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, apperrors.Validation(fmt.Sprintf("%s harus berupa angka", field))
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.Validation(fmt.Sprintf("%s harus lebih dari 0", field))
	}
	return amount, nil
}

// RecordSale books a sale of Quantity kg at the grade's unit price.
func (s *TransactionService) RecordSale(ctx context.Context, owner string, req models.SaleRequest) (*models.RecordedEntry, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if !coa.Contains(s.chart.SalesAccounts(), req.AccountCode) {
		return nil, apperrors.Validation("Pilih jenis belut yang dijual")
	}
	qty, err := positiveAmount(req.Quantity, "Jumlah (kg)")
	if err != nil {
		return nil, err
	}
	sales, err := s.chart.Lookup(req.AccountCode)
	if err != nil {
		return nil, err
	}
	debit, err := s.settlementAccount(req.Method, coa.Receivable)
	if err != nil {
		return nil, err
	}

	amount := qty.Mul(unitPrice(sales))
	grade := strings.TrimSpace(strings.TrimPrefix(sales.Name, "Penjualan"))
	description := fmt.Sprintf("Penjualan %s - %s kg (%s)", grade, qty.String(), req.Method)
	return s.record(ctx, "sale", owner, description, req.Date, debit, sales, amount)
}

// RecordPurchase debits the purchase account and credits cash, bank or payables.
func (s *TransactionService) RecordPurchase(ctx context.Context, owner string, req models.PurchaseRequest) (*models.RecordedEntry, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if !coa.Contains(s.chart.PurchaseAccounts(), req.AccountCode) {
		return nil, apperrors.Validation("Pilih akun pembelian")
	}
	amount, err := positiveAmount(req.Amount, "Nominal")
	if err != nil {
		return nil, err
	}
	purchase, err := s.chart.Lookup(req.AccountCode)
	if err != nil {
		return nil, err
	}
	credit, err := s.settlementAccount(req.Method, coa.Payable)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Pembelian %s (%s)", purchase.Name, req.Method)
	return s.record(ctx, "purchase", owner, description, req.Date, purchase, credit, amount)
}

// RecordOther books a free-form entry between two distinct allowed accounts.
func (s *TransactionService) RecordOther(ctx context.Context, owner string, req models.OtherTransactionRequest) (*models.RecordedEntry, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	allowed := s.chart.OtherAccounts()
	if !coa.Contains(allowed, req.DebitCode) || !coa.Contains(allowed, req.CreditCode) {
		return nil, apperrors.Validation("Pilih akun debit dan kredit")
	}
	if req.DebitCode == req.CreditCode {
		return nil, apperrors.Validation("Akun debit dan kredit tidak boleh sama")
	}
	amount, err := positiveAmount(req.Amount, "Nominal")
	if err != nil {
		return nil, err
	}
	debit, err := s.chart.Lookup(req.DebitCode)
	if err != nil {
		return nil, err
	}
	credit, err := s.chart.Lookup(req.CreditCode)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Description)
	if text == "" {
		text = fmt.Sprintf("%s ke %s", debit.Name, credit.Name)
	}
	return s.record(ctx, "other", owner, "Transaksi Lainnya: "+text, req.Date, debit, credit, amount)
}

func (s *TransactionService) record(ctx context.Context, kind, owner, description, date string, debit, credit models.Account, amount decimal.Decimal) (*models.RecordedEntry, error) {
	id, err := s.journal.RecordEntry(ctx, description, date, debit, credit, amount, owner)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"kind":  kind,
			"owner": owner,
		}).Error("Failed to record transaction")
		return nil, err
	}
	metrics.TransactionsRecorded.WithLabelValues(kind).Inc()
	s.logger.WithFields(logrus.Fields{
		"kind":     kind,
		"entry_id": id,
		"owner":    owner,
		"amount":   amount.String(),
	}).Info("Transaction recorded")
	return &models.RecordedEntry{ID: id, Description: description, Amount: amount}, nil
}
