package service

import (
	"context"
	"strings"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/coa"
	"belutin-web/internal/models"
	"belutin-web/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OpeningBalanceService manages the opening balances shared by every user.
type OpeningBalanceService struct {
	balances OpeningBalanceStore
	chart    *coa.Chart
	logger   *logrus.Logger
}

func NewOpeningBalanceService(balances OpeningBalanceStore, chart *coa.Chart, logger *logrus.Logger) *OpeningBalanceService {
	if chart == nil {
		chart = coa.Default()
	}
	return &OpeningBalanceService{balances: balances, chart: chart, logger: logger}
}

func (s *OpeningBalanceService) Create(ctx context.Context, req models.OpeningBalanceRequest) (*models.OpeningBalance, error) {
	code := strings.TrimSpace(req.AccountCode)
	if code == "" {
		return nil, apperrors.Validation("Akun wajib dipilih")
	}
	acc, err := s.chart.Lookup(code)
	if err != nil {
		return nil, apperrors.Validation("Akun tidak ditemukan: " + code)
	}
	debit, err := nonNegative(req.Debit, "Debit")
	if err != nil {
		return nil, err
	}
	credit, err := nonNegative(req.Credit, "Kredit")
	if err != nil {
		return nil, err
	}
	if debit.IsZero() && credit.IsZero() {
		return nil, apperrors.Validation("Isi nilai debit atau kredit")
	}

	ob := &models.OpeningBalance{
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Debit:       debit,
		Credit:      credit,
	}
	if err := s.balances.Create(ctx, ob); err != nil {
		s.logger.WithError(err).WithField("account_code", acc.Code).Error("Failed to store opening balance")
		return nil, err
	}
	return ob, nil
}

func nonNegative(raw, field string) (decimal.Decimal, error) {
	v, err := utils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, apperrors.Validation(field + " harus berupa angka")
	}
	if v.IsNegative() {
		return decimal.Zero, apperrors.Validation(field + " tidak boleh negatif")
	}
	return v, nil
}

func (s *OpeningBalanceService) View(ctx context.Context) (*models.OpeningBalanceView, error) {
	balances, err := s.balances.List(ctx)
	if err != nil {
		return nil, err
	}
	view := &models.OpeningBalanceView{Balances: balances, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, b := range balances {
		view.TotalDebit = view.TotalDebit.Add(b.Debit)
		view.TotalCredit = view.TotalCredit.Add(b.Credit)
	}
	return view, nil
}

func (s *OpeningBalanceService) Delete(ctx context.Context, id int64) error {
	return s.balances.Delete(ctx, id)
}

func (s *OpeningBalanceService) ResetAll(ctx context.Context) (int, error) {
	n, err := s.balances.ResetAll(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("deleted", n).Error("Opening balance reset stopped part way")
		return n, err
	}
	s.logger.WithField("deleted", n).Warn("Opening balances reset")
	return n, nil
}

// Accounts is the full chart, grouped for the account picker.
func (s *OpeningBalanceService) Accounts() []models.AccountGroup {
	return coa.GroupByCategory(s.chart.All())
}
