package service

import (
	"context"
	"fmt"
	"time"

	"belutin-web/internal/coa"
	"belutin-web/internal/ledger"
	"belutin-web/internal/metrics"
	"belutin-web/internal/models"
	"belutin-web/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LedgerService reads an owner's records and derives the reports from them. It
// never writes anything except deletions requested from the history page.
type LedgerService struct {
	journal     JournalStore
	opening     OpeningBalanceStore
	adjustments AdjustmentStore
	chart       *coa.Chart
	logger      *logrus.Logger
}

func NewLedgerService(journal JournalStore, opening OpeningBalanceStore, adjustments AdjustmentStore, chart *coa.Chart, logger *logrus.Logger) *LedgerService {
	if chart == nil {
		chart = coa.Default()
	}
	return &LedgerService{
		journal:     journal,
		opening:     opening,
		adjustments: adjustments,
		chart:       chart,
		logger:      logger,
	}
}

func (s *LedgerService) Chart() *coa.Chart {
	return s.chart
}

// LoadBook reads the global opening balances and the owner's journal and
// adjustment rows.
func (s *LedgerService) LoadBook(ctx context.Context, owner string) (ledger.Book, error) {
	opening, err := s.opening.List(ctx)
	if err != nil {
		return ledger.Book{}, err
	}
	entries, err := s.journal.ListByOwner(ctx, owner)
	if err != nil {
		return ledger.Book{}, err
	}
	adjustments, err := s.adjustments.ListByOwner(ctx, owner)
	if err != nil {
		return ledger.Book{}, err
	}
	return ledger.Book{Opening: opening, Entries: entries, Adjustments: adjustments}, nil
}

func (s *LedgerService) observe(report string, start time.Time) {
	metrics.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// Statements derives every financial statement for the owner.
func (s *LedgerService) Statements(ctx context.Context, owner string) (*ledger.Statements, error) {
	defer s.observe("statements", time.Now())
	bk, err := s.LoadBook(ctx, owner)
	if err != nil {
		return nil, err
	}
	st := ledger.Derive(s.chart, bk)
	if !st.AdjustedTrialBalance.Balanced() {
		s.logger.WithFields(logrus.Fields{
			"owner":  owner,
			"debit":  st.AdjustedTrialBalance.TotalDebit.String(),
			"credit": st.AdjustedTrialBalance.TotalCredit.String(),
		}).Warn("Adjusted trial balance does not balance")
	}
	if !st.CashFlow.Reconciled() {
		s.logger.WithFields(logrus.Fields{
			"owner":        owner,
			"difference":   st.CashFlow.Difference.String(),
			"unclassified": len(st.CashFlow.Unclassified),
		}).Debug("Cash flow does not reconcile with the cash account")
	}
	return &st, nil
}

func (s *LedgerService) GeneralLedger(ctx context.Context, owner string, includeAdjustments bool) ([]ledger.LedgerAccount, error) {
	defer s.observe("general_ledger", time.Now())
	bk, err := s.LoadBook(ctx, owner)
	if err != nil {
		return nil, err
	}
	return ledger.GeneralLedger(s.chart, bk.Opening, bk.Entries, bk.Adjustments, includeAdjustments), nil
}

func (s *LedgerService) Journal(ctx context.Context, owner string) (*ledger.JournalListing, error) {
	defer s.observe("journal", time.Now())
	entries, err := s.journal.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	l := ledger.ListJournal(entries)
	return &l, nil
}

// HistoryPage is one page of the deletable transaction log, newest first.
type HistoryPage struct {
	Rows       []models.HistoryRow  `json:"rows"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

func (s *LedgerService) History(ctx context.Context, owner string, page, limit int) (*HistoryPage, error) {
	total, err := s.journal.CountByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	entries, err := s.journal.ListByOwnerDesc(ctx, owner, limit, utils.GetOffset(page, limit))
	if err != nil {
		return nil, err
	}
	rows := make([]models.HistoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.HistoryRow{Entry: e, Summary: summarize(e.Lines)})
	}
	return &HistoryPage{Rows: rows, Pagination: utils.CalculatePagination(page, limit, total)}, nil
}

// summarize renders each line as "Kas (D) Rp 500.000".
func summarize(lines models.JournalLines) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Debit.IsPositive() {
			out = append(out, fmt.Sprintf("%s (D) %s", l.AccountName, utils.FormatRupiah(l.Debit)))
		}
		if l.Credit.IsPositive() {
			out = append(out, fmt.Sprintf("%s (K) %s", l.AccountName, utils.FormatRupiah(l.Credit)))
		}
	}
	return out
}

func (s *LedgerService) DeleteEntry(ctx context.Context, owner string, id int64) error {
	if err := s.journal.Delete(ctx, id, owner); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"owner": owner, "entry_id": id}).Info("Journal entry deleted")
	return nil
}

func (s *LedgerService) DeleteAllEntries(ctx context.Context, owner string) (int64, error) {
	n, err := s.journal.DeleteAllByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(logrus.Fields{"owner": owner, "deleted": n}).Warn("Journal cleared")
	return n, nil
}

type Dashboard struct {
	Email          string                `json:"email"`
	JournalCount   int64                 `json:"journal_count"`
	CashBalance    decimal.Decimal       `json:"cash_balance"`
	BankBalance    decimal.Decimal       `json:"bank_balance"`
	NetIncome      decimal.Decimal       `json:"net_income"`
	TotalRevenue   decimal.Decimal       `json:"total_revenue"`
	RecentEntries  []models.JournalEntry `json:"recent_entries"`
	BalanceChecked bool                  `json:"balance_checked"`
}

func (s *LedgerService) Dashboard(ctx context.Context, owner string) (*Dashboard, error) {
	defer s.observe("dashboard", time.Now())
	bk, err := s.LoadBook(ctx, owner)
	if err != nil {
		return nil, err
	}
	post := bk.PostAdjustment(s.chart)
	income := ledger.IncomeStatement(post)
	recent := ledger.ListJournal(bk.Entries).Entries
	// newest five, newest first
	latest := make([]models.JournalEntry, 0, 5)
	for i := len(recent) - 1; i >= 0 && len(latest) < 5; i-- {
		latest = append(latest, recent[i])
	}
	return &Dashboard{
		Email:          owner,
		JournalCount:   int64(len(bk.Entries)),
		CashBalance:    post.Net(coa.Cash),
		BankBalance:    post.Net(coa.Bank),
		NetIncome:      income.NetIncome,
		TotalRevenue:   income.Revenue.Total,
		RecentEntries:  latest,
		BalanceChecked: ledger.TrialBalance(post).Balanced(),
	}, nil
}
