// Package ledger folds journal records into account balances and derives the
// financial statements from them. Everything here is pure: the same inputs always
// produce the same reports, and nothing is read from or written to the store.
package ledger

import (
	"sort"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

// AccountBalance is the accumulated debit and credit of one account.
type AccountBalance struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    models.Category `json:"category"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// Net is debit minus credit.
func (a AccountBalance) Net() decimal.Decimal {
	return a.TotalDebit.Sub(a.TotalCredit)
}

// Normal is the balance measured on the account's normal side, positive when the
// account carries its usual balance.
func (a AccountBalance) Normal() decimal.Decimal {
	if a.Category.NormalSide() == models.SideCredit {
		return a.TotalCredit.Sub(a.TotalDebit)
	}
	return a.Net()
}

// Balances maps account code to its aggregated balance.
type Balances map[string]AccountBalance

// Codes returns the account codes in ascending order.
func (b Balances) Codes() []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (b Balances) Get(code string) (AccountBalance, bool) {
	a, ok := b[code]
	return a, ok
}

// Net returns debit minus credit for code, zero when the account has no activity.
func (b Balances) Net(code string) decimal.Decimal {
	return b[code].Net()
}

// CreditNet returns credit minus debit for code.
func (b Balances) CreditNet(code string) decimal.Decimal {
	return b[code].Net().Neg()
}

// Apply returns a copy of b with the given lines posted on top. Accounts that are
// new to b take their category from the chart.
func (b Balances) Apply(chart *coa.Chart, lines []models.JournalLine) Balances {
	agg := newAggregator(chart)
	for code, a := range b {
		agg.out[code] = a
	}
	for _, l := range lines {
		agg.add(l.AccountCode, l.AccountName, l.Debit, l.Credit)
	}
	return agg.result()
}

// AggregatePreAdjustment folds opening balances and general journal lines.
func AggregatePreAdjustment(chart *coa.Chart, opening []models.OpeningBalance, entries []models.JournalEntry) Balances {
	agg := newAggregator(chart)
	agg.addOpening(opening)
	agg.addEntries(entries)
	return agg.result()
}

// AggregatePostAdjustment additionally folds adjustment rows. Every row with a
// non-empty ref counts exactly once; IsIndent only affects how a row is displayed.
func AggregatePostAdjustment(chart *coa.Chart, opening []models.OpeningBalance, entries []models.JournalEntry, adjustments []models.AdjustmentEntry) Balances {
	agg := newAggregator(chart)
	agg.addOpening(opening)
	agg.addEntries(entries)
	agg.addAdjustments(adjustments)
	return agg.result()
}

type aggregator struct {
	chart *coa.Chart
	out   Balances
}

func newAggregator(chart *coa.Chart) *aggregator {
	if chart == nil {
		chart = coa.Default()
	}
	return &aggregator{chart: chart, out: make(Balances)}
}

func (a *aggregator) addOpening(opening []models.OpeningBalance) {
	for _, o := range opening {
		a.add(o.AccountCode, o.AccountName, o.Debit, o.Credit)
	}
}

func (a *aggregator) addEntries(entries []models.JournalEntry) {
	for _, e := range entries {
		for _, l := range e.Lines {
			a.add(l.AccountCode, l.AccountName, l.Debit, l.Credit)
		}
	}
}

func (a *aggregator) addAdjustments(adjustments []models.AdjustmentEntry) {
	for _, adj := range adjustments {
		if adj.Ref == "" {
			continue
		}
		a.add(adj.Ref, "", adj.Debit, adj.Credit)
	}
}

// add accumulates one posting. When records disagree on an account's name the
// lexicographically smallest one is kept so the result does not depend on record
// order.
func (a *aggregator) add(code, name string, debit, credit decimal.Decimal) {
	if code == "" {
		return
	}
	bal, ok := a.out[code]
	if !ok {
		bal = AccountBalance{
			Code:        code,
			Category:    a.chart.CategoryOf(code),
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
	}
	if name != "" && (bal.Name == "" || name < bal.Name) {
		bal.Name = name
	}
	bal.TotalDebit = bal.TotalDebit.Add(debit)
	bal.TotalCredit = bal.TotalCredit.Add(credit)
	a.out[code] = bal
}

// result fills names no record supplied from the chart.
func (a *aggregator) result() Balances {
	for code, bal := range a.out {
		if bal.Name != "" {
			continue
		}
		if acc, err := a.chart.Lookup(code); err == nil {
			bal.Name = acc.Name
			a.out[code] = bal
		}
	}
	return a.out
}

// displayName falls back to the code for unknown accounts that never carried a name.
func displayName(a AccountBalance) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Code
}
