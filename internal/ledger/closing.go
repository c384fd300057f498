package ledger

import (
	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

type ClosingEntry struct {
	Description string              `json:"description"`
	Lines       models.JournalLines `json:"lines"`
}

// ClosingJournal is the set of closing entries for the period. It is a report:
// nothing here is ever written back to the journal.
type ClosingJournal struct {
	Entries      []ClosingEntry  `json:"entries"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetIncome    decimal.Decimal `json:"net_income"`
	Drawings     decimal.Decimal `json:"drawings"`
	TotalDebit   decimal.Decimal `json:"total_debit"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
}

// Lines flattens every closing entry.
func (j ClosingJournal) Lines() []models.JournalLine {
	var out []models.JournalLine
	for _, e := range j.Entries {
		out = append(out, e.Lines...)
	}
	return out
}

var (
	revenueCategories = inCategory(models.CategoryRevenue, models.CategoryOtherRevenue)
	expenseCategories = inCategory(models.CategoryCOGS, models.CategoryExpense, models.CategoryOtherExpense)
)

// ClosingEntries closes revenue and expense accounts into the income summary, the
// income summary into owner's capital, and drawings into owner's capital.
func ClosingEntries(chart *coa.Chart, b Balances) ClosingJournal {
	if chart == nil {
		chart = coa.Default()
	}
	j := ClosingJournal{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}

	revenue, totalRevenue := closeGroup(b, revenueCategories)
	if len(revenue) > 0 {
		revenue = append(revenue, summaryLine(chart, totalRevenue))
		j.Entries = append(j.Entries, ClosingEntry{Description: "Menutup akun pendapatan", Lines: revenue})
	}

	expense, totalExpense := closeGroup(b, expenseCategories)
	if len(expense) > 0 {
		// totalExpense is measured on the debit side, so the summary takes the debit.
		expense = append([]models.JournalLine{summaryLine(chart, totalExpense)}, expense...)
		j.Entries = append(j.Entries, ClosingEntry{Description: "Menutup akun beban", Lines: expense})
	}

	j.TotalRevenue = totalRevenue.Neg()
	j.TotalExpense = totalExpense
	j.NetIncome = j.TotalRevenue.Sub(j.TotalExpense)
	if !j.NetIncome.IsZero() {
		j.Entries = append(j.Entries, ClosingEntry{
			Description: "Menutup ikhtisar laba rugi",
			Lines:       transfer(chart, coa.IncomeSummary, coa.OwnerCapital, j.NetIncome),
		})
	}

	j.Drawings = b.Net(coa.Drawings)
	if !j.Drawings.IsZero() {
		j.Entries = append(j.Entries, ClosingEntry{
			Description: "Menutup prive",
			Lines:       transfer(chart, coa.OwnerCapital, coa.Drawings, j.Drawings),
		})
	}

	for _, e := range j.Entries {
		j.TotalDebit = j.TotalDebit.Add(e.Lines.TotalDebit())
		j.TotalCredit = j.TotalCredit.Add(e.Lines.TotalCredit())
	}
	return j
}

// closeGroup emits, for each matching account with a balance, the line that brings
// it to zero. The returned total is the sum of the accounts' nets (debit minus
// credit) before closing.
func closeGroup(b Balances, match func(AccountBalance) bool) ([]models.JournalLine, decimal.Decimal) {
	var lines []models.JournalLine
	total := decimal.Zero
	for _, code := range b.Codes() {
		acc := b[code]
		if !match(acc) {
			continue
		}
		net := acc.Net()
		if net.IsZero() {
			continue
		}
		lines = append(lines, offset(code, displayName(acc), net))
		total = total.Add(net)
	}
	return lines, total
}

// offset returns the line that cancels a net (debit minus credit) balance.
func offset(code, name string, net decimal.Decimal) models.JournalLine {
	l := models.JournalLine{AccountCode: code, AccountName: name, Debit: decimal.Zero, Credit: decimal.Zero}
	if net.IsPositive() {
		l.Credit = net
	} else {
		l.Debit = net.Neg()
	}
	return l
}

// summaryLine posts amount to the income summary: positive is a debit.
func summaryLine(chart *coa.Chart, amount decimal.Decimal) models.JournalLine {
	l := models.JournalLine{
		AccountCode: coa.IncomeSummary,
		AccountName: chart.Name(coa.IncomeSummary),
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	if amount.IsPositive() {
		l.Debit = amount
	} else {
		l.Credit = amount.Neg()
	}
	return l
}

// transfer debits from and credits to by amount, swapping sides when amount is
// negative.
func transfer(chart *coa.Chart, from, to string, amount decimal.Decimal) models.JournalLines {
	if amount.IsNegative() {
		from, to = to, from
		amount = amount.Neg()
	}
	return models.JournalLines{
		{AccountCode: from, AccountName: chart.Name(from), Debit: amount, Credit: decimal.Zero},
		{AccountCode: to, AccountName: chart.Name(to), Debit: decimal.Zero, Credit: amount},
	}
}

// PostClosingTrialBalance is the trial balance after the closing entries have been
// applied; only real accounts remain.
func PostClosingTrialBalance(chart *coa.Chart, b Balances) TrialBalanceReport {
	closing := ClosingEntries(chart, b)
	return TrialBalance(b.Apply(chart, closing.Lines()))
}
