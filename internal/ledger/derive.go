package ledger

import (
	"belutin-web/internal/coa"
	"belutin-web/internal/models"
)

// Book is the raw input of every report: the shared opening balances plus one
// owner's journal and adjustment rows.
type Book struct {
	Opening     []models.OpeningBalance
	Entries     []models.JournalEntry
	Adjustments []models.AdjustmentEntry
}

// Statements bundles every report derived from a Book.
type Statements struct {
	TrialBalance         TrialBalanceReport    `json:"trial_balance"`
	AdjustedTrialBalance TrialBalanceReport    `json:"adjusted_trial_balance"`
	IncomeStatement      IncomeStatementReport `json:"income_statement"`
	EquityStatement      EquityStatementReport `json:"equity_statement"`
	BalanceSheet         BalanceSheetReport    `json:"balance_sheet"`
	CashFlow             CashFlowReport        `json:"cash_flow"`
	Closing              ClosingJournal        `json:"closing"`
	PostClosing          TrialBalanceReport    `json:"post_closing"`
}

func (bk Book) PreAdjustment(chart *coa.Chart) Balances {
	return AggregatePreAdjustment(chart, bk.Opening, bk.Entries)
}

func (bk Book) PostAdjustment(chart *coa.Chart) Balances {
	return AggregatePostAdjustment(chart, bk.Opening, bk.Entries, bk.Adjustments)
}

// Derive computes all statements. Everything after the trial balance works on
// post-adjustment balances.
func Derive(chart *coa.Chart, bk Book) Statements {
	pre := bk.PreAdjustment(chart)
	post := bk.PostAdjustment(chart)
	income := IncomeStatement(post)
	equity := EquityStatement(bk.Opening, post, income)
	return Statements{
		TrialBalance:         TrialBalance(pre),
		AdjustedTrialBalance: TrialBalance(post),
		IncomeStatement:      income,
		EquityStatement:      equity,
		BalanceSheet:         BalanceSheet(post, equity),
		CashFlow:             CashFlow(bk.Opening, bk.Entries, post),
		Closing:              ClosingEntries(chart, post),
		PostClosing:          PostClosingTrialBalance(chart, post),
	}
}
