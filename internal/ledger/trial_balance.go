package ledger

import (
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

type TrialBalanceRow struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
}

type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// Balanced reports whether the debit and credit columns agree.
func (r TrialBalanceReport) Balanced() bool {
	return r.TotalDebit.Equal(r.TotalCredit)
}

// TrialBalance lists every account with a nonzero net, sorted by code. A positive
// net lands in the debit column and a negative one in the credit column, so contra
// accounts such as accumulated depreciation show on the credit side.
func TrialBalance(b Balances) TrialBalanceReport {
	report := TrialBalanceReport{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, code := range b.Codes() {
		acc := b[code]
		net := acc.Net()
		if net.IsZero() {
			continue
		}
		row := TrialBalanceRow{
			Code:     code,
			Name:     displayName(acc),
			Category: acc.Category,
			Debit:    decimal.Zero,
			Credit:   decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			report.TotalDebit = report.TotalDebit.Add(net)
		} else {
			row.Credit = net.Neg()
			report.TotalCredit = report.TotalCredit.Add(row.Credit)
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}
