package ledger

import (
	"strings"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

// StatementLine is one account shown inside a statement section.
type StatementLine struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type StatementSection struct {
	Title string          `json:"title"`
	Lines []StatementLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// section collects the accounts accepted by match, measured on their normal side.
func section(b Balances, title string, match func(AccountBalance) bool) StatementSection {
	s := StatementSection{Title: title, Total: decimal.Zero}
	for _, code := range b.Codes() {
		acc := b[code]
		if !match(acc) {
			continue
		}
		amount := acc.Normal()
		if amount.IsZero() {
			continue
		}
		s.Lines = append(s.Lines, StatementLine{Code: code, Name: displayName(acc), Amount: amount})
		s.Total = s.Total.Add(amount)
	}
	return s
}

func inCategory(cats ...models.Category) func(AccountBalance) bool {
	return func(a AccountBalance) bool {
		for _, c := range cats {
			if a.Category == c {
				return true
			}
		}
		return false
	}
}

type IncomeStatementReport struct {
	Revenue           StatementSection `json:"revenue"`
	COGS              StatementSection `json:"cogs"`
	GrossProfit       decimal.Decimal  `json:"gross_profit"`
	OperatingExpenses StatementSection `json:"operating_expenses"`
	OperatingIncome   decimal.Decimal  `json:"operating_income"`
	OtherRevenue      StatementSection `json:"other_revenue"`
	OtherExpenses     StatementSection `json:"other_expenses"`
	OtherNet          decimal.Decimal  `json:"other_net"`
	NetIncome         decimal.Decimal  `json:"net_income"`
}

// IsLoss reports a negative net income.
func (r IncomeStatementReport) IsLoss() bool {
	return r.NetIncome.IsNegative()
}

// IncomeStatement derives profit or loss. Purchases stay out of the statement
// until an adjustment moves them into cost of goods sold or feed expense.
func IncomeStatement(b Balances) IncomeStatementReport {
	r := IncomeStatementReport{
		Revenue:           section(b, "Pendapatan", inCategory(models.CategoryRevenue)),
		COGS:              section(b, "Harga Pokok Penjualan", inCategory(models.CategoryCOGS)),
		OperatingExpenses: section(b, "Beban Operasional", inCategory(models.CategoryExpense)),
		OtherRevenue:      section(b, "Pendapatan Lain-Lain", inCategory(models.CategoryOtherRevenue)),
		OtherExpenses:     section(b, "Beban Lain-Lain", inCategory(models.CategoryOtherExpense)),
	}
	r.GrossProfit = r.Revenue.Total.Sub(r.COGS.Total)
	r.OperatingIncome = r.GrossProfit.Sub(r.OperatingExpenses.Total)
	r.OtherNet = r.OtherRevenue.Total.Sub(r.OtherExpenses.Total)
	r.NetIncome = r.OperatingIncome.Add(r.OtherNet)
	return r
}

type EquityStatementReport struct {
	OpeningCapital    decimal.Decimal `json:"opening_capital"`
	AdditionalCapital decimal.Decimal `json:"additional_capital"`
	OtherEquity       decimal.Decimal `json:"other_equity"`
	NetIncome         decimal.Decimal `json:"net_income"`
	Drawings          decimal.Decimal `json:"drawings"`
	EndingCapital     decimal.Decimal `json:"ending_capital"`
}

// EquityStatement rolls owner's capital forward. Opening capital comes from the
// opening balances of the capital account alone; postings to capital during the
// period show as additional capital, and any other equity account (normally only a
// leftover income summary) is carried as other equity.
func EquityStatement(opening []models.OpeningBalance, b Balances, income IncomeStatementReport) EquityStatementReport {
	r := EquityStatementReport{OpeningCapital: decimal.Zero, OtherEquity: decimal.Zero}
	for _, o := range opening {
		if o.AccountCode == coa.OwnerCapital {
			r.OpeningCapital = r.OpeningCapital.Add(o.Credit.Sub(o.Debit))
		}
	}
	r.AdditionalCapital = b.CreditNet(coa.OwnerCapital).Sub(r.OpeningCapital)
	for _, code := range b.Codes() {
		acc := b[code]
		if acc.Category != models.CategoryEquity || code == coa.OwnerCapital || code == coa.Drawings {
			continue
		}
		r.OtherEquity = r.OtherEquity.Add(acc.Normal())
	}
	r.NetIncome = income.NetIncome
	r.Drawings = b.Net(coa.Drawings)
	r.EndingCapital = r.OpeningCapital.
		Add(r.AdditionalCapital).
		Add(r.OtherEquity).
		Add(r.NetIncome).
		Sub(r.Drawings)
	return r
}

type BalanceSheetReport struct {
	CurrentAssets             StatementSection `json:"current_assets"`
	FixedAssets               StatementSection `json:"fixed_assets"`
	TotalAssets               decimal.Decimal  `json:"total_assets"`
	CurrentLiabilities        StatementSection `json:"current_liabilities"`
	LongTermLiabilities       StatementSection `json:"long_term_liabilities"`
	TotalLiabilities          decimal.Decimal  `json:"total_liabilities"`
	Equity                    decimal.Decimal  `json:"equity"`
	TotalLiabilitiesAndEquity decimal.Decimal  `json:"total_liabilities_and_equity"`
}

// Balanced reports whether assets equal liabilities plus equity. It holds whenever
// every posting balances and no purchase account still carries a balance.
func (r BalanceSheetReport) Balanced() bool {
	return r.TotalAssets.Equal(r.TotalLiabilitiesAndEquity)
}

// BalanceSheet groups asset and liability accounts by code prefix and takes equity
// from the ending capital of the equity statement.
func BalanceSheet(b Balances, equity EquityStatementReport) BalanceSheetReport {
	isAsset := inCategory(models.CategoryAsset)
	isLiability := inCategory(models.CategoryLiability)
	r := BalanceSheetReport{
		CurrentAssets: section(b, "Aset Lancar", func(a AccountBalance) bool {
			return isAsset(a) && !strings.HasPrefix(a.Code, "1-2")
		}),
		FixedAssets: section(b, "Aset Tetap", func(a AccountBalance) bool {
			return isAsset(a) && strings.HasPrefix(a.Code, "1-2")
		}),
		CurrentLiabilities: section(b, "Liabilitas Jangka Pendek", func(a AccountBalance) bool {
			return isLiability(a) && !strings.HasPrefix(a.Code, "2-2")
		}),
		LongTermLiabilities: section(b, "Liabilitas Jangka Panjang", func(a AccountBalance) bool {
			return isLiability(a) && strings.HasPrefix(a.Code, "2-2")
		}),
	}
	r.TotalAssets = r.CurrentAssets.Total.Add(r.FixedAssets.Total)
	r.TotalLiabilities = r.CurrentLiabilities.Total.Add(r.LongTermLiabilities.Total)
	r.Equity = equity.EndingCapital
	r.TotalLiabilitiesAndEquity = r.TotalLiabilities.Add(r.Equity)
	return r
}
