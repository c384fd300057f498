package ledger

import (
	"strings"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

type CashFlowActivity string

const (
	Operating CashFlowActivity = "operating"
	Investing CashFlowActivity = "investing"
	Financing CashFlowActivity = "financing"
)

// CashFlowItem is a labelled total. Amount is signed: receipts are positive and
// payments negative.
type CashFlowItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type CashFlowSection struct {
	Activity CashFlowActivity `json:"activity"`
	Items    []CashFlowItem   `json:"items"`
	Net      decimal.Decimal  `json:"net"`
}

// UnclassifiedFlow is a cash movement whose counter account matches no rule.
type UnclassifiedFlow struct {
	EntryID     int64           `json:"entry_id"`
	Date        string          `json:"date"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

type CashFlowReport struct {
	Operating          CashFlowSection    `json:"operating"`
	Investing          CashFlowSection    `json:"investing"`
	Financing          CashFlowSection    `json:"financing"`
	Unclassified       []UnclassifiedFlow `json:"unclassified"`
	OpeningCash        decimal.Decimal    `json:"opening_cash"`
	NetChange          decimal.Decimal    `json:"net_change"`
	ComputedEndingCash decimal.Decimal    `json:"computed_ending_cash"`
	LedgerCash         decimal.Decimal    `json:"ledger_cash"`
	Difference         decimal.Decimal    `json:"difference"`
}

// Reconciled reports whether the classified flows explain the cash account.
func (r CashFlowReport) Reconciled() bool {
	return r.Difference.IsZero()
}

type cashRule struct {
	activity CashFlowActivity
	label    string
	match    func(code string, inflow bool) bool
}

func prefixed(prefixes ...string) func(string) bool {
	return func(code string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(code, p) {
				return true
			}
		}
		return false
	}
}

func oneOf(codes ...string) func(string) bool {
	return func(code string) bool {
		for _, c := range codes {
			if code == c {
				return true
			}
		}
		return false
	}
}

var accumulatedDepreciation = oneOf(coa.AccumDeprBuilding, coa.AccumDeprVehicle, coa.AccumDeprEquipment)

// cashRules is evaluated top to bottom against the counter leg of every cash
// posting; the first match wins.
var cashRules = []cashRule{
	{Operating, "Penerimaan dari pelanggan", func(c string, in bool) bool {
		return in && (prefixed("4-")(c) || c == coa.Receivable)
	}},
	{Operating, "Penerimaan pendapatan lain", func(c string, in bool) bool {
		return in && prefixed("8-")(c)
	}},
	{Operating, "Pembayaran kepada pemasok", func(c string, in bool) bool {
		return !in && (prefixed("5-")(c) || c == coa.Payable)
	}},
	{Operating, "Pembayaran perlengkapan", func(c string, in bool) bool {
		return !in && oneOf(coa.Supplies, coa.SuppliesExpense)(c)
	}},
	{Operating, "Pembayaran listrik dan air", func(c string, in bool) bool {
		return !in && c == coa.UtilitiesExpense
	}},
	{Operating, "Pembayaran beban lainnya", func(c string, in bool) bool {
		return !in && prefixed("6-", "9-", "2-1")(c)
	}},
	{Investing, "Pembelian aset tetap", func(c string, in bool) bool {
		return !in && prefixed("1-2")(c) && !accumulatedDepreciation(c)
	}},
	{Investing, "Penjualan aset tetap", func(c string, in bool) bool {
		return in && prefixed("1-2")(c) && !accumulatedDepreciation(c)
	}},
	{Financing, "Penerimaan pinjaman", func(c string, in bool) bool {
		return in && prefixed("2-2")(c)
	}},
	{Financing, "Pembayaran pinjaman", func(c string, in bool) bool {
		return !in && prefixed("2-2")(c)
	}},
	{Financing, "Setoran modal", func(c string, in bool) bool {
		return in && c == coa.OwnerCapital
	}},
	{Financing, "Pengambilan prive", func(c string, in bool) bool {
		return !in && c == coa.Drawings
	}},
}

// CashFlow builds a direct-method cash flow statement for the Kas account. Only
// general journal entries carrying a Kas leg are considered; each other leg of such
// an entry is classified by cashRules. Ending cash is computed from the opening
// balance plus the classified flows and compared against the ledger balance of Kas.
func CashFlow(opening []models.OpeningBalance, entries []models.JournalEntry, b Balances) CashFlowReport {
	sums := make(map[string]decimal.Decimal)
	var unclassified []UnclassifiedFlow

	for _, e := range entries {
		if !touchesCash(e.Lines) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountCode == coa.Cash {
				continue
			}
			amount := l.Credit.Sub(l.Debit)
			if amount.IsZero() {
				continue
			}
			rule, ok := classify(l.AccountCode, amount.IsPositive())
			if !ok {
				unclassified = append(unclassified, UnclassifiedFlow{
					EntryID:     e.ID,
					Date:        e.Date,
					AccountCode: l.AccountCode,
					AccountName: l.AccountName,
					Amount:      amount,
				})
				continue
			}
			sums[rule.label] = sums[rule.label].Add(amount)
		}
	}

	r := CashFlowReport{
		Operating:    buildSection(Operating, sums),
		Investing:    buildSection(Investing, sums),
		Financing:    buildSection(Financing, sums),
		Unclassified: unclassified,
		OpeningCash:  decimal.Zero,
	}
	for _, o := range opening {
		if o.AccountCode == coa.Cash {
			r.OpeningCash = r.OpeningCash.Add(o.Debit.Sub(o.Credit))
		}
	}
	r.NetChange = r.Operating.Net.Add(r.Investing.Net).Add(r.Financing.Net)
	r.ComputedEndingCash = r.OpeningCash.Add(r.NetChange)
	r.LedgerCash = b.Net(coa.Cash)
	r.Difference = r.LedgerCash.Sub(r.ComputedEndingCash)
	return r
}

func touchesCash(lines models.JournalLines) bool {
	for _, l := range lines {
		if l.AccountCode == coa.Cash {
			return true
		}
	}
	return false
}

func classify(code string, inflow bool) (cashRule, bool) {
	for _, rule := range cashRules {
		if rule.match(code, inflow) {
			return rule, true
		}
	}
	return cashRule{}, false
}

// buildSection lists every rule of the activity in table order, including those
// with no movement, so the statement layout is stable.
func buildSection(activity CashFlowActivity, sums map[string]decimal.Decimal) CashFlowSection {
	s := CashFlowSection{Activity: activity, Net: decimal.Zero}
	for _, rule := range cashRules {
		if rule.activity != activity {
			continue
		}
		amount := sums[rule.label]
		s.Items = append(s.Items, CashFlowItem{Label: rule.label, Amount: amount})
		s.Net = s.Net.Add(amount)
	}
	return s
}
