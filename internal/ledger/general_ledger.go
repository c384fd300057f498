package ledger

import (
	"sort"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

// Posting sources shown in the ledger reference column.
const (
	SourceJournal    = "JU"
	SourceAdjustment = "JP"
)

type LedgerRow struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerAccount is the T-account of one account. Balances are measured on the
// account's normal side.
type LedgerAccount struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       models.Category `json:"category"`
	NormalSide     models.Side     `json:"normal_side"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Rows           []LedgerRow     `json:"rows"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	EndingBalance  decimal.Decimal `json:"ending_balance"`
}

type posting struct {
	date        string
	seq         int
	description string
	source      string
	debit       decimal.Decimal
	credit      decimal.Decimal
}

// GeneralLedger builds one T-account per account with activity, ordered by code.
// Postings are ordered by date; on the same date journal postings precede
// adjustments and otherwise keep their store order.
func GeneralLedger(chart *coa.Chart, opening []models.OpeningBalance, entries []models.JournalEntry, adjustments []models.AdjustmentEntry, includeAdjustments bool) []LedgerAccount {
	if chart == nil {
		chart = coa.Default()
	}
	openings := make(map[string]decimal.Decimal)
	names := make(map[string]string)
	postings := make(map[string][]posting)

	for _, o := range opening {
		openings[o.AccountCode] = openings[o.AccountCode].Add(o.Debit.Sub(o.Credit))
		keepName(names, o.AccountCode, o.AccountName)
	}

	seq := 0
	for _, e := range sortedEntries(entries) {
		for _, l := range e.Lines {
			seq++
			postings[l.AccountCode] = append(postings[l.AccountCode], posting{
				date: e.Date, seq: seq, description: e.Description, source: SourceJournal,
				debit: l.Debit, credit: l.Credit,
			})
			keepName(names, l.AccountCode, l.AccountName)
		}
	}
	if includeAdjustments {
		for _, a := range sortedAdjustments(adjustments) {
			if a.Ref == "" {
				continue
			}
			seq++
			postings[a.Ref] = append(postings[a.Ref], posting{
				date: a.Date, seq: seq, description: a.Description, source: SourceAdjustment,
				debit: a.Debit, credit: a.Credit,
			})
		}
	}

	codes := make(map[string]bool)
	for code := range openings {
		codes[code] = true
	}
	for code := range postings {
		codes[code] = true
	}
	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	accounts := make([]LedgerAccount, 0, len(sorted))
	for _, code := range sorted {
		cat := chart.CategoryOf(code)
		side := cat.NormalSide()
		name := names[code]
		if name == "" {
			name = chart.Name(code)
		}
		acc := LedgerAccount{
			Code:           code,
			Name:           name,
			Category:       cat,
			NormalSide:     side,
			OpeningBalance: signed(side, openings[code]),
			TotalDebit:     decimal.Zero,
			TotalCredit:    decimal.Zero,
		}
		ps := postings[code]
		sort.SliceStable(ps, func(i, j int) bool {
			if ps[i].date != ps[j].date {
				return ps[i].date < ps[j].date
			}
			if ps[i].source != ps[j].source {
				return ps[i].source == SourceJournal
			}
			return ps[i].seq < ps[j].seq
		})
		running := acc.OpeningBalance
		for _, p := range ps {
			running = running.Add(signed(side, p.debit.Sub(p.credit)))
			acc.Rows = append(acc.Rows, LedgerRow{
				Date: p.date, Description: p.description, Source: p.source,
				Debit: p.debit, Credit: p.credit, Balance: running,
			})
			acc.TotalDebit = acc.TotalDebit.Add(p.debit)
			acc.TotalCredit = acc.TotalCredit.Add(p.credit)
		}
		acc.EndingBalance = running
		accounts = append(accounts, acc)
	}
	return accounts
}

func keepName(names map[string]string, code, name string) {
	if name != "" && (names[code] == "" || name < names[code]) {
		names[code] = name
	}
}

// signed converts a debit-minus-credit amount to the given normal side.
func signed(side models.Side, net decimal.Decimal) decimal.Decimal {
	if side == models.SideCredit {
		return net.Neg()
	}
	return net
}

func sortedEntries(entries []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedAdjustments(adjustments []models.AdjustmentEntry) []models.AdjustmentEntry {
	out := make([]models.AdjustmentEntry, len(adjustments))
	copy(out, adjustments)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].No != out[j].No {
			return out[i].No < out[j].No
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// JournalListing is the chronological journal with column totals.
type JournalListing struct {
	Entries     []models.JournalEntry `json:"entries"`
	TotalDebit  decimal.Decimal       `json:"total_debit"`
	TotalCredit decimal.Decimal       `json:"total_credit"`
}

func ListJournal(entries []models.JournalEntry) JournalListing {
	l := JournalListing{Entries: sortedEntries(entries), TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, e := range l.Entries {
		l.TotalDebit = l.TotalDebit.Add(e.Lines.TotalDebit())
		l.TotalCredit = l.TotalCredit.Add(e.Lines.TotalCredit())
	}
	return l
}
