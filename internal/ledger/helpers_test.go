package ledger

import (
	"testing"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(id int64, date, desc, debitCode, creditCode, amount string) models.JournalEntry {
	chart := coa.Default()
	amt := dec(amount)
	return models.JournalEntry{
		ID:          id,
		Description: desc,
		Date:        date,
		Owner:       "owner@belut.in",
		Lines: models.JournalLines{
			{AccountCode: debitCode, AccountName: chart.Name(debitCode), Debit: amt, Credit: decimal.Zero},
			{AccountCode: creditCode, AccountName: chart.Name(creditCode), Debit: decimal.Zero, Credit: amt},
		},
	}
}

func openingDebit(id int64, code, amount string) models.OpeningBalance {
	return models.OpeningBalance{ID: id, AccountCode: code, AccountName: coa.Default().Name(code), Debit: dec(amount), Credit: decimal.Zero}
}

func openingCredit(id int64, code, amount string) models.OpeningBalance {
	return models.OpeningBalance{ID: id, AccountCode: code, AccountName: coa.Default().Name(code), Debit: decimal.Zero, Credit: dec(amount)}
}

// adjustmentPair mirrors what the adjustment templates write: a debit row and an
// indented credit row sharing the same number.
func adjustmentPair(firstID int64, no int, date, debitCode, creditCode, amount string) []models.AdjustmentEntry {
	chart := coa.Default()
	amt := dec(amount)
	return []models.AdjustmentEntry{
		{ID: firstID, No: no, Date: date, Description: chart.Name(debitCode), Ref: debitCode, Debit: amt, Credit: decimal.Zero},
		{ID: firstID + 1, No: no, Date: date, Description: chart.Name(creditCode), Ref: creditCode, Debit: decimal.Zero, Credit: amt, IsIndent: true},
	}
}

func assertDecimal(t *testing.T, label, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", label, want, got.String())
}

func assertBalancesEqual(t *testing.T, want, got Balances) {
	t.Helper()
	assert.Equal(t, want.Codes(), got.Codes())
	for code, w := range want {
		g := got[code]
		assert.Equal(t, w.Name, g.Name, code)
		assert.Equal(t, w.Category, g.Category, code)
		assert.True(t, w.TotalDebit.Equal(g.TotalDebit), "%s debit %s != %s", code, w.TotalDebit, g.TotalDebit)
		assert.True(t, w.TotalCredit.Equal(g.TotalCredit), "%s credit %s != %s", code, w.TotalCredit, g.TotalCredit)
	}
}
