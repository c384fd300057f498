package ledger

import (
	"testing"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpeningCashPlusSale(t *testing.T) {
	opening := []models.OpeningBalance{
		openingDebit(1, coa.Cash, "10000000"),
		openingCredit(2, coa.OwnerCapital, "10000000"),
	}
	entries := []models.JournalEntry{
		entry(1, "2025-01-05", "Penjualan Belut Standar - 10 kg (Tunai)", coa.Cash, coa.SalesEelStandard, "500000"),
	}

	tb := TrialBalance(AggregatePreAdjustment(coa.Default(), opening, entries))

	require.Len(t, tb.Rows, 3)
	assert.Equal(t, coa.Cash, tb.Rows[0].Code)
	assertDecimal(t, "cash debit", "10500000", tb.Rows[0].Debit)
	assert.True(t, tb.Rows[0].Credit.IsZero())
	assert.Equal(t, coa.OwnerCapital, tb.Rows[1].Code)
	assertDecimal(t, "capital credit", "10000000", tb.Rows[1].Credit)
	assert.Equal(t, coa.SalesEelStandard, tb.Rows[2].Code)
	assertDecimal(t, "sales credit", "500000", tb.Rows[2].Credit)

	assertDecimal(t, "total debit", "10500000", tb.TotalDebit)
	assertDecimal(t, "total credit", "10500000", tb.TotalCredit)
	assert.True(t, tb.Balanced())
}

func TestPurchaseStaysOutOfIncomeStatement(t *testing.T) {
	entries := []models.JournalEntry{
		entry(1, "2025-01-06", "Pembelian Pembelian Pakan Belut Standar (Kredit)", coa.PurchaseFeedStandard, coa.Payable, "200000"),
	}
	b := AggregatePostAdjustment(coa.Default(), nil, entries, nil)
	income := IncomeStatement(b)

	assert.Empty(t, income.COGS.Lines)
	assert.Empty(t, income.OperatingExpenses.Lines)
	assert.True(t, income.NetIncome.IsZero())

	// Moving the feed into expense through an adjustment makes it show up.
	adj := adjustmentPair(1, 6, "2025-01-31", coa.FeedExpenseStandard, coa.PurchaseFeedStandard, "200000")
	b = AggregatePostAdjustment(coa.Default(), nil, entries, adj)
	income = IncomeStatement(b)
	require.Len(t, income.OperatingExpenses.Lines, 1)
	assert.Equal(t, coa.FeedExpenseStandard, income.OperatingExpenses.Lines[0].Code)
	assertDecimal(t, "net income", "-200000", income.NetIncome)
	assert.True(t, income.IsLoss())
	assert.True(t, b.Net(coa.PurchaseFeedStandard).IsZero(), "purchase cleared by the adjustment")
}

func TestDepreciationAdjustmentAppearsAfterAdjustment(t *testing.T) {
	opening := []models.OpeningBalance{
		openingDebit(1, "1-2200", "24000000"),
		openingCredit(2, coa.OwnerCapital, "24000000"),
	}
	adj := adjustmentPair(1, 1, "2025-01-31", coa.DepreciationExpense, coa.AccumDeprBuilding, "250000")

	pre := TrialBalance(AggregatePreAdjustment(coa.Default(), opening, nil))
	post := TrialBalance(AggregatePostAdjustment(coa.Default(), opening, nil, adj))

	assert.Len(t, pre.Rows, 2)
	require.Len(t, post.Rows, 4)
	assert.True(t, pre.Balanced())
	assert.True(t, post.Balanced())

	var accum, expense TrialBalanceRow
	for _, r := range post.Rows {
		switch r.Code {
		case coa.AccumDeprBuilding:
			accum = r
		case coa.DepreciationExpense:
			expense = r
		}
	}
	assertDecimal(t, "accumulated depreciation credit", "250000", accum.Credit)
	assertDecimal(t, "depreciation expense debit", "250000", expense.Debit)
}

func scenarioFourBook() Book {
	return Book{
		Opening: []models.OpeningBalance{
			openingDebit(1, coa.Cash, "5000000"),
			openingDebit(2, coa.InventoryEelStandard, "4000000"),
			openingCredit(3, coa.OwnerCapital, "9000000"),
		},
		Entries: []models.JournalEntry{
			entry(1, "2025-01-10", "Penjualan", coa.Cash, coa.SalesEelStandard, "10000000"),
			entry(2, "2025-01-15", "Listrik", coa.UtilitiesExpense, coa.Cash, "3000000"),
		},
		Adjustments: adjustmentPair(1, 4, "2025-01-31", coa.COGSEelStandard, coa.InventoryEelStandard, "4000000"),
	}
}

func TestIncomeStatementAndClosing(t *testing.T) {
	chart := coa.Default()
	bk := scenarioFourBook()
	s := Derive(chart, bk)

	income := s.IncomeStatement
	assertDecimal(t, "revenue", "10000000", income.Revenue.Total)
	assertDecimal(t, "cogs", "4000000", income.COGS.Total)
	assertDecimal(t, "gross profit", "6000000", income.GrossProfit)
	assertDecimal(t, "operating expenses", "3000000", income.OperatingExpenses.Total)
	assertDecimal(t, "operating income", "3000000", income.OperatingIncome)
	assertDecimal(t, "net income", "3000000", income.NetIncome)
	assert.False(t, income.IsLoss())

	closing := s.Closing
	require.Len(t, closing.Entries, 3)

	rev := closing.Entries[0].Lines
	require.Len(t, rev, 2)
	assert.Equal(t, coa.SalesEelStandard, rev[0].AccountCode)
	assertDecimal(t, "close sales", "10000000", rev[0].Debit)
	assert.Equal(t, coa.IncomeSummary, rev[1].AccountCode)
	assertDecimal(t, "summary credit", "10000000", rev[1].Credit)

	exp := closing.Entries[1].Lines
	require.Len(t, exp, 3)
	assert.Equal(t, coa.IncomeSummary, exp[0].AccountCode)
	assertDecimal(t, "summary debit", "7000000", exp[0].Debit)
	assert.Equal(t, coa.COGSEelStandard, exp[1].AccountCode)
	assertDecimal(t, "close cogs", "4000000", exp[1].Credit)
	assert.Equal(t, coa.UtilitiesExpense, exp[2].AccountCode)
	assertDecimal(t, "close utilities", "3000000", exp[2].Credit)

	summary := closing.Entries[2].Lines
	require.Len(t, summary, 2)
	assert.Equal(t, coa.IncomeSummary, summary[0].AccountCode)
	assertDecimal(t, "summary to capital", "3000000", summary[0].Debit)
	assert.Equal(t, coa.OwnerCapital, summary[1].AccountCode)
	assertDecimal(t, "capital credit", "3000000", summary[1].Credit)

	assert.True(t, closing.TotalDebit.Equal(closing.TotalCredit))
	for _, e := range closing.Entries {
		assert.True(t, e.Lines.Balanced(), e.Description)
	}
}

func TestEquityAndBalanceSheet(t *testing.T) {
	bk := scenarioFourBook()
	bk.Entries = append(bk.Entries, entry(3, "2025-01-20", "Prive", coa.Drawings, coa.Cash, "500000"))
	s := Derive(coa.Default(), bk)

	eq := s.EquityStatement
	assertDecimal(t, "opening capital", "9000000", eq.OpeningCapital)
	assert.True(t, eq.AdditionalCapital.IsZero())
	assertDecimal(t, "net income", "3000000", eq.NetIncome)
	assertDecimal(t, "drawings", "500000", eq.Drawings)
	assertDecimal(t, "ending capital", "11500000", eq.EndingCapital)

	bs := s.BalanceSheet
	// 5,000,000 + 10,000,000 - 3,000,000 - 500,000
	assertDecimal(t, "total assets", "11500000", bs.TotalAssets)
	assert.True(t, bs.TotalLiabilities.IsZero())
	assertDecimal(t, "equity", "11500000", bs.Equity)
	assert.True(t, bs.Balanced())
	require.Len(t, bs.CurrentAssets.Lines, 1, "inventory was fully moved to cost of goods sold")
	assert.Equal(t, coa.Cash, bs.CurrentAssets.Lines[0].Code)
}

func TestBalanceSheetGroupsByPrefix(t *testing.T) {
	opening := []models.OpeningBalance{
		openingDebit(1, coa.Cash, "1000000"),
		openingDebit(2, "1-2300", "80000000"),
		openingCredit(3, coa.AccumDeprVehicle, "20000000"),
		openingCredit(4, coa.Payable, "3000000"),
		openingCredit(5, "2-2100", "18000000"),
		openingCredit(6, coa.OwnerCapital, "40000000"),
	}
	b := AggregatePostAdjustment(coa.Default(), opening, nil, nil)
	income := IncomeStatement(b)
	bs := BalanceSheet(b, EquityStatement(opening, b, income))

	assertDecimal(t, "current assets", "1000000", bs.CurrentAssets.Total)
	assertDecimal(t, "fixed assets", "60000000", bs.FixedAssets.Total)
	require.Len(t, bs.FixedAssets.Lines, 2)
	assertDecimal(t, "contra account", "-20000000", bs.FixedAssets.Lines[1].Amount)
	assertDecimal(t, "current liabilities", "3000000", bs.CurrentLiabilities.Total)
	assertDecimal(t, "long-term liabilities", "18000000", bs.LongTermLiabilities.Total)
	assertDecimal(t, "liabilities and equity", "61000000", bs.TotalLiabilitiesAndEquity)
	assert.True(t, bs.Balanced())
}

func TestNetLossClosesIntoCapitalDebit(t *testing.T) {
	chart := coa.Default()
	entries := []models.JournalEntry{
		entry(1, "2025-02-01", "Penjualan", coa.Cash, coa.SalesEelSuper, "1000000"),
		entry(2, "2025-02-02", "Bunga", "9-1100", coa.Cash, "1500000"),
	}
	b := AggregatePostAdjustment(chart, nil, entries, nil)
	j := ClosingEntries(chart, b)

	assertDecimal(t, "net income", "-500000", j.NetIncome)
	last := j.Entries[len(j.Entries)-1]
	require.Len(t, last.Lines, 2)
	assert.Equal(t, coa.OwnerCapital, last.Lines[0].AccountCode)
	assertDecimal(t, "capital debit", "500000", last.Lines[0].Debit)
	assert.Equal(t, coa.IncomeSummary, last.Lines[1].AccountCode)
	assertDecimal(t, "summary credit", "500000", last.Lines[1].Credit)
}
