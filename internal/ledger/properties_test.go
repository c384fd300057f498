package ledger

import (
	"math/rand"
	"testing"

	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyBook() Book {
	return Book{
		Opening: []models.OpeningBalance{
			openingDebit(1, coa.Cash, "20000000"),
			openingDebit(2, coa.Bank, "15000000"),
			openingDebit(3, "1-2200", "96000000"),
			openingDebit(4, coa.InventoryEelStandard, "6000000"),
			openingDebit(5, coa.InventoryEelSuper, "4000000"),
			openingCredit(6, "2-2100", "40000000"),
			openingCredit(7, coa.OwnerCapital, "101000000"),
		},
		Entries: []models.JournalEntry{
			entry(1, "2025-01-03", "Penjualan Belut Standar - 40 kg (Tunai)", coa.Cash, coa.SalesEelStandard, "2000000"),
			entry(2, "2025-01-04", "Penjualan Belut Super - 20 kg (Kredit)", coa.Receivable, coa.SalesEelSuper, "1300000"),
			entry(3, "2025-01-05", "Pembelian Pembelian Pakan Belut Standar (Tunai)", coa.PurchaseFeedStandard, coa.Cash, "750000"),
			entry(4, "2025-01-05", "Pembelian Pembelian Pakan Belut Super (Kredit)", coa.PurchaseFeedSuper, coa.Payable, "500000"),
			entry(5, "2025-01-09", "Transaksi Lainnya: listrik", coa.UtilitiesExpense, coa.Cash, "350000"),
			entry(6, "2025-01-12", "Transaksi Lainnya: pelunasan piutang", coa.Cash, coa.Receivable, "1300000"),
			entry(7, "2025-01-15", "Transaksi Lainnya: cicilan pinjaman", "2-2100", coa.Cash, "1000000"),
			entry(8, "2025-01-20", "Transaksi Lainnya: prive", coa.Drawings, coa.Cash, "400000"),
			entry(9, "2025-01-22", "Transaksi Lainnya: bunga bank", coa.Bank, "8-1100", "25000"),
			entry(10, "2025-01-28", "Transaksi Lainnya: setor ke bank", coa.Bank, coa.Cash, "5000000"),
		},
		Adjustments: concat(
			adjustmentPair(1, 1, "2025-01-31", coa.DepreciationExpense, coa.AccumDeprBuilding, "1000000"),
			adjustmentPair(3, 4, "2025-01-31", coa.COGSEelStandard, coa.InventoryEelStandard, "1200000"),
			adjustmentPair(5, 5, "2025-01-31", coa.COGSEelSuper, coa.InventoryEelSuper, "800000"),
			adjustmentPair(7, 6, "2025-01-31", coa.FeedExpenseStandard, coa.PurchaseFeedStandard, "750000"),
			adjustmentPair(9, 7, "2025-01-31", coa.FeedExpenseSuper, coa.PurchaseFeedSuper, "500000"),
		),
	}
}

func concat(groups ...[]models.AdjustmentEntry) []models.AdjustmentEntry {
	var out []models.AdjustmentEntry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func shuffled(r *rand.Rand, bk Book) Book {
	out := Book{
		Opening:     append([]models.OpeningBalance(nil), bk.Opening...),
		Entries:     append([]models.JournalEntry(nil), bk.Entries...),
		Adjustments: append([]models.AdjustmentEntry(nil), bk.Adjustments...),
	}
	r.Shuffle(len(out.Opening), func(i, j int) { out.Opening[i], out.Opening[j] = out.Opening[j], out.Opening[i] })
	r.Shuffle(len(out.Entries), func(i, j int) { out.Entries[i], out.Entries[j] = out.Entries[j], out.Entries[i] })
	r.Shuffle(len(out.Adjustments), func(i, j int) {
		out.Adjustments[i], out.Adjustments[j] = out.Adjustments[j], out.Adjustments[i]
	})
	return out
}

func TestAggregationIgnoresRecordOrder(t *testing.T) {
	chart := coa.Default()
	bk := busyBook()
	wantPre := bk.PreAdjustment(chart)
	wantPost := bk.PostAdjustment(chart)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		s := shuffled(r, bk)
		assertBalancesEqual(t, wantPre, s.PreAdjustment(chart))
		assertBalancesEqual(t, wantPost, s.PostAdjustment(chart))
	}
}

func TestUnknownAccountNameIsOrderIndependent(t *testing.T) {
	a := entry(1, "2025-01-01", "x", "7-1000", coa.Cash, "100")
	a.Lines[0].AccountName = "Zeta"
	b := entry(2, "2025-01-02", "y", "7-1000", coa.Cash, "100")
	b.Lines[0].AccountName = "Alpha"

	forward := AggregatePreAdjustment(nil, nil, []models.JournalEntry{a, b})
	backward := AggregatePreAdjustment(nil, nil, []models.JournalEntry{b, a})

	assert.Equal(t, "Alpha", forward["7-1000"].Name)
	assertBalancesEqual(t, forward, backward)
}

func TestRecordedNameWinsOverCatalog(t *testing.T) {
	e := entry(1, "2025-01-01", "x", coa.Cash, coa.SalesEelStandard, "100")
	e.Lines[0].AccountName = "Kas Kecil"
	b := AggregatePreAdjustment(nil, nil, []models.JournalEntry{e})
	assert.Equal(t, "Kas Kecil", b[coa.Cash].Name)

	adj := adjustmentPair(1, 1, "2025-01-31", coa.DepreciationExpense, coa.AccumDeprBuilding, "10")
	b = AggregatePostAdjustment(nil, nil, nil, adj)
	assert.Equal(t, "Beban Depresiasi", b[coa.DepreciationExpense].Name, "adjustment rows fall back to the chart")
}

func TestTrialBalanceIdentity(t *testing.T) {
	chart := coa.Default()
	s := Derive(chart, busyBook())

	assert.True(t, s.TrialBalance.Balanced(), "pre: %s vs %s", s.TrialBalance.TotalDebit, s.TrialBalance.TotalCredit)
	assert.True(t, s.AdjustedTrialBalance.Balanced(), "post: %s vs %s", s.AdjustedTrialBalance.TotalDebit, s.AdjustedTrialBalance.TotalCredit)
	assert.True(t, s.PostClosing.Balanced())
}

func TestIndentedRowsCountOnce(t *testing.T) {
	adj := adjustmentPair(1, 1, "2025-01-31", coa.DepreciationExpense, coa.AccumDeprBuilding, "250000")
	require.True(t, adj[1].IsIndent)

	b := AggregatePostAdjustment(nil, nil, nil, adj)
	assertDecimal(t, "expense", "250000", b.Net(coa.DepreciationExpense))
	assertDecimal(t, "accumulated", "250000", b.CreditNet(coa.AccumDeprBuilding))

	flat := adjustmentPair(1, 1, "2025-01-31", coa.DepreciationExpense, coa.AccumDeprBuilding, "250000")
	flat[1].IsIndent = false
	assertBalancesEqual(t, b, AggregatePostAdjustment(nil, nil, nil, flat))
}

func TestAdjustmentWithoutRefIsSkipped(t *testing.T) {
	adj := []models.AdjustmentEntry{{ID: 1, No: 1, Date: "2025-01-31", Description: "catatan", Debit: dec("100"), Credit: decimal.Zero}}
	assert.Empty(t, AggregatePostAdjustment(nil, nil, nil, adj))
}

func TestDeriveIsIdempotent(t *testing.T) {
	chart := coa.Default()
	bk := busyBook()
	first := Derive(chart, bk)
	second := Derive(chart, bk)
	assert.Equal(t, first, second)
}

func TestClosingZeroesNominalAccounts(t *testing.T) {
	chart := coa.Default()
	s := Derive(chart, busyBook())
	post := busyBook().PostAdjustment(chart)
	closed := post.Apply(chart, s.Closing.Lines())

	for _, code := range closed.Codes() {
		acc := closed[code]
		if acc.Category.Nominal() || code == coa.Drawings || code == coa.IncomeSummary {
			assert.Truef(t, acc.Net().IsZero(), "%s still carries %s", code, acc.Net())
		}
	}

	want := post.CreditNet(coa.OwnerCapital).Add(s.IncomeStatement.NetIncome).Sub(s.EquityStatement.Drawings)
	assertDecimal(t, "capital after closing", want.String(), closed.CreditNet(coa.OwnerCapital))
	assertDecimal(t, "ending capital", s.EquityStatement.EndingCapital.String(), closed.CreditNet(coa.OwnerCapital))

	for _, row := range s.PostClosing.Rows {
		assert.Falsef(t, row.Category.Nominal(), "nominal account %s left after closing", row.Code)
	}
}

func TestBalanceSheetBalancesOncePurchasesAreCleared(t *testing.T) {
	s := Derive(coa.Default(), busyBook())
	bs := s.BalanceSheet
	assert.True(t, bs.Balanced(), "assets %s vs liabilities+equity %s", bs.TotalAssets, bs.TotalLiabilitiesAndEquity)
}

func TestBalanceSheetOffByOutstandingPurchases(t *testing.T) {
	bk := busyBook()
	// Drop the feed adjustments so the purchase accounts keep their balance.
	bk.Adjustments = bk.Adjustments[:6]
	s := Derive(coa.Default(), bk)
	diff := s.BalanceSheet.TotalLiabilitiesAndEquity.Sub(s.BalanceSheet.TotalAssets)
	assertDecimal(t, "purchases outstanding", "1250000", diff)
}
