// Package coa holds the fixed chart of accounts of the eel farm.
package coa

import (
	"fmt"
	"sort"
	"strings"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/models"
)

// Well-known account codes referenced by posting and statement rules.
const (
	Cash                 = "1-1100"
	Bank                 = "1-1110"
	Receivable           = "1-1200"
	InventoryEelStandard = "1-1410"
	InventoryEelSuper    = "1-1420"
	Supplies             = "1-1600"
	AccumDeprBuilding    = "1-2210"
	AccumDeprVehicle     = "1-2310"
	AccumDeprEquipment   = "1-2410"
	Payable              = "2-1100"
	OwnerCapital         = "3-1100"
	Drawings             = "3-1200"
	IncomeSummary        = "3-1300"
	SalesEelStandard     = "4-1110"
	SalesEelSuper        = "4-1120"
	COGSEelStandard      = "5-1110"
	COGSEelSuper         = "5-1120"
	PurchaseFeedStandard = "5-1310"
	PurchaseFeedSuper    = "5-1320"
	UtilitiesExpense     = "6-1100"
	SuppliesExpense      = "6-1200"
	DepreciationExpense  = "6-1300"
	FeedExpenseStandard  = "6-1410"
	FeedExpenseSuper     = "6-1420"
)

var defaultAccounts = []models.Account{
	{Code: "1-1100", Name: "Kas", Category: models.CategoryAsset},
	{Code: "1-1110", Name: "Kas di Bank", Category: models.CategoryAsset},
	{Code: "1-1200", Name: "Piutang Dagang", Category: models.CategoryAsset},
	{Code: "1-1310", Name: "Persediaan Bibit Belut Standar", Category: models.CategoryAsset},
	{Code: "1-1320", Name: "Persediaan Bibit Belut Super", Category: models.CategoryAsset},
	{Code: "1-1410", Name: "Persediaan Belut Standar", Category: models.CategoryAsset},
	{Code: "1-1420", Name: "Persediaan Belut Super", Category: models.CategoryAsset},
	{Code: "1-1510", Name: "Persediaan Pakan Belut Standar", Category: models.CategoryAsset},
	{Code: "1-1520", Name: "Persediaan Pakan Belut Super", Category: models.CategoryAsset},
	{Code: "1-1600", Name: "Perlengkapan", Category: models.CategoryAsset},
	{Code: "1-2100", Name: "Tanah", Category: models.CategoryAsset},
	{Code: "1-2200", Name: "Bangunan", Category: models.CategoryAsset},
	{Code: "1-2210", Name: "Akumulasi Penyusutan Bangunan", Category: models.CategoryAsset},
	{Code: "1-2300", Name: "Kendaraan", Category: models.CategoryAsset},
	{Code: "1-2310", Name: "Akumulasi Penyusutan Kendaraan", Category: models.CategoryAsset},
	{Code: "1-2400", Name: "Peralatan", Category: models.CategoryAsset},
	{Code: "1-2410", Name: "Akumulasi Penyusutan Peralatan", Category: models.CategoryAsset},

	{Code: "2-1100", Name: "Utang Dagang", Category: models.CategoryLiability},
	{Code: "2-1200", Name: "Utang Biaya", Category: models.CategoryLiability},
	{Code: "2-2100", Name: "Pinjaman Bank BCA", Category: models.CategoryLiability},

	{Code: "3-1100", Name: "Modal Pemilik", Category: models.CategoryEquity},
	{Code: "3-1200", Name: "Prive", Category: models.CategoryEquity},
	{Code: "3-1300", Name: "Ikhtisar Laba Rugi", Category: models.CategoryEquity},

	{Code: "4-1110", Name: "Penjualan Belut Standar", Category: models.CategoryRevenue},
	{Code: "4-1120", Name: "Penjualan Belut Super", Category: models.CategoryRevenue},

	{Code: "5-1110", Name: "Harga Pokok Penjualan Belut Standar", Category: models.CategoryCOGS},
	{Code: "5-1120", Name: "Harga Pokok Penjualan Belut Super", Category: models.CategoryCOGS},

	{Code: "5-1210", Name: "Pembelian Bibit Belut Standar", Category: models.CategoryPurchase},
	{Code: "5-1220", Name: "Pembelian Bibit Belut Super", Category: models.CategoryPurchase},
	{Code: "5-1310", Name: "Pembelian Pakan Belut Standar", Category: models.CategoryPurchase},
	{Code: "5-1320", Name: "Pembelian Pakan Belut Super", Category: models.CategoryPurchase},

	{Code: "6-1100", Name: "Beban Listrik dan Air", Category: models.CategoryExpense},
	{Code: "6-1200", Name: "Beban Perlengkapan", Category: models.CategoryExpense},
	{Code: "6-1300", Name: "Beban Depresiasi", Category: models.CategoryExpense},
	{Code: "6-1410", Name: "Beban Pakan Belut Standar", Category: models.CategoryExpense},
	{Code: "6-1420", Name: "Beban Pakan Belut Super", Category: models.CategoryExpense},
	{Code: "6-1500", Name: "Beban Lain-Lain", Category: models.CategoryExpense},

	{Code: "8-1100", Name: "Pendapatan Bunga", Category: models.CategoryOtherRevenue},
	{Code: "8-1200", Name: "Pendapatan Denda", Category: models.CategoryOtherRevenue},
	{Code: "8-1300", Name: "Pendapatan Lain-Lain", Category: models.CategoryOtherRevenue},

	{Code: "9-1100", Name: "Beban Bunga", Category: models.CategoryOtherExpense},
	{Code: "9-1200", Name: "Beban Administrasi Bank", Category: models.CategoryOtherExpense},
	{Code: "9-1300", Name: "Beban Denda", Category: models.CategoryOtherExpense},
}

// CategoryOrder is the display order of categories in dropdowns and reports.
var CategoryOrder = []models.Category{
	models.CategoryAsset,
	models.CategoryLiability,
	models.CategoryEquity,
	models.CategoryRevenue,
	models.CategoryCOGS,
	models.CategoryPurchase,
	models.CategoryExpense,
	models.CategoryOtherRevenue,
	models.CategoryOtherExpense,
}

// Chart is an immutable account catalog.
type Chart struct {
	accounts []models.Account
	byCode   map[string]models.Account
}

var defaultChart = New(defaultAccounts)

// Default returns the farm's chart of accounts.
func Default() *Chart {
	return defaultChart
}

// New builds a chart from the given accounts. Later duplicates win.
func New(accounts []models.Account) *Chart {
	c := &Chart{byCode: make(map[string]models.Account, len(accounts))}
	for _, a := range accounts {
		c.byCode[a.Code] = a
	}
	c.accounts = make([]models.Account, 0, len(c.byCode))
	for _, a := range c.byCode {
		c.accounts = append(c.accounts, a)
	}
	sort.Slice(c.accounts, func(i, j int) bool { return c.accounts[i].Code < c.accounts[j].Code })
	return c
}

// Lookup finds an account by code.
func (c *Chart) Lookup(code string) (models.Account, error) {
	a, ok := c.byCode[code]
	if !ok {
		return models.Account{}, fmt.Errorf("account %q: %w", code, apperrors.ErrNotFound)
	}
	return a, nil
}

// Name returns the catalog name of code, or code itself when unknown.
func (c *Chart) Name(code string) string {
	if a, ok := c.byCode[code]; ok {
		return a.Name
	}
	return code
}

// All returns every account sorted by code.
func (c *Chart) All() []models.Account {
	out := make([]models.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Chart) ListByCategory(cat models.Category) []models.Account {
	var out []models.Account
	for _, a := range c.accounts {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// ListByNameSubstring matches case-insensitively.
func (c *Chart) ListByNameSubstring(fragment string) []models.Account {
	needle := strings.ToLower(fragment)
	var out []models.Account
	for _, a := range c.accounts {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}
	return out
}

// CategoryOf resolves the category of code, falling back to the code prefix for
// accounts outside the catalog.
func (c *Chart) CategoryOf(code string) models.Category {
	if a, ok := c.byCode[code]; ok {
		return a.Category
	}
	return categoryFromPrefix(code)
}

func categoryFromPrefix(code string) models.Category {
	switch {
	case strings.HasPrefix(code, "1-"):
		return models.CategoryAsset
	case strings.HasPrefix(code, "2-"):
		return models.CategoryLiability
	case strings.HasPrefix(code, "3-"):
		return models.CategoryEquity
	case strings.HasPrefix(code, "4-"):
		return models.CategoryRevenue
	case strings.HasPrefix(code, "5-11"):
		return models.CategoryCOGS
	case strings.HasPrefix(code, "5-"):
		return models.CategoryPurchase
	case strings.HasPrefix(code, "6-"):
		return models.CategoryExpense
	case strings.HasPrefix(code, "8-"):
		return models.CategoryOtherRevenue
	case strings.HasPrefix(code, "9-"):
		return models.CategoryOtherExpense
	}
	return models.CategoryAsset
}
