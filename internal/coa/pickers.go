package coa

import (
	"strings"

	"belutin-web/internal/models"
)

// SalesAccounts are the eel sales accounts offered on the sale form.
func (c *Chart) SalesAccounts() []models.Account {
	var out []models.Account
	for _, a := range c.ListByNameSubstring("Penjualan Belut") {
		if a.Category == models.CategoryRevenue {
			out = append(out, a)
		}
	}
	return out
}

func (c *Chart) PurchaseAccounts() []models.Account {
	return c.ListByCategory(models.CategoryPurchase)
}

var otherCategories = map[models.Category]bool{
	models.CategoryAsset:        true,
	models.CategoryLiability:    true,
	models.CategoryEquity:       true,
	models.CategoryRevenue:      true,
	models.CategoryExpense:      true,
	models.CategoryOtherRevenue: true,
	models.CategoryOtherExpense: true,
}

// OtherAccounts lists the accounts allowed on the free-form transaction form.
// Inventory moves through adjustments and eel sales through the sale form, so both
// are excluded.
func (c *Chart) OtherAccounts() []models.Account {
	var out []models.Account
	for _, a := range c.accounts {
		if !otherCategories[a.Category] {
			continue
		}
		if strings.Contains(a.Name, "Persediaan") || strings.Contains(a.Name, "Penjualan Belut") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Contains reports whether code is present in accounts.
func Contains(accounts []models.Account, code string) bool {
	for _, a := range accounts {
		if a.Code == code {
			return true
		}
	}
	return false
}

// GroupByCategory splits accounts into CategoryOrder groups, dropping empty ones.
func GroupByCategory(accounts []models.Account) []models.AccountGroup {
	byCat := make(map[models.Category][]models.Account)
	for _, a := range accounts {
		byCat[a.Category] = append(byCat[a.Category], a)
	}
	var groups []models.AccountGroup
	for _, cat := range CategoryOrder {
		if len(byCat[cat]) == 0 {
			continue
		}
		groups = append(groups, models.AccountGroup{Category: cat, Accounts: byCat[cat]})
	}
	return groups
}
