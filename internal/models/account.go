package models

// Category groups accounts for statement derivation.
type Category string

const (
	CategoryAsset        Category = "Aset"
	CategoryLiability    Category = "Liabilitas"
	CategoryEquity       Category = "Ekuitas"
	CategoryRevenue      Category = "Pendapatan"
	CategoryCOGS         Category = "HPP"
	CategoryPurchase     Category = "Pembelian"
	CategoryExpense      Category = "Beban"
	CategoryOtherRevenue Category = "Pendapatan Lain"
	CategoryOtherExpense Category = "Beban Lain"
)

// Side is the normal balance side of an account.
type Side int

const (
	SideDebit Side = iota
	SideCredit
)

func (s Side) String() string {
	if s == SideCredit {
		return "Kredit"
	}
	return "Debit"
}

// NormalSide reports which side increases accounts of this category.
func (c Category) NormalSide() Side {
	switch c {
	case CategoryAsset, CategoryCOGS, CategoryPurchase, CategoryExpense, CategoryOtherExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Nominal accounts are closed to the income summary at period end.
func (c Category) Nominal() bool {
	switch c {
	case CategoryRevenue, CategoryOtherRevenue, CategoryCOGS, CategoryExpense, CategoryOtherExpense:
		return true
	}
	return false
}

type Account struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// AccountGroup is a category heading with its accounts, used by form dropdowns.
type AccountGroup struct {
	Category Category  `json:"category"`
	Accounts []Account `json:"accounts"`
}
