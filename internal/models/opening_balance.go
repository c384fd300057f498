package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance is shared by all users of the installation.
type OpeningBalance struct {
	ID          int64           `db:"id" json:"id"`
	AccountCode string          `db:"account_code" json:"account_code"`
	AccountName string          `db:"account_name" json:"account_name"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type OpeningBalanceRequest struct {
	AccountCode string `json:"account_code" form:"kode"`
	Debit       string `json:"debit" form:"debit"`
	Credit      string `json:"credit" form:"kredit"`
}

type OpeningBalanceView struct {
	Balances    []OpeningBalance `json:"balances"`
	TotalDebit  decimal.Decimal  `json:"total_debit"`
	TotalCredit decimal.Decimal  `json:"total_credit"`
}
