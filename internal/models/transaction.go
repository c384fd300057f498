package models

import "github.com/shopspring/decimal"

// PaymentMethod selects the cash, bank or credit leg of a sale or purchase.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Tunai"
	PaymentTransfer PaymentMethod = "Transfer"
	PaymentCredit   PaymentMethod = "Kredit"
)

type SaleRequest struct {
	Date        string        `json:"date" form:"tanggal"`
	AccountCode string        `json:"account_code" form:"akun"`
	Quantity    string        `json:"quantity" form:"kuantitas"`
	Method      PaymentMethod `json:"method" form:"metode"`
}

type PurchaseRequest struct {
	Date        string        `json:"date" form:"tanggal"`
	AccountCode string        `json:"account_code" form:"akun"`
	Amount      string        `json:"amount" form:"nominal"`
	Method      PaymentMethod `json:"method" form:"metode"`
}

type OtherTransactionRequest struct {
	Date        string `json:"date" form:"tanggal"`
	DebitCode   string `json:"debit_code" form:"akun_debit"`
	CreditCode  string `json:"credit_code" form:"akun_kredit"`
	Amount      string `json:"amount" form:"nominal"`
	Description string `json:"description" form:"keterangan"`
}

// RecordedEntry is returned after a transaction form is posted.
type RecordedEntry struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// HistoryRow is one journal entry rendered for the history page.
type HistoryRow struct {
	Entry   JournalEntry `json:"entry"`
	Summary []string     `json:"summary"`
}
