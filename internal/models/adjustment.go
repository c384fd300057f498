package models

import (
	"github.com/shopspring/decimal"
)

// AdjustmentEntry is one row of adjustment_journal. A template writes a debit row and
// an indented credit row sharing the same No.
type AdjustmentEntry struct {
	ID          int64           `db:"id" json:"id"`
	No          int             `db:"no" json:"no"`
	Date        string          `db:"date" json:"date"`
	Description string          `db:"description" json:"description"`
	Ref         string          `db:"ref" json:"ref"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
	IsIndent    bool            `db:"is_indent" json:"is_indent"`
	Owner       string          `db:"user_email" json:"user_email"`
}

// AdjustmentRequest carries the raw template inputs. Each field may hold a small
// arithmetic expression such as "1500000+300000". When Type names a template only
// that template's field is read.
type AdjustmentRequest struct {
	Date         string `json:"date" form:"tanggal"`
	Type         string `json:"type" form:"jurnal_type"`
	Building     string `json:"building_cost" form:"harga_bangunan"`
	Vehicle      string `json:"vehicle_cost" form:"harga_kendaraan"`
	Equipment    string `json:"equipment_cost" form:"harga_peralatan"`
	HPPStandar   string `json:"hpp_standar" form:"hpp_standar"`
	HPPSuper     string `json:"hpp_super" form:"hpp_super"`
	PakanStandar string `json:"pakan_standar" form:"pakan_standar"`
	PakanSuper   string `json:"pakan_super" form:"pakan_super"`
}

// AdjustmentView is the listing shown on the adjustment page.
type AdjustmentView struct {
	Entries     []AdjustmentEntry `json:"entries"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}
