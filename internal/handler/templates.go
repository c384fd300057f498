package handler

import (
	"html/template"

	"belutin-web/internal/ledger"
	"belutin-web/internal/utils"

	"github.com/shopspring/decimal"
)

// TemplateFuncs are the helpers the views rely on.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"rupiah": utils.FormatRupiah,
		"date":   utils.FormatDate,
		"nonzero": func(d decimal.Decimal) bool {
			return !d.IsZero()
		},
		"add": func(delta, n int) int {
			return n + delta
		},
		"cashSection": func(title string, s ledger.CashFlowSection) map[string]interface{} {
			return map[string]interface{}{"Title": title, "Section": s}
		},
	}
}
