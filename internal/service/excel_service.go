package service

import (
	"fmt"
	"io"
	"time"

	"belutin-web/internal/ledger"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the statements workbook, in order.
const (
	SheetTrialBalance    = "Neraca Saldo"
	SheetAdjustedTrial   = "NS Setelah Penyesuaian"
	SheetIncome          = "Laba Rugi"
	SheetEquity          = "Perubahan Modal"
	SheetBalanceSheet    = "Neraca"
	SheetCashFlow        = "Arus Kas"
	SheetClosing         = "Jurnal Penutup"
	SheetPostClosing     = "NS Setelah Penutupan"
	rupiahNumFmt         = `"Rp "#,##0;("Rp "#,##0)`
	defaultStatementName = "laporan-keuangan"
)

type ExcelService struct {
	now func() time.Time
}

func NewExcelService() *ExcelService {
	return &ExcelService{now: time.Now}
}

// StatementsFilename is the download name for an owner's workbook.
func (s *ExcelService) StatementsFilename() string {
	return fmt.Sprintf("%s-%s.xlsx", defaultStatementName, s.now().Format("20060102-150405"))
}

// sheet appends rows to one worksheet, tracking the current row.
type sheet struct {
	f      *excelize.File
	name   string
	row    int
	header int
	bold   int
	money  int
	total  int
	err    error
}

func (s *ExcelService) styles(f *excelize.File) (header, bold, money, total int, err error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	numFmt := rupiahNumFmt
	if header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: border,
	}); err != nil {
		return
	}
	if bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return
	}
	if money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return
	}
	total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
		Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})
	return
}

func (sh *sheet) set(col int, v interface{}, style int) {
	if sh.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, sh.row)
	if err != nil {
		sh.err = err
		return
	}
	if d, ok := v.(decimal.Decimal); ok {
		v = d.InexactFloat64()
	}
	if sh.err = sh.f.SetCellValue(sh.name, cell, v); sh.err != nil {
		return
	}
	if style != 0 {
		sh.err = sh.f.SetCellStyle(sh.name, cell, cell, style)
	}
}

func (sh *sheet) headerRow(titles ...string) {
	for i, t := range titles {
		sh.set(i+1, t, sh.header)
	}
	sh.row++
}

func (sh *sheet) title(text string) {
	sh.set(1, text, sh.bold)
	sh.row++
}

// line writes a label in column labelCol and an amount right after it.
func (sh *sheet) line(labelCol int, label string, amount decimal.Decimal, style int) {
	sh.set(labelCol, label, 0)
	sh.set(labelCol+1, amount, style)
	sh.row++
}

func (sh *sheet) blank() { sh.row++ }

func (sh *sheet) widths(widths ...float64) {
	for i, w := range widths {
		if sh.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			sh.err = err
			return
		}
		sh.err = sh.f.SetColWidth(sh.name, col, col, w)
	}
}

// WriteStatements renders every statement into one workbook on w.
func (s *ExcelService) WriteStatements(w io.Writer, owner string, st *ledger.Statements) error {
	f := excelize.NewFile()
	defer f.Close()

	header, bold, money, total, err := s.styles(f)
	if err != nil {
		return fmt.Errorf("failed to create workbook styles: %w", err)
	}
	newSheet := func(name string) (*sheet, error) {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
		return &sheet{f: f, name: name, row: 1, header: header, bold: bold, money: money, total: total}, nil
	}

	writers := []struct {
		name  string
		write func(*sheet)
	}{
		{SheetTrialBalance, func(sh *sheet) { writeTrialBalance(sh, owner, "Neraca Saldo", st.TrialBalance) }},
		{SheetAdjustedTrial, func(sh *sheet) {
			writeTrialBalance(sh, owner, "Neraca Saldo Setelah Penyesuaian", st.AdjustedTrialBalance)
		}},
		{SheetIncome, func(sh *sheet) { writeIncome(sh, st.IncomeStatement) }},
		{SheetEquity, func(sh *sheet) { writeEquity(sh, st.EquityStatement) }},
		{SheetBalanceSheet, func(sh *sheet) { writeBalanceSheet(sh, st.BalanceSheet) }},
		{SheetCashFlow, func(sh *sheet) { writeCashFlow(sh, st.CashFlow) }},
		{SheetClosing, func(sh *sheet) { writeClosing(sh, st.Closing) }},
		{SheetPostClosing, func(sh *sheet) {
			writeTrialBalance(sh, owner, "Neraca Saldo Setelah Penutupan", st.PostClosing)
		}},
	}
	for _, wr := range writers {
		sh, err := newSheet(wr.name)
		if err != nil {
			return err
		}
		wr.write(sh)
		if sh.err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", wr.name, sh.err)
		}
	}

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTrialBalance(sh *sheet, owner, title string, tb ledger.TrialBalanceReport) {
	sh.title(fmt.Sprintf("%s - %s", title, owner))
	sh.blank()
	sh.headerRow("Kode Akun", "Nama Akun", "Debit", "Kredit")
	for _, r := range tb.Rows {
		sh.set(1, r.Code, 0)
		sh.set(2, r.Name, 0)
		sh.set(3, r.Debit, sh.money)
		sh.set(4, r.Credit, sh.money)
		sh.row++
	}
	sh.set(2, "Total", sh.bold)
	sh.set(3, tb.TotalDebit, sh.total)
	sh.set(4, tb.TotalCredit, sh.total)
	sh.widths(14, 40, 20, 20)
}

func writeSection(sh *sheet, s ledger.StatementSection) {
	sh.title(s.Title)
	for _, l := range s.Lines {
		sh.line(2, l.Name, l.Amount, sh.money)
	}
	sh.line(2, "Total "+s.Title, s.Total, sh.total)
}

func writeIncome(sh *sheet, r ledger.IncomeStatementReport) {
	sh.title("Laporan Laba Rugi")
	sh.blank()
	writeSection(sh, r.Revenue)
	writeSection(sh, r.COGS)
	sh.line(1, "Laba Kotor", r.GrossProfit, sh.total)
	sh.blank()
	writeSection(sh, r.OperatingExpenses)
	sh.line(1, "Laba Operasional", r.OperatingIncome, sh.total)
	sh.blank()
	writeSection(sh, r.OtherRevenue)
	writeSection(sh, r.OtherExpenses)
	sh.line(1, "Pendapatan (Beban) Lain-lain Bersih", r.OtherNet, sh.total)
	sh.blank()
	label := "Laba Bersih"
	if r.IsLoss() {
		label = "Rugi Bersih"
	}
	sh.line(1, label, r.NetIncome, sh.total)
	sh.widths(36, 40, 20)
}

func writeEquity(sh *sheet, r ledger.EquityStatementReport) {
	sh.title("Laporan Perubahan Modal")
	sh.blank()
	sh.line(1, "Modal Awal", r.OpeningCapital, sh.money)
	sh.line(1, "Tambahan Modal", r.AdditionalCapital, sh.money)
	if !r.OtherEquity.IsZero() {
		sh.line(1, "Ekuitas Lainnya", r.OtherEquity, sh.money)
	}
	sh.line(1, "Laba (Rugi) Bersih", r.NetIncome, sh.money)
	sh.line(1, "Prive", r.Drawings.Neg(), sh.money)
	sh.line(1, "Modal Akhir", r.EndingCapital, sh.total)
	sh.widths(36, 20)
}

func writeBalanceSheet(sh *sheet, r ledger.BalanceSheetReport) {
	sh.title("Neraca")
	sh.blank()
	writeSection(sh, r.CurrentAssets)
	writeSection(sh, r.FixedAssets)
	sh.line(1, "Total Aset", r.TotalAssets, sh.total)
	sh.blank()
	writeSection(sh, r.CurrentLiabilities)
	writeSection(sh, r.LongTermLiabilities)
	sh.line(1, "Total Liabilitas", r.TotalLiabilities, sh.total)
	sh.line(1, "Modal Pemilik", r.Equity, sh.money)
	sh.line(1, "Total Liabilitas dan Ekuitas", r.TotalLiabilitiesAndEquity, sh.total)
	sh.widths(36, 40, 20)
}

var activityTitles = map[ledger.CashFlowActivity]string{
	ledger.Operating: "Arus Kas dari Aktivitas Operasi",
	ledger.Investing: "Arus Kas dari Aktivitas Investasi",
	ledger.Financing: "Arus Kas dari Aktivitas Pendanaan",
}

func writeCashFlow(sh *sheet, r ledger.CashFlowReport) {
	sh.title("Laporan Arus Kas")
	sh.blank()
	for _, sec := range []ledger.CashFlowSection{r.Operating, r.Investing, r.Financing} {
		sh.title(activityTitles[sec.Activity])
		for _, it := range sec.Items {
			sh.line(2, it.Label, it.Amount, sh.money)
		}
		sh.line(2, "Kas Bersih", sec.Net, sh.total)
		sh.blank()
	}
	sh.line(1, "Kenaikan (Penurunan) Kas", r.NetChange, sh.money)
	sh.line(1, "Saldo Kas Awal", r.OpeningCash, sh.money)
	sh.line(1, "Saldo Kas Akhir", r.ComputedEndingCash, sh.total)
	sh.line(1, "Saldo Kas menurut Buku Besar", r.LedgerCash, sh.money)
	if !r.Reconciled() {
		sh.line(1, "Selisih", r.Difference, sh.money)
		sh.blank()
		sh.title("Transaksi Kas Tidak Terklasifikasi")
		sh.headerRow("No. Jurnal", "Tanggal", "Akun Lawan", "Jumlah")
		for _, u := range r.Unclassified {
			sh.set(1, u.EntryID, 0)
			sh.set(2, u.Date, 0)
			sh.set(3, u.AccountName, 0)
			sh.set(4, u.Amount, sh.money)
			sh.row++
		}
	}
	sh.widths(36, 40, 20, 20)
}

func writeClosing(sh *sheet, j ledger.ClosingJournal) {
	sh.title("Jurnal Penutup")
	sh.blank()
	sh.headerRow("Keterangan", "Kode Akun", "Nama Akun", "Debit", "Kredit")
	for _, e := range j.Entries {
		sh.set(1, e.Description, sh.bold)
		sh.row++
		writeLines(sh, e.Lines)
	}
	sh.set(3, "Total", sh.bold)
	sh.set(4, j.TotalDebit, sh.total)
	sh.set(5, j.TotalCredit, sh.total)
	sh.widths(36, 14, 40, 20, 20)
}

func writeLines(sh *sheet, lines models.JournalLines) {
	for _, l := range lines {
		sh.set(2, l.AccountCode, 0)
		name := l.AccountName
		if l.Credit.IsPositive() {
			name = "    " + name
		}
		sh.set(3, name, 0)
		sh.set(4, l.Debit, sh.money)
		sh.set(5, l.Credit, sh.money)
		sh.row++
	}
}
