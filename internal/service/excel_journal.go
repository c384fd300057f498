package service

import (
	"fmt"
	"io"

	"belutin-web/internal/ledger"

	"github.com/xuri/excelize/v2"
)

const SheetJournal = "Jurnal Umum"

// WriteJournal exports the general journal as a single sheet, one row per line.
func (s *ExcelService) WriteJournal(w io.Writer, owner string, listing *ledger.JournalListing) error {
	f := excelize.NewFile()
	defer f.Close()

	header, bold, money, total, err := s.styles(f)
	if err != nil {
		return fmt.Errorf("failed to create workbook styles: %w", err)
	}
	if _, err := f.NewSheet(SheetJournal); err != nil {
		return fmt.Errorf("failed to add journal sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	sh := &sheet{f: f, name: SheetJournal, row: 1, header: header, bold: bold, money: money, total: total}

	sh.title("Jurnal Umum - " + owner)
	sh.blank()
	sh.headerRow("Tanggal", "Kode Akun", "Nama Akun", "Debit", "Kredit")
	for _, e := range listing.Entries {
		sh.set(1, e.Date, sh.bold)
		sh.set(3, e.Description, sh.bold)
		sh.row++
		writeLines(sh, e.Lines)
	}
	sh.set(3, "Total", sh.bold)
	sh.set(4, listing.TotalDebit, sh.total)
	sh.set(5, listing.TotalCredit, sh.total)
	sh.widths(14, 14, 44, 20, 20)
	if sh.err != nil {
		return fmt.Errorf("failed to write journal sheet: %w", sh.err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
