package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one leg of a journal entry.
type JournalLine struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalLines is the JSON-encoded `lines` column of general_journal.
type JournalLines []JournalLine

// Value stores the lines as a JSON document.
func (l JournalLines) Value() (driver.Value, error) {
	if l == nil {
		l = JournalLines{}
	}
	b, err := json.Marshal([]JournalLine(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal lines: %w", err)
	}
	return string(b), nil
}

// TotalDebit sums the debit legs.
func (l JournalLines) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit legs.
func (l JournalLines) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l {
		total = total.Add(line.Credit)
	}
	return total
}

// Balanced reports whether debits equal credits.
func (l JournalLines) Balanced() bool {
	return l.TotalDebit().Equal(l.TotalCredit())
}

// NormalizeLines turns whatever the store handed back for `lines` into a line list.
// Accepted shapes: a JSON array as string or bytes, a JSON string that itself holds
// an encoded array, a []JournalLine, or a generic []any of maps. Anything else yields
// an empty list and ok=false.
func NormalizeLines(raw any) (lines JournalLines, ok bool) {
	switch v := raw.(type) {
	case nil:
		return JournalLines{}, true
	case JournalLines:
		return v, true
	case []JournalLine:
		return JournalLines(v), true
	case string:
		return decodeLines([]byte(v), true)
	case []byte:
		return decodeLines(v, true)
	case json.RawMessage:
		return decodeLines(v, true)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return JournalLines{}, false
		}
		return decodeLines(b, false)
	}
}

func decodeLines(b []byte, allowNested bool) (JournalLines, bool) {
	if len(b) == 0 {
		return JournalLines{}, true
	}
	var lines []JournalLine
	if err := json.Unmarshal(b, &lines); err == nil {
		if lines == nil {
			lines = []JournalLine{}
		}
		return lines, true
	}
	if allowNested {
		var inner string
		if err := json.Unmarshal(b, &inner); err == nil {
			return decodeLines([]byte(inner), false)
		}
	}
	return JournalLines{}, false
}

// JournalEntry is one row of general_journal.
type JournalEntry struct {
	ID          int64        `db:"id" json:"id"`
	Description string       `db:"description" json:"description"`
	Date        string       `db:"date" json:"date"`
	Lines       JournalLines `db:"lines" json:"lines"`
	Owner       string       `db:"user_email" json:"user_email"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}
