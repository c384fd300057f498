package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// JournalRepository stores general journal entries, one row per entry with its
// lines kept as a JSON document.
type JournalRepository struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

func NewJournalRepository(db *sqlx.DB, logger *logrus.Logger) *JournalRepository {
	return &JournalRepository{db: db, logger: logger}
}

// journalRow is the raw shape of general_journal; lines stay undecoded until
// normalizeRows has looked at them.
type journalRow struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	Date        string    `db:"date"`
	Lines       string    `db:"lines"`
	Owner       string    `db:"user_email"`
	CreatedAt   time.Time `db:"created_at"`
}

const journalColumns = "id, description, date, `lines`, user_email, created_at"

// RecordEntry writes a two-line entry debiting debitCode and crediting creditCode.
// The entry balances by construction; amounts are not validated here.
func (r *JournalRepository) RecordEntry(ctx context.Context, description, date string, debit, credit models.Account, amount decimal.Decimal, owner string) (int64, error) {
	entry := &models.JournalEntry{
		Description: description,
		Date:        date,
		Owner:       owner,
		Lines: models.JournalLines{
			{AccountCode: debit.Code, AccountName: debit.Name, Debit: amount, Credit: decimal.Zero},
			{AccountCode: credit.Code, AccountName: credit.Name, Debit: decimal.Zero, Credit: amount},
		},
	}
	if err := r.Create(ctx, entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

func (r *JournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	query := "INSERT INTO general_journal (description, date, `lines`, user_email) VALUES (:description, :date, :lines, :user_email)"
	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	id, _ := result.LastInsertId()
	entry.ID = id
	return nil
}

// ListByOwner returns the owner's entries ordered by date, then id.
func (r *JournalRepository) ListByOwner(ctx context.Context, owner string) ([]models.JournalEntry, error) {
	var rows []journalRow
	query := "SELECT " + journalColumns + " FROM general_journal WHERE user_email = ? ORDER BY date ASC, id ASC"
	if err := r.db.SelectContext(ctx, &rows, query, owner); err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return r.normalizeRows(rows), nil
}

// ListByOwnerDesc returns one page of the owner's entries, newest first.
func (r *JournalRepository) ListByOwnerDesc(ctx context.Context, owner string, limit, offset int) ([]models.JournalEntry, error) {
	var rows []journalRow
	query := "SELECT " + journalColumns + " FROM general_journal WHERE user_email = ? ORDER BY date DESC, id DESC LIMIT ? OFFSET ?"
	if err := r.db.SelectContext(ctx, &rows, query, owner, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list journal history: %w", err)
	}
	return r.normalizeRows(rows), nil
}

func (r *JournalRepository) FindByID(ctx context.Context, id int64, owner string) (*models.JournalEntry, error) {
	var row journalRow
	query := "SELECT " + journalColumns + " FROM general_journal WHERE id = ? AND user_email = ? LIMIT 1"
	if err := r.db.GetContext(ctx, &row, query, id, owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load journal entry: %w", err)
	}
	entries := r.normalizeRows([]journalRow{row})
	return &entries[0], nil
}

func (r *JournalRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM general_journal WHERE user_email = ?", owner); err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return total, nil
}

// Delete removes one of the owner's entries. Entries of other owners are reported
// as not found.
func (r *JournalRepository) Delete(ctx context.Context, id int64, owner string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM general_journal WHERE id = ? AND user_email = ?", id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("journal entry %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *JournalRepository) DeleteAllByOwner(ctx context.Context, owner string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM general_journal WHERE user_email = ?", owner)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func (r *JournalRepository) normalizeRows(rows []journalRow) []models.JournalEntry {
	entries := make([]models.JournalEntry, 0, len(rows))
	for _, row := range rows {
		lines, ok := models.NormalizeLines(row.Lines)
		if !ok && r.logger != nil {
			r.logger.WithFields(logrus.Fields{
				"entry_id": row.ID,
				"owner":    row.Owner,
			}).Warn("Malformed journal lines, treating entry as empty")
		}
		entries = append(entries, models.JournalEntry{
			ID:          row.ID,
			Description: row.Description,
			Date:        row.Date,
			Lines:       lines,
			Owner:       row.Owner,
			CreatedAt:   row.CreatedAt,
		})
	}
	return entries
}
