package repository

import (
	"context"
	"fmt"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/models"

	"github.com/jmoiron/sqlx"
)

// OpeningBalanceRepository is not owner scoped: every user shares one set of
// opening balances.
type OpeningBalanceRepository struct {
	db *sqlx.DB
}

func NewOpeningBalanceRepository(db *sqlx.DB) *OpeningBalanceRepository {
	return &OpeningBalanceRepository{db: db}
}

func (r *OpeningBalanceRepository) Create(ctx context.Context, ob *models.OpeningBalance) error {
	query := `INSERT INTO opening_balance (account_code, account_name, debit, credit)
	          VALUES (:account_code, :account_name, :debit, :credit)`
	result, err := r.db.NamedExecContext(ctx, query, ob)
	if err != nil {
		return fmt.Errorf("failed to insert opening balance: %w", err)
	}
	id, _ := result.LastInsertId()
	ob.ID = id
	return nil
}

// List returns all opening balances ordered by account code.
func (r *OpeningBalanceRepository) List(ctx context.Context) ([]models.OpeningBalance, error) {
	var balances []models.OpeningBalance
	query := `SELECT id, account_code, account_name, debit, credit, created_at
	          FROM opening_balance
	          ORDER BY account_code ASC, id ASC`
	if err := r.db.SelectContext(ctx, &balances, query); err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}
	return balances, nil
}

func (r *OpeningBalanceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM opening_balance WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete opening balance: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("opening balance %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// ResetAll deletes every opening balance one row at a time and reports how many
// rows went. It is not atomic: an error leaves the rows deleted so far gone.
func (r *OpeningBalanceRepository) ResetAll(ctx context.Context) (int, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM opening_balance"); err != nil {
		return 0, fmt.Errorf("failed to list opening balances: %w", err)
	}
	deleted := 0
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM opening_balance WHERE id = ?", id); err != nil {
			return deleted, fmt.Errorf("failed to delete opening balance %d: %w", id, err)
		}
		deleted++
	}
	return deleted, nil
}
