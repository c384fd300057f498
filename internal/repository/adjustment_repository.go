package repository

import (
	"context"
	"fmt"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type AdjustmentRepository struct {
	db *sqlx.DB
}

func NewAdjustmentRepository(db *sqlx.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db: db}
}

// Create inserts a single adjustment row.
func (r *AdjustmentRepository) Create(ctx context.Context, adj *models.AdjustmentEntry) error {
	query := `INSERT INTO adjustment_journal (no, date, description, ref, debit, credit, is_indent, user_email)
	          VALUES (:no, :date, :description, :ref, :debit, :credit, :is_indent, :user_email)`
	result, err := r.db.NamedExecContext(ctx, query, adj)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment: %w", err)
	}
	id, _ := result.LastInsertId()
	adj.ID = id
	return nil
}

// ListByOwner returns the owner's adjustment rows ordered by no, then id.
func (r *AdjustmentRepository) ListByOwner(ctx context.Context, owner string) ([]models.AdjustmentEntry, error) {
	var rows []models.AdjustmentEntry
	query := `SELECT id, no, date, description, ref, debit, credit, is_indent, user_email
	          FROM adjustment_journal
	          WHERE user_email = ?
	          ORDER BY no ASC, id ASC`
	if err := r.db.SelectContext(ctx, &rows, query, owner); err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return rows, nil
}

func (r *AdjustmentRepository) Delete(ctx context.Context, id int64, owner string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM adjustment_journal WHERE id = ? AND user_email = ?", id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("adjustment %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
