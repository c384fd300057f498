package service

import (
	"context"

	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
)

// The repositories in internal/repository satisfy these; tests substitute mocks.

type JournalStore interface {
	RecordEntry(ctx context.Context, description, date string, debit, credit models.Account, amount decimal.Decimal, owner string) (int64, error)
	ListByOwner(ctx context.Context, owner string) ([]models.JournalEntry, error)
	ListByOwnerDesc(ctx context.Context, owner string, limit, offset int) ([]models.JournalEntry, error)
	CountByOwner(ctx context.Context, owner string) (int64, error)
	Delete(ctx context.Context, id int64, owner string) error
	DeleteAllByOwner(ctx context.Context, owner string) (int64, error)
}

type OpeningBalanceStore interface {
	Create(ctx context.Context, ob *models.OpeningBalance) error
	List(ctx context.Context) ([]models.OpeningBalance, error)
	Delete(ctx context.Context, id int64) error
	ResetAll(ctx context.Context) (int, error)
}

type AdjustmentStore interface {
	Create(ctx context.Context, adj *models.AdjustmentEntry) error
	ListByOwner(ctx context.Context, owner string) ([]models.AdjustmentEntry, error)
	Delete(ctx context.Context, id int64, owner string) error
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}
