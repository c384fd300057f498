package service

import (
	"context"
	"time"

	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockJournalStore struct {
	mock.Mock
}

func (m *mockJournalStore) RecordEntry(ctx context.Context, description, date string, debit, credit models.Account, amount decimal.Decimal, owner string) (int64, error) {
	args := m.Called(ctx, description, date, debit, credit, amount, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJournalStore) ListByOwner(ctx context.Context, owner string) ([]models.JournalEntry, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]models.JournalEntry), args.Error(1)
}

func (m *mockJournalStore) ListByOwnerDesc(ctx context.Context, owner string, limit, offset int) ([]models.JournalEntry, error) {
	args := m.Called(ctx, owner, limit, offset)
	return args.Get(0).([]models.JournalEntry), args.Error(1)
}

func (m *mockJournalStore) CountByOwner(ctx context.Context, owner string) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJournalStore) Delete(ctx context.Context, id int64, owner string) error {
	return m.Called(ctx, id, owner).Error(0)
}

func (m *mockJournalStore) DeleteAllByOwner(ctx context.Context, owner string) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

type mockAdjustmentStore struct {
	mock.Mock
}

func (m *mockAdjustmentStore) Create(ctx context.Context, adj *models.AdjustmentEntry) error {
	return m.Called(ctx, adj).Error(0)
}

func (m *mockAdjustmentStore) ListByOwner(ctx context.Context, owner string) ([]models.AdjustmentEntry, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]models.AdjustmentEntry), args.Error(1)
}

func (m *mockAdjustmentStore) Delete(ctx context.Context, id int64, owner string) error {
	return m.Called(ctx, id, owner).Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

// recordingSender keeps the last code it was asked to deliver.
type recordingSender struct {
	email   string
	code    string
	expires time.Time
	calls   int
	err     error
}

func (s *recordingSender) Name() string { return "test" }

func (s *recordingSender) SendOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.email, s.code, s.expires = email, code, expiresAt
	return nil
}
