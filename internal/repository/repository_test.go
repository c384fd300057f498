package repository

import (
	"context"
	"testing"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/coa"
	"belutin-web/internal/database"
	"belutin-web/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

const owner = "owner@belut.in"

type RepositorySuite struct {
	suite.Suite
	ctx      context.Context
	db       *sqlx.DB
	hook     *test.Hook
	journal  *JournalRepository
	opening  *OpeningBalanceRepository
	adjust   *AdjustmentRepository
	users    *UserRepository
	accounts *coa.Chart
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	db, err := database.NewSQLite(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(s.ctx, db))
	s.db = db

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.hook = hook
	s.journal = NewJournalRepository(db, logger)
	s.opening = NewOpeningBalanceRepository(db)
	s.adjust = NewAdjustmentRepository(db)
	s.users = NewUserRepository(db)
	s.accounts = coa.Default()
}

func (s *RepositorySuite) TearDownTest() {
	s.db.Close()
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) account(code string) models.Account {
	acc, err := s.accounts.Lookup(code)
	s.Require().NoError(err)
	return acc
}

func (s *RepositorySuite) TestRecordEntryBalances() {
	id, err := s.journal.RecordEntry(s.ctx, "Penjualan Belut Standar - 10 kg (Tunai)", "2025-01-05",
		s.account(coa.Cash), s.account(coa.SalesEelStandard), decimal.RequireFromString("500000"), owner)
	s.Require().NoError(err)
	s.NotZero(id)

	entry, err := s.journal.FindByID(s.ctx, id, owner)
	s.Require().NoError(err)
	s.Require().Len(entry.Lines, 2)
	s.True(entry.Lines.Balanced())
	s.Equal(coa.Cash, entry.Lines[0].AccountCode)
	s.Equal("Kas", entry.Lines[0].AccountName)
	s.True(entry.Lines[0].Debit.Equal(decimal.RequireFromString("500000")))
	s.True(entry.Lines[1].Credit.Equal(decimal.RequireFromString("500000")))
	s.Equal("2025-01-05", entry.Date)
	s.False(entry.CreatedAt.IsZero())
}

func (s *RepositorySuite) TestListByOwnerOrderingAndScope() {
	cash, sales := s.account(coa.Cash), s.account(coa.SalesEelSuper)
	amount := decimal.NewFromInt(65000)
	for _, date := range []string{"2025-01-10", "2025-01-02", "2025-01-10"} {
		_, err := s.journal.RecordEntry(s.ctx, "x", date, cash, sales, amount, owner)
		s.Require().NoError(err)
	}
	_, err := s.journal.RecordEntry(s.ctx, "other", "2025-01-01", cash, sales, amount, "someone@else")
	s.Require().NoError(err)

	entries, err := s.journal.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("2025-01-02", entries[0].Date)
	s.Less(entries[1].ID, entries[2].ID)

	desc, err := s.journal.ListByOwnerDesc(s.ctx, owner, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(desc, 2)
	s.Equal(entries[2].ID, desc[0].ID)
	s.Equal(entries[1].ID, desc[1].ID)

	total, err := s.journal.CountByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
}

func (s *RepositorySuite) TestDeleteIsOwnerScoped() {
	id, err := s.journal.RecordEntry(s.ctx, "x", "2025-01-01", s.account(coa.Cash), s.account(coa.OwnerCapital), decimal.NewFromInt(1), owner)
	s.Require().NoError(err)

	s.ErrorIs(s.journal.Delete(s.ctx, id, "intruder@belut.in"), apperrors.ErrNotFound)
	s.NoError(s.journal.Delete(s.ctx, id, owner))
	s.ErrorIs(s.journal.Delete(s.ctx, id, owner), apperrors.ErrNotFound)

	_, err = s.journal.FindByID(s.ctx, id, owner)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositorySuite) TestDeleteAllByOwner() {
	for i := 0; i < 3; i++ {
		_, err := s.journal.RecordEntry(s.ctx, "x", "2025-01-01", s.account(coa.Cash), s.account(coa.OwnerCapital), decimal.NewFromInt(1), owner)
		s.Require().NoError(err)
	}
	_, err := s.journal.RecordEntry(s.ctx, "keep", "2025-01-01", s.account(coa.Cash), s.account(coa.OwnerCapital), decimal.NewFromInt(1), "keep@belut.in")
	s.Require().NoError(err)

	n, err := s.journal.DeleteAllByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	left, err := s.journal.CountByOwner(s.ctx, "keep@belut.in")
	s.Require().NoError(err)
	s.Equal(int64(1), left)
}

func (s *RepositorySuite) TestMalformedLinesDegradeToEmpty() {
	_, err := s.db.Exec("INSERT INTO general_journal (description, date, `lines`, user_email) VALUES (?, ?, ?, ?)",
		"rusak", "2025-01-03", "{not json", owner)
	s.Require().NoError(err)
	_, err = s.db.Exec("INSERT INTO general_journal (description, date, `lines`, user_email) VALUES (?, ?, ?, ?)",
		"ganda", "2025-01-04", `"[{\"account_code\":\"1-1100\",\"account_name\":\"Kas\",\"debit\":\"10\",\"credit\":\"0\"}]"`, owner)
	s.Require().NoError(err)

	entries, err := s.journal.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Empty(entries[0].Lines)
	s.Require().Len(entries[1].Lines, 1)
	s.Equal("1-1100", entries[1].Lines[0].AccountCode)

	s.Require().Len(s.hook.AllEntries(), 1)
	s.Equal(logrus.WarnLevel, s.hook.LastEntry().Level)
}

func (s *RepositorySuite) TestOpeningBalancesAreGlobal() {
	for _, ob := range []models.OpeningBalance{
		{AccountCode: coa.OwnerCapital, AccountName: "Modal Pemilik", Debit: decimal.Zero, Credit: decimal.NewFromInt(10000000)},
		{AccountCode: coa.Cash, AccountName: "Kas", Debit: decimal.NewFromInt(10000000), Credit: decimal.Zero},
	} {
		ob := ob
		s.Require().NoError(s.opening.Create(s.ctx, &ob))
		s.NotZero(ob.ID)
	}

	list, err := s.opening.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(coa.Cash, list[0].AccountCode)
	s.True(list[0].Debit.Equal(decimal.NewFromInt(10000000)))

	s.NoError(s.opening.Delete(s.ctx, list[0].ID))
	s.ErrorIs(s.opening.Delete(s.ctx, list[0].ID), apperrors.ErrNotFound)

	n, err := s.opening.ResetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
	list, err = s.opening.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepositorySuite) TestAdjustmentsRoundTrip() {
	rows := []models.AdjustmentEntry{
		{No: 4, Date: "2025-01-31", Description: "HPP Belut Standar", Ref: coa.COGSEelStandard, Debit: decimal.NewFromInt(100), Credit: decimal.Zero, Owner: owner},
		{No: 1, Date: "2025-01-31", Description: "Beban Depresiasi", Ref: coa.DepreciationExpense, Debit: decimal.NewFromInt(250000), Credit: decimal.Zero, Owner: owner},
		{No: 1, Date: "2025-01-31", Description: "Akumulasi Penyusutan Bangunan", Ref: coa.AccumDeprBuilding, Debit: decimal.Zero, Credit: decimal.NewFromInt(250000), IsIndent: true, Owner: owner},
	}
	for i := range rows {
		s.Require().NoError(s.adjust.Create(s.ctx, &rows[i]))
	}

	list, err := s.adjust.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal(1, list[0].No)
	s.False(list[0].IsIndent)
	s.True(list[1].IsIndent)
	s.True(list[1].Credit.Equal(decimal.NewFromInt(250000)))
	s.Equal(4, list[2].No)

	s.ErrorIs(s.adjust.Delete(s.ctx, list[0].ID, "someone@else"), apperrors.ErrNotFound)
	s.NoError(s.adjust.Delete(s.ctx, list[0].ID, owner))
}

func (s *RepositorySuite) TestUsers() {
	u := &models.User{Email: "petani@belut.in", PasswordHash: "hash"}
	s.Require().NoError(s.users.Create(s.ctx, u))
	s.NotZero(u.ID)

	dup := &models.User{Email: "petani@belut.in", PasswordHash: "other"}
	s.ErrorIs(s.users.Create(s.ctx, dup), apperrors.ErrDuplicate)

	found, err := s.users.FindByEmail(s.ctx, "petani@belut.in")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)

	s.Require().NoError(s.users.UpdatePassword(s.ctx, u.ID, "new-hash"))
	byID, err := s.users.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("new-hash", byID.PasswordHash)

	_, err = s.users.FindByEmail(s.ctx, "nobody@belut.in")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
