package service

import (
	"context"
	"errors"
	"testing"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/coa"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const owner = "petani@belut.in"

func newTransactionService(t *testing.T) (*TransactionService, *mockJournalStore) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := new(mockJournalStore)
	return NewTransactionService(store, coa.Default(), logger), store
}

func account(t *testing.T, code string) models.Account {
	t.Helper()
	acc, err := coa.Default().Lookup(code)
	require.NoError(t, err)
	return acc
}

func decimalEq(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(want))
	})
}

func TestRecordSale(t *testing.T) {
	cases := []struct {
		name    string
		req     models.SaleRequest
		debit   string
		amount  string
		summary string
	}{
		{
			name:    "standard cash",
			req:     models.SaleRequest{Date: "2025-01-05", AccountCode: coa.SalesEelStandard, Quantity: "10", Method: models.PaymentCash},
			debit:   coa.Cash,
			amount:  "500000",
			summary: "Penjualan Belut Standar - 10 kg (Tunai)",
		},
		{
			name:    "super transfer",
			req:     models.SaleRequest{Date: "2025-01-05", AccountCode: coa.SalesEelSuper, Quantity: "2.5", Method: models.PaymentTransfer},
			debit:   coa.Bank,
			amount:  "162500",
			summary: "Penjualan Belut Super - 2.5 kg (Transfer)",
		},
		{
			name:    "standard on credit",
			req:     models.SaleRequest{Date: "2025-01-06", AccountCode: coa.SalesEelStandard, Quantity: "4", Method: models.PaymentCredit},
			debit:   coa.Receivable,
			amount:  "200000",
			summary: "Penjualan Belut Standar - 4 kg (Kredit)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTransactionService(t)
			store.On("RecordEntry", mock.Anything, tc.summary, tc.req.Date,
				account(t, tc.debit), account(t, tc.req.AccountCode), decimalEq(tc.amount), owner).
				Return(int64(7), nil)

			got, err := svc.RecordSale(context.Background(), owner, tc.req)
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
			assert.Equal(t, tc.summary, got.Description)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tc.amount)))
			store.AssertExpectations(t)
		})
	}
}

func TestRecordSaleValidation(t *testing.T) {
	cases := []struct {
		name string
		req  models.SaleRequest
	}{
		{"missing date", models.SaleRequest{AccountCode: coa.SalesEelStandard, Quantity: "1", Method: models.PaymentCash}},
		{"bad date", models.SaleRequest{Date: "05/01/2025", AccountCode: coa.SalesEelStandard, Quantity: "1", Method: models.PaymentCash}},
		{"not a sales account", models.SaleRequest{Date: "2025-01-05", AccountCode: coa.Cash, Quantity: "1", Method: models.PaymentCash}},
		{"zero quantity", models.SaleRequest{Date: "2025-01-05", AccountCode: coa.SalesEelStandard, Quantity: "0", Method: models.PaymentCash}},
		{"text quantity", models.SaleRequest{Date: "2025-01-05", AccountCode: coa.SalesEelStandard, Quantity: "banyak", Method: models.PaymentCash}},
		{"unknown method", models.SaleRequest{Date: "2025-01-05", AccountCode: coa.SalesEelStandard, Quantity: "1", Method: "Barter"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTransactionService(t)
			_, err := svc.RecordSale(context.Background(), owner, tc.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			store.AssertNotCalled(t, "RecordEntry")
		})
	}
}

func TestRecordPurchase(t *testing.T) {
	svc, store := newTransactionService(t)
	req := models.PurchaseRequest{Date: "2025-01-06", AccountCode: coa.PurchaseFeedSuper, Amount: "1.250.000", Method: models.PaymentCredit}
	store.On("RecordEntry", mock.Anything, "Pembelian Pembelian Pakan Belut Super (Kredit)", "2025-01-06",
		account(t, coa.PurchaseFeedSuper), account(t, coa.Payable), decimalEq("1250000"), owner).
		Return(int64(3), nil)

	got, err := svc.RecordPurchase(context.Background(), owner, req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	store.AssertExpectations(t)
}

func TestRecordPurchaseRejectsNonPurchaseAccount(t *testing.T) {
	svc, _ := newTransactionService(t)
	_, err := svc.RecordPurchase(context.Background(), owner, models.PurchaseRequest{
		Date: "2025-01-06", AccountCode: coa.UtilitiesExpense, Amount: "100", Method: models.PaymentCash,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRecordOther(t *testing.T) {
	svc, store := newTransactionService(t)
	store.On("RecordEntry", mock.Anything, "Transaksi Lainnya: bayar listrik", "2025-01-09",
		account(t, coa.UtilitiesExpense), account(t, coa.Cash), decimalEq("350000"), owner).
		Return(int64(9), nil)

	_, err := svc.RecordOther(context.Background(), owner, models.OtherTransactionRequest{
		Date: "2025-01-09", DebitCode: coa.UtilitiesExpense, CreditCode: coa.Cash, Amount: "350000", Description: " bayar listrik ",
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRecordOtherDefaultDescription(t *testing.T) {
	svc, store := newTransactionService(t)
	store.On("RecordEntry", mock.Anything, "Transaksi Lainnya: Prive ke Kas", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, owner).Return(int64(1), nil)

	_, err := svc.RecordOther(context.Background(), owner, models.OtherTransactionRequest{
		Date: "2025-01-20", DebitCode: coa.Drawings, CreditCode: coa.Cash, Amount: "400000",
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRecordOtherValidation(t *testing.T) {
	cases := []struct {
		name string
		req  models.OtherTransactionRequest
	}{
		{"same account", models.OtherTransactionRequest{Date: "2025-01-09", DebitCode: coa.Cash, CreditCode: coa.Cash, Amount: "1"}},
		{"inventory excluded", models.OtherTransactionRequest{Date: "2025-01-09", DebitCode: coa.InventoryEelStandard, CreditCode: coa.Cash, Amount: "1"}},
		{"eel sales excluded", models.OtherTransactionRequest{Date: "2025-01-09", DebitCode: coa.Cash, CreditCode: coa.SalesEelSuper, Amount: "1"}},
		{"negative amount", models.OtherTransactionRequest{Date: "2025-01-09", DebitCode: coa.UtilitiesExpense, CreditCode: coa.Cash, Amount: "-5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTransactionService(t)
			_, err := svc.RecordOther(context.Background(), owner, tc.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRecordPropagatesStoreErrors(t *testing.T) {
	svc, store := newTransactionService(t)
	boom := errors.New("db down")
	store.On("RecordEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, owner).
		Return(int64(0), boom)

	_, err := svc.RecordSale(context.Background(), owner, models.SaleRequest{
		Date: "2025-01-05", AccountCode: coa.SalesEelStandard, Quantity: "1", Method: models.PaymentCash,
	})
	assert.ErrorIs(t, err, boom)
}

func TestForms(t *testing.T) {
	svc, _ := newTransactionService(t)
	f := svc.Forms()
	assert.Len(t, f.SalesAccounts, 2)
	assert.Len(t, f.PurchaseAccounts, 4)
	assert.Len(t, f.Methods, 3)
	assert.True(t, f.Prices[coa.SalesEelSuper].Equal(PriceSuper))
	for _, g := range f.OtherAccounts {
		for _, a := range g.Accounts {
			assert.NotContains(t, a.Name, "Persediaan")
		}
	}
}
