package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/domain/entity"
)

func seedEntry(t *testing.T, svc *TransactionService, email, category string, amount float64, typ entity.TransactionType) {
	t.Helper()
	require.NoError(t, svc.Add(context.Background(), email, TransactionInput{
		Description: category,
		Amount:      amount,
		Category:    category,
		Type:        typ,
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func TestGetSummaryTotals(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	seedTwoUsers(t, users)
	txSvc := NewTransactionService(users, txs, nil, nil, nil, "", nil, "")
	dash := NewDashboardService(users, txs, nil, nil)

	seedEntry(t, txSvc, "alice@example.com", "salary", 100, entity.TypeIncome)
	seedEntry(t, txSvc, "alice@example.com", "food", 40, entity.TypeExpense)
	seedEntry(t, txSvc, "alice@example.com", "rent", 10, entity.TypeExpense)

	sum, err := dash.GetSummary(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 100.0, sum.TotalIncome)
	assert.Equal(t, 50.0, sum.TotalExpense)
	assert.Equal(t, 50.0, sum.Balance)
}

func TestGetSummaryEmptyLedgerIsZero(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	seedTwoUsers(t, users)
	dash := NewDashboardService(users, txs, nil, nil)

	sum, err := dash.GetSummary(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.TotalIncome)
	assert.Equal(t, 0.0, sum.TotalExpense)
	assert.Equal(t, 0.0, sum.Balance)
}

func TestGetSummaryNegativeBalance(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	seedTwoUsers(t, users)
	txSvc := NewTransactionService(users, txs, nil, nil, nil, "", nil, "")
	dash := NewDashboardService(users, txs, nil, nil)

	seedEntry(t, txSvc, "alice@example.com", "salary", 30, entity.TypeIncome)
	seedEntry(t, txSvc, "alice@example.com", "rent", 100, entity.TypeExpense)

	sum, err := dash.GetSummary(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, -70.0, sum.Balance)
}

func TestGetSummaryIsOwnerScoped(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	seedTwoUsers(t, users)
	txSvc := NewTransactionService(users, txs, nil, nil, nil, "", nil, "")
	dash := NewDashboardService(users, txs, nil, nil)

	seedEntry(t, txSvc, "alice@example.com", "salary", 100, entity.TypeIncome)
	seedEntry(t, txSvc, "bob@example.com", "salary", 999, entity.TypeIncome)

	sum, err := dash.GetSummary(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 100.0, sum.TotalIncome)
}

func TestGetCategoriesMixesBothTypes(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	seedTwoUsers(t, users)
	txSvc := NewTransactionService(users, txs, nil, nil, nil, "", nil, "")
	dash := NewDashboardService(users, txs, nil, nil)

	seedEntry(t, txSvc, "alice@example.com", "food", 50, entity.TypeExpense)
	seedEntry(t, txSvc, "alice@example.com", "food", 20, entity.TypeIncome)
	seedEntry(t, txSvc, "alice@example.com", "rent", 30, entity.TypeExpense)

	cats, err := dash.GetCategories(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"food": 70, "rent": 30}, cats)
}

func TestGetCategoriesEmptyLedger(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	seedTwoUsers(t, users)
	dash := NewDashboardService(users, txs, nil, nil)

	cats, err := dash.GetCategories(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestDashboardStaleIdentity(t *testing.T) {
	users := newFakeUserRepo()
	txs := newFakeTxRepo()
	dash := NewDashboardService(users, txs, nil, nil)

	_, err := dash.GetSummary(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = dash.GetCategories(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
