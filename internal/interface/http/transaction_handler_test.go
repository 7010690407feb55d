package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/application"
	"github.com/finledger/finledger/internal/domain/entity"
	"github.com/finledger/finledger/internal/domain/repository"
	mw "github.com/finledger/finledger/internal/interface/middleware"
	"github.com/finledger/finledger/pkg/helpers"
	"github.com/finledger/finledger/pkg/validation"
)

type memTxRepo struct {
	txs    map[string]*entity.Transaction
	order  []string
	nextID int
}

func newMemTxRepo() *memTxRepo { return &memTxRepo{txs: map[string]*entity.Transaction{}} }

func (r *memTxRepo) Create(t *entity.Transaction) error {
	r.nextID++
	t.ID = fmt.Sprintf("tx-%d", r.nextID)
	cp := *t
	r.txs[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memTxRepo) GetByID(id string) (*entity.Transaction, error) {
	t, ok := r.txs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTxRepo) ListByUser(userID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, id := range r.order {
		if t, ok := r.txs[id]; ok && t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTxRepo) Update(t *entity.Transaction) error {
	if _, ok := r.txs[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	r.txs[t.ID] = &cp
	return nil
}

func (r *memTxRepo) Delete(id string) error {
	if _, ok := r.txs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.txs, id)
	return nil
}

func (r *memTxRepo) SumByType(userID string, txType entity.TransactionType) (float64, error) {
	var sum float64
	for _, t := range r.txs {
		if t.UserID == userID && t.Type == txType {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (r *memTxRepo) SumByCategory(userID string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, t := range r.txs {
		if t.UserID == userID {
			out[t.Category] += t.Amount
		}
	}
	return out, nil
}

var _ repository.TransactionRepository = (*memTxRepo)(nil)

type txTestEnv struct {
	router *gin.Engine
	jwt    *helpers.JWTManager
	users  *memUserRepo
	txs    *memTxRepo
}

func newTxEnv(t *testing.T) *txTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	users := newMemUserRepo()
	txs := newMemTxRepo()
	logger := logrus.New()
	jwt := &helpers.JWTManager{Secret: []byte("tx-secret"), TTL: time.Hour}

	txSvc := application.NewTransactionService(users, txs, nil, logger, nil, "", nil, "")
	dashSvc := application.NewDashboardService(users, txs, nil, logger)

	th := NewTransactionHandler(txSvc, logger)
	dh := NewDashboardHandler(dashSvc, logger)

	r := gin.New()
	auth := r.Group("/api", mw.JWT(jwt))
	auth.POST("/transactions", th.Create)
	auth.GET("/transactions", th.List)
	auth.PUT("/transactions/:id", th.Update)
	auth.DELETE("/transactions/:id", th.Delete)
	auth.GET("/dashboard/summary", dh.Summary)
	auth.GET("/dashboard/categories", dh.Categories)

	return &txTestEnv{router: r, jwt: jwt, users: users, txs: txs}
}

func (e *txTestEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	require.NoError(t, e.users.Create(&entity.User{Email: email, Password: "x"}))
	token, _, err := e.jwt.Issue(email)
	require.NoError(t, err)
	return token
}

func (e *txTestEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func validEntry() gin.H {
	return gin.H{
		"description": "Groceries",
		"amount":      42.5,
		"category":    "food",
		"type":        "EXPENSE",
		"date":        "2026-08-15",
	}
}

func TestCreateAndListTransactions(t *testing.T) {
	env := newTxEnv(t)
	token := env.registerUser(t, "alice@example.com")

	w := env.do(http.MethodPost, "/api/transactions", token, validEntry())
	require.Equal(t, http.StatusCreated, w.Code)

	list := env.do(http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Groceries")
	assert.Contains(t, list.Body.String(), "2026-08-15")
}

func TestCreateTransactionValidation(t *testing.T) {
	env := newTxEnv(t)
	token := env.registerUser(t, "alice@example.com")

	bad := []gin.H{
		{"description": "x", "amount": 10, "category": "food", "type": "TRANSFER", "date": "2026-08-15"},
		{"description": "x", "amount": 10, "category": "food", "type": "EXPENSE", "date": "15-08-2026"},
		{"description": "x", "amount": -5, "category": "food", "type": "EXPENSE", "date": "2026-08-15"},
		{"description": "x", "amount": 10, "type": "EXPENSE", "date": "2026-08-15"},
	}
	for _, body := range bad {
		w := env.do(http.MethodPost, "/api/transactions", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}
}

func TestTransactionRoutesRequireAuth(t *testing.T) {
	env := newTxEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/transactions", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodPost, "/api/transactions", "", validEntry()).Code)
}

func TestForeignEntryIsForbidden(t *testing.T) {
	env := newTxEnv(t)
	aliceToken := env.registerUser(t, "alice@example.com")
	bobToken := env.registerUser(t, "bob@example.com")

	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/transactions", aliceToken, validEntry()).Code)
	id := env.txs.order[0]

	assert.Equal(t, http.StatusForbidden,
		env.do(http.MethodPut, "/api/transactions/"+id, bobToken, validEntry()).Code)
	assert.Equal(t, http.StatusForbidden,
		env.do(http.MethodDelete, "/api/transactions/"+id, bobToken, nil).Code)
}

func TestMissingEntryIsNotFoundBeforeOwnership(t *testing.T) {
	env := newTxEnv(t)
	token := env.registerUser(t, "alice@example.com")

	assert.Equal(t, http.StatusNotFound,
		env.do(http.MethodPut, "/api/transactions/tx-missing", token, validEntry()).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(http.MethodDelete, "/api/transactions/tx-missing", token, nil).Code)
}

func TestStaleTokenIsUnauthorized(t *testing.T) {
	env := newTxEnv(t)
	// token for an account that was never created
	token, _, err := env.jwt.Issue("ghost@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/transactions", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/dashboard/summary", token, nil).Code)
}

func TestDashboardEndpoints(t *testing.T) {
	env := newTxEnv(t)
	token := env.registerUser(t, "alice@example.com")

	entries := []gin.H{
		{"description": "Salary", "amount": 100, "category": "salary", "type": "INCOME", "date": "2026-08-01"},
		{"description": "Food", "amount": 40, "category": "food", "type": "EXPENSE", "date": "2026-08-02"},
		{"description": "Rent", "amount": 10, "category": "rent", "type": "EXPENSE", "date": "2026-08-03"},
	}
	for _, e := range entries {
		require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/transactions", token, e).Code)
	}

	w := env.do(http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalIncome  float64 `json:"total_income"`
			TotalExpense float64 `json:"total_expense"`
			Balance      float64 `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Data.TotalIncome)
	assert.Equal(t, 50.0, resp.Data.TotalExpense)
	assert.Equal(t, 50.0, resp.Data.Balance)

	cats := env.do(http.MethodGet, "/api/dashboard/categories", token, nil)
	require.Equal(t, http.StatusOK, cats.Code)
	var catResp struct {
		Data map[string]float64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(cats.Body.Bytes(), &catResp))
	assert.Equal(t, map[string]float64{"salary": 100, "food": 40, "rent": 10}, catResp.Data)
}
