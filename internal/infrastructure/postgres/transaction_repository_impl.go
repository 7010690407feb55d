package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finledger/finledger/internal/domain/entity"
	"github.com/finledger/finledger/internal/domain/repository"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Create(t *entity.Transaction) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (description, amount, category, type, date, user_id, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, t.Description, t.Amount, t.Category, t.Type, t.Date, t.UserID, t.ReceiptURL)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TransactionRepository) GetByID(id string) (*entity.Transaction, error) {
	ctx := context.Background()
	t := &entity.Transaction{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, description, amount, category, type, date, user_id, receipt_url, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Type,
		&t.Date, &t.UserID, &t.ReceiptURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// ListByUser returns the owner's transactions in insertion order, so a client
// polling the list sees previously returned rows in stable positions.
func (r *TransactionRepository) ListByUser(userID string) ([]*entity.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, description, amount, category, type, date, user_id, receipt_url, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		t := &entity.Transaction{}
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Type,
			&t.Date, &t.UserID, &t.ReceiptURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) Update(t *entity.Transaction) error {
	ctx := context.Background()
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET description = $1, amount = $2, category = $3, type = $4, date = $5, receipt_url = $6, updated_at = $7
		WHERE id = $8
	`, t.Description, t.Amount, t.Category, t.Type, t.Date, t.ReceiptURL, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TransactionRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		DELETE FROM transactions
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TransactionRepository) SumByType(userID string, txType entity.TransactionType) (float64, error) {
	ctx := context.Background()
	var sum float64
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2
	`, userID, txType)
	if err := row.Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// SumByCategory sums raw magnitudes per category label, mixing both
// transaction types within a category. Categories without rows are absent
// from the map rather than present with zero.
func (r *TransactionRepository) SumByCategory(userID string) (map[string]float64, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT category, SUM(amount)
		FROM transactions
		WHERE user_id = $1
		GROUP BY category
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var category string
		var sum float64
		if err := rows.Scan(&category, &sum); err != nil {
			return nil, err
		}
		out[category] = sum
	}
	return out, rows.Err()
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
