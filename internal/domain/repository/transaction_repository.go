package repository

import "github.com/finledger/finledger/internal/domain/entity"

// TransactionRepository defines the interface for ledger persistence.
// Listing and aggregation are always owner-scoped; there is no query that
// crosses user boundaries.
type TransactionRepository interface {
	Create(t *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	ListByUser(userID string) ([]*entity.Transaction, error)
	Update(t *entity.Transaction) error
	Delete(id string) error
	SumByType(userID string, txType entity.TransactionType) (float64, error)
	SumByCategory(userID string) (map[string]float64, error)
}
