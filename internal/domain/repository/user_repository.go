package repository

import "github.com/finledger/finledger/internal/domain/entity"

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(u *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	UpdatePassword(id, passwordHash string) error
}
