package application

import (
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/domain/entity"
	"github.com/finledger/finledger/internal/domain/repository"
)

type fakeUserRepo struct {
	users  map[string]*entity.User // keyed by email
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.users[u.Email]; ok {
		return fmt.Errorf("duplicate email %s", u.Email)
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) UpdatePassword(id, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Password = passwordHash
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeTxRepo struct {
	txs    map[string]*entity.Transaction
	order  []string
	nextID int
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{txs: map[string]*entity.Transaction{}}
}

func (r *fakeTxRepo) Create(t *entity.Transaction) error {
	r.nextID++
	t.ID = fmt.Sprintf("tx-%d", r.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.txs[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTxRepo) GetByID(id string) (*entity.Transaction, error) {
	t, ok := r.txs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTxRepo) ListByUser(userID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, id := range r.order {
		t, ok := r.txs[id]
		if !ok || t.UserID != userID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTxRepo) Update(t *entity.Transaction) error {
	if _, ok := r.txs[t.ID]; !ok {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	r.txs[t.ID] = &cp
	return nil
}

func (r *fakeTxRepo) Delete(id string) error {
	if _, ok := r.txs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.txs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeTxRepo) SumByType(userID string, txType entity.TransactionType) (float64, error) {
	var sum float64
	for _, t := range r.txs {
		if t.UserID == userID && t.Type == txType {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (r *fakeTxRepo) SumByCategory(userID string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, t := range r.txs {
		if t.UserID == userID {
			out[t.Category] += t.Amount
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository        = (*fakeUserRepo)(nil)
	_ repository.TransactionRepository = (*fakeTxRepo)(nil)
)
