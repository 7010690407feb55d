package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger/internal/domain/entity"
	repo "github.com/finledger/finledger/internal/domain/repository"
	"github.com/finledger/finledger/pkg/helpers"
)

const dashboardCacheTTL = 60 * time.Second

// Summary is the three-figure dashboard overview. Balance is income minus
// expense and may be negative.
type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// DashboardService derives aggregates from the caller's own entries. Results
// are cached per user in Redis for a short window; transaction writes drop
// the cached values.
type DashboardService struct {
	Users  repo.UserRepository
	Repo   repo.TransactionRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewDashboardService(users repo.UserRepository, txRepo repo.TransactionRepository, rdb *redis.Client, logger *logrus.Logger) *DashboardService {
	return &DashboardService{Users: users, Repo: txRepo, Redis: rdb, Logger: logger}
}

func (s *DashboardService) resolveOwner(email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetSummary returns income, expense and balance totals for the caller. A
// user with no entries gets explicit zeros rather than an error.
func (s *DashboardService) GetSummary(ctx context.Context, email string) (*Summary, error) {
	u, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		var cached Summary
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, keySummary(u.ID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	income, err := s.Repo.SumByType(u.ID, entity.TypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.Repo.SumByType(u.ID, entity.TypeExpense)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
	}
	s.toCache(ctx, keySummary(u.ID), out)
	return out, nil
}

// GetCategories returns the per-category totals for the caller. Totals of
// both entry types contribute to a category's figure.
func (s *DashboardService) GetCategories(ctx context.Context, email string) (map[string]float64, error) {
	u, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		var cached map[string]float64
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, keyCategories(u.ID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	out, err := s.Repo.SumByCategory(u.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]float64{}
	}
	s.toCache(ctx, keyCategories(u.ID), out)
	return out, nil
}

func (s *DashboardService) toCache(ctx context.Context, key string, v any) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, key, v, dashboardCacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("dashboard cache write failed")
	}
}
