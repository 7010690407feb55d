package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger/internal/domain/entity"
	repo "github.com/finledger/finledger/internal/domain/repository"
	"github.com/finledger/finledger/pkg/helpers"
)

func keySummary(userID string) string    { return "dashboard:summary:" + userID }
func keyCategories(userID string) string { return "dashboard:categories:" + userID }

var errInvalidType = errors.New("unknown transaction type")

// TransactionInput carries the mutable fields of a ledger entry. The owner is
// never part of the input; it is always taken from the authenticated identity.
type TransactionInput struct {
	Description string
	Amount      float64
	Category    string
	Type        entity.TransactionType
	Date        time.Time
}

// TransactionService enforces that every read, update and delete of a ledger
// entry is scoped to the authenticated owner. Checks run in a fixed order:
// identity resolution, then existence, then ownership, so a nonexistent id
// reports ErrEntryNotFound for every caller.
type TransactionService struct {
	Users     repo.UserRepository
	Repo      repo.TransactionRepository
	Redis     *redis.Client
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
}

func NewTransactionService(users repo.UserRepository, txRepo repo.TransactionRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *TransactionService {
	return &TransactionService{
		Users:     users,
		Repo:      txRepo,
		Redis:     rdb,
		Logger:    logger,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: gcsBucket,
	}
}

// resolveOwner maps the token subject to a stored account. A token that
// outlived its account fails here with ErrUserNotFound.
func (s *TransactionService) resolveOwner(email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *TransactionService) Add(ctx context.Context, email string, in TransactionInput) error {
	if !in.Type.Valid() {
		return errInvalidType
	}
	u, err := s.resolveOwner(email)
	if err != nil {
		return err
	}

	t := &entity.Transaction{
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Type:        in.Type,
		Date:        in.Date,
		UserID:      u.ID,
	}
	if err := s.Repo.Create(t); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, u.ID)
	_ = s.indexTransaction(ctx, t)
	return nil
}

func (s *TransactionService) List(ctx context.Context, email string) ([]*entity.Transaction, error) {
	u, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(u.ID)
}

func (s *TransactionService) Update(ctx context.Context, email, id string, in TransactionInput) error {
	if !in.Type.Valid() {
		return errInvalidType
	}
	u, err := s.resolveOwner(email)
	if err != nil {
		return err
	}

	t, err := s.loadOwned(u, id)
	if err != nil {
		return err
	}

	t.Description = in.Description
	t.Amount = in.Amount
	t.Category = in.Category
	t.Type = in.Type
	t.Date = in.Date
	// owner stays untouched

	if err := s.Repo.Update(t); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, u.ID)
	_ = s.indexTransaction(ctx, t)
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, email, id string) error {
	u, err := s.resolveOwner(email)
	if err != nil {
		return err
	}

	t, err := s.loadOwned(u, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(t.ID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, u.ID)
	s.deleteFromIndex(ctx, t.ID)
	return nil
}

// loadOwned fetches a transaction and verifies ownership by user id equality,
// not by email comparison, so a recycled email never grants access to the
// previous owner's entries. Existence is checked before ownership.
func (s *TransactionService) loadOwned(u *entity.User, id string) (*entity.Transaction, error) {
	t, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if t.UserID != u.ID {
		return nil, ErrUnauthorized
	}
	return t, nil
}

// UploadReceipt stores a receipt image in GCS and records its public URL on
// the owned transaction. Same resolution and ownership checks as Update.
func (s *TransactionService) UploadReceipt(ctx context.Context, email, id string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.resolveOwner(email)
	if err != nil {
		return "", err
	}
	t, err := s.loadOwned(u, id)
	if err != nil {
		return "", err
	}

	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("receipts", u.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	t.ReceiptURL = url
	if err := s.Repo.Update(t); err != nil {
		return "", err
	}
	_ = s.indexTransaction(ctx, t)
	return url, nil
}

func (s *TransactionService) invalidateDashboard(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, keySummary(userID), keyCategories(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("dashboard cache invalidation failed")
	}
}

func (s *TransactionService) indexTransaction(ctx context.Context, t *entity.Transaction) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          t.ID,
		"description": t.Description,
		"amount":      t.Amount,
		"category":    t.Category,
		"type":        t.Type,
		"date":        t.Date.Format("2006-01-02"),
		"user_id":     t.UserID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("transaction_id", t.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("transaction_id", t.ID).Warn("es index response error")
	}
	return nil
}

func (s *TransactionService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("transaction_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a full-text query over the caller's own transactions.
func (s *TransactionService) Search(ctx context.Context, email, q string, size int) ([]map[string]any, error) {
	u, err := s.resolveOwner(email)
	if err != nil {
		return nil, err
	}
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"description^2", "category"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": u.ID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
