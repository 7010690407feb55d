package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/pkg/helpers"
)

func newAuthService(repo *fakeUserRepo) *AuthService {
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	return &AuthService{Repo: repo, JWT: jwt}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	err := svc.Register(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	u, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, strings.HasPrefix(u.Password, "$2"))
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "password123"))

	err := svc.Register(context.Background(), "alice@example.com", "other-password")
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestLoginIssuesTokenBoundToEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "password123"))

	token, exp, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	subject, err := svc.JWT.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "password123"))

	_, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "password123")
	_, _, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPassErr)
}

func TestLoginDoesNotMutateState(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "password123"))

	before, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	after, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
