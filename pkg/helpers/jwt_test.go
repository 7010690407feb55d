package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssueAndValidateRoundtrip(t *testing.T) {
	m := &JWTManager{Secret: []byte("unit-test-secret"), TTL: time.Hour}

	token, exp, err := m.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	subject, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestJWTValidateExpiredToken(t *testing.T) {
	m := &JWTManager{Secret: []byte("unit-test-secret"), TTL: -time.Minute}

	token, _, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTValidateTamperedSignature(t *testing.T) {
	m := &JWTManager{Secret: []byte("unit-test-secret"), TTL: time.Hour}

	token, _, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = m.Validate(string(tampered))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTValidateWrongSecret(t *testing.T) {
	issuer := &JWTManager{Secret: []byte("secret-one"), TTL: time.Hour}
	verifier := &JWTManager{Secret: []byte("secret-two"), TTL: time.Hour}

	token, _, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTValidateGarbage(t *testing.T) {
	m := &JWTManager{Secret: []byte("unit-test-secret"), TTL: time.Hour}

	_, err := m.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
