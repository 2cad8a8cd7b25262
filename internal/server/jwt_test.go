package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	s := testJWT()
	owner := uuid.New()

	token, err := s.GenerateToken(owner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner, claims.OwnerID())
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	getter, err := s.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner, getter.OwnerID())
}

func TestJWTService_NilOwner(t *testing.T) {
	_, err := testJWT().GenerateToken(uuid.Nil)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	s := testJWT()
	issued := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issued }

	token, err := s.GenerateToken(uuid.New())
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := testJWT().GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different", ExpirationHours: 1, Issuer: config.DefaultJWTIssuer})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_WrongIssuer(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "shared", ExpirationHours: 1, Issuer: "someone-else"}
	token, err := NewJWTService(cfg).GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWTService(&config.JWTConfig{Secret: "shared", ExpirationHours: 1, Issuer: config.DefaultJWTIssuer}).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestJWTService_SubjectNotUUID(t *testing.T) {
	s := testJWT()
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    config.DefaultJWTIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key-for-drafts"))
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorContains(t, err, "owner ID")
}

func TestJWTService_Empty(t *testing.T) {
	_, err := testJWT().ValidateToken("")
	assert.Error(t, err)

	_, err = testJWT().ValidateToken("a.b.c")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}
