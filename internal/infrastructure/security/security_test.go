package security

import (
	"testing"
	"time"

	"vermafarm/internal/domain/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	j := NewJWTIssuer("secret", time.Hour)

	token, err := j.Issue(entities.User{ID: "u-1", UserType: entities.UserTypeLandowner, Email: "a@b.com"})
	require.NoError(t, err)

	caller, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, entities.Caller{UserID: "u-1", UserType: entities.UserTypeLandowner}, caller)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	j := NewJWTIssuer("secret", time.Minute)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return issued }

	token, err := j.Issue(entities.User{ID: "u-1", UserType: entities.UserTypeFarmer})
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = j.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsOtherSecret(t *testing.T) {
	token, err := NewJWTIssuer("one", time.Hour).Issue(entities.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewJWTIssuer("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: "u-1", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTIssuer("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, h.Compare(hash, "hunter22"))
	assert.Error(t, h.Compare(hash, "hunter23"))
}

func TestNewBcryptHasher_OutOfRangeCostUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}
