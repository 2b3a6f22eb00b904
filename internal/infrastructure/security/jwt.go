package security

import (
	"errors"
	"fmt"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "vermafarm"

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller identity inside a signed token.
type Claims struct {
	UserID   string `json:"id"`
	UserType string `json:"userType"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 bearer tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

var _ interfaces.ITokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, expiry time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (j *JWTIssuer) Issue(u entities.User) (string, error) {
	now := j.now()
	claims := &Claims{
		UserID:   u.ID,
		UserType: string(u.UserType),
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTIssuer) Parse(token string) (entities.Caller, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithIssuer(issuer))
	if err != nil {
		return entities.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return entities.Caller{}, ErrInvalidToken
	}
	return entities.Caller{
		UserID:   claims.UserID,
		UserType: entities.UserType(claims.UserType),
	}, nil
}
