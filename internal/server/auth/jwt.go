// Package auth mints and verifies session tokens: HS256 JWTs that assert an
// account identity for a fixed window. Tokens are stateless; nothing is
// stored server-side and the only way a token stops working is expiry.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity is the lifetime of every session token.
const TokenValidity = time.Hour

// Claims are the registered JWT claims plus the account identity at
// issuance time. A later email change does not touch outstanding tokens.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id"`
	Email     string `json:"email"`
}

// TokenIssuer signs and verifies session tokens with a process-wide key.
// It holds no mutable state and is safe for concurrent use.
type TokenIssuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

type Option func(*TokenIssuer)

// WithClock replaces time.Now, both for issuing and for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) { t.now = now }
}

// WithValidity overrides TokenValidity.
func WithValidity(d time.Duration) Option {
	return func(t *TokenIssuer) { t.validity = d }
}

// NewTokenIssuer refuses to build an issuer without a signing key.
func NewTokenIssuer(secretKey string, opts ...Option) (*TokenIssuer, error) {
	if secretKey == "" {
		return nil, errors.New("token signing key is empty")
	}
	t := &TokenIssuer{
		secretKey: []byte(secretKey),
		validity:  TokenValidity,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue returns a signed token for the account, expiring validity from now.
func (t *TokenIssuer) Issue(accountID, email string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
			ID:        uuid.NewString(),
		},
		AccountID: accountID,
		Email:     email,
	})

	tokenString, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. It returns
// common.ErrTokenExpired for a correctly signed but expired token and
// common.ErrInvalidToken for everything else.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		// jwt checks the signature before the time claims, so an expiry
		// error implies the signature was good.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" || claims.AccountID != claims.Subject {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
