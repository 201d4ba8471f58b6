// Package auth implements the stateless access-token codec: issuing,
// verifying and subject-matching of HS256-signed bearer tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pentalign/backend/internal/common"
	"github.com/pentalign/backend/internal/server/models"
)

// Claims are the structured fields encoded and signed inside an access
// token: subject (username), issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec encodes, decodes and verifies access tokens with a single symmetric
// key. The key is read-only after construction, so a Codec is safe for
// concurrent use.
type Codec struct {
	key   []byte
	clock Clock
}

// NewCodec derives the signing key from the configured secret and returns a
// ready Codec. A nil clock falls back to SystemClock.
func NewCodec(secret string, clock Clock) (*Codec, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Codec{key: key, clock: clock}, nil
}

// Issue signs a new access token for subject, valid for ttl from now.
// It fails with common.ErrEmptySubject when subject is empty.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", common.ErrEmptySubject
	}

	now := c.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(c.key)
}

// Verify decodes and validates tokenText and returns its claims. Failure
// axes stay distinguishable: common.ErrMalformedToken for undecodable
// input, common.ErrBadSignature for a signature mismatch,
// common.ErrTokenExpired once now reaches the expiry claim.
func (c *Codec) Verify(tokenText string) (*Claims, error) {
	if tokenText == "" {
		return nil, common.ErrMalformedToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenText, claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, common.ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		default:
			return nil, common.ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// IsValidFor reports whether tokenText is a valid access token issued to the
// given user. Any verification failure collapses to false; this is the
// input-error-tolerant boundary used by request authentication.
func (c *Codec) IsValidFor(tokenText string, user *models.User) bool {
	if user == nil {
		return false
	}
	claims, err := c.Verify(tokenText)
	if err != nil {
		return false
	}
	return claims.Subject == user.Username
}
