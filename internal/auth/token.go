package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload embedded in every Warden session token: the
// username and the role set held at signing time, plus the standard
// registered claims (expiry, issued-at, jti).
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}

// TokenCodec encodes and decodes self-contained signed session tokens.
//
// A codec is bound to one signing secret and one lifetime at construction.
// The access and renewal token types each get their own codec so that
// compromise of one secret never compromises the other, and so a renewal
// token can never pass verification where an access token is expected.
//
// Encode and Decode are pure computations with no shared mutable state;
// a codec is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec for one token type. An empty secret or
// non-positive lifetime is a configuration fault and fails construction,
// so key misconfiguration surfaces at startup rather than on first use.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("token codec: empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token codec: non-positive lifetime %v", ttl)
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the lifetime stamped into tokens this codec encodes.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Encode signs a token carrying the given username and role set, expiring
// at now + the codec's lifetime.
func (c *TokenCodec) Encode(username string, roles []Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
		Username: username,
		Roles:    roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns its claims.
//
// The signature is checked before any claim is trusted, including the
// expiry, so a forged expiry can never pass. Failures collapse to exactly
// two sentinels: ErrTokenExpired for a well-signed token past its expiry,
// ErrTokenInvalid for everything else (tampering, wrong key, wrong
// algorithm, malformed input). A token that is both tampered and expired
// reports ErrTokenInvalid.
func (c *TokenCodec) Decode(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrTokenInvalid)
	}

	return claims, nil
}

// encodeExpired is a test seam: it signs a token whose expiry is already
// in the past, which Encode by construction cannot produce.
func (c *TokenCodec) encodeExpired(username string, roles []Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * c.ttl)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-c.ttl)),
			ID:        uuid.NewString(),
		},
		Username: username,
		Roles:    roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}
