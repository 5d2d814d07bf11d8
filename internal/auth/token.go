package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// TokenManager issues and validates signed bearer tokens. The signing key
// is fixed at construction and shared read-only across requests, so the
// manager is safe for concurrent use. Verification pins HS256; the
// algorithm is never taken from the token itself.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager. ttlMillis <= 0 falls back to 7 days.
func NewTokenManager(secret string, ttlMillis int64) *TokenManager {
	ttl := time.Duration(ttlMillis) * time.Millisecond
	if ttlMillis <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for the given subject (the user's email). Expiry is
// always issued-at plus the configured TTL. Each token carries a unique
// jti so two tokens minted for the same subject never collide.
func (tm *TokenManager) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ExtractSubject verifies the signature and returns the subject claim.
// Any structural or signature failure reports ok=false rather than an
// error, so callers treat malformed tokens exactly like missing ones.
func (tm *TokenManager) ExtractSubject(tokenStr string) (string, bool) {
	claims, err := tm.parse(tokenStr)
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// IsValid reports whether the token is well signed, carries the expected
// subject, and has not expired. An expired but well-signed token is false.
func (tm *TokenManager) IsValid(tokenStr, expectedSubject string) bool {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return false
	}
	if claims.Subject != expectedSubject {
		return false
	}
	return claims.ExpiresAt != nil && time.Now().Before(claims.ExpiresAt.Time)
}

// parse checks structure and signature only; expiry is evaluated by
// IsValid so that ExtractSubject stays usable on expired tokens.
func (tm *TokenManager) parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
