// Package token issues and verifies the HS256 bearer tokens used by the API.
//
// Tokens carry only the registered claims {sub, exp}. Access and refresh
// tokens share the same shape and differ only in lifetime, so a refresh
// token also passes verification wherever an access token is expected, and
// refresh tokens are not rotated on use.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/luestilo/retail-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config holds the signing secret and token lifetimes. It is injected at
// construction so tests can use their own secrets and clocks stay out of
// package globals.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the payload embedded in every token.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer creates signed, time-bounded tokens for a subject.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Issuer{cfg: cfg}
}

// IssueAccess returns a short-lived token whose subject is the user's email.
func (i *Issuer) IssueAccess(subject string) (string, error) {
	return i.sign(subject, i.cfg.AccessTTL)
}

// IssueRefresh returns a long-lived token with the same claim shape.
func (i *Issuer) IssueRefresh(subject string) (string, error) {
	return i.sign(subject, i.cfg.RefreshTTL)
}

func (i *Issuer) sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier validates token signature and expiry.
type Verifier struct {
	secret []byte
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{secret: []byte(cfg.Secret)}
}

// Verify parses and validates a token string, returning its claims.
// Malformed input, a bad signature, a non-HS256 algorithm, or an elapsed
// expiry all collapse into domain.ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return claims, nil
}
