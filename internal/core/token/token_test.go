package token

import (
	"errors"
	"testing"
	"time"

	"github.com/luestilo/retail-api/internal/core/domain"
)

func testConfig() Config {
	return Config{Secret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 2 * time.Hour}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	cfg := testConfig()
	issuer := NewIssuer(cfg)
	verifier := NewVerifier(cfg)

	signed, err := issuer.IssueAccess("alice@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	claims, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("expected subject alice@example.com, got %q", claims.Subject)
	}
}

func TestVerify_RefreshTokenAlsoVerifies(t *testing.T) {
	// Access and refresh tokens share the same claim shape; there is no
	// type claim to tell them apart.
	cfg := testConfig()
	issuer := NewIssuer(cfg)
	verifier := NewVerifier(cfg)

	signed, err := issuer.IssueRefresh("bob@example.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	claims, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("refresh token should verify: %v", err)
	}
	if claims.Subject != "bob@example.com" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer(testConfig())
	// Sign with an already-elapsed expiry.
	signed, err := issuer.sign("carol@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	verifier := NewVerifier(testConfig())
	if _, err := verifier.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewIssuer(testConfig())
	signed, err := issuer.IssueAccess("dave@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier := NewVerifier(Config{Secret: "another-secret"})
	if _, err := verifier.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	verifier := NewVerifier(testConfig())

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := verifier.Verify(input); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", input, err)
		}
	}
}

func TestIssuer_DefaultTTLs(t *testing.T) {
	issuer := NewIssuer(Config{Secret: "s"})
	if issuer.cfg.AccessTTL != defaultAccessTTL {
		t.Fatalf("expected default access TTL, got %v", issuer.cfg.AccessTTL)
	}
	if issuer.cfg.RefreshTTL != defaultRefreshTTL {
		t.Fatalf("expected default refresh TTL, got %v", issuer.cfg.RefreshTTL)
	}
}
