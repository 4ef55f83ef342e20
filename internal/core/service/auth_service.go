package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/luestilo/retail-api/internal/core/domain"
	"github.com/luestilo/retail-api/internal/core/ports"
	"github.com/luestilo/retail-api/internal/core/token"
)

// AuthService implements registration, login, and token refresh.
type AuthService struct {
	users    ports.UserRepository
	issuer   *token.Issuer
	verifier *token.Verifier
	limiter  ports.LoginLimiter
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	issuer *token.Issuer,
	verifier *token.Verifier,
	limiter ports.LoginLimiter,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		issuer:   issuer,
		verifier: verifier,
		limiter:  limiter,
		audit:    audit,
		log:      log,
	}
}

// Register creates a new user with a bcrypt-hashed password. An empty role
// defaults to "user". Duplicate emails fail with domain.ErrEmailTaken — the
// pre-check covers the common case and the repository maps the unique-index
// violation for the concurrent one.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("register: unknown role %q", role)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEntry{
		Actor:    created.Email,
		Action:   domain.AuditUserRegistered,
		Entity:   "user",
		EntityID: created.ID,
		At:       now,
	})
	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")

	return created, nil
}

// Login authenticates by email and password and issues an access/refresh
// pair with the email as subject. Unknown email and wrong password both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login limiter")
	}
	s.audit.Enqueue(domain.AuditEntry{
		Actor:    user.Email,
		Action:   domain.AuditUserLoggedIn,
		Entity:   "user",
		EntityID: user.ID,
		At:       time.Now().UTC(),
	})

	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// incoming refresh token is returned unchanged: tokens carry no type claim
// and are not rotated on use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.verifier.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	access, err := s.issuer.IssueAccess(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// ListUsers returns all registered users.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) issueTokens(subject string) (*ports.TokenPair, error) {
	access, err := s.issuer.IssueAccess(subject)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.issuer.IssueRefresh(subject)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
