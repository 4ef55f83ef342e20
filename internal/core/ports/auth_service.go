package ports

import (
	"context"

	"github.com/luestilo/retail-api/internal/core/domain"
)

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines registration, login, and token refresh.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
