package ports

import (
	"context"

	"github.com/luestilo/retail-api/internal/core/domain"
)

// CreateClientInput carries all data needed to create a client record.
type CreateClientInput struct {
	Name  string
	Email string
	CPF   string
	Phone string
}

// UpdateClientInput is an optional-field update. Only non-nil fields are
// applied; CPF is immutable once a client exists.
type UpdateClientInput struct {
	Name  *string
	Email *string
	Phone *string
}

// ListClientsInput carries the filters and window for the list endpoint.
// Name and Email are case-insensitive substring matches.
type ListClientsInput struct {
	Name  string
	Email string
	Skip  int
	Limit int
}

// ClientService defines use-case operations for client records.
type ClientService interface {
	Create(ctx context.Context, actor string, in CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, actor, id string, in UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, actor, id string) error
	List(ctx context.Context, in ListClientsInput) ([]*domain.Client, error)
}
