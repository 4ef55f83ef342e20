package ports

import (
	"context"

	"github.com/luestilo/retail-api/internal/core/domain"
)

// ClientRepository defines the interface for client persistence. Uniqueness
// of email and cpf is backed by the store's unique indexes; Create must map
// an index violation to domain.ErrEmailTaken or domain.ErrCPFTaken.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByCPF(ctx context.Context, cpf string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, in ListClientsInput) ([]*domain.Client, error)
}
