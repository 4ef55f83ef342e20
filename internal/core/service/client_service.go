package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/luestilo/retail-api/internal/core/domain"
	"github.com/luestilo/retail-api/internal/core/ports"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ClientService implements CRUD over client records.
type ClientService struct {
	repo  ports.ClientRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, audit ports.AuditSink, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, audit: audit, log: log}
}

// Create persists a new client. Email and CPF are checked separately so the
// error names the offending field; concurrent inserts fall through to the
// unique indexes, which the repository maps to the same errors.
func (s *ClientService) Create(ctx context.Context, actor string, in ports.CreateClientInput) (*domain.Client, error) {
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, fmt.Errorf("create client: %w", err)
	}
	if _, err := s.repo.FindByCPF(ctx, in.CPF); err == nil {
		return nil, domain.ErrCPFTaken
	} else if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, fmt.Errorf("create client: %w", err)
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Name:      in.Name,
		Email:     in.Email,
		CPF:       in.CPF,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	s.recordAudit(actor, domain.AuditClientCreated, created.ID)
	s.log.Info().Str("client_id", created.ID).Str("actor", actor).Msg("client created")

	return created, nil
}

// Get retrieves a client by id.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. Only fields present in the input are
// merged, field by field; CPF never changes.
func (s *ClientService) Update(ctx context.Context, actor, id string, in ports.UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	client.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, err
	}

	s.recordAudit(actor, domain.AuditClientUpdated, id)

	return updated, nil
}

// Delete removes a client by id.
func (s *ClientService) Delete(ctx context.Context, actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	s.recordAudit(actor, domain.AuditClientDeleted, id)
	s.log.Info().Str("client_id", id).Str("actor", actor).Msg("client deleted")

	return nil
}

// List returns clients matching the optional name/email filters within the
// skip/limit window.
func (s *ClientService) List(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error) {
	if in.Skip < 0 {
		in.Skip = 0
	}
	if in.Limit <= 0 {
		in.Limit = defaultListLimit
	}
	if in.Limit > maxListLimit {
		in.Limit = maxListLimit
	}
	return s.repo.List(ctx, in)
}

func (s *ClientService) recordAudit(actor, action, clientID string) {
	s.audit.Enqueue(domain.AuditEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "client",
		EntityID: clientID,
		At:       time.Now().UTC(),
	})
}
