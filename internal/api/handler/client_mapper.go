package handler

import (
	"github.com/luestilo/retail-api/internal/core/domain"
	"github.com/luestilo/retail-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateClientInput(req createClientRequest) ports.CreateClientInput {
	return ports.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
		Phone: req.Phone,
	}
}

func toUpdateClientInput(req updateClientRequest) ports.UpdateClientInput {
	return ports.UpdateClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
}

// --- Domain → HTTP response ---

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func toClientListResponse(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out
}
