package handler

import "time"

type createClientRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	// CPF accepts 11 bare digits or up to 14 characters with punctuation.
	CPF   string `json:"cpf"   validate:"required,min=11,max=14"`
	Phone string `json:"phone" validate:"omitempty"`
}

// updateClientRequest is a partial update: only fields present in the JSON
// payload are applied. CPF is immutable and intentionally absent.
type updateClientRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type deleteClientResponse struct {
	Detail string `json:"detail"`
}
