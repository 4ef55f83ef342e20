package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/luestilo/retail-api/internal/api/middleware"
	"github.com/luestilo/retail-api/internal/core/domain"
	"github.com/luestilo/retail-api/internal/core/ports"
)

type stubClientService struct {
	createFn func(ctx context.Context, actor string, in ports.CreateClientInput) (*domain.Client, error)
	getFn    func(ctx context.Context, id string) (*domain.Client, error)
	updateFn func(ctx context.Context, actor, id string, in ports.UpdateClientInput) (*domain.Client, error)
	deleteFn func(ctx context.Context, actor, id string) error
	listFn   func(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error)
}

func (s *stubClientService) Create(ctx context.Context, actor string, in ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) Update(ctx context.Context, actor, id string, in ports.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubClientService) Delete(ctx context.Context, actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubClientService) List(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error) {
	return s.listFn(ctx, in)
}

func newClientContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &domain.User{ID: "u1", Email: "admin@x.com", Role: domain.RoleAdmin})
	return c, rec
}

func TestClientHandler_Create_Success(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, actor string, in ports.CreateClientInput) (*domain.Client, error) {
			if actor != "admin@x.com" {
				t.Fatalf("unexpected actor: %s", actor)
			}
			return &domain.Client{ID: "c1", Name: in.Name, Email: in.Email, CPF: in.CPF, Phone: in.Phone}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newClientContext(http.MethodPost, "/clients",
		`{"name":"Maria","email":"maria@example.com","cpf":"12345678901","phone":"11 99999-0000"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "c1" || resp["email"] != "maria@example.com" || resp["cpf"] != "12345678901" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestClientHandler_Create_DuplicateCPF(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, actor string, in ports.CreateClientInput) (*domain.Client, error) {
			return nil, domain.ErrCPFTaken
		},
	}
	h := NewClientHandler(stub)

	c, _ := newClientContext(http.MethodPost, "/clients",
		`{"name":"Maria","email":"maria@example.com","cpf":"12345678901"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrCPFTaken) {
		t.Fatalf("expected ErrCPFTaken to propagate, got %v", err)
	}
}

func TestClientHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, actor string, in ports.CreateClientInput) (*domain.Client, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewClientHandler(stub)

	for name, body := range map[string]string{
		"missing cpf": `{"name":"Maria","email":"maria@example.com"}`,
		"short cpf":   `{"name":"Maria","email":"maria@example.com","cpf":"123"}`,
		"bad email":   `{"name":"Maria","email":"nope","cpf":"12345678901"}`,
	} {
		c, _ := newClientContext(http.MethodPost, "/clients", body)
		err := h.Create(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %v", name, err)
		}
	}
}

func TestClientHandler_Create_NoUser(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestClientHandler_Get(t *testing.T) {
	stub := &stubClientService{
		getFn: func(ctx context.Context, id string) (*domain.Client, error) {
			if id != "c1" {
				return nil, domain.ErrClientNotFound
			}
			return &domain.Client{ID: "c1", Name: "Maria", Email: "maria@example.com", CPF: "12345678901"}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newClientContext(http.MethodGet, "/clients/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	stub := &stubClientService{
		getFn: func(ctx context.Context, id string) (*domain.Client, error) {
			return nil, domain.ErrClientNotFound
		},
	}
	h := NewClientHandler(stub)

	c, _ := newClientContext(http.MethodGet, "/clients/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound to propagate, got %v", err)
	}
}

func TestClientHandler_Update_PartialBody(t *testing.T) {
	var got ports.UpdateClientInput
	stub := &stubClientService{
		updateFn: func(ctx context.Context, actor, id string, in ports.UpdateClientInput) (*domain.Client, error) {
			got = in
			return &domain.Client{ID: id, Name: "Maria", Email: "maria@example.com", CPF: "12345678901", Phone: *in.Phone}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newClientContext(http.MethodPut, "/clients/c1", `{"phone":"21 98888-7777"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got.Name != nil || got.Email != nil {
		t.Fatalf("absent fields should stay nil: %+v", got)
	}
	if got.Phone == nil || *got.Phone != "21 98888-7777" {
		t.Fatalf("phone not carried through: %+v", got.Phone)
	}
}

func TestClientHandler_Delete(t *testing.T) {
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, actor, id string) error {
			if id != "c1" {
				return domain.ErrClientNotFound
			}
			return nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newClientContext(http.MethodDelete, "/clients/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["detail"] != "client deleted" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestClientHandler_List_PassesFiltersAndWindow(t *testing.T) {
	var got ports.ListClientsInput
	stub := &stubClientService{
		listFn: func(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error) {
			got = in
			return []*domain.Client{
				{ID: "c1", Name: "Maria", Email: "maria@example.com", CPF: "12345678901"},
			}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newClientContext(http.MethodGet, "/clients?name=mar&email=example&skip=5&limit=20", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got.Name != "mar" || got.Email != "example" || got.Skip != 5 || got.Limit != 20 {
		t.Fatalf("filters not carried through: %+v", got)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a bare array body: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != "c1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestClientHandler_List_BadWindowFallsBack(t *testing.T) {
	var got ports.ListClientsInput
	stub := &stubClientService{
		listFn: func(ctx context.Context, in ports.ListClientsInput) ([]*domain.Client, error) {
			got = in
			return nil, nil
		},
	}
	h := NewClientHandler(stub)

	c, _ := newClientContext(http.MethodGet, "/clients?skip=abc&limit=-", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Skip != 0 || got.Limit != 0 {
		t.Fatalf("expected fallback window, got %+v", got)
	}
}
