package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/luestilo/retail-api/internal/api/metrics"
	"github.com/luestilo/retail-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client-record CRUD.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /clients.
//
// @Summary      Create a client record
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.Create(c.Request().Context(), user.Email, toCreateClientInput(req))
	if err != nil {
		return err
	}

	metrics.ClientOpsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Get handles GET /clients/:id.
//
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	client, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update handles PUT /clients/:id — a partial update applying only the
// fields present in the payload.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to update"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.Update(c.Request().Context(), user.Email, c.Param("id"), toUpdateClientInput(req))
	if err != nil {
		return err
	}

	metrics.ClientOpsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Delete handles DELETE /clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  deleteClientResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.Email, c.Param("id")); err != nil {
		return err
	}

	metrics.ClientOpsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteClientResponse{Detail: "client deleted"})
}

// List handles GET /clients with optional name/email substring filters and a
// skip/limit window.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        name   query     string  false  "Filter by name substring"
// @Param        email  query     string  false  "Filter by email substring"
// @Param        skip   query     int     false  "Records to skip"
// @Param        limit  query     int     false  "Max records to return (default 10)"
// @Success      200    {array}   clientResponse
// @Failure      401    {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	in := ports.ListClientsInput{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
		Skip:  intQueryParam(c, "skip", 0),
		Limit: intQueryParam(c, "limit", 0),
	}

	clients, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientListResponse(clients))
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
