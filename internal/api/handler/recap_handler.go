package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dbaops/inventory-api/internal/core/ports"
)

// RecapHandler handles the server recap endpoints.
type RecapHandler struct {
	service ports.RecapService
}

func NewRecapHandler(service ports.RecapService) *RecapHandler {
	return &RecapHandler{service: service}
}

type registerRecapRequest struct {
	ServerName string `json:"server_name" validate:"required"`
}

type recapValuesRequest struct {
	ServerName string            `json:"server_name" validate:"required"`
	ValueData  map[string]string `json:"value_data"  validate:"required,min=1"`
}

// Register handles POST /insert_server_recap. A server already present
// is a 409, unlike the dedup endpoints which report 200 + exists.
//
// @Summary      Register a server in the recap
// @Tags         recap
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      409  {object}  messageResponse
// @Router       /insert_server_recap [post]
func (h *RecapHandler) Register(c echo.Context) error {
	var req registerRecapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.RegisterServer(c.Request().Context(), req.ServerName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(idData{ID: id}))
}

// AddValues handles POST /insert_recap_values — one row per entry in
// value_data, attached to the named server's recap row.
//
// @Summary      Attach monitored values to a recap server
// @Tags         recap
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /insert_recap_values [post]
func (h *RecapHandler) AddValues(c echo.Context) error {
	var req recapValuesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.AddValues(c.Request().Context(), req.ServerName, req.ValueData); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("values recorded"))
}

// Values handles GET /get_recap_values — the full recap report.
//
// @Summary      Full recap report
// @Tags         recap
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /get_recap_values [get]
func (h *RecapHandler) Values(c echo.Context) error {
	rows, err := h.service.Values(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(rows))
}
