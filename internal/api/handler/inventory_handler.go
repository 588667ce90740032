package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dbaops/inventory-api/internal/core/ports"
)

// InventoryHandler handles the dynamic inventory endpoints.
type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// InsertServer handles POST /insert — registers a monitored server.
//
// @Summary      Register a monitored server
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      insertServerRequest  true  "Server details"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /insert [post]
func (h *InventoryHandler) InsertServer(c echo.Context) error {
	var req insertServerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.InsertServer(c.Request().Context(), ports.ServerInput{
		Table:      req.DBTable,
		ServerName: req.ServerName,
		ServerIP:   req.ServerIP,
		SGBDType:   req.SGBDType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(idData{ID: id}))
}

// VersionInfo handles POST /get_info_version — rows for one version.
//
// @Summary      List rows matching a software version
// @Tags         inventory
// @Security     BearerAuth
// @Router       /get_info_version [post]
func (h *InventoryHandler) VersionInfo(c echo.Context) error {
	var req versionInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rows, err := h.service.VersionInfo(c.Request().Context(), req.DBTable, req.Version)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(rows))
}

// ServerInfo handles POST /get_info_server — rows for one server name.
//
// @Summary      List rows matching a server name
// @Tags         inventory
// @Security     BearerAuth
// @Router       /get_info_server [post]
func (h *InventoryHandler) ServerInfo(c echo.Context) error {
	var req serverInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rows, err := h.service.ServerInfo(c.Request().Context(), req.DBTable, req.ServerName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(rows))
}

// SetVersion handles POST /set_info_version — records a software/version
// pair and reports the driver-assigned id.
//
// @Summary      Record a software version
// @Tags         inventory
// @Security     BearerAuth
// @Router       /set_info_version [post]
func (h *InventoryHandler) SetVersion(c echo.Context) error {
	var req setVersionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.SetVersion(c.Request().Context(), ports.VersionInput{
		Table:    req.DBTable,
		Software: req.Software,
		Version:  req.Version,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(lastInsertData{LastInsertID: id}))
}

// SetServer handles POST /set_info_server — records a server row linked
// to an installed software id.
//
// @Summary      Record a server with its software link
// @Tags         inventory
// @Security     BearerAuth
// @Router       /set_info_server [post]
func (h *InventoryHandler) SetServer(c echo.Context) error {
	var req setServerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.SetServer(c.Request().Context(), ports.ServerInput{
		Table:      req.DBTable,
		ServerName: req.ServerName,
		ServerIP:   req.ServerIP,
		ServerEnv:  req.ServerEnv,
		IDSoftware: req.IDSoftware,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(idData{ID: id}))
}

// DeleteServer handles DELETE /delete — removes rows by server IP.
// Zero matching rows is a 404, not a silent success.
//
// @Summary      Delete rows by server IP
// @Tags         inventory
// @Security     BearerAuth
// @Router       /delete [delete]
func (h *InventoryHandler) DeleteServer(c echo.Context) error {
	var req deleteServerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.DeleteByIP(c.Request().Context(), req.DBTable, req.ServerIP); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("deleted"))
}

// SetDBServer handles POST /set_db_server — dedup insert of a database
// name under a reference server.
//
// @Summary      Link a database to a server (dedup)
// @Tags         inventory
// @Security     BearerAuth
// @Router       /set_db_server [post]
func (h *InventoryHandler) SetDBServer(c echo.Context) error {
	var req setDBServerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.SetDBServer(c.Request().Context(), ports.DBServerInput{
		Table:       req.DBTable,
		IDRefServer: req.IDRefServer,
		DBName:      req.DBName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dedupResponse(res.ID, res.Existed))
}

// SetUserDB handles POST /set_user_db — dedup insert of a database
// account under a reference server.
//
// @Summary      Link a database account to a server (dedup)
// @Tags         inventory
// @Security     BearerAuth
// @Router       /set_user_db [post]
func (h *InventoryHandler) SetUserDB(c echo.Context) error {
	var req setUserDBRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.SetUserDB(c.Request().Context(), ports.DBUserInput{
		Table:        req.DBTable,
		IDRefServers: req.IDRefServers,
		DBUser:       req.DBUser,
		DBHost:       req.DBHost,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dedupResponse(res.ID, res.Existed))
}

// bindAndValidate decodes the JSON body and runs struct validation;
// failures surface as 400s.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
