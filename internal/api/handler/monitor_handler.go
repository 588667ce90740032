package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dbaops/inventory-api/internal/core/ports"
)

// MonitorHandler handles the collector feed endpoints.
type MonitorHandler struct {
	service ports.MonitorService
}

func NewMonitorHandler(service ports.MonitorService) *MonitorHandler {
	return &MonitorHandler{service: service}
}

type dbaiFeedRequest struct {
	ServerName string `json:"server_name" validate:"required"`
	MetricName string `json:"metric_name" validate:"required"`
	MetricData string `json:"metric_data" validate:"required"`
}

type snifferSampleRequest struct {
	Host      string `json:"host"       validate:"required"`
	User      string `json:"user"       validate:"required"`
	QueryText string `json:"query_text" validate:"required"`
	Count     int64  `json:"count"      validate:"min=0"`
}

type snifferRequest struct {
	Samples []snifferSampleRequest `json:"samples" validate:"required,min=1,dive"`
}

type snifferHostRequest struct {
	Host string `json:"host" validate:"required"`
	IP   string `json:"ip"   validate:"required,ip"`
}

// FeedDBAI handles POST /feed_dbai — one metric row from the dbai
// collector.
//
// @Summary      Ingest a dbai metric
// @Tags         monitor
// @Security     BearerAuth
// @Router       /feed_dbai [post]
func (h *MonitorHandler) FeedDBAI(c echo.Context) error {
	var req dbaiFeedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.service.FeedDBAI(c.Request().Context(), ports.DBAIInput{
		ServerName: req.ServerName,
		MetricName: req.MetricName,
		MetricData: req.MetricData,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successData(idData{ID: id}))
}

// Sniffer handles POST /mysql_sniffer — a batch of captured queries.
//
// @Summary      Ingest sniffer captures
// @Tags         monitor
// @Security     BearerAuth
// @Router       /mysql_sniffer [post]
func (h *MonitorHandler) Sniffer(c echo.Context) error {
	var req snifferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	samples := make([]ports.SnifferSample, 0, len(req.Samples))
	for _, s := range req.Samples {
		samples = append(samples, ports.SnifferSample{
			Host:      s.Host,
			User:      s.User,
			QueryText: s.QueryText,
			Count:     s.Count,
		})
	}

	if err := h.service.RecordSamples(c.Request().Context(), samples); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("samples recorded"))
}

// SnifferHosts handles POST /mysql_sniffer_hosts — dedup host
// registration.
//
// @Summary      Register a sniffer host (dedup)
// @Tags         monitor
// @Security     BearerAuth
// @Router       /mysql_sniffer_hosts [post]
func (h *MonitorHandler) SnifferHosts(c echo.Context) error {
	var req snifferHostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.RegisterHost(c.Request().Context(), ports.SnifferHost{
		Host: req.Host,
		IP:   req.IP,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dedupResponse(res.ID, res.Existed))
}
