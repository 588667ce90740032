package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

type stubInventoryService struct {
	insertID  int64
	insertErr error
	lastInput ports.ServerInput
	rows      []domain.Row
	dedup     ports.DedupResult
	deleteErr error
}

func (s *stubInventoryService) InsertServer(_ context.Context, in ports.ServerInput) (int64, error) {
	s.lastInput = in
	return s.insertID, s.insertErr
}

func (s *stubInventoryService) SetServer(_ context.Context, in ports.ServerInput) (int64, error) {
	s.lastInput = in
	return s.insertID, s.insertErr
}

func (s *stubInventoryService) SetVersion(_ context.Context, _ ports.VersionInput) (int64, error) {
	return s.insertID, s.insertErr
}

func (s *stubInventoryService) VersionInfo(_ context.Context, _, _ string) ([]domain.Row, error) {
	return s.rows, nil
}

func (s *stubInventoryService) ServerInfo(_ context.Context, _, _ string) ([]domain.Row, error) {
	return s.rows, nil
}

func (s *stubInventoryService) DeleteByIP(_ context.Context, _, _ string) error {
	return s.deleteErr
}

func (s *stubInventoryService) SetDBServer(_ context.Context, _ ports.DBServerInput) (ports.DedupResult, error) {
	return s.dedup, nil
}

func (s *stubInventoryService) SetUserDB(_ context.Context, _ ports.DBUserInput) (ports.DedupResult, error) {
	return s.dedup, nil
}

func newHandlerEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestInsertServerHandler_Success(t *testing.T) {
	e := newHandlerEcho()
	svc := &stubInventoryService{insertID: 42}
	h := NewInventoryHandler(svc)

	body := `{"db_table":"servers","server_name":"db-01","server_ip":"10.0.0.5","sgbd_type":"postgres"}`
	c, rec := newJSONContext(e, http.MethodPost, "/insert", body)
	if err := h.InsertServer(c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" || resp.Data.ID != 42 {
		t.Fatalf("body = %+v", resp)
	}
	if svc.lastInput.Table != "servers" || svc.lastInput.ServerIP != "10.0.0.5" {
		t.Fatalf("service got %+v", svc.lastInput)
	}
}

func TestInsertServerHandler_Validation(t *testing.T) {
	e := newHandlerEcho()
	h := NewInventoryHandler(&stubInventoryService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing table", `{"server_name":"db-01","server_ip":"10.0.0.5","sgbd_type":"postgres"}`},
		{"missing name", `{"db_table":"servers","server_ip":"10.0.0.5","sgbd_type":"postgres"}`},
		{"bad ip", `{"db_table":"servers","server_name":"db-01","server_ip":"not-an-ip","sgbd_type":"postgres"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(e, http.MethodPost, "/insert", tc.body)
			err := h.InsertServer(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("err = %v, want 400 HTTPError", err)
			}
		})
	}
}

func TestSetServerHandler_RejectsNonPositiveSoftwareID(t *testing.T) {
	e := newHandlerEcho()
	h := NewInventoryHandler(&stubInventoryService{})

	for _, body := range []string{
		`{"db_table":"servers","server_name":"db-01","server_ip":"10.0.0.5","server_env":"prod","id_software":0}`,
		`{"db_table":"servers","server_name":"db-01","server_ip":"10.0.0.5","server_env":"prod","id_software":-3}`,
	} {
		c, _ := newJSONContext(e, http.MethodPost, "/set_info_server", body)
		err := h.SetServer(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("err = %v, want 400 HTTPError", err)
		}
	}
}

func TestDeleteServerHandler_NotFoundPropagates(t *testing.T) {
	e := newHandlerEcho()
	svc := &stubInventoryService{deleteErr: domain.ErrNotFound}
	h := NewInventoryHandler(svc)

	body := `{"db_table":"servers","server_ip":"10.0.0.99"}`
	c, _ := newJSONContext(e, http.MethodDelete, "/delete", body)
	if err := h.DeleteServer(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSetDBServerHandler_ReportsExisting(t *testing.T) {
	e := newHandlerEcho()
	svc := &stubInventoryService{dedup: ports.DedupResult{ID: 7, Existed: true}}
	h := NewInventoryHandler(svc)

	body := `{"db_table":"db_servers","id_ref_server":3,"db_name":"orders"}`
	c, rec := newJSONContext(e, http.MethodPost, "/set_db_server", body)
	if err := h.SetDBServer(c); err != nil {
		t.Fatalf("set db server: %v", err)
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "exists" || resp.Data.ID != 7 {
		t.Fatalf("body = %+v", resp)
	}
}

func TestSetVersionHandler_ReportsLastInsertID(t *testing.T) {
	e := newHandlerEcho()
	svc := &stubInventoryService{insertID: 11}
	h := NewInventoryHandler(svc)

	body := `{"db_table":"software_versions","software":"postgres","version":"16.3"}`
	c, rec := newJSONContext(e, http.MethodPost, "/set_info_version", body)
	if err := h.SetVersion(c); err != nil {
		t.Fatalf("set version: %v", err)
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			LastInsertID int64 `json:"last_insert_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" || resp.Data.LastInsertID != 11 {
		t.Fatalf("body = %+v", resp)
	}
}
