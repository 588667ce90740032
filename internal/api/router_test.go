package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dbaops/inventory-api/internal/infrastructure/credstore"
	"github.com/dbaops/inventory-api/internal/infrastructure/session"
)

// The lifecycle test exercises the full stack — router, auth middleware,
// auth service, session store, error handler — over httptest. It only
// touches routes that never reach the database, so the pool stays nil.
func TestRouter_SessionLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"alice":"`+string(hash)+`"}`), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	creds, err := credstore.LoadFile(path)
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}

	sessions := session.NewMemoryStore(0)
	e := NewRouter(nil, nil, sessions, creds, nil, time.Second, zerolog.Nop())

	do := func(method, target, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// Liveness is whitelisted.
	if rec := do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}

	// Protected routes reject requests without a token.
	if rec := do(http.MethodPost, "/insert", `{}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated insert status = %d, want 401", rec.Code)
	}

	// Login failures.
	if rec := do(http.MethodPost, "/login", `{"username":"alice"}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password status = %d, want 400", rec.Code)
	}
	if rec := do(http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", rec.Code)
	}

	// Successful login issues a token.
	rec := do(http.MethodPost, "/login", `{"username":"alice","password":"s3cret"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Status != "success" || login.Token == "" {
		t.Fatalf("login body = %+v", login)
	}

	// The token opens protected routes: logout succeeds with it.
	if rec := do(http.MethodPost, "/logout", "", login.Token); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rec.Code)
	}

	// After logout the same token is rejected.
	rec = do(http.MethodPost, "/logout", "", login.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused token status = %d, want 401", rec.Code)
	}
	var failure struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &failure); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if failure.Status != "error" || failure.Message == "" {
		t.Fatalf("error body = %+v", failure)
	}
}
