package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/incubadora-iot/core/internal/auth"
	"github.com/incubadora-iot/core/internal/infrastructure/config"
	"github.com/incubadora-iot/core/internal/infrastructure/logging"
	"github.com/incubadora-iot/core/internal/record"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

// testServer creates a Server backed by in-memory SQLite, with the hub
// running so broadcast paths are exercised.
func testServer(t *testing.T) *Server {
	t.Helper()
	return testServerWithSecret(t, testSecret)
}

func testServerWithSecret(t *testing.T, secret string) *Server {
	t.Helper()

	db := setupTestDB(t)
	users := auth.NewUserRepository(db)
	records := record.NewRepository(db)
	authSvc := auth.NewService(users, secret)

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS: config.WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logger:  log,
		Auth:    authSvc,
		Users:   users,
		Records: records,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv.hub = NewHub(srv.wsCfg, log)
	srv.hub.createReading = func(ctx context.Context, payload []byte) error {
		_, err := srv.createRecord(ctx, payload)
		return err
	}
	go srv.hub.Run(ctx)

	return srv
}

// setupTestDB creates an in-memory SQLite database with both schemas.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			paternal_surname TEXT NOT NULL,
			maternal_surname TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;
		CREATE TABLE readings (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL CHECK (kind IN ('Sensor', 'Actuador')),
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		) STRICT;
	`
	if _, execErr := db.Exec(schema); execErr != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", execErr)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// doRequest runs a request through the full router and returns the recorder.
func doRequest(t *testing.T, srv *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorder body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// registerUser creates an account via the HTTP surface and returns its id.
func registerUser(t *testing.T, srv *Server, email, password string) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/users", map[string]string{
		"nombre":    "María",
		"apellidoP": "Fernández",
		"apellidoM": "Reyes",
		"email":     email,
		"password":  password,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var user auth.User
	decodeBody(t, rec, &user)
	return user.ID
}

// loginUser logs in via the HTTP surface and returns the token.
func loginUser(t *testing.T, srv *Server, email, password string) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	decodeBody(t, rec, &resp)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	db := setupTestDB(t)
	users := auth.NewUserRepository(db)

	if _, err := New(Deps{}); err == nil {
		t.Error("New without logger should fail")
	}
	if _, err := New(Deps{Logger: log, Auth: auth.NewService(users, "x"), Users: users}); err == nil {
		t.Error("New without record repository should fail")
	}
}
