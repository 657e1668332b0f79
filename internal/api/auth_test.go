package api

import (
	"net/http"
	"testing"
)

func TestLogin_RoundTrip(t *testing.T) {
	srv := testServer(t)
	registerUser(t, srv, "maria@example.com", "secreta123")

	token := loginUser(t, srv, "maria@example.com", "secreta123")
	if token == "" {
		t.Fatal("login should return a token")
	}

	// The token opens the guarded profile endpoint.
	rec := doRequest(t, srv, http.MethodGet, "/users/perfil", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("perfil status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var profile map[string]any
	decodeBody(t, rec, &profile)
	if profile["userId"] == "" {
		t.Errorf("profile should carry the user id: %v", profile)
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	srv := testServer(t)
	registerUser(t, srv, "maria@example.com", "secreta123")

	unknown := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email": "ghost@example.com", "password": "secreta123",
	}, nil)
	wrong := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email": "maria@example.com", "password": "otraClave",
	}, nil)

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d; want 401, 401", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Errorf("bodies differ: %q vs %q", unknown.Body.String(), wrong.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email": "maria@example.com",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLogin_NoSigningSecret(t *testing.T) {
	srv := testServerWithSecret(t, "")
	registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email": "maria@example.com", "password": "secreta123",
	}, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error == "" {
		t.Error("500 response should carry an error body")
	}
}

func TestGuard_MissingToken(t *testing.T) {
	srv := testServer(t)
	id := registerUser(t, srv, "maria@example.com", "secreta123")

	for _, path := range []string{"/users/perfil", "/users/" + id} {
		rec := doRequest(t, srv, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, rec.Code)
		}
		var body errorResponse
		decodeBody(t, rec, &body)
		if body.Error == "" {
			t.Errorf("GET %s should return an error body", path)
		}
	}
}

func TestGuard_BadToken(t *testing.T) {
	srv := testServer(t)
	registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodGet, "/users/perfil", nil, map[string]string{
		"Authorization": "Bearer not.a.valid.token",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGuard_GetUserWithToken(t *testing.T) {
	srv := testServer(t)
	id := registerUser(t, srv, "maria@example.com", "secreta123")
	token := loginUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodGet, "/users/"+id, nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var user map[string]any
	decodeBody(t, rec, &user)
	if user["email"] != "maria@example.com" {
		t.Errorf("unexpected user: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must not be serialised")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := testServer(t)
	registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodPost, "/users", map[string]string{
		"nombre":    "Otra",
		"apellidoP": "Persona",
		"apellidoM": "Más",
		"email":     "maria@example.com",
		"password":  "distinta456",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestUpdateUser_KeepsPasswordWhenOmitted(t *testing.T) {
	srv := testServer(t)
	id := registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodPut, "/users/"+id, map[string]string{
		"nombre": "María José",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Old password still logs in.
	loginUser(t, srv, "maria@example.com", "secreta123")
}

func TestUpdateUser_ChangesPassword(t *testing.T) {
	srv := testServer(t)
	id := registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodPut, "/users/"+id, map[string]string{
		"password": "nuevaClave789",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	loginUser(t, srv, "maria@example.com", "nuevaClave789")

	old := doRequest(t, srv, http.MethodPost, "/api/login", map[string]string{
		"email": "maria@example.com", "password": "secreta123",
	}, nil)
	if old.Code != http.StatusUnauthorized {
		t.Errorf("old password status = %d, want 401", old.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	srv := testServer(t)
	id := registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodDelete, "/users/"+id, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	again := doRequest(t, srv, http.MethodDelete, "/users/"+id, nil, nil)
	if again.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", again.Code)
	}
}

func TestListUsers_Public(t *testing.T) {
	srv := testServer(t)
	registerUser(t, srv, "maria@example.com", "secreta123")

	rec := doRequest(t, srv, http.MethodGet, "/users", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var users []map[string]any
	decodeBody(t, rec, &users)
	if len(users) != 1 {
		t.Errorf("user count = %d, want 1", len(users))
	}
}
