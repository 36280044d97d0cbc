package httpserver

import (
	"net/http"
	"testing"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "ana@example.com",
		"password": "segredo123",
		"nome":     "Ana",
		"cargo":    "supervisor",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	m := decode(t, rr)
	if m["success"] != true || m["token"] == "" {
		t.Fatalf("unexpected register response: %s", rr.Body.String())
	}

	// same email again
	rr = do(t, s, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "ana@example.com",
		"password": "outra",
		"nome":     "Ana 2",
		"cargo":    "aluno",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate register: %d", rr.Code)
	}
	if decode(t, rr)["error"] != "Usuário já existe com este email" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}

	rr = do(t, s, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "errada",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rr.Code)
	}
	if decode(t, rr)["error"] != "Credenciais inválidas" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}

	rr = do(t, s, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "segredo123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	tok := decode(t, rr)["token"].(string)

	rr = do(t, s, http.MethodGet, "/auth/verify", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", rr.Code, rr.Body.String())
	}
	user := decode(t, rr)["user"].(map[string]any)
	if user["email"] != "ana@example.com" || user["cargo"] != "supervisor" {
		t.Fatalf("unexpected claims: %s", rr.Body.String())
	}
}

func TestAuth_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "x@example.com",
		"password": "p",
		"nome":     "X",
		"cargo":    "diretor",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid cargo: %d", rr.Code)
	}

	rr = do(t, s, http.MethodPost, "/auth/register", "", map[string]any{"email": "x@example.com"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", rr.Code)
	}
}

func TestAuth_TokenErrors(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/auth/verify", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rr.Code)
	}
	if decode(t, rr)["error"] != "Token não fornecido" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}

	rr = do(t, s, http.MethodGet, "/auth/verify", "not-a-token", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", rr.Code)
	}
	if decode(t, rr)["error"] != "Token inválido" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}
}

func TestAuth_LoginRateLimit(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s, "aluno")

	body := map[string]any{"email": "limitado@example.com", "password": "errada"}
	for i := 0; i < 10; i++ {
		rr := do(t, s, http.MethodPost, "/auth/login", "", body)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: %d", i, rr.Code)
		}
	}
	rr := do(t, s, http.MethodPost, "/auth/login", "", body)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rr.Code)
	}
}
