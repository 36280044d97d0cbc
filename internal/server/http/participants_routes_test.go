package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func TestParticipants_CreateAndStats(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")

	rr := do(t, s, http.MethodPost, "/participants", sup, map[string]any{"nome": "Só Nome"})
	if rr.Code != http.StatusBadRequest || decode(t, rr)["error"] != "Nome, email e senha são obrigatórios" {
		t.Fatalf("missing fields: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, s, http.MethodPost, "/participants", sup, map[string]any{
		"nome": "Bruno", "email": "bruno@example.com", "senha": "segredo", "idade": 15,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	created := decode(t, rr)["data"].(map[string]any)
	if created["cargo"] != "aluno" {
		t.Fatalf("cargo = %v", created["cargo"])
	}
	if _, leaked := created["senha"]; leaked {
		t.Fatalf("senha leaked in response: %s", rr.Body.String())
	}
	brunoID := uint(created["id"].(float64))

	// duplicate email
	rr = do(t, s, http.MethodPost, "/participants", sup, map[string]any{
		"nome": "Outro", "email": "bruno@example.com", "senha": "x",
	})
	if rr.Code != http.StatusConflict || decode(t, rr)["error"] != "Este email já está sendo usado" {
		t.Fatalf("duplicate email: %d %s", rr.Code, rr.Body.String())
	}

	// created participant can log in
	rr = do(t, s, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "bruno@example.com", "password": "segredo",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login as created participant: %d %s", rr.Code, rr.Body.String())
	}

	// no play history yet
	rr = do(t, s, http.MethodGet, "/participants", "", nil)
	arr := decode(t, rr)["data"].([]any)
	if len(arr) != 1 {
		t.Fatalf("participants = %d", len(arr))
	}
	st := arr[0].(map[string]any)["estatisticas"].(map[string]any)
	if st["totalJogos"].(float64) != 0 || st["jogoMaisJogado"] != "Nenhum" {
		t.Fatalf("empty stats: %v", st)
	}

	// two sessions of Uno, one of Domino
	uno := createGame(t, s, sup, "Uno")
	domino := createGame(t, s, sup, "Domino")
	evento := createEvent(t, s, sup, "Tarde Livre")
	sala := eventRoomID(t, s, sup, evento)
	createRecord(t, s, sup, uno, evento, sala, []uint{brunoID})
	createRecord(t, s, sup, uno, evento, sala, []uint{brunoID})
	createRecord(t, s, sup, domino, evento, sala, []uint{brunoID})

	rr = do(t, s, http.MethodGet, "/participants", "", nil)
	st = decode(t, rr)["data"].([]any)[0].(map[string]any)["estatisticas"].(map[string]any)
	if st["totalJogos"].(float64) != 3 || st["jogosUnicos"].(float64) != 2 {
		t.Fatalf("stats: %v", st)
	}
	if st["jogoMaisJogado"] != "Uno" {
		t.Fatalf("jogoMaisJogado = %v", st["jogoMaisJogado"])
	}
}

func TestParticipants_GetUpdateDelete(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	_, alunoID := registerUser(t, s, "aluno")

	rr := do(t, s, http.MethodGet, fmt.Sprintf("/participants/%d", alunoID), "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: %d %s", rr.Code, rr.Body.String())
	}

	// supervisors are not listed as participants
	_, supID := registerUser(t, s, "supervisor")
	rr = do(t, s, http.MethodGet, fmt.Sprintf("/participants/%d", supID), "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("supervisor as participant: %d", rr.Code)
	}

	rr = do(t, s, http.MethodPut, fmt.Sprintf("/participants/%d", alunoID), sup, map[string]any{
		"nome": "Renomeado", "email": "renomeado@example.com",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body.String())
	}
	if decode(t, rr)["data"].(map[string]any)["nome"] != "Renomeado" {
		t.Fatalf("nome not updated: %s", rr.Body.String())
	}

	// email conflict against someone else
	_, outroID := registerUser(t, s, "aluno")
	rr = do(t, s, http.MethodPut, fmt.Sprintf("/participants/%d", outroID), sup, map[string]any{
		"email": "renomeado@example.com",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("email conflict: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, s, http.MethodDelete, fmt.Sprintf("/participants/%d", outroID), sup, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rr.Code, rr.Body.String())
	}
	rr = do(t, s, http.MethodGet, fmt.Sprintf("/participants/%d", outroID), "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("deleted participant still present: %d", rr.Code)
	}
}

func TestParticipants_DeleteGuard(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	_, alunoID := registerUser(t, s, "aluno")
	jogo := createGame(t, s, sup, "Pife")
	evento := createEvent(t, s, sup, "Noite de Pife")
	sala := eventRoomID(t, s, sup, evento)
	createRecord(t, s, sup, jogo, evento, sala, []uint{alunoID})

	rr := do(t, s, http.MethodDelete, fmt.Sprintf("/participants/%d", alunoID), sup, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("delete with history: %d %s", rr.Code, rr.Body.String())
	}
	if decode(t, rr)["error"] != "Não é possível excluir um participante que possui histórico de jogos" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}
}
