package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestRecords_BareShapes(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	_, aluno := registerUser(t, s, "aluno")
	jogo := createGame(t, s, sup, "Uno")
	evento := createEvent(t, s, sup, "Tarde")
	sala := eventRoomID(t, s, sup, evento)

	// unauthenticated: plain error body, no envelope
	rr := do(t, s, http.MethodGet, "/play-session-records", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rr.Code)
	}
	m := decode(t, rr)
	if m["error"] != "Token não fornecido" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}
	if _, hasEnvelope := m["success"]; hasEnvelope {
		t.Fatalf("bare endpoint answered with envelope: %s", rr.Body.String())
	}

	rr = do(t, s, http.MethodPost, "/play-session-records", sup, map[string]any{"jogoId": jogo})
	if rr.Code != http.StatusBadRequest || decode(t, rr)["error"] != "Dados obrigatórios não fornecidos" {
		t.Fatalf("missing fields: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, s, http.MethodPost, "/play-session-records", sup, map[string]any{
		"jogoId":          jogo,
		"eventoId":        evento,
		"salaId":          sala,
		"participanteIds": []uint{aluno},
		"observacoes":     "rodada rápida",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	rec := decode(t, rr)
	if rec["jogo"] == nil || rec["evento"] == nil || rec["sala"] == nil {
		t.Fatalf("missing includes: %s", rr.Body.String())
	}
	if len(rec["participantes"].([]any)) != 1 {
		t.Fatalf("participantes: %s", rr.Body.String())
	}
	if rec["observacoes"] != "rodada rápida" {
		t.Fatalf("observacoes = %v", rec["observacoes"])
	}
}

func TestRecords_FiltersAndPagination(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	_, a1 := registerUser(t, s, "aluno")
	_, a2 := registerUser(t, s, "aluno")
	uno := createGame(t, s, sup, "Uno")
	domino := createGame(t, s, sup, "Domino")
	evento := createEvent(t, s, sup, "Maratona")
	sala := eventRoomID(t, s, sup, evento)
	createRecord(t, s, sup, uno, evento, sala, []uint{a1})
	createRecord(t, s, sup, uno, evento, sala, []uint{a2})
	createRecord(t, s, sup, domino, evento, sala, []uint{a1})

	rr := do(t, s, http.MethodGet, "/play-session-records?limit=2", sup, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d %s", rr.Code, rr.Body.String())
	}
	var page struct {
		Registros  []json.RawMessage `json:"registros"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
			Pages int64 `json:"pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Registros) != 2 || page.Pagination.Total != 3 || page.Pagination.Pages != 2 {
		t.Fatalf("pagination: %+v", page.Pagination)
	}

	rr = do(t, s, http.MethodGet, "/play-session-records?limit=2&page=2", sup, nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page 2: %v", err)
	}
	if len(page.Registros) != 1 {
		t.Fatalf("page 2 registros = %d", len(page.Registros))
	}

	rr = do(t, s, http.MethodGet, fmt.Sprintf("/play-session-records?jogoId=%d", domino), sup, nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode filter: %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Fatalf("jogo filter total = %d", page.Pagination.Total)
	}

	rr = do(t, s, http.MethodGet, fmt.Sprintf("/play-session-records?participanteId=%d", a2), sup, nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode participant filter: %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Fatalf("participant filter total = %d", page.Pagination.Total)
	}
}

func TestRecords_WriteIsSupervisorOnly(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	aluno, alunoID := registerUser(t, s, "aluno")
	jogo := createGame(t, s, sup, "Uno")
	evento := createEvent(t, s, sup, "Tarde")
	sala := eventRoomID(t, s, sup, evento)

	rr := do(t, s, http.MethodPost, "/play-session-records", aluno, map[string]any{
		"jogoId": jogo, "eventoId": evento, "salaId": sala, "participanteIds": []uint{alunoID},
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("aluno create record: %d", rr.Code)
	}
	// aluno can read
	rr = do(t, s, http.MethodGet, "/play-session-records", aluno, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("aluno list records: %d", rr.Code)
	}
}
