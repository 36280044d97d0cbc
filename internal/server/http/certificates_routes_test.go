package httpserver

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"
)

func TestCertificateCodeFormat(t *testing.T) {
	at := time.UnixMilli(1770000123456)
	got := certificateCode("Copa de Xadrez Municipal", "Ana Beatriz Lima", at)
	if got != "CERT-COPADEXA-ANAB-123456" {
		t.Fatalf("code = %q", got)
	}
	// short names are kept whole
	if got := certificateCode("Uno", "Li", at); got != "CERT-UNO-LI-123456" {
		t.Fatalf("short code = %q", got)
	}
}

func finalizeEvent(t *testing.T, s *Server, sup string, evento uint) {
	t.Helper()
	rr := do(t, s, http.MethodPatch, fmt.Sprintf("/events/%d", evento), sup, map[string]any{"status": "finalizado"})
	if rr.Code != http.StatusOK {
		t.Fatalf("finalize: %d %s", rr.Code, rr.Body.String())
	}
}

func TestCertificates_IssueRules(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	_, alunoID := registerUser(t, s, "aluno")
	evento := createEvent(t, s, sup, "Copa de Xadrez")

	body := map[string]any{"eventoId": evento, "participanteId": alunoID, "horasParticipacao": 4}

	// event still planejado
	rr := do(t, s, http.MethodPost, "/certificates", sup, body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("issue on planned event: %d %s", rr.Code, rr.Body.String())
	}
	if decode(t, rr)["error"] != "Só é possível gerar certificados para eventos finalizados" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}

	finalizeEvent(t, s, sup, evento)

	rr = do(t, s, http.MethodPost, "/certificates", sup, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("issue: %d %s", rr.Code, rr.Body.String())
	}
	cert := decode(t, rr)["data"].(map[string]any)
	code := cert["codigoCertificado"].(string)
	// CERT-<event fragment, first 8>-<name fragment, first 4>-<6 digits>
	if !regexp.MustCompile(`^CERT-COPADEXA-[A-ZÀ-Ü0-9]{1,4}-\d{6}$`).MatchString(code) {
		t.Fatalf("unexpected code %q", code)
	}
	if cert["horasParticipacao"].(float64) != 4 {
		t.Fatalf("horas = %v", cert["horasParticipacao"])
	}

	// second issue for the same pair
	rr = do(t, s, http.MethodPost, "/certificates", sup, body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate issue: %d", rr.Code)
	}
	if decode(t, rr)["error"] != "Certificado já foi emitido para este participante neste evento" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}
}

func TestCertificates_IssueValidation(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	_, alunoID := registerUser(t, s, "aluno")

	rr := do(t, s, http.MethodPost, "/certificates", sup, map[string]any{"eventoId": 1})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", rr.Code)
	}

	rr = do(t, s, http.MethodPost, "/certificates", sup, map[string]any{
		"eventoId": 4242, "participanteId": alunoID, "horasParticipacao": 2,
	})
	if rr.Code != http.StatusNotFound || decode(t, rr)["error"] != "Evento não encontrado" {
		t.Fatalf("unknown event: %d %s", rr.Code, rr.Body.String())
	}

	evento := createEvent(t, s, sup, "Finalizado")
	finalizeEvent(t, s, sup, evento)
	rr = do(t, s, http.MethodPost, "/certificates", sup, map[string]any{
		"eventoId": evento, "participanteId": 4242, "horasParticipacao": 2,
	})
	if rr.Code != http.StatusNotFound || decode(t, rr)["error"] != "Participante não encontrado" {
		t.Fatalf("unknown participant: %d %s", rr.Code, rr.Body.String())
	}
}

func TestCertificates_Visibility(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	aluno1, id1 := registerUser(t, s, "aluno")
	_, id2 := registerUser(t, s, "aluno")
	evento := createEvent(t, s, sup, "Encerramento")
	finalizeEvent(t, s, sup, evento)

	for _, pid := range []uint{id1, id2} {
		rr := do(t, s, http.MethodPost, "/certificates", sup, map[string]any{
			"eventoId": evento, "participanteId": pid, "horasParticipacao": 3,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("issue for %d: %d %s", pid, rr.Code, rr.Body.String())
		}
	}

	rr := do(t, s, http.MethodGet, "/certificates", sup, nil)
	if got := len(decode(t, rr)["data"].([]any)); got != 2 {
		t.Fatalf("supervisor sees %d certificates", got)
	}

	rr = do(t, s, http.MethodGet, "/certificates", aluno1, nil)
	certs := decode(t, rr)["data"].([]any)
	if len(certs) != 1 {
		t.Fatalf("aluno sees %d certificates", len(certs))
	}
	if uint(certs[0].(map[string]any)["participanteId"].(float64)) != id1 {
		t.Fatalf("aluno sees someone else's certificate")
	}
}

func TestCertificates_EnrolleesListing(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	aluno, _ := registerUser(t, s, "aluno")
	evento := createEvent(t, s, sup, "Com Inscritos")
	do(t, s, http.MethodPost, "/enrollments", aluno, map[string]any{"eventoId": evento})

	rr := do(t, s, http.MethodGet, fmt.Sprintf("/certificates?eventoId=%d", evento), aluno, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("aluno enrollee listing: %d", rr.Code)
	}

	rr = do(t, s, http.MethodGet, fmt.Sprintf("/certificates?eventoId=%d", evento), sup, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("enrollee listing: %d %s", rr.Code, rr.Body.String())
	}
	arr := decode(t, rr)["data"].([]any)
	if len(arr) != 1 {
		t.Fatalf("enrollees = %d", len(arr))
	}
	p := arr[0].(map[string]any)
	if p["nome"] == "" || p["email"] == "" {
		t.Fatalf("enrollee summary incomplete: %s", rr.Body.String())
	}
}

func TestCertificates_BulkIssuance(t *testing.T) {
	s := newTestServer(t)
	sup, _ := registerUser(t, s, "supervisor")
	aluno1, id1 := registerUser(t, s, "aluno")
	aluno2, _ := registerUser(t, s, "aluno")
	evento := createEvent(t, s, sup, "Em Lote")
	do(t, s, http.MethodPost, "/enrollments", aluno1, map[string]any{"eventoId": evento})
	do(t, s, http.MethodPost, "/enrollments", aluno2, map[string]any{"eventoId": evento})
	finalizeEvent(t, s, sup, evento)

	// pre-issue one so the batch has a failure to account for
	rr := do(t, s, http.MethodPost, "/certificates", sup, map[string]any{
		"eventoId": evento, "participanteId": id1, "horasParticipacao": 2,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("pre-issue: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, s, http.MethodPost, "/certificates/all", sup, map[string]any{
		"eventoId": evento, "horasParticipacao": 2,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("bulk: %d %s", rr.Code, rr.Body.String())
	}
	data := decode(t, rr)["data"].(map[string]any)
	if data["emitidos"].(float64) != 1 || data["falhas"].(float64) != 1 || data["total"].(float64) != 2 {
		t.Fatalf("accounting = %s", rr.Body.String())
	}

	// the succeeded item stayed issued
	rr = do(t, s, http.MethodGet, "/certificates", sup, nil)
	if got := len(decode(t, rr)["data"].([]any)); got != 2 {
		t.Fatalf("certificates after bulk = %d", got)
	}
}
