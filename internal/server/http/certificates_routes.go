package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	certsgorm "github.com/ludico-app/ludico/internal/repo/gorm/certificates"
	"github.com/ludico-app/ludico/internal/repo/gorm/events"
)

func codeFragment(nome string, max int) string {
	frag := strings.ToUpper(strings.Join(strings.Fields(nome), ""))
	runes := []rune(frag)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes)
}

// certificateCode builds the human-checkable code printed on certificates:
// CERT-<event fragment>-<name fragment>-<time suffix>. There is no collision
// retry; the millisecond suffix keeps codes distinct in practice.
func certificateCode(eventoNome, participanteNome string, now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return "CERT-" + codeFragment(eventoNome, 8) + "-" + codeFragment(participanteNome, 4) + "-" + ms[len(ms)-6:]
}

func (s *Server) addCertificateRoutes(r *gin.Engine) {
	r.GET("/certificates", func(c *gin.Context) {
		claims, ok := s.require(c)
		if !ok {
			return
		}
		if eventoID := queryUint(c, "eventoId"); eventoID != 0 {
			// confirmed enrollees of one event, for the issuance picker
			if !s.can(claims, "certificates:issue") {
				s.respondError(c, http.StatusForbidden, "Acesso negado")
				return
			}
			arr, err := s.enroll.ListConfirmedByEvent(c, eventoID)
			if err != nil {
				s.respondInternal(c, "certificates enrollees", err)
				return
			}
			type enrollee struct {
				ID    uint   `json:"id"`
				Nome  string `json:"nome"`
				Email string `json:"email"`
			}
			out := make([]enrollee, 0, len(arr))
			for _, insc := range arr {
				if insc.Participante == nil {
					continue
				}
				out = append(out, enrollee{ID: insc.Participante.ID, Nome: insc.Participante.Nome, Email: insc.Participante.Email})
			}
			s.JSON(c, http.StatusOK, gin.H{"success": true, "data": out})
			return
		}
		var (
			arr []*certsgorm.Certificate
			err error
		)
		if s.can(claims, "certificates:read-all") {
			arr, err = s.certs.List(c)
		} else {
			arr, err = s.certs.ListByParticipant(c, claims.UserID)
		}
		if err != nil {
			s.respondInternal(c, "certificates list", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": arr})
	})

	r.POST("/certificates", func(c *gin.Context) {
		if _, ok := s.require(c, "certificates:issue"); !ok {
			return
		}
		var req struct {
			EventoID          uint `json:"eventoId"`
			ParticipanteID    uint `json:"participanteId"`
			HorasParticipacao int  `json:"horasParticipacao"`
		}
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.EventoID == 0 || req.ParticipanteID == 0 || req.HorasParticipacao == 0 {
			s.respondError(c, http.StatusBadRequest, "Dados obrigatórios não fornecidos")
			return
		}
		cert, status, msg, err := s.issueCertificate(c, req.EventoID, req.ParticipanteID, req.HorasParticipacao)
		if err != nil {
			s.respondInternal(c, "certificates create", err)
			return
		}
		if msg != "" {
			s.respondError(c, status, msg)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": cert})
	})

	r.POST("/certificates/all", func(c *gin.Context) {
		if _, ok := s.require(c, "certificates:issue"); !ok {
			return
		}
		var req struct {
			EventoID          uint `json:"eventoId"`
			HorasParticipacao int  `json:"horasParticipacao"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.EventoID == 0 || req.HorasParticipacao == 0 {
			s.respondError(c, http.StatusBadRequest, "Dados obrigatórios não fornecidos")
			return
		}
		ev, err := s.events.Get(c, req.EventoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Evento não encontrado")
				return
			}
			s.respondInternal(c, "certificates all evento", err)
			return
		}
		if ev.Status != events.StatusFinalizado {
			s.respondError(c, http.StatusBadRequest, "Só é possível gerar certificados para eventos finalizados")
			return
		}
		enrollees, err := s.enroll.ListConfirmedByEvent(c, req.EventoID)
		if err != nil {
			s.respondInternal(c, "certificates all enrollees", err)
			return
		}
		// best effort: one enrollee failing (typically an already-issued
		// certificate) does not undo the others
		emitidos, falhas := 0, 0
		for _, insc := range enrollees {
			_, _, msg, err := s.issueCertificate(c, req.EventoID, insc.ParticipanteID, req.HorasParticipacao)
			if err != nil || msg != "" {
				falhas++
				continue
			}
			emitidos++
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gin.H{
			"emitidos": emitidos,
			"falhas":   falhas,
			"total":    len(enrollees),
		}})
	})
}

// issueCertificate runs the issuance invariants for one (evento, participante)
// pair. A non-empty msg is a client error with its HTTP status; err is an
// infrastructure failure.
func (s *Server) issueCertificate(c *gin.Context, eventoID, participanteID uint, horas int) (*certsgorm.Certificate, int, string, error) {
	ev, err := s.events.Get(c, eventoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, "Evento não encontrado", nil
		}
		return nil, 0, "", err
	}
	if ev.Status != events.StatusFinalizado {
		return nil, http.StatusBadRequest, "Só é possível gerar certificados para eventos finalizados", nil
	}
	participante, err := s.users.Get(c, participanteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, "Participante não encontrado", nil
		}
		return nil, 0, "", err
	}
	if _, err := s.certs.GetByPair(c, eventoID, participanteID); err == nil {
		return nil, http.StatusBadRequest, "Certificado já foi emitido para este participante neste evento", nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, "", err
	}
	now := time.Now()
	cert := &certsgorm.Certificate{
		EventoID:          eventoID,
		ParticipanteID:    participanteID,
		HorasParticipacao: horas,
		CodigoCertificado: certificateCode(ev.Nome, participante.Nome, now),
		DataEmissao:       now,
	}
	if err := s.certs.Create(c, cert); err != nil {
		return nil, 0, "", err
	}
	full, err := s.certs.Get(c, cert.ID)
	if err != nil {
		return nil, 0, "", err
	}
	return full, http.StatusOK, "", nil
}
