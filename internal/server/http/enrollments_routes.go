package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	enrollgorm "github.com/ludico-app/ludico/internal/repo/gorm/enrollments"
)

func (s *Server) addEnrollmentRoutes(r *gin.Engine) {
	r.POST("/enrollments", func(c *gin.Context) {
		claims, ok := s.require(c)
		if !ok {
			return
		}
		var req struct {
			EventoID uint `json:"eventoId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.EventoID == 0 {
			s.respondError(c, http.StatusBadRequest, "ID do evento é obrigatório")
			return
		}
		if _, err := s.events.Get(c, req.EventoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Evento não encontrado")
				return
			}
			s.respondInternal(c, "enrollments create evento", err)
			return
		}
		if _, err := s.enroll.GetByPair(c, req.EventoID, claims.UserID); err == nil {
			s.respondError(c, http.StatusBadRequest, "Você já está inscrito neste evento")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.respondInternal(c, "enrollments create lookup", err)
			return
		}
		insc := &enrollgorm.Enrollment{
			EventoID:       req.EventoID,
			ParticipanteID: claims.UserID,
			Status:         enrollgorm.StatusConfirmada,
			DataInscricao:  time.Now(),
		}
		if err := s.enroll.Create(c, insc); err != nil {
			s.respondInternal(c, "enrollments create", err)
			return
		}
		full, err := s.enroll.Get(c, insc.ID)
		if err != nil {
			s.respondInternal(c, "enrollments create reload", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{
			"success": true,
			"data":    full,
			"message": "Inscrição realizada com sucesso!",
		})
	})

	r.GET("/enrollments", func(c *gin.Context) {
		claims, ok := s.require(c)
		if !ok {
			return
		}
		if eventoID := queryUint(c, "eventoId"); eventoID != 0 {
			// event-wide listing is a supervisor view
			if !s.can(claims, "enrollments:by-event") {
				s.respondError(c, http.StatusForbidden, "Acesso negado")
				return
			}
			arr, err := s.enroll.ListByEvent(c, eventoID)
			if err != nil {
				s.respondInternal(c, "enrollments by event", err)
				return
			}
			s.JSON(c, http.StatusOK, gin.H{"success": true, "data": arr})
			return
		}
		arr, err := s.enroll.ListByParticipant(c, claims.UserID)
		if err != nil {
			s.respondInternal(c, "enrollments by participant", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": arr})
	})

	r.DELETE("/enrollments/:id", func(c *gin.Context) {
		claims, ok := s.require(c)
		if !ok {
			return
		}
		insc, err := s.enroll.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Inscrição não encontrada")
				return
			}
			s.respondInternal(c, "enrollments delete get", err)
			return
		}
		// the enrollee may cancel their own; supervisors may cancel any
		if insc.ParticipanteID != claims.UserID && !s.can(claims, "enrollments:by-event") {
			s.respondError(c, http.StatusForbidden, "Acesso negado")
			return
		}
		if err := s.enroll.Delete(c, insc.ID); err != nil {
			s.respondInternal(c, "enrollments delete", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "message": "Inscrição cancelada com sucesso"})
	})
}
