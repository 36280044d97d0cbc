package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	recordsgorm "github.com/ludico-app/ludico/internal/repo/gorm/records"
)

func queryUint(c *gin.Context, name string) uint {
	n, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// Play-session record endpoints keep their historical bare wire shapes:
// `{registros, pagination}` on list, the created row on post, `{error}` on
// failure.
func (s *Server) addRecordRoutes(r *gin.Engine) {
	r.GET("/play-session-records", func(c *gin.Context) {
		if _, ok := s.requireBare(c, "records:read"); !ok {
			return
		}
		f := recordsgorm.Filter{
			EventoID:       queryUint(c, "eventoId"),
			JogoID:         queryUint(c, "jogoId"),
			ParticipanteID: queryUint(c, "participanteId"),
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}
		regs, err := s.records.List(c, f, page, limit)
		if err != nil {
			s.respondInternalBare(c, "records list", err)
			return
		}
		total, err := s.records.Count(c, f)
		if err != nil {
			s.respondInternalBare(c, "records count", err)
			return
		}
		pages := (total + int64(limit) - 1) / int64(limit)
		s.JSON(c, http.StatusOK, gin.H{
			"registros": regs,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": pages,
			},
		})
	})

	r.POST("/play-session-records", func(c *gin.Context) {
		if _, ok := s.requireBare(c, "records:write"); !ok {
			return
		}
		var req struct {
			JogoID          uint    `json:"jogoId"`
			EventoID        uint    `json:"eventoId"`
			SalaID          uint    `json:"salaId"`
			ParticipanteIDs []uint  `json:"participanteIds"`
			Observacoes     *string `json:"observacoes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.JogoID == 0 || req.EventoID == 0 || req.SalaID == 0 || req.ParticipanteIDs == nil {
			s.JSON(c, http.StatusBadRequest, gin.H{"error": "Dados obrigatórios não fornecidos"})
			return
		}
		rec := &recordsgorm.PlayRecord{
			JogoID:      req.JogoID,
			EventoID:    req.EventoID,
			SalaID:      req.SalaID,
			DataInicio:  time.Now(),
			Observacoes: req.Observacoes,
		}
		if err := s.records.Create(c, rec, req.ParticipanteIDs); err != nil {
			s.respondInternalBare(c, "records create", err)
			return
		}
		full, err := s.records.Get(c, rec.ID)
		if err != nil {
			s.respondInternalBare(c, "records create reload", err)
			return
		}
		s.JSON(c, http.StatusCreated, full)
	})
}
