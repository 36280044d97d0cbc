package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ludico-app/ludico/internal/repo/gorm/events"
	recordsgorm "github.com/ludico-app/ludico/internal/repo/gorm/records"
)

// eventView is an event with statistics derived from rooms and records.
type eventView struct {
	*events.Event
	TotalParticipantes int `json:"totalParticipantes"`
	TotalJogos         int `json:"totalJogos"`
	CapacidadeTotal    int `json:"capacidadeTotal"`
}

type roomPayload struct {
	Nome       string `json:"nome"`
	Capacidade int    `json:"capacidade"`
}

// parseEventDate accepts the wire formats clients send for `data`.
func parseEventDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *Server) addEventRoutes(r *gin.Engine) {
	r.GET("/events", func(c *gin.Context) {
		arr, err := s.events.List(c)
		if err != nil {
			s.respondInternal(c, "events list", err)
			return
		}
		recs, err := s.records.ListAll(c)
		if err != nil {
			s.respondInternal(c, "events list records", err)
			return
		}
		partidas := map[uint]int{}
		participantes := map[uint]int{}
		for _, rec := range recs {
			partidas[rec.EventoID]++
			participantes[rec.EventoID] += len(rec.Participantes)
		}
		out := make([]eventView, 0, len(arr))
		for _, e := range arr {
			capacidade := 0
			for _, sala := range e.Salas {
				capacidade += sala.Capacidade
			}
			out = append(out, eventView{
				Event:              e,
				TotalParticipantes: participantes[e.ID],
				TotalJogos:         partidas[e.ID],
				CapacidadeTotal:    capacidade,
			})
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": out})
	})

	r.POST("/events", func(c *gin.Context) {
		if _, ok := s.require(c, "events:write"); !ok {
			return
		}
		var req struct {
			Nome        string        `json:"nome"`
			Data        string        `json:"data"`
			Local       string        `json:"local"`
			Descricao   string        `json:"descricao"`
			Organizador string        `json:"organizador"`
			Status      string        `json:"status"`
			Salas       []roomPayload `json:"salas"`
			JogoIDs     []uint        `json:"jogoIds"`
		}
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.Nome == "" || req.Data == "" || req.Local == "" || req.Descricao == "" || req.Organizador == "" {
			s.respondError(c, http.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos")
			return
		}
		data, ok := parseEventDate(req.Data)
		if !ok {
			s.respondError(c, http.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos")
			return
		}
		if len(req.Salas) == 0 {
			s.respondError(c, http.StatusBadRequest, "É obrigatório informar pelo menos uma sala para o evento")
			return
		}
		for _, sala := range req.Salas {
			if strings.TrimSpace(sala.Nome) == "" || sala.Capacidade <= 0 {
				s.respondError(c, http.StatusBadRequest, "Todas as salas devem ter nome e capacidade válidos")
				return
			}
		}
		if len(req.JogoIDs) > 0 {
			n, err := s.games.CountByIDs(c, req.JogoIDs)
			if err != nil {
				s.respondInternal(c, "events create games", err)
				return
			}
			if n != int64(len(req.JogoIDs)) {
				s.respondError(c, http.StatusBadRequest, "Alguns jogos selecionados não foram encontrados")
				return
			}
		}
		status := req.Status
		if status == "" {
			status = events.StatusPlanejado
		}
		e := &events.Event{
			Nome:        req.Nome,
			Data:        data,
			Local:       req.Local,
			Descricao:   req.Descricao,
			Organizador: req.Organizador,
			Status:      status,
		}
		for _, sala := range req.Salas {
			e.Salas = append(e.Salas, events.Room{Nome: sala.Nome, Capacidade: sala.Capacidade})
		}
		if err := s.events.CreateWithGames(c, e, req.JogoIDs); err != nil {
			s.respondInternal(c, "events create", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": e})
	})

	r.GET("/events/:id", func(c *gin.Context) {
		e, err := s.events.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Evento não encontrado")
				return
			}
			s.respondInternal(c, "events get", err)
			return
		}
		regs, err := s.records.ListFiltered(c, recordsgorm.Filter{EventoID: e.ID})
		if err != nil {
			s.respondInternal(c, "events get records", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id":          e.ID,
			"nome":        e.Nome,
			"data":        e.Data,
			"local":       e.Local,
			"descricao":   e.Descricao,
			"organizador": e.Organizador,
			"status":      e.Status,
			"salas":       e.Salas,
			"registros":   regs,
			"createdAt":   e.CreatedAt,
			"updatedAt":   e.UpdatedAt,
		}})
	})

	r.PUT("/events/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "events:write"); !ok {
			return
		}
		var req struct {
			Nome        string `json:"nome"`
			Data        string `json:"data"`
			Local       string `json:"local"`
			Descricao   string `json:"descricao"`
			Organizador string `json:"organizador"`
			Status      string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, http.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos")
			return
		}
		e, err := s.events.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Evento não encontrado")
				return
			}
			s.respondInternal(c, "events update get", err)
			return
		}
		if req.Nome != "" {
			e.Nome = req.Nome
		}
		if req.Data != "" {
			data, ok := parseEventDate(req.Data)
			if !ok {
				s.respondError(c, http.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos")
				return
			}
			e.Data = data
		}
		if req.Local != "" {
			e.Local = req.Local
		}
		if req.Descricao != "" {
			e.Descricao = req.Descricao
		}
		if req.Organizador != "" {
			e.Organizador = req.Organizador
		}
		if req.Status != "" {
			e.Status = req.Status
		}
		if err := s.events.Update(c, e); err != nil {
			s.respondInternal(c, "events update", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": e})
	})

	r.PATCH("/events/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "events:write"); !ok {
			return
		}
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
			s.respondError(c, http.StatusBadRequest, "Status é obrigatório")
			return
		}
		// membership only; any of the three values can follow any other
		if !events.ValidStatus(req.Status) {
			s.respondError(c, http.StatusBadRequest, "Status inválido")
			return
		}
		e, err := s.events.UpdateStatus(c, idParam(c), req.Status)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Evento não encontrado")
				return
			}
			s.respondInternal(c, "events status", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": e})
	})

	r.DELETE("/events/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "events:write"); !ok {
			return
		}
		e, err := s.events.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Evento não encontrado")
				return
			}
			s.respondInternal(c, "events delete get", err)
			return
		}
		n, err := s.records.CountByEvent(c, e.ID)
		if err != nil {
			s.respondInternal(c, "events delete count", err)
			return
		}
		if n > 0 {
			s.respondError(c, http.StatusBadRequest, "Não é possível excluir um evento que possui registros de jogos")
			return
		}
		if err := s.enroll.DeleteByEvent(c, e.ID); err != nil {
			s.respondInternal(c, "events delete enrollments", err)
			return
		}
		if err := s.events.Delete(c, e.ID); err != nil {
			s.respondInternal(c, "events delete", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "message": "Evento excluído com sucesso"})
	})
}
