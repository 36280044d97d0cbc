package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ludico-app/ludico/internal/repo/gorm/events"
)

// roomView mirrors the historical rooms wire shape: the owning event plus a
// record count under `_count`. These endpoints answer bare bodies, not the
// success envelope.
type roomView struct {
	*events.Room
	Evento *events.Event `json:"evento"`
	Count  struct {
		Registros int64 `json:"registros"`
	} `json:"_count"`
}

func (s *Server) addRoomRoutes(r *gin.Engine) {
	r.GET("/rooms", func(c *gin.Context) {
		if _, ok := s.requireBare(c, "rooms:read"); !ok {
			return
		}
		var eventoID uint
		if q := c.Query("eventoId"); q != "" {
			n, err := strconv.ParseUint(q, 10, 32)
			if err == nil {
				eventoID = uint(n)
			}
		}
		rooms, err := s.events.ListRooms(c, eventoID)
		if err != nil {
			s.respondInternalBare(c, "rooms list", err)
			return
		}
		// events are few; cache per id to avoid re-reading for sibling rooms
		eventos := map[uint]*events.Event{}
		out := make([]roomView, 0, len(rooms))
		for _, room := range rooms {
			ev, ok := eventos[room.EventoID]
			if !ok {
				ev, err = s.events.Get(c, room.EventoID)
				if err != nil {
					s.respondInternalBare(c, "rooms list evento", err)
					return
				}
				eventos[room.EventoID] = ev
			}
			n, err := s.records.CountRoomRecords(c, room.ID)
			if err != nil {
				s.respondInternalBare(c, "rooms list count", err)
				return
			}
			rv := roomView{Room: room, Evento: ev}
			rv.Count.Registros = n
			out = append(out, rv)
		}
		s.JSON(c, http.StatusOK, out)
	})

	r.POST("/rooms", func(c *gin.Context) {
		if _, ok := s.requireBare(c, "rooms:write"); !ok {
			return
		}
		var req struct {
			Nome       string `json:"nome"`
			Capacidade int    `json:"capacidade"`
			EventoID   uint   `json:"eventoId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Nome == "" || req.Capacidade == 0 || req.EventoID == 0 {
			s.JSON(c, http.StatusBadRequest, gin.H{"error": "Dados obrigatórios não fornecidos"})
			return
		}
		ev, err := s.events.Get(c, req.EventoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.JSON(c, http.StatusNotFound, gin.H{"error": "Evento não encontrado"})
				return
			}
			s.respondInternalBare(c, "rooms create evento", err)
			return
		}
		room := &events.Room{Nome: req.Nome, Capacidade: req.Capacidade, EventoID: ev.ID}
		if err := s.events.CreateRoom(c, room); err != nil {
			s.respondInternalBare(c, "rooms create", err)
			return
		}
		s.JSON(c, http.StatusCreated, roomView{Room: room, Evento: ev})
	})
}
