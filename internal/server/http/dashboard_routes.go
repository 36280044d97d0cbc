package httpserver

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

func (s *Server) addDashboardRoutes(r *gin.Engine) {
	r.GET("/dashboard", func(c *gin.Context) {
		totalJogos, err := s.games.Count(c)
		if err != nil {
			s.respondInternal(c, "dashboard jogos", err)
			return
		}
		totalEventos, err := s.events.Count(c)
		if err != nil {
			s.respondInternal(c, "dashboard eventos", err)
			return
		}
		totalParticipantes, err := s.users.CountAlunos(c)
		if err != nil {
			s.respondInternal(c, "dashboard participantes", err)
			return
		}
		recs, err := s.records.ListAll(c)
		if err != nil {
			s.respondInternal(c, "dashboard registros", err)
			return
		}
		totalRegistros := len(recs)

		partidas := map[uint]int{}
		participantes := map[uint]int{}
		for _, rec := range recs {
			partidas[rec.JogoID]++
			participantes[rec.JogoID] += len(rec.Participantes)
		}

		jogos, err := s.games.List(c)
		if err != nil {
			s.respondInternal(c, "dashboard jogos list", err)
			return
		}
		type gameStats struct {
			Jogo               gin.H `json:"jogo"`
			TotalPartidas      int   `json:"totalPartidas"`
			TotalParticipantes int   `json:"totalParticipantes"`
			MediaParticipantes int   `json:"mediaParticipantes"`
			Popularidade       int   `json:"popularidade"`
		}
		populares := make([]gameStats, 0, len(jogos))
		for _, g := range jogos {
			tp := partidas[g.ID]
			tpart := participantes[g.ID]
			media := 0
			if tp > 0 {
				media = int(math.Round(float64(tpart) / float64(tp)))
			}
			base := totalRegistros
			if base < 1 {
				base = 1
			}
			pop := int(math.Round(float64(tp) / float64(base) * 100))
			if pop > 100 {
				pop = 100
			}
			populares = append(populares, gameStats{
				Jogo: gin.H{
					"id":           g.ID,
					"nome":         g.Nome,
					"categoria":    g.Categoria,
					"duracaoMedia": g.DuracaoMedia,
				},
				TotalPartidas:      tp,
				TotalParticipantes: tpart,
				MediaParticipantes: media,
				Popularidade:       pop,
			})
		}
		sort.SliceStable(populares, func(i, j int) bool {
			return populares[i].TotalPartidas > populares[j].TotalPartidas
		})

		recentes, err := s.events.ListRecent(c, 5)
		if err != nil {
			s.respondInternal(c, "dashboard eventos recentes", err)
			return
		}
		participantesEvento := map[uint]int{}
		for _, rec := range recs {
			participantesEvento[rec.EventoID] += len(rec.Participantes)
		}
		type recentEvent struct {
			ID                 uint   `json:"id"`
			Nome               string `json:"nome"`
			Data               any    `json:"data"`
			Local              string `json:"local"`
			Status             string `json:"status"`
			Salas              any    `json:"salas"`
			TotalParticipantes int    `json:"totalParticipantes"`
		}
		eventosRecentes := make([]recentEvent, 0, len(recentes))
		for _, e := range recentes {
			eventosRecentes = append(eventosRecentes, recentEvent{
				ID:                 e.ID,
				Nome:               e.Nome,
				Data:               e.Data,
				Local:              e.Local,
				Status:             e.Status,
				Salas:              e.Salas,
				TotalParticipantes: participantesEvento[e.ID],
			})
		}

		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gin.H{
			"estatisticasGerais": gin.H{
				"totalJogos":         totalJogos,
				"totalEventos":       totalEventos,
				"totalParticipantes": totalParticipantes,
				"totalRegistros":     totalRegistros,
			},
			"jogosPopulares":  populares,
			"eventosRecentes": eventosRecentes,
		}})
	})
}
