package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ludico-app/ludico/internal/repo/gorm/games"
	recordsgorm "github.com/ludico-app/ludico/internal/repo/gorm/records"
)

// gameView is a game with its material decoded and play statistics derived
// from the records.
type gameView struct {
	*games.Game
	Material           []string `json:"material"`
	TotalPartidas      int      `json:"totalPartidas"`
	TotalParticipantes int      `json:"totalParticipantes"`
}

func (s *Server) addGameRoutes(r *gin.Engine) {
	r.GET("/games", func(c *gin.Context) {
		arr, err := s.games.List(c)
		if err != nil {
			s.respondInternal(c, "games list", err)
			return
		}
		recs, err := s.records.ListAll(c)
		if err != nil {
			s.respondInternal(c, "games list records", err)
			return
		}
		partidas := map[uint]int{}
		participantes := map[uint]int{}
		for _, rec := range recs {
			partidas[rec.JogoID]++
			participantes[rec.JogoID] += len(rec.Participantes)
		}
		out := make([]gameView, 0, len(arr))
		for _, g := range arr {
			out = append(out, gameView{
				Game:               g,
				Material:           g.GetMaterialList(),
				TotalPartidas:      partidas[g.ID],
				TotalParticipantes: participantes[g.ID],
			})
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": out})
	})

	r.POST("/games", func(c *gin.Context) {
		if _, ok := s.require(c, "games:write"); !ok {
			return
		}
		var req struct {
			Nome         string   `json:"nome"`
			Categoria    string   `json:"categoria"`
			Descricao    string   `json:"descricao"`
			MinJogadores int      `json:"minJogadores"`
			MaxJogadores int      `json:"maxJogadores"`
			DuracaoMedia int      `json:"duracaoMedia"`
			Material     []string `json:"material"`
		}
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.Nome == "" || req.Categoria == "" || req.Descricao == "" ||
			req.MinJogadores == 0 || req.MaxJogadores == 0 || req.DuracaoMedia == 0 {
			s.respondError(c, http.StatusBadRequest, "Todos os campos obrigatórios devem ser preenchidos")
			return
		}
		g := &games.Game{
			Nome:         req.Nome,
			Categoria:    req.Categoria,
			Descricao:    req.Descricao,
			MinJogadores: req.MinJogadores,
			MaxJogadores: req.MaxJogadores,
			DuracaoMedia: req.DuracaoMedia,
		}
		g.SetMaterialList(req.Material)
		if err := s.games.Create(c, g); err != nil {
			s.respondInternal(c, "games create", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gameView{Game: g, Material: g.GetMaterialList()}})
	})

	r.GET("/games/:id", func(c *gin.Context) {
		g, err := s.games.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Jogo não encontrado")
				return
			}
			s.respondInternal(c, "games get", err)
			return
		}
		regs, err := s.records.ListFiltered(c, recordsgorm.Filter{JogoID: g.ID})
		if err != nil {
			s.respondInternal(c, "games get records", err)
			return
		}
		participantes := 0
		for _, rec := range regs {
			participantes += len(rec.Participantes)
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id":                 g.ID,
			"nome":               g.Nome,
			"categoria":          g.Categoria,
			"descricao":          g.Descricao,
			"minJogadores":       g.MinJogadores,
			"maxJogadores":       g.MaxJogadores,
			"duracaoMedia":       g.DuracaoMedia,
			"material":           g.GetMaterialList(),
			"createdAt":          g.CreatedAt,
			"updatedAt":          g.UpdatedAt,
			"registros":          regs,
			"totalPartidas":      len(regs),
			"totalParticipantes": participantes,
		}})
	})

	r.PUT("/games/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "games:write"); !ok {
			return
		}
		var req struct {
			Nome         string   `json:"nome"`
			Categoria    string   `json:"categoria"`
			Descricao    string   `json:"descricao"`
			MinJogadores int      `json:"minJogadores"`
			MaxJogadores int      `json:"maxJogadores"`
			DuracaoMedia int      `json:"duracaoMedia"`
			Material     []string `json:"material"`
		}
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.Nome == "" || req.Categoria == "" || req.Descricao == "" ||
			req.MinJogadores == 0 || req.MaxJogadores == 0 || req.DuracaoMedia == 0 {
			s.respondError(c, http.StatusBadRequest, "Campos obrigatórios não fornecidos")
			return
		}
		g, err := s.games.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Jogo não encontrado")
				return
			}
			s.respondInternal(c, "games update get", err)
			return
		}
		g.Nome = req.Nome
		g.Categoria = req.Categoria
		g.Descricao = req.Descricao
		g.MinJogadores = req.MinJogadores
		g.MaxJogadores = req.MaxJogadores
		g.DuracaoMedia = req.DuracaoMedia
		g.SetMaterialList(req.Material)
		if err := s.games.Update(c, g); err != nil {
			s.respondInternal(c, "games update", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gameView{Game: g, Material: g.GetMaterialList()}})
	})

	r.DELETE("/games/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "games:write"); !ok {
			return
		}
		g, err := s.games.Get(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Jogo não encontrado")
				return
			}
			s.respondInternal(c, "games delete get", err)
			return
		}
		n, err := s.records.CountByGame(c, g.ID)
		if err != nil {
			s.respondInternal(c, "games delete count", err)
			return
		}
		if n > 0 {
			s.respondError(c, http.StatusBadRequest, "Não é possível excluir um jogo que possui registros")
			return
		}
		if err := s.games.Delete(c, g.ID); err != nil {
			s.respondInternal(c, "games delete", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "message": "Jogo excluído com sucesso"})
	})
}
