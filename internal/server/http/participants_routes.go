package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	recordsgorm "github.com/ludico-app/ludico/internal/repo/gorm/records"
	"github.com/ludico-app/ludico/internal/repo/gorm/users"
)

// participantStats summarizes a participant's play history.
type participantStats struct {
	TotalJogos     int    `json:"totalJogos"`
	JogosUnicos    int    `json:"jogosUnicos"`
	JogoMaisJogado string `json:"jogoMaisJogado"`
}

// foldParticipantStats derives per-participant statistics out of the full
// record set. The most-played game keeps the first game to reach the maximum
// (records come newest first, so ties resolve to the most recent game seen).
func foldParticipantStats(recs []*recordsgorm.PlayRecord, gameNames map[uint]string) map[uint]participantStats {
	type agg struct {
		total   int
		counts  map[uint]int
		ordered []uint
	}
	perUser := map[uint]*agg{}
	for _, rec := range recs {
		for _, p := range rec.Participantes {
			a := perUser[p.ParticipanteID]
			if a == nil {
				a = &agg{counts: map[uint]int{}}
				perUser[p.ParticipanteID] = a
			}
			a.total++
			if _, seen := a.counts[rec.JogoID]; !seen {
				a.ordered = append(a.ordered, rec.JogoID)
			}
			a.counts[rec.JogoID]++
		}
	}
	out := make(map[uint]participantStats, len(perUser))
	for pid, a := range perUser {
		best, bestCount := uint(0), 0
		for _, jid := range a.ordered {
			if a.counts[jid] > bestCount {
				best, bestCount = jid, a.counts[jid]
			}
		}
		nome := "Nenhum"
		if bestCount > 0 {
			if n, ok := gameNames[best]; ok {
				nome = n
			}
		}
		out[pid] = participantStats{TotalJogos: a.total, JogosUnicos: len(a.counts), JogoMaisJogado: nome}
	}
	return out
}

func (s *Server) addParticipantRoutes(r *gin.Engine) {
	r.GET("/participants", func(c *gin.Context) {
		alunos, err := s.users.ListAlunos(c)
		if err != nil {
			s.respondInternal(c, "participants list", err)
			return
		}
		recs, err := s.records.ListFiltered(c, recordsgorm.Filter{})
		if err != nil {
			s.respondInternal(c, "participants list records", err)
			return
		}
		jogos, err := s.games.List(c)
		if err != nil {
			s.respondInternal(c, "participants list games", err)
			return
		}
		nomes := make(map[uint]string, len(jogos))
		for _, g := range jogos {
			nomes[g.ID] = g.Nome
		}
		stats := foldParticipantStats(recs, nomes)
		type view struct {
			*users.User
			Estatisticas participantStats `json:"estatisticas"`
		}
		out := make([]view, 0, len(alunos))
		for _, u := range alunos {
			st, ok := stats[u.ID]
			if !ok {
				st = participantStats{JogoMaisJogado: "Nenhum"}
			}
			out = append(out, view{User: u, Estatisticas: st})
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": out})
	})

	r.POST("/participants", func(c *gin.Context) {
		if _, ok := s.require(c, "participants:write"); !ok {
			return
		}
		var req struct {
			Nome     string  `json:"nome"`
			Email    string  `json:"email"`
			Senha    string  `json:"senha"`
			Idade    *int    `json:"idade"`
			Telefone *string `json:"telefone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Nome == "" || req.Email == "" || req.Senha == "" {
			s.respondError(c, http.StatusBadRequest, "Nome, email e senha são obrigatórios")
			return
		}
		if _, err := s.users.GetByEmail(c, req.Email); err == nil {
			s.respondError(c, http.StatusConflict, "Este email já está sendo usado")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.respondInternal(c, "participants create lookup", err)
			return
		}
		hash, err := users.HashPassword(req.Senha)
		if err != nil {
			s.respondInternal(c, "participants create hash", err)
			return
		}
		u := &users.User{
			Nome:     req.Nome,
			Email:    req.Email,
			Senha:    hash,
			Cargo:    users.CargoAluno,
			Idade:    req.Idade,
			Telefone: req.Telefone,
		}
		if err := s.users.Create(c, u); err != nil {
			s.respondInternal(c, "participants create", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": u})
	})

	r.GET("/participants/:id", func(c *gin.Context) {
		u, err := s.users.GetAluno(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Participante não encontrado")
				return
			}
			s.respondInternal(c, "participants get", err)
			return
		}
		regs, err := s.records.ListFiltered(c, recordsgorm.Filter{ParticipanteID: u.ID})
		if err != nil {
			s.respondInternal(c, "participants get records", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": gin.H{
			"id":            u.ID,
			"nome":          u.Nome,
			"email":         u.Email,
			"cargo":         u.Cargo,
			"idade":         u.Idade,
			"telefone":      u.Telefone,
			"createdAt":     u.CreatedAt,
			"updatedAt":     u.UpdatedAt,
			"participacoes": regs,
		}})
	})

	r.PUT("/participants/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "participants:write"); !ok {
			return
		}
		var req struct {
			Nome     string  `json:"nome"`
			Email    string  `json:"email"`
			Idade    *int    `json:"idade"`
			Telefone *string `json:"telefone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, http.StatusBadRequest, "Nome, email e senha são obrigatórios")
			return
		}
		u, err := s.users.GetAluno(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Participante não encontrado")
				return
			}
			s.respondInternal(c, "participants update get", err)
			return
		}
		if req.Email != "" && req.Email != u.Email {
			taken, err := s.users.EmailTakenByOther(c, req.Email, u.ID)
			if err != nil {
				s.respondInternal(c, "participants update email", err)
				return
			}
			if taken {
				s.respondError(c, http.StatusConflict, "Este email já está sendo usado")
				return
			}
			u.Email = req.Email
		}
		if req.Nome != "" {
			u.Nome = req.Nome
		}
		u.Idade = req.Idade
		u.Telefone = req.Telefone
		if err := s.users.Update(c, u); err != nil {
			s.respondInternal(c, "participants update", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "data": u})
	})

	r.DELETE("/participants/:id", func(c *gin.Context) {
		if _, ok := s.require(c, "participants:write"); !ok {
			return
		}
		u, err := s.users.GetAluno(c, idParam(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.respondError(c, http.StatusNotFound, "Participante não encontrado")
				return
			}
			s.respondInternal(c, "participants delete get", err)
			return
		}
		n, err := s.records.CountParticipations(c, u.ID)
		if err != nil {
			s.respondInternal(c, "participants delete count", err)
			return
		}
		if n > 0 {
			s.respondError(c, http.StatusBadRequest, "Não é possível excluir um participante que possui histórico de jogos")
			return
		}
		if err := s.users.Delete(c, u.ID); err != nil {
			s.respondInternal(c, "participants delete", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{"success": true, "message": "Participante excluído com sucesso"})
	})
}
