package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ludico-app/ludico/internal/repo/gorm/users"
)

// sessionUser is the token-holder summary returned by the auth endpoints.
type sessionUser struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Nome   string `json:"nome"`
	Cargo  string `json:"cargo"`
}

func (s *Server) addAuthRoutes(r *gin.Engine) {
	r.POST("/auth/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			s.respondError(c, http.StatusBadRequest, "Email e senha são obrigatórios")
			return
		}
		if !s.allowLogin(c.ClientIP(), req.Email) {
			s.respondError(c, http.StatusTooManyRequests, "Muitas tentativas de login. Tente novamente mais tarde")
			return
		}
		u, err := s.users.Verify(c, req.Email, req.Password)
		if err != nil {
			// wrong email and wrong password answer alike
			s.respondError(c, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		tok, err := s.jwtMgr.Sign(u.ID, u.Email, u.Nome, u.Cargo, 0)
		if err != nil {
			s.respondInternal(c, "login sign", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{
			"success": true,
			"token":   tok,
			"user":    sessionUser{UserID: u.ID, Email: u.Email, Nome: u.Nome, Cargo: u.Cargo},
		})
	})

	r.POST("/auth/register", func(c *gin.Context) {
		var req struct {
			Email    string  `json:"email"`
			Password string  `json:"password"`
			Nome     string  `json:"nome"`
			Cargo    string  `json:"cargo"`
			Idade    *int    `json:"idade"`
			Telefone *string `json:"telefone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Nome == "" || req.Cargo == "" {
			s.respondError(c, http.StatusBadRequest, "Email, senha, nome e cargo são obrigatórios")
			return
		}
		if req.Cargo != users.CargoSupervisor && req.Cargo != users.CargoAluno {
			s.respondError(c, http.StatusBadRequest, `Cargo deve ser "supervisor" ou "aluno"`)
			return
		}
		if _, err := s.users.GetByEmail(c, req.Email); err == nil {
			s.respondError(c, http.StatusConflict, "Usuário já existe com este email")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.respondInternal(c, "register lookup", err)
			return
		}
		hash, err := users.HashPassword(req.Password)
		if err != nil {
			s.respondInternal(c, "register hash", err)
			return
		}
		u := &users.User{
			Nome:     req.Nome,
			Email:    req.Email,
			Senha:    hash,
			Cargo:    req.Cargo,
			Idade:    req.Idade,
			Telefone: req.Telefone,
		}
		if err := s.users.Create(c, u); err != nil {
			s.respondInternal(c, "register create", err)
			return
		}
		tok, err := s.jwtMgr.Sign(u.ID, u.Email, u.Nome, u.Cargo, 0)
		if err != nil {
			s.respondInternal(c, "register sign", err)
			return
		}
		s.JSON(c, http.StatusOK, gin.H{
			"success": true,
			"token":   tok,
			"user":    sessionUser{UserID: u.ID, Email: u.Email, Nome: u.Nome, Cargo: u.Cargo},
		})
	})

	r.GET("/auth/verify", func(c *gin.Context) {
		claims, ok := s.require(c)
		if !ok {
			return
		}
		s.JSON(c, http.StatusOK, gin.H{
			"success": true,
			"user":    sessionUser{UserID: claims.UserID, Email: claims.Email, Nome: claims.Nome, Cargo: claims.Cargo},
		})
	})
}
