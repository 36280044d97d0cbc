package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ludico-app/ludico/internal/auth/rbac"
	jwt "github.com/ludico-app/ludico/internal/auth/token"
	certsgorm "github.com/ludico-app/ludico/internal/repo/gorm/certificates"
	enrollgorm "github.com/ludico-app/ludico/internal/repo/gorm/enrollments"
	eventsgorm "github.com/ludico-app/ludico/internal/repo/gorm/events"
	gamesgorm "github.com/ludico-app/ludico/internal/repo/gorm/games"
	recordsgorm "github.com/ludico-app/ludico/internal/repo/gorm/records"
	usersgorm "github.com/ludico-app/ludico/internal/repo/gorm/users"
)

type Server struct {
	users   *usersgorm.Repo
	games   *gamesgorm.Repo
	events  *eventsgorm.Repo
	records *recordsgorm.Repo
	enroll  *enrollgorm.Repo
	certs   *certsgorm.Repo

	rbac   rbac.PolicyInterface
	jwtMgr *jwt.Manager

	// login rate limiting (in-memory): key = ip|email -> attempt times within window
	loginAttempts map[string][]time.Time
	loginMu       sync.Mutex

	httpSrv *http.Server
}

// NewServer wires the repos over one gorm.DB and runs migrations.
func NewServer(db *gorm.DB, policy rbac.PolicyInterface, jwtMgr *jwt.Manager) (*Server, error) {
	for _, mig := range []func(*gorm.DB) error{
		usersgorm.AutoMigrate,
		gamesgorm.AutoMigrate,
		eventsgorm.AutoMigrate,
		recordsgorm.AutoMigrate,
		enrollgorm.AutoMigrate,
		certsgorm.AutoMigrate,
	} {
		if err := mig(db); err != nil {
			return nil, err
		}
	}
	return &Server{
		users:         usersgorm.New(db),
		games:         gamesgorm.NewRepo(db),
		events:        eventsgorm.NewRepo(db),
		records:       recordsgorm.NewRepo(db),
		enroll:        enrollgorm.NewRepo(db),
		certs:         certsgorm.NewRepo(db),
		rbac:          policy,
		jwtMgr:        jwtMgr,
		loginAttempts: map[string][]time.Time{},
	}, nil
}

func (s *Server) ginEngine() *gin.Engine {
	r := gin.New()
	r.Use(s.ginReqID(), s.ginCORS(), s.ginLogger(), gin.Recovery())
	s.addAuthRoutes(r)
	s.addGameRoutes(r)
	s.addEventRoutes(r)
	s.addRoomRoutes(r)
	s.addParticipantRoutes(r)
	s.addEnrollmentRoutes(r)
	s.addRecordRoutes(r)
	s.addCertificateRoutes(r)
	s.addDashboardRoutes(r)
	return r
}

func (s *Server) ListenAndServe(addr string) error {
	slog.Info("http api listening", "addr", addr)
	s.httpSrv = &http.Server{Addr: addr, Handler: s.ginEngine()}
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

// ginReqID injects/propagates an X-Request-ID for traceability.
func (s *Server) ginReqID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if strings.TrimSpace(rid) == "" {
			b := make([]byte, 16)
			if _, err := rand.Read(b); err == nil {
				rid = hex.EncodeToString(b)
			} else {
				rid = fmt.Sprintf("%d", time.Now().UnixNano())
			}
		}
		c.Set("reqid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func (s *Server) ginCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		w := c.Writer
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)
		claims, _ := s.auth(c.Request)
		user := ""
		if claims != nil {
			user = claims.Email
		}
		lvl := slog.LevelInfo
		st := c.Writer.Status()
		if st >= 500 {
			lvl = slog.LevelError
		} else if st >= 400 {
			lvl = slog.LevelWarn
		}
		rid, _ := c.Get("reqid")
		slog.Log(c, lvl, "http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", st,
			"bytes", c.Writer.Size(),
			"remote", c.ClientIP(),
			"user", user,
			"reqid", rid,
			"dur_ms", dur.Milliseconds(),
		)
	}
}

// respondError sends the unified JSON error envelope.
func (s *Server) respondError(c *gin.Context, status int, message string) {
	s.JSON(c, status, gin.H{"success": false, "error": message})
}

// respondInternal logs the underlying error and answers with the generic
// message; details never reach the client.
func (s *Server) respondInternal(c *gin.Context, op string, err error) {
	slog.Error(op, "err", err, "path", c.Request.URL.Path)
	s.respondError(c, http.StatusInternalServerError, "Erro interno do servidor")
}

// respondInternalBare is respondInternal for the bare-body endpoints.
func (s *Server) respondInternalBare(c *gin.Context, op string, err error) {
	slog.Error(op, "err", err, "path", c.Request.URL.Path)
	s.JSON(c, http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
}

// auth extracts session claims from Authorization: Bearer <token>.
// The second return distinguishes a missing/malformed header from a token
// that failed verification.
func (s *Server) auth(r *http.Request) (*jwt.Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") || s.jwtMgr == nil {
		return nil, false
	}
	claims, err := s.jwtMgr.Verify(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return nil, true
	}
	return claims, true
}

// require checks that the request is authenticated and holds any of the
// given permissions. Returns (claims, true) on success; otherwise it writes
// the error response and returns false.
func (s *Server) require(c *gin.Context, anyOf ...string) (*jwt.Claims, bool) {
	claims, hadBearer := s.auth(c.Request)
	if claims == nil {
		if hadBearer {
			s.respondError(c, http.StatusUnauthorized, "Token inválido")
		} else {
			s.respondError(c, http.StatusUnauthorized, "Token não fornecido")
		}
		c.Abort()
		return nil, false
	}
	if len(anyOf) == 0 {
		return claims, true
	}
	for _, p := range anyOf {
		if s.can(claims, p) {
			return claims, true
		}
	}
	s.respondError(c, http.StatusForbidden, "Acesso negado")
	c.Abort()
	return nil, false
}

// requireBare is require for the endpoints that answer plain `{"error":...}`
// bodies instead of the success envelope (rooms, play-session records).
func (s *Server) requireBare(c *gin.Context, anyOf ...string) (*jwt.Claims, bool) {
	claims, hadBearer := s.auth(c.Request)
	if claims == nil {
		msg := "Token não fornecido"
		if hadBearer {
			msg = "Token inválido"
		}
		s.JSON(c, http.StatusUnauthorized, gin.H{"error": msg})
		c.Abort()
		return nil, false
	}
	for _, p := range anyOf {
		if s.can(claims, p) {
			return claims, true
		}
	}
	if len(anyOf) == 0 {
		return claims, true
	}
	s.JSON(c, http.StatusForbidden, gin.H{"error": "Acesso negado"})
	c.Abort()
	return nil, false
}

// idParam parses the numeric :id path segment. Zero means malformed.
func idParam(c *gin.Context) uint {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// can checks permission for the user or their role.
func (s *Server) can(claims *jwt.Claims, perm string) bool {
	if s.rbac == nil {
		return true
	}
	if s.rbac.Can("user:"+claims.Email, perm) {
		return true
	}
	return s.rbac.Can("role:"+claims.Cargo, perm)
}

// allowLogin performs simple in-memory rate limiting for login attempts per ip|email.
func (s *Server) allowLogin(ip, email string) bool {
	key := fmt.Sprintf("%s|%s", strings.TrimSpace(ip), strings.TrimSpace(email))
	now := time.Now()
	window := now.Add(-5 * time.Minute)
	s.loginMu.Lock()
	defer s.loginMu.Unlock()
	arr := s.loginAttempts[key]
	kept := arr[:0]
	for _, t := range arr {
		if t.After(window) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= 10 { // max 10 attempts per 5 minutes
		s.loginAttempts[key] = kept
		return false
	}
	kept = append(kept, now)
	s.loginAttempts[key] = kept
	return true
}
