package api

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/closurelabs/traininglog/internal/auth"
	"github.com/closurelabs/traininglog/internal/ctxutil"
	"github.com/closurelabs/traininglog/internal/metrics"
	"github.com/closurelabs/traininglog/internal/models"
)

const claimsKey = "claims"

// OpGate serializes mutating operations per user, the server-side
// counterpart of the UI disabling its submit control while a request
// is in flight.
type OpGate struct {
	mu   sync.Mutex
	byID map[string]*sync.Mutex
}

func NewOpGate() *OpGate {
	return &OpGate{byID: make(map[string]*sync.Mutex)}
}

func (g *OpGate) Lock(uid string) func() {
	g.mu.Lock()
	m, ok := g.byID[uid]
	if !ok {
		m = &sync.Mutex{}
		g.byID[uid] = m
	}
	g.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return Errf(KindUnauthorized, "missing bearer token")
		}
		claims, err := s.tokens.ParseToken(token)
		if err != nil {
			return Errf(KindUnauthorized, "invalid or expired token")
		}
		c.Set(claimsKey, claims)
		ctx := ctxutil.WithUserID(c.Request().Context(), claims.UID)
		ctx = ctxutil.WithRole(ctx, claims.Role)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claimsOf(c).Role != string(models.Admin) {
			return Errf(KindForbidden, "admin role required")
		}
		return next(c)
	}
}

// serialized wraps mutating handlers with the per-user gate.
func (s *Server) serialized(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		unlock := s.gate.Lock(claimsOf(c).UID)
		defer unlock()
		return next(c)
	}
}

func claimsOf(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	if claims == nil {
		return &auth.Claims{}
	}
	return claims
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			metrics.APIRequests.WithLabelValues(c.Request().Method, strconv.Itoa(status)).Inc()
			log.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Duration("took", time.Since(start)),
			)
			return nil
		}
	}
}
