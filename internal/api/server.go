package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/closurelabs/traininglog/internal/auth"
	"github.com/closurelabs/traininglog/internal/config"
	"github.com/closurelabs/traininglog/internal/metrics"
)

type Server struct {
	cfg    *config.Config
	db     *sql.DB
	log    *zap.Logger
	tokens *auth.Manager
	gate   *OpGate
	echo   *echo.Echo
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func New(cfg *config.Config, database *sql.DB, log *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		db:     database,
		log:    log,
		tokens: auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		gate:   NewOpGate(),
		echo:   echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = &requestValidator{validate: validator.New()}
	s.echo.HTTPErrorHandler = HTTPErrorHandler(log)
	s.echo.Use(middleware.Recover())
	s.echo.Use(requestLogger(log))
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/healthz", s.healthz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/reset-request", s.resetRequest)
	api.POST("/auth/reset", s.resetPassword)

	authed := api.Group("", s.requireAuth)
	authed.GET("/me", s.me)

	authed.GET("/projects", s.listProjects)
	authed.GET("/campuses", s.listCampuses)
	authed.GET("/batches", s.listBatches)
	authed.GET("/hierarchy/options", s.hierarchyOptions)

	authed.GET("/entries", s.listEntries)
	authed.POST("/entries", s.createEntry, s.serialized)
	authed.PATCH("/entries/:id", s.updateEntry, s.serialized)
	authed.GET("/entries/export", s.exportEntries)

	admin := authed.Group("", s.requireAdmin)
	admin.POST("/projects", s.createProject, s.serialized)
	admin.PATCH("/projects/:id", s.renameProject, s.serialized)
	admin.DELETE("/projects/:id", s.deleteProject, s.serialized)
	admin.POST("/campuses", s.createCampus, s.serialized)
	admin.PATCH("/campuses/:id", s.renameCampus, s.serialized)
	admin.DELETE("/campuses/:id", s.deleteCampus, s.serialized)
	admin.POST("/batches", s.createBatch, s.serialized)
	admin.PATCH("/batches/:id", s.renameBatch, s.serialized)
	admin.DELETE("/batches/:id", s.deleteBatch, s.serialized)
	admin.GET("/trainers", s.listTrainers)
	admin.POST("/trainers", s.createTrainer, s.serialized)
}

func (s *Server) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		s.log.Warn("healthz db ping failed", zap.Error(err))
		return c.String(http.StatusServiceUnavailable, "db not ok")
	}
	metrics.ObserveDBPing(time.Since(t0))
	return c.String(http.StatusOK, "ok")
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
