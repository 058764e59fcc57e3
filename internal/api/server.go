// Package api exposes the silver datasets over REST.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"parlamentodb/internal/config"
	"parlamentodb/internal/silver"
)

// Server ties the gin router to the silver store and the optional periodic
// reload.
type Server struct {
	cfg     config.Config
	store   *silver.Store
	log     *zap.Logger
	engine  *gin.Engine
	cron    *cron.Cron
	refresh func() error
}

func NewServer(cfg config.Config, store *silver.Store, log *zap.Logger) *Server {
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	s := &Server{cfg: cfg, store: store, log: log, engine: engine}
	NewHandlers(store, cfg).Register(engine)
	return s
}

// OnRefresh installs a hook run before each scheduled store reload, typically
// a fetch+transform pass over the configured legislatures.
func (s *Server) OnRefresh(fn func() error) {
	s.refresh = fn
}

// Run loads the store, starts the reload schedule if configured, and serves
// until the listener fails.
func (s *Server) Run() error {
	if err := s.store.Reload(); err != nil {
		return fmt.Errorf("initial store load: %w", err)
	}

	if s.cfg.RefreshCron != "" {
		s.cron = cron.New()
		_, err := s.cron.AddFunc(s.cfg.RefreshCron, func() {
			if s.refresh != nil {
				if err := s.refresh(); err != nil {
					s.log.Error("scheduled refresh failed", zap.Error(err))
				}
			}
			if err := s.store.Reload(); err != nil {
				s.log.Error("scheduled reload failed", zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", s.cfg.RefreshCron, err)
		}
		s.cron.Start()
		s.log.Info("scheduled silver reload", zap.String("cron", s.cfg.RefreshCron))
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort)
	s.log.Info("serving", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
