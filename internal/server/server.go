// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/analysis"
	"github.com/spigell/skillgap/internal/logger"
	"github.com/spigell/skillgap/internal/skills"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	maxUploadBytes    = 10 << 20
)

type Server struct {
	analyzer  *analysis.Analyzer
	extractor skills.Extractor
	advisor   ai.Advisor
	validator *Validator
	logger    *zap.Logger
	engine    *gin.Engine
}

// New builds the HTTP server. advisor may be nil, in which case requests
// asking for advice are answered without recommendations.
func New(analyzer *analysis.Analyzer, extractor skills.Extractor, advisor ai.Advisor, log *zap.Logger) *Server {
	if extractor == nil {
		extractor = skills.DefaultVocabulary()
	}

	s := &Server{
		analyzer:  analyzer,
		extractor: extractor,
		advisor:   advisor,
		validator: NewValidator(),
		logger:    logger.WithFields(log).Named("http"),
	}

	engine := gin.New()
	engine.MaxMultipartMemory = maxUploadBytes
	engine.Use(gin.Recovery(), requestIDMiddleware(), loggingMiddleware(s.logger))
	s.registerRoutes(engine)
	s.engine = engine

	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/healthz", s.healthz)

	v1 := r.Group("/v1")
	{
		v1.POST("/analyze", s.analyze)
		v1.POST("/skills", s.skills)
		v1.POST("/parse", s.parse)
		v1.POST("/score", s.score)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
