package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"instafolio/pkg/compile"
	"instafolio/pkg/config"
	"instafolio/pkg/llm"
	"instafolio/pkg/server/middleware"
	"instafolio/pkg/server/respond"
)

// Server runs the session service over HTTP.
type Server struct {
	cfg    config.Config
	router *gin.Engine
}

// New builds the server with middleware and routes registered. The generator
// is shared by every session; pass llm.Unconfigured to run without a key.
func New(cfg config.Config, gen llm.Generator) (srv *Server) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.Server.CORSOrigins),
	)

	manager := NewManager(gen, compile.ParseTheme(cfg.Defaults.Theme))
	handler := NewHandler(manager)

	api := router.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	handler.RegisterRoutes(api)

	srv = &Server{
		cfg:    cfg,
		router: router,
	}
	return srv
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() (router *gin.Engine) {
	router = s.router
	return router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) (err error) {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("session service listening")
		if listenErr := httpServer.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			serveErr <- listenErr
		}
	}()

	select {
	case err = <-serveErr:
		err = errors.Wrap(err, "server failed")
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}

	log.Info().Msg("session service stopped")
	return err
}
