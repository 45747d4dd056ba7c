// Package httpapi expone la arena por HTTP: el payload del ciclo para el
// dashboard, los logs de trades y ciclos, y los comandos de operador
// (reset, settle).
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alejandrodnm/botarena/internal/application/arena"
	"github.com/alejandrodnm/botarena/internal/ports"
)

// Server sirve la API REST de la arena.
type Server struct {
	addr   string
	router *gin.Engine
}

// NewServer monta el router con todas las rutas.
func NewServer(addr string, runner *arena.Runner, store ports.ArenaStore) *Server {
	if addr == "" {
		addr = ":8080"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{runner: runner, store: store}
	api := router.Group("/api/arena")
	{
		api.GET("", h.getArena)
		api.GET("/trades", h.getTrades)
		api.GET("/agents/:id", h.getAgent)
		api.GET("/cycles", h.getCycles)
		api.GET("/report", h.getReport)
		api.POST("/reset", h.postReset)
		api.POST("/settle", h.postSettle)
	}

	return &Server{addr: addr, router: router}
}

// Handler expone el router, para montar en httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start sirve hasta que el contexto se cancele o el listener falle. La
// cancelación dispara un shutdown limpio con gracia de cinco segundos.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http api listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// requestLogger registra cada request con método, ruta, status y duración.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"dur", time.Since(start).Round(time.Millisecond),
		)
	}
}
