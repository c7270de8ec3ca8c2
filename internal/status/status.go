// Package status serves a small read-only HTTP surface next to the check loop:
// a health probe, the persisted closest result and the Prometheus metrics.
package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/closest-arcade/internal/logger"
	"github.com/pfrederiksen/closest-arcade/internal/metrics"
	"github.com/pfrederiksen/closest-arcade/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the status routes. The store is only read.
func NewRouter(store storage.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/closest", func(c *gin.Context) {
		state, err := store.Load(c.Request.Context())
		if err != nil {
			logger.Error("Status read of state failed", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		if state == nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no closest arcade recorded yet"})
			return
		}
		c.JSON(http.StatusOK, state)
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

// Server runs the status routes on addr
type Server struct {
	srv *http.Server
}

// NewServer creates a status server listening on addr
func NewServer(addr string, store storage.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(store),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Status server listening", logger.Fields{"addr": s.srv.Addr})
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
