package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"metalprices/internal/model"
)

type SnapshotProvider interface {
	GetSnapshot(ctx context.Context) model.Snapshot
}

type Interaction struct {
	logger   *slog.Logger
	provider SnapshotProvider
	engine   *gin.Engine
}

// NewInteraction creates the HTTP API serving snapshots on path.
func NewInteraction(logger *slog.Logger, provider SnapshotProvider, path string) *Interaction {
	cnt := &Interaction{
		logger:   logger.With("component", "httpapi"),
		provider: provider,
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = false
	engine.Use(gin.Recovery(), requestLogger(cnt.logger), responseHeaders())
	engine.GET(path, cnt.handleSnapshot)
	engine.OPTIONS(path, cnt.handlePreflight)
	engine.NoRoute(cnt.handleUnrouted)

	cnt.engine = engine
	return cnt
}

func (that *Interaction) Handler() http.Handler {
	return that.engine
}

// Start serves on addr until ctx is canceled, then shuts down within shutdownTimeout.
func (that *Interaction) Start(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	log := that.logger.With("method", "Start", "addr", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           that.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down http server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (that *Interaction) handleSnapshot(c *gin.Context) {
	log := loggerFromContext(c, that.logger)

	snapshot := that.provider.GetSnapshot(c.Request.Context())
	if snapshot.Error != "" {
		log.Warn("serving fallback snapshot", "error", snapshot.Error)
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		log.Error("failed to encode snapshot", "error", err)
		body = []byte("{}")
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (that *Interaction) handlePreflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// handleUnrouted answers any other method or path like the snapshot path.
func (that *Interaction) handleUnrouted(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		that.handlePreflight(c)
		return
	}

	that.handleSnapshot(c)
}
