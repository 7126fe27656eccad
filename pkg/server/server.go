package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediafs/pkg/log"
	"mediafs/pkg/media"
	"mediafs/pkg/meta"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10

// MediaServer exposes the media engine over HTTP: one action-multiplexed
// endpoint for the privileged global sandbox and one for per-member
// sandboxes. Authentication happens upstream; the server reads the caller
// identity from reverse-proxy headers and re-validates every path anyway.
type MediaServer struct {
	storageDir string
	tempDir    string
	version    string
	echo       *echo.Echo
	store      meta.Store
	opts       media.Options
}

// NewMediaServer builds a server over the given storage tree and metadata
// store. tempDir must live on the same filesystem as storageDir.
func NewMediaServer(storageDir, tempDir, version string, store meta.Store, opts media.Options) *MediaServer {
	return &MediaServer{
		storageDir: storageDir,
		tempDir:    tempDir,
		version:    version,
		echo:       echo.New(),
		store:      store,
		opts:       opts,
	}
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (ms *MediaServer) Start(addr string) error {
	ms.setupRoutes()

	go func() {
		log.Info().
			Str("addr", addr).
			Str("storage_dir", ms.storageDir).
			Str("version", ms.version).
			Msg("Starting media server")

		if err := ms.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return ms.Shutdown()
}

// Shutdown stops the server with a bounded grace period.
func (ms *MediaServer) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := ms.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (ms *MediaServer) setupRoutes() {
	ms.echo.HideBanner = true
	ms.echo.HidePort = true

	ms.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	ms.echo.Use(middleware.Recover())

	ms.echo.POST("/api/media", ms.handleAdmin)
	ms.echo.POST("/api/member/media", ms.handleMember)
}

// handleAdmin serves the privileged global sandbox.
func (ms *MediaServer) handleAdmin(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if !identity.Admin {
		return respondError(ctx, media.PermissionError{Operation: "admin media"})
	}

	svc, err := media.NewService(ms.storageDir, ms.tempDir, ms.store)
	if err != nil {
		return respondError(ctx, err)
	}
	return ms.dispatch(ctx, svc, identity)
}

// handleMember serves the caller's own sandbox.
func (ms *MediaServer) handleMember(ctx echo.Context) error {
	identity, err := callerIdentity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	svc, err := media.NewMemberService(ms.storageDir, ms.tempDir, ms.store, identity, ms.opts)
	if err != nil {
		return respondError(ctx, err)
	}
	return ms.dispatch(ctx, svc, identity)
}
