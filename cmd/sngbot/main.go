package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sng-lab/auth"
	"sng-lab/infrastructure/websocket"
	"sng-lab/internal"
	"sng-lab/projection"
	"sng-lab/repositories"
	"sng-lab/runtime"
	"sng-lab/services"
	"sng-lab/sink"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 30 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sngbot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires storage, the orchestrator and the websocket surface, then blocks until a signal or a server error.
// Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB), only ended sessions are stored
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	if logger.Enabled(ctx, slog.LevelDebug) {
		internal.StartInspector(logger, db, config.DebugPort)
	}

	// 3. Chat surface, orchestration and sinks
	hub := websocket.NewHub(logger)
	surface := websocket.NewSurface(logger, hub, config.SurfaceOptions())
	orchestrator := runtime.NewOrchestrator(logger, surface, config.Options())

	archive := repositories.NewSessionArchive(db, logger, config.LimitSessions)
	timeline := projection.NewTimeline(config.TimelineCapacity)
	orchestrator.Add(sink.NewArchiveSink(archive, logger), timeline)

	service := services.NewSNGService(logger, orchestrator.Controller(), surface, orchestrator, config.Policy(), config.RoleName)
	tokens := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)

	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.NewHandler(logger, hub, surface, tokens, service, config.OperationTimeout))
	mux.Handle("/debug/", internal.DebugHandler(logger, orchestrator.Controller(), timeline, archive))
	server := &http.Server{Addr: config.Address(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	// 4. Context & Signals
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The orchestrator outlives the signal so that shutdown events still reach the sinks.
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	errChan := make(chan error, 2)
	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		if err := orchestrator.Start(runCtx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	go func() {
		logger.Info("Starting websocket server", "address", config.Address(), "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-signalCtx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 6. Graceful shutdown: live sessions are ended and cleaned up before the workers stop
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := orchestrator.Stop(shutdownCtx); err != nil {
		logger.Error("Sessions were not all ended cleanly", "error", err)
	}
	cancelRun()
	<-orchestratorDone

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server did not stop cleanly", "error", err)
	}
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}
	return options
}
