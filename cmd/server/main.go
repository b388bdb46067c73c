/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the safety dashboard server: storage, board
  state, autosave, the auto-fill and remote-pull schedulers, and the
  HTTP API.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open SQLite store
  3. Load last snapshot (or seed defaults)
  4. Wire the debounced autosaver to board changes
  5. Load sync config (stored record, else environment defaults)
  6. Start auto-fill and pull schedulers
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: safety-board.db)
           Use ":memory:" for an ephemeral run

ENVIRONMENT:
  SHEETS_ENDPOINT, SHEETS_WRITE_TOKEN, SHEETS_PULL_INTERVAL_SEC seed
  the sync configuration on first run (before anything is stored).

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop schedulers, flush the autosaver, drain HTTP,
  close the database.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plantops/safety-board/api"
	"github.com/plantops/safety-board/board"
	"github.com/plantops/safety-board/sheets"
	"github.com/plantops/safety-board/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "safety-board.db", "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Now()

	// Board state: last snapshot if present, defaults otherwise. The
	// seed announcement only appears when nothing at all was loaded.
	b := board.New(now)
	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		log.Printf("Warning: failed to load snapshot: %v", err)
	}
	if snap != nil {
		b.ApplySnapshot(snap)
		log.Printf("Loaded snapshot for year %d (updated %s)", snap.Year, snap.UpdatedAt.Format(time.RFC3339))
	} else {
		b.SeedDefaultAnnouncement(now)
		log.Printf("No snapshot found; starting fresh for year %d", now.Year())
	}

	// Autosave: every board change, debounced.
	saver := board.NewAutosaver(store, func() board.PersistedSnapshot {
		return b.ExportSnapshot(time.Now())
	}, board.DefaultAutosaveDelay)
	b.SetOnChange(saver.Notify)

	// Remote sync: stored config wins, environment seeds first run.
	client := sheets.NewClient(b)
	cfg, err := store.LoadConfig(ctx)
	if err != nil {
		log.Printf("Warning: failed to load sync config: %v", err)
	}
	if cfg == nil {
		env := sheets.ConfigFromEnv()
		cfg = &env
	}
	client.Configure(*cfg)

	puller := sheets.NewPullScheduler(client)
	puller.Restart()
	defer puller.Stop()

	autofill := api.NewAutoFillScheduler(b)
	autofill.Start()
	defer autofill.Stop()

	handler := api.NewHandler(b, client, puller, store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Safety board serving on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Final write so nothing inside the debounce window is lost.
	saver.Close()

	log.Println("Server stopped")
}
