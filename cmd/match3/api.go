package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/server"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagAPIAddr    string
	flagSessionTTL time.Duration
	flagNoStore    bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Start a JSON HTTP API that plays match3 sessions for bots and web clients.

Endpoints:
  GET    /healthz
  GET    /v1/levels
  POST   /v1/sessions             {"level_id": "...", "mode": "match3", "seed": 1}
  GET    /v1/sessions/{id}
  POST   /v1/sessions/{id}/swap   {"a": {"x": 0, "y": 0}, "b": {"x": 1, "y": 0}}
  GET    /v1/sessions/{id}/hint
  DELETE /v1/sessions/{id}

Finished runs are saved to the scores database unless --no-store is set.

Examples:
  match3 api
  match3 api --addr 127.0.0.1:9000 --session-ttl 10m`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
	apiCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", 30*time.Minute, "Drop sessions idle for this long")
	apiCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not save finished runs")
}

func runAPI(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	var store *storage.Store
	if !flagNoStore {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening scores database: %v", err)
		}
		defer store.Close()
	}

	srv := server.New(server.Options{
		Addr:       flagAPIAddr,
		Config:     a.cfg,
		Levels:     a.levels,
		Store:      store,
		Logger:     a.logger,
		SessionTTL: flagSessionTTL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving the match3 API on %s\n", srv.Addr())
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
