// Command telemetryreader attaches to a running job's shared-memory
// telemetry segment and either prints each snapshot as a JSON line
// (the default) or fans it out to WebSocket subscribers. Spawning this
// process, and the HTTP/CORS surface a real deployment would put in
// front of -serve, are both named out of scope; -serve exists only to
// exercise the WebSocket dependency the pack carries.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/pokerequity/internal/telemetryfanout"
	"github.com/domino14/pokerequity/telemetry"
)

func main() {
	fs := flag.NewFlagSet("telemetryreader", flag.ContinueOnError)
	jobID := fs.String("job-id", "", "job id whose segment to attach to (required)")
	interval := fs.Duration("interval", 200*time.Millisecond, "poll interval")
	serveAddr := fs.String("serve", "", "if set, fan snapshots out over WebSocket on this address (e.g. :8090) instead of printing")
	debug := fs.Bool("debug", false, "enable debug-level logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("flag parse failed")
	}
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if *jobID == "" {
		log.Fatal().Msg("-job-id is required")
	}

	reader, err := telemetry.Open(*jobID)
	if err != nil {
		log.Fatal().Err(err).Str("job_id", *jobID).Msg("failed to attach to telemetry segment")
	}
	defer reader.Close()

	if *serveAddr != "" {
		serve(reader, *jobID, *interval, *serveAddr)
		return
	}
	print(reader, *jobID, *interval)
}

func print(reader *telemetry.Reader, jobID string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		header, err := reader.ReadHeaderWithRetry(3)
		if err != nil {
			log.Warn().Err(err).Msg("read header failed")
			continue
		}
		equity, err := reader.ReadEquity()
		if err != nil {
			log.Warn().Err(err).Msg("read equity failed")
			continue
		}
		line := map[string]any{
			"job_id":          jobID,
			"hands_processed": header.HandsProcessed,
			"status":          header.Status,
			"names":           equity.Names,
		}
		b, _ := json.Marshal(line)
		fmt.Println(string(b))
		if header.Status != telemetry.StatusRunning {
			return
		}
	}
}

func serve(reader *telemetry.Reader, jobID string, interval time.Duration, addr string) {
	hub := telemetryfanout.NewHub()
	fanout := telemetryfanout.New(hub, reader, jobID, interval)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := fanout.Run(ctx); err != nil && err != context.Canceled {
			log.Warn().Err(err).Msg("fanout loop exited")
		}
	}()
	defer cancel()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if _, err := telemetryfanout.Upgrade(hub, w, r); err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
		}
	})
	log.Info().Str("addr", addr).Str("job_id", jobID).Msg("serving telemetry over websocket at /ws")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
