// Command pokerequity runs a single range-equity job end to end: parse
// the hand(s) and board from the command line, run the worker scheduler
// for each hand, optionally stream progress to a shared-memory telemetry
// segment, and print the final per-hand results as JSON. Submitting a
// job over HTTP, and spawning this process on a client's behalf, are
// both named out of scope; this binary is the process that would sit on
// the other end of that submission.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/config"
	"github.com/domino14/pokerequity/eval"
	"github.com/domino14/pokerequity/registry"
	"github.com/domino14/pokerequity/rangeequity"
	"github.com/domino14/pokerequity/scheduler"
	"github.com/domino14/pokerequity/telemetry"
)

func main() {
	cfg := &config.Config{}
	fs := flag.NewFlagSet("pokerequity", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	hero := fs.String("hero", "", "hero hole cards, e.g. AsAh (mutually exclusive with -range)")
	heroName := fs.String("hero-name", "hero", "name to report the -hero hand under")
	rangeSpec := fs.String("range", "", "shorthand range, e.g. \"AKs+\", \"22-77\", \"top 15%\"")
	board := fs.String("board", "", "known board cards, e.g. AsKdQc (0, 3, 4, or 5 cards)")
	opponents := fs.Int("opponents", 1, "number of opponents")
	seed := fs.Uint64("seed", 0, "RNG seed for a reproducible run (0 = random)")
	telemetryOn := fs.Bool("telemetry", false, "publish progress to a shared-memory telemetry segment")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("flag parse failed")
	}
	if err := cfg.ApplyOverlay(fs); err != nil {
		log.Fatal().Err(err).Msg("config overlay failed")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if cfg.DefaultWorkers <= 0 {
		cfg.DefaultWorkers = 1
	}

	boardCards, err := parseCards(*board)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -board")
	}

	explicit := map[string][2]cards.Card{}
	if *hero != "" {
		holeCards, err := parseCards(*hero)
		if err != nil || len(holeCards) != 2 {
			log.Fatal().Err(err).Str("hero", *hero).Msg("invalid -hero, want exactly two cards")
		}
		explicit[*heroName] = [2]cards.Card{holeCards[0], holeCards[1]}
	}
	hands, err := rangeequity.ParseRangeSpec(explicit, *rangeSpec)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -hero/-range")
	}
	if len(hands) == 0 {
		log.Fatal().Msg("no hands to evaluate: pass -hero or -range")
	}

	kind, err := eval.ParseKind(cfg.DefaultAlgorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -algorithm")
	}
	ev, err := eval.Shared(cfg, kind)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load evaluator tables")
	}

	reg := registry.New()
	jobID := reg.Create()
	logger := log.With().Str("job_id", jobID).Logger()
	ctx := logger.WithContext(context.Background())
	if err := reg.Start(jobID); err != nil {
		logger.Fatal().Err(err).Msg("failed to start job")
	}

	var writer *telemetry.Writer
	if *telemetryOn {
		writer, err = telemetry.New(ctx, jobID)
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry disabled: segment could not be created")
		} else {
			defer writer.Close(telemetry.StatusCompleted)
		}
	}

	req := rangeequity.Request{
		Hands:          hands,
		Board:          boardCards,
		NumOpponents:   *opponents,
		NumSimulations: cfg.DefaultSimulations,
		NumWorkers:     cfg.DefaultWorkers,
		Seed:           *seed,
		UpdateInterval: cfg.UpdateInterval,
		Evaluator:      ev,
	}
	progress := func(fraction float64, handName string, result scheduler.EquityResult) {
		live := map[string]float64{handName: result.Equity()}
		if err := reg.UpdateProgress(jobID, fraction, live); err != nil {
			logger.Warn().Err(err).Msg("progress update failed")
		}
	}

	var sub scheduler.Publisher
	var pub rangeequity.TelemetryPublisher
	if writer != nil {
		sub = writer
		pub = writer
	}
	results := rangeequity.Run(ctx, req, progress, pub, sub)
	if err := reg.Complete(jobID, results); err != nil {
		logger.Warn().Err(err).Msg("failed to mark job complete")
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to marshal results")
	}
	fmt.Println(string(out))
}

func parseCards(s string) ([]cards.Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("malformed card string %q", s)
	}
	out := make([]cards.Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := cards.Parse(s[i : i+2])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
