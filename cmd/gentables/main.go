// Command gentables runs the offline evaluator table generators (spec.md
// §4.2) once and writes their output, plus a checksummed manifest, to
// -table-dir. eval.PerfectHashKind and eval.TwoPlusTwoKind load from
// whatever this command produces.
package main

import (
	"os"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/pokerequity/tables"
)

func main() {
	fs := flag.NewFlagSet("gentables", flag.ContinueOnError)
	dir := fs.String("table-dir", "./data/tables", "directory to write the generated tables and manifest into")
	twoPlusTwo := fs.Bool("two-plus-two", false, "also build and save the 2+2 state-machine table (large: tens of millions of entries)")
	debug := fs.Bool("debug", false, "enable debug-level logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("flag parse failed")
	}
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	start := time.Now()
	if err := tables.Generate(*dir); err != nil {
		log.Fatal().Err(err).Msg("failed to generate flush/rank tables")
	}
	log.Info().Dur("elapsed", time.Since(start)).Str("dir", *dir).Msg("flush and rank tables generated")

	if !*twoPlusTwo {
		return
	}
	start = time.Now()
	hr := tables.BuildTwoPlusTwo()
	if err := tables.SaveTwoPlusTwo(*dir, hr); err != nil {
		log.Fatal().Err(err).Msg("failed to save 2+2 table")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("entries", len(hr)).Msg("2+2 table generated")
}
