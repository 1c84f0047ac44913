package rangeequity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/eval"
	"github.com/domino14/pokerequity/scheduler"
)

// Request describes a full range-equity job (spec.md §3, JobRequest, the
// fields this driver actually consumes).
type Request struct {
	Hands          []HandSpec
	Board          []cards.Card
	NumOpponents   int
	NumSimulations int
	NumWorkers     int
	Seed           uint64
	UpdateInterval int
	Evaluator      eval.Evaluator
}

// ProgressFunc is called once per hand, from the driver goroutine only,
// after that hand's workers have all joined (spec.md §5).
type ProgressFunc func(fractionDone float64, handName string, result scheduler.EquityResult)

// TelemetryPublisher receives the full results map after each hand
// completes (spec.md §4.5 step 4) and the running count of hands fully
// processed.
type TelemetryPublisher interface {
	PublishResults(results map[string]scheduler.EquityResult, handsProcessed uint64)
}

// Snapshotter lets the driver forward per-trial scheduler snapshots
// (the sub-hand telemetry spec.md §4.6 describes) straight to a
// publisher without the driver needing to know about shared memory.
type Snapshotter interface {
	scheduler.Publisher
}

// Run executes a full range-equity job: for each hand, split
// req.NumSimulations/len(req.Hands) trials (remainder discarded by
// design, spec.md §4.5 step 1 and §9) across req.NumWorkers, then
// aggregate that hand's overall EquityResult by summing across its own
// per-opponent-class entries only.
//
// spec.md §9's Open Question describes the original engine summing
// across a shared results map that mixes live opponent-class entries
// with previously-stored hand summaries, double-counting across a
// multi-hand range. This aggregates only the current hand's freshly
// computed per-opponent-class breakdown, never anything left over from
// an earlier hand, per the Open Question's resolution.
//
// Run returns the job-wide results map, one entry per distinct hand name
// in req.Hands, holding that name's aggregated overall EquityResult — the
// shape of JobState.final_results (spec.md §3). Hands that share a name
// (the suit combinations ParseRangeSpec expands one class into) are
// summed into that single entry.
func Run(ctx context.Context, req Request, progress ProgressFunc, pub TelemetryPublisher, sub Snapshotter) map[string]scheduler.EquityResult {
	logger := zerolog.Ctx(ctx)
	all := map[string]scheduler.EquityResult{}
	if len(req.Hands) == 0 {
		return all
	}
	perHand := req.NumSimulations / len(req.Hands)

	var handsProcessed uint64
	for _, hs := range req.Hands {
		h := scheduler.Hand{
			Hole:         hs.Hole,
			KnownBoard:   req.Board,
			NumOpponents: req.NumOpponents,
		}
		perClass := scheduler.Run(ctx, h, perHand, req.NumWorkers, req.Seed, req.UpdateInterval, req.Evaluator, sub)

		overall := scheduler.EquityResult{Name: hs.Name}
		for _, r := range perClass {
			scheduler.Merge(&overall, r)
		}
		agg := all[hs.Name]
		agg.Name = hs.Name
		scheduler.Merge(&agg, overall)
		all[hs.Name] = agg

		handsProcessed++
		fraction := float64(handsProcessed) / float64(len(req.Hands))
		logger.Debug().Str("hand", hs.Name).Float64("fraction", fraction).Msg("rangeequity-hand-done")

		if pub != nil {
			pub.PublishResults(all, handsProcessed)
		}
		if progress != nil {
			progress(fraction, hs.Name, overall)
		}
	}
	return all
}
