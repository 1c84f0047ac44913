package scheduler

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/eval"
	"github.com/domino14/pokerequity/simulate"
)

// DefaultUpdateInterval is how many trials elapse, system-wide, between
// periodic merges (spec.md §4.4's "update_interval (default 1000)").
const DefaultUpdateInterval = 1000

// Snapshot is what the scheduler hands to a telemetry publisher after
// each periodic merge: the merged-so-far per-opponent-class results and
// the running simulation count.
type Snapshot struct {
	Results              map[string]EquityResult
	SimulationsProcessed uint64
}

// Publisher receives periodic snapshots. telemetry.Writer implements
// this; tests can supply a func-backed stub.
type Publisher interface {
	Publish(Snapshot)
}

// PublisherFunc adapts a plain function to Publisher.
type PublisherFunc func(Snapshot)

func (f PublisherFunc) Publish(s Snapshot) { f(s) }

// Hand describes the one hole-hand a worker pool plays against a fixed
// number of opponents over a fixed board.
type Hand struct {
	Hole         [2]cards.Card
	KnownBoard   []cards.Card
	NumOpponents int
}

// Run splits totalTrials across numWorkers goroutines, runs the
// simulation kernel in each, and merges per-opponent-class tallies under
// a shared mutex (spec.md §4.4). seed seeds a per-worker RNG
// deterministically (seed, workerIndex) so a job is reproducible; seed=0
// draws fresh entropy per worker instead. updateInterval is the trial
// count between periodic merges (spec.md §4.4's update_interval); a
// value <= 0 falls back to DefaultUpdateInterval.
func Run(ctx context.Context, h Hand, totalTrials int, numWorkers int, seed uint64, updateInterval int, ev eval.Evaluator, pub Publisher) map[string]EquityResult {
	logger := zerolog.Ctx(ctx)
	splits := Split(totalTrials, numWorkers)
	if updateInterval <= 0 {
		updateInterval = DefaultUpdateInterval
	}

	var mu sync.Mutex
	merged := map[string]EquityResult{}
	var simsProcessed atomic.Uint64
	var lastUpdateCount atomic.Uint64

	publishLocked := func() {
		snap := Snapshot{Results: make(map[string]EquityResult, len(merged)), SimulationsProcessed: simsProcessed.Load()}
		for k, v := range merged {
			snap.Results[k] = v
		}
		if pub != nil {
			pub.Publish(snap)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for worker := 0; worker < len(splits); worker++ {
		worker := worker
		trials := splits[worker]
		g.Go(func() error {
			rng := workerRNG(seed, worker)
			// local accumulates this worker's full tally (counts and
			// matrices) for its entire lifetime; lastPublished is a copy
			// of the counts already folded into merged as of the last
			// periodic update, so the delta can be re-derived without
			// ever discarding local's matrix data.
			local := map[string]EquityResult{}
			lastPublished := map[string]EquityResult{}
			for t := 0; t < trials; t++ {
				res := simulate.RunTrial(rng, h.Hole, h.KnownBoard, h.NumOpponents, ev)
				entry := local[res.OppClass]
				entry.Name = res.OppClass
				entry.addOutcome(int(res.Outcome), int(res.OurType), int(res.BestOppTyp))
				local[res.OppClass] = entry

				processed := simsProcessed.Add(1)
				if processed-lastUpdateCount.Load() >= uint64(updateInterval) {
					mu.Lock()
					mergeCountsDelta(merged, local, lastPublished)
					lastPublished = snapshotCounts(local)
					publishLocked()
					lastUpdateCount.Store(processed)
					mu.Unlock()
				}
			}
			mu.Lock()
			mergeCountsDelta(merged, local, lastPublished)
			mergeMatrices(merged, local)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Err(err).Msg("scheduler-worker-error")
	}
	return merged
}

// mergeCountsDelta folds into dst only the scalar counts src has gained
// since prev was taken, leaving dst's matrices untouched. This is the
// periodic update spec.md §4.4 calls cheap enough to run every
// update_interval trials.
func mergeCountsDelta(dst, src, prev map[string]EquityResult) {
	for k, v := range src {
		p := prev[k]
		delta := EquityResult{
			Name:        k,
			Simulations: v.Simulations - p.Simulations,
			Wins:        v.Wins - p.Wins,
			Ties:        v.Ties - p.Ties,
			Losses:      v.Losses - p.Losses,
		}
		e := dst[k]
		e.Name = k
		mergeCountsOnly(&e, delta)
		dst[k] = e
	}
}

// mergeMatrices folds src's method matrices into dst. Counts are not
// touched here: mergeCountsDelta already folded in every count, including
// the trials run since the last periodic update, before this is called
// at worker exit.
func mergeMatrices(dst, src map[string]EquityResult) {
	for k, v := range src {
		e := dst[k]
		e.Name = k
		for i := 0; i < 10; i++ {
			for j := 0; j < 10; j++ {
				e.WinMethodMatrix[i][j] += v.WinMethodMatrix[i][j]
				e.LossMethodMatrix[i][j] += v.LossMethodMatrix[i][j]
			}
		}
		dst[k] = e
	}
}

func snapshotCounts(src map[string]EquityResult) map[string]EquityResult {
	out := make(map[string]EquityResult, len(src))
	for k, v := range src {
		out[k] = EquityResult{Name: k, Simulations: v.Simulations, Wins: v.Wins, Ties: v.Ties, Losses: v.Losses}
	}
	return out
}

// workerRNG derives a per-worker random source. seed=0 means "random":
// each worker gets its own unseeded generator. A nonzero seed is combined
// with the worker index so the same (seed, worker count) pair replays
// identically, per SPEC_FULL.md's deterministic-seeding supplement.
func workerRNG(seed uint64, worker int) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, uint64(worker)+1))
}
