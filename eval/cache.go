package eval

import (
	"fmt"

	"github.com/domino14/pokerequity/cache"
	"github.com/domino14/pokerequity/config"
)

// tableCache holds every evaluator this process has built, keyed by
// which algorithm and table directory built it, so two jobs that pick
// the same algorithm and directory share one set of tables.
var tableCache = cache.New[Evaluator]()

// Shared returns a process-wide Evaluator for kind, building or loading
// it only once per (kind, tableDir) pair via tableCache (spec.md §9).
// Every job selecting the same algorithm and table directory shares the
// same underlying tables.
func Shared(cfg *config.Config, kind Kind) (Evaluator, error) {
	key := cache.Key{Kind: kind.String(), TableDir: cfg.TableDir}
	ev, err := tableCache.Load(key, func(k cache.Key) (Evaluator, error) {
		return New(kind, k.TableDir)
	})
	if err != nil {
		return nil, fmt.Errorf("eval: loading shared %s evaluator: %w", kind, err)
	}
	return ev, nil
}
