package telemetry

import (
	"sort"

	"github.com/domino14/pokerequity/scheduler"
)

// RecordFromEquityResult converts a scheduler.EquityResult into its
// on-wire Record form (spec.md §6).
func RecordFromEquityResult(r scheduler.EquityResult) Record {
	return Record{
		Equity:           r.Equity(),
		Wins:             uint32(r.Wins),
		Ties:             uint32(r.Ties),
		Losses:           uint32(r.Losses),
		Simulations:      uint32(r.Simulations),
		WinMethodMatrix:  r.WinMethodMatrix,
		LossMethodMatrix: r.LossMethodMatrix,
	}
}

// NamesAndRecords flattens a results map into the parallel
// names/records slices PublishEquity expects, sorted by name for
// deterministic ordering across publishes (spec.md §8 property 9's
// round-trip comparison is easiest against a stable order).
func NamesAndRecords(results map[string]scheduler.EquityResult) ([]string, []Record) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	records := make([]Record, len(names))
	for i, name := range names {
		records[i] = RecordFromEquityResult(results[name])
	}
	return names, records
}
