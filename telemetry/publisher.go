package telemetry

import "github.com/domino14/pokerequity/scheduler"

// Publish implements scheduler.Publisher, so a worker pool's periodic
// snapshots (spec.md §4.4) flow straight into the equity-results table
// without the scheduler package needing to know anything about shared
// memory.
func (w *Writer) Publish(snap scheduler.Snapshot) {
	if w == nil {
		return
	}
	names, records := NamesAndRecords(snap.Results)
	w.PublishEquity(names, records)
	w.PublishHands(snap.SimulationsProcessed)
}

// PublishResults implements rangeequity.TelemetryPublisher: after each
// hand in a range job completes, republish the full accumulated results
// map and the hands-processed count (spec.md §4.5 step 4).
func (w *Writer) PublishResults(results map[string]scheduler.EquityResult, handsProcessed uint64) {
	if w == nil {
		return
	}
	names, records := NamesAndRecords(results)
	w.PublishEquity(names, records)
	w.PublishHands(handsProcessed)
}
