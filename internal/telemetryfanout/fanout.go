package telemetryfanout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/pokerequity/telemetry"
)

// EquityEntry is one hand or opponent-class row of a broadcast frame.
type EquityEntry struct {
	Name        string  `json:"name"`
	Equity      float64 `json:"equity"`
	Wins        uint32  `json:"wins"`
	Ties        uint32  `json:"ties"`
	Losses      uint32  `json:"losses"`
	Simulations uint32  `json:"simulations"`
}

// Frame is one broadcast snapshot of a job's telemetry segment.
type Frame struct {
	JobID          string        `json:"job_id"`
	HandsProcessed uint64        `json:"hands_processed"`
	LastUpdateNs   uint64        `json:"last_update_ns"`
	Status         byte          `json:"status"`
	Equity         []EquityEntry `json:"equity"`
}

// Fanout polls a job's shared-memory segment and broadcasts each poll's
// snapshot onto hub as a JSON frame, until the job completes, fails, or
// ctx is canceled.
type Fanout struct {
	hub      *Hub
	reader   *telemetry.Reader
	jobID    string
	interval time.Duration
}

// New returns a Fanout that polls reader every interval and broadcasts
// onto hub under jobID.
func New(hub *Hub, reader *telemetry.Reader, jobID string, interval time.Duration) *Fanout {
	return &Fanout{hub: hub, reader: reader, jobID: jobID, interval: interval}
}

// Run polls until the segment reports a terminal status or ctx is done.
// It never returns telemetry.ErrSeqlockHang to the caller as fatal: a
// single hung read is logged and retried on the next tick, since a
// momentarily-stuck writer shouldn't tear down every subscriber's feed.
func (f *Fanout) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			done, err := f.tick()
			if err != nil {
				log.Debug().Err(err).Str("job_id", f.jobID).Msg("telemetryfanout: tick failed")
				continue
			}
			if done {
				return nil
			}
		}
	}
}

func (f *Fanout) tick() (done bool, err error) {
	header, err := f.reader.ReadHeader()
	if err != nil {
		return false, err
	}
	equity, err := f.reader.ReadEquity()
	if err != nil {
		return false, err
	}
	frame := Frame{
		JobID:          f.jobID,
		HandsProcessed: header.HandsProcessed,
		LastUpdateNs:   header.LastUpdateNs,
		Status:         header.Status,
		Equity:         make([]EquityEntry, len(equity.Names)),
	}
	for i, name := range equity.Names {
		r := equity.Records[i]
		frame.Equity[i] = EquityEntry{
			Name:        name,
			Equity:      r.Equity,
			Wins:        r.Wins,
			Ties:        r.Ties,
			Losses:      r.Losses,
			Simulations: r.Simulations,
		}
	}
	b, err := json.Marshal(frame)
	if err != nil {
		return false, err
	}
	f.hub.Broadcast(b)
	return header.Status != telemetry.StatusRunning, nil
}
