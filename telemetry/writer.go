package telemetry

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/rs/zerolog"
)

// Writer owns the one shared-memory segment for a single job and
// publishes to it under the seqlock protocol (spec.md §4.6). The header
// (hands-processed counter and status byte) shares one seq counter per
// spec.md §6's fixed byte layout; the equity-results table has its own,
// so a hot hands/status update never blocks on the larger table's publish.
//
// A nil *Writer is valid and every method on it is a no-op: spec.md §7's
// Resource-kind policy is "job continues without telemetry" when the
// segment could not be created, so callers that get an error from New
// may still keep a nil Writer around rather than threading an extra
// "telemetry enabled" flag through the engine.
type Writer struct {
	mu      sync.Mutex
	seg     *segment
	jobID   string
	started time.Time
}

// New creates and maps a fresh shared-memory segment for jobID and
// writes the initial header (spec.md §3 lifecycle: "writer creates the
// region ... initializes header and sets status=0"). On failure it logs
// and returns (nil, err); per spec.md §7 the caller should treat this as
// non-fatal and proceed without telemetry.
func New(ctx context.Context, jobID string) (*Writer, error) {
	logger := zerolog.Ctx(ctx)
	seg, err := createSegment(jobID)
	if err != nil {
		logger.Warn().Err(err).Str("job_id", jobID).Msg("telemetry-segment-create-failed")
		return nil, err
	}
	w := &Writer{seg: seg, jobID: jobID, started: time.Now()}
	w.PublishStatus(StatusRunning)
	return w, nil
}

func (w *Writer) seqPtr(off int) *uint32 {
	return (*uint32)(unsafe.Pointer(&w.seg.buf[off]))
}

// publish runs the two-phase seqlock dance around write: fetch_add(seq,1)
// makes seq odd, write runs the plain payload writes, then fetch_add
// again makes it even (spec.md §4.6).
func (w *Writer) publish(seqOff int, write func(buf []byte)) {
	if w == nil || w.seg == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	seq := w.seqPtr(seqOff)
	atomic.AddUint32(seq, 1)
	write(w.seg.buf)
	atomic.AddUint32(seq, 1)
}

// PublishHands updates the monotone hands-processed counter and the
// last-update timestamp under the header's own seq lock.
func (w *Writer) PublishHands(handsProcessed uint64) {
	w.publish(headerSeqOff, func(buf []byte) {
		if w.started.IsZero() {
			w.started = time.Now()
		}
		binary.LittleEndian.PutUint64(buf[headerJobStartNsOff:], uint64(w.started.UnixNano()))
		binary.LittleEndian.PutUint64(buf[headerHandsProcessedOff:], handsProcessed)
		binary.LittleEndian.PutUint64(buf[headerLastUpdateNsOff:], uint64(time.Now().UnixNano()))
	})
}

// PublishStatus sets the job status byte under the header's seq lock.
func (w *Writer) PublishStatus(status byte) {
	w.publish(headerSeqOff, func(buf []byte) {
		buf[headerStatusOff] = status
	})
}

// PublishEquity writes the full equity-results table: names is
// NUL-padded/truncated to NameWidth bytes each, matrices copied verbatim
// (spec.md §4.6). Only [0, len(names)) is written; the rest of the table
// is left as a stale, unread tail per spec.md §3's results_count
// invariant.
func (w *Writer) PublishEquity(names []string, records []Record) {
	n := len(names)
	if n > MaxResults {
		n = MaxResults
	}
	w.publish(HeaderSize+equitySeqOff, func(buf []byte) {
		base := HeaderSize
		binary.LittleEndian.PutUint32(buf[base+equityResultsCountOff:], uint32(n))
		for i := 0; i < n; i++ {
			putName(buf, base+nameOffset(i), names[i])
			putRecord(buf, base+recordOffset(i), records[i])
		}
	})
}

// Close marks the job terminal, unmaps the segment, and unlinks its
// backing shm file. Calling it again afterwards is a no-op.
func (w *Writer) Close(status byte) error {
	if w == nil || w.seg == nil {
		return nil
	}
	w.PublishStatus(status)
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.seg.close()
	w.seg = nil
	if err != nil {
		return err
	}
	return unlink(w.jobID)
}
