package telemetry

import (
	"encoding/binary"
	"errors"
	"sync/atomic"
	"time"
	"unsafe"

	retry "github.com/avast/retry-go/v4"
)

// MaxRetries bounds the seqlock reader's spin, per spec.md §4.7 step 5
// ("e.g. 1000") and §7's SeqlockHang error kind.
const MaxRetries = 1000

// ErrSeqlockHang is returned when the retry budget is exhausted while
// seq never settles on an even value (spec.md §7: SeqlockHang, "reader
// fatal; writer is presumed dead").
var ErrSeqlockHang = errors.New("telemetry: seqlock reader exceeded retry budget")

// Header is a decoded snapshot of the header sub-record.
type Header struct {
	JobStartNs     uint64
	HandsProcessed uint64
	LastUpdateNs   uint64
	Status         byte
}

// EquitySnapshot is a decoded snapshot of the equity-results table.
type EquitySnapshot struct {
	Names   []string
	Records []Record
}

// Reader maps an existing job's segment read-only and performs
// torn-free reads against it via the seqlock protocol (spec.md §4.7).
type Reader struct {
	seg *segment
}

// Open maps jobID's existing segment for reading.
func Open(jobID string) (*Reader, error) {
	seg, err := openSegment(jobID)
	if err != nil {
		return nil, err
	}
	return &Reader{seg: seg}, nil
}

// Close unmaps the segment. It does not unlink the backing file: per
// spec.md §3's lifecycle, only the writer's Close does that.
func (r *Reader) Close() error {
	return r.seg.close()
}

func (r *Reader) seqPtr(off int) *uint32 {
	return (*uint32)(unsafe.Pointer(&r.seg.buf[off]))
}

// readLocked runs the read/copy/reread seqlock protocol described in
// spec.md §4.7 against the seq field at seqOff, bounded by MaxRetries.
func readLocked[T any](seqOff int, buf []byte, decode func([]byte) T) (T, error) {
	seq := (*uint32)(unsafe.Pointer(&buf[seqOff]))
	var zero T
	for attempt := 0; attempt < MaxRetries; attempt++ {
		s1 := atomic.LoadUint32(seq)
		if s1%2 != 0 {
			time.Sleep(time.Microsecond)
			continue
		}
		val := decode(buf)
		s2 := atomic.LoadUint32(seq)
		if s1 == s2 {
			return val, nil
		}
	}
	return zero, ErrSeqlockHang
}

// ReadHeader performs a torn-free read of the header sub-record.
func (r *Reader) ReadHeader() (Header, error) {
	return readLocked(headerSeqOff, r.seg.buf, func(buf []byte) Header {
		return Header{
			JobStartNs:     binary.LittleEndian.Uint64(buf[headerJobStartNsOff:]),
			HandsProcessed: binary.LittleEndian.Uint64(buf[headerHandsProcessedOff:]),
			LastUpdateNs:   binary.LittleEndian.Uint64(buf[headerLastUpdateNsOff:]),
			Status:         buf[headerStatusOff],
		}
	})
}

// ReadEquity performs a torn-free read of the equity-results table.
func (r *Reader) ReadEquity() (EquitySnapshot, error) {
	return readLocked(HeaderSize+equitySeqOff, r.seg.buf, func(buf []byte) EquitySnapshot {
		base := HeaderSize
		count := int(binary.LittleEndian.Uint32(buf[base+equityResultsCountOff:]))
		if count > MaxResults {
			count = MaxResults
		}
		names := make([]string, count)
		records := make([]Record, count)
		for i := 0; i < count; i++ {
			names[i] = getName(buf, base+nameOffset(i))
			records[i] = getRecord(buf, base+recordOffset(i))
		}
		return EquitySnapshot{Names: names, Records: records}
	})
}

// ReadHeaderWithRetry wraps ReadHeader with avast/retry-go's backoff
// policy instead of the tight micro-sleep spin readLocked already does
// internally — useful for callers polling a reader process across a
// process boundary where the writer itself may be momentarily unmapped
// (e.g. between job creation and the writer's first publish).
func (r *Reader) ReadHeaderWithRetry(attempts uint) (Header, error) {
	return retry.DoWithData(
		r.ReadHeader,
		retry.Attempts(attempts),
		retry.Delay(time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
