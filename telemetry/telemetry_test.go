package telemetry

import (
	"context"
	"testing"

	"github.com/domino14/pokerequity/scheduler"
)

func testJobID(t *testing.T) string {
	t.Helper()
	return "test_" + t.Name()
}

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	jobID := testJobID(t)
	w, err := New(context.Background(), jobID)
	if err != nil {
		t.Skipf("shared memory unavailable in this environment: %v", err)
	}
	t.Cleanup(func() { w.Close(StatusCompleted) })
	return w
}

func TestWriterReaderRoundTripEquity(t *testing.T) {
	w := newTestWriter(t)
	r, err := Open(testJobID(t))
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	defer r.Close()

	names := []string{"AA", "72o", "AKs"}
	records := []Record{
		{Equity: 0.852, Wins: 85200, Ties: 0, Losses: 14800, Simulations: 100000},
		{Equity: 0.122, Wins: 10000, Ties: 2200, Losses: 87800, Simulations: 100000},
		{Equity: 0.667, Wins: 60000, Ties: 13400, Losses: 26600, Simulations: 100000},
	}
	records[0].WinMethodMatrix[1][0] = 85200
	w.PublishEquity(names, records)

	snap, err := r.ReadEquity()
	if err != nil {
		t.Fatalf("read equity: %v", err)
	}
	if len(snap.Names) != len(names) {
		t.Fatalf("got %d names, want %d", len(snap.Names), len(names))
	}
	for i, n := range names {
		if snap.Names[i] != n {
			t.Errorf("name %d: got %q, want %q", i, snap.Names[i], n)
		}
	}
	if snap.Records[0] != records[0] {
		t.Errorf("record 0 mismatch: got %+v, want %+v", snap.Records[0], records[0])
	}
}

func TestWriterReaderRoundTripHeader(t *testing.T) {
	w := newTestWriter(t)
	r, err := Open(testJobID(t))
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	defer r.Close()

	w.PublishHands(42)
	hdr, err := r.ReadHeader()
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if hdr.HandsProcessed != 42 {
		t.Errorf("hands_processed = %d, want 42", hdr.HandsProcessed)
	}
	if hdr.Status != StatusRunning {
		t.Errorf("status = %d, want StatusRunning", hdr.Status)
	}

	w.Close(StatusCompleted)
	// Close unlinks the backing file; re-reading the already-mapped
	// memory should still see the final status since the mapping itself
	// stays valid until munmap.
	hdr2, err := r.ReadHeader()
	if err != nil {
		t.Fatalf("read header after close: %v", err)
	}
	if hdr2.Status != StatusCompleted {
		t.Errorf("status after close = %d, want StatusCompleted", hdr2.Status)
	}
}

func TestNamesAndRecordsSortsByName(t *testing.T) {
	results := map[string]scheduler.EquityResult{
		"72o": {Simulations: 10, Wins: 1, Losses: 9, Name: "72o"},
		"AA":  {Simulations: 10, Wins: 9, Losses: 1, Name: "AA"},
	}
	names, records := NamesAndRecords(results)
	if names[0] != "72o" || names[1] != "AA" {
		t.Errorf("expected sorted names, got %v", names)
	}
	if records[1].Wins != 9 {
		t.Errorf("AA record wins = %d, want 9", records[1].Wins)
	}
}

func TestPutNameTruncatesToEightBytes(t *testing.T) {
	buf := make([]byte, NameWidth)
	putName(buf, 0, "averylongname")
	if len(buf) != NameWidth {
		t.Fatalf("buffer grew past NameWidth")
	}
	got := getName(buf, 0)
	if len(got) != NameWidth {
		t.Errorf("expected truncated name to fill all %d bytes, got %q (%d bytes)", NameWidth, got, len(got))
	}
}

func TestPutNamePadsWithNUL(t *testing.T) {
	buf := make([]byte, NameWidth)
	putName(buf, 0, "AA")
	got := getName(buf, 0)
	if got != "AA" {
		t.Errorf("got %q, want %q", got, "AA")
	}
	for i := 2; i < NameWidth; i++ {
		if buf[i] != 0 {
			t.Errorf("byte %d not NUL-padded: %x", i, buf[i])
		}
	}
}
