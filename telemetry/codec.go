package telemetry

import (
	"encoding/binary"
	"math"
)

// putName writes name, NUL-padded and truncated to NameWidth bytes, per
// spec.md §4.6.
func putName(buf []byte, off int, name string) {
	slot := buf[off : off+NameWidth]
	for i := range slot {
		slot[i] = 0
	}
	copy(slot, name)
}

func getName(buf []byte, off int) string {
	slot := buf[off : off+NameWidth]
	n := 0
	for n < len(slot) && slot[n] != 0 {
		n++
	}
	return string(slot[:n])
}

func putRecord(buf []byte, off int, r Record) {
	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(r.Equity))
	binary.LittleEndian.PutUint32(buf[off+8:], r.Wins)
	binary.LittleEndian.PutUint32(buf[off+12:], r.Ties)
	binary.LittleEndian.PutUint32(buf[off+16:], r.Losses)
	binary.LittleEndian.PutUint32(buf[off+20:], r.Simulations)
	p := off + 24
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			binary.LittleEndian.PutUint32(buf[p:], r.WinMethodMatrix[i][j])
			p += 4
		}
	}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			binary.LittleEndian.PutUint32(buf[p:], r.LossMethodMatrix[i][j])
			p += 4
		}
	}
	// remaining 8 bytes are the spec's pad[2]; left zeroed.
}

func getRecord(buf []byte, off int) Record {
	var r Record
	r.Equity = math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
	r.Wins = binary.LittleEndian.Uint32(buf[off+8:])
	r.Ties = binary.LittleEndian.Uint32(buf[off+12:])
	r.Losses = binary.LittleEndian.Uint32(buf[off+16:])
	r.Simulations = binary.LittleEndian.Uint32(buf[off+20:])
	p := off + 24
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			r.WinMethodMatrix[i][j] = binary.LittleEndian.Uint32(buf[p:])
			p += 4
		}
	}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			r.LossMethodMatrix[i][j] = binary.LittleEndian.Uint32(buf[p:])
			p += 4
		}
	}
	return r
}
