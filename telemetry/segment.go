package telemetry

import (
	"fmt"

	"github.com/pbnjay/memory"
	"golang.org/x/sys/unix"
)

// shmPath returns the POSIX shared-memory backing path for a job id
// (spec.md §6: name "/poker_telemetry_<job_id>", which on Linux appears
// under /dev/shm).
func shmPath(jobID string) string {
	return "/dev/shm/poker_telemetry_" + jobID
}

// segment is the mmap'd region shared by Writer and Reader.
type segment struct {
	buf []byte
	fd  int
}

// createSegment creates (O_CREAT|O_EXCL) and maps a fresh segment for
// jobID, sized exactly SegmentSize (spec.md §6). Returns a Resource-kind
// error (spec.md §7) if available memory looks too tight to safely mmap
// a region this size alongside everything else already mapped, the
// generalisation of macondo's memory.TotalMemory() sizing check.
func createSegment(jobID string) (*segment, error) {
	if avail := memory.FreeMemory(); avail != 0 && avail < uint64(SegmentSize)*4 {
		return nil, fmt.Errorf("telemetry: insufficient free memory (%d bytes) to map a %d-byte segment", avail, SegmentSize)
	}
	path := shmPath(jobID)
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create %s: %w", path, err)
	}
	if err := unix.Ftruncate(fd, int64(SegmentSize)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("telemetry: truncate %s: %w", path, err)
	}
	buf, err := unix.Mmap(fd, 0, SegmentSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("telemetry: mmap %s: %w", path, err)
	}
	return &segment{buf: buf, fd: fd}, nil
}

// openSegment maps an existing segment read-only, for a reader process.
func openSegment(jobID string) (*segment, error) {
	path := shmPath(jobID)
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	buf, err := unix.Mmap(fd, 0, SegmentSize, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("telemetry: mmap %s: %w", path, err)
	}
	return &segment{buf: buf, fd: fd}, nil
}

func (s *segment) close() error {
	err := unix.Munmap(s.buf)
	if cerr := unix.Close(s.fd); err == nil {
		err = cerr
	}
	return err
}

// unlink removes the backing shm file so a late-starting reader fails
// fast instead of attaching to a stale segment (spec.md §3 lifecycle).
func unlink(jobID string) error {
	return unix.Unlink(shmPath(jobID))
}
