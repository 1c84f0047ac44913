// Package registry implements the process-wide job lifecycle registry
// (spec.md §4.8): a map from job id to JobState, guarded per-state so
// concurrent readers and the driver goroutine never observe a torn copy.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/domino14/pokerequity/scheduler"
)

// Status is one of the four job states spec.md §3 defines.
type Status int

const (
	Pending Status = iota
	Running
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotFound is returned by Get/Start/UpdateProgress/Complete/Fail for
// an unknown job id (spec.md §7, NotFound kind).
var ErrNotFound = errors.New("registry: job not found")

// errStartNotPending guards Start's idempotence: it only transitions
// from Pending.
var errStartNotPending = errors.New("registry: job is not pending")

// JobState is one job's lifecycle record (spec.md §3). Equity results
// are kept behind EquityResult rather than a HandType/matrix pair the
// registry itself would need to understand.
type JobState struct {
	mu sync.Mutex

	ID           string
	status       Status
	progress     float64
	createdAt    time.Time
	completedAt  time.Time
	err          error
	finalResults map[string]scheduler.EquityResult
	liveResults  map[string]float64 // name -> equity, per spec.md §3's "equity_only"
}

// Snapshot is a consistent, lock-free-to-read copy of a JobState.
type Snapshot struct {
	ID           string
	Status       Status
	Progress     float64
	CreatedAt    time.Time
	CompletedAt  time.Time
	Err          error
	FinalResults map[string]scheduler.EquityResult
	LiveResults  map[string]float64
}

// Registry is the process-wide job id -> JobState map (spec.md §4.8).
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*JobState
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{jobs: map[string]*JobState{}}
}

// Create allocates a new job in the Pending state and returns its id.
func (r *Registry) Create() string {
	id := uuid.New().String()
	js := &JobState{
		ID:        id,
		status:    Pending,
		createdAt: time.Now(),
	}
	r.mu.Lock()
	r.jobs[id] = js
	r.mu.Unlock()
	return id
}

func (r *Registry) get(id string) (*JobState, error) {
	r.mu.Lock()
	js, ok := r.jobs[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return js, nil
}

// Start transitions a job from Pending to Running. It is idempotent only
// in the sense that calling it again on an already-Running job is a
// harmless error (errStartNotPending), never a double transition
// (spec.md §4.8: "Start is idempotent from PENDING only").
func (r *Registry) Start(id string) error {
	js, err := r.get(id)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.status != Pending {
		return errStartNotPending
	}
	js.status = Running
	return nil
}

// UpdateProgress records progress and the current live (equity-only)
// results. progress must be monotone non-decreasing (spec.md §5, §8
// property 8); a caller passing a smaller value is clamped up to the
// previous value rather than rejected, since out-of-order progress
// callbacks are a driver bug, not a client error.
func (r *Registry) UpdateProgress(id string, progress float64, live map[string]float64) error {
	js, err := r.get(id)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if progress > js.progress {
		js.progress = progress
	}
	js.liveResults = live
	return nil
}

// Complete transitions a job to Completed with its final results.
// completedAt is set exactly once: a second call is a no-op.
func (r *Registry) Complete(id string, final map[string]scheduler.EquityResult) error {
	js, err := r.get(id)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.status == Completed || js.status == Failed {
		return nil
	}
	js.status = Completed
	js.progress = 1.0
	js.finalResults = final
	js.completedAt = time.Now()
	return nil
}

// Fail transitions a job to Failed, capturing the error (spec.md §7,
// Fatal kind). completedAt is set exactly once.
func (r *Registry) Fail(id string, cause error) error {
	js, err := r.get(id)
	if err != nil {
		return err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.status == Completed || js.status == Failed {
		return nil
	}
	js.status = Failed
	js.err = cause
	js.completedAt = time.Now()
	return nil
}

// Get returns a consistent snapshot of a job's state, taken while
// holding the job's own lock for the duration of the copy (spec.md
// §4.8: "Readers observe a consistent snapshot by holding the state's
// lock for the duration of a copy").
func (r *Registry) Get(id string) (Snapshot, error) {
	js, err := r.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	return Snapshot{
		ID:           js.ID,
		Status:       js.status,
		Progress:     js.progress,
		CreatedAt:    js.createdAt,
		CompletedAt:  js.completedAt,
		Err:          js.err,
		FinalResults: js.finalResults,
		LiveResults:  js.liveResults,
	}, nil
}
