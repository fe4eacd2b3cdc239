package pipeline

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a point-in-time read of the pipeline's running timing
// averages, one entry per OpKind, plus the running average wall-clock span
// of a completed PushBatch (queued to last result).
type Snapshot struct {
	GenerateAvg time.Duration
	GenerateN   int64
	MeshAvg     time.Duration
	MeshN       int64
	BatchAvg    time.Duration
	BatchN      int64
}

// Stats accumulates running averages of job duration per OpKind using
// atomics only, so workers never contend on a mutex just to report timing.
type Stats struct {
	generateTotalNanos int64
	generateCount      int64
	meshTotalNanos      int64
	meshCount           int64
	batchTotalNanos     int64
	batchCount          int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) begin() time.Time {
	return time.Now()
}

func (s *Stats) end(kind OpKind, start time.Time) {
	elapsed := time.Since(start).Nanoseconds()
	switch kind {
	case OpGenerate:
		atomic.AddInt64(&s.generateTotalNanos, elapsed)
		atomic.AddInt64(&s.generateCount, 1)
	case OpMesh:
		atomic.AddInt64(&s.meshTotalNanos, elapsed)
		atomic.AddInt64(&s.meshCount, 1)
	}
}

// endBatch records one completed PushBatch's wall-clock duration (the span
// from submission to its last job's completion).
func (s *Stats) endBatch(elapsed time.Duration) {
	atomic.AddInt64(&s.batchTotalNanos, elapsed.Nanoseconds())
	atomic.AddInt64(&s.batchCount, 1)
}

// Snapshot reads the current running averages.
func (s *Stats) Snapshot() Snapshot {
	genN := atomic.LoadInt64(&s.generateCount)
	genTotal := atomic.LoadInt64(&s.generateTotalNanos)
	meshN := atomic.LoadInt64(&s.meshCount)
	meshTotal := atomic.LoadInt64(&s.meshTotalNanos)
	batchN := atomic.LoadInt64(&s.batchCount)
	batchTotal := atomic.LoadInt64(&s.batchTotalNanos)

	snap := Snapshot{GenerateN: genN, MeshN: meshN, BatchN: batchN}
	if genN > 0 {
		snap.GenerateAvg = time.Duration(genTotal / genN)
	}
	if meshN > 0 {
		snap.MeshAvg = time.Duration(meshTotal / meshN)
	}
	if batchN > 0 {
		snap.BatchAvg = time.Duration(batchTotal / batchN)
	}
	return snap
}

// BatchID mints an id for a group of jobs submitted together via
// PushBatch (e.g. every chunk a ring loader's Update asked to load or
// re-mesh this tick), so Stats can correlate a batch's wall-clock duration
// back to the tick that requested it without a shared counter across
// goroutines.
func BatchID() string {
	return uuid.NewString()
}
