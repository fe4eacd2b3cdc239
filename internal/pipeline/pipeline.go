// Package pipeline runs chunk generation and meshing on a worker pool while
// keeping GPU upload on the caller's own goroutine (spec §4.6: "generation
// and meshing are data-parallel; upload is not — it must happen on the
// thread that owns the GL context").
//
// Grounded on
// _examples/other_examples/4f0eb9db_nicolasmd87-gopher3D__internal-loader-voxel_core.go's
// GenerateVoxelsParallel (pond.NewPool + pool.Submit + sync.WaitGroup
// fan-out), reshaped from a one-shot wait-for-everything call into a
// push/drain queue: Push never blocks the caller, and Drain is polled once
// per frame from the main thread.
package pipeline

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
)

// OpKind tags what a Job asks the pipeline to do.
type OpKind int

const (
	OpGenerate OpKind = iota
	OpMesh
)

// Job is one unit of pipeline work. Payload is op-specific: the caller
// knows what it submitted and type-asserts it back out of the matching
// Result. Batch ties a Job back to the PushBatch call that submitted it
// (empty for a bare Push), letting Stats report that batch's wall-clock
// span once every job in it has completed.
type Job struct {
	Kind    OpKind
	Coord   any
	Payload any
	Batch   string
}

// Result is what a Job produces, delivered back through Drain. Err is set
// if the work function returned an error; Payload is nil in that case.
type Result struct {
	Kind    OpKind
	Coord   any
	Payload any
	Err     error
	Batch   string
}

// Work is the function a Job executes on a worker goroutine.
type Work func(Job) (any, error)

// Pipeline fans jobs out across a pond worker pool and collects results
// into a drainable queue.
type Pipeline struct {
	pool  pond.Pool
	work  Work
	stats *Stats

	pending int64

	mu      sync.Mutex
	results []Result

	batchMu        sync.Mutex
	batchStart     map[string]time.Time
	batchRemaining map[string]int
}

// New creates a Pipeline with the given worker count (0 or less uses
// runtime.NumCPU()) and work function.
func New(workers int, work Work) *Pipeline {
	var pool pond.Pool
	if workers > 0 {
		pool = pond.NewPool(workers)
	} else {
		pool = pond.NewPool(runtime.NumCPU())
	}
	return &Pipeline{
		pool:           pool,
		work:           work,
		stats:          NewStats(),
		batchStart:     make(map[string]time.Time),
		batchRemaining: make(map[string]int),
	}
}

// Push submits a job to the pool. It returns immediately; the job's result
// becomes visible on a future Drain call.
func (p *Pipeline) Push(j Job) {
	p.submit(j)
}

// PushBatch submits every job in jobs under one freshly minted BatchID,
// returning the id. Once every job in the batch has completed, Stats'
// Snapshot reflects the batch's wall-clock duration (queued to last
// result), matching spec §4.6's per-batch timing framing — a tick's worth
// of loads and re-meshes is one batch, even though each chunk still runs as
// its own independent job.
func (p *Pipeline) PushBatch(jobs []Job) string {
	id := BatchID()
	if len(jobs) == 0 {
		return id
	}
	p.batchMu.Lock()
	p.batchStart[id] = time.Now()
	p.batchRemaining[id] = len(jobs)
	p.batchMu.Unlock()

	for _, j := range jobs {
		j.Batch = id
		p.submit(j)
	}
	return id
}

func (p *Pipeline) submit(j Job) {
	atomic.AddInt64(&p.pending, 1)
	p.pool.Submit(func() {
		defer atomic.AddInt64(&p.pending, -1)

		start := p.stats.begin()
		payload, err := p.work(j)
		p.stats.end(j.Kind, start)

		r := Result{Kind: j.Kind, Coord: j.Coord, Payload: payload, Err: err, Batch: j.Batch}
		p.mu.Lock()
		p.results = append(p.results, r)
		p.mu.Unlock()

		if j.Batch != "" {
			p.completeBatchJob(j.Batch)
		}
	})
}

// completeBatchJob decrements the batch's remaining-job count; once it
// reaches zero the batch is done and its wall-clock span is recorded into
// Stats.
func (p *Pipeline) completeBatchJob(id string) {
	p.batchMu.Lock()
	defer p.batchMu.Unlock()

	n, ok := p.batchRemaining[id]
	if !ok {
		return
	}
	n--
	if n > 0 {
		p.batchRemaining[id] = n
		return
	}
	start := p.batchStart[id]
	delete(p.batchRemaining, id)
	delete(p.batchStart, id)
	p.stats.endBatch(time.Since(start))
}

// Drain removes and returns every result completed since the last Drain
// call. Intended to be polled once per frame from the thread that owns the
// GL context, since upload of the returned mesh data must happen there.
func (p *Pipeline) Drain() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return nil
	}
	out := p.results
	p.results = nil
	return out
}

// Pending returns the number of jobs submitted but not yet completed.
func (p *Pipeline) Pending() int {
	return int(atomic.LoadInt64(&p.pending))
}

// Stop waits for in-flight jobs to finish and shuts the pool down. Call
// once, on shutdown.
func (p *Pipeline) Stop() {
	p.pool.StopAndWait()
}

// StatsSnapshot returns the pipeline's current timing statistics.
func (p *Pipeline) StatsSnapshot() Snapshot {
	return p.stats.Snapshot()
}
