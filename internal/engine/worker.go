package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"forge/board"
)

// Job describes one `go` command's worth of work, submitted to the Worker's
// single search goroutine.
type Job struct {
	Position *board.Position
	Limits   SearchLimits
	Done     func(SearchResult)
}

// Worker owns the single long-lived search goroutine spec.md section 5
// requires: at most one position is ever under search at a time, and a new
// `position`/`go` waits for the previous search to observe Stop and return
// before starting the next one. Grounded on blunext-chess/uci/uci.go's
// command-dispatch loop, restructured around golang.org/x/sync/errgroup,
// which runs the search goroutine and lets Close join it (the UCI input loop
// is not part of the group; the goroutine returns no errors in practice,
// since cancellation is signaled via SearchClock, not error returns).
type Worker struct {
	ctx *SearchContext

	mu      sync.Mutex
	running bool
	jobs    chan Job
	group   *errgroup.Group
	gctx    context.Context
}

// NewWorker creates a Worker backed by its own SearchContext (TT, heuristics,
// clock, logger). The context object is reused for every job, but runJob
// resets it first, so TT and heuristic contents live for one search only,
// per spec.md section 3's Lifecycle note.
func NewWorker(logger *Logger) *Worker {
	g, gctx := errgroup.WithContext(context.Background())
	w := &Worker{
		ctx:   NewSearchContext(logger),
		jobs:  make(chan Job, 1),
		group: g,
		gctx:  gctx,
	}
	g.Go(w.loop)
	return w
}

// loop is the single dedicated search goroutine; it drains jobs one at a
// time, running each to completion (or cancellation) before taking the next.
func (w *Worker) loop() error {
	for {
		select {
		case <-w.gctx.Done():
			return nil
		case job, ok := <-w.jobs:
			if !ok {
				return nil
			}
			w.runJob(job)
		}
	}
}

func (w *Worker) runJob(job Job) {
	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	w.ctx.Reset()
	if job.Limits.MoveTime > 0 {
		w.ctx.Clock.SetDeadline(job.Limits.MoveTime)
	}

	result := w.ctx.Search(job.Position, job.Limits)

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	if job.Done != nil {
		job.Done(result)
	}
}

// Submit enqueues a search job. It blocks only long enough to hand the job
// to the worker's buffered channel; callers needing the result register a
// Done callback. Submit does not itself wait for a prior search to stop: a
// job submitted while another search is running waits in the queue until
// that search returns. The UCI front-end's `go` handler submits without
// calling Stop first.
func (w *Worker) Submit(job Job) {
	w.jobs <- job
}

// Stop signals the in-flight search (if any) to halt at its next cancellation
// check point and blocks briefly until the worker reports idle.
func (w *Worker) Stop() {
	w.ctx.Clock.Stop()
	for {
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if !running {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// IsRunning reports whether a search is currently in flight.
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Close stops any in-flight search and shuts down the worker goroutine,
// waiting for it to exit via the errgroup.
func (w *Worker) Close() {
	w.Stop()
	close(w.jobs)
	_ = w.group.Wait()
}
