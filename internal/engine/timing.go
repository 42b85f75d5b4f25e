package engine

import (
	"sync/atomic"
	"time"
)

// SearchClock holds the single stop flag and optional wall-clock deadline
// that bound a search, implementing spec.md section 4.6 and the
// release/acquire ordering section 5 requires. Grounded on the teacher's
// SearchContext (blunext-chess/engine/search_time.go), renamed since this
// package's SearchContext (search.go) is the broader per-search state bundle
// spec.md section 9 describes, not just the timing half of it.
type SearchClock struct {
	stop     atomic.Bool
	deadline atomic.Int64 // unix millis; 0 means no deadline
	start    time.Time
}

// NewSearchClock starts a clock with no deadline set; call SetDeadline (or
// leave unset for infinite/depth-bounded searches) before the worker begins.
func NewSearchClock() *SearchClock {
	return &SearchClock{start: time.Now()}
}

// SetDeadline bounds the search to now+budget; zero budget means unbounded.
func (c *SearchClock) SetDeadline(budget time.Duration) {
	if budget <= 0 {
		c.deadline.Store(0)
		return
	}
	c.deadline.Store(time.Now().Add(budget).UnixMilli())
}

// Stop sets the cooperative abort flag; observed by the next halted() check
// on every recursive alpha-beta entry (spec.md section 4.6).
func (c *SearchClock) Stop() {
	c.stop.Store(true)
}

// Reset clears the stop flag and restarts the elapsed-time clock; called by
// the driver at the beginning of every search (spec.md section 4.6: "the
// driver clears it at the beginning of each search").
func (c *SearchClock) Reset() {
	c.stop.Store(false)
	c.deadline.Store(0)
	c.start = time.Now()
}

// Halted reports whether the search must abort: stop flag set, or the
// wall-clock deadline (if any) has passed.
func (c *SearchClock) Halted() bool {
	if c.stop.Load() {
		return true
	}
	deadline := c.deadline.Load()
	return deadline != 0 && time.Now().UnixMilli() >= deadline
}

// Elapsed returns time since the clock was started or last Reset.
func (c *SearchClock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// emergencyBuffer shaves a safety margin off any computed time allocation,
// matching the teacher's search_time.go constant of the same name.
const emergencyBuffer = 200 * time.Millisecond

// AllocateTime implements spec.md section 6's `go wtime/btime/winc/binc`
// movetime formula: clamp(side_time/40 + side_inc, 50ms, max(side_time/2 -
// 1000ms, 0)). When the upper bound falls below 50ms the 50ms floor wins, so
// the result is never zero. Grounded on blunext-chess/engine/search_time.go's
// AllocateTime.
func AllocateTime(sideTime, sideInc time.Duration) time.Duration {
	budget := sideTime/40 + sideInc
	lower := 50 * time.Millisecond
	upper := sideTime/2 - time.Second
	if upper < 0 {
		upper = 0
	}
	if budget > upper {
		budget = upper
	}
	if budget < lower {
		budget = lower
	}
	return budget
}
