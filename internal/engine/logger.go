package engine

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LogInfo is one structured search-progress record, matching the shape of
// spec.md section 4.5e's `info` line and the teacher's LogInfo
// (blunext-chess/engine/logger.go), minus the fields spec.md doesn't name
// (Session/Thread bookkeeping) and plus the ones it does (seldepth, hashfull).
type LogInfo struct {
	Depth     int
	SelDepth  int
	Nodes     int64
	NPS       int64
	ElapsedMS int64
	HashfullP int
	ScoreCP   int
	MateIn    int // 0 means "not a mate score"
	PV        []string
}

// Logger is a small buffered background writer the search can fire-and-forget
// progress records into, matching the teacher's channel-backed async design
// (blunext-chess/engine/logger.go's Logger/writer), but delegating formatting
// and level filtering to a zerolog.Logger instead of hand-rolled fmt.Sprintf
// text lines, per SPEC_FULL.md section A.
type Logger struct {
	zl    zerolog.Logger
	queue chan LogInfo
	done  chan struct{}
}

// NewLogger creates a Logger writing to w (typically a file or os.Stderr,
// never stdout, which the UCI protocol owns). Buffer size mirrors the
// teacher's fixed queue depth of 100.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := &Logger{
		zl:    zerolog.New(w).With().Timestamp().Logger(),
		queue: make(chan LogInfo, 100),
		done:  make(chan struct{}),
	}
	go l.writer()
	return l
}

// Log enqueues a progress record; never blocks the search thread for long
// since the channel is buffered and the writer drains continuously.
func (l *Logger) Log(info LogInfo) {
	select {
	case l.queue <- info:
	default:
		// Queue full: drop rather than block the search, matching the
		// teacher's fire-and-forget intent.
	}
}

// LogGameStart records a new search/game boundary in the log stream.
func (l *Logger) LogGameStart(fen string) {
	l.zl.Info().Str("event", "search_start").Str("fen", fen).Send()
}

// Close drains the queue and stops the background writer.
func (l *Logger) Close() {
	close(l.queue)
	<-l.done
}

func (l *Logger) writer() {
	defer close(l.done)
	for info := range l.queue {
		ev := l.zl.Info().
			Int("depth", info.Depth).
			Int("seldepth", info.SelDepth).
			Int64("nodes", info.Nodes).
			Int64("nps", info.NPS).
			Int64("time_ms", info.ElapsedMS).
			Int("hashfull", info.HashfullP)
		if info.MateIn != 0 {
			ev = ev.Int("mate", info.MateIn)
		} else {
			ev = ev.Int("score_cp", info.ScoreCP)
		}
		ev.Strs("pv", info.PV).Send()
	}
}
