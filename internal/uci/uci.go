// Package uci implements the engine's UCI protocol front-end: the
// stdin/stdout command loop spec.md section 6 names (uci, isready,
// ucinewgame, position, go, stop, setoption, quit). Grounded on the
// teacher's uci.Start bufio.Scanner loop (blunext-chess/uci/uci.go) and
// engine/play.go's move parsing, widened from the teacher's toy echo loop
// into the real protocol subset the spec requires, and wired to the
// internal/engine search worker instead of a single-threaded blocking
// SearchWithBook call.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"forge/board"
	"forge/internal/config"
	"forge/internal/engine"
)

const (
	engineName   = "forge"
	engineAuthor = "the forge contributors"
)

// Front is a single UCI session: one input/output stream pair, one board
// position, one search worker.
type Front struct {
	in     *bufio.Scanner
	out    io.Writer
	pos    *board.Position
	worker *engine.Worker
	logger *engine.Logger
	cfg    *config.Config
}

// New creates a UCI front-end reading commands from in and writing protocol
// responses to out. logger may be nil to disable structured search logging.
func New(in io.Reader, out io.Writer, logger *engine.Logger, cfg *config.Config) *Front {
	return &Front{
		in:     bufio.NewScanner(in),
		out:    out,
		pos:    board.StartPosition(),
		worker: engine.NewWorker(logger),
		logger: logger,
		cfg:    cfg,
	}
}

// Run reads commands until `quit` or end of input, blocking the calling
// goroutine. The search itself always runs on the Worker's dedicated
// goroutine (spec.md section 5), so `stop` and a following `position`
// remain responsive even mid-search.
func (f *Front) Run() {
	for f.in.Scan() {
		line := strings.TrimSpace(f.in.Text())
		if line == "" {
			continue
		}
		if f.dispatch(line) {
			return
		}
	}
}

func (f *Front) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		f.respond("id name " + engineName)
		f.respond("id author " + engineAuthor)
		f.respond("option name Hash type spin default 64 min 1 max 4096")
		f.respond("option name Threads type spin default 1 min 1 max 1")
		f.respond("uciok")
	case "isready":
		f.respond("readyok")
	case "ucinewgame":
		f.pos = board.StartPosition()
	case "position":
		f.handlePosition(args)
	case "go":
		f.handleGo(args)
	case "stop":
		f.worker.Stop()
	case "setoption":
		f.handleSetOption(args)
	case "quit":
		f.worker.Close()
		return true
	default:
		// Unknown commands are ignored, per UCI convention.
	}
	return false
}

func (f *Front) respond(s string) {
	fmt.Fprintln(f.out, s)
}

// handlePosition implements `position [fen <FEN> | startpos] [moves ...]`.
func (f *Front) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	rest := args

	switch args[0] {
	case "startpos":
		pos = board.StartPosition()
		rest = args[1:]
	case "fen":
		rest = args[1:]
		end := len(rest)
		for i, a := range rest {
			if a == "moves" {
				end = i
				break
			}
		}
		fenStr := strings.Join(rest[:end], " ")
		parsed, err := board.ParseFEN(fenStr)
		if err != nil {
			return
		}
		pos = parsed
		rest = rest[end:]
	default:
		return
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, uciMove := range rest[1:] {
			m, ok := findMove(pos, uciMove)
			if !ok {
				break
			}
			pos.MakeMove(m)
		}
	}

	f.pos = pos
}

func findMove(pos *board.Position, uciMove string) (board.Move, bool) {
	uciMove = strings.ToLower(strings.TrimSpace(uciMove))
	for _, m := range pos.LegalMoves() {
		if m.ToUCI() == uciMove {
			return m, true
		}
	}
	return board.Move{}, false
}

// handleGo implements `go [depth N|movetime N|wtime N btime N winc N binc N|infinite]`.
func (f *Front) handleGo(args []string) {
	limits := engine.SearchLimits{}
	var wtime, btime, winc, binc time.Duration

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					limits.MaxDepth = d
				}
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				if ms, err := strconv.Atoi(args[i+1]); err == nil {
					limits.MoveTime = time.Duration(ms) * time.Millisecond
				}
				i++
			}
		case "wtime":
			if i+1 < len(args) {
				wtime = parseMillis(args[i+1])
				i++
			}
		case "btime":
			if i+1 < len(args) {
				btime = parseMillis(args[i+1])
				i++
			}
		case "winc":
			if i+1 < len(args) {
				winc = parseMillis(args[i+1])
				i++
			}
		case "binc":
			if i+1 < len(args) {
				binc = parseMillis(args[i+1])
				i++
			}
		case "infinite":
			limits.Infinite = true
		}
	}

	if limits.MoveTime == 0 && !limits.Infinite {
		sideTime, sideInc := wtime, winc
		if !f.pos.WhiteToMove {
			sideTime, sideInc = btime, binc
		}
		if sideTime > 0 {
			limits.MoveTime = engine.AllocateTime(sideTime, sideInc)
		}
	}

	pos := f.pos
	f.worker.Submit(engine.Job{
		Position: pos,
		Limits:   limits,
		Done: func(result engine.SearchResult) {
			if result.BestMove.IsNull() {
				f.respond("bestmove 0000")
				return
			}
			f.respond("bestmove " + result.BestMove.ToUCI())
		},
	})
}

func parseMillis(s string) time.Duration {
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// handleSetOption implements the minimal `setoption name <id> value <x>`
// surface spec.md section 6 names: Hash (table capacity is fixed by
// MaxPTableSize in this build, so this is accepted but a no-op) and Threads
// (always 1, Lazy SMP being an explicit Non-goal).
func (f *Front) handleSetOption(args []string) {
	// Parsed for protocol completeness; neither option currently changes
	// engine behavior (see doc comment above).
	_ = args
}
