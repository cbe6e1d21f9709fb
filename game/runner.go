package game

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/colony/components"
)

// Simulation is what a presentation host drives. Game runs on the caller's goroutine;
// Runner runs a Game on its own goroutine behind channels.
type Simulation interface {
	Options() Options
	SetOptions(Options)
	Put(Placement) bool
	Reset()
	Advance()
	Export() (Snapshot, bool)
	Inspect(components.Coord) (ElementInfo, bool)
	Close() error
}

var (
	_ Simulation = (*Game)(nil)
	_ Simulation = (*Runner)(nil)
)

// Command is a control message for the runner loop.
type Command uint8

const (
	CommandReset Command = iota
	CommandStop
)

type inspectRequest struct {
	at    components.Coord
	reply chan inspectReply
}

type inspectReply struct {
	info ElementInfo
	ok   bool
}

// Runner advances a Game on a dedicated goroutine. Everything crossing the boundary is a copy:
// options and placements flow in, snapshots flow out.
type Runner struct {
	game *Game

	// Control channels
	options    chan Options // Capacity 1, latest wins
	commands   chan Command
	placements chan Placement
	inspects   chan inspectRequest
	exports    chan Snapshot

	mu      sync.Mutex
	current Options // Last options handed to SetOptions

	// Presentation-side cache of the newest snapshot
	last    Snapshot
	hasLast bool

	started  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
}

// NewRunner wraps g. The game must not be used directly once Start has been called.
func NewRunner(g *Game, exportBuffer, placementBuffer int) *Runner {
	return &Runner{
		game:       g,
		options:    make(chan Options, 1),
		commands:   make(chan Command, 4),
		placements: make(chan Placement, max(placementBuffer, 1)),
		inspects:   make(chan inspectRequest),
		exports:    make(chan Snapshot, max(exportBuffer, 1)),
		current:    g.Options(),
		done:       make(chan struct{}),
	}
}

// Start launches the simulation goroutine. It ends on Stop or when ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	if r.started.CompareAndSwap(false, true) {
		go r.loop(ctx)
	}
}

// Done is closed when the simulation goroutine has exited.
func (r *Runner) Done() <-chan struct{} { return r.done }

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)
	slog.Info("runner started", "round", r.game.Round())
	defer func() { slog.Info("runner stopped", "round", r.game.Round()) }()

	for {
		if !r.drain(ctx) {
			return
		}
		r.game.Advance()
		if !r.publish(ctx) {
			return
		}
	}
}

// drain applies every pending message without blocking. It reports false when the loop must end.
func (r *Runner) drain(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	for {
		select {
		case cmd := <-r.commands:
			if !r.handle(cmd) {
				return false
			}
			continue
		default:
		}
		break
	}

	select {
	case o := <-r.options:
		r.game.SetOptions(o)
	default:
	}

	for {
		select {
		case p := <-r.placements:
			if !r.game.Put(p) {
				slog.Debug("placement dropped", "kind", p.Kind.String(), "at", p.At.String())
			}
			continue
		case req := <-r.inspects:
			r.serveInspect(req)
			continue
		default:
		}
		return true
	}
}

// publish hands one snapshot to the presentation side, serving commands while it waits.
func (r *Runner) publish(ctx context.Context) bool {
	snap := r.game.grid.Export()
	for {
		select {
		case r.exports <- snap:
			return true
		case <-ctx.Done():
			return false
		case cmd := <-r.commands:
			if !r.handle(cmd) {
				return false
			}
			snap = r.game.grid.Export()
		case req := <-r.inspects:
			r.serveInspect(req)
		}
	}
}

func (r *Runner) handle(cmd Command) bool {
	switch cmd {
	case CommandStop:
		return false
	case CommandReset:
		r.game.Reset()
	}
	return true
}

func (r *Runner) serveInspect(req inspectRequest) {
	info, ok := r.game.Inspect(req.at)
	req.reply <- inspectReply{info: info, ok: ok}
}

// Options returns the options most recently set through the runner.
func (r *Runner) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetOptions queues a full option replacement. Only the latest pending value is applied.
func (r *Runner) SetOptions(o Options) {
	o = o.Sanitize()
	r.mu.Lock()
	r.current = o
	r.mu.Unlock()

	select {
	case <-r.options:
	default:
	}
	select {
	case r.options <- o:
	default:
	}
}

// Put queues a placement. It reports false when the queue is full and the request was dropped.
func (r *Runner) Put(p Placement) bool {
	select {
	case r.placements <- p:
		return true
	default:
		return false
	}
}

// Reset asks the loop to reset the grid.
func (r *Runner) Reset() {
	if !r.started.Load() {
		r.game.Reset()
		return
	}
	r.send(CommandReset)
}

// Advance is a no-op: the runner advances on its own goroutine.
func (r *Runner) Advance() {}

// Export returns the newest published snapshot, or the previous one if nothing new arrived.
// It reports false until the first snapshot is published.
func (r *Runner) Export() (Snapshot, bool) {
	for {
		select {
		case snap := <-r.exports:
			r.last = snap
			r.hasLast = true
			continue
		default:
		}
		return r.last, r.hasLast
	}
}

// Inspect asks the loop to describe a cell and waits for the answer.
func (r *Runner) Inspect(c components.Coord) (ElementInfo, bool) {
	if !r.started.Load() {
		return ElementInfo{}, false
	}
	req := inspectRequest{at: c, reply: make(chan inspectReply, 1)}
	select {
	case r.inspects <- req:
	case <-r.done:
		return ElementInfo{}, false
	}
	select {
	case rep := <-req.reply:
		return rep.info, rep.ok
	case <-r.done:
		return ElementInfo{}, false
	}
}

// Stop ends the loop and waits for it to exit. Safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		if !r.started.Load() {
			return
		}
		r.send(CommandStop)
		<-r.done
	})
}

// Close stops the loop and closes the game's telemetry output.
func (r *Runner) Close() error {
	r.Stop()
	return r.game.Close()
}

func (r *Runner) send(cmd Command) {
	select {
	case r.commands <- cmd:
	case <-r.done:
	}
}
