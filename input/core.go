package input

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phoenix-tui/termcore/input/keyseq"
	"github.com/phoenix-tui/termcore/internal/obs"
)

// SizeFunc reports the current terminal size; the dispatcher calls it
// once per SIGWINCH notification.
type SizeFunc func() (rows, cols int, err error)

// Core is the async input core. One Core multiplexes a single raw byte
// stream (normally stdin) across any number of subscribers. Construct
// with NewCore and drive it with Run; Global lazily owns the
// process-wide instance over the real stdin, matching spec.md §4.6's
// GLOBAL_INPUT_CORE LazyLock.
type Core struct {
	mu         sync.Mutex
	subs       map[uuid.UUID]chan Event
	generation uint64

	parser     *keyseq.Parser
	escTimeout time.Duration

	runOnce sync.Once
}

// NewCore builds a Core. escTimeout is the bare-ESC resolution deadline
// (spec.md §4.7, default config.Default().EscTimeout); maxPasteBytes
// bounds a bracketed-paste payload.
func NewCore(escTimeout time.Duration, maxPasteBytes int) *Core {
	return &Core{
		subs:       make(map[uuid.UUID]chan Event),
		parser:     keyseq.New(maxPasteBytes),
		escTimeout: escTimeout,
	}
}

// Subscribe registers a new listener and returns its event channel and a
// cancel function. Per spec.md §4.6, dropping (cancelling) is how a
// subscriber unregisters; events already queued for it are discarded.
// Subscriber identity is a uuid.UUID rather than a counter so log lines
// from concurrent subscribers (see internal/obs) never collide across
// Core instances.
func (c *Core) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	id := uuid.New()
	ch := make(chan Event, 256)
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if existing, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(existing)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Generation returns the dispatcher's generation id. It never changes
// across a subscriber drop/resubscribe race (spec.md §8 scenario 6)
// because, by design, Run's dispatcher loop is launched exactly once per
// Core and is never torn down when the subscriber count reaches zero —
// the simplest implementation that satisfies the documented race
// without a receiver-count-driven shutdown/relaunch dance.
func (c *Core) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Core) publish(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			obs.Component("input").Warn("subscriber channel full; dropping event")
		}
	}
}

// Run starts the stdin-reader loop and the poller/dispatcher loop and
// blocks until r returns an error or io.EOF, or stop is closed. It is
// meant to be called once, from its own goroutine, over the process's
// real stdin; Global arranges that. sizeFn and sig are nil-able: a nil
// sig channel disables resize events, useful in tests that don't care
// about SIGWINCH.
func (c *Core) Run(r io.Reader, sig <-chan struct{}, sizeFn SizeFunc, stop <-chan struct{}) {
	c.runOnce.Do(func() {
		c.mu.Lock()
		c.generation++
		c.mu.Unlock()
	})

	dataCh := make(chan []byte)
	doneCh := make(chan error, 1)

	// Stdin reader: the dedicated, always-blocked-in-a-syscall OS thread
	// spec.md §4.6 calls for. Go schedules a goroutine blocked in a
	// blocking syscall onto its own OS thread automatically.
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case dataCh <- chunk:
				case <-stop:
					return
				}
			}
			if err != nil {
				doneCh <- err
				return
			}
		}
	}()

	var timer *time.Timer
	var timerC <-chan time.Time

	armTimer := func() {
		if timer == nil {
			timer = time.NewTimer(c.escTimeout)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.escTimeout)
		}
		timerC = timer.C
	}
	disarmTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timerC = nil
	}

	for {
		select {
		case data := <-dataCh:
			for _, ev := range c.parser.Feed(data) {
				c.publish(translate(ev))
			}
			if c.parser.Pending() {
				armTimer()
			} else {
				disarmTimer()
			}

		case <-timerC:
			for _, ev := range c.parser.Timeout() {
				c.publish(translate(ev))
			}
			disarmTimer()

		case <-sig:
			if sizeFn != nil {
				if rows, cols, err := sizeFn(); err == nil {
					c.publish(Event{Kind: EventResize, Rows: rows, Cols: cols})
				}
			}

		case err := <-doneCh:
			if err == io.EOF {
				c.publish(Event{Kind: EventEOF})
			} else {
				c.publish(Event{Kind: EventError, Err: err})
			}
			return

		case <-stop:
			return
		}
	}
}

func translate(ev keyseq.Event) Event {
	switch ev.Kind {
	case keyseq.EventKeyboard:
		return Event{Kind: EventKey, Key: ev.Key}
	case keyseq.EventMouse:
		return Event{Kind: EventMouse, Mouse: ev.Mouse}
	case keyseq.EventPaste:
		return Event{Kind: EventPaste, Paste: ev.Paste}
	case keyseq.EventFocusGained:
		return Event{Kind: EventFocusGained}
	case keyseq.EventFocusLost:
		return Event{Kind: EventFocusLost}
	default:
		return Event{Kind: EventKey, Key: ev.Key}
	}
}
