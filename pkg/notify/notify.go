// Package notify holds the transient message shown after an action.
package notify

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is how long a notification stays visible.
const DefaultDelay = 2 * time.Second

type Kind string

const (
	SUCCESS Kind = "success"
	ERROR   Kind = "error"
)

type Notification struct {
	Message string
	Kind    Kind
}

// Notifier keeps at most one notification. Emitting a new one cancels the
// pending clear of the previous one.
type Notifier struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	delay    time.Duration
	current  Notification
	active   bool
	timer    clockwork.Timer
	gen      uint64
	onChange func(Notification)
}

type Option func(*Notifier)

func WithClock(c clockwork.Clock) Option {
	return func(n *Notifier) { n.clock = c }
}

func WithDelay(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.delay = d
		}
	}
}

func New(opts ...Option) *Notifier {
	n := &Notifier{clock: clockwork.NewRealClock(), delay: DefaultDelay}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// OnChange registers f to run after every emit and clear. f runs without
// the notifier's lock held; on auto-clear it runs on the timer's goroutine.
func (n *Notifier) OnChange(f func(Notification)) {
	n.mu.Lock()
	n.onChange = f
	n.mu.Unlock()
}

func (n *Notifier) Success(message string) { n.Emit(message, SUCCESS) }

func (n *Notifier) Error(message string) { n.Emit(message, ERROR) }

// Emit shows message and arms its auto-clear.
func (n *Notifier) Emit(message string, kind Kind) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = Notification{Message: message, Kind: kind}
	n.active = true
	n.timer = n.clock.AfterFunc(n.delay, func() { n.expire(gen) })
	note, f := n.current, n.onChange
	n.mu.Unlock()

	if f != nil {
		f(note)
	}
}

// expire clears the notification armed as gen. A timer that lost the race
// with a newer Emit finds a different generation and does nothing.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.active {
		n.mu.Unlock()
		return
	}
	n.current = Notification{}
	n.active = false
	n.timer = nil
	f := n.onChange
	n.mu.Unlock()

	if f != nil {
		f(Notification{})
	}
}

// Clear drops the current notification immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	if !n.active {
		n.mu.Unlock()
		return
	}
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = Notification{}
	n.active = false
	f := n.onChange
	n.mu.Unlock()

	if f != nil {
		f(Notification{})
	}
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.active
}
