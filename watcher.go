package selfguard

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/mrwhite4939/selfguard/events"
)

// WatcherConfig configures a periodic integrity watcher.
type WatcherConfig struct {
	// Interval between integrity sweeps.
	// Default: 30s
	Interval time.Duration

	// Mask selects the probes each sweep runs.
	// Default: CheckAll
	Mask Check

	// EventsPerMinute caps notifications while the verdict is unchanged.
	// Verdict changes always notify. Set to 0 for unlimited.
	// Default: 6
	EventsPerMinute int

	// Notify, if set, receives the verdict after each (non-suppressed)
	// sweep. It runs on the watcher goroutine and must not block.
	Notify func(Verdict)
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		Interval:        30 * time.Second,
		Mask:            CheckAll,
		EventsPerMinute: 6,
	}
}

// Watcher drives periodic integrity sweeps against the monitor. The
// library has no threads of its own; a Watcher runs on one goroutine the
// host starts and cancels through a context.
type Watcher struct {
	cfg     WatcherConfig
	limiter *rate.Limiter

	// seams for tests; default to the package facade
	check func(Check) error
	state func() Verdict
}

// NewWatcher creates a watcher. A zero Interval or Mask falls back to its
// default; a zero EventsPerMinute means unlimited notifications.
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Mask == 0 {
		cfg.Mask = CheckAll
	}
	w := &Watcher{
		cfg:   cfg,
		check: CheckIntegrity,
		state: State,
	}
	if cfg.EventsPerMinute > 0 {
		w.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.EventsPerMinute)), 1)
	}
	return w
}

// Run sweeps until ctx is canceled, returning ctx.Err(). A sweep that
// cannot execute (for example after the host shut the monitor down) ends
// the run with that error.
func (w *Watcher) Run(ctx context.Context) error {
	var session string
	if m := current.Load(); m != nil {
		session = m.session
	}
	dispatcher.Emit(events.Event{
		Type:      events.EventTypeWatcherStarted,
		SessionID: session,
		Severity:  events.SeverityInfo,
		Message:   "periodic integrity watcher started",
		Data:      map[string]interface{}{"interval": w.cfg.Interval.String()},
	})
	defer dispatcher.Emit(events.Event{
		Type:      events.EventTypeWatcherStopped,
		SessionID: session,
		Severity:  events.SeverityInfo,
		Message:   "periodic integrity watcher stopped",
	})

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	last := w.state()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.check(w.cfg.Mask); err != nil {
				return err
			}
			v := w.state()
			changed := v != last
			last = v
			if w.cfg.Notify == nil {
				continue
			}
			if changed || w.limiter == nil || w.limiter.Allow() {
				w.cfg.Notify(v)
			}
		}
	}
}
