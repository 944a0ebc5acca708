package notification

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Notice is the content of a single alert.
type Notice struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

type Phase string

const (
	PhaseClosed  Phase = "closed"
	PhaseOpen    Phase = "open"
	PhaseClosing Phase = "closing"
)

// State is a snapshot of the presenter, safe to serve as JSON.
type State struct {
	IsOpen    bool     `json:"isOpen"`
	Phase     Phase    `json:"phase"`
	Severity  Severity `json:"severity"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Progress  float64  `json:"progress"`
	AutoClose bool     `json:"autoClose"`
}

const (
	DefaultAutoCloseDelay = 3 * time.Second
	DefaultTransition     = 300 * time.Millisecond
	DefaultTick           = 50 * time.Millisecond
)

type Option func(*Presenter)

func WithAutoClose(enabled bool) Option {
	return func(p *Presenter) { p.autoClose = enabled }
}

func WithAutoCloseDelay(d time.Duration) Option {
	return func(p *Presenter) { p.delay = d }
}

func WithTransition(d time.Duration) Option {
	return func(p *Presenter) { p.transition = d }
}

func WithTick(d time.Duration) Option {
	return func(p *Presenter) { p.tick = d }
}

// Presenter owns the alert state machine:
//
//	CLOSED -> OPEN (Show) -> CLOSING (close trigger) -> CLOSED (after transition)
//
// Show while OPEN or CLOSING replaces the content and restarts the timers.
// Every timer callback is bound to the generation it was scheduled under;
// a superseded generation must not mutate newer state.
type Presenter struct {
	mu  sync.Mutex
	log *zap.Logger

	autoClose  bool
	delay      time.Duration
	transition time.Duration
	tick       time.Duration

	gen      uint64
	phase    Phase
	notice   Notice
	progress float64
	stopped  bool

	tickTimer    *time.Timer
	dismissTimer *time.Timer
	closeTimer   *time.Timer
}

func NewPresenter(log *zap.Logger, opts ...Option) *Presenter {
	p := &Presenter{
		log:        log.Named("popup"),
		autoClose:  true,
		delay:      DefaultAutoCloseDelay,
		transition: DefaultTransition,
		tick:       DefaultTick,
		phase:      PhaseClosed,
		notice:     Notice{Severity: SeveritySuccess},
		progress:   100,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Show opens the alert with fresh content, superseding whatever is
// displayed or mid-transition. No queueing: the latest call wins.
func (p *Presenter) Show(severity Severity, title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.supersedeLocked()
	p.phase = PhaseOpen
	p.notice = Notice{Severity: severity, Title: title, Message: message}
	p.progress = 100

	if p.autoClose {
		gen := p.gen
		p.tickTimer = time.AfterFunc(p.tick, func() { p.onTick(gen) })
		p.dismissTimer = time.AfterFunc(p.delay, func() { p.onAutoDismiss(gen) })
	}
	p.log.Debug("show", zap.String("severity", string(severity)), zap.String("title", title))
}

func (p *Presenter) ShowNotice(n Notice) {
	p.Show(n.Severity, n.Title, n.Message)
}

// Close begins the closing transition. Triggered by the dismiss
// control, the backdrop, the action button or the auto-dismiss timer.
// A no-op unless the alert is open.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.phase != PhaseOpen {
		return
	}
	p.beginCloseLocked()
}

// State returns the current snapshot. Safe to call in any phase;
// content may be stale while closed.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		IsOpen:    p.phase != PhaseClosed,
		Phase:     p.phase,
		Severity:  p.notice.Severity,
		Title:     p.notice.Title,
		Message:   p.notice.Message,
		Progress:  p.progress,
		AutoClose: p.autoClose,
	}
}

// Stop cancels all outstanding timers and closes the presenter for
// good. Called when the owning session is evicted.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.supersedeLocked()
	p.phase = PhaseClosed
	p.stopped = true
}

// supersedeLocked invalidates the current generation and cancels its
// timers. Callbacks already in flight will see a stale generation and
// no-op.
func (p *Presenter) supersedeLocked() {
	p.gen++
	if p.tickTimer != nil {
		p.tickTimer.Stop()
		p.tickTimer = nil
	}
	if p.dismissTimer != nil {
		p.dismissTimer.Stop()
		p.dismissTimer = nil
	}
	if p.closeTimer != nil {
		p.closeTimer.Stop()
		p.closeTimer = nil
	}
}

func (p *Presenter) beginCloseLocked() {
	p.supersedeLocked()
	p.phase = PhaseClosing
	gen := p.gen
	p.closeTimer = time.AfterFunc(p.transition, func() { p.onTransitionEnd(gen) })
}

func (p *Presenter) onTick(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.phase != PhaseOpen {
		return
	}
	step := 100 / (float64(p.delay) / float64(p.tick))
	p.progress -= step
	if p.progress <= 0 {
		// draining the bar closes the alert; the dismiss timer is the
		// expiry backstop and will see a stale generation
		p.progress = 0
		p.beginCloseLocked()
		return
	}
	p.tickTimer = time.AfterFunc(p.tick, func() { p.onTick(gen) })
}

func (p *Presenter) onAutoDismiss(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.phase != PhaseOpen {
		return
	}
	p.beginCloseLocked()
}

func (p *Presenter) onTransitionEnd(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.phase != PhaseClosing {
		return
	}
	p.phase = PhaseClosed
	p.progress = 100
	p.closeTimer = nil
}
