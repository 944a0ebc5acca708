package session

import (
	"sync"
	"time"
)

// FlagSeenWelcome marks that the welcome popup was already shown in
// this session.
const FlagSeenWelcome = "hasSeenWelcomePopup"

const (
	welcomeOpenDelay  = 500 * time.Millisecond
	welcomeTransition = 300 * time.Millisecond
)

type WelcomePhase string

const (
	WelcomePending WelcomePhase = "pending"
	WelcomeOpen    WelcomePhase = "open"
	WelcomeClosing WelcomePhase = "closing"
	WelcomeClosed  WelcomePhase = "closed"
)

type WelcomeState struct {
	IsOpen bool         `json:"isOpen"`
	Phase  WelcomePhase `json:"phase"`
}

type GreeterOption func(*Greeter)

func WithGreeterDelay(d time.Duration) GreeterOption {
	return func(g *Greeter) { g.delay = d }
}

func WithGreeterTransition(d time.Duration) GreeterOption {
	return func(g *Greeter) { g.transition = d }
}

// Greeter shows the welcome popup once per session: it opens after a
// short delay on first visit and never again once dismissed.
type Greeter struct {
	mu         sync.Mutex
	flags      Flags
	delay      time.Duration
	transition time.Duration
	phase      WelcomePhase
	stopped    bool
	openTimer  *time.Timer
	closeTimer *time.Timer
}

func NewGreeter(flags Flags, opts ...GreeterOption) *Greeter {
	g := &Greeter{
		flags:      flags,
		delay:      welcomeOpenDelay,
		transition: welcomeTransition,
		phase:      WelcomeClosed,
	}
	for _, opt := range opts {
		opt(g)
	}
	if _, seen := flags.Get(FlagSeenWelcome); !seen {
		g.phase = WelcomePending
		g.openTimer = time.AfterFunc(g.delay, g.onOpenDelay)
	}
	return g
}

func (g *Greeter) State() WelcomeState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return WelcomeState{
		IsOpen: g.phase == WelcomeOpen || g.phase == WelcomeClosing,
		Phase:  g.phase,
	}
}

// Close starts the closing transition; the seen flag is set once the
// transition finishes.
func (g *Greeter) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped || g.phase != WelcomeOpen {
		return
	}
	g.phase = WelcomeClosing
	g.closeTimer = time.AfterFunc(g.transition, g.onTransitionEnd)
}

func (g *Greeter) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	if g.openTimer != nil {
		g.openTimer.Stop()
		g.openTimer = nil
	}
	if g.closeTimer != nil {
		g.closeTimer.Stop()
		g.closeTimer = nil
	}
	g.phase = WelcomeClosed
}

func (g *Greeter) onOpenDelay() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped || g.phase != WelcomePending {
		return
	}
	g.phase = WelcomeOpen
	g.openTimer = nil
}

func (g *Greeter) onTransitionEnd() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped || g.phase != WelcomeClosing {
		return
	}
	g.phase = WelcomeClosed
	g.closeTimer = nil
	g.flags.Set(FlagSeenWelcome, "true")
}
