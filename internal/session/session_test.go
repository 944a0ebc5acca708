package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGreeter_OpensOncePerSession(t *testing.T) {
	t.Parallel()
	flags := newFlagStore()
	g := NewGreeter(flags,
		WithGreeterDelay(20*time.Millisecond),
		WithGreeterTransition(20*time.Millisecond),
	)
	defer g.Stop()

	require.Equal(t, WelcomePending, g.State().Phase)
	require.False(t, g.State().IsOpen)

	require.Eventually(t, func() bool {
		return g.State().Phase == WelcomeOpen
	}, 500*time.Millisecond, 5*time.Millisecond, "popup opens after the delay")

	g.Close()
	st := g.State()
	require.Equal(t, WelcomeClosing, st.Phase)
	require.True(t, st.IsOpen, "still visible during the closing transition")

	require.Eventually(t, func() bool {
		return g.State().Phase == WelcomeClosed
	}, 500*time.Millisecond, 5*time.Millisecond)

	// the flag is set only after the transition completes
	_, seen := flags.Get(FlagSeenWelcome)
	require.True(t, seen)

	// a later greeter for the same session stays dormant
	g2 := NewGreeter(flags, WithGreeterDelay(time.Millisecond))
	defer g2.Stop()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, WelcomeClosed, g2.State().Phase)
	require.False(t, g2.State().IsOpen)
}

func TestGreeter_StopBeforeOpen(t *testing.T) {
	t.Parallel()
	g := NewGreeter(newFlagStore(), WithGreeterDelay(10*time.Millisecond))
	g.Stop()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, WelcomeClosed, g.State().Phase)
}

func TestGreeter_CloseWhilePendingIsNoop(t *testing.T) {
	t.Parallel()
	g := NewGreeter(newFlagStore(), WithGreeterDelay(50*time.Millisecond))
	defer g.Stop()

	g.Close()
	require.Equal(t, WelcomePending, g.State().Phase)
}

func TestManager_CreateAndGet(t *testing.T) {
	t.Parallel()
	m := NewManager(zap.NewExample(), time.Minute)
	defer m.Close()

	e := m.Create()
	require.NotEmpty(t, e.ID)
	require.NotNil(t, e.Form)
	require.NotNil(t, e.Greeter)

	got, ok := m.Get(e.ID)
	require.True(t, ok)
	require.Same(t, e, got)

	_, ok = m.Get("unknown")
	require.False(t, ok)
}

func TestManager_EvictsIdleSessions(t *testing.T) {
	t.Parallel()
	m := NewManager(zap.NewExample(), 30*time.Millisecond)
	defer m.Close()

	e := m.Create()
	// the janitor ticks at 1s minimum; Get would refresh lastSeen, so
	// wait out a full tick before looking
	time.Sleep(1300 * time.Millisecond)
	_, ok := m.Get(e.ID)
	require.False(t, ok, "idle session is evicted by the janitor")
}

func TestFlagStore(t *testing.T) {
	t.Parallel()
	f := newFlagStore()
	_, ok := f.Get("missing")
	require.False(t, ok)

	f.Set("k", "v")
	v, ok := f.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
}
