package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPresenter(opts ...Option) *Presenter {
	base := []Option{
		WithAutoCloseDelay(100 * time.Millisecond),
		WithTick(10 * time.Millisecond),
		WithTransition(30 * time.Millisecond),
	}
	return NewPresenter(zap.NewExample().Named("test"), append(base, opts...)...)
}

func (p *Presenter) timersIdle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tickTimer == nil && p.dismissTimer == nil && p.closeTimer == nil
}

func TestPresenter_AutoDismiss(t *testing.T) {
	t.Parallel()
	p := newTestPresenter()
	defer p.Stop()

	p.Show(SeverityWarning, "Data Tidak Lengkap", "Nama wajib diisi")

	st := p.State()
	require.True(t, st.IsOpen)
	require.Equal(t, PhaseOpen, st.Phase)
	require.Equal(t, SeverityWarning, st.Severity)
	require.Equal(t, float64(100), st.Progress)

	require.Eventually(t, func() bool {
		return !p.State().IsOpen
	}, 500*time.Millisecond, 5*time.Millisecond, "alert should auto-dismiss within delay+transition")

	require.Eventually(t, p.timersIdle, 100*time.Millisecond, 5*time.Millisecond,
		"no timers may remain after settling")

	// content is allowed to be stale once closed
	require.Equal(t, "Data Tidak Lengkap", p.State().Title)
}

func TestPresenter_ProgressDepletes(t *testing.T) {
	t.Parallel()
	p := newTestPresenter()
	defer p.Stop()

	p.Show(SeveritySuccess, "Berhasil", "ok")
	last := p.State().Progress
	require.Eventually(t, func() bool {
		st := p.State()
		if st.Phase == PhaseOpen {
			require.LessOrEqual(t, st.Progress, last, "progress never rises while open")
			last = st.Progress
		}
		return st.Progress == 0
	}, 500*time.Millisecond, 5*time.Millisecond, "bar should drain to zero")

	// an empty bar triggers the close
	require.Eventually(t, func() bool {
		return p.State().Phase == PhaseClosed
	}, 200*time.Millisecond, 5*time.Millisecond)
	require.True(t, p.timersIdle())
}

func TestPresenter_ShowSupersedesShow(t *testing.T) {
	t.Parallel()
	p := newTestPresenter()
	defer p.Stop()

	p.Show(SeverityError, "Gagal Menyimpan", "first")
	p.Show(SeveritySuccess, "Berhasil", "second")

	st := p.State()
	require.True(t, st.IsOpen)
	require.Equal(t, "second", st.Message)
	require.Equal(t, SeveritySuccess, st.Severity)
	require.Equal(t, float64(100), st.Progress, "timers restart from zero on supersede")

	require.Eventually(t, func() bool {
		return !p.State().IsOpen
	}, 500*time.Millisecond, 5*time.Millisecond)
	require.Eventually(t, p.timersIdle, 100*time.Millisecond, 5*time.Millisecond)
}

func TestPresenter_ShowDuringClosing(t *testing.T) {
	t.Parallel()
	p := newTestPresenter(WithAutoClose(false))
	defer p.Stop()

	p.Show(SeverityError, "Token Tidak Valid", "stale")
	p.Close()
	require.Equal(t, PhaseClosing, p.State().Phase)

	// reopening cancels the pending transition
	p.Show(SeverityWarning, "Data Tidak Valid", "fresh")
	require.Equal(t, PhaseOpen, p.State().Phase)
	require.Equal(t, "fresh", p.State().Message)

	// the superseded transition must not close the fresh content
	time.Sleep(100 * time.Millisecond)
	st := p.State()
	require.True(t, st.IsOpen)
	require.Equal(t, "fresh", st.Message)
}

func TestPresenter_ManualClose(t *testing.T) {
	t.Parallel()
	p := newTestPresenter(WithAutoClose(false))
	defer p.Stop()

	p.Show(SeveritySuccess, "Berhasil", "ok")
	require.True(t, p.timersIdle(), "auto-close disabled schedules nothing")

	p.Close()
	require.Equal(t, PhaseClosing, p.State().Phase)
	require.True(t, p.State().IsOpen, "still visible during the transition")

	// Close is a no-op while already closing
	p.Close()

	require.Eventually(t, func() bool {
		return p.State().Phase == PhaseClosed
	}, 200*time.Millisecond, 5*time.Millisecond)
	require.True(t, p.timersIdle())
}

func TestPresenter_StopCancelsEverything(t *testing.T) {
	t.Parallel()
	p := newTestPresenter()

	p.Show(SeverityError, "Kesalahan Server", "down")
	p.Stop()

	require.True(t, p.timersIdle())
	require.False(t, p.State().IsOpen)

	// a stopped presenter ignores further calls
	p.Show(SeveritySuccess, "Berhasil", "late")
	require.False(t, p.State().IsOpen)
}

func TestPresenter_CloseWhenClosedIsNoop(t *testing.T) {
	t.Parallel()
	p := newTestPresenter()
	defer p.Stop()

	p.Close()
	st := p.State()
	require.False(t, st.IsOpen)
	require.Equal(t, PhaseClosed, st.Phase)
	require.True(t, p.timersIdle())
}
