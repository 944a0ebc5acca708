package circuit_breaker

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func ok() error      { return nil }

func TestCircuitBreaker_OpensOnFailureRate(t *testing.T) {
	cb := NewCircuitBreaker(4, time.Minute, 0.5, 2)

	require.ErrorIs(t, cb.Call(failing), errBoom)
	require.ErrorIs(t, cb.Call(failing), errBoom)

	// half the tracked tail has failed, breaker must be open now
	require.ErrorIs(t, cb.Call(ok), ErrOpenCB)
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(4, 10*time.Millisecond, 0.5, 1)

	require.Error(t, cb.Call(failing))
	require.Error(t, cb.Call(failing))
	require.ErrorIs(t, cb.Call(ok), ErrOpenCB)

	time.Sleep(20 * time.Millisecond)

	// probes pass, breaker closes after enough successes
	require.NoError(t, cb.Call(ok))
	require.NoError(t, cb.Call(ok))

	// a later failure is reported directly again, not short-circuited
	require.ErrorIs(t, cb.Call(failing), errBoom)
}
