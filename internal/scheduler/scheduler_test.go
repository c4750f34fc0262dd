package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingRetrier struct {
	calls atomic.Int32
}

func (c *countingRetrier) RetryMissingAnnotations() int {
	c.calls.Add(1)
	return 1
}

func TestSchedulerRetriesPeriodically(t *testing.T) {
	target := &countingRetrier{}
	s := New(50*time.Millisecond, target)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return target.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	target := &countingRetrier{}
	s := New(0, target)
	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(100 * time.Millisecond)
	require.Zero(t, target.calls.Load())
}
