package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-baduk/reconfig/lib/config"
	"github.com/go-baduk/reconfig/lib/sched"
)

func TestScheduleRestartIsDeferred(t *testing.T) {
	q := sched.New()
	old, err := New(engineSlice())
	require.NoError(t, err)
	m := NewManager(old, q, nil)

	m.ScheduleRestart(engineSlice())

	// nothing happens until the cooperative turn runs the task
	assert.Same(t, old, m.Current())
	assert.True(t, old.Running())

	q.RunPending()
	assert.NotSame(t, old, m.Current())
	assert.False(t, old.Running(), "old engine fully stopped")
	assert.True(t, m.Current().Running())
}

func TestRestartRepointsDependentsAfterOldStops(t *testing.T) {
	q := sched.New()
	old, err := New(engineSlice())
	require.NoError(t, err)
	m := NewManager(old, q, nil)

	var observed *Engine
	var oldWasRunning bool
	m.OnSwap(func(e *Engine) {
		observed = e
		oldWasRunning = old.Running()
	})

	m.ScheduleRestart(engineSlice())
	q.RunPending()

	assert.Same(t, m.Current(), observed)
	assert.False(t, oldWasRunning, "dependents must never observe a half-shutdown instance")
}

func TestRestartRerunsFailedJobs(t *testing.T) {
	q := sched.New()
	old, err := New(engineSlice())
	require.NoError(t, err)
	old.MarkFailed("node-3")
	m := NewManager(old, q, nil)

	m.ScheduleRestart(engineSlice())
	q.RunPending()

	assert.Equal(t, []string{"node-3"}, m.Current().Analyzed())
	assert.Empty(t, m.Current().FailedJobs())
}

func TestRestartNotifiesStateChanged(t *testing.T) {
	q := sched.New()
	old, err := New(engineSlice())
	require.NoError(t, err)
	notified := 0
	m := NewManager(old, q, func() { notified++ })

	m.ScheduleRestart(engineSlice())
	q.RunPending()
	assert.Equal(t, 1, notified)
}

func TestRestartPicksUpUpdatedSlice(t *testing.T) {
	q := sched.New()
	slice := engineSlice()
	old, err := New(slice)
	require.NoError(t, err)
	m := NewManager(old, q, nil)

	// the reconciler wrote into the live slice before the restart
	slice["visits"] = 1200
	slice["model"] = "models/b40.bin.gz"

	m.ScheduleRestart(slice)
	q.RunPending()
	assert.Equal(t, 1200, m.Current().Visits())
}

func TestRestartFailureReportedNotRetried(t *testing.T) {
	q := sched.New()
	old, err := New(engineSlice())
	require.NoError(t, err)
	m := NewManager(old, q, nil)

	m.ScheduleRestart(config.Store{}) // no model: construction fails
	q.RunPending()

	assert.Error(t, m.Err())
	assert.Same(t, old, m.Current(), "current reference left on the stopped instance")
	assert.Zero(t, q.Len(), "no retry scheduled")
}

func TestOverlappingRestartsBothRun(t *testing.T) {
	q := sched.New()
	old, err := New(engineSlice())
	require.NoError(t, err)
	m := NewManager(old, q, nil)

	swaps := 0
	m.OnSwap(func(*Engine) { swaps++ })

	m.ScheduleRestart(engineSlice())
	m.ScheduleRestart(engineSlice())
	q.RunPending()

	assert.Equal(t, 2, swaps, "restart requests are not coalesced")
}
