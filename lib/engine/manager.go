package engine

import (
	"github.com/go-i2p/logger"

	"github.com/go-baduk/reconfig/lib/config"
)

// Scheduler defers one-shot tasks past the current handler.
type Scheduler interface {
	Defer(task func())
}

// Manager owns the current engine instance and every reference that
// must be repointed when it is replaced. It satisfies the
// reconciler's SubsystemManager interface.
type Manager struct {
	current *Engine
	sched   Scheduler
	notify  func()
	onSwap  []func(*Engine)
	lastErr error
}

// NewManager wraps an engine. notify is called after a completed
// restart (state-changed notification); it may be nil.
func NewManager(e *Engine, sched Scheduler, notify func()) *Manager {
	return &Manager{current: e, sched: sched, notify: notify}
}

// Current returns the live engine instance.
func (m *Manager) Current() *Engine {
	return m.current
}

// Err returns the failure of the most recent restart, if any.
// Restart failures are reported, not retried.
func (m *Manager) Err() error {
	return m.lastErr
}

// OnSwap registers a dependent reference to repoint after a restart
// (e.g. the game's per-player engine bindings).
func (m *Manager) OnSwap(fn func(*Engine)) {
	m.onSwap = append(m.onSwap, fn)
}

// HotSet forwards a safe setting to the live engine.
func (m *Manager) HotSet(key string, value any) error {
	return m.current.HotSet(key, value)
}

// ScheduleRestart defers a full engine restart to the next
// cooperative turn, so the triggering event (dismissing the settings
// form) finishes before shared references move.
//
// Overlapping requests are not serialized: two apply cycles that both
// trip the restart rule each get their own deferred task, and both
// run.
func (m *Manager) ScheduleRestart(slice config.Store) {
	log.Debug("engine restart scheduled")
	m.sched.Defer(func() {
		if err := m.restart(slice); err != nil {
			m.lastErr = err
			log.WithError(err).Error("engine restart failed")
		}
	})
}

// restart drains and stops the old engine before anything observes
// the replacement: no dependent may see a half-shutdown instance.
func (m *Manager) restart(slice config.Store) error {
	old := m.current
	failed := old.FailedJobs()
	old.Shutdown(true)

	replacement, err := New(slice)
	if err != nil {
		return err
	}
	m.current = replacement
	m.lastErr = nil
	for _, fn := range m.onSwap {
		fn(replacement)
	}

	// the old engine was possibly broken, so redo its failures
	for _, id := range failed {
		if err := replacement.Analyze(id); err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"at":  "engine.restart",
				"job": id,
			}).Error("failed_job_retry_failed")
		}
	}

	if m.notify != nil {
		m.notify()
	}
	log.WithFields(logger.Fields{
		"at":      "engine.restart",
		"retried": len(failed),
	}).Debug("engine_restarted")
	return nil
}
