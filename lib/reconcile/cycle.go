package reconcile

import (
	"fmt"

	"github.com/go-i2p/logger"
	"github.com/spf13/cast"

	"github.com/go-baduk/reconfig/lib/config"
	"github.com/go-baduk/reconfig/lib/form"
)

// Persister saves the store durably. Loading is external and precedes
// this package's operation.
type Persister interface {
	Save(s config.Store) error
}

// Notifier is told after a successful in-memory apply.
type Notifier interface {
	NotifyStateChanged()
}

// SubsystemManager owns the live engine: hot-set for allowlisted keys
// and deferred reconstruction for everything else.
type SubsystemManager interface {
	HotSet(key string, value any) error
	ScheduleRestart(slice config.Store)
}

// TimerResetter clears per-player timer state after timer settings
// changed.
type TimerResetter interface {
	ResetPerPlayerTimers()
}

// PersistError marks a save failure that happened after the in-memory
// apply already succeeded: the settings took effect, only the durable
// write failed.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("settings applied but could not be saved: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Session runs one full apply cycle over a form tree: collect, diff,
// write, decide effects, dispatch. Collaborators may be nil, in which
// case their effects are logged and dropped.
type Session struct {
	Store  config.Store
	Tree   *form.Node
	Scheme Scheme
	Policy Policy

	Persister Persister
	Notifier  Notifier
	Engine    SubsystemManager
	Timers    TimerResetter

	// ForceRestart carries the new-game flow's explicit restart
	// request into the next Apply call.
	ForceRestart bool

	// OnDebugLevel, when set, receives an applied "debug/level" value
	// so diagnostic verbosity follows the store immediately.
	OnDebugLevel func(level int)
}

// Apply executes the cycle. A *form.ParseError aborts everything: the
// store is untouched, the changed set empty, and the caller keeps the
// form open with the message rendered to the user. A *PersistError is
// returned alongside a non-empty changed set: the apply succeeded in
// memory and only the save step failed. Restart failures surface via
// the manager, not here.
func (s *Session) Apply(saveRequested bool) (map[string]bool, error) {
	collected, err := form.Collect(s.Tree)
	if err != nil {
		log.WithError(err).Error("apply cycle aborted, store untouched")
		return map[string]bool{}, err
	}

	changed := Apply(s.Scheme, collected)

	effects := s.Policy.Decide(changed, Context{
		SaveRequested: saveRequested,
		ForceRestart:  s.ForceRestart,
		Collected:     collected,
	})
	s.ForceRestart = false

	if s.OnDebugLevel != nil && changed["debug/level"] {
		s.OnDebugLevel(cast.ToInt(collected["debug/level"]))
	}

	return changed, s.dispatch(effects)
}

func (s *Session) dispatch(effects []Effect) error {
	var persistErr error
	for _, e := range effects {
		log.WithFields(logger.Fields{
			"at":     "reconcile.dispatch",
			"effect": e.Kind.String(),
		}).Debug("dispatching_effect")

		switch e.Kind {
		case EffectPersist:
			if s.Persister == nil {
				continue
			}
			if err := s.Persister.Save(s.Store); err != nil {
				// applied in memory, warn and keep dispatching
				persistErr = &PersistError{Err: err}
				log.WithError(err).Warn("config save failed, settings remain applied in memory")
			}
		case EffectNotifyStateChanged:
			if s.Notifier != nil {
				s.Notifier.NotifyStateChanged()
			}
		case EffectResetPerPlayerTimers:
			if s.Timers != nil {
				s.Timers.ResetPerPlayerTimers()
			}
		case EffectHotApply:
			if s.Engine == nil {
				continue
			}
			if err := s.Engine.HotSet(e.Key, e.Value); err != nil {
				log.WithError(err).Errorf("hot apply of %s failed", e.Key)
			}
		case EffectRestartSubsystem:
			if s.Engine != nil {
				s.Engine.ScheduleRestart(e.Slice)
			}
		}
	}
	return persistErr
}
