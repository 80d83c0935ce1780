// Package engine models the analysis engine collaborator: an
// expensive long-lived subsystem bound to the "engine" config slice.
// The lifecycle (construct, drain shutdown, hot-set) is what the
// reconciler's effect policy drives; the engine's own computation is
// out of scope and stubbed as job bookkeeping.
package engine

import (
	"sync"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/cast"

	"github.com/go-baduk/reconfig/lib/config"
)

var log = logger.GetGoI2PLogger()

// Engine is one analysis engine instance. It is bound at construction
// to the live engine config slice; a restart constructs a fresh
// instance against the same (now updated) slice.
type Engine struct {
	cfg config.Store

	visits    int
	maxVisits int
	maxTime   float64
	ownership bool
	model     string

	running bool
	runMux  sync.RWMutex

	inflight sync.WaitGroup

	mu       sync.Mutex
	analyzed []string
	failed   map[string]bool
}

// New constructs and starts an engine from the engine config slice.
func New(slice config.Store) (*Engine, error) {
	model := cast.ToString(slice["model"])
	if model == "" {
		return nil, oops.Errorf("engine config has no model")
	}
	e := &Engine{
		cfg:       slice,
		visits:    cast.ToInt(slice["visits"]),
		maxVisits: cast.ToInt(slice["max_visits"]),
		maxTime:   cast.ToFloat64(slice["max_time"]),
		ownership: cast.ToBool(slice["enable_ownership"]),
		model:     model,
		running:   true,
		failed:    map[string]bool{},
	}
	log.WithFields(logger.Fields{
		"at":     "engine.New",
		"model":  e.model,
		"visits": e.visits,
	}).Debug("engine_started")
	return e, nil
}

// Running reports whether the engine accepts work.
func (e *Engine) Running() bool {
	e.runMux.RLock()
	defer e.runMux.RUnlock()
	return e.running
}

// Visits returns the current per-query visit budget.
func (e *Engine) Visits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visits
}

// HotSet applies a single allowlisted setting to the live engine
// without reconstruction.
func (e *Engine) HotSet(key string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch key {
	case "visits":
		e.visits = cast.ToInt(value)
	case "max_visits":
		e.maxVisits = cast.ToInt(value)
	case "max_time":
		e.maxTime = cast.ToFloat64(value)
	case "enable_ownership":
		e.ownership = cast.ToBool(value)
	default:
		return oops.Errorf("setting %s cannot be applied to a running engine", key)
	}
	log.Debugf("hot applied %s = %v", key, value)
	return nil
}

// Analyze runs one analysis job. A job submitted to a stopped engine
// is recorded as failed so a replacement engine can re-run it.
func (e *Engine) Analyze(id string) error {
	if !e.Running() {
		e.mu.Lock()
		e.failed[id] = true
		e.mu.Unlock()
		return oops.Errorf("engine is not running, job %s recorded as failed", id)
	}
	e.inflight.Add(1)
	defer e.inflight.Done()

	e.mu.Lock()
	e.analyzed = append(e.analyzed, id)
	delete(e.failed, id)
	e.mu.Unlock()
	return nil
}

// Analyzed returns the ids of completed jobs, in order.
func (e *Engine) Analyzed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.analyzed))
	copy(out, e.analyzed)
	return out
}

// FailedJobs returns jobs that failed under this engine. The restart
// path re-runs them on the replacement, since this engine may have
// been the cause.
func (e *Engine) FailedJobs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.failed))
	for id := range e.failed {
		out = append(out, id)
	}
	return out
}

// MarkFailed records an externally observed job failure.
func (e *Engine) MarkFailed(id string) {
	e.mu.Lock()
	e.failed[id] = true
	e.mu.Unlock()
}

// Shutdown stops the engine. With drain set, in-flight work finishes
// first; either way the engine accepts no new jobs once this returns.
func (e *Engine) Shutdown(drain bool) {
	e.runMux.Lock()
	if !e.running {
		e.runMux.Unlock()
		return
	}
	e.running = false
	e.runMux.Unlock()

	if drain {
		e.inflight.Wait()
	}
	log.WithFields(logger.Fields{
		"at":    "engine.Shutdown",
		"drain": drain,
	}).Debug("engine_stopped")
}
