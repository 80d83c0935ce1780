package reconcile

import (
	"sort"
	"strings"

	"github.com/go-baduk/reconfig/lib/config"
)

// EffectKind identifies one side effect of an apply cycle.
type EffectKind int

const (
	// EffectPersist saves the store to durable storage.
	EffectPersist EffectKind = iota
	// EffectNotifyStateChanged tells observers the config changed.
	EffectNotifyStateChanged
	// EffectResetPerPlayerTimers clears per-player period usage after
	// timer settings changed.
	EffectResetPerPlayerTimers
	// EffectHotApply pushes a single safe key to the live engine.
	EffectHotApply
	// EffectRestartSubsystem drains and reconstructs the engine.
	EffectRestartSubsystem
)

func (k EffectKind) String() string {
	switch k {
	case EffectPersist:
		return "persist"
	case EffectNotifyStateChanged:
		return "notify_state_changed"
	case EffectResetPerPlayerTimers:
		return "reset_per_player_timers"
	case EffectHotApply:
		return "hot_apply"
	case EffectRestartSubsystem:
		return "restart_subsystem"
	default:
		return "unknown"
	}
}

// Effect is one entry of the ordered effect list Decide produces.
type Effect struct {
	Kind EffectKind

	// Key/Value are set for EffectHotApply.
	Key   string
	Value any

	// Slice is the updated engine config for EffectRestartSubsystem.
	Slice config.Store
}

// Policy maps a changed-path set to its side effects.
type Policy struct {
	// EngineCategory is the category whose keys gate the restart
	// decision (normally "engine").
	EngineCategory string
	// TimerCategory is the category whose changes reset per-player
	// timers.
	TimerCategory string
	// HotKey is the single engine key applied hot when it is the only
	// unsafe-adjacent change (normally "visits").
	HotKey string
	// Allowlist holds the engine keys that never force a restart.
	Allowlist map[string]bool
	// EngineSlice is the live engine config a replacement engine
	// binds to on restart.
	EngineSlice config.Store
}

// RestartAllowlist is the conservative set of engine keys known to be
// safe without reconstructing the engine. Everything else restarts.
func RestartAllowlist() map[string]bool {
	return map[string]bool{
		"visits":           true,
		"max_visits":       true,
		"max_time":         true,
		"enable_ownership": true,
		"wide_root_noise":  true,
	}
}

// DefaultPolicy returns the policy for a full settings store.
func DefaultPolicy(store config.Store) Policy {
	return Policy{
		EngineCategory: "engine",
		TimerCategory:  "timer",
		HotKey:         "visits",
		Allowlist:      RestartAllowlist(),
		EngineSlice:    store.Slice("engine"),
	}
}

// Context carries per-cycle inputs that are not part of the changed
// set itself.
type Context struct {
	// SaveRequested asks for a durable save regardless of diff size.
	SaveRequested bool
	// ForceRestart requests an engine restart even when every changed
	// key is allowlisted (the new-game flow exposes this).
	ForceRestart bool
	// Collected is the value map the changed set came from; Decide
	// reads hot-apply values out of it.
	Collected map[string]any
}

// Decide maps a changed-path set to an ordered effect list.
//
// The engine rule: changed engine keys outside the allowlist always
// force a restart, which supersedes (not joins) the hot-apply effect
// for that category. A visits change with only allowlisted siblings
// is applied hot.
func (p Policy) Decide(changed map[string]bool, ctx Context) []Effect {
	var effects []Effect

	if ctx.SaveRequested {
		effects = append(effects, Effect{Kind: EffectPersist})
	}
	if len(changed) > 0 {
		effects = append(effects, Effect{Kind: EffectNotifyStateChanged})
	}
	if p.TimerCategory != "" && anyWithPrefix(changed, p.TimerCategory+"/") {
		effects = append(effects, Effect{Kind: EffectResetPerPlayerTimers})
	}

	engineKeys := keysUnder(changed, p.EngineCategory+"/")
	unsafe := false
	for _, k := range engineKeys {
		if !p.Allowlist[k] {
			unsafe = true
			break
		}
	}
	switch {
	case unsafe || ctx.ForceRestart:
		effects = append(effects, Effect{Kind: EffectRestartSubsystem, Slice: p.EngineSlice})
	case contains(engineKeys, p.HotKey):
		path := p.EngineCategory + "/" + p.HotKey
		effects = append(effects, Effect{Kind: EffectHotApply, Key: p.HotKey, Value: ctx.Collected[path]})
	}
	return effects
}

func anyWithPrefix(set map[string]bool, prefix string) bool {
	for p := range set {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func keysUnder(set map[string]bool, prefix string) []string {
	var out []string
	for p := range set {
		if strings.HasPrefix(p, prefix) {
			out = append(out, strings.TrimPrefix(p, prefix))
		}
	}
	sort.Strings(out)
	return out
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
