package reconcile

import (
	"reflect"
	"sort"

	"github.com/go-i2p/logger"
	"github.com/spf13/cast"
)

var log = logger.GetGoI2PLogger()

// Apply diffs collected values against the store behind the scheme
// and writes every difference in place, returning the set of changed
// paths. Idempotent: a second call with the same collected map yields
// an empty set.
//
// Paths are assumed already validated by Collect; a path the scheme
// cannot resolve is logged and skipped rather than failing the whole
// apply. Persistence and notification happen elsewhere.
func Apply(scheme Scheme, collected map[string]any) map[string]bool {
	changed := map[string]bool{}

	paths := make([]string, 0, len(collected))
	for p := range collected {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		slot, err := scheme.Resolve(path)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"at":   "reconcile.Apply",
				"path": path,
			}).Error("unresolvable_path_skipped")
			continue
		}
		value := collected[path]
		old := slot.Get()
		if valuesEqual(old, slot.stored(value)) {
			continue
		}
		slot.Set(value)
		changed[path] = true
		log.WithFields(logger.Fields{
			"at":   "reconcile.Apply",
			"path": path,
			"old":  old,
			"new":  slot.Get(),
		}).Debugf("Updating setting %s = %v → %v", path, old, slot.Get())
	}
	return changed
}

// valuesEqual compares a stored and a collected value. Numbers
// compare by magnitude regardless of Go type, since YAML round-trips
// produce int where user input produces float64 and vice versa.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if isNumber(a) && isNumber(b) {
		return cast.ToFloat64(a) == cast.ToFloat64(b)
	}
	return reflect.DeepEqual(a, b)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
