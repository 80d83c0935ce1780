package config

import (
	"sort"
	"strings"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Store is the nested mutable configuration data. Interior nodes are
// categories, leaves are scalars or sequences of scalars.
type Store map[string]any

// AsStore converts a nested map value to a Store. Values decoded by
// viper or yaml arrive as map[string]any, values built in code are
// already Store; both are accepted.
func AsStore(v any) (Store, bool) {
	switch m := v.(type) {
	case Store:
		return m, true
	case map[string]any:
		return Store(m), true
	default:
		return nil, false
	}
}

// Resolve walks a "category/key" path (any depth), creating missing
// intermediate maps. A missing final leaf is created as an empty
// string and a diagnostic is logged; this is the only self-healing
// behavior in the system and never fails.
//
// Returns the leaf value, the container map holding it, the final key
// and whether the leaf had to be created.
func (s Store) Resolve(path string) (value any, container Store, key string, healed bool) {
	keys := strings.Split(path, "/")
	container = s
	for _, k := range keys[:len(keys)-1] {
		child, ok := AsStore(container[k])
		if !ok {
			if _, exists := container[k]; exists {
				log.WithFields(logger.Fields{
					"at":   "config.Resolve",
					"path": path,
					"key":  k,
				}).Error("non_map_intermediate_replaced")
			}
			child = Store{}
			container[k] = child
		}
		container = child
	}
	key = keys[len(keys)-1]
	if _, ok := container[key]; !ok {
		container[key] = ""
		healed = true
		log.WithFields(logger.Fields{
			"at":   "config.Resolve",
			"path": path,
		}).Error("setting missing, created it, config file may be corrupt")
	}
	return container[key], container, key, healed
}

// Get returns the value at path, self-healing like Resolve.
func (s Store) Get(path string) any {
	v, _, _, _ := s.Resolve(path)
	return v
}

// Set writes a value at path, creating intermediate maps as needed.
func (s Store) Set(path string, value any) {
	_, container, key, _ := s.Resolve(path)
	container[key] = value
}

// Slice returns the live sub-store for a category, creating it when
// absent. The returned map is shared with the store; writes through
// it are visible to every holder of the slice. Subsystems bind to
// their slice so a restart picks up edits without re-plumbing.
func (s Store) Slice(category string) Store {
	child, ok := AsStore(s[category])
	if !ok {
		child = Store{}
		s[category] = child
	}
	return child
}

// Categories returns the top-level category names in sorted order.
func (s Store) Categories() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sequence returns the named sequence in this store, or nil if the
// key does not hold one.
func (s Store) Sequence(key string) []any {
	seq, _ := s[key].([]any)
	return seq
}

// IsScalar reports whether a value is a form-editable scalar.
func IsScalar(v any) bool {
	switch v.(type) {
	case bool, int, int64, float64, string:
		return true
	default:
		return false
	}
}
