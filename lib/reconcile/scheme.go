package reconcile

import (
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/go-baduk/reconfig/lib/config"
)

// Slot is a writable location some scheme resolved a path to: either
// a key in a map container or an index in a sequence. An optional
// transform converts the collected value into its stored shape.
type Slot struct {
	container config.Store
	key       string

	seq []any
	idx int

	transform func(any) any
}

// Get returns the slot's current stored value.
func (s Slot) Get() any {
	if s.seq != nil {
		return s.seq[s.idx]
	}
	return s.container[s.key]
}

// Set writes a collected value into the slot, applying the scheme's
// value transform first.
func (s Slot) Set(v any) {
	v = s.stored(v)
	if s.seq != nil {
		s.seq[s.idx] = v
		return
	}
	s.container[s.key] = v
}

// stored returns the value as it would be written.
func (s Slot) stored(v any) any {
	if s.transform != nil {
		return s.transform(v)
	}
	return v
}

// Scheme maps a collected path to a storage location. The call site
// designates the scheme; the two coexisting path forms are
// "category/key" and the indexed "key::index".
type Scheme interface {
	Resolve(path string) (Slot, error)
}

// CategoryScheme addresses "category/key" paths into a single store.
// It never fails: resolution self-heals through the store.
type CategoryScheme struct {
	Store config.Store
}

func (c CategoryScheme) Resolve(path string) (Slot, error) {
	_, container, key, _ := c.Store.Resolve(path)
	return Slot{container: container, key: key}, nil
}

// IndexedScheme addresses "key::index" paths across three distinct
// stores, routed by key prefix: an "alpha" key writes the i-th
// feedback color's alpha channel in the UI store (as 1.0/0.0), a
// "save_feedback" key writes the i-th SGF persistence flag, anything
// else writes the i-th element of the named trainer sequence. A path
// without "::" addresses a plain trainer key.
type IndexedScheme struct {
	Trainer config.Store
	UI      config.Store
	SGF     config.Store
}

func (s IndexedScheme) Resolve(path string) (Slot, error) {
	key, idxText, ok := strings.Cut(path, "::")
	if !ok {
		return Slot{container: s.Trainer, key: path}, nil
	}
	idx, err := strconv.Atoi(idxText)
	if err != nil || idx < 0 {
		return Slot{}, oops.Errorf("bad index in path %s", path)
	}

	switch {
	case strings.Contains(key, "alpha"):
		colors := s.UI.Sequence("eval_colors")
		if idx >= len(colors) {
			return Slot{}, oops.Errorf("color index %d out of range for %s", idx, path)
		}
		row, ok := colors[idx].([]any)
		if !ok || len(row) < 4 {
			return Slot{}, oops.Errorf("malformed color entry %d for %s", idx, path)
		}
		return Slot{seq: row, idx: 3, transform: boolToAlpha}, nil

	case strings.Contains(key, "save_feedback"):
		seq := s.SGF.Sequence(key)
		if idx >= len(seq) {
			return Slot{}, oops.Errorf("index %d out of range for %s", idx, path)
		}
		return Slot{seq: seq, idx: idx}, nil

	default:
		seq := s.Trainer.Sequence(key)
		if idx >= len(seq) {
			return Slot{}, oops.Errorf("index %d out of range for %s", idx, path)
		}
		return Slot{seq: seq, idx: idx}, nil
	}
}

// boolToAlpha stores a feedback-visibility toggle as the color's
// alpha channel.
func boolToAlpha(v any) any {
	if v == true {
		return 1.0
	}
	return 0.0
}
