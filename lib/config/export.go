package config

import (
	"sort"
	"strings"

	"github.com/samber/oops"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Flatten returns every leaf of the store as a "category/key" path.
// Sequences and nested values below the leaf level are kept whole.
func (s Store) Flatten() map[string]any {
	out := map[string]any{}
	s.flattenInto("", out)
	return out
}

func (s Store) flattenInto(prefix string, out map[string]any) {
	for k, v := range s {
		path := k
		if prefix != "" {
			path = prefix + "/" + k
		}
		if child, ok := AsStore(v); ok {
			child.flattenInto(path, out)
			continue
		}
		out[path] = v
	}
}

// ExportJSON renders the store as a deterministic JSON document, leaf
// by leaf in sorted path order. Used by the CLI and by tests that
// compare stores byte-for-byte.
func ExportJSON(s Store) ([]byte, error) {
	flat := s.Flatten()
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := []byte("{}")
	var err error
	for _, p := range paths {
		out, err = sjson.SetBytes(out, strings.ReplaceAll(p, "/", "."), flat[p])
		if err != nil {
			return nil, oops.Errorf("could not export %s: %v", p, err)
		}
	}
	return out, nil
}

// QueryJSON looks up a "category/key" path in an exported document.
func QueryJSON(data []byte, path string) gjson.Result {
	return gjson.GetBytes(data, strings.ReplaceAll(path, "/", "."))
}
