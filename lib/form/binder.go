package form

import (
	"strings"

	"github.com/go-i2p/logger"
	"github.com/spf13/cast"

	"github.com/go-baduk/reconfig/lib/config"
)

var log = logger.GetGoI2PLogger()

// Pull seeds every field's display state from the store (pre-order).
// Missing paths are self-healed by the store: intermediate maps are
// created and a missing leaf becomes an empty string, which the field
// then displays. Indexed ("key::index") fields are seeded when the
// tree is built and are skipped here.
func Pull(tree *Node, store config.Store) {
	tree.Walk(func(f *Field) {
		if strings.Contains(f.Path, "::") {
			return
		}
		value, _, _, healed := store.Resolve(f.Path)
		if healed {
			log.WithFields(logger.Fields{
				"at":   "form.Pull",
				"path": f.Path,
			}).Debug("field_seeded_from_healed_leaf")
		}
		seed(f, value)
	})
}

func seed(f *Field, value any) {
	switch f.Type {
	case Bool:
		f.Active = value == true
	case Choice:
		if len(f.Choices) == 0 {
			f.Text = ""
			return
		}
		f.Text = f.Choices[0].Label
		for _, c := range f.Choices {
			if c.Ref == value {
				f.Text = c.Label
				return
			}
		}
	default:
		f.SetText(cast.ToString(value))
	}
}

// Collect gathers typed values from every field (pre-order), failing
// fast on the first unparseable input: the caller gets the complete
// map or the error, never a partial map. If two fields address the
// same path, the later one in traversal order wins.
func Collect(tree *Node) (map[string]any, error) {
	out := map[string]any{}
	var parseErr error
	tree.Walk(func(f *Field) {
		if parseErr != nil {
			return
		}
		v, err := f.Parse()
		if err != nil {
			parseErr = err
			return
		}
		out[f.Path] = v
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}
