package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/go-baduk/reconfig/lib/config"
)

// BuildOptions controls which parts of the store become editable.
type BuildOptions struct {
	// IgnoreCategories are top-level categories left out of the form.
	IgnoreCategories []string
}

// Build constructs a FormTree over the scalar settings of a store,
// one container per category. Keys starting with "_" are hidden;
// lists and nested maps are not editable here. Categories are ordered
// by descending field count then name (largest sections first, which
// is also how they lay out best), keys alphabetically.
//
// Field display state is seeded from the store; call Pull again after
// external store changes to refresh it.
func Build(store config.Store, opts BuildOptions) *Node {
	ignored := map[string]bool{}
	for _, c := range opts.IgnoreCategories {
		ignored[c] = true
	}

	type catEntry struct {
		name string
		keys []string
		sub  config.Store
	}
	var cats []catEntry
	for _, name := range store.Categories() {
		if ignored[name] {
			continue
		}
		sub, ok := config.AsStore(store[name])
		if !ok {
			continue
		}
		var keys []string
		for k, v := range sub {
			if strings.HasPrefix(k, "_") || !config.IsScalar(v) {
				continue
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		cats = append(cats, catEntry{name: name, keys: keys, sub: sub})
	}
	sort.Slice(cats, func(i, j int) bool {
		if len(cats[i].keys) != len(cats[j].keys) {
			return len(cats[i].keys) > len(cats[j].keys)
		}
		return cats[i].name < cats[j].name
	})

	root := NewContainer("settings")
	for _, cat := range cats {
		container := root.Add(NewContainer(cat.name))
		for _, k := range cat.keys {
			f := FieldForValue(cat.sub[k], cat.name+"/"+k)
			f.Hint = cast.ToString(cat.sub["_hint_"+k])
			container.Add(NewFieldNode(f))
		}
	}
	Pull(root, store)
	return root
}

// FieldForValue picks the field variant for a stored value: the
// field tag is chosen once at build time instead of dispatching on
// the value's dynamic type at every use.
func FieldForValue(value any, path string) *Field {
	switch value.(type) {
	case bool:
		return &Field{Path: path, Type: Bool}
	case int, int64:
		return &Field{Path: path, Type: Int}
	case float64:
		return &Field{Path: path, Type: Float, Signed: true}
	default:
		return &Field{Path: path, Type: String}
	}
}

// BuildIndexed constructs the trainer-settings tree: one row per
// feedback threshold with indexed "key::i" paths, plus the scalar
// trainer extras. Same index, different destination stores: the alpha
// column routes to the board UI colors, the save column to the SGF
// flags, everything else to the trainer store.
func BuildIndexed(trainer, ui, sgf config.Store) *Node {
	root := NewContainer("trainer settings")

	thresholds := trainer.Sequence("eval_thresholds")
	undos := trainer.Sequence("num_undo_prompts")
	colors := ui.Sequence("eval_colors")
	saves := sgf.Sequence("save_feedback")

	rows := root.Add(NewContainer("thresholds"))
	for i, thr := range thresholds {
		row := rows.Add(NewContainer(fmt.Sprintf("row %d", i)))

		f := &Field{Path: fmt.Sprintf("eval_thresholds::%d", i), Type: Float, Signed: true}
		f.SetText(cast.ToString(thr))
		row.Add(NewFieldNode(f))

		if i < len(undos) {
			f = &Field{Path: fmt.Sprintf("num_undo_prompts::%d", i), Type: Float, Signed: true}
			f.SetText(cast.ToString(undos[i]))
			row.Add(NewFieldNode(f))
		}
		if i < len(colors) {
			alpha := colorAlpha(colors[i])
			f = &Field{Path: fmt.Sprintf("alpha::%d", i), Type: Bool, Active: alpha == 1.0}
			row.Add(NewFieldNode(f))
		}
		if i < len(saves) {
			f = &Field{Path: fmt.Sprintf("save_feedback::%d", i), Type: Bool, Active: saves[i] == true}
			row.Add(NewFieldNode(f))
		}
	}

	extras := root.Add(NewContainer("extras"))
	showLast := &Field{Path: "eval_off_show_last", Type: Int}
	showLast.SetText(cast.ToString(trainer["eval_off_show_last"]))
	extras.Add(NewFieldNode(showLast))
	extras.Add(NewFieldNode(&Field{Path: "eval_show_ai", Type: Bool, Active: trainer["eval_show_ai"] == true}))
	extras.Add(NewFieldNode(&Field{Path: "lock_ai", Type: Bool, Active: trainer["lock_ai"] == true}))

	return root
}

func colorAlpha(color any) float64 {
	row, ok := color.([]any)
	if !ok || len(row) < 4 {
		return 0
	}
	return cast.ToFloat64(row[3])
}
