package config

// DefaultStore returns the built-in settings tree. Values mirror a
// sensible analysis setup; the engine category carries the keys the
// effect policy's allowlist refers to.
//
// "_hint_<key>" entries are surfaced as input hints by generated
// forms and are never editable themselves.
func DefaultStore() Store {
	return Store{
		"engine": Store{
			"katago":           "katago",
			"model":            "models/b18c384.bin.gz",
			"config":           "analysis_example.cfg",
			"threads":          12,
			"visits":           500,
			"max_visits":       10000,
			"max_time":         8.0,
			"enable_ownership": true,
			"wide_root_noise":  0.04,
			"_hint_visits":     "Visits per analysis query",
			"_hint_max_time":   "Maximum seconds per query",
		},
		"game": Store{
			"size":  19,
			"komi":  6.5,
			"rules": "japanese",
		},
		"trainer": Store{
			"eval_thresholds":    []any{12.0, 6.0, 3.0, 1.5, 0.5},
			"num_undo_prompts":   []any{3.0, 2.0, 1.0, 0.0, 0.0},
			"eval_off_show_last": 3,
			"eval_show_ai":       true,
			"lock_ai":            false,
		},
		"sgf": Store{
			"save_feedback": []any{true, true, true, false, false},
			"sgf_load":      ".",
			"sgf_save":      "./sgfout",
		},
		"board_ui": Store{
			"eval_colors": []any{
				[]any{0.82, 0.13, 0.13, 1.0},
				[]any{0.91, 0.45, 0.10, 1.0},
				[]any{0.95, 0.85, 0.10, 1.0},
				[]any{0.65, 0.85, 0.20, 1.0},
				[]any{0.20, 0.75, 0.25, 1.0},
			},
		},
		"timer": Store{
			"byo_length":  30,
			"byo_periods": 5,
			"minimal_use": 0,
		},
		"debug": Store{
			"level": 0,
		},
	}
}
