// Package config provides the nested settings store for reconfig.
//
// # Store layout
//
// The store is a tree of string-keyed maps. Leaves are scalars (bool,
// int, float64, string) or ordered sequences of scalars; interior
// nodes are categories ("engine", "trainer", "board_ui", ...). Paths
// into the tree use the "category/key" form. Keys starting with an
// underscore are metadata (field hints and similar) and are hidden
// from generated forms.
//
// # Self-healing
//
// Resolving a path never fails: missing intermediate maps are created
// on the fly and a missing leaf is created as an empty string. Both
// recoveries log a diagnostic, since they normally indicate a damaged
// config file.
//
// # Persistence
//
// Load reads config.yaml from the reconfig directory (or an explicit
// file set via CfgFile), creating a default file on first run. Save
// writes the live store back as YAML.
package config
