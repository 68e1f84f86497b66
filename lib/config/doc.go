// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the tbxml tools.
//
// Configuration comes from a single file named by either the --config
// flag or the TBXML_CONFIG environment variable. There is no search
// path and no ~/.config discovery: when neither is given, [Resolve]
// returns [Default] unchanged. Settings in the file replace defaults;
// nothing else overrides them.
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas allowed (tidwall/jsonc). Everything else is YAML.
// Unknown keys are errors in both formats, so a misspelled setting
// fails loudly instead of being ignored.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${TBXML_CONFIG_DIR} (the directory holding the config
// file), and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Convert, Inspect, and Log sections
//   - [Default] -- returns a Config with built-in defaults
//   - [Load], [LoadFile], and [Resolve] -- the entry points for loading
package config
