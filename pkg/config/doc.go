// Package config loads include-source configuration.
//
// Sources are layered, later wins: the embedded defaults, the user config in
// $XDG_CONFIG_HOME/include-source/config.toml, the project config (an explicit
// path or .include-source.toml/.yaml/.yml in the working directory),
// INCLUDE_SOURCE_* environment variables and finally command-line overrides.
//
// Environment variables map to keys by dropping the prefix, lower-casing and
// turning "__" into a key separator:
//
//	INCLUDE_SOURCE_SCRIPT_EXT=min.js      -> script_ext
//	INCLUDE_SOURCE_REGION__ENABLED=true   -> region.enabled
package config
