// Package config loads, normalizes, and validates reel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// REEL_API_TOKEN. The Config type centralizes every knob the CLI and the HTTP
// façade need: where the project tree lives, where run state (history database,
// locks, logs) is kept, and which steps run by default.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
