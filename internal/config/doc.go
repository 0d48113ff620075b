// Package config loads, normalizes, and validates silencecut configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SILENCECUT_FFMPEG. The Config type centralizes every knob the CLI and the
// trim pipeline need: silence detection parameters, output naming, the
// re-encode fallbacks, external binaries, and the run history ledger.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
