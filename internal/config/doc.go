// Package config loads, normalizes, and validates fitcoach configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FITCOACH_API_TOKEN. The Config type centralizes every knob the engine and
// CLI need: media backend settings, playlist tunables, archetype fallback
// ladders, and API bind details.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical fallback ladders, and clear validation errors.
package config
