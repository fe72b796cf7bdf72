// Package config loads, normalizes, and validates galley configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GALLEY_API_KEY. The Config type centralizes every knob the CLI needs:
// catalog and progress file locations, generation provider credentials, and
// log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
