// Package config loads, normalizes, and validates nasum configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NASUM_UPLOAD_DEST. The Config type centralizes every knob the build
// pipeline and CLI need, so input/output locations, site URLs and external
// tool names are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
