// Package config loads, normalizes, and validates snapadmin configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SNADMIN_* environment
// fallbacks the tool has always supported for credentials. Obtain settings
// through this package so downstream code receives sanitized paths,
// canonical log formats, and clear validation errors.
package config
