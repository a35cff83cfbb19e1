// Package config loads, normalizes, and validates rosterly configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes the matching policy knobs —
// the confidence acceptance threshold, the cohort tie-break preference, and
// the allocator retry bound — so policy lives in one place instead of being
// hard-coded at call sites.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and validated policy values.
package config
