// Package config loads, normalizes, and validates the TOML configuration
// shared by the CLI and the pipeline. Environment variables fill in secrets
// left out of the file, including values loaded from a local .env file.
package config
