// Package config resolves generator settings from defaults, a stablegen.toml
// file, an optional .env file, STABLEGEN_* environment variables and
// command-line flags, in increasing order of precedence.
package config
