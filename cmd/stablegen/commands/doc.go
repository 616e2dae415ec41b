// Package commands defines the stablegen CLI.
//
// Commands
//
//   - stablegen <header>  Write the hourglass header (and source, for the split layout)
//   - inspect <header>    Print the parsed interface as YAML or JSON
//   - check <header>      Diff generated output against the files on disk
//   - watch <header>      Regenerate whenever the header changes
//
// # Implementation
//
// Configuration is resolved per invocation once the header path is known,
// because stablegen.toml and .env are searched next to the header first.
// Logs go to stderr; stdout carries only command results.
package commands
