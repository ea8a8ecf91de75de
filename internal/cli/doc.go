// Package cli provides the command-line interface for the automation engine.
//
// It is a thin Cobra front-end over internal/engine: every command builds an
// *engine.Engine from the configured file and calls straight into it, with no
// intermediary daemon or IPC layer. It exists as a reference consumer of the
// engine, alongside the MCP server and language bindings named but not built
// here.
package cli
