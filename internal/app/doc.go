// Package app contains the core application logic. It wires the configuration
// loader, the resolver and the renderer into a single validation run,
// decoupled from any specific entrypoint like a CLI.
package app
