// Package main hosts the silencecut CLI entrypoint and command graph.
//
// The root command trims a single input file. Subcommands expose a dry-run
// plan, a dependency report, the run history ledger, and configuration
// scaffolding. Configuration resolution, flag overrides, and logger setup
// live here; the pipeline itself is in internal/trim.
package main
