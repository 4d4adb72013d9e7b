// Package main hosts the nasum CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into builds of the
// summary log, catalog queries over it, one-off markup rendering, artwork
// maintenance and configuration scaffolding. Configuration resolution and
// logger setup live in the shared command context so subcommands only deal
// with their own flags and output.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through a command or flag.
package main
