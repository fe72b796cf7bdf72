// Package main hosts the galley CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into catalog
// listings, coordinated generation runs, progress inspection, operator
// resets, run history queries, and configuration scaffolding. It centralizes
// configuration resolution and logging setup so subcommands can focus on
// user experience instead of wiring.
package main
