// Package provision converges the remote catalog onto a configured
// country -> state -> device hierarchy.
//
// # Reconciliation contract
//
// The country asset must pre-exist: it is a stable top-level anchor and
// auto-creating it risks duplicating hierarchies across environments. The
// state asset is located by case-insensitive name across all asset types
// and auto-created when absent. The country->state edge is probed before
// creation, so re-runs never duplicate it. Device creation is deliberately
// not deduplicated: every run represents a new physical device, and the
// device->state edge is created unconditionally.
//
// # Failure model
//
// The run is fail-fast. Credential, profile, and country misses are
// terminal with diagnostics listing the available alternatives; any remote
// call failure aborts the run, leaving whatever remote state earlier steps
// already created.
package provision
