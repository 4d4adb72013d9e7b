// Package preflight provides readiness checks for the paths and external
// services a build depends on.
//
// The build command calls RunAll before parsing the log so that a missing
// input file or an unwritable output directory fails before any work is
// done. The doctor command prints the same results alongside the external
// tool report from CheckSystemDeps.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
