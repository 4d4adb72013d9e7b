// Package services defines shared utilities consumed by the build pipeline
// and its external collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and episode numbers
//     for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into consistent CLI exit codes.
//
// Use these helpers when wiring new pipeline steps so operational behaviour
// (error handling, observability) stays uniform across the build.
package services
