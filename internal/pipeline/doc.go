// Package pipeline runs a complete build: it parses the summary log once and
// drives the hypertext and typeset outputs, then the optional publishing
// steps.
//
// A build holds an exclusive lock on the output directory for its whole
// duration, so two builds against the same directory never interleave their
// writes. Every output file is written through a temp file and renamed into
// place. A malformed log aborts the run before anything is written; a failing
// external tool aborts only the steps that depend on it.
package pipeline
