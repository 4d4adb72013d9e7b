// Package summary parses the episode summary log into Records.
//
// The log is UTF-8 text where records are separated by one or more empty
// lines. The first three lines of a record carry the episode label, the air
// date and the title; every following non-blank line is either a timestamped
// Note or one of the layout directives (`~~~~`, `!art`, `!artfig`).
package summary
