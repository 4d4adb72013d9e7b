// Package markup translates the summary log's inline markup into LaTeX and
// HTML.
//
// Text is processed as a list of segments. Raw segments hold unprocessed
// source text; safe segments hold markup already produced for the target
// grammar. Each rule is an independent pass that only matches inside raw
// segments, so emitted markup is never re-matched. The final pass escapes the
// remaining raw text for the grammar.
//
// Nested or overlapping markers are not supported: the first rule that
// matches wins, and each rule takes the leftmost non-overlapping matches.
// Markers that never close pass through literally.
package markup
