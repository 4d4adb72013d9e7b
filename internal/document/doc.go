// Package document assembles whole artifacts from parsed records: the XeLaTeX
// source with its companion title page, and the web site made of one page per
// episode, an index page and a sitemap.
//
// Records are always presented newest first. Note text and titles go through
// the markup transducer for the matching grammar.
package document
