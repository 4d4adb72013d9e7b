// Package catalog lists and searches parsed episodes for the command line.
package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"nasum/internal/summary"
)

// Entry is one row of the episode listing.
type Entry struct {
	Number        string `json:"number"`
	Label         string `json:"label"`
	Date          string `json:"date"`
	Title         string `json:"title"`
	Notes         int    `json:"notes"`
	Artwork       bool   `json:"artwork"`
	SuppressBreak bool   `json:"suppress_break"`
}

// Summaries lists records newest first.
func Summaries(records []summary.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, record := range summary.Reverse(records) {
		_, art := record.Artwork()
		entries = append(entries, Entry{
			Number:        record.Number,
			Label:         record.Label,
			Date:          record.ISODate(),
			Title:         record.Title,
			Notes:         len(record.Notes()),
			Artwork:       art,
			SuppressBreak: record.SuppressBreak(),
		})
	}
	return entries
}

// Match is one search hit. Timecode and Text are empty when the hit is the
// episode heading itself.
type Match struct {
	Number   string `json:"number"`
	Title    string `json:"title"`
	Timecode string `json:"timecode,omitempty"`
	Text     string `json:"text,omitempty"`
	Score    int    `json:"score"`
}

type candidate struct {
	number   string
	title    string
	timecode string
	text     string
}

type candidates []candidate

func (c candidates) String(i int) string {
	parts := []string{c[i].number, c[i].title}
	if c[i].timecode != "" {
		parts = append(parts, c[i].timecode, c[i].text)
	}
	return strings.Join(parts, " ")
}

func (c candidates) Len() int { return len(c) }

// Search fuzzy-matches query against every note, prefixed with its episode
// number and title, and returns the best matches first. Episodes without
// notes are matched on their heading. A limit <= 0 returns every match.
func Search(records []summary.Record, query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var pool candidates
	for _, record := range summary.Reverse(records) {
		notes := record.Notes()
		if len(notes) == 0 {
			pool = append(pool, candidate{number: record.Number, title: record.Title})
			continue
		}
		for _, note := range notes {
			pool = append(pool, candidate{
				number:   record.Number,
				title:    record.Title,
				timecode: note.Timecode,
				text:     note.Text,
			})
		}
	}

	found := fuzzy.FindFrom(query, pool)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	matches := make([]Match, 0, len(found))
	for _, hit := range found {
		c := pool[hit.Index]
		matches = append(matches, Match{
			Number:   c.number,
			Title:    c.title,
			Timecode: c.timecode,
			Text:     c.text,
			Score:    hit.Score,
		})
	}
	return matches
}
