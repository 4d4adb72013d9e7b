package summary

import (
	"strconv"
	"strings"
	"time"
)

// ItemKind discriminates the entries of a record's item list.
type ItemKind int

const (
	// ItemNote is a timestamped annotation.
	ItemNote ItemKind = iota
	// ItemPageBreakDirective suppresses the page break after the record.
	ItemPageBreakDirective
	// ItemArtworkDirective marks that the episode has artwork.
	ItemArtworkDirective
)

func (k ItemKind) String() string {
	switch k {
	case ItemNote:
		return "note"
	case ItemPageBreakDirective:
		return "page_break"
	case ItemArtworkDirective:
		return "artwork"
	default:
		return "unknown"
	}
}

// ArtworkPlacement selects where the typeset document places episode artwork.
type ArtworkPlacement int

const (
	// PlacementMargin puts a thumbnail beside the section heading.
	PlacementMargin ArtworkPlacement = iota
	// PlacementFigure defers the artwork to a full-width figure after the notes.
	PlacementFigure
)

func (p ArtworkPlacement) String() string {
	if p == PlacementFigure {
		return "figure"
	}
	return "margin"
}

// Sentinel lines recognised as directives.
const (
	SentinelNoBreak    = "~~~~"
	SentinelArtwork    = "!art"
	SentinelArtworkFig = "!artfig"
)

// Note is one timestamped annotation.
type Note struct {
	Timecode string
	Text     string
}

// Item is a tagged entry of a record: a Note or a directive. Placement is only
// meaningful for artwork directives.
type Item struct {
	Kind      ItemKind
	Note      Note
	Placement ArtworkPlacement
}

// Record is one parsed episode.
type Record struct {
	Label  string
	Number string
	Date   string
	Title  string
	Items  []Item
	// Line is the 1-based source line of the label.
	Line int
	// Index is the position of the record in source order.
	Index int
}

// Notes returns the record's notes in source order, skipping directives.
func (r Record) Notes() []Note {
	notes := make([]Note, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Kind == ItemNote {
			notes = append(notes, item.Note)
		}
	}
	return notes
}

// SuppressBreak reports whether the record carries the page-break-suppress directive.
func (r Record) SuppressBreak() bool {
	for _, item := range r.Items {
		if item.Kind == ItemPageBreakDirective {
			return true
		}
	}
	return false
}

// Artwork reports whether the record carries an artwork directive and where
// the artwork goes. When several directives are present the last one wins.
func (r Record) Artwork() (ArtworkPlacement, bool) {
	var (
		placement ArtworkPlacement
		found     bool
	)
	for _, item := range r.Items {
		if item.Kind == ItemArtworkDirective {
			placement = item.Placement
			found = true
		}
	}
	return placement, found
}

// NumberValue returns the numeric value of the episode number.
func (r Record) NumberValue() float64 {
	value, err := strconv.ParseFloat(r.Number, 64)
	if err != nil {
		return 0
	}
	return value
}

var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/06",
}

// ParseDate interprets the free-form air dates found in the log.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ISODate returns the air date as YYYY-MM-DD, or the raw date when it cannot
// be parsed.
func (r Record) ISODate() string {
	parsed, ok := ParseDate(r.Date)
	if !ok {
		return r.Date
	}
	return parsed.Format("2006-01-02")
}
