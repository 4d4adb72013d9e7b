package summary

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformedRecord marks a record chunk that lacks its header lines.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError identifies the chunk that failed to parse.
type RecordError struct {
	Index  int
	Line   int
	Label  string
	Reason string
}

func (e *RecordError) Error() string {
	label := e.Label
	if label == "" {
		label = "<empty>"
	}
	return fmt.Sprintf("record %d (line %d, %q): %s", e.Index+1, e.Line, label, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

var numberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?`)

// Records returns the records of text in source order. Each range re-parses
// text, so the sequence can be iterated any number of times. Iteration stops
// after the first malformed record, which is yielded as an error.
func Records(text string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		lines := strings.Split(normalize(text), "\n")
		index := 0
		for start := 0; start < len(lines); {
			if lines[start] == "" {
				start++
				continue
			}
			end := start
			for end < len(lines) && lines[end] != "" {
				end++
			}
			if blankChunk(lines[start:end]) {
				start = end
				continue
			}
			record, err := parseChunk(lines[start:end], start+1, index)
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(record, nil) {
				return
			}
			index++
			start = end
		}
	}
}

// Parse collects every record of text, failing on the first malformed one.
func Parse(text string) ([]Record, error) {
	var records []Record
	for record, err := range Records(text) {
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseFile reads and parses the log at path.
func ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary log: %w", err)
	}
	return Parse(string(data))
}

// Reverse returns a newest-first copy of records.
func Reverse(records []Record) []Record {
	out := make([]Record, len(records))
	for i, record := range records {
		out[len(records)-1-i] = record
	}
	return out
}

// DuplicateNumbers lists episode numbers that occur more than once, in order
// of their second occurrence.
func DuplicateNumbers(records []Record) []string {
	seen := make(map[string]int, len(records))
	var dupes []string
	for _, record := range records {
		seen[record.Number]++
		if seen[record.Number] == 2 {
			dupes = append(dupes, record.Number)
		}
	}
	return dupes
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

func blankChunk(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

func parseChunk(lines []string, firstLine, index int) (Record, error) {
	label := strings.TrimSpace(lines[0])
	fail := func(reason string) error {
		return &RecordError{Index: index, Line: firstLine, Label: label, Reason: reason}
	}
	if len(lines) < 3 {
		return Record{}, fail(fmt.Sprintf("expected number, date and title lines, found %d line(s)", len(lines)))
	}
	number := numberPattern.FindString(label)
	if number == "" {
		return Record{}, fail("label has no leading episode number")
	}
	date := strings.TrimSpace(lines[1])
	title := strings.TrimSpace(lines[2])
	if date == "" || title == "" {
		return Record{}, fail("date and title lines must not be blank")
	}

	record := Record{
		Label:  label,
		Number: number,
		Date:   date,
		Title:  title,
		Line:   firstLine,
		Index:  index,
		Items:  make([]Item, 0, len(lines)-3),
	}
	for _, line := range lines[3:] {
		if item, ok := parseItem(line); ok {
			record.Items = append(record.Items, item)
		}
	}
	return record, nil
}

func parseItem(line string) (Item, bool) {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return Item{}, false
	case SentinelNoBreak:
		return Item{Kind: ItemPageBreakDirective}, true
	case SentinelArtwork:
		return Item{Kind: ItemArtworkDirective, Placement: PlacementMargin}, true
	case SentinelArtworkFig:
		return Item{Kind: ItemArtworkDirective, Placement: PlacementFigure}, true
	}
	timecode, text := trimmed, ""
	if i := strings.IndexFunc(trimmed, unicode.IsSpace); i >= 0 {
		timecode, text = trimmed[:i], strings.TrimLeftFunc(trimmed[i:], unicode.IsSpace)
	}
	return Item{Kind: ItemNote, Note: Note{Timecode: timecode, Text: text}}, true
}
