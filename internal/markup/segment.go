package markup

import (
	"regexp"
	"strings"
)

type segment struct {
	text string
	safe bool
}

func raw(text string) segment { return segment{text: text} }

func safe(text string) segment { return segment{text: text, safe: true} }

// literal escapes text now so later passes leave it alone.
func literal(g Grammar, text string) segment { return safe(g.Escape(text)) }

func wrap(open, close string, inner ...segment) []segment {
	out := make([]segment, 0, len(inner)+2)
	out = append(out, safe(open))
	out = append(out, inner...)
	return append(out, safe(close))
}

func appendRaw(out []segment, text string) []segment {
	if text == "" {
		return out
	}
	return append(out, raw(text))
}

// Safe segments are stood in for by one rune each from Supplementary Private
// Use Area-A while a rule matches, so markers may enclose markup emitted by
// earlier rules.
const (
	holeBase = 0xF0000
	holeMax  = 0xFFFFD
)

func isHole(r rune) bool { return r >= holeBase && r <= holeMax }

// rewrite replaces every match of re with the segments produced by fn. fn
// receives the full match followed by its submatches; placeholders inside
// them are restored when fn's segments are spliced back.
func rewrite(segs []segment, re *regexp.Regexp, fn func(groups []string) []segment) []segment {
	var (
		view strings.Builder
		held []segment
	)
	for _, seg := range segs {
		if seg.safe {
			view.WriteRune(rune(holeBase + len(held)))
			held = append(held, seg)
			continue
		}
		if strings.ContainsFunc(seg.text, isHole) || len(held) > holeMax-holeBase {
			return rewriteEach(segs, re, fn)
		}
		view.WriteString(seg.text)
	}

	text := view.String()
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return segs
	}
	out := make([]segment, 0, len(segs)+len(matches)*3)
	last := 0
	for _, loc := range matches {
		out = restore(out, raw(text[last:loc[0]]), held)
		for _, seg := range fn(submatches(text, loc)) {
			out = restore(out, seg, held)
		}
		last = loc[1]
	}
	return restore(out, raw(text[last:]), held)
}

// rewriteEach matches inside each raw segment on its own. It is used when
// the source text itself contains placeholder runes.
func rewriteEach(segs []segment, re *regexp.Regexp, fn func(groups []string) []segment) []segment {
	out := make([]segment, 0, len(segs))
	for _, seg := range segs {
		if seg.safe {
			out = append(out, seg)
			continue
		}
		matches := re.FindAllStringSubmatchIndex(seg.text, -1)
		last := 0
		for _, loc := range matches {
			out = appendRaw(out, seg.text[last:loc[0]])
			out = append(out, fn(submatches(seg.text, loc))...)
			last = loc[1]
		}
		out = appendRaw(out, seg.text[last:])
	}
	return out
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}

// restore appends seg to out, putting held segments back in place of their
// placeholders. Holes inside raw text split it; holes inside safe text are
// substituted inline.
func restore(out []segment, seg segment, held []segment) []segment {
	if !strings.ContainsFunc(seg.text, isHole) {
		if seg.safe {
			return append(out, seg)
		}
		return appendRaw(out, seg.text)
	}
	if seg.safe {
		var b strings.Builder
		for _, r := range seg.text {
			if isHole(r) {
				b.WriteString(held[r-holeBase].text)
				continue
			}
			b.WriteRune(r)
		}
		return append(out, safe(b.String()))
	}
	start := 0
	for i, r := range seg.text {
		if !isHole(r) {
			continue
		}
		out = appendRaw(out, seg.text[start:i])
		out = append(out, held[r-holeBase])
		start = i + len(string(r))
	}
	return appendRaw(out, seg.text[start:])
}

// flatten escapes the remaining raw text and joins everything.
func flatten(segs []segment, g Grammar) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.safe {
			b.WriteString(seg.text)
		} else {
			b.WriteString(g.Escape(seg.text))
		}
	}
	return b.String()
}
