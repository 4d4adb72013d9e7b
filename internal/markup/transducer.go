package markup

import (
	"regexp"
	"strings"
)

// DefaultListenURL is the player used for cross-episode timestamp links.
const DefaultListenURL = "https://www.noagendaplayer.com/listen"

// DefaultHighlights are the parenthesised acronyms highlighted by default.
var DefaultHighlights = []string{"CotD", "PPck"}

// Options configures a Transducer.
type Options struct {
	// ListenURL is the player base for `N@H:MM:SS` links.
	ListenURL string
	// Highlights lists the acronyms recoloured when written as `(ABCD)`.
	Highlights []string
}

// Transducer applies the ordered markup rules.
type Transducer struct {
	listenURL string
	highlight *regexp.Regexp
	rules     []rule
}

type rule struct {
	name  string
	apply func(segs []segment, g Grammar) []segment
}

// New builds a Transducer. Empty options fall back to the defaults.
func New(opts Options) *Transducer {
	t := &Transducer{listenURL: strings.TrimRight(strings.TrimSpace(opts.ListenURL), "/")}
	if t.listenURL == "" {
		t.listenURL = DefaultListenURL
	}
	highlights := opts.Highlights
	if highlights == nil {
		highlights = DefaultHighlights
	}
	if len(highlights) > 0 {
		quoted := make([]string, 0, len(highlights))
		for _, token := range highlights {
			quoted = append(quoted, regexp.QuoteMeta(token))
		}
		t.highlight = regexp.MustCompile(`\((?:` + strings.Join(quoted, "|") + `)\)`)
	}
	t.rules = t.buildRules()
	return t
}

var defaultTransducer = New(Options{})

// Render translates text for g using the default options.
func Render(text string, g Grammar) string {
	return defaultTransducer.Render(text, g)
}

// Render translates text for g. It never fails: markers without a partner
// pass through as escaped literal text.
func (t *Transducer) Render(text string, g Grammar) string {
	if text == "" {
		return ""
	}
	segs := []segment{raw(text)}
	for _, r := range t.rules {
		segs = r.apply(segs, g)
	}
	return flatten(segs, g)
}

// Rules lists the rule names in application order.
func (t *Transducer) Rules() []string {
	names := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		names = append(names, r.name)
	}
	return names
}

// ListenURL returns the player URL for episode at timecode H:MM:SS.
func ListenURL(base, episode, timecode string) string {
	return strings.TrimRight(base, "/") + "/" + episode + "/" + strings.ReplaceAll(timecode, ":", "-")
}

var (
	whitespaceRun = regexp.MustCompile(`\s{2,}`)
	strongPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	lightPattern  = regexp.MustCompile(`\*(.+?)\*`)
	censorPattern = regexp.MustCompile(`~~~(.+?)~~~`)
	strikePattern = regexp.MustCompile(`~~(.+?)~~`)
	crossPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)@(\d+:\d\d:\d\d)`)
	timePattern   = regexp.MustCompile(`\d+:\d\d:\d\d`)
	altMonoPat    = regexp.MustCompile("``(.+?)``")
	codePattern   = regexp.MustCompile("`(.+?)`")
	altScriptPat  = regexp.MustCompile(`\[\[(\[*.+?\]*)\]\]`)
	placeholder   = regexp.MustCompile(`\[\]`)
	mathPattern   = regexp.MustCompile(`\{\{(.+?)\}\}`)
	blankPattern  = regexp.MustCompile(`____`)
	cjkPattern    = regexp.MustCompile(`__(.+?)__`)
	subPattern    = regexp.MustCompile(`<sub>(.+?)</sub>`)
	supPattern    = regexp.MustCompile(`<sup>(.+?)</sup>`)
	fracPattern   = regexp.MustCompile(`<frac>\s*([^/<]+?)\s*/\s*([^<]+?)\s*</frac>`)
	primePattern  = regexp.MustCompile(`\\('+)`)
)

func (t *Transducer) buildRules() []rule {
	return []rule{
		{"linebreak", tokenRule(whitespaceRun, TokenLineBreak)},
		{"emphasis", chain(spanRule(strongPattern, SpanStrong), spanRule(lightPattern, SpanLight))},
		{"censor", tokenRule(censorPattern, TokenCensor)},
		{"strike", spanRule(strikePattern, SpanStrike)},
		{"crosslink", t.crossLink},
		{"timestamp", verbatimRule(timePattern, SpanCode, 0)},
		{"code", chain(verbatimRule(altMonoPat, SpanAltMono, 1), verbatimRule(codePattern, SpanCode, 1))},
		{"altscript", chain(spanRule(altScriptPat, SpanAltScript), tokenRule(placeholder, TokenPlaceholder))},
		{"math", spanRule(mathPattern, SpanMath)},
		{"cjk", chain(tokenRule(blankPattern, TokenBlank), spanRule(cjkPattern, SpanCJK))},
		{"subsup", chain(spanRule(subPattern, SpanSubscript), spanRule(supPattern, SpanSuperscript))},
		{"fraction", fraction},
		{"prime", primes},
		{"script", scripts},
		{"quotes", quotes},
		{"highlight", t.highlights},
	}
}

func chain(passes ...func([]segment, Grammar) []segment) func([]segment, Grammar) []segment {
	return func(segs []segment, g Grammar) []segment {
		for _, pass := range passes {
			segs = pass(segs, g)
		}
		return segs
	}
}

func tokenRule(re *regexp.Regexp, tok Token) func([]segment, Grammar) []segment {
	return func(segs []segment, g Grammar) []segment {
		return rewrite(segs, re, func([]string) []segment {
			return []segment{safe(g.Token(tok))}
		})
	}
}

// spanRule wraps the first submatch, leaving it raw for later rules.
func spanRule(re *regexp.Regexp, span Span) func([]segment, Grammar) []segment {
	return func(segs []segment, g Grammar) []segment {
		open, close := g.Span(span)
		return rewrite(segs, re, func(groups []string) []segment {
			return wrap(open, close, raw(groups[1]))
		})
	}
}

// verbatimRule wraps a group as literal text that no later rule touches.
func verbatimRule(re *regexp.Regexp, span Span, group int) func([]segment, Grammar) []segment {
	return func(segs []segment, g Grammar) []segment {
		open, close := g.Span(span)
		return rewrite(segs, re, func(groups []string) []segment {
			return wrap(open, close, literal(g, groups[group]))
		})
	}
}

func (t *Transducer) crossLink(segs []segment, g Grammar) []segment {
	return rewrite(segs, crossPattern, func(groups []string) []segment {
		open, close := g.Link(ListenURL(t.listenURL, groups[1], groups[2]))
		return wrap(open, close, literal(g, groups[0]))
	})
}

func fraction(segs []segment, g Grammar) []segment {
	open, close := g.Span(SpanFraction)
	return rewrite(segs, fracPattern, func(groups []string) []segment {
		return []segment{
			safe(open), raw(groups[1]), safe(g.Token(TokenFractionBar)), raw(groups[2]), safe(close),
		}
	})
}

func primes(segs []segment, g Grammar) []segment {
	return rewrite(segs, primePattern, func(groups []string) []segment {
		return []segment{safe(g.Primes(len(groups[1])))}
	})
}

// scripts routes runs of characters from the font dispatch table into
// per-script spans.
func scripts(segs []segment, g Grammar) []segment {
	out := make([]segment, 0, len(segs))
	for _, seg := range segs {
		if seg.safe {
			out = append(out, seg)
			continue
		}
		start, current := 0, ScriptNone
		flush := func(end int) {
			text := seg.text[start:end]
			if current == ScriptNone {
				out = appendRaw(out, text)
				return
			}
			open, close := g.Script(current)
			out = append(out, wrap(open, close, literal(g, text))...)
		}
		for i, r := range seg.text {
			script := ScriptOf(r)
			if script == current {
				continue
			}
			flush(i)
			start, current = i, script
		}
		flush(len(seg.text))
	}
	return out
}

// quotes alternates straight double quotes between opening and closing
// glyphs across the whole line.
func quotes(segs []segment, g Grammar) []segment {
	out := make([]segment, 0, len(segs))
	open := false
	for _, seg := range segs {
		if seg.safe || !strings.Contains(seg.text, `"`) {
			out = append(out, seg)
			continue
		}
		rest := seg.text
		for {
			i := strings.IndexByte(rest, '"')
			if i < 0 {
				break
			}
			out = appendRaw(out, rest[:i])
			if open {
				out = append(out, safe(g.Token(TokenCloseQuote)))
			} else {
				out = append(out, safe(g.Token(TokenOpenQuote)))
			}
			open = !open
			rest = rest[i+1:]
		}
		out = appendRaw(out, rest)
	}
	return out
}

func (t *Transducer) highlights(segs []segment, g Grammar) []segment {
	if t.highlight == nil {
		return segs
	}
	open, close := g.Span(SpanHighlight)
	return rewrite(segs, t.highlight, func(groups []string) []segment {
		return wrap(open, close, literal(g, groups[0]))
	})
}
