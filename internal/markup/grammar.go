package markup

import (
	"fmt"
	"html"
	"strings"
)

// Token is a fixed piece of target markup with no inner text.
type Token int

const (
	TokenLineBreak Token = iota
	TokenCensor
	TokenBlank
	TokenPlaceholder
	TokenOpenQuote
	TokenCloseQuote
	TokenFractionBar
)

// Span is a styled run that wraps inner text.
type Span int

const (
	SpanStrong Span = iota
	SpanLight
	SpanStrike
	SpanCode
	SpanAltMono
	SpanAltScript
	SpanMath
	SpanCJK
	SpanSubscript
	SpanSuperscript
	SpanFraction
	SpanHighlight
)

// Grammar renders markup pieces for one output language.
type Grammar interface {
	Name() string
	// Escape makes raw text literal in the target language.
	Escape(text string) string
	Token(tok Token) string
	// Primes renders n prime marks.
	Primes(n int) string
	Span(s Span) (open, close string)
	Script(s Script) (open, close string)
	// Link wraps a label in a hyperlink to url.
	Link(url string) (open, close string)
}

var (
	// LaTeX targets XeLaTeX with the commands defined by the document preamble.
	LaTeX Grammar = latexGrammar{}
	// HTML targets the episode pages and their stylesheet.
	HTML Grammar = htmlGrammar{}
)

// Lookup returns the grammar with the given name.
func Lookup(name string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latex", "tex":
		return LaTeX, nil
	case "html":
		return HTML, nil
	default:
		return nil, fmt.Errorf("unknown grammar %q (want latex or html)", name)
	}
}

type latexGrammar struct{}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`$`, `\$`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	`[`, `{[}`,
	`]`, `{]}`,
)

var latexURLEscaper = strings.NewReplacer(
	`\`, `\\`,
	`#`, `\#`,
	`%`, `\%`,
	`{`, `\{`,
	`}`, `\}`,
)

func (latexGrammar) Name() string { return "latex" }

func (latexGrammar) Escape(text string) string { return latexEscaper.Replace(text) }

func (latexGrammar) Token(tok Token) string {
	switch tok {
	case TokenLineBreak:
		return `\\`
	case TokenCensor:
		return `\censor{abcdefg}`
	case TokenBlank:
		return `\underline{\hspace{4em}}`
	case TokenPlaceholder:
		return `\ `
	case TokenOpenQuote:
		return "``"
	case TokenCloseQuote:
		return "''"
	case TokenFractionBar:
		return "}{"
	default:
		return ""
	}
}

func (latexGrammar) Primes(n int) string {
	return "$" + strings.Repeat("'", n) + "$"
}

func (latexGrammar) Span(s Span) (string, string) {
	switch s {
	case SpanStrong:
		return `\textbf{`, "}"
	case SpanLight:
		return `\textit{`, "}"
	case SpanStrike:
		return `\sout{`, "}"
	case SpanCode:
		return `\texttt{`, "}"
	case SpanAltMono:
		return `\scmono{`, "}"
	case SpanAltScript:
		return `\doulos{`, "}"
	case SpanMath:
		return `$\mathrm{`, "}$"
	case SpanCJK:
		return `\cjk{`, "}"
	case SpanSubscript:
		return `\textsubscript{`, "}"
	case SpanSuperscript:
		return `\textsuperscript{`, "}"
	case SpanFraction:
		return `\textfrac{`, "}"
	case SpanHighlight:
		return `\highlight{`, "}"
	default:
		return "", ""
	}
}

func (latexGrammar) Script(s Script) (string, string) {
	switch s {
	case ScriptCyrillic, ScriptGreek:
		return `\doulos{`, "}"
	case ScriptCherokee:
		return `\cherokee{`, "}"
	case ScriptCurrency:
		return `\symbols{`, "}"
	case ScriptDingbat:
		return `\dingbats{`, "}"
	case ScriptDevanagari:
		return `\devanagari{`, "}"
	default:
		return "", ""
	}
}

func (latexGrammar) Link(url string) (string, string) {
	return `\href{` + latexURLEscaper.Replace(url) + "}{", "}"
}

type htmlGrammar struct{}

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

func (htmlGrammar) Name() string { return "html" }

func (htmlGrammar) Escape(text string) string { return htmlEscaper.Replace(text) }

func (htmlGrammar) Token(tok Token) string {
	switch tok {
	case TokenLineBreak:
		return "<br/>"
	case TokenCensor:
		return `<span class="censor">&nbsp;&nbsp;&nbsp;&nbsp;</span>`
	case TokenBlank:
		return `<span class="blank">&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;</span>`
	case TokenPlaceholder:
		return "&nbsp;"
	case TokenOpenQuote:
		return "&ldquo;"
	case TokenCloseQuote:
		return "&rdquo;"
	case TokenFractionBar:
		return "</sup>&frasl;<sub>"
	default:
		return ""
	}
}

func (htmlGrammar) Primes(n int) string {
	switch n {
	case 1:
		return "&prime;"
	case 2:
		return "&Prime;"
	case 3:
		return "&tprime;"
	default:
		return strings.Repeat("&prime;", n)
	}
}

func (htmlGrammar) Span(s Span) (string, string) {
	switch s {
	case SpanStrong:
		return "<b>", "</b>"
	case SpanLight:
		return "<i>", "</i>"
	case SpanStrike:
		return "<s>", "</s>"
	case SpanCode:
		return "<code>", "</code>"
	case SpanAltMono:
		return `<code class="alt">`, "</code>"
	case SpanAltScript:
		return `<span class="ipa">`, "</span>"
	case SpanMath:
		return `<span class="math">`, "</span>"
	case SpanCJK:
		return `<span class="cjk">`, "</span>"
	case SpanSubscript:
		return "<sub>", "</sub>"
	case SpanSuperscript:
		return "<sup>", "</sup>"
	case SpanFraction:
		return `<span class="frac"><sup>`, "</sub></span>"
	case SpanHighlight:
		return `<span class="highlight">`, "</span>"
	default:
		return "", ""
	}
}

func (htmlGrammar) Script(s Script) (string, string) {
	if s == ScriptNone {
		return "", ""
	}
	return `<span class="script-` + s.String() + `">`, "</span>"
}

func (htmlGrammar) Link(url string) (string, string) {
	return `<a href="` + html.EscapeString(url) + `">`, "</a>"
}
