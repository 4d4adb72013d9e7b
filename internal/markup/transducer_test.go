package markup_test

import (
	"strings"
	"testing"

	"nasum/internal/markup"
)

func TestRenderRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		html  string
		latex string
	}{
		{
			name:  "line break",
			input: "first  second",
			html:  "first<br/>second",
			latex: `first\\second`,
		},
		{
			name:  "emphasis",
			input: "**bold** and *light*",
			html:  "<b>bold</b> and <i>light</i>",
			latex: `\textbf{bold} and \textit{light}`,
		},
		{
			name:  "emphasis escapes inner text once",
			input: "**R&D**",
			html:  "<b>R&amp;D</b>",
			latex: `\textbf{R\&D}`,
		},
		{
			name:  "censor",
			input: "say ~~~secret~~~ now",
			html:  `say <span class="censor">&nbsp;&nbsp;&nbsp;&nbsp;</span> now`,
			latex: `say \censor{abcdefg} now`,
		},
		{
			name:  "strike",
			input: "~~gone~~",
			html:  "<s>gone</s>",
			latex: `\sout{gone}`,
		},
		{
			name:  "cross episode link",
			input: "see 45@1:02:03",
			html:  `see <a href="https://www.noagendaplayer.com/listen/45/1-02-03">45@1:02:03</a>`,
			latex: `see \href{https://www.noagendaplayer.com/listen/45/1-02-03}{45@1:02:03}`,
		},
		{
			name:  "bare timestamp",
			input: "at 1:02:03 mark",
			html:  "at <code>1:02:03</code> mark",
			latex: `at \texttt{1:02:03} mark`,
		},
		{
			name:  "code spans",
			input: "``mono`` and `co_de`",
			html:  `<code class="alt">mono</code> and <code>co_de</code>`,
			latex: `\scmono{mono} and \texttt{co\_de}`,
		},
		{
			name:  "alternate script and brackets",
			input: "[[ðə]] x [] y [z]",
			html:  `<span class="ipa">ðə</span> x &nbsp; y [z]`,
			latex: `\doulos{ðə} x \  y {[}z{]}`,
		},
		{
			name:  "math",
			input: "{{km}}",
			html:  `<span class="math">km</span>`,
			latex: `$\mathrm{km}$`,
		},
		{
			name:  "answer blank and cjk",
			input: "Fill ____ and __漢字__",
			html:  `Fill <span class="blank">&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;</span> and <span class="cjk">漢字</span>`,
			latex: `Fill \underline{\hspace{4em}} and \cjk{漢字}`,
		},
		{
			name:  "subscript and superscript",
			input: "H<sub>2</sub>O x<sup>2</sup>",
			html:  "H<sub>2</sub>O x<sup>2</sup>",
			latex: `H\textsubscript{2}O x\textsuperscript{2}`,
		},
		{
			name:  "fraction",
			input: "<frac>1/2</frac> cup",
			html:  `<span class="frac"><sup>1</sup>&frasl;<sub>2</sub></span> cup`,
			latex: `\textfrac{1}{2} cup`,
		},
		{
			name:  "primes",
			input: `5\'11\''`,
			html:  "5&prime;11&Prime;",
			latex: `5$'$11$''$`,
		},
		{
			name:  "cyrillic",
			input: "Привет world",
			html:  `<span class="script-cyrillic">Привет</span> world`,
			latex: `\doulos{Привет} world`,
		},
		{
			name:  "symbol blocks",
			input: "₿ and ✓",
			html:  `<span class="script-currency">₿</span> and <span class="script-dingbat">✓</span>`,
			latex: `\symbols{₿} and \dingbats{✓}`,
		},
		{
			name:  "cherokee and devanagari",
			input: "ᏣᎳᎩ नमस्ते",
			html:  `<span class="script-cherokee">ᏣᎳᎩ</span> <span class="script-devanagari">नमस्ते</span>`,
			latex: `\cherokee{ᏣᎳᎩ} \devanagari{नमस्ते}`,
		},
		{
			name:  "quotes",
			input: `He said "hi" and "bye"`,
			html:  "He said &ldquo;hi&rdquo; and &ldquo;bye&rdquo;",
			latex: "He said ``hi'' and ``bye''",
		},
		{
			name:  "highlight",
			input: "(CotD) great (XXXX)",
			html:  `<span class="highlight">(CotD)</span> great (XXXX)`,
			latex: `\highlight{(CotD)} great (XXXX)`,
		},
		{
			name:  "unmatched markers pass through",
			input: "**open ~~one",
			html:  "**open ~~one",
			latex: `**open \textasciitilde{}\textasciitilde{}one`,
		},
		{
			name:  "markers span earlier markup",
			input: "**big  deal**",
			html:  "<b>big<br/>deal</b>",
			latex: `\textbf{big\\deal}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Render(tt.input, markup.HTML); got != tt.html {
				t.Errorf("html:\n got %q\nwant %q", got, tt.html)
			}
			if got := markup.Render(tt.input, markup.LaTeX); got != tt.latex {
				t.Errorf("latex:\n got %q\nwant %q", got, tt.latex)
			}
		})
	}
}

func TestRenderIdentityModuloEscaping(t *testing.T) {
	inputs := []string{
		"Plain words only",
		"Fish & Chips <3 > everything",
		`50% of #1 costs $5 & {x} a_b ^ ~ [c] \`,
		"",
	}
	for _, input := range inputs {
		if got, want := markup.Render(input, markup.HTML), markup.HTML.Escape(input); got != want {
			t.Errorf("html %q: got %q, want %q", input, got, want)
		}
		if got, want := markup.Render(input, markup.LaTeX), markup.LaTeX.Escape(input); got != want {
			t.Errorf("latex %q: got %q, want %q", input, got, want)
		}
	}
}

func TestLaTeXEscape(t *testing.T) {
	got := markup.LaTeX.Escape(`50% of #1 costs $5 & {x} a_b ^ ~ [c] \`)
	want := `50\% of \#1 costs \$5 \& \{x\} a\_b \textasciicircum{} \textasciitilde{} {[}c{]} \textbackslash{}`
	if got != want {
		t.Fatalf("Escape:\n got %q\nwant %q", got, want)
	}
}

func TestQuotesAlternate(t *testing.T) {
	for n := 2; n <= 10; n += 2 {
		input := strings.Repeat(`x"`, n)
		out := markup.Render(input, markup.HTML)
		var seq []string
		for i := 0; i < len(out); {
			switch {
			case strings.HasPrefix(out[i:], "&ldquo;"):
				seq = append(seq, "open")
				i += len("&ldquo;")
			case strings.HasPrefix(out[i:], "&rdquo;"):
				seq = append(seq, "close")
				i += len("&rdquo;")
			default:
				i++
			}
		}
		if len(seq) != n {
			t.Fatalf("expected %d quote glyphs, got %d in %q", n, len(seq), out)
		}
		for i, glyph := range seq {
			want := "open"
			if i%2 == 1 {
				want = "close"
			}
			if glyph != want {
				t.Fatalf("glyph %d = %s, want %s (%q)", i, glyph, want, out)
			}
		}
	}
}

func TestQuotesAcrossMarkup(t *testing.T) {
	got := markup.Render(`"**bold**" "x"`, markup.LaTeX)
	want := "``\\textbf{bold}'' ``x''"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCensorNeverLeaks(t *testing.T) {
	inputs := []string{
		"~~~secret~~~",
		"before ~~~secret~~~ after",
		"~~~**secret**~~~",
		"~~~top  secret~~~",
		"~~~secret 1:02:03~~~",
		"~~~\"secret\"~~~ and ~~~secret~~~",
	}
	for _, input := range inputs {
		for _, g := range []markup.Grammar{markup.HTML, markup.LaTeX} {
			if out := markup.Render(input, g); strings.Contains(out, "secret") {
				t.Errorf("%s output for %q leaks censored text: %q", g.Name(), input, out)
			}
		}
	}
}

func TestTransducerOptions(t *testing.T) {
	tr := markup.New(markup.Options{
		ListenURL:  "http://player.example/listen/",
		Highlights: []string{"ABCD"},
	})
	got := tr.Render("(ABCD) (CotD) 7@0:00:05", markup.HTML)
	want := `<span class="highlight">(ABCD)</span> (CotD) <a href="http://player.example/listen/7/0-00-05">7@0:00:05</a>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	none := markup.New(markup.Options{Highlights: []string{}})
	if got := none.Render("(CotD)", markup.HTML); got != "(CotD)" {
		t.Fatalf("expected no highlight with empty set, got %q", got)
	}
}

func TestRulesOrder(t *testing.T) {
	names := markup.New(markup.Options{}).Rules()
	want := []string{
		"linebreak", "emphasis", "censor", "strike", "crosslink", "timestamp", "code",
		"altscript", "math", "cjk", "subsup", "fraction", "prime", "script", "quotes", "highlight",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("rules = %v, want %v", names, want)
	}
}

func TestLookup(t *testing.T) {
	for name, want := range map[string]string{"latex": "latex", "TeX": "latex", " html ": "html"} {
		g, err := markup.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) returned error: %v", name, err)
		}
		if g.Name() != want {
			t.Fatalf("Lookup(%q) = %s, want %s", name, g.Name(), want)
		}
	}
	if _, err := markup.Lookup("rtf"); err == nil {
		t.Fatal("expected error for unknown grammar")
	}
}

func TestListenURL(t *testing.T) {
	if got := markup.ListenURL("https://p/listen/", "45", "1:02:03"); got != "https://p/listen/45/1-02-03" {
		t.Fatalf("ListenURL = %q", got)
	}
}

func TestScriptOf(t *testing.T) {
	tests := map[rune]markup.Script{
		'a': markup.ScriptNone,
		'ж': markup.ScriptCyrillic,
		'λ': markup.ScriptGreek,
		'Ꭰ': markup.ScriptCherokee,
		'€': markup.ScriptCurrency,
		'✈': markup.ScriptDingbat,
		'क': markup.ScriptDevanagari,
		'漢': markup.ScriptNone,
	}
	for r, want := range tests {
		if got := markup.ScriptOf(r); got != want {
			t.Errorf("ScriptOf(%q) = %s, want %s", r, got, want)
		}
	}
}
