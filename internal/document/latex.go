package document

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"nasum/internal/markup"
	"nasum/internal/summary"
)

//go:embed templates/*
var templateFS embed.FS

var preambleTemplate = template.Must(
	template.New("preamble.tex").
		Delims("<<", ">>").
		Funcs(template.FuncMap{"tex": markup.LaTeX.Escape}).
		ParseFS(templateFS, "templates/preamble.tex"),
)

// ArtworkLocator reports where an episode's artwork lives, if anywhere.
type ArtworkLocator interface {
	Lookup(number string) (path string, ok bool)
}

// LaTeXOptions controls the typeset document.
type LaTeXOptions struct {
	Title  string
	Author string
	// PlayerURL is the base for timecode links.
	PlayerURL string
	// LinkMinEpisode is the first episode whose timecodes link to the player.
	// Zero disables the links.
	LinkMinEpisode float64
	Transducer     *markup.Transducer
	// Artwork is consulted for records carrying an artwork directive. Nil
	// disables artwork.
	Artwork ArtworkLocator
}

func (o LaTeXOptions) transducer() *markup.Transducer {
	if o.Transducer != nil {
		return o.Transducer
	}
	return markup.New(markup.Options{ListenURL: o.PlayerURL})
}

// WriteLaTeX writes the complete document for records, which must be in
// source order. Sections appear newest first.
func WriteLaTeX(w io.Writer, records []summary.Record, opts LaTeXOptions) error {
	var buf bytes.Buffer
	if err := writePreamble(&buf, opts); err != nil {
		return err
	}
	buf.WriteString("\\begin{document}\n")
	tr := opts.transducer()
	for _, record := range summary.Reverse(records) {
		writeSection(&buf, record, opts, tr)
	}
	buf.WriteString("\\end{document}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteTitlePage writes the companion title page document. It shares the
// preamble so fonts and metadata match the main document.
func WriteTitlePage(w io.Writer, opts LaTeXOptions) error {
	var buf bytes.Buffer
	if err := writePreamble(&buf, opts); err != nil {
		return err
	}
	buf.WriteString("\\begin{document}\n\\maketitle\n\\end{document}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writePreamble(buf *bytes.Buffer, opts LaTeXOptions) error {
	data := struct{ Title, Author string }{Title: opts.Title, Author: opts.Author}
	if err := preambleTemplate.Execute(buf, data); err != nil {
		return fmt.Errorf("render preamble: %w", err)
	}
	return nil
}

func writeSection(buf *bytes.Buffer, record summary.Record, opts LaTeXOptions, tr *markup.Transducer) {
	title := tr.Render(record.Title, markup.LaTeX)
	fmt.Fprintf(buf, "\\renewcommand{\\thesection}{%s}\n", record.Number)
	fmt.Fprintf(buf, "\\section[%s]{%s \\small{(%s)}}\n", title, title, markup.LaTeX.Escape(record.Date))

	notes := record.Notes()
	artPath, placement, hasArt := locateArtwork(record, opts.Artwork)
	if hasArt && len(notes) == 0 {
		placement = summary.PlacementFigure
	}
	if hasArt && placement == summary.PlacementMargin {
		fmt.Fprintf(buf, "\\artmargin{%s}\n", texPath(artPath))
	}

	if len(notes) > 0 {
		buf.WriteString("\\begin{itemize}\n")
		for _, note := range notes {
			fmt.Fprintf(buf, "\\item[%s]%s\n", timecodeLabel(record, note.Timecode, opts), tr.Render(note.Text, markup.LaTeX))
		}
		buf.WriteString("\\end{itemize}\n")
	}

	if hasArt && placement == summary.PlacementFigure {
		fmt.Fprintf(buf, "\\artfigure{%s}\n", texPath(artPath))
	}

	if record.SuppressBreak() {
		buf.WriteString("\\bigskip\n")
	} else {
		buf.WriteString("\\newpage\n")
	}
}

var (
	timecodePattern  = regexp.MustCompile(`^\d+:\d\d:\d\d$`)
	crossRefTimecode = regexp.MustCompile(`^(\d+(?:\.\d+)?)@(\d+:\d\d:\d\d)$`)
)

func timecodeLabel(record summary.Record, timecode string, opts LaTeXOptions) string {
	label := `\mono{` + markup.LaTeX.Escape(timecode) + `}`
	if opts.LinkMinEpisode <= 0 || opts.PlayerURL == "" || record.NumberValue() < opts.LinkMinEpisode {
		return label
	}
	episode, offset := record.Number, timecode
	if m := crossRefTimecode.FindStringSubmatch(timecode); m != nil {
		episode, offset = m[1], m[2]
	} else if !timecodePattern.MatchString(timecode) {
		return label
	}
	open, close := markup.LaTeX.Link(markup.ListenURL(opts.PlayerURL, episode, offset))
	return open + label + close
}

func locateArtwork(record summary.Record, locator ArtworkLocator) (string, summary.ArtworkPlacement, bool) {
	placement, ok := record.Artwork()
	if !ok || locator == nil {
		return "", placement, false
	}
	path, found := locator.Lookup(record.Number)
	if !found {
		return "", placement, false
	}
	return path, placement, true
}

// texPath prepares a file path for \includegraphics.
func texPath(path string) string {
	path = filepath.ToSlash(path)
	if strings.ContainsAny(path, " #%") {
		return `"` + strings.NewReplacer("#", `\#`, "%", `\%`).Replace(path) + `"`
	}
	return path
}
