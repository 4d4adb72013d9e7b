package pipeline

import (
	"log/slog"
	"time"

	"nasum/internal/artwork"
	"nasum/internal/render"
)

// Options selects which build steps run. With neither HTML nor LaTeX set
// both outputs are produced.
type Options struct {
	HTML  bool
	LaTeX bool
	// InputFile overrides paths.input_file when set.
	InputFile string
	// NoTitle skips the separate title page.
	NoTitle bool
	// FetchArtwork downloads missing artwork for records that request it.
	FetchArtwork bool
	// DeleteTeX removes the LaTeX source after a successful compile.
	DeleteTeX bool
	Upload    bool
	Commit    bool
	// DryRun writes local files but only records external commands and
	// downloads.
	DryRun bool

	Logger *slog.Logger
	// Executor runs external tools. Nil uses render.CommandExecutor, or a
	// render.DryRunExecutor when DryRun is set.
	Executor   render.Executor
	HTTPClient artwork.HTTPDoer
	// Now stamps the sitemap. Zero means time.Now.
	Now time.Time
}

func (o Options) outputs() (html, latex bool) {
	if !o.HTML && !o.LaTeX {
		return true, true
	}
	return o.HTML, o.LaTeX
}

// Result summarises a completed build.
type Result struct {
	RunID   string
	Records int
	// Duplicates lists episode numbers that appear more than once.
	Duplicates []string
	// Written lists every file the build wrote.
	Written []string
	PDF     string
	// Fetched lists episodes whose artwork was downloaded.
	Fetched []string
	// Commands holds the external commands a dry run skipped.
	Commands []render.Command
	Elapsed  time.Duration
}
