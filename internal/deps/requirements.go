package deps

import "nasum/internal/config"

// Features selects which build steps will run, so only their tools are
// required.
type Features struct {
	LaTeX     bool
	TitlePage bool
	Upload    bool
	Commit    bool
}

// Requirements lists the external programs used by the selected features.
// Tools for steps that will not run are reported as optional.
func Requirements(cfg *config.Config, features Features) []Requirement {
	return []Requirement{
		{
			Name:        "XeLaTeX",
			Command:     cfg.Render.XeLaTeX,
			Description: "Typesets the PDF document",
			Optional:    !features.LaTeX,
		},
		{
			Name:        "PDF merge",
			Command:     cfg.Render.PDFMerge,
			Description: "Prepends the title page to the PDF",
			Optional:    !(features.LaTeX && features.TitlePage),
		},
		{
			Name:        "rsync",
			Command:     cfg.Upload.Rsync,
			Description: "Uploads the output directory",
			Optional:    !features.Upload,
		},
		{
			Name:        "git",
			Command:     cfg.Git.Binary,
			Description: "Commits the summary log and outputs",
			Optional:    !features.Commit,
		},
	}
}
