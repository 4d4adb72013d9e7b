package config

const (
	defaultInputFile          = "NASummaries.txt"
	defaultOutputDir          = "na"
	defaultLaTeXFile          = "NASummaries.tex"
	defaultSiteBaseURL        = "http://www.blugs.com/na/"
	defaultSiteTitle          = "No Agenda summaries"
	defaultHomeURL            = "http://noagendashow.com"
	defaultShowNotesURL       = "http://{n}.nashownotes.com"
	defaultPDFName            = "NASummaries.pdf"
	defaultChangeFreq         = "daily"
	defaultDocumentTitle      = "No Agenda Summaries"
	defaultDocumentAuthor     = "Sir Ludark Babark Fudgefountain, K8TIY"
	defaultPlayerBaseURL      = "https://www.noagendaplayer.com/listen"
	defaultArtworkDir         = "art"
	defaultArtworkExtension   = ".jpg"
	defaultArtworkTimeout     = 30
	defaultXeLaTeX            = "xelatex"
	defaultPDFMerge           = "pdfunite"
	defaultRenderTimeout      = 600
	defaultRsync              = "rsync"
	defaultGit                = "git"
	defaultGitMessage         = "Update summaries"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultIntroMarkdown      = "PDF of all show summaries [here](NASummaries.pdf).\n\nOriginal source files and tools, plus notes on philosophy and schedule, are on [GitHub](https://github.com/K8TIY/NASummaries)."
	defaultUploadDestination  = ""
	defaultArtworkSourceURL   = ""
	defaultPlayerLinkFromShow = 0
)

var (
	defaultHighlights     = []string{"CotD", "PPck"}
	defaultUploadExcludes = []string{".DS_Store", ".nasum.lock"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputFile: defaultInputFile,
			OutputDir: defaultOutputDir,
			LaTeXFile: defaultLaTeXFile,
		},
		Site: Site{
			BaseURL:       defaultSiteBaseURL,
			Title:         defaultSiteTitle,
			HomeURL:       defaultHomeURL,
			ShowNotesURL:  defaultShowNotesURL,
			IntroMarkdown: defaultIntroMarkdown,
			PDFName:       defaultPDFName,
			ChangeFreq:    defaultChangeFreq,
		},
		Document: Document{
			Title:     defaultDocumentTitle,
			Author:    defaultDocumentAuthor,
			TitlePage: true,
		},
		Player: Player{
			BaseURL:        defaultPlayerBaseURL,
			LinkMinEpisode: defaultPlayerLinkFromShow,
		},
		Markup: Markup{
			Highlights: append([]string(nil), defaultHighlights...),
		},
		Artwork: Artwork{
			Dir:            defaultArtworkDir,
			Extension:      defaultArtworkExtension,
			SourceURL:      defaultArtworkSourceURL,
			TimeoutSeconds: defaultArtworkTimeout,
		},
		Render: Render{
			XeLaTeX:        defaultXeLaTeX,
			PDFMerge:       defaultPDFMerge,
			TimeoutSeconds: defaultRenderTimeout,
		},
		Upload: Upload{
			Destination: defaultUploadDestination,
			Rsync:       defaultRsync,
			Excludes:    append([]string(nil), defaultUploadExcludes...),
		},
		Git: Git{
			Binary:  defaultGit,
			RepoDir: ".",
			Message: defaultGitMessage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
