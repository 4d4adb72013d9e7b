package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeMarkup()
	if err := c.normalizeArtwork(); err != nil {
		return err
	}
	c.normalizeTools()
	if err := c.normalizeGit(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputFile) == "" {
		c.Paths.InputFile = defaultInputFile
	}
	if c.Paths.InputFile, err = expandPath(c.Paths.InputFile); err != nil {
		return fmt.Errorf("paths.input_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LaTeXFile) == "" {
		c.Paths.LaTeXFile = defaultLaTeXFile
	}
	if c.Paths.LaTeXFile, err = expandPath(c.Paths.LaTeXFile); err != nil {
		return fmt.Errorf("paths.latex_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.AssetsDir, err = expandPath(strings.TrimSpace(c.Paths.AssetsDir)); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.BaseURL = strings.TrimSpace(c.Site.BaseURL)
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = defaultSiteBaseURL
	}
	if !strings.HasSuffix(c.Site.BaseURL, "/") {
		c.Site.BaseURL += "/"
	}
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	if c.Site.Title == "" {
		c.Site.Title = defaultSiteTitle
	}
	c.Site.HomeURL = strings.TrimSpace(c.Site.HomeURL)
	c.Site.ShowNotesURL = strings.TrimSpace(c.Site.ShowNotesURL)
	c.Site.PDFName = strings.TrimSpace(c.Site.PDFName)
	if c.Site.PDFName == "" {
		c.Site.PDFName = defaultPDFName
	}
	c.Site.ChangeFreq = strings.ToLower(strings.TrimSpace(c.Site.ChangeFreq))
	if c.Site.ChangeFreq == "" {
		c.Site.ChangeFreq = defaultChangeFreq
	}
	c.Site.Stylesheet = strings.TrimSpace(c.Site.Stylesheet)
	c.Site.Icon = strings.TrimSpace(c.Site.Icon)
	c.Player.BaseURL = strings.TrimRight(strings.TrimSpace(c.Player.BaseURL), "/")
	if c.Player.BaseURL == "" {
		c.Player.BaseURL = defaultPlayerBaseURL
	}
}

func (c *Config) normalizeMarkup() {
	if len(c.Markup.Highlights) == 0 {
		return
	}
	out := make([]string, 0, len(c.Markup.Highlights))
	seen := make(map[string]struct{}, len(c.Markup.Highlights))
	for _, token := range c.Markup.Highlights {
		token = strings.Trim(strings.TrimSpace(token), "()")
		if token == "" {
			continue
		}
		if _, exists := seen[token]; exists {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	c.Markup.Highlights = out
}

func (c *Config) normalizeArtwork() error {
	var err error
	if strings.TrimSpace(c.Artwork.Dir) == "" {
		c.Artwork.Dir = defaultArtworkDir
	}
	if c.Artwork.Dir, err = expandPath(c.Artwork.Dir); err != nil {
		return fmt.Errorf("artwork.dir: %w", err)
	}
	c.Artwork.Extension = strings.TrimSpace(c.Artwork.Extension)
	if c.Artwork.Extension == "" {
		c.Artwork.Extension = defaultArtworkExtension
	}
	if !strings.HasPrefix(c.Artwork.Extension, ".") {
		c.Artwork.Extension = "." + c.Artwork.Extension
	}
	c.Artwork.SourceURL = strings.TrimSpace(c.Artwork.SourceURL)
	if c.Artwork.SourceURL == "" {
		if value, ok := os.LookupEnv("NASUM_ARTWORK_URL"); ok {
			c.Artwork.SourceURL = strings.TrimSpace(value)
		}
	}
	if c.Artwork.TimeoutSeconds <= 0 {
		c.Artwork.TimeoutSeconds = defaultArtworkTimeout
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Render.XeLaTeX = strings.TrimSpace(c.Render.XeLaTeX)
	if c.Render.XeLaTeX == "" {
		c.Render.XeLaTeX = defaultXeLaTeX
	}
	c.Render.PDFMerge = strings.TrimSpace(c.Render.PDFMerge)
	if c.Render.PDFMerge == "" {
		c.Render.PDFMerge = defaultPDFMerge
	}
	if c.Render.TimeoutSeconds <= 0 {
		c.Render.TimeoutSeconds = defaultRenderTimeout
	}
	c.Upload.Rsync = strings.TrimSpace(c.Upload.Rsync)
	if c.Upload.Rsync == "" {
		c.Upload.Rsync = defaultRsync
	}
	c.Upload.Destination = strings.TrimSpace(c.Upload.Destination)
	if c.Upload.Destination == "" {
		if value, ok := os.LookupEnv("NASUM_UPLOAD_DEST"); ok {
			c.Upload.Destination = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeGit() error {
	var err error
	c.Git.Binary = strings.TrimSpace(c.Git.Binary)
	if c.Git.Binary == "" {
		c.Git.Binary = defaultGit
	}
	if strings.TrimSpace(c.Git.RepoDir) == "" {
		c.Git.RepoDir = "."
	}
	if c.Git.RepoDir, err = expandPath(c.Git.RepoDir); err != nil {
		return fmt.Errorf("git.repo_dir: %w", err)
	}
	c.Git.Message = strings.TrimSpace(c.Git.Message)
	if c.Git.Message == "" {
		c.Git.Message = defaultGitMessage
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
