package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input and output locations.
type Paths struct {
	InputFile string `toml:"input_file"`
	OutputDir string `toml:"output_dir"`
	LaTeXFile string `toml:"latex_file"`
	LogDir    string `toml:"log_dir"`
	AssetsDir string `toml:"assets_dir"`
}

// Site contains settings for the generated web pages.
type Site struct {
	BaseURL       string `toml:"base_url"`
	Title         string `toml:"title"`
	HomeURL       string `toml:"home_url"`
	ShowNotesURL  string `toml:"show_notes_url"`
	IntroMarkdown string `toml:"intro_markdown"`
	PDFName       string `toml:"pdf_name"`
	ChangeFreq    string `toml:"change_freq"`
	Stylesheet    string `toml:"stylesheet"`
	Icon          string `toml:"icon"`
}

// Document contains settings for the typeset document.
type Document struct {
	Title     string `toml:"title"`
	Author    string `toml:"author"`
	TitlePage bool   `toml:"title_page"`
}

// Player contains settings for links into the external episode player.
type Player struct {
	BaseURL string `toml:"base_url"`
	// LinkMinEpisode is the first episode number whose timecodes link to the
	// player in the typeset document. 0 disables timecode links.
	LinkMinEpisode float64 `toml:"link_min_episode"`
}

// Markup contains settings for the inline markup translator.
type Markup struct {
	Highlights []string `toml:"highlights"`
}

// Artwork contains settings for episode artwork lookup and download.
type Artwork struct {
	Enabled        bool   `toml:"enabled"`
	Dir            string `toml:"dir"`
	Extension      string `toml:"extension"`
	SourceURL      string `toml:"source_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Render contains settings for the external typesetting tools.
type Render struct {
	XeLaTeX             string `toml:"xelatex"`
	PDFMerge            string `toml:"pdf_merge"`
	DeleteIntermediates bool   `toml:"delete_intermediates"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
}

// Upload contains settings for publishing the output directory.
type Upload struct {
	Enabled     bool     `toml:"enabled"`
	Destination string   `toml:"destination"`
	Rsync       string   `toml:"rsync"`
	Excludes    []string `toml:"excludes"`
}

// Git contains settings for committing the source log and outputs.
type Git struct {
	Enabled bool   `toml:"enabled"`
	Binary  string `toml:"binary"`
	RepoDir string `toml:"repo_dir"`
	Message string `toml:"message"`
	Push    bool   `toml:"push"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for nasum.
//
// Configuration sections by subsystem:
//   - Paths: input log, output directory, LaTeX source, logs, assets
//   - Site: web page URLs, index intro, sitemap settings
//   - Document: typeset document title page
//   - Player: external player links for timecodes
//   - Markup: highlighted acronyms
//   - Artwork: per-episode artwork cache and download source
//   - Render: xelatex and PDF merge tools
//   - Upload: rsync publication
//   - Git: commit automation
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Site     Site     `toml:"site"`
	Document Document `toml:"document"`
	Player   Player   `toml:"player"`
	Markup   Markup   `toml:"markup"`
	Artwork  Artwork  `toml:"artwork"`
	Render   Render   `toml:"render"`
	Upload   Upload   `toml:"upload"`
	Git      Git      `toml:"git"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nasum/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("nasum.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories. The artwork
// directory is only created when artwork handling is enabled.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir}
	if c.Paths.LogDir != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	if c.Artwork.Enabled {
		dirs = append(dirs, c.Artwork.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// PDFPath returns where the compiled document lands inside the output directory.
func (c *Config) PDFPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Site.PDFName)
}

// TitlePagePath returns the companion title page source path.
func (c *Config) TitlePagePath() string {
	ext := filepath.Ext(c.Paths.LaTeXFile)
	return strings.TrimSuffix(c.Paths.LaTeXFile, ext) + "-title" + ext
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
