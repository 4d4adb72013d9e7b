package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var validChangeFreqs = map[string]struct{}{
	"always": {}, "hourly": {}, "daily": {}, "weekly": {}, "monthly": {}, "yearly": {}, "never": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validateMarkup(); err != nil {
		return err
	}
	if err := c.validateArtwork(); err != nil {
		return err
	}
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := ensurePositiveMap(map[string]int{
		"artwork.timeout_seconds": c.Artwork.TimeoutSeconds,
		"render.timeout_seconds":  c.Render.TimeoutSeconds,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSite() error {
	if err := validateAbsoluteURL("site.base_url", c.Site.BaseURL); err != nil {
		return err
	}
	if _, ok := validChangeFreqs[c.Site.ChangeFreq]; !ok {
		return fmt.Errorf("site.change_freq %q is not a sitemap change frequency", c.Site.ChangeFreq)
	}
	if strings.ContainsAny(c.Site.PDFName, `/\`) {
		return errors.New("site.pdf_name must be a file name, not a path")
	}
	return nil
}

func (c *Config) validatePlayer() error {
	if c.Player.LinkMinEpisode < 0 {
		return errors.New("player.link_min_episode must be >= 0")
	}
	return validateAbsoluteURL("player.base_url", c.Player.BaseURL)
}

func (c *Config) validateMarkup() error {
	for _, token := range c.Markup.Highlights {
		if len([]rune(token)) != 4 {
			return fmt.Errorf("markup.highlights entry %q must be a four-letter acronym", token)
		}
	}
	return nil
}

func (c *Config) validateArtwork() error {
	if c.Artwork.SourceURL != "" && !strings.Contains(c.Artwork.SourceURL, "{n}") {
		return errors.New("artwork.source_url must contain the {n} episode placeholder")
	}
	return nil
}

func (c *Config) validateUpload() error {
	if c.Upload.Enabled && c.Upload.Destination == "" {
		return errors.New("upload.destination must be set when upload.enabled is true (or set NASUM_UPLOAD_DEST)")
	}
	return nil
}

func validateAbsoluteURL(key, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
