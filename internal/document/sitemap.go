package document

import (
	"encoding/xml"
	"fmt"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// BuildSitemap renders a sitemap listing locs, all stamped with modified.
func BuildSitemap(locs []string, modified time.Time, changeFreq string) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(locs))}
	stamp := modified.UTC().Format("2006-01-02T15:04:05Z")
	for _, loc := range locs {
		set.URLs = append(set.URLs, sitemapURL{Loc: loc, LastMod: stamp, ChangeFreq: changeFreq})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}
