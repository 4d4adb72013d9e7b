package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"path"
	"path/filepath"
	"strings"
	"time"

	"nasum/internal/markup"
	"nasum/internal/summary"
)

// Fixed names inside the output directory.
const (
	IndexName      = "index.html"
	SitemapName    = "sitemap.xml"
	StylesheetName = "style.css"
	ArtworkDirName = "art"
)

//go:embed assets/style.css
var defaultStylesheet []byte

var (
	pageTemplate  = template.Must(template.ParseFS(templateFS, "templates/page.html"))
	indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))
)

// SiteOptions controls the generated web site.
type SiteOptions struct {
	// BaseURL is the absolute URL of the output directory, ending in "/".
	BaseURL string
	Title   string
	HomeURL string
	// ShowNotesURL may contain {n}, replaced with the episode number.
	ShowNotesURL  string
	IntroMarkdown string
	// PDFName is listed in the sitemap when set.
	PDFName    string
	ChangeFreq string
	// Now stamps sitemap entries. Zero means time.Now.
	Now        time.Time
	Transducer *markup.Transducer
	Artwork    ArtworkLocator
	// StylesheetPath overrides the built-in stylesheet.
	StylesheetPath string
	// IconPath is copied next to the pages and linked as the site icon.
	IconPath string
}

// Page is one rendered episode page.
type Page struct {
	Name    string
	Number  string
	Content []byte
}

// Asset is a static file for the output directory, either copied from Source
// or written from Data.
type Asset struct {
	Name   string
	Source string
	Data   []byte
}

// Site is the complete rendered web site.
type Site struct {
	Pages   []Page
	Index   []byte
	Sitemap []byte
	Assets  []Asset
}

// PageName returns the file name of an episode page.
func PageName(number string) string {
	return number + "_summary.html"
}

type noteRow struct {
	Timecode string
	Text     template.HTML
}

type pageData struct {
	Label      string
	Number     string
	Date       string
	Title      template.HTML
	PlainTitle string
	ShowNotes  string
	Artwork    string
	Notes      []noteRow
	Prev       string
	Next       string
	Index      string
	Stylesheet string
	Icon       string
}

type indexEntry struct {
	Name  string
	Label string
	Date  string
	Title template.HTML
}

type indexData struct {
	Title      string
	HomeURL    string
	Intro      template.HTML
	Entries    []indexEntry
	Stylesheet string
	Icon       string
}

// BuildSite renders every page, the index and the sitemap for records, which
// must be in source order. Pages and index entries are newest first; previous
// and next links follow episode order.
func BuildSite(records []summary.Record, opts SiteOptions) (*Site, error) {
	tr := opts.Transducer
	if tr == nil {
		tr = markup.New(markup.Options{})
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	site := &Site{}
	site.Assets = append(site.Assets, stylesheetAsset(opts.StylesheetPath))
	icon := ""
	if opts.IconPath != "" {
		icon = filepath.Base(opts.IconPath)
		site.Assets = append(site.Assets, Asset{Name: icon, Source: opts.IconPath})
	}

	intro, err := RenderMarkdown(opts.IntroMarkdown)
	if err != nil {
		return nil, err
	}
	index := indexData{
		Title:      opts.Title,
		HomeURL:    opts.HomeURL,
		Intro:      intro,
		Stylesheet: StylesheetName,
		Icon:       icon,
	}

	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		name := PageName(record.Number)
		title := template.HTML(tr.Render(record.Title, markup.HTML))

		data := pageData{
			Label:      record.Label,
			Number:     record.Number,
			Date:       record.ISODate(),
			Title:      title,
			PlainTitle: record.Title,
			ShowNotes:  showNotesURL(opts.ShowNotesURL, record.Number),
			Index:      IndexName,
			Stylesheet: StylesheetName,
			Icon:       icon,
		}
		if i > 0 {
			data.Prev = PageName(records[i-1].Number)
		}
		if i < len(records)-1 {
			data.Next = PageName(records[i+1].Number)
		}
		if artPath, _, ok := locateArtwork(record, opts.Artwork); ok {
			assetName := path.Join(ArtworkDirName, filepath.Base(artPath))
			data.Artwork = assetName
			site.Assets = append(site.Assets, Asset{Name: assetName, Source: artPath})
		}
		for _, note := range record.Notes() {
			data.Notes = append(data.Notes, noteRow{
				Timecode: note.Timecode,
				Text:     template.HTML(tr.Render(note.Text, markup.HTML)),
			})
		}

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render page %s: %w", name, err)
		}
		site.Pages = append(site.Pages, Page{Name: name, Number: record.Number, Content: buf.Bytes()})
		index.Entries = append(index.Entries, indexEntry{
			Name:  name,
			Label: record.Label,
			Date:  record.ISODate(),
			Title: title,
		})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, index); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	site.Index = buf.Bytes()

	sitemap, err := BuildSitemap(sitemapLocations(opts.BaseURL, opts.PDFName, site.Pages), now, opts.ChangeFreq)
	if err != nil {
		return nil, err
	}
	site.Sitemap = sitemap
	return site, nil
}

func stylesheetAsset(override string) Asset {
	if override != "" {
		return Asset{Name: StylesheetName, Source: override}
	}
	return Asset{Name: StylesheetName, Data: defaultStylesheet}
}

func showNotesURL(pattern, number string) string {
	if pattern == "" {
		return ""
	}
	return strings.ReplaceAll(pattern, "{n}", number)
}

func sitemapLocations(baseURL, pdfName string, pages []Page) []string {
	locs := make([]string, 0, len(pages)+2)
	locs = append(locs, baseURL+IndexName)
	if pdfName != "" {
		locs = append(locs, baseURL+pdfName)
	}
	for _, page := range pages {
		locs = append(locs, baseURL+page.Name)
	}
	return locs
}
