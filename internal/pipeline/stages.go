package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nasum/internal/artwork"
	"nasum/internal/document"
	"nasum/internal/fileutil"
	"nasum/internal/logging"
	"nasum/internal/render"
	"nasum/internal/services"
	"nasum/internal/summary"
)

func (b *builder) fetchArtwork(ctx context.Context, records []summary.Record) error {
	ctx = services.WithStage(ctx, "artwork")
	logger := logging.WithContext(ctx, b.logger)

	fetcher := artwork.NewFetcher(b.cfg, b.store, b.opts.HTTPClient, b.opts.Logger)
	for _, record := range records {
		if _, ok := record.Artwork(); !ok {
			continue
		}
		if _, cached := b.store.Lookup(record.Number); cached {
			continue
		}
		if b.opts.DryRun {
			logger.Info("dry run: skipping artwork download", logging.String(logging.FieldEpisode, record.Number))
			continue
		}
		res, err := fetcher.Fetch(ctx, record.Number)
		switch {
		case err == nil:
			if res.Fetched {
				b.result.Fetched = append(b.result.Fetched, res.Number)
			}
		case errors.Is(err, services.ErrConfiguration):
			return err
		default:
			logging.WarnWithContext(logger, "artwork download failed", "artwork_fetch",
				logging.String(logging.FieldEpisode, record.Number),
				logging.Error(err),
				logging.String(logging.FieldImpact, "episode renders without artwork"),
			)
		}
	}
	return nil
}

func (b *builder) writeSite(ctx context.Context, records []summary.Record) error {
	ctx = services.WithStage(ctx, "html")
	logger := logging.WithContext(ctx, b.logger)
	cfg := b.cfg

	site, err := document.BuildSite(records, document.SiteOptions{
		BaseURL:        cfg.Site.BaseURL,
		Title:          cfg.Site.Title,
		HomeURL:        cfg.Site.HomeURL,
		ShowNotesURL:   cfg.Site.ShowNotesURL,
		IntroMarkdown:  cfg.Site.IntroMarkdown,
		PDFName:        cfg.Site.PDFName,
		ChangeFreq:     cfg.Site.ChangeFreq,
		Now:            b.opts.Now,
		Transducer:     b.tr,
		Artwork:        b.artwork(),
		StylesheetPath: cfg.Site.Stylesheet,
		IconPath:       cfg.Site.Icon,
	})
	if err != nil {
		return services.Wrap(services.ErrValidation, "html", "render", "build site", err)
	}

	outDir := cfg.Paths.OutputDir
	for _, page := range site.Pages {
		if err := b.write(filepath.Join(outDir, page.Name), page.Content); err != nil {
			return err
		}
	}
	if err := b.write(filepath.Join(outDir, document.IndexName), site.Index); err != nil {
		return err
	}
	if err := b.write(filepath.Join(outDir, document.SitemapName), site.Sitemap); err != nil {
		return err
	}
	for _, asset := range site.Assets {
		target := filepath.Join(outDir, filepath.FromSlash(asset.Name))
		if asset.Source == "" {
			if err := b.write(target, asset.Data); err != nil {
				return err
			}
			continue
		}
		if err := fileutil.CopyFileVerified(asset.Source, target); err != nil {
			return services.Wrap(services.ErrConfiguration, "html", "copy asset", asset.Source, err)
		}
		b.result.Written = append(b.result.Written, target)
	}
	logger.Info("site written",
		logging.Int("pages", len(site.Pages)),
		logging.Int("assets", len(site.Assets)),
		logging.String("dir", outDir),
	)
	return nil
}

func (b *builder) writeDocument(ctx context.Context, records []summary.Record) error {
	ctx = services.WithStage(ctx, "latex")
	logger := logging.WithContext(ctx, b.logger)
	cfg := b.cfg

	opts := document.LaTeXOptions{
		Title:          cfg.Document.Title,
		Author:         cfg.Document.Author,
		PlayerURL:      cfg.Player.BaseURL,
		LinkMinEpisode: cfg.Player.LinkMinEpisode,
		Transducer:     b.tr,
		Artwork:        b.artwork(),
	}
	texPath := cfg.Paths.LaTeXFile
	if err := b.writeWith(texPath, func(w io.Writer) error {
		return document.WriteLaTeX(w, records, opts)
	}); err != nil {
		return err
	}

	tex := render.NewTeX(cfg.Render, b.exec, b.opts.Logger)
	outDir := cfg.Paths.OutputDir
	pdf, err := tex.Compile(ctx, texPath, outDir)
	if err != nil {
		return err
	}
	if target := cfg.PDFPath(); pdf != target {
		if err := moveIfPresent(pdf, target); err != nil {
			return services.Wrap(services.ErrExternalTool, "latex", "compile", "move document into place", err)
		}
		pdf = target
	}

	if cfg.Document.TitlePage && !b.opts.NoTitle {
		if err := b.prependTitlePage(ctx, tex, opts, pdf); err != nil {
			return err
		}
	}

	if b.opts.DeleteTeX && !b.opts.DryRun {
		if err := os.Remove(texPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.WarnWithContext(logger, "remove LaTeX source failed", "latex_cleanup",
				logging.String("path", texPath),
				logging.Error(err),
			)
		}
	}
	b.result.PDF = pdf
	logger.Info("document typeset", logging.String("pdf", pdf))
	return nil
}

func (b *builder) prependTitlePage(ctx context.Context, tex *render.TeX, opts document.LaTeXOptions, pdf string) error {
	titlePath := b.cfg.TitlePagePath()
	if err := b.writeWith(titlePath, func(w io.Writer) error {
		return document.WriteTitlePage(w, opts)
	}); err != nil {
		return err
	}
	titlePDF, err := tex.Compile(ctx, titlePath, b.cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	merger := render.NewMerger(b.cfg.Render, b.exec, b.opts.Logger)
	if err := merger.Merge(ctx, pdf, titlePDF, pdf); err != nil {
		return err
	}
	if !b.opts.DryRun {
		_ = os.Remove(titlePDF)
		if b.opts.DeleteTeX {
			_ = os.Remove(titlePath)
		}
	}
	return nil
}

func (b *builder) commit(ctx context.Context) error {
	ctx = services.WithStage(ctx, "git")
	paths := []string{b.inputFile(), b.cfg.Paths.OutputDir}
	if !b.opts.DeleteTeX && fileutil.Exists(b.cfg.Paths.LaTeXFile) {
		paths = append(paths, b.cfg.Paths.LaTeXFile)
	}
	return render.NewCommitter(b.cfg.Git, b.exec, b.opts.Logger).Commit(ctx, paths, b.cfg.Git.Message)
}

func (b *builder) write(path string, data []byte) error {
	return b.writeWith(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (b *builder) writeWith(path string, fill func(io.Writer) error) error {
	if err := fileutil.WriteAtomic(path, 0o644, fill); err != nil {
		return services.Wrap(services.ErrConfiguration, "write", filepath.Base(path), "write output file", err)
	}
	b.result.Written = append(b.result.Written, path)
	return nil
}

func moveIfPresent(src, dst string) error {
	if !fileutil.Exists(src) {
		return nil
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename %s: %w", src, err)
	}
	return nil
}
