package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"nasum/internal/artwork"
	"nasum/internal/config"
	"nasum/internal/document"
	"nasum/internal/logging"
	"nasum/internal/markup"
	"nasum/internal/render"
	"nasum/internal/services"
	"nasum/internal/summary"
)

type builder struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger
	exec   render.Executor
	dry    *render.DryRunExecutor
	store  *artwork.Store
	tr     *markup.Transducer
	result *Result
}

// Run performs one build described by cfg and opts.
func Run(ctx context.Context, cfg *config.Config, opts Options) (_ *Result, err error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "build", "run", "config is required", nil)
	}
	start := time.Now()

	lock, err := acquireLock(cfg.Paths.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = lock.Unlock()
	}()

	b := newBuilder(cfg, opts)
	b.result.RunID = uuid.NewString()
	ctx = services.WithRunID(ctx, b.result.RunID)
	logger := logging.WithContext(ctx, b.logger)
	defer func() {
		if err != nil {
			logging.ErrorWithContext(logger, "build failed", "build_failed",
				logging.Error(err),
				logging.Int("files_written", len(b.result.Written)),
			)
		}
	}()

	html, latex := opts.outputs()
	logger.Info("build started",
		logging.String("input", b.inputFile()),
		logging.Bool("html", html),
		logging.Bool("latex", latex),
		logging.Bool("dry_run", opts.DryRun),
	)

	records, err := b.parse(ctx)
	if err != nil {
		return nil, err
	}

	if opts.FetchArtwork {
		if err := b.fetchArtwork(ctx, records); err != nil {
			return b.result, err
		}
	}
	if html {
		if err := b.writeSite(ctx, records); err != nil {
			return b.result, err
		}
	}
	if latex {
		if err := b.writeDocument(ctx, records); err != nil {
			return b.result, err
		}
	}
	if opts.Upload {
		stageCtx := services.WithStage(ctx, "upload")
		if err := render.NewUploader(cfg.Upload, b.exec, b.logger).Upload(stageCtx, cfg.Paths.OutputDir); err != nil {
			return b.result, err
		}
	}
	if opts.Commit {
		if err := b.commit(ctx); err != nil {
			return b.result, err
		}
	}

	if b.dry != nil {
		b.result.Commands = b.dry.Commands()
	}
	b.result.Elapsed = time.Since(start)
	logger.Info("build finished",
		logging.Int("records", b.result.Records),
		logging.Int("files_written", len(b.result.Written)),
		logging.Duration("elapsed", b.result.Elapsed),
	)
	return b.result, nil
}

func newBuilder(cfg *config.Config, opts Options) *builder {
	b := &builder{
		cfg:    cfg,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "build"),
		exec:   opts.Executor,
		result: &Result{},
		tr: markup.New(markup.Options{
			ListenURL:  cfg.Player.BaseURL,
			Highlights: cfg.Markup.Highlights,
		}),
	}
	if opts.DryRun && b.exec == nil {
		b.dry = &render.DryRunExecutor{Logger: opts.Logger}
		b.exec = b.dry
	}
	if b.exec == nil {
		b.exec = render.CommandExecutor{}
	}
	if cfg.Artwork.Enabled || opts.FetchArtwork {
		b.store = artwork.NewStore(cfg)
	}
	return b
}

func (b *builder) inputFile() string {
	if b.opts.InputFile != "" {
		return b.opts.InputFile
	}
	return b.cfg.Paths.InputFile
}

// artwork returns the locator for document builders, or nil when artwork is
// disabled.
func (b *builder) artwork() document.ArtworkLocator {
	if b.store == nil {
		return nil
	}
	return b.store
}

func (b *builder) parse(ctx context.Context) ([]summary.Record, error) {
	ctx = services.WithStage(ctx, "parse")
	logger := logging.WithContext(ctx, b.logger)

	records, err := summary.ParseFile(b.inputFile())
	if err != nil {
		var recErr *summary.RecordError
		if errors.As(err, &recErr) {
			return nil, services.Wrap(services.ErrValidation, "parse", "read log", "malformed record", err)
		}
		return nil, services.Wrap(services.ErrConfiguration, "parse", "read log", "open summary log", err)
	}
	b.result.Records = len(records)

	if dups := summary.DuplicateNumbers(records); len(dups) > 0 {
		b.result.Duplicates = dups
		logging.WarnWithContext(logger, "duplicate episode numbers", "duplicate_episode",
			logging.Any("episodes", dups),
			logging.String(logging.FieldErrorHint, "later pages overwrite earlier ones with the same number"),
		)
	}
	logger.Debug("summary log parsed", logging.Int("records", len(records)))
	return records, nil
}
