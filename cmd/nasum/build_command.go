package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nasum/internal/config"
	"nasum/internal/deps"
	"nasum/internal/logging"
	"nasum/internal/pipeline"
	"nasum/internal/preflight"
	"nasum/internal/services"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the HTML site and typeset document from the summary log",
		Long: `Build reads the summary log and writes the selected outputs.

Without --html or --latex both are produced. --upload and --commit default to
the upload.enabled and git.enabled settings; --delete defaults to
render.delete_intermediates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("upload") {
				opts.Upload = cfg.Upload.Enabled
			}
			if !flags.Changed("commit") {
				opts.Commit = cfg.Git.Enabled
			}
			if !flags.Changed("delete") {
				opts.DeleteTeX = cfg.Render.DeleteIntermediates
			}
			if opts.InputFile != "" {
				input, err := config.ExpandPath(opts.InputFile)
				if err != nil {
					return services.Wrap(services.ErrConfiguration, "build", "input", opts.InputFile, err)
				}
				cfg.Paths.InputFile = input
				opts.InputFile = ""
			}
			opts.Logger = logger

			if err := cfg.EnsureDirectories(); err != nil {
				return services.Wrap(services.ErrConfiguration, "build", "prepare", "", err)
			}
			if failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg)); len(failed) > 0 {
				first := failed[0]
				return services.Wrap(services.ErrConfiguration, "build", "preflight", first.Name+": "+first.Detail, nil)
			}
			if !opts.DryRun {
				latex := opts.LaTeX || !opts.HTML
				features := deps.Features{
					LaTeX:     latex,
					TitlePage: latex && cfg.Document.TitlePage && !opts.NoTitle,
					Upload:    opts.Upload,
					Commit:    opts.Commit,
				}
				if missing := deps.Missing(preflight.CheckSystemDeps(cfg, features)); len(missing) > 0 {
					return services.Wrap(services.ErrExternalTool, "build", "dependencies",
						fmt.Sprintf("%s (%s)", missing[0].Name, missing[0].Detail), nil)
				}
			}

			result, err := pipeline.Run(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Built %d episodes in %s\n", result.Records, result.Elapsed.Round(time.Millisecond))
			if result.PDF != "" {
				fmt.Fprintf(out, "Document: %s\n", result.PDF)
			}
			if len(result.Fetched) > 0 {
				fmt.Fprintf(out, "Artwork downloaded: %d\n", len(result.Fetched))
			}
			for _, number := range result.Duplicates {
				fmt.Fprintf(out, "Warning: episode %s appears more than once\n", number)
			}
			if opts.DryRun {
				fmt.Fprintln(out, "Dry run; commands not executed:")
				for _, c := range result.Commands {
					fmt.Fprintf(out, "  %s\n", c)
				}
			}
			logger.Debug("build command complete", logging.String("run_id", result.RunID))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.HTML, "html", "H", false, "Create the HTML pages, index and sitemap")
	flags.BoolVarP(&opts.LaTeX, "latex", "l", false, "Create and typeset the LaTeX document")
	flags.StringVarP(&opts.InputFile, "input", "i", "", "Read this log instead of paths.input_file")
	flags.BoolVarP(&opts.NoTitle, "no-title", "t", false, "Suppress the title page")
	flags.BoolVarP(&opts.FetchArtwork, "artwork", "a", false, "Download missing episode artwork first")
	flags.BoolVarP(&opts.DeleteTeX, "delete", "d", false, "Delete the LaTeX source after typesetting")
	flags.BoolVarP(&opts.Upload, "upload", "u", false, "rsync the output directory when done")
	flags.BoolVar(&opts.Commit, "commit", false, "Commit the log and outputs with git when done")
	flags.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Write local files but only print external commands")
	return cmd
}
