package preflight

import (
	"context"

	"nasum/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckReadableFile("Summary log", cfg.Paths.InputFile))
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if cfg.Artwork.Enabled {
		results = append(results, CheckDirectoryAccess("Artwork directory", cfg.Artwork.Dir))
		if cfg.Artwork.SourceURL != "" {
			results = append(results, CheckArtworkSource(ctx, cfg.Artwork.SourceURL))
		}
	}

	if cfg.Git.Enabled {
		results = append(results, CheckGitRepository(ctx, cfg.Git.Binary, cfg.Git.RepoDir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
