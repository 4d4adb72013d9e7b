package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nasum/internal/deps"
	"nasum/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and configured paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			problems := 0

			writeSection(out, "Configuration", colorize)
			path := ctx.configPath
			if path == "" {
				path = "defaults"
			}
			fmt.Fprintln(out, statusLine("Config", statusOK, path, colorize))

			writeSection(out, "Dependencies", colorize)
			statuses := preflight.CheckSystemDeps(cfg, deps.Features{
				LaTeX:     true,
				TitlePage: cfg.Document.TitlePage,
				Upload:    cfg.Upload.Enabled,
				Commit:    cfg.Git.Enabled,
			})
			for _, status := range statuses {
				switch {
				case status.Available:
					fmt.Fprintln(out, statusLine(status.Name, statusOK, status.Command, colorize))
				case status.Optional:
					fmt.Fprintln(out, statusLine(status.Name, statusWarn, status.Detail, colorize))
				default:
					problems++
					fmt.Fprintln(out, statusLine(status.Name, statusError, status.Detail, colorize))
				}
			}

			writeSection(out, "Paths", colorize)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					problems++
				}
				fmt.Fprintln(out, statusLine(result.Name, kind, result.Detail, colorize))
			}

			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
