package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nasum/internal/artwork"
	"nasum/internal/services"
)

func newArtworkCommand(ctx *commandContext) *cobra.Command {
	artworkCmd := &cobra.Command{
		Use:   "artwork",
		Short: "Episode artwork maintenance",
	}
	artworkCmd.AddCommand(newArtworkFetchCommand(ctx))
	return artworkCmd
}

func newArtworkFetchCommand(ctx *commandContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "fetch [numbers...]",
		Short: "Download missing artwork",
		Long: `Fetch downloads artwork for the given episode numbers, or for every
episode in the log that carries an artwork directive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			numbers := args
			if len(numbers) == 0 {
				records, err := ctx.loadRecords(input)
				if err != nil {
					return err
				}
				for _, record := range records {
					if _, ok := record.Artwork(); ok {
						numbers = append(numbers, record.Number)
					}
				}
			}

			store := artwork.NewStore(cfg)
			fetcher := artwork.NewFetcher(cfg, store, nil, logger)
			rows := make([][]string, 0, len(numbers))
			var failures int
			for _, number := range numbers {
				res, err := fetcher.Fetch(cmd.Context(), number)
				status := "cached"
				switch {
				case errors.Is(err, services.ErrConfiguration):
					return err
				case errors.Is(err, services.ErrNotFound):
					status = "missing"
					failures++
				case err != nil:
					status = "failed"
					failures++
				case res.Fetched:
					status = "downloaded"
				}
				rows = append(rows, []string{number, status, res.Path})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No episodes request artwork")
				return nil
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Episode", "Status", "Path"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			if failures > 0 {
				return services.Wrap(services.ErrTransient, "artwork", "fetch", fmt.Sprintf("%d of %d downloads failed", failures, len(rows)), nil)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read this log instead of paths.input_file")
	return cmd
}
