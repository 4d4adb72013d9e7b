package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nasum/internal/catalog"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var input string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search episode titles and notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := ctx.loadRecords(input)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			matches := catalog.Search(records, query, limit)
			if asJSON {
				return writeJSON(cmd, matches)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No matches for %q\n", query)
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{m.Number, m.Title, m.Timecode, m.Text})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Episode", "Title", "Time", "Note"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read this log instead of paths.input_file")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum matches to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
