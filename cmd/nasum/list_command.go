package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nasum/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var input string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List episodes in the summary log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := ctx.loadRecords(input)
			if err != nil {
				return err
			}
			entries := catalog.Summaries(records)
			if asJSON {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No episodes found")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Number,
					entry.Date,
					entry.Title,
					strconv.Itoa(entry.Notes),
					yesNo(entry.Artwork),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Episode", "Date", "Title", "Notes", "Art"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read this log instead of paths.input_file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
