package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nasum/internal/markup"
	"nasum/internal/services"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var grammarName string
	var rules bool

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Translate one line of summary markup",
		Long: `Render prints the markup translation of its argument. Without an
argument each line of standard input is translated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			grammar, err := markup.Lookup(grammarName)
			if err != nil {
				return services.Wrap(services.ErrValidation, "render", "grammar", "", err)
			}
			tr := markup.New(markup.Options{
				ListenURL:  cfg.Player.BaseURL,
				Highlights: cfg.Markup.Highlights,
			})

			out := cmd.OutOrStdout()
			if rules {
				fmt.Fprintln(out, strings.Join(tr.Rules(), "\n"))
				return nil
			}
			if len(args) > 0 {
				fmt.Fprintln(out, tr.Render(strings.Join(args, " "), grammar))
				return nil
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				fmt.Fprintln(out, tr.Render(scanner.Text(), grammar))
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "html", "Output grammar: latex or html")
	cmd.Flags().BoolVar(&rules, "rules", false, "List the markup rules in application order")
	return cmd
}
