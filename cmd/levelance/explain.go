package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/levelance/internal/cli"
	"github.com/aretw0/levelance/internal/presentation/report"
	"github.com/aretw0/levelance/internal/presentation/tui"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <input>",
		Short: "Show how every symbol group evaluates to its digit",
		Long: `Prints a markdown table per group with the accumulator after every symbol,
the flags it raised and the bonuses applied. Rendered through glamour when
stdout is a terminal; raw markdown otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			eng := cli.CreateEngine(cli.EngineOptions{Strict: a.strict, Cache: a.cache}, a.logger)
			res, err := eng.Decode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			traces, err := eng.Explain(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			md := report.Markdown(args[0], res.Output, traces)
			out := cmd.OutOrStdout()
			if !tui.IsTerminal(out) || a.cfg.NoColor {
				fmt.Fprint(out, md)
				return nil
			}

			render, err := tui.NewRenderer(true)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			rendered, err := render(md)
			if err != nil {
				return fmt.Errorf("failed to render explain: %w", err)
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
}
