package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/levelance/internal/cli"
	"github.com/aretw0/levelance/internal/presentation/tui"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <input>...",
		Short: "Validate Levelance strings without printing their output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			eng := cli.CreateEngine(cli.EngineOptions{Strict: a.strict, Cache: a.cache}, a.logger)
			printer := tui.NewPrinter(cmd.OutOrStdout(), a.cfg.NoColor, false)

			failed := 0
			for _, input := range args {
				_, err := eng.Decode(cmd.Context(), input)
				printer.Check(input, err)
				if err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(args))
			}
			return nil
		},
	}
}
