package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/levelance/internal/cli"
	"github.com/aretw0/levelance/internal/presentation/tui"
)

// newRootCmd builds the command tree. The root command itself decodes.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "levelance <input>",
		Short: "Levelance decodes LPS...LP strings into digits",
		Long: `Levelance decodes strings wrapped in the LPS...LP envelope. Every
three-letter symbol group becomes one digit; '.' delimiters pass through.

  levelance LPSAAA.BBBLP   # prints 3.0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDecode,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json; default ./levelance.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("strict", false, "Disable delimiter support")
	rootCmd.Flags().Bool("quote", false, "Print the output as a quoted string")

	rootCmd.AddCommand(
		newExplainCmd(),
		newCheckCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	quote, _ := cmd.Flags().GetBool("quote")
	eng := cli.CreateEngine(cli.EngineOptions{Strict: a.strict, Cache: a.cache}, a.logger)

	res, err := eng.Decode(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	tui.NewPrinter(cmd.OutOrStdout(), a.cfg.NoColor, quote).Result(res.Output)
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		tui.NewPrinter(os.Stderr, !tui.IsTerminal(os.Stderr), false).Error(err)
		os.Exit(1)
	}
}
