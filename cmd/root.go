package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:           "nataliefeed",
	Short:         "Comic Natalie tag listing to JSON feed or static HTML page",
	Long:          "Running nataliefeed without a subcommand is the same as `nataliefeed generate`.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config profiles and environment, use only CLI flags")
	bindGenerateFlags(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err unless run has already logged it.
func printError(w io.Writer, err error) {
	var rep reportedError
	if errors.As(err, &rep) {
		return
	}
	_, _ = fmt.Fprintln(w, "Error:", err)
}
