package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "ctxgrep [flags] PATTERN [PATH...]",
	Short: "ctxgrep - context-aware grep",
	Long: `ctxgrep searches files for a pattern and prints each hit together with the
smallest surrounding block that makes sense in the file's language: the
enclosing brackets, the indented header above it, the rest of a comment or a
continued line.

With no PATH, or a PATH of "-", standard input is searched.

A PATTERN that is also a subcommand name ("languages", "version") or that
starts with "-" must follow "--":

  ctxgrep -- version src/`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runSearch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	registerSearchFlags(rootCmd)

	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger writes text logs to w: warnings by default, debug with
// --verbose, errors only with --quiet.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
