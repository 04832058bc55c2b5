package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/praetorian-inc/ctxgrep/pkg/enum"
	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/matcher"
	"github.com/praetorian-inc/ctxgrep/pkg/output"
	"github.com/praetorian-inc/ctxgrep/pkg/search"
	"github.com/spf13/cobra"
)

// errNoMatches ends a successful run that found nothing (exit status 1).
var errNoMatches = errors.New("no matches")

var (
	searchFixed            bool
	searchExtended         bool
	searchIgnoreCase       bool
	searchSkipComments     bool
	searchSkipCode         bool
	searchMaxContext       int
	searchLanguage         string
	searchRecursive        bool
	searchFollowSymlinks   bool
	searchExcludes         []string
	searchColor            string
	searchFormat           string
	searchCount            bool
	searchFilesWithMatches bool
	searchColumn           bool
	searchStats            bool
	searchHidden           bool
	searchNoIgnore         bool
	searchMaxFileSize      int64
	searchRev              string
	searchRepo             string
	searchArchives         string
	searchLanguagesPath    string
	searchNoSniff          bool
	searchOnUnknown        string
)

func registerSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&searchFixed, "fixed-strings", "F", false, "Treat PATTERN as a literal string")
	f.BoolVarP(&searchExtended, "extended-regexp", "E", false, "Treat PATTERN as a regular expression (default)")
	f.BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	f.BoolVar(&searchSkipComments, "skip-comments", false, "Only match code, not comments or strings")
	f.BoolVar(&searchSkipCode, "skip-code", false, "Only match inside comments and strings")
	f.IntVarP(&searchMaxContext, "context", "C", 0, "Maximum context lines in each direction (0 = unlimited)")
	f.StringVarP(&searchLanguage, "language", "l", "", "Force the language of every file")
	f.BoolVarP(&searchRecursive, "recursive", "r", false, "Search directories recursively")
	f.BoolVarP(&searchFollowSymlinks, "dereference-recursive", "R", false, "Search directories recursively, following symlinks")
	f.StringArrayVarP(&searchExcludes, "exclude", "x", nil, "Skip files and directories matching GLOB (repeatable)")
	f.StringVar(&searchColor, "color", "auto", "Colorize output: auto, always, never")
	f.StringVar(&searchFormat, "format", output.FormatHuman, "Output format: human, json, sarif")
	f.BoolVarP(&searchCount, "count", "c", false, "Print the number of matched lines per file")
	f.BoolVar(&searchFilesWithMatches, "files-with-matches", false, "Print only the names of files with matches")
	f.BoolVar(&searchColumn, "column", false, "Print the column of the first hit on matched lines")
	f.BoolVar(&searchStats, "stats", false, "Print a summary after searching")
	f.BoolVar(&searchHidden, "hidden", false, "Search hidden files and directories")
	f.BoolVar(&searchNoIgnore, "no-ignore", false, "Do not honor .gitignore")
	f.Int64Var(&searchMaxFileSize, "max-filesize", 0, "Skip files larger than this many bytes (0 = no limit)")
	f.StringVar(&searchRev, "rev", "", "Search the files of a git revision instead of the worktree")
	f.StringVar(&searchRepo, "repo", ".", "Repository to read --rev from")
	f.StringVar(&searchArchives, "search-archives", "", "Search inside archives and documents: all or a list of zip,jar,7z,xlsx,docx,pdf")
	f.Lookup("search-archives").NoOptDefVal = "all"
	f.StringVar(&searchLanguagesPath, "languages", "", "Path to extra language definitions (YAML)")
	f.BoolVar(&searchNoSniff, "no-sniff", false, "Do not sniff shebangs or content to pick a language")
	f.StringVar(&searchOnUnknown, "on-unknown-language", "skip", "What to do with files of unknown language: skip, abort")

	cmd.MarkFlagsMutuallyExclusive("fixed-strings", "extended-regexp")
	cmd.MarkFlagsMutuallyExclusive("skip-comments", "skip-code")
	cmd.MarkFlagsMutuallyExclusive("count", "files-with-matches")
}

func runSearch(cmd *cobra.Command, args []string) error {
	pattern, paths := args[0], args[1:]
	logger := newLogger(cmd.ErrOrStderr())

	if searchSkipComments && searchSkipCode {
		return fmt.Errorf("--skip-comments and --skip-code are mutually exclusive")
	}
	if searchMaxContext < 0 {
		return fmt.Errorf("--context must not be negative")
	}
	unknown, err := search.ParseUnknownPolicy(searchOnUnknown)
	if err != nil {
		return err
	}

	skip := matcher.SkipNone
	switch {
	case searchSkipComments:
		skip = matcher.SkipComments
	case searchSkipCode:
		skip = matcher.SkipCode
	}
	m, err := matcher.New(matcher.Config{
		Pattern:    pattern,
		Fixed:      searchFixed,
		IgnoreCase: searchIgnoreCase,
		Skip:       skip,
		MaxContext: searchMaxContext,
	})
	if err != nil {
		return err
	}

	reg, err := createRegistry()
	if err != nil {
		return err
	}
	config := search.Config{Registry: reg, Matcher: m, Unknown: unknown, Logger: logger}
	if searchLanguage != "" {
		if config.Language, err = reg.ByName(searchLanguage); err != nil {
			return err
		}
	}
	searcher, err := search.New(config)
	if err != nil {
		return err
	}

	enumerator, err := createEnumerator(cmd, paths, logger)
	if err != nil {
		return fmt.Errorf("creating enumerator: %w", err)
	}

	out := cmd.OutOrStdout()
	outFile, _ := out.(*os.File)
	colorEnabled, err := output.ColorEnabled(searchColor, outFile)
	if err != nil {
		return err
	}
	renderer, err := output.New(output.Options{
		Format:           searchFormat,
		Color:            colorEnabled,
		Pattern:          pattern,
		ToolVersion:      version,
		Column:           searchColumn,
		Count:            searchCount,
		FilesWithMatches: searchFilesWithMatches,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stats, err := searcher.Run(ctx, enumerator, func(res *search.FileResult) error {
		return renderer.Render(out, res)
	})
	if err != nil {
		return err
	}
	if f, ok := renderer.(output.Flusher); ok {
		if err := f.Flush(out); err != nil {
			return err
		}
	}

	logger.Debug("search complete", "files", stats.Files, "matched", stats.Matched,
		"matches", stats.Matches, "skipped", stats.Skipped)
	if searchStats {
		if err := output.Summary(out, stats); err != nil {
			return err
		}
	}
	if stats.Matched == 0 {
		return errNoMatches
	}
	return nil
}

func createRegistry() (*language.Registry, error) {
	extra, err := loadExtraLanguages(searchLanguagesPath)
	if err != nil {
		return nil, err
	}
	var opts []language.RegistryOption
	if !searchNoSniff {
		opts = append(opts, language.WithSniffer(language.DefaultSniffer()))
	}
	return language.DefaultRegistry(extra, opts...)
}

func createEnumerator(cmd *cobra.Command, paths []string, logger *slog.Logger) (enum.Enumerator, error) {
	config := enum.Config{
		Paths:           paths,
		Recursive:       searchRecursive || searchFollowSymlinks,
		FollowSymlinks:  searchFollowSymlinks,
		IncludeHidden:   searchHidden,
		NoIgnore:        searchNoIgnore,
		Excludes:        searchExcludes,
		MaxFileSize:     searchMaxFileSize,
		ExtractArchives: searchArchives,
		Logger:          logger,
	}

	if searchRev != "" {
		return enum.NewGitEnumerator(config, searchRepo, searchRev)
	}
	return enum.ForPaths(config, func() enum.Enumerator {
		return enum.NewStdinEnumerator(cmd.InOrStdin())
	})
}
