package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/spf13/cobra"
)

var (
	languagesPath   string
	languagesFormat string
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List known languages",
	Long:  "Display every language in resolution order with its extensions, brackets and comment rules",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	languagesCmd.Flags().StringVar(&languagesPath, "languages", "", "Path to extra language definitions (YAML)")
	languagesCmd.Flags().StringVar(&languagesFormat, "format", "table", "Output format: table, json")
}

type languageInfo struct {
	Name         string   `json:"name"`
	Aliases      []string `json:"aliases,omitempty"`
	Extensions   []string `json:"extensions,omitempty"`
	Mimes        []string `json:"mimes,omitempty"`
	Brackets     []string `json:"brackets,omitempty"`
	Continuation string   `json:"continuation,omitempty"`
	Comments     []string `json:"comments,omitempty"`
	Fallback     bool     `json:"fallback,omitempty"`
}

func runLanguages(cmd *cobra.Command, args []string) error {
	extra, err := loadExtraLanguages(languagesPath)
	if err != nil {
		return err
	}
	reg, err := language.DefaultRegistry(extra)
	if err != nil {
		return err
	}

	infos := make([]languageInfo, 0, len(reg.Languages()))
	for _, l := range reg.Languages() {
		infos = append(infos, describeLanguage(l))
	}

	switch languagesFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case "table":
		return outputLanguagesTable(cmd, infos)
	default:
		return fmt.Errorf("unknown output format: %s", languagesFormat)
	}
}

func describeLanguage(l *language.Language) languageInfo {
	info := languageInfo{
		Name:         l.Name,
		Aliases:      l.Aliases,
		Extensions:   l.Extensions,
		Mimes:        l.Mimes,
		Continuation: l.Continuation,
		Fallback:     l.Fallback,
	}
	for _, b := range l.Brackets {
		info.Brackets = append(info.Brackets, string([]rune{b.Open, b.Close}))
	}
	for _, c := range l.Comments {
		info.Comments = append(info.Comments, c.Describe())
	}
	return info
}

func outputLanguagesTable(cmd *cobra.Command, infos []languageInfo) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Name\tExtensions\tBrackets\tComments\n")
	fmt.Fprintf(w, "----\t----------\t--------\t--------\n")
	for _, info := range infos {
		name := info.Name
		if info.Fallback {
			name += " (fallback)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name,
			strings.Join(info.Extensions, " "),
			strings.Join(info.Brackets, " "),
			len(info.Comments))
	}
	return nil
}

func loadExtraLanguages(path string) ([]*language.Language, error) {
	if path == "" {
		return nil, nil
	}
	langs, err := language.NewLoader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading languages from %s: %w", path, err)
	}
	return langs, nil
}
