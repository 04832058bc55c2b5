package language

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/praetorian-inc/ctxgrep/pkg/rx"
	"gopkg.in/yaml.v3"
)

// Loader handles loading language definitions from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in languages
}

// NewLoader creates a loader over the built-in language table.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinLanguagesFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadLanguages parses every language in a YAML document.
func (l *Loader) LoadLanguages(data []byte) ([]*Language, error) {
	var file yamlLanguagesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Languages) == 0 {
		return nil, fmt.Errorf("no languages found in YAML")
	}

	langs := make([]*Language, 0, len(file.Languages))
	for _, yl := range file.Languages {
		lang, err := convertYAMLLanguage(yl)
		if err != nil {
			return nil, err
		}
		if err := Validate(lang); err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	return langs, nil
}

// LoadFile loads languages from a YAML file path.
func (l *Loader) LoadFile(path string) ([]*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	langs, err := l.LoadLanguages(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return langs, nil
}

// LoadBuiltinLanguages loads the language table in lexical file order.
func (l *Loader) LoadBuiltinLanguages() ([]*Language, error) {
	var paths []string
	err := fs.WalkDir(l.fs, "languages", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var langs []*Language
	for _, path := range paths {
		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		parsed, err := l.LoadLanguages(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		langs = append(langs, parsed...)
	}
	return langs, nil
}

// convertYAMLLanguage builds a Language, compiling every pattern.
func convertYAMLLanguage(yl yamlLanguage) (*Language, error) {
	lang := &Language{
		Name:         yl.Name,
		Aliases:      yl.Aliases,
		Extensions:   yl.Extensions,
		Mimes:        yl.Mimes,
		Continuation: yl.Continuation,
		Fallback:     yl.Fallback,
	}

	for _, b := range yl.Brackets {
		r := []rune(b)
		if len(r) != 2 || r[0] == r[1] {
			return nil, fmt.Errorf("language %s: bracket pair %q must be two distinct characters", yl.Name, b)
		}
		lang.Brackets = append(lang.Brackets, BracketPair{Open: r[0], Close: r[1]})
	}

	for i, yc := range yl.Comments {
		rule, err := convertYAMLComment(yc)
		if err != nil {
			return nil, fmt.Errorf("language %s: comment rule %d: %w", yl.Name, i, err)
		}
		lang.Comments = append(lang.Comments, rule)
	}
	return lang, nil
}

func convertYAMLComment(yc yamlComment) (CommentRule, error) {
	openers := 0
	for _, s := range []string{yc.Begin, yc.Pattern, yc.Heredoc} {
		if s != "" {
			openers++
		}
	}
	if openers != 1 {
		return nil, fmt.Errorf("exactly one of begin, pattern or heredoc is required")
	}

	switch {
	case yc.Begin != "":
		if yc.EndPattern != "" {
			return nil, fmt.Errorf("end_pattern requires pattern")
		}
		return &LiteralRule{
			Begin:     yc.Begin,
			End:       yc.End,
			EOL:       yc.EOL,
			Multiline: yc.Multiline && !yc.EOL,
			Ignores:   yc.Ignores,
		}, nil

	case yc.Pattern != "":
		begin, err := rx.Compile(yc.Pattern, false)
		if err != nil {
			return nil, err
		}
		rule := &PatternRule{
			Begin:     begin,
			End:       yc.End,
			Multiline: yc.Multiline && !yc.EOL,
			Ignores:   yc.Ignores,
		}
		if yc.EOL {
			rule.End = ""
			return rule, nil
		}
		if yc.EndPattern != "" {
			rule.EndRe, err = rx.Compile(yc.EndPattern, false)
			if err != nil {
				return nil, err
			}
		}
		return rule, nil

	default:
		begin, err := rx.Compile(yc.Heredoc, false)
		if err != nil {
			return nil, err
		}
		if yc.End == "" {
			return nil, fmt.Errorf("heredoc requires an end template")
		}
		return &HeredocRule{
			Begin:        begin,
			EndTemplate:  yc.End,
			EndIsPattern: yc.EndIsPattern,
			Multiline:    yc.Multiline,
			Ignores:      yc.Ignores,
		}, nil
	}
}
