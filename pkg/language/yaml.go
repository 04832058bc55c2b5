package language

// yamlComment is one comment or string rule as written in a language file.
// Exactly one of Begin, Pattern or Heredoc opens the rule.
type yamlComment struct {
	Begin        string   `yaml:"begin,omitempty"`
	Pattern      string   `yaml:"pattern,omitempty"`
	Heredoc      string   `yaml:"heredoc,omitempty"`
	End          string   `yaml:"end,omitempty"`
	EndPattern   string   `yaml:"end_pattern,omitempty"`
	EndIsPattern bool     `yaml:"end_is_pattern,omitempty"`
	EOL          bool     `yaml:"eol,omitempty"`
	Multiline    bool     `yaml:"multiline,omitempty"`
	Ignores      []string `yaml:"ignores,omitempty"`
}

type yamlLanguage struct {
	Name         string        `yaml:"name"`
	Aliases      []string      `yaml:"aliases,omitempty"`
	Extensions   []string      `yaml:"extensions,omitempty"`
	Mimes        []string      `yaml:"mimes,omitempty"`
	Brackets     []string      `yaml:"brackets,omitempty"`
	Continuation string        `yaml:"continuation,omitempty"`
	Fallback     bool          `yaml:"fallback,omitempty"`
	Comments     []yamlComment `yaml:"comments,omitempty"`
}

// yamlLanguagesFile is the top level of a language file.
type yamlLanguagesFile struct {
	Languages []yamlLanguage `yaml:"languages"`
}
