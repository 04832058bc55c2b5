package language

import "fmt"

// Validate checks a language for consistency.
func Validate(l *Language) error {
	if l == nil {
		return fmt.Errorf("language is nil")
	}
	if l.Name == "" {
		return fmt.Errorf("language name is required")
	}

	for _, b := range l.Brackets {
		if b.Open == b.Close {
			return fmt.Errorf("language %s: bracket %q opens and closes", l.Name, b.Open)
		}
	}

	for i, c := range l.Comments {
		switch r := c.(type) {
		case *LiteralRule:
			if r.Begin == "" {
				return fmt.Errorf("language %s: comment rule %d has empty begin", l.Name, i)
			}
		case *PatternRule:
			if r.Begin == nil {
				return fmt.Errorf("language %s: comment rule %d has no pattern", l.Name, i)
			}
		case *HeredocRule:
			if r.Begin == nil {
				return fmt.Errorf("language %s: comment rule %d has no pattern", l.Name, i)
			}
			// group 0 is the whole match
			if len(r.Begin.GetGroupNumbers()) < 2 {
				return fmt.Errorf("language %s: heredoc rule %d needs a capture group", l.Name, i)
			}
		}
		if err := validateIgnores(c); err != nil {
			return fmt.Errorf("language %s: comment rule %d: %w", l.Name, i, err)
		}
	}
	return nil
}

func validateIgnores(c CommentRule) error {
	var ignores []string
	switch r := c.(type) {
	case *LiteralRule:
		ignores = r.Ignores
	case *PatternRule:
		ignores = r.Ignores
	case *HeredocRule:
		ignores = r.Ignores
	}
	for _, ign := range ignores {
		if ign == "" {
			return fmt.Errorf("empty ignore token")
		}
	}
	return nil
}
