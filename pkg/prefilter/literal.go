package prefilter

import "regexp/syntax"

// RequiredLiteral returns the longest literal that every match of pattern
// must contain, or "" when none can be derived. Patterns the RE2 parser
// rejects (lookarounds, backreferences, \u escapes) give up, as do
// case-folded literals.
func RequiredLiteral(pattern string) string {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return ""
	}
	return required(re)
}

func required(re *syntax.Regexp) string {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return ""
		}
		return string(re.Rune)
	case syntax.OpCapture:
		return required(re.Sub[0])
	case syntax.OpPlus:
		return required(re.Sub[0])
	case syntax.OpRepeat:
		if re.Min >= 1 {
			return required(re.Sub[0])
		}
		return ""
	case syntax.OpConcat:
		return requiredConcat(re.Sub)
	default:
		return ""
	}
}

// requiredConcat joins adjacent literal parts into runs. A repeated literal
// ends one run and starts the next, since its last repetition is adjacent to
// what follows.
func requiredConcat(subs []*syntax.Regexp) string {
	var best, run string
	flush := func() {
		if len(run) > len(best) {
			best = run
		}
		run = ""
	}

	for _, sub := range subs {
		if lit, ok := literalOf(sub); ok {
			run += lit
			continue
		}
		if lit, ok := repeatedLiteralOf(sub); ok {
			run += lit
			flush()
			run = lit
			continue
		}
		flush()
		if inner := required(sub); len(inner) > len(best) {
			best = inner
		}
	}
	flush()
	return best
}

// literalOf reports the text of a node that matches exactly one fixed string.
func literalOf(re *syntax.Regexp) (string, bool) {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return "", false
		}
		return string(re.Rune), true
	case syntax.OpCapture:
		return literalOf(re.Sub[0])
	case syntax.OpEmptyMatch:
		return "", true
	case syntax.OpConcat:
		var s string
		for _, sub := range re.Sub {
			lit, ok := literalOf(sub)
			if !ok {
				return "", false
			}
			s += lit
		}
		return s, true
	default:
		return "", false
	}
}

// repeatedLiteralOf reports the text of a literal repeated at least once.
func repeatedLiteralOf(re *syntax.Regexp) (string, bool) {
	switch {
	case re.Op == syntax.OpPlus, re.Op == syntax.OpRepeat && re.Min >= 1:
		return literalOf(re.Sub[0])
	default:
		return "", false
	}
}
