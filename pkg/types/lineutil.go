package types

import "strings"

// SplitLines splits content into lines without terminators.
// A trailing newline does not produce an empty final line, and a
// carriage return before the newline is dropped.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := string(content)
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// LeadingWhitespace returns the run of spaces and tabs that starts line.
func LeadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
