// Package text provides text formatting utilities for CLI commands.
package text

import (
	"strings"
)

// Indentation is the standard indentation for CLI help text.
const Indentation = `  `

// LongDesc strips the indentation shared by every line of a raw string literal, so help text can
// be indented with the code that declares it.
func LongDesc(s string) string {
	if len(s) == 0 {
		return s
	}

	return normalizer{s}.dedent().trim().string
}

// Examples normalizes a command's examples: lines are dedented then indented by Indentation.
func Examples(s string) string {
	if len(s) == 0 {
		return s
	}

	return normalizer{s}.dedent().trim().indent().string
}

type normalizer struct {
	string
}

func (s normalizer) trim() normalizer {
	s.string = strings.Trim(s.string, "\n")
	s.string = strings.TrimRight(s.string, " \t\n")

	return s
}

// dedent removes the longest whitespace prefix common to all non-blank lines.
func (s normalizer) dedent() normalizer {
	lines := strings.Split(s.string, "\n")
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first || len(lead) < len(prefix) {
			prefix, first = lead, false
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
		}
	}
	s.string = strings.Join(lines, "\n")

	return s
}

func (s normalizer) indent() normalizer {
	indentedLines := make([]string, 0, strings.Count(s.string, "\n")+1)
	for line := range strings.SplitSeq(s.string, "\n") {
		if line == "" {
			indentedLines = append(indentedLines, line)
			continue
		}
		indentedLines = append(indentedLines, Indentation+line)
	}
	s.string = strings.Join(indentedLines, "\n")

	return s
}
