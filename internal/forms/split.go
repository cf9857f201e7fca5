// Package forms turns flat submitted form values into the nested payloads
// the backend expects. The transforms here are the only place where
// comma-separated and line-separated inputs get tokenized.
package forms

import "strings"

// SplitComma splits a comma separated field into trimmed tokens, dropping
// the empty ones. "a, , b," yields ["a", "b"].
func SplitComma(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SplitLines splits a textarea value into lines, dropping blank ones.
// Line content is kept verbatim apart from the trailing carriage return a
// browser may send.
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
