// Package errors formats parse and configuration errors for display.
package errors

import "strings"

// FriendlyError is implemented by errors that can render themselves with
// source context.
type FriendlyError interface {
	error
	FriendlyErrorMessage() string
}

// FormattableError is implemented by errors that can be converted to a
// FormattedError given the source text they refer to.
type FormattableError interface {
	error
	ToFormatted(source string) *FormattedError
}

// SourceExcerpt returns the given 1-indexed line of source together with up
// to context lines before it. Lines out of range are skipped.
func SourceExcerpt(source string, line, context int) []SourceLineEntry {
	if line < 1 {
		return nil
	}
	lines := splitLines(source)
	if line > len(lines) {
		return nil
	}
	first := line - context
	if first < 1 {
		first = 1
	}
	entries := make([]SourceLineEntry, 0, line-first+1)
	for n := first; n <= line; n++ {
		entries = append(entries, SourceLineEntry{
			Number: n,
			Text:   strings.TrimRight(lines[n-1], " \t"),
			IsMain: n == line,
		})
	}
	return entries
}

// splitLines splits on every ECMAScript line terminator so that line numbers
// agree with those reported by the lexer.
func splitLines(source string) []string {
	var lines []string
	var b strings.Builder
	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n', '\u2028', '\u2029':
			lines = append(lines, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	return append(lines, b.String())
}
