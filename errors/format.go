package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with colors and Rust-like styling.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorError     = []color.Attribute{color.FgRed}
	colorErrorBold = []color.Attribute{color.FgHiRed, color.Bold}
	colorCode      = []color.Attribute{color.FgHiBlack}
	colorLocation  = []color.Attribute{color.FgCyan}
	colorGutter    = []color.Attribute{color.FgHiBlack}
	colorSource    = []color.Attribute{color.FgWhite}
	colorCaret     = []color.Attribute{color.FgHiRed, color.Bold}
	colorHint      = []color.Attribute{color.FgHiYellow}
	colorNote      = []color.Attribute{color.FgHiBlue}
)

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "error", "syntax error", "config error", etc.
	Message     string
	Filename    string
	Line        int
	Column      int // 1-indexed
	EndColumn   int // For multi-character underlines
	SourceLines []SourceLineEntry
	Hint        string
	Note        string
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // True if this is the line with the error
}

func (f *Formatter) paint(s string, attrs []color.Attribute) string {
	if !f.UseColor {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Format formats the error as a string.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "1/5".
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder

	lineNumWidth := 2
	if err.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", err.Line))
	}

	// error[E1001]: message
	f.writeHeader(&b, err, prefix)

	//   --> file.js:10:5
	f.writeLocation(&b, err, lineNumWidth)

	f.writeSource(&b, err, lineNumWidth)

	if err.Hint != "" {
		f.writeTrailer(&b, "hint: ", err.Hint, colorHint, lineNumWidth)
	}
	if err.Note != "" {
		f.writeTrailer(&b, "note: ", err.Note, colorNote, lineNumWidth)
	}
	return b.String()
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	b.WriteString(f.paint(label, colorErrorBold))
	switch {
	case err.Code != "":
		b.WriteString(f.paint("["+string(err.Code)+"]", colorCode))
	case prefix != "":
		b.WriteString(f.paint("["+prefix+"]", colorCode))
	}
	b.WriteString(f.paint(": ", colorError))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}
	loc := err.Filename
	if err.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	b.WriteString(strings.Repeat(" ", lineNumWidth))
	b.WriteString(f.paint("-->", colorLocation))
	b.WriteString(" ")
	b.WriteString(f.paint(loc, colorLocation))
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if len(err.SourceLines) == 0 {
		return
	}
	padding := strings.Repeat(" ", lineNumWidth)
	b.WriteString(padding)
	b.WriteString(f.paint(" |", colorGutter))
	b.WriteString("\n")

	for _, line := range err.SourceLines {
		b.WriteString(f.paint(fmt.Sprintf("%*d | ", lineNumWidth, line.Number), colorGutter))
		b.WriteString(f.paint(line.Text, colorSource))
		b.WriteString("\n")

		if !line.IsMain || err.Column < 1 {
			continue
		}
		b.WriteString(padding)
		b.WriteString(f.paint(" | ", colorGutter))
		b.WriteString(caretPadding(line.Text, err.Column-1))
		caretLen := 1
		if err.EndColumn > err.Column {
			caretLen = err.EndColumn - err.Column
		}
		b.WriteString(f.paint(strings.Repeat("^", caretLen), colorCaret))
		b.WriteString("\n")
	}
}

// caretPadding keeps tabs from the source line so the caret lines up with
// the offending character.
func caretPadding(text string, n int) string {
	var b strings.Builder
	for i, r := range []rune(text) {
		if i >= n {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	for i := len([]rune(text)); i < n; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}

func (f *Formatter) writeTrailer(b *strings.Builder, label, text string, attrs []color.Attribute, lineNumWidth int) {
	b.WriteString(strings.Repeat(" ", lineNumWidth))
	b.WriteString(f.paint(" = ", colorGutter))
	b.WriteString(f.paint(label, attrs))
	b.WriteString(text)
	b.WriteString("\n")
}

// FormatMultiple formats multiple errors with consistent styling.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return f.Format(errs[0])
	}
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, len(errs))))
	}
	b.WriteString("\n")
	b.WriteString(f.paint(fmt.Sprintf("found %d errors", len(errs)), colorErrorBold))
	b.WriteString("\n")
	return b.String()
}
