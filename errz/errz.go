// Package errz defines the structured syntax error returned by the parser.
package errz

import (
	"errors"
	"fmt"

	espreeErrors "github.com/RReverser/espree/errors"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// ErrorKind represents the category of a syntax error. ErrorKind values are
// also errors, so errors.Is(err, errz.ErrStrictMode) matches any strict mode
// violation.
type ErrorKind int

const (
	// ErrLexical indicates a malformed token.
	ErrLexical ErrorKind = iota
	// ErrUnsupportedFeature indicates syntax gated by a disabled feature.
	ErrUnsupportedFeature
	// ErrUnexpectedToken indicates a token that fits no grammar alternative.
	ErrUnexpectedToken
	// ErrStrictMode indicates a construct forbidden in strict code.
	ErrStrictMode
	// ErrModuleGrammar indicates import/export outside module code or an
	// illegal top-level return.
	ErrModuleGrammar
	// ErrLabelResolution indicates a break or continue with a bad target.
	ErrLabelResolution
	// ErrJSXStructure indicates mismatched or unterminated JSX tags.
	ErrJSXStructure
	// ErrInvalidSyntax indicates any other early error.
	ErrInvalidSyntax
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "LexicalError"
	case ErrUnsupportedFeature:
		return "UnsupportedFeatureError"
	case ErrUnexpectedToken:
		return "UnexpectedTokenError"
	case ErrStrictMode:
		return "StrictModeViolation"
	case ErrModuleGrammar:
		return "ModuleGrammarViolation"
	case ErrLabelResolution:
		return "LabelResolutionError"
	case ErrJSXStructure:
		return "JSXStructureError"
	case ErrInvalidSyntax:
		return "InvalidSyntaxError"
	default:
		return "SyntaxError"
	}
}

// Error implements the error interface, so a kind can be an errors.Is target.
func (k ErrorKind) Error() string {
	return k.String()
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Code returns the display error code of the kind.
func (k ErrorKind) Code() espreeErrors.ErrorCode {
	switch k {
	case ErrLexical:
		return espreeErrors.E1002
	case ErrUnsupportedFeature:
		return espreeErrors.E1003
	case ErrStrictMode:
		return espreeErrors.E1004
	case ErrModuleGrammar:
		return espreeErrors.E1005
	case ErrLabelResolution:
		return espreeErrors.E1006
	case ErrJSXStructure:
		return espreeErrors.E1007
	case ErrInvalidSyntax:
		return espreeErrors.E1008
	default:
		return espreeErrors.E1001
	}
}

// Position is a location reported alongside an error.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Index  int `json:"index"`
}

// SyntaxError is the single error shape produced by a failed parse. Line is
// 1-indexed, Column 0-indexed and Index is the code point offset.
type SyntaxError struct {
	Kind        ErrorKind `json:"kind"`
	Message     string    `json:"message"`
	Description string    `json:"description,omitempty"`
	Line        int       `json:"line"`
	Column      int       `json:"column"`
	Index       int       `json:"index"`
	// Feature names the disabled ecmaFeatures key for unsupported syntax.
	Feature string `json:"feature,omitempty"`
	// Related is a second location involved in the error, such as the
	// opening tag of a mismatched JSX closing tag.
	Related *Position `json:"related,omitempty"`
	File    string    `json:"file,omitempty"`
}

// New returns a syntax error of the given kind located at pos.
func New(kind ErrorKind, pos token.Position, format string, args ...any) *SyntaxError {
	desc := format
	if len(args) > 0 {
		desc = fmt.Sprintf(format, args...)
	}
	return &SyntaxError{
		Kind:        kind,
		Message:     fmt.Sprintf("Line %d: %s", pos.Line, desc),
		Description: desc,
		Line:        pos.Line,
		Column:      pos.Column,
		Index:       pos.Offset,
	}
}

// NewUnsupported returns the error for syntax gated by a disabled feature.
func NewUnsupported(pos token.Position, f feature.Feature) *SyntaxError {
	err := New(ErrUnsupportedFeature, pos, "Unsupported syntax: %s (enable ecmaFeatures.%s)", f.Describe(), f)
	err.Feature = f.String()
	return err
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.File != "" {
		return e.File + ": " + e.Message
	}
	return e.Message
}

// Is matches an ErrorKind target against the kind of the error.
func (e *SyntaxError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// WithRelated records a second location.
func (e *SyntaxError) WithRelated(pos token.Position) *SyntaxError {
	e.Related = &Position{Line: pos.Line, Column: pos.Column, Index: pos.Offset}
	return e
}

// ToFormatted converts the error to a displayable FormattedError. The source
// text is used to show the offending line.
func (e *SyntaxError) ToFormatted(source string) *espreeErrors.FormattedError {
	fe := &espreeErrors.FormattedError{
		Code:        e.Kind.Code(),
		Kind:        "syntax error",
		Message:     e.Description,
		Filename:    e.File,
		Line:        e.Line,
		Column:      e.Column + 1,
		SourceLines: espreeErrors.SourceExcerpt(source, e.Line, 1),
	}
	if e.Feature != "" {
		fe.Hint = fmt.Sprintf("set ecmaFeatures.%s to true", e.Feature)
	}
	if e.Related != nil {
		fe.Note = fmt.Sprintf("related location at %d:%d", e.Related.Line, e.Related.Column+1)
	}
	return fe
}

// FriendlyErrorMessage renders the error without color and without source
// context.
func (e *SyntaxError) FriendlyErrorMessage() string {
	return espreeErrors.NewFormatter(false).Format(e.ToFormatted(""))
}

// KindOf returns the kind of the syntax error wrapped by err.
func KindOf(err error) (ErrorKind, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
