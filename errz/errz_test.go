package errz

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	espreeErrors "github.com/RReverser/espree/errors"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
		code     espreeErrors.ErrorCode
	}{
		{ErrLexical, "LexicalError", espreeErrors.E1002},
		{ErrUnsupportedFeature, "UnsupportedFeatureError", espreeErrors.E1003},
		{ErrUnexpectedToken, "UnexpectedTokenError", espreeErrors.E1001},
		{ErrStrictMode, "StrictModeViolation", espreeErrors.E1004},
		{ErrModuleGrammar, "ModuleGrammarViolation", espreeErrors.E1005},
		{ErrLabelResolution, "LabelResolutionError", espreeErrors.E1006},
		{ErrJSXStructure, "JSXStructureError", espreeErrors.E1007},
		{ErrInvalidSyntax, "InvalidSyntaxError", espreeErrors.E1008},
		{ErrorKind(99), "SyntaxError", espreeErrors.E1001},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
			assert.Equal(t, tt.expected, tt.kind.Error())
			assert.Equal(t, tt.code, tt.kind.Code())
		})
	}
}

func TestNew(t *testing.T) {
	pos := token.Position{Offset: 12, Line: 3, Column: 4}
	err := New(ErrLabelResolution, pos, "Undefined label '%s'", "foo")
	assert.Equal(t, ErrLabelResolution, err.Kind)
	assert.Equal(t, "Line 3: Undefined label 'foo'", err.Message)
	assert.Equal(t, "Undefined label 'foo'", err.Description)
	assert.Equal(t, 3, err.Line)
	assert.Equal(t, 4, err.Column)
	assert.Equal(t, 12, err.Index)
	assert.Equal(t, err.Message, err.Error())

	literal := New(ErrInvalidSyntax, pos, "%s", "100%")
	assert.Equal(t, "100%", literal.Description)

	err.File = "main.js"
	assert.Equal(t, "main.js: Line 3: Undefined label 'foo'", err.Error())
}

func TestNewUnsupported(t *testing.T) {
	err := NewUnsupported(token.Position{Line: 1, Column: 2, Offset: 2}, feature.ArrowFunctions)
	assert.Equal(t, ErrUnsupportedFeature, err.Kind)
	assert.Equal(t, "arrowFunctions", err.Feature)
	assert.Equal(t, "Line 1: Unsupported syntax: arrow functions (enable ecmaFeatures.arrowFunctions)", err.Message)
}

func TestErrorsIs(t *testing.T) {
	err := New(ErrStrictMode, token.Position{Line: 1}, "Strict mode code may not include a with statement")
	wrapped := fmt.Errorf("parsing: %w", err)

	assert.True(t, errors.Is(wrapped, ErrStrictMode))
	assert.False(t, errors.Is(wrapped, ErrModuleGrammar))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrStrictMode, kind)

	_, ok = KindOf(errors.New("other"))
	assert.False(t, ok)
}

func TestJSON(t *testing.T) {
	err := NewUnsupported(token.Position{Line: 2, Column: 5, Offset: 9}, feature.JSX).
		WithRelated(token.Position{Line: 1, Column: 0, Offset: 0})
	data, jerr := json.Marshal(err)
	require.NoError(t, jerr)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "UnsupportedFeatureError", fields["kind"])
	assert.Equal(t, float64(2), fields["line"])
	assert.Equal(t, float64(5), fields["column"])
	assert.Equal(t, float64(9), fields["index"])
	assert.Equal(t, "jsx", fields["feature"])
	assert.Equal(t, map[string]any{"line": float64(1), "column": float64(0), "index": float64(0)}, fields["related"])
	assert.NotContains(t, fields, "file")
}

func TestToFormatted(t *testing.T) {
	source := "var a;\nx => x;"
	err := NewUnsupported(token.Position{Line: 2, Column: 2, Offset: 9}, feature.ArrowFunctions)
	err.File = "a.js"

	fe := err.ToFormatted(source)
	assert.Equal(t, espreeErrors.E1003, fe.Code)
	assert.Equal(t, "syntax error", fe.Kind)
	assert.Equal(t, err.Description, fe.Message)
	assert.Equal(t, "a.js", fe.Filename)
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, 3, fe.Column)
	assert.Equal(t, "set ecmaFeatures.arrowFunctions to true", fe.Hint)
	require.Len(t, fe.SourceLines, 2)
	assert.Equal(t, "x => x;", fe.SourceLines[1].Text)
	assert.True(t, fe.SourceLines[1].IsMain)

	jsx := New(ErrJSXStructure, token.Position{Line: 1, Column: 3}, "Expected corresponding JSX closing tag for a").
		WithRelated(token.Position{Line: 1, Column: 0})
	assert.Equal(t, "related location at 1:1", jsx.ToFormatted("").Note)
}

func TestFriendlyErrorMessage(t *testing.T) {
	err := New(ErrUnexpectedToken, token.Position{Line: 1, Column: 8, Offset: 8}, "Unexpected token ;")
	assert.Equal(t, "syntax error[E1001]: Unexpected token ;\n  --> 1:9\n", err.FriendlyErrorMessage())

	var friendly espreeErrors.FriendlyError = err
	var formattable espreeErrors.FormattableError = err
	assert.NotNil(t, friendly)
	assert.NotNil(t, formattable)
}
