package lexer

import (
	"testing"

	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	typ   token.Type
	value string
}

func scanAll(t *testing.T, l *Lexer) []token.Token {
	t.Helper()
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func checkTokens(t *testing.T, input string, expected []expectedToken, opts ...Option) {
	t.Helper()
	tokens := scanAll(t, New(input, opts...))
	require.Len(t, tokens, len(expected), input)
	for i, tt := range expected {
		assert.Equal(t, tt.typ, tokens[i].Type, "tests[%d] type", i)
		assert.Equal(t, tt.value, tokens[i].Value, "tests[%d] value", i)
	}
}

func TestPunctuators(t *testing.T) {
	checkTokens(t, "a >>>= b => c ... d !== e", []expectedToken{
		{token.Identifier, "a"},
		{token.Punctuator, ">>>="},
		{token.Identifier, "b"},
		{token.Punctuator, "=>"},
		{token.Identifier, "c"},
		{token.Punctuator, "..."},
		{token.Identifier, "d"},
		{token.Punctuator, "!=="},
		{token.Identifier, "e"},
		{token.EOF, ""},
	})
}

func TestKeywordsAndLiterals(t *testing.T) {
	checkTokens(t, `var x = null || true; if (this) return "s";`, []expectedToken{
		{token.Keyword, "var"},
		{token.Identifier, "x"},
		{token.Punctuator, "="},
		{token.Null, "null"},
		{token.Punctuator, "||"},
		{token.Boolean, "true"},
		{token.Punctuator, ";"},
		{token.Keyword, "if"},
		{token.Punctuator, "("},
		{token.Keyword, "this"},
		{token.Punctuator, ")"},
		{token.Keyword, "return"},
		{token.String, `"s"`},
		{token.Punctuator, ";"},
		{token.EOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		value float64
		octal bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"3.25", 3.25, false},
		{".5", 0.5, false},
		{"1e3", 1000, false},
		{"2E-2", 0.02, false},
		{"0x1F", 31, false},
		{"017", 15, true},
		{"019", 19, false},
	}
	for _, tt := range tests {
		tok, err := New(tt.input).Next()
		require.NoError(t, err, tt.input)
		assert.Equal(t, token.Numeric, tok.Type, tt.input)
		assert.Equal(t, tt.input, tok.Value)
		assert.Equal(t, tt.value, tok.Number, tt.input)
		assert.Equal(t, tt.octal, tok.Octal, tt.input)
	}
}

func TestFeatureGatedNumbers(t *testing.T) {
	_, err := New("0b101").Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errz.ErrUnsupportedFeature)

	tok, err := New("0b101", WithFeatures(feature.Of(feature.BinaryLiterals))).Next()
	require.NoError(t, err)
	assert.Equal(t, 5.0, tok.Number)

	_, err = New("0o17").Next()
	assert.ErrorIs(t, err, errz.ErrUnsupportedFeature)

	tok, err = New("0O17", WithFeatures(feature.Of(feature.OctalLiterals))).Next()
	require.NoError(t, err)
	assert.Equal(t, 15.0, tok.Number)
	assert.False(t, tok.Octal)
}

func TestIdentifierDirectlyAfterNumber(t *testing.T) {
	_, err := New("3in x").Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errz.ErrLexical)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input  string
		cooked string
		octal  bool
	}{
		{`"hello"`, "hello", false},
		{`'a\nb'`, "a\nb", false},
		{`"\x41B"`, "AB", false},
		{`"\101"`, "A", true},
		{`"\0"`, "\x00", false},
		{`"\uD83D\uDE00"`, "\U0001F600", false},
		{"'a\\\nb'", "ab", false},
		{`"\q"`, "q", false},
	}
	for _, tt := range tests {
		tok, err := New(tt.input).Next()
		require.NoError(t, err, tt.input)
		assert.Equal(t, token.String, tok.Type)
		assert.Equal(t, tt.input, tok.Value)
		assert.Equal(t, tt.cooked, tok.Cooked, tt.input)
		assert.Equal(t, tt.octal, tok.Octal, tt.input)
	}
}

func TestStringErrors(t *testing.T) {
	for _, input := range []string{`"abc`, "'a\nb'", `"\x4"`, `"\u12"`} {
		_, err := New(input).Next()
		require.Error(t, err, input)
		assert.ErrorIs(t, err, errz.ErrLexical, input)
	}
}

func TestUnicodeCodePointEscapes(t *testing.T) {
	_, err := New(`"\u{41}"`).Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errz.ErrUnsupportedFeature)

	l := New(`"\u{1F600}" \u{61}b`, WithFeatures(feature.Of(feature.UnicodeCodePointEscapes)))
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", tok.Cooked)
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Identifier, tok.Type)
	assert.Equal(t, "ab", tok.Value)
	assert.True(t, tok.Escaped)

	_, err = New(`"\u{110000}"`, WithFeatures(feature.Of(feature.UnicodeCodePointEscapes))).Next()
	assert.ErrorIs(t, err, errz.ErrLexical)
}

func TestEscapedKeyword(t *testing.T) {
	_, err := New(`\u0069f`).Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Keyword must not contain escaped characters")
}

func TestNewlineBefore(t *testing.T) {
	tokens := scanAll(t, New("a /* x */ b\nc /*\n*/ d // e\nf"))
	var flags []bool
	for _, tok := range tokens[:len(tokens)-1] {
		flags = append(flags, tok.NewlineBefore)
	}
	assert.Equal(t, []bool{false, false, true, true, true}, flags)
}

func TestPositions(t *testing.T) {
	tokens := scanAll(t, New("a\r\n  bb\u2028c"))
	require.Len(t, tokens, 4)
	assert.Equal(t, token.Position{Offset: 0, Line: 1, Column: 0}, tokens[0].StartPosition)
	assert.Equal(t, token.Position{Offset: 5, Line: 2, Column: 2}, tokens[1].StartPosition)
	assert.Equal(t, token.Position{Offset: 7, Line: 2, Column: 4}, tokens[1].EndPosition)
	assert.Equal(t, token.Position{Offset: 8, Line: 3, Column: 0}, tokens[2].StartPosition)
}

func TestComments(t *testing.T) {
	l := New("/* a */ x // b\ny", WithComments(true))
	scanAll(t, l)
	comments := l.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, "Block", comments[0].Type)
	assert.Equal(t, " a ", comments[0].Value)
	assert.Equal(t, "Line", comments[1].Type)
	assert.Equal(t, " b", comments[1].Value)
	assert.Equal(t, 10, comments[1].StartPosition.Offset)

	_, err := New("/* open").Next()
	assert.ErrorIs(t, err, errz.ErrLexical)
}

func TestScanRegExp(t *testing.T) {
	l := New(`/[/]\/x/gim.test`)
	slash, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "/", slash.Value)

	re, err := l.ScanRegExp(slash)
	require.NoError(t, err)
	assert.Equal(t, token.RegularExpression, re.Type)
	assert.Equal(t, `/[/]\/x/gim`, re.Value)
	assert.Equal(t, &token.Regex{Pattern: `[/]\/x`, Flags: "gim"}, re.Regex)

	next, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, ".", next.Value)
}

func TestRegExpFlags(t *testing.T) {
	tests := []struct {
		input    string
		features feature.Set
		kind     errz.ErrorKind
		ok       bool
	}{
		{"/a/y", 0, errz.ErrUnsupportedFeature, false},
		{"/a/y", feature.Of(feature.RegexYFlag), 0, true},
		{"/a/u", 0, errz.ErrUnsupportedFeature, false},
		{"/a/u", feature.Of(feature.RegexUFlag), 0, true},
		{"/a/gg", 0, errz.ErrLexical, false},
		{"/a/x", 0, errz.ErrLexical, false},
	}
	for _, tt := range tests {
		l := New(tt.input, WithFeatures(tt.features))
		slash, err := l.Next()
		require.NoError(t, err)
		_, err = l.ScanRegExp(slash)
		if tt.ok {
			assert.NoError(t, err, tt.input)
			continue
		}
		assert.ErrorIs(t, err, tt.kind, tt.input)
	}
}

func TestUnterminatedRegExp(t *testing.T) {
	l := New("/abc\n/")
	slash, err := l.Next()
	require.NoError(t, err)
	_, err = l.ScanRegExp(slash)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing /")
}

func TestTemplate(t *testing.T) {
	l := New("`a${x}b\\n${y}`")
	head, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Template, head.Type)
	assert.Equal(t, "a", head.Cooked)
	assert.False(t, head.Tail)

	x, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", x.Value)

	brace, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "}", brace.Value)

	middle, err := l.ScanTemplateContinuation(brace)
	require.NoError(t, err)
	assert.Equal(t, "b\n", middle.Cooked)
	assert.Equal(t, `b\n`, middle.Raw)
	assert.False(t, middle.Tail)

	_, err = l.Next()
	require.NoError(t, err)
	brace, err = l.Next()
	require.NoError(t, err)
	tail, err := l.ScanTemplateContinuation(brace)
	require.NoError(t, err)
	assert.True(t, tail.Tail)
	assert.Equal(t, "", tail.Cooked)
}

func TestTemplateLineTerminators(t *testing.T) {
	tok, err := New("`a\r\nb`").Next()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", tok.Cooked)
	assert.Equal(t, "a\nb", tok.Raw)
	assert.Equal(t, 2, tok.EndPosition.Line)

	_, err = New("`abc").Next()
	assert.ErrorIs(t, err, errz.ErrLexical)

	_, err = New("`\\01`").Next()
	assert.ErrorIs(t, err, errz.ErrLexical)
}

func TestJSXModes(t *testing.T) {
	l := New(`<my-tag a="x &amp; y">hi &lt;3{x}</my-tag>`)
	lt, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "<", lt.Value)

	name, err := l.NextJSXTag()
	require.NoError(t, err)
	assert.Equal(t, token.JSXIdentifier, name.Type)
	assert.Equal(t, "my-tag", name.Value)

	attr, err := l.NextJSXTag()
	require.NoError(t, err)
	assert.Equal(t, "a", attr.Value)

	eq, err := l.NextJSXTag()
	require.NoError(t, err)
	assert.Equal(t, "=", eq.Value)

	str, err := l.NextJSXTag()
	require.NoError(t, err)
	assert.Equal(t, token.String, str.Type)
	assert.Equal(t, `"x &amp; y"`, str.Value)
	assert.Equal(t, "x & y", str.Cooked)

	gt, err := l.NextJSXTag()
	require.NoError(t, err)
	assert.Equal(t, ">", gt.Value)

	text, err := l.NextJSXChild()
	require.NoError(t, err)
	assert.Equal(t, token.JSXText, text.Type)
	assert.Equal(t, "hi &lt;3", text.Value)
	assert.Equal(t, "hi <3", text.Cooked)

	brace, err := l.NextJSXChild()
	require.NoError(t, err)
	assert.Equal(t, "{", brace.Value)
}

func TestSaveRestore(t *testing.T) {
	l := New("a b /* c */ d", WithComments(true))
	_, err := l.Next()
	require.NoError(t, err)
	saved := l.SaveState()

	b1, err := l.Next()
	require.NoError(t, err)
	d1, err := l.Next()
	require.NoError(t, err)
	require.Len(t, l.Comments(), 1)

	l.RestoreState(saved)
	assert.Empty(t, l.Comments())
	b2, err := l.Next()
	require.NoError(t, err)
	d2, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
	assert.Equal(t, d1, d2)
}

func TestIllegalCharacter(t *testing.T) {
	_, err := New("#").Next()
	require.Error(t, err)
	var se *errz.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Line 1: Unexpected token ILLEGAL", se.Message)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 0, se.Column)
	assert.Equal(t, 0, se.Index)
}
