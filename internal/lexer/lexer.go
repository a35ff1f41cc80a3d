// Package lexer converts ECMAScript source into tokens.
//
// The lexer is pull based: the parser asks for one token at a time and, for
// the few places where the token class depends on grammatical context, asks
// for the current token to be rescanned in a different way (regular
// expressions, template continuations) or for the next token to be scanned in
// a JSX mode.
package lexer

import (
	"html"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// Lexer is used to tokenize source code.
type Lexer struct {
	src []rune

	// index is the offset of the next unread character
	index int

	// line is the 1-indexed line of the next unread character
	line int

	// lineStart is the offset of the first character of the current line
	lineStart int

	features     feature.Set
	keepComments bool
	comments     []token.Comment
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFeatures sets the features that control feature-aware lexical rules,
// such as binary literals and regular expression flags.
func WithFeatures(features feature.Set) Option {
	return func(l *Lexer) {
		l.features = features
	}
}

// WithComments makes the lexer record the comments it skips.
func WithComments(keep bool) Option {
	return func(l *Lexer) {
		l.keepComments = keep
	}
}

// New returns a lexer for the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{src: []rune(input), line: 1}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// State is a saved lexer position.
type State struct {
	index     int
	line      int
	lineStart int
	comments  int
}

// SaveState returns the current position so that it can be restored later.
func (l *Lexer) SaveState() State {
	return State{
		index:     l.index,
		line:      l.line,
		lineStart: l.lineStart,
		comments:  len(l.comments),
	}
}

// RestoreState rewinds the lexer to a previously saved position.
func (l *Lexer) RestoreState(s State) {
	l.index = s.index
	l.line = s.line
	l.lineStart = s.lineStart
	l.comments = l.comments[:s.comments]
}

// Comments returns the comments skipped so far.
func (l *Lexer) Comments() []token.Comment {
	return l.comments
}

// Slice returns the source text between two offsets.
func (l *Lexer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(l.src) {
		end = len(l.src)
	}
	if start >= end {
		return ""
	}
	return string(l.src[start:end])
}

// Len returns the length of the input in code points.
func (l *Lexer) Len() int {
	return len(l.src)
}

// Position returns the position of the next unread character.
func (l *Lexer) Position() token.Position {
	return token.Position{Offset: l.index, Line: l.line, Column: l.index - l.lineStart}
}

func (l *Lexer) reset(pos token.Position) {
	l.index = pos.Offset
	l.line = pos.Line
	l.lineStart = pos.Offset - pos.Column
}

func (l *Lexer) peekAt(n int) rune {
	if i := l.index + n; i < len(l.src) {
		return l.src[i]
	}
	return -1
}

func (l *Lexer) eof() bool {
	return l.index >= len(l.src)
}

func (l *Lexer) newToken(typ token.Type, start token.Position, value string) token.Token {
	return token.Token{
		Type:          typ,
		Value:         value,
		StartPosition: start,
		EndPosition:   l.Position(),
	}
}

func (l *Lexer) sourceFrom(start token.Position) string {
	return string(l.src[start.Offset:l.index])
}

func (l *Lexer) illegal(pos token.Position) error {
	return errz.New(errz.ErrLexical, pos, "Unexpected token ILLEGAL")
}

// Next scans the next token in ordinary (non-JSX) mode. A "/" is always
// returned as a punctuator; see ScanRegExp.
func (l *Lexer) Next() (token.Token, error) {
	newline, err := l.skipSpace()
	if err != nil {
		return token.Token{}, err
	}
	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	tok.NewlineBefore = newline
	return tok, nil
}

func (l *Lexer) scan() (token.Token, error) {
	start := l.Position()
	if l.eof() {
		return l.newToken(token.EOF, start, ""), nil
	}
	ch := l.src[l.index]
	switch {
	case isIdentifierStart(ch) || ch == '\\':
		return l.scanIdentifier(start)
	case ch == '\'' || ch == '"':
		return l.scanString(start)
	case ch == '`':
		l.index++
		return l.scanTemplate(start)
	case isDecimalDigit(ch), ch == '.' && isDecimalDigit(l.peekAt(1)):
		return l.scanNumber(start)
	}
	return l.scanPunctuator(start)
}

func (l *Lexer) skipLineTerminator() {
	ch := l.src[l.index]
	l.index++
	if ch == '\r' && l.peekAt(0) == '\n' {
		l.index++
	}
	l.line++
	l.lineStart = l.index
}

// skipSpace skips whitespace and comments and reports whether a line
// terminator was among them.
func (l *Lexer) skipSpace() (bool, error) {
	newline := false
	for !l.eof() {
		ch := l.src[l.index]
		switch {
		case isWhiteSpace(ch):
			l.index++
		case isLineTerminator(ch):
			l.skipLineTerminator()
			newline = true
		case ch == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
		case ch == '/' && l.peekAt(1) == '*':
			sawNewline, err := l.skipBlockComment()
			if err != nil {
				return false, err
			}
			newline = newline || sawNewline
		default:
			return newline, nil
		}
	}
	return newline, nil
}

func (l *Lexer) skipLineComment() {
	start := l.Position()
	l.index += 2
	for !l.eof() && !isLineTerminator(l.src[l.index]) {
		l.index++
	}
	l.addComment("Line", start, string(l.src[start.Offset+2:l.index]))
}

func (l *Lexer) skipBlockComment() (bool, error) {
	start := l.Position()
	l.index += 2
	newline := false
	for {
		if l.eof() {
			return false, errz.New(errz.ErrLexical, start, "Unterminated comment")
		}
		ch := l.src[l.index]
		if ch == '*' && l.peekAt(1) == '/' {
			l.index += 2
			break
		}
		if isLineTerminator(ch) {
			l.skipLineTerminator()
			newline = true
			continue
		}
		l.index++
	}
	l.addComment("Block", start, string(l.src[start.Offset+2:l.index-2]))
	return newline, nil
}

func (l *Lexer) addComment(kind string, start token.Position, value string) {
	if !l.keepComments {
		return
	}
	l.comments = append(l.comments, token.Comment{
		Type:          kind,
		Value:         value,
		StartPosition: start,
		EndPosition:   l.Position(),
	})
}

func (l *Lexer) scanIdentifier(start token.Position) (token.Token, error) {
	name, escaped, err := l.scanIdentifierName()
	if err != nil {
		return token.Token{}, err
	}
	typ := token.LookupIdentifier(name)
	if escaped && typ != token.Identifier {
		return token.Token{}, errz.New(errz.ErrLexical, start, "Keyword must not contain escaped characters")
	}
	tok := l.newToken(typ, start, name)
	tok.Escaped = escaped
	return tok, nil
}

func (l *Lexer) scanIdentifierName() (string, bool, error) {
	var b strings.Builder
	escaped := false
	for first := true; !l.eof(); first = false {
		ch := l.src[l.index]
		if ch == '\\' {
			escStart := l.Position()
			if l.peekAt(1) != 'u' {
				return "", false, l.illegal(escStart)
			}
			l.index += 2
			r, err := l.scanUnicodeEscape(escStart)
			if err != nil {
				return "", false, err
			}
			if (first && !isIdentifierStart(r)) || (!first && !isIdentifierPart(r)) {
				return "", false, errz.New(errz.ErrLexical, escStart, "Invalid Unicode escape sequence")
			}
			b.WriteRune(r)
			escaped = true
			continue
		}
		if (first && !isIdentifierStart(ch)) || (!first && !isIdentifierPart(ch)) {
			break
		}
		b.WriteRune(ch)
		l.index++
	}
	return b.String(), escaped, nil
}

// scanUnicodeEscape reads the part of a unicode escape following "\u".
func (l *Lexer) scanUnicodeEscape(escStart token.Position) (rune, error) {
	if l.peekAt(0) == '{' {
		if !l.features.Has(feature.UnicodeCodePointEscapes) {
			return 0, errz.NewUnsupported(escStart, feature.UnicodeCodePointEscapes)
		}
		l.index++
		code, digits := 0, 0
		for !l.eof() && l.src[l.index] != '}' {
			d := digitValue(l.src[l.index])
			if d >= 16 {
				return 0, errz.New(errz.ErrLexical, escStart, "Invalid Unicode escape sequence")
			}
			code = code*16 + d
			if code > 0x10FFFF {
				return 0, errz.New(errz.ErrLexical, escStart, "Undefined Unicode code-point")
			}
			digits++
			l.index++
		}
		if l.eof() || digits == 0 {
			return 0, errz.New(errz.ErrLexical, escStart, "Invalid Unicode escape sequence")
		}
		l.index++
		return rune(code), nil
	}
	code, err := l.scanHexDigits(escStart, 4)
	if err != nil {
		return 0, errz.New(errz.ErrLexical, escStart, "Invalid Unicode escape sequence")
	}
	return code, nil
}

func (l *Lexer) scanHexDigits(escStart token.Position, n int) (rune, error) {
	code := 0
	for i := 0; i < n; i++ {
		d := digitValue(l.peekAt(0))
		if d >= 16 {
			return 0, errz.New(errz.ErrLexical, escStart, "Invalid hexadecimal escape sequence")
		}
		code = code*16 + d
		l.index++
	}
	return rune(code), nil
}

// scanEscape reads an escape sequence after the backslash and appends its
// value to cooked. It reports whether the escape was a legacy octal escape.
func (l *Lexer) scanEscape(escStart token.Position, cooked *[]rune, inTemplate bool) (bool, error) {
	if l.eof() {
		return false, errz.New(errz.ErrLexical, escStart, "Unterminated string literal")
	}
	ch := l.src[l.index]
	if isLineTerminator(ch) {
		l.skipLineTerminator()
		return false, nil
	}
	l.index++
	switch ch {
	case 'n':
		*cooked = append(*cooked, '\n')
	case 'r':
		*cooked = append(*cooked, '\r')
	case 't':
		*cooked = append(*cooked, '\t')
	case 'b':
		*cooked = append(*cooked, '\b')
	case 'f':
		*cooked = append(*cooked, '\f')
	case 'v':
		*cooked = append(*cooked, '\v')
	case 'u':
		r, err := l.scanUnicodeEscape(escStart)
		if err != nil {
			return false, err
		}
		*cooked = append(*cooked, r)
	case 'x':
		r, err := l.scanHexDigits(escStart, 2)
		if err != nil {
			return false, err
		}
		*cooked = append(*cooked, r)
	default:
		if !isOctalDigit(ch) {
			*cooked = append(*cooked, ch)
			return false, nil
		}
		if ch == '0' && !isDecimalDigit(l.peekAt(0)) {
			*cooked = append(*cooked, 0)
			return false, nil
		}
		if inTemplate {
			return false, errz.New(errz.ErrLexical, escStart, "Octal literals are not allowed in template strings.")
		}
		code := ch - '0'
		if isOctalDigit(l.peekAt(0)) {
			code = code*8 + l.src[l.index] - '0'
			l.index++
			if ch <= '3' && isOctalDigit(l.peekAt(0)) {
				code = code*8 + l.src[l.index] - '0'
				l.index++
			}
		}
		*cooked = append(*cooked, code)
		return true, nil
	}
	return false, nil
}

// decodeUTF16 joins surrogate pairs produced by consecutive \u escapes.
func decodeUTF16(runes []rune) string {
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if utf16.IsSurrogate(r) && i+1 < len(runes) {
			if pair := utf16.DecodeRune(r, runes[i+1]); pair != unicode.ReplacementChar {
				b.WriteRune(pair)
				i++
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	quote := l.src[l.index]
	l.index++
	var cooked []rune
	octal := false
	for {
		if l.eof() || isLineTerminator(l.src[l.index]) {
			return token.Token{}, errz.New(errz.ErrLexical, start, "Unterminated string literal")
		}
		ch := l.src[l.index]
		if ch == quote {
			l.index++
			break
		}
		if ch == '\\' {
			escStart := l.Position()
			l.index++
			isOctal, err := l.scanEscape(escStart, &cooked, false)
			if err != nil {
				return token.Token{}, err
			}
			octal = octal || isOctal
			continue
		}
		cooked = append(cooked, ch)
		l.index++
	}
	tok := l.newToken(token.String, start, l.sourceFrom(start))
	tok.Cooked = decodeUTF16(cooked)
	tok.Octal = octal
	return tok, nil
}

// scanTemplate scans a template chunk. The opening "`" or "}" has already
// been consumed.
func (l *Lexer) scanTemplate(start token.Position) (token.Token, error) {
	var cooked []rune
	rawStart := l.index
	rawEnd := 0
	tail := false
	for {
		if l.eof() {
			return token.Token{}, errz.New(errz.ErrLexical, start, "Unterminated template literal")
		}
		ch := l.src[l.index]
		if ch == '`' {
			rawEnd = l.index
			l.index++
			tail = true
			break
		}
		if ch == '$' && l.peekAt(1) == '{' {
			rawEnd = l.index
			l.index += 2
			break
		}
		if ch == '\\' {
			escStart := l.Position()
			l.index++
			if _, err := l.scanEscape(escStart, &cooked, true); err != nil {
				return token.Token{}, err
			}
			continue
		}
		if isLineTerminator(ch) {
			if ch == '\r' {
				cooked = append(cooked, '\n')
			} else {
				cooked = append(cooked, ch)
			}
			l.skipLineTerminator()
			continue
		}
		cooked = append(cooked, ch)
		l.index++
	}
	raw := string(l.src[rawStart:rawEnd])
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	tok := l.newToken(token.Template, start, l.sourceFrom(start))
	tok.Cooked = decodeUTF16(cooked)
	tok.Raw = raw
	tok.Tail = tail
	return tok, nil
}

// ScanTemplateContinuation rescans a "}" token that closes a template
// substitution as the next template chunk.
func (l *Lexer) ScanTemplateContinuation(tok token.Token) (token.Token, error) {
	l.reset(tok.StartPosition)
	start := l.Position()
	l.index++
	next, err := l.scanTemplate(start)
	if err != nil {
		return token.Token{}, err
	}
	next.NewlineBefore = tok.NewlineBefore
	return next, nil
}

func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	if l.src[l.index] == '0' {
		switch next := l.peekAt(1); next {
		case 'x', 'X':
			l.index += 2
			return l.scanRadix(start, 16)
		case 'b', 'B':
			if !l.features.Has(feature.BinaryLiterals) {
				return token.Token{}, errz.NewUnsupported(start, feature.BinaryLiterals)
			}
			l.index += 2
			return l.scanRadix(start, 2)
		case 'o', 'O':
			if !l.features.Has(feature.OctalLiterals) {
				return token.Token{}, errz.NewUnsupported(start, feature.OctalLiterals)
			}
			l.index += 2
			return l.scanRadix(start, 8)
		default:
			if isDecimalDigit(next) {
				return l.scanLegacyOctal(start)
			}
		}
	}

	for isDecimalDigit(l.peekAt(0)) {
		l.index++
	}
	if l.peekAt(0) == '.' {
		l.index++
		for isDecimalDigit(l.peekAt(0)) {
			l.index++
		}
	}
	if ch := l.peekAt(0); ch == 'e' || ch == 'E' {
		l.index++
		if ch := l.peekAt(0); ch == '+' || ch == '-' {
			l.index++
		}
		if !isDecimalDigit(l.peekAt(0)) {
			return token.Token{}, l.illegal(l.Position())
		}
		for isDecimalDigit(l.peekAt(0)) {
			l.index++
		}
	}
	if err := l.checkAfterNumber(); err != nil {
		return token.Token{}, err
	}
	text := l.sourceFrom(start)
	// Out of range values become infinities, as in JavaScript.
	value, _ := strconv.ParseFloat(text, 64)
	tok := l.newToken(token.Numeric, start, text)
	tok.Number = value
	return tok, nil
}

func (l *Lexer) scanRadix(start token.Position, base int) (token.Token, error) {
	value := 0.0
	digits := 0
	for !l.eof() {
		d := digitValue(l.src[l.index])
		if d >= base {
			break
		}
		value = value*float64(base) + float64(d)
		digits++
		l.index++
	}
	if digits == 0 {
		return token.Token{}, l.illegal(l.Position())
	}
	if err := l.checkAfterNumber(); err != nil {
		return token.Token{}, err
	}
	tok := l.newToken(token.Numeric, start, l.sourceFrom(start))
	tok.Number = value
	return tok, nil
}

// scanLegacyOctal scans a number with a leading zero such as 0777. When a
// digit 8 or 9 appears the literal is decimal.
func (l *Lexer) scanLegacyOctal(start token.Position) (token.Token, error) {
	l.index++
	octal := true
	for isDecimalDigit(l.peekAt(0)) {
		if !isOctalDigit(l.src[l.index]) {
			octal = false
		}
		l.index++
	}
	if !octal {
		l.index = start.Offset
		return l.scanDecimalTail(start)
	}
	if err := l.checkAfterNumber(); err != nil {
		return token.Token{}, err
	}
	text := l.sourceFrom(start)
	value := 0.0
	for _, ch := range text[1:] {
		value = value*8 + float64(ch-'0')
	}
	tok := l.newToken(token.Numeric, start, text)
	tok.Number = value
	tok.Octal = true
	return tok, nil
}

// scanDecimalTail scans a decimal literal whose integer part has a leading
// zero, such as 089 or 09.5.
func (l *Lexer) scanDecimalTail(start token.Position) (token.Token, error) {
	for isDecimalDigit(l.peekAt(0)) {
		l.index++
	}
	if l.peekAt(0) == '.' {
		l.index++
		for isDecimalDigit(l.peekAt(0)) {
			l.index++
		}
	}
	if err := l.checkAfterNumber(); err != nil {
		return token.Token{}, err
	}
	text := l.sourceFrom(start)
	value, _ := strconv.ParseFloat(text, 64)
	tok := l.newToken(token.Numeric, start, text)
	tok.Number = value
	return tok, nil
}

func (l *Lexer) checkAfterNumber() error {
	if ch := l.peekAt(0); isIdentifierStart(ch) || isDecimalDigit(ch) || ch == '\\' {
		return l.illegal(l.Position())
	}
	return nil
}

func (l *Lexer) scanPunctuator(start token.Position) (token.Token, error) {
	for n := 4; n >= 1; n-- {
		if l.index+n > len(l.src) {
			continue
		}
		if s := string(l.src[l.index : l.index+n]); token.IsPunctuator(s) {
			l.index += n
			return l.newToken(token.Punctuator, start, s), nil
		}
	}
	return token.Token{}, l.illegal(start)
}

// ScanRegExp rescans a "/" or "/=" punctuator as a regular expression
// literal. The parser calls it when a primary expression is expected.
func (l *Lexer) ScanRegExp(tok token.Token) (token.Token, error) {
	l.reset(tok.StartPosition)
	start := l.Position()
	l.index++
	inClass := false
	for {
		if l.eof() || isLineTerminator(l.src[l.index]) {
			return token.Token{}, errz.New(errz.ErrLexical, start, "Invalid regular expression: missing /")
		}
		ch := l.src[l.index]
		l.index++
		if ch == '\\' {
			if l.eof() || isLineTerminator(l.src[l.index]) {
				return token.Token{}, errz.New(errz.ErrLexical, start, "Invalid regular expression: missing /")
			}
			l.index++
			continue
		}
		if inClass {
			inClass = ch != ']'
		} else if ch == '[' {
			inClass = true
		} else if ch == '/' {
			break
		}
	}
	pattern := string(l.src[start.Offset+1 : l.index-1])

	flagsStart := l.Position()
	for !l.eof() && (isIdentifierPart(l.src[l.index]) || l.src[l.index] == '\\') {
		if l.src[l.index] == '\\' {
			return token.Token{}, errz.New(errz.ErrLexical, l.Position(), "Invalid regular expression flags")
		}
		l.index++
	}
	flags := string(l.src[flagsStart.Offset:l.index])
	if err := l.checkRegExpFlags(flags, flagsStart); err != nil {
		return token.Token{}, err
	}

	next := l.newToken(token.RegularExpression, start, l.sourceFrom(start))
	next.Regex = &token.Regex{Pattern: pattern, Flags: flags}
	next.NewlineBefore = tok.NewlineBefore
	return next, nil
}

func (l *Lexer) checkRegExpFlags(flags string, pos token.Position) error {
	seen := map[rune]bool{}
	for i, ch := range []rune(flags) {
		flagPos := pos
		flagPos.Offset += i
		flagPos.Column += i
		switch ch {
		case 'g', 'i', 'm':
		case 'y':
			if !l.features.Has(feature.RegexYFlag) {
				return errz.NewUnsupported(flagPos, feature.RegexYFlag)
			}
		case 'u':
			if !l.features.Has(feature.RegexUFlag) {
				return errz.NewUnsupported(flagPos, feature.RegexUFlag)
			}
		default:
			return errz.New(errz.ErrLexical, flagPos, "Invalid regular expression flags")
		}
		if seen[ch] {
			return errz.New(errz.ErrLexical, flagPos, "Invalid regular expression flags")
		}
		seen[ch] = true
	}
	return nil
}

// NextJSXTag scans the next token inside a JSX opening or closing tag:
// names (which may contain "-"), attribute strings and single character
// punctuators.
func (l *Lexer) NextJSXTag() (token.Token, error) {
	newline, err := l.skipSpace()
	if err != nil {
		return token.Token{}, err
	}
	start := l.Position()
	if l.eof() {
		return l.newToken(token.EOF, start, ""), nil
	}
	var tok token.Token
	switch ch := l.src[l.index]; {
	case ch == '"' || ch == '\'':
		tok, err = l.scanJSXString(start)
	case isIdentifierStart(ch):
		for !l.eof() && (isIdentifierPart(l.src[l.index]) || l.src[l.index] == '-') {
			l.index++
		}
		tok = l.newToken(token.JSXIdentifier, start, l.sourceFrom(start))
	case strings.ContainsRune("<>/=:{}.", ch):
		l.index++
		tok = l.newToken(token.Punctuator, start, string(ch))
	default:
		tok, err = l.scan()
	}
	if err != nil {
		return token.Token{}, err
	}
	tok.NewlineBefore = newline
	return tok, nil
}

func (l *Lexer) scanJSXString(start token.Position) (token.Token, error) {
	quote := l.src[l.index]
	l.index++
	for {
		if l.eof() {
			return token.Token{}, errz.New(errz.ErrLexical, start, "Unterminated string literal")
		}
		ch := l.src[l.index]
		if ch == quote {
			l.index++
			break
		}
		if isLineTerminator(ch) {
			l.skipLineTerminator()
			continue
		}
		l.index++
	}
	text := l.sourceFrom(start)
	tok := l.newToken(token.String, start, text)
	tok.Cooked = html.UnescapeString(text[1 : len(text)-1])
	return tok, nil
}

// NextJSXChild scans the next token between JSX tags: a "<" or "{"
// punctuator, or a run of raw text up to one of them.
func (l *Lexer) NextJSXChild() (token.Token, error) {
	start := l.Position()
	if l.eof() {
		return l.newToken(token.EOF, start, ""), nil
	}
	if ch := l.src[l.index]; ch == '<' || ch == '{' {
		l.index++
		return l.newToken(token.Punctuator, start, string(ch)), nil
	}
	for !l.eof() {
		ch := l.src[l.index]
		if ch == '<' || ch == '{' {
			break
		}
		if isLineTerminator(ch) {
			l.skipLineTerminator()
			continue
		}
		l.index++
	}
	text := l.sourceFrom(start)
	tok := l.newToken(token.JSXText, start, text)
	tok.Cooked = html.UnescapeString(text)
	return tok, nil
}
