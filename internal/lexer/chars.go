package lexer

import "unicode"

func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == '\u2028' || ch == '\u2029'
}

func isWhiteSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', '\u00a0', '\ufeff':
		return true
	}
	return ch >= 0x80 && unicode.Is(unicode.Zs, ch)
}

func isDecimalDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isOctalDigit(ch rune) bool {
	return '0' <= ch && ch <= '7'
}

func digitValue(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return 16
}

func isIdentifierStart(ch rune) bool {
	switch {
	case ch == '$' || ch == '_':
		return true
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z':
		return true
	case ch < 0x80:
		return false
	}
	return unicode.IsLetter(ch) || unicode.Is(unicode.Nl, ch)
}

func isIdentifierPart(ch rune) bool {
	switch {
	case isIdentifierStart(ch), isDecimalDigit(ch):
		return true
	case ch < 0x80:
		return false
	case ch == '\u200c' || ch == '\u200d':
		return true
	}
	return unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
