package parser

import (
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// bailout is the panic value used to unwind the parser on the first error.
// It is recovered in parse and at speculation points.
type bailout struct{ err *errz.SyntaxError }

// Error descriptions shared by several productions.
const (
	msgUnexpectedEOS        = "Unexpected end of input"
	msgInvalidLHS           = "Invalid left-hand side in assignment"
	msgStrictReservedWord   = "Use of future reserved word in strict mode"
	msgStrictOctal          = "Octal literals are not allowed in strict mode."
	msgStrictLHSAssignment  = "Assignment to eval or arguments is not allowed in strict mode"
	msgStrictParamDupe      = "Strict mode function may not have duplicate parameter names"
	msgParamDupe            = "Duplicate parameter name not allowed in this context"
	msgStrictParamName      = "Parameter name eval or arguments is not allowed in strict mode"
	msgStrictFunctionName   = "Function name may not be eval or arguments in strict mode"
	msgStrictVarName        = "Variable name may not be eval or arguments in strict mode"
	msgStrictCatchVariable  = "Catch variable may not be eval or arguments in strict mode"
	msgModuleOnly           = "'import' and 'export' may appear only with 'sourceType: module'"
	msgModuleTopLevel       = "'import' and 'export' may only appear at the top level"
	msgIllegalReturn        = "Illegal return statement"
	msgRestParameterLast    = "Rest parameter must be final parameter of an argument list"
	msgRestElementLast      = "Rest element must be last element"
	msgDefaultRestParameter = "Rest parameter can not have a default value"
)

// fail aborts the parse with err.
func (p *Parser) fail(err *errz.SyntaxError) {
	panic(bailout{err})
}

// errorAt aborts the parse with an error of the given kind at pos.
func (p *Parser) errorAt(kind errz.ErrorKind, pos token.Position, format string, args ...any) {
	p.fail(errz.New(kind, pos, format, args...))
}

// unexpected aborts the parse at tok, describing it the way esprima does.
func (p *Parser) unexpected(tok token.Token) {
	p.fail(p.unexpectedError(tok))
}

func (p *Parser) unexpectedError(tok token.Token) *errz.SyntaxError {
	pos := tok.StartPosition
	kind := errz.ErrUnexpectedToken
	switch tok.Type {
	case token.EOF:
		return errz.New(kind, pos, msgUnexpectedEOS)
	case token.Numeric:
		return errz.New(kind, pos, "Unexpected number")
	case token.String:
		return errz.New(kind, pos, "Unexpected string")
	case token.Identifier:
		if p.strict && token.IsStrictModeReservedWord(tok.Value) {
			return errz.New(errz.ErrStrictMode, pos, msgStrictReservedWord)
		}
		return errz.New(kind, pos, "Unexpected identifier")
	case token.Keyword:
		switch tok.Value {
		case "enum", "export", "import", "super":
			return errz.New(kind, pos, "Unexpected reserved word")
		}
	case token.Template:
		return errz.New(kind, pos, "Unexpected quasi %s", tok.Raw)
	}
	return errz.New(kind, pos, "Unexpected token %s", tok.Value)
}

// require aborts the parse with an unsupported feature error at tok unless f
// is enabled.
func (p *Parser) require(f feature.Feature, tok token.Token) {
	p.requireAt(f, tok.StartPosition)
}

func (p *Parser) requireAt(f feature.Feature, pos token.Position) {
	if !p.features.Has(f) {
		p.fail(errz.NewUnsupported(pos, f))
	}
}

// deferred is an error that only applies if an object literal is not later
// reinterpreted as a pattern, such as the "=" of {a = 1}.
type deferred struct {
	pos token.Position
	err *errz.SyntaxError
}

func (p *Parser) deferError(err *errz.SyntaxError, pos token.Position) {
	p.covers = append(p.covers, deferred{pos: pos, err: err})
}

// discardCovers drops deferred errors located inside [start, end).
func (p *Parser) discardCovers(start, end token.Position) {
	// A checkpoint may still refer to the old slice, so never filter in place.
	kept := make([]deferred, 0, len(p.covers))
	for _, d := range p.covers {
		if d.pos.Offset < start.Offset || d.pos.Offset >= end.Offset {
			kept = append(kept, d)
		}
	}
	p.covers = kept
}

// checkCovers reports the earliest deferred error recorded after mark.
func (p *Parser) checkCovers(mark int) {
	if len(p.covers) <= mark {
		return
	}
	first := p.covers[mark]
	for _, d := range p.covers[mark+1:] {
		if d.pos.Offset < first.pos.Offset {
			first = d
		}
	}
	p.fail(first.err)
}
