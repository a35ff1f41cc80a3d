// Package parser is used to generate the ESTree abstract syntax tree (AST)
// for an ECMAScript program.
//
// Parse runs a parser over one input and returns either a complete Program or
// a single *errz.SyntaxError. Optional grammar is enabled per call with
// WithFeatures; a construct whose feature is disabled fails with an
// errz.ErrUnsupportedFeature error rather than being read as something else.
package parser

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/internal/lexer"
	"github.com/RReverser/espree/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 1000

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFeatures sets the enabled optional grammar.
func WithFeatures(features feature.Set) Option {
	return func(p *Parser) {
		p.features = features
	}
}

// WithModule selects the module top-level grammar. Module code is strict and
// may contain import and export declarations.
func WithModule(module bool) Option {
	return func(p *Parser) {
		p.module = module
	}
}

// WithRange attaches [start, end] offsets to every node and token.
func WithRange(enabled bool) Option {
	return func(p *Parser) {
		p.withRange = enabled
	}
}

// WithLoc attaches line/column locations to every node and token.
func WithLoc(enabled bool) Option {
	return func(p *Parser) {
		p.withLoc = enabled
	}
}

// WithTokens records the consumed tokens in Program.Tokens.
func WithTokens(enabled bool) Option {
	return func(p *Parser) {
		p.withTokens = enabled
	}
}

// WithComments records comments in Program.Comments.
func WithComments(enabled bool) Option {
	return func(p *Parser) {
		p.withComments = enabled
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = logger
	}
}

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack exhaustion on deeply nested input.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser holds the state of one parse. It is used once, by Parse.
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	l        *lexer.Lexer
	log      zerolog.Logger
	filename string

	features     feature.Set
	module       bool
	withRange    bool
	withLoc      bool
	withTokens   bool
	withComments bool

	// cur is the lookahead token, not yet consumed.
	cur token.Token

	// prev is the last consumed token. Node spans end at prev.
	prev token.Token

	// tokens consumed so far, when WithTokens is set
	tokens []token.Token

	strict bool
	fn     *scope

	// labels waiting for the statement they label, see parseStatement
	pendingLabels []*label

	// allowIn is false while parsing the head of a for statement
	allowIn bool

	// errors deferred until it is known whether an object literal is
	// reinterpreted as a pattern
	covers []deferred

	// failed arrow parameter attempts by offset of "("
	arrowFailures map[int]*errz.SyntaxError

	// array and object literals written inside parentheses, which may not
	// become destructuring targets
	parenthesized map[ast.Node]bool

	depth    int
	maxDepth int
}

// Parse parses input as a complete program and returns its AST.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	p := &Parser{
		log:           zerolog.Nop(),
		maxDepth:      DefaultMaxDepth,
		allowIn:       true,
		arrowFailures: map[int]*errz.SyntaxError{},
		parenthesized: map[ast.Node]bool{},
	}
	for _, opt := range options {
		opt(p)
	}
	if p.module {
		p.features = p.features.Union(feature.ES6()).With(feature.Modules)
	}
	p.l = lexer.New(input,
		lexer.WithFeatures(p.features),
		lexer.WithComments(p.withComments))
	return p.parse(ctx)
}

// cancelled carries a context error out of the parse.
type cancelled struct{ err error }

func (p *Parser) parse(ctx context.Context) (program *ast.Program, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx = ctx
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.log.Debug().
		Str("sourceType", p.sourceType()).
		Stringer("features", p.features).
		Msg("parse started")

	defer func() {
		if r := recover(); r != nil {
			program = nil
			err = p.recovered(r)
		}
	}()

	p.strict = p.module
	p.fn = &scope{returnOK: !p.module && p.features.Has(feature.GlobalReturn)}
	p.advance(p.l.Next)
	start := p.cur.StartPosition
	body := p.parseBody(func() bool { return p.cur.Type == token.EOF }, true, nil)
	p.checkCovers(0)

	end := p.prev.EndPosition
	if len(body) == 0 && p.prev.Type == "" {
		end = start
	}
	program = &ast.Program{
		Body:            body,
		SourceType:      p.sourceType(),
		IncludeTokens:   p.withTokens,
		IncludeComments: p.withComments,
	}
	ast.SetSpan(program, start, end, p.withRange, p.withLoc)
	if p.withTokens {
		program.Tokens = p.exportTokens()
	}
	if p.withComments {
		program.Comments = p.exportComments()
	}
	return program, nil
}

func (p *Parser) recovered(r any) error {
	switch v := r.(type) {
	case bailout:
		v.err.File = p.filename
		p.log.Debug().
			Str("kind", v.err.Kind.String()).
			Int("line", v.err.Line).
			Int("column", v.err.Column).
			Str("feature", v.err.Feature).
			Msg(v.err.Description)
		return v.err
	case cancelled:
		return v.err
	}
	err := errz.New(errz.ErrInvalidSyntax, p.cur.StartPosition, "Internal parser error: %v", r)
	err.File = p.filename
	return err
}

func (p *Parser) sourceType() string {
	if p.module {
		return "module"
	}
	return "script"
}

// checkContext stops the parse when the context is done.
func (p *Parser) checkContext() {
	if err := p.ctx.Err(); err != nil {
		panic(cancelled{err})
	}
}

// advance consumes the lookahead and scans the next one with scan.
func (p *Parser) advance(scan func() (token.Token, error)) {
	if p.cur.Type != "" {
		p.prev = p.cur
		if p.withTokens {
			p.tokens = append(p.tokens, p.cur)
		}
	}
	tok, err := scan()
	if err != nil {
		p.failErr(err)
	}
	p.cur = tok
}

// next consumes the lookahead and scans the following token in ordinary mode.
func (p *Parser) next() {
	p.advance(p.l.Next)
}

// peek returns the token after the lookahead without consuming anything. A
// token that fails to scan is reported as end of input.
func (p *Parser) peek() token.Token {
	state := p.l.SaveState()
	defer p.l.RestoreState(state)
	tok, err := p.l.Next()
	if err != nil {
		return token.Token{Type: token.EOF}
	}
	return tok
}

// match reports whether the lookahead is the punctuator or keyword value.
func (p *Parser) match(value string) bool {
	return p.cur.Is(value)
}

// eat consumes the lookahead if it matches value.
func (p *Parser) eat(value string) bool {
	if p.cur.Is(value) {
		p.next()
		return true
	}
	return false
}

// expect consumes the lookahead, which must match value.
func (p *Parser) expect(value string) {
	if !p.cur.Is(value) {
		p.unexpected(p.cur)
	}
	p.next()
}

// consumeSemicolon applies automatic semicolon insertion.
func (p *Parser) consumeSemicolon() {
	if p.eat(";") {
		return
	}
	if p.cur.NewlineBefore || p.match("}") || p.cur.Type == token.EOF {
		return
	}
	p.unexpected(p.cur)
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorAt(errz.ErrInvalidSyntax, p.cur.StartPosition, "Maximum nesting depth exceeded")
	}
}

func (p *Parser) leave() {
	p.depth--
}

// finish sets the span of n from start to the end of the last consumed token.
func finish[T ast.Node](p *Parser, start token.Position, n T) T {
	ast.SetSpan(n, start, p.prev.EndPosition, p.withRange, p.withLoc)
	return n
}

// spanOf gives n the same span as an existing node.
func spanOf[T ast.Node](p *Parser, from ast.Node, n T) T {
	ast.SetSpan(n, from.Pos(), from.End(), p.withRange, p.withLoc)
	return n
}

func (p *Parser) location(start, end token.Position) (*[2]int, *ast.SourceLocation) {
	var rng *[2]int
	var loc *ast.SourceLocation
	if p.withRange {
		rng = &[2]int{start.Offset, end.Offset}
	}
	if p.withLoc {
		loc = &ast.SourceLocation{Start: start, End: end}
	}
	return rng, loc
}

func (p *Parser) exportTokens() []*ast.Token {
	out := make([]*ast.Token, 0, len(p.tokens))
	for _, tok := range p.tokens {
		rng, loc := p.location(tok.StartPosition, tok.EndPosition)
		out = append(out, &ast.Token{
			Type:  tok.Type,
			Value: tok.Value,
			Regex: tok.Regex,
			Range: rng,
			Loc:   loc,
		})
	}
	return out
}

func (p *Parser) exportComments() []*ast.Comment {
	comments := p.l.Comments()
	out := make([]*ast.Comment, 0, len(comments))
	for _, c := range comments {
		rng, loc := p.location(c.StartPosition, c.EndPosition)
		out = append(out, &ast.Comment{
			Type:  c.Type,
			Value: c.Value,
			Range: rng,
			Loc:   loc,
		})
	}
	return out
}

// failErr aborts the parse with an error returned by the lexer.
func (p *Parser) failErr(err error) {
	var se *errz.SyntaxError
	if !errors.As(err, &se) {
		se = errz.New(errz.ErrLexical, p.cur.EndPosition, "%s", err.Error())
	}
	p.fail(se)
}
