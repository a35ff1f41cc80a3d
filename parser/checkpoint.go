package parser

import (
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/internal/lexer"
	"github.com/RReverser/espree/token"
)

// checkpoint is a restorable parser position used for speculative parsing.
type checkpoint struct {
	lex     lexer.State
	cur     token.Token
	prev    token.Token
	tokens  int
	covers  int
	strict  bool
	allowIn bool
	fn      *scope
	labels  int
	depth   int
}

func (p *Parser) save() checkpoint {
	return checkpoint{
		lex:     p.l.SaveState(),
		cur:     p.cur,
		prev:    p.prev,
		tokens:  len(p.tokens),
		covers:  len(p.covers),
		strict:  p.strict,
		allowIn: p.allowIn,
		fn:      p.fn,
		labels:  len(p.fn.labels),
		depth:   p.depth,
	}
}

func (p *Parser) restore(c checkpoint) {
	p.l.RestoreState(c.lex)
	p.cur = c.cur
	p.prev = c.prev
	p.tokens = p.tokens[:c.tokens]
	p.covers = p.covers[:c.covers]
	p.strict = c.strict
	p.allowIn = c.allowIn
	p.fn = c.fn
	p.fn.labels = p.fn.labels[:c.labels]
	p.depth = c.depth
}

// try runs fn speculatively. If fn fails, the parser is rewound to where it
// was before the call and the error is returned.
func (p *Parser) try(fn func()) (err *errz.SyntaxError) {
	c := p.save()
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.restore(c)
			err = b.err
		}
	}()
	fn()
	return nil
}
