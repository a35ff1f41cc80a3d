package parser

import (
	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/token"
)

// superMode says how a super reference inside a function is treated.
type superMode int

const (
	// superNone: not inside any function.
	superNone superMode = iota
	// superGated: ordinary functions and object methods, where super needs
	// the superInFunctions feature.
	superGated
	// superMethod: class methods.
	superMethod
)

// scope is the enclosing function context. A new scope starts at every
// function boundary; arrow functions copy the super and new.target rules of
// their parent.
type scope struct {
	generator   bool
	returnOK    bool
	super       superMode
	newTargetOK bool

	labels    []*label
	iteration int
	switches  int
}

type label struct {
	name string
	loop bool
}

// enterScope installs s as the current function context and returns a
// function restoring the previous one.
func (p *Parser) enterScope(s *scope) func() {
	outer, pending, allowIn := p.fn, p.pendingLabels, p.allowIn
	p.fn = s
	p.pendingLabels = nil
	p.allowIn = true
	return func() {
		p.fn = outer
		p.pendingLabels = pending
		p.allowIn = allowIn
	}
}

func (p *Parser) findLabel(name string) *label {
	for i := len(p.fn.labels) - 1; i >= 0; i-- {
		if p.fn.labels[i].name == name {
			return p.fn.labels[i]
		}
	}
	return nil
}

// pushLabel declares a label for the statement that follows it.
func (p *Parser) pushLabel(id token.Token) *label {
	if p.findLabel(id.Value) != nil {
		p.errorAt(errz.ErrLabelResolution, id.StartPosition, "Label '%s' has already been declared", id.Value)
	}
	l := &label{name: id.Value}
	p.fn.labels = append(p.fn.labels, l)
	return l
}

func (p *Parser) popLabel() {
	p.fn.labels = p.fn.labels[:len(p.fn.labels)-1]
}

// inLoop runs body as the body of an iteration statement.
func (p *Parser) inLoop(body func() ast.Stmt) ast.Stmt {
	p.fn.iteration++
	defer func() { p.fn.iteration-- }()
	return body()
}
