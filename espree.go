// Package espree parses ECMAScript 2015 source text into an ESTree syntax
// tree.
//
// Optional grammar is enabled per call, either from an espree style Config
// with string keyed ecmaFeatures or with typed options:
//
//	program, err := espree.Parse(ctx, src,
//		espree.WithFeatures(feature.ArrowFunctions, feature.JSX),
//		espree.WithRange())
//
// A failed parse returns a single *errz.SyntaxError. An invalid
// configuration returns a *ConfigError before the input is read.
package espree

import (
	"context"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/parser"
)

// Parse parses src as a complete program.
func Parse(ctx context.Context, src string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	parserOpts, err := o.parserOptions()
	if err != nil {
		return nil, err
	}
	return parser.Parse(ctx, src, parserOpts...)
}

// Tokenize returns the tokens of src. The input is parsed in full, since
// whether a slash starts a regular expression depends on the grammar, so src
// must be a valid program under the given options.
func Tokenize(ctx context.Context, src string, opts ...Option) ([]*ast.Token, error) {
	o := collectOptions(opts...)
	o.config.Tokens = true
	parserOpts, err := o.parserOptions()
	if err != nil {
		return nil, err
	}
	program, err := parser.Parse(ctx, src, parserOpts...)
	if err != nil {
		return nil, err
	}
	return program.Tokens, nil
}
