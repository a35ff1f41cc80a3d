package parser

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/token"
)

// Core parser tests (parser.go)
// - Positions, range and loc
// - Context cancellation
// - Max depth limits
// - Determinism and concurrent use
// - Tokens and comments output

func parse(t *testing.T, src string, opts ...Option) *ast.Program {
	t.Helper()
	program, err := Parse(context.Background(), src, opts...)
	require.NoError(t, err)
	return program
}

func parseError(t *testing.T, src string, opts ...Option) *errz.SyntaxError {
	t.Helper()
	_, err := Parse(context.Background(), src, opts...)
	require.Error(t, err)
	var se *errz.SyntaxError
	require.True(t, errors.As(err, &se), "unexpected error type %T", err)
	return se
}

func features(fs ...feature.Feature) Option {
	return WithFeatures(feature.Of(fs...))
}

func es6() Option {
	return WithFeatures(feature.ES6())
}

func firstExpr(t *testing.T, program *ast.Program) ast.Expr {
	t.Helper()
	require.NotEmpty(t, program.Body)
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok, "first statement is %T", program.Body[0])
	return stmt.Expression
}

func TestVariableDeclaration(t *testing.T) {
	program := parse(t, "var a = 1, b;")
	require.Len(t, program.Body, 1)
	decl := program.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, "var", decl.Kind)
	require.Len(t, decl.Declarations, 2)
	assert.Equal(t, "a", decl.Declarations[0].ID.(*ast.Identifier).Name)
	lit := decl.Declarations[0].Init.(*ast.Literal)
	assert.Equal(t, float64(1), lit.Value)
	assert.Equal(t, "1", lit.Raw)
	assert.Nil(t, decl.Declarations[1].Init)
	assert.Equal(t, "script", program.SourceType)
}

func TestPositions(t *testing.T) {
	program := parse(t, "\n  foo;", WithRange(true), WithLoc(true))
	stmt := program.Body[0].(*ast.ExpressionStatement)
	id := stmt.Expression.(*ast.Identifier)

	assert.Equal(t, &[2]int{3, 6}, id.Range)
	require.NotNil(t, id.Loc)
	assert.Equal(t, 2, id.Loc.Start.Line)
	assert.Equal(t, 2, id.Loc.Start.Column)
	assert.Equal(t, 2, id.Loc.End.Line)
	assert.Equal(t, 5, id.Loc.End.Column)
	assert.Equal(t, &[2]int{3, 7}, stmt.Range)
	assert.Equal(t, &[2]int{3, 7}, program.Range)
}

func TestPositionsOmittedByDefault(t *testing.T) {
	program := parse(t, "foo;")
	id := firstExpr(t, program).(*ast.Identifier)
	assert.Nil(t, id.Range)
	assert.Nil(t, id.Loc)
	assert.Equal(t, 0, id.Pos().Offset)
	assert.Equal(t, 3, id.End().Offset)
}

func TestEmptyProgram(t *testing.T) {
	program := parse(t, "", WithRange(true))
	assert.Empty(t, program.Body)
	assert.NotNil(t, program.Body)
	assert.Equal(t, &[2]int{0, 0}, program.Range)
}

const everything = `
var [a, , ...b] = c, {d, e: {f = 1}} = g;
let h = (i, j = 2, ...k) => { return i + j; };
const l = function* m() { yield* [1, 2]; };
class N extends O {
  constructor() { super(); }
  static get p() { return new.target; }
  [q](r) { super.s(r); }
}
for (let t of u) { continue; }
for (var v in w) break;
x: do { if (y) break x; } while (false);
switch (z) { case 1: default: }
try { throw new Error("e"); } catch ({message}) {} finally {}
({a, b() {}, get c() { return 1; }, set c(v) {}, [d]: e, ...f});
[a, b] = [b, a];
` + "tag`x${a}y${b}z`;" + `
var el = <div a="b" {...c} d={e}>text{f}<g:h /><i.j></i.j></div>;
/re/g.test(typeof void delete a.b);
a ? b : c, a || b && c | d ^ e & f == g < h << i + j * k;
`

func TestRangeAndLocOnEveryNode(t *testing.T) {
	set := feature.ES6().With(feature.JSX, feature.ExperimentalObjectRestSpread)
	program := parse(t, everything, WithFeatures(set), WithRange(true), WithLoc(true))

	count := 0
	for node := range ast.Preorder(program) {
		count++
		data, err := json.Marshal(node)
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Contains(t, fields, "range", node.Type())
		assert.Contains(t, fields, "loc", node.Type())

		rng, ok := fields["range"].([]any)
		if assert.True(t, ok, node.Type()) && assert.Len(t, rng, 2) {
			assert.Equal(t, float64(node.Pos().Offset), rng[0], node.Type())
			assert.Equal(t, float64(node.End().Offset), rng[1], node.Type())
			assert.LessOrEqual(t, rng[0], rng[1], node.Type())
		}
	}
	assert.Greater(t, count, 150)
}

func TestDeterminism(t *testing.T) {
	set := feature.ES6().With(feature.JSX, feature.ExperimentalObjectRestSpread)
	opts := []Option{WithFeatures(set), WithRange(true), WithLoc(true), WithTokens(true)}
	first := parse(t, everything, opts...)
	second := parse(t, everything, opts...)
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestConcurrentParses(t *testing.T) {
	set := feature.ES6().With(feature.JSX, feature.ExperimentalObjectRestSpread)
	opts := []Option{WithFeatures(set), WithRange(true)}
	expected, err := json.Marshal(parse(t, everything, opts...))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			program, err := Parse(context.Background(), everything, opts...)
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = json.Marshal(program)
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, string(expected), string(results[i]))
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	program, err := Parse(ctx, "var a = 1;")
	assert.Nil(t, program)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMaxDepth(t *testing.T) {
	input := strings.Repeat("[", 2000) + strings.Repeat("]", 2000)
	err := parseError(t, input)
	assert.Equal(t, errz.ErrInvalidSyntax, err.Kind)
	assert.Contains(t, err.Message, "Maximum nesting depth exceeded")

	input = strings.Repeat("[", 50) + strings.Repeat("]", 50)
	parse(t, input, WithMaxDepth(200))
	err = parseError(t, input, WithMaxDepth(20))
	assert.Contains(t, err.Message, "Maximum nesting depth exceeded")
}

func TestMaxDepthRightRecursion(t *testing.T) {
	tests := []struct {
		name string
		link string
		tail string
	}{
		{"assignment", "a = ", "1"},
		{"conditional", "a ? b : ", "c"},
		{"arrow", "a => ", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, strings.Repeat(tt.link, 2000)+tt.tail, es6())
			assert.Equal(t, errz.ErrInvalidSyntax, err.Kind)
			assert.Contains(t, err.Message, "Maximum nesting depth exceeded")

			input := strings.Repeat(tt.link, 50) + tt.tail
			parse(t, input, es6(), WithMaxDepth(200))
			err = parseError(t, input, es6(), WithMaxDepth(20))
			assert.Contains(t, err.Message, "Maximum nesting depth exceeded")
		})
	}
}

func TestErrorDetails(t *testing.T) {
	err := parseError(t, "var a = ;", WithFilename("a.js"))
	assert.Equal(t, errz.ErrUnexpectedToken, err.Kind)
	assert.Equal(t, "Line 1: Unexpected token ;", err.Message)
	assert.Equal(t, "Unexpected token ;", err.Description)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 8, err.Column)
	assert.Equal(t, 8, err.Index)
	assert.Equal(t, "a.js", err.File)
	assert.Equal(t, "a.js: Line 1: Unexpected token ;", err.Error())
}

func TestUnexpectedTokenMessages(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"var", "Line 1: Unexpected end of input"},
		{"a b", "Line 1: Unexpected identifier"},
		{"a 1", "Line 1: Unexpected number"},
		{"a 'x'", "Line 1: Unexpected string"},
		{"var if = 1", "Line 1: Unexpected token if"},
		{"a\n)", "Line 2: Unexpected token )"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseError(t, tt.input)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestTokensAndComments(t *testing.T) {
	program := parse(t, "// hi\na = /x/g; /* end */", WithTokens(true), WithComments(true), WithRange(true))
	require.Len(t, program.Tokens, 4)
	assert.Equal(t, token.Identifier, program.Tokens[0].Type)
	assert.Equal(t, "a", program.Tokens[0].Value)
	assert.Equal(t, &[2]int{6, 7}, program.Tokens[0].Range)
	assert.Equal(t, token.Punctuator, program.Tokens[1].Type)
	assert.Equal(t, token.RegularExpression, program.Tokens[2].Type)
	assert.Equal(t, "/x/g", program.Tokens[2].Value)
	assert.Equal(t, &token.Regex{Pattern: "x", Flags: "g"}, program.Tokens[2].Regex)
	assert.Equal(t, ";", program.Tokens[3].Value)

	require.Len(t, program.Comments, 2)
	assert.Equal(t, "Line", program.Comments[0].Type)
	assert.Equal(t, " hi", program.Comments[0].Value)
	assert.Equal(t, "Block", program.Comments[1].Type)
	assert.Equal(t, " end ", program.Comments[1].Value)

	data, err := json.Marshal(program)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tokens":[`)
	assert.Contains(t, string(data), `"comments":[`)

	plain, err := json.Marshal(parse(t, "a = 1"))
	require.NoError(t, err)
	assert.NotContains(t, string(plain), `"tokens"`)
	assert.NotContains(t, string(plain), `"comments"`)
}

func TestSpeculationDoesNotLeakTokens(t *testing.T) {
	program := parse(t, "(a, b); (c) => c", features(feature.ArrowFunctions), WithTokens(true))
	values := make([]string, 0, len(program.Tokens))
	for _, tok := range program.Tokens {
		values = append(values, tok.Value)
	}
	assert.Equal(t, []string{"(", "a", ",", "b", ")", ";", "(", "c", ")", "=>", "c"}, values)
}
