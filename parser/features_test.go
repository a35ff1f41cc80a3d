package parser

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/errz"
	"github.com/RReverser/espree/feature"
)

// Tests for feature gating
// - Every optional construct fails with its feature off and parses with it on
// - Errors point at the first distinguishing token
// - Flag composition and node shape stability

func TestFeatureGating(t *testing.T) {
	tests := []struct {
		input   string
		feature feature.Feature
		column  int
	}{
		{"x => x", feature.ArrowFunctions, 2},
		{"(a, b) => a", feature.ArrowFunctions, 7},
		{"() => 1", feature.ArrowFunctions, 3},
		{"x = () => 1", feature.ArrowFunctions, 7},
		{"let x = 1", feature.BlockBindings, 0},
		{"const x = 1", feature.BlockBindings, 0},
		{"/a/y", feature.RegexYFlag, 3},
		{"/a/u", feature.RegexUFlag, 3},
		{"`a`", feature.TemplateStrings, 0},
		{"0b101", feature.BinaryLiterals, 0},
		{"0o17", feature.OctalLiterals, 0},
		{`"\u{61}"`, feature.UnicodeCodePointEscapes, 1},
		{"function f(a = 1) {}", feature.DefaultParams, 13},
		{"function f(...a) {}", feature.RestParams, 11},
		{"for (x of y);", feature.ForOf, 7},
		{"({[k]: v})", feature.ObjectLiteralComputedProperties, 2},
		{"({m() {}})", feature.ObjectLiteralShorthandMethods, 3},
		{"({a})", feature.ObjectLiteralShorthandProperties, 2},
		{"function* g() {}", feature.Generators, 8},
		{"f(...a)", feature.Spread, 2},
		{"[...a]", feature.Spread, 1},
		{"function f() { super.x }", feature.SuperInFunctions, 15},
		{"class A {}", feature.Classes, 0},
		{"(class {})", feature.Classes, 1},
		{"function f() { new.target }", feature.NewTarget, 15},
		{"<div />", feature.JSX, 0},
		{"var [a] = b", feature.Destructuring, 4},
		{"var {a} = b", feature.Destructuring, 4},
		{"[a] = b", feature.Destructuring, 0},
		{"({...a})", feature.ExperimentalObjectRestSpread, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseError(t, tt.input)
			assert.Equal(t, errz.ErrUnsupportedFeature, err.Kind, err.Message)
			assert.Equal(t, tt.feature.String(), err.Feature)
			assert.Equal(t, tt.column, err.Column)
			assert.ErrorIs(t, err, errz.ErrUnsupportedFeature)

			parse(t, tt.input, features(tt.feature))
		})
	}
}

func TestFeatureGatingCombinations(t *testing.T) {
	tests := []struct {
		input    string
		enabled  []feature.Feature
		expected feature.Feature
	}{
		{"({*g() {}})", []feature.Feature{feature.ObjectLiteralShorthandMethods}, feature.Generators},
		{"({*g() {}})", []feature.Feature{feature.Generators}, feature.ObjectLiteralShorthandMethods},
		{"(a = 1) => a", []feature.Feature{feature.ArrowFunctions}, feature.DefaultParams},
		{"(...a) => a", []feature.Feature{feature.ArrowFunctions}, feature.RestParams},
		{"(...a) => a", []feature.Feature{feature.RestParams}, feature.ArrowFunctions},
		{"x = (...a) => 1", []feature.Feature{feature.RestParams}, feature.ArrowFunctions},
		{"([a]) => a", []feature.Feature{feature.ArrowFunctions}, feature.Destructuring},
		{"({a}) => a", []feature.Feature{feature.ArrowFunctions}, feature.Destructuring},
		{"({a} = b)", []feature.Feature{feature.ObjectLiteralShorthandProperties}, feature.Destructuring},
		{"({...a} = b)", []feature.Feature{feature.Destructuring}, feature.ExperimentalObjectRestSpread},
		{"class A { m() { super.m(); } } ({ m() { super.m(); } })",
			[]feature.Feature{feature.Classes, feature.ObjectLiteralShorthandMethods}, feature.SuperInFunctions},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseError(t, tt.input, features(tt.enabled...))
			assert.Equal(t, errz.ErrUnsupportedFeature, err.Kind, err.Message)
			assert.Equal(t, tt.expected.String(), err.Feature)

			parse(t, tt.input, features(append(tt.enabled, tt.expected)...))
		})
	}
}

func TestGlobalReturn(t *testing.T) {
	err := parseError(t, "return 1;")
	assert.Equal(t, errz.ErrModuleGrammar, err.Kind)
	assert.Equal(t, "Line 1: Illegal return statement", err.Message)
	assert.Equal(t, "globalReturn", err.Feature)

	program := parse(t, "return 1;", features(feature.GlobalReturn))
	assert.IsType(t, &ast.ReturnStatement{}, program.Body[0])

	// module code never allows a top-level return
	err = parseError(t, "return;", WithModule(true), features(feature.GlobalReturn))
	assert.Equal(t, errz.ErrModuleGrammar, err.Kind)
	assert.Empty(t, err.Feature)
}

func TestFlagComposition(t *testing.T) {
	first := "[...a];"
	second := "x => x;"

	spreadOnly := parse(t, first, features(feature.Spread))
	arrowOnly := parse(t, second, features(feature.ArrowFunctions))
	both := parse(t, first+"\n"+second, features(feature.Spread, feature.ArrowFunctions))
	reversed := parse(t, first+"\n"+second, features(feature.ArrowFunctions, feature.Spread))

	assert.Equal(t, both, reversed)
	require.Len(t, both.Body, 2)
	assert.JSONEq(t, mustJSON(t, spreadOnly.Body[0]), mustJSON(t, both.Body[0]))
	assert.JSONEq(t, mustJSON(t, arrowOnly.Body[0]), mustJSON(t, both.Body[1]))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

// fieldNames returns the sorted keys of the JSON encoding of node.
func fieldNames(t *testing.T, node ast.Node) []string {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(mustJSON(t, node)), &fields))
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestShapeStability(t *testing.T) {
	set := features(feature.ObjectLiteralShorthandProperties, feature.ObjectLiteralShorthandMethods,
		feature.ObjectLiteralComputedProperties)
	pairs := []struct {
		a, b string
	}{
		{"({a})", "({a: a})"},
		{"({a() {}})", "({get a() {}})"},
		{"({[a]: 1})", "({'a': 1})"},
	}
	for _, tt := range pairs {
		t.Run(tt.a, func(t *testing.T) {
			a := firstExpr(t, parse(t, tt.a, set)).(*ast.ObjectExpression)
			b := firstExpr(t, parse(t, tt.b, set)).(*ast.ObjectExpression)
			assert.Equal(t, fieldNames(t, a.Properties[0]), fieldNames(t, b.Properties[0]))
			assert.Equal(t,
				[]string{"computed", "key", "kind", "method", "shorthand", "type", "value"},
				fieldNames(t, a.Properties[0]))
		})
	}

	regex := firstExpr(t, parse(t, "/x/"))
	number := firstExpr(t, parse(t, "1"))
	assert.Equal(t, fieldNames(t, regex), fieldNames(t, number))
	assert.Contains(t, mustJSON(t, number), `"regex":null`)

	anonymous := firstExpr(t, parse(t, "(function () {})"))
	named := firstExpr(t, parse(t, "(function f(a) {})"))
	assert.Equal(t, fieldNames(t, anonymous), fieldNames(t, named))
	assert.Contains(t, mustJSON(t, anonymous), `"id":null`)
	assert.Contains(t, mustJSON(t, anonymous), `"params":[]`)
}
