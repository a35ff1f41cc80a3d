// Package syntax analyzes parsed programs against the optional grammar.
//
// Required computes the feature set a program depends on, and Validate
// rejects a program that uses a feature outside a given set. Both work on
// the AST alone, so an AST built or rewritten by other tools can be checked
// against the same feature flags the parser understands.
package syntax

import (
	"strconv"
	"strings"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/feature"
)

// Required returns the features that parsing program would need. Module
// programs always include feature.Modules.
func Required(program *ast.Program) feature.Set {
	var set feature.Set
	inspect(program, func(f feature.Feature, _ ast.Node) {
		set = set.With(f)
	})
	return set
}

// Validate checks that every feature program depends on is in allowed. The
// ES6 features are implied for module programs. The returned error is a
// *ValidationErrors listing each offending node.
func Validate(program *ast.Program, allowed feature.Set) error {
	errs := NewFeatureValidator(allowed).Validate(program)
	if len(errs) == 0 {
		return nil
	}
	return NewValidationErrors(errs)
}

// FeatureValidator is a Validator rejecting nodes that need a feature
// outside its set.
type FeatureValidator struct {
	allowed feature.Set
}

// NewFeatureValidator creates a validator allowing the given features.
func NewFeatureValidator(allowed feature.Set) *FeatureValidator {
	return &FeatureValidator{allowed: allowed}
}

// Validate implements the Validator interface.
func (v *FeatureValidator) Validate(program *ast.Program) []ValidationError {
	allowed := v.allowed
	if program.SourceType == "module" {
		allowed = allowed.Union(feature.ES6()).With(feature.Modules)
	}
	var errs []ValidationError
	inspect(program, func(f feature.Feature, node ast.Node) {
		if allowed.Has(f) {
			return
		}
		errs = append(errs, ValidationError{
			Message:  "Unsupported syntax: " + f.Describe() + " (enable ecmaFeatures." + f.String() + ")",
			Feature:  f,
			Node:     node,
			Position: node.Pos(),
		})
	})
	return errs
}

// collector walks a program reporting each feature use. It tracks the
// function context that super and return depend on.
type collector struct {
	report func(feature.Feature, ast.Node)

	inFunction bool
	// classMethod is set inside class method bodies, including arrow
	// functions nested in them, where super needs no feature.
	classMethod bool
}

func inspect(program *ast.Program, report func(feature.Feature, ast.Node)) {
	c := &collector{report: report}
	if program.SourceType == "module" {
		report(feature.Modules, program)
	}
	c.walk(program)
}

func (c *collector) walk(n ast.Node) {
	switch node := n.(type) {
	case *ast.FunctionDeclaration:
		c.function(node, node.Params, node.Generator, false)
		return
	case *ast.FunctionExpression:
		c.function(node, node.Params, node.Generator, false)
		return
	case *ast.ArrowFunctionExpression:
		c.report(feature.ArrowFunctions, node)
		c.params(node.Params)
		saved := c.inFunction
		c.inFunction = true
		c.children(node)
		c.inFunction = saved
		return
	case *ast.MethodDefinition:
		c.walk(node.Key)
		c.function(node.Value, node.Value.Params, node.Value.Generator, true)
		return
	}
	c.check(n)
	c.children(n)
}

func (c *collector) children(n ast.Node) {
	for _, child := range ast.Children(n) {
		c.walk(child)
	}
}

// function walks a function whose parameters are params. method is set for
// class methods.
func (c *collector) function(fn ast.Node, params []ast.Pattern, generator, method bool) {
	if generator {
		c.report(feature.Generators, fn)
	}
	c.params(params)
	inFunction, classMethod := c.inFunction, c.classMethod
	c.inFunction, c.classMethod = true, method
	c.children(fn)
	c.inFunction, c.classMethod = inFunction, classMethod
}

func (c *collector) params(params []ast.Pattern) {
	for _, param := range params {
		switch param.(type) {
		case *ast.AssignmentPattern:
			c.report(feature.DefaultParams, param)
		case *ast.RestElement:
			c.report(feature.RestParams, param)
		}
	}
}

// check reports the features a node needs by itself.
func (c *collector) check(n ast.Node) {
	switch node := n.(type) {
	case *ast.VariableDeclaration:
		if node.Kind != "var" {
			c.report(feature.BlockBindings, node)
		}
	case *ast.ForOfStatement:
		c.report(feature.ForOf, node)
	case *ast.ReturnStatement:
		if !c.inFunction {
			c.report(feature.GlobalReturn, node)
		}
	case *ast.Literal:
		c.literal(node)
	case *ast.TemplateLiteral:
		c.report(feature.TemplateStrings, node)
	case *ast.TemplateElement:
		if hasCodePointEscape(node.Value.Raw) {
			c.report(feature.UnicodeCodePointEscapes, node)
		}
	case *ast.ObjectExpression:
		c.objectLiteral(node)
	case *ast.ObjectPattern:
		c.report(feature.Destructuring, node)
		for _, prop := range node.Properties {
			if p, ok := prop.(*ast.Property); ok && p.Computed {
				c.report(feature.ObjectLiteralComputedProperties, p)
			}
		}
	case *ast.ArrayPattern:
		c.report(feature.Destructuring, node)
	case *ast.SpreadElement:
		c.report(feature.Spread, node)
	case *ast.Super:
		if !c.classMethod {
			c.report(feature.SuperInFunctions, node)
		}
	case *ast.ClassDeclaration, *ast.ClassExpression:
		c.report(feature.Classes, node)
	case *ast.MetaProperty:
		c.report(feature.NewTarget, node)
	case *ast.ExperimentalSpreadProperty, *ast.ExperimentalRestProperty:
		c.report(feature.ExperimentalObjectRestSpread, node)
	case *ast.ImportDeclaration, *ast.ExportNamedDeclaration,
		*ast.ExportDefaultDeclaration, *ast.ExportAllDeclaration:
		c.report(feature.Modules, node)
	case *ast.JSXElement:
		c.report(feature.JSX, node)
	}
}

func (c *collector) literal(lit *ast.Literal) {
	if lit.Regex != nil {
		if strings.Contains(lit.Regex.Flags, "y") {
			c.report(feature.RegexYFlag, lit)
		}
		if strings.Contains(lit.Regex.Flags, "u") {
			c.report(feature.RegexUFlag, lit)
		}
		return
	}
	switch lit.Value.(type) {
	case float64:
		if len(lit.Raw) > 1 && lit.Raw[0] == '0' {
			switch lit.Raw[1] {
			case 'b', 'B':
				c.report(feature.BinaryLiterals, lit)
			case 'o', 'O':
				c.report(feature.OctalLiterals, lit)
			}
		}
	case string:
		if hasCodePointEscape(lit.Raw) {
			c.report(feature.UnicodeCodePointEscapes, lit)
		}
	}
}

// objectLiteral reports the object literal forms of the properties and
// accessor conflicts, which are errors without duplicate property support.
func (c *collector) objectLiteral(obj *ast.ObjectExpression) {
	type kinds struct{ data, get, set bool }
	seen := map[string]*kinds{}
	for _, prop := range obj.Properties {
		p, ok := prop.(*ast.Property)
		if !ok {
			continue
		}
		switch {
		case p.Computed:
			c.report(feature.ObjectLiteralComputedProperties, p)
		case p.Method:
			c.report(feature.ObjectLiteralShorthandMethods, p)
		case p.Shorthand:
			c.report(feature.ObjectLiteralShorthandProperties, p)
		}
		if p.Computed && p.Method {
			c.report(feature.ObjectLiteralShorthandMethods, p)
		}
		if p.Computed {
			continue
		}
		name, ok := keyName(p.Key)
		if !ok {
			continue
		}
		k := seen[name]
		if k == nil {
			k = &kinds{}
			seen[name] = k
		}
		conflict := false
		switch p.Kind {
		case "get":
			conflict = k.data || k.get
			k.get = true
		case "set":
			conflict = k.data || k.set
			k.set = true
		default:
			conflict = k.get || k.set
			k.data = true
		}
		if conflict {
			c.report(feature.ObjectLiteralDuplicateProperties, p)
		}
	}
}

func keyName(key ast.Expr) (string, bool) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, true
	case *ast.Literal:
		switch v := k.Value.(type) {
		case string:
			return v, true
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64), true
		}
	}
	return "", false
}

// hasCodePointEscape reports whether raw source text contains a \u{...}
// escape that is not itself escaped.
func hasCodePointEscape(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		if strings.HasPrefix(raw[i+1:], "u{") {
			return true
		}
		i++
	}
	return false
}
