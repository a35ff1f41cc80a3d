package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RReverser/espree/ast"
	"github.com/RReverser/espree/feature"
)

// To update golden files, set the environment variable:
//
//	UPDATE_GOLDEN=1 go test -run TestGolden ./parser/...
func updateGolden() bool {
	return os.Getenv("UPDATE_GOLDEN") == "1"
}

// goldenOptions picks the configuration from the file name: "*.module.js"
// parses as a module, "*.es5.js" with no optional features, anything else
// with the ES6 features plus JSX.
func goldenOptions(path string) []Option {
	opts := []Option{WithFilename(path)}
	switch {
	case strings.HasSuffix(path, ".module.js"):
		return append(opts, WithModule(true))
	case strings.HasSuffix(path, ".es5.js"):
		return opts
	}
	return append(opts, WithFeatures(feature.ES6().With(feature.JSX)))
}

// dumpTree renders the node kinds of an AST as an indented outline with a
// few identifying details per node.
func dumpTree(node ast.Node) string {
	var b strings.Builder
	var visit func(n ast.Node, depth int)
	visit = func(n ast.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Type())
		if detail := nodeDetail(n); detail != "" {
			b.WriteString(" ")
			b.WriteString(detail)
		}
		b.WriteString("\n")
		for _, child := range ast.Children(n) {
			visit(child, depth+1)
		}
	}
	visit(node, 0)
	return b.String()
}

func nodeDetail(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.JSXIdentifier:
		return n.Name
	case *ast.Literal:
		return n.Raw
	case *ast.JSXText:
		return fmt.Sprintf("%q", n.Value)
	case *ast.TemplateElement:
		return fmt.Sprintf("%q", n.Value.Cooked)
	case *ast.BinaryExpression:
		return n.Operator
	case *ast.LogicalExpression:
		return n.Operator
	case *ast.AssignmentExpression:
		return n.Operator
	case *ast.UnaryExpression:
		return n.Operator
	case *ast.UpdateExpression:
		return n.Operator
	case *ast.VariableDeclaration:
		return n.Kind
	case *ast.FunctionDeclaration:
		if n.Generator {
			return "generator"
		}
	case *ast.YieldExpression:
		if n.Delegate {
			return "delegate"
		}
	case *ast.Property:
		detail := n.Kind
		if n.Shorthand {
			detail += " shorthand"
		}
		if n.Method {
			detail += " method"
		}
		if n.Computed {
			detail += " computed"
		}
		return detail
	case *ast.MethodDefinition:
		if n.Static {
			return n.Kind + " static"
		}
		return n.Kind
	}
	return ""
}

// TestGolden runs golden tests by comparing parser output against known-good files.
//
// Golden tests work as follows:
// 1. Read .js files from testdata/golden/
// 2. Parse each file and render the AST outline with dumpTree
// 3. Compare against corresponding .golden file
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata/golden", "*.js"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, jsFile := range files {
		baseName := strings.TrimSuffix(filepath.Base(jsFile), ".js")
		t.Run(baseName, func(t *testing.T) {
			input, err := os.ReadFile(jsFile)
			require.NoError(t, err)

			program, err := Parse(context.Background(), string(input), goldenOptions(jsFile)...)
			require.NoError(t, err)
			actual := dumpTree(program)

			goldenFile := strings.TrimSuffix(jsFile, ".js") + ".golden"
			if updateGolden() {
				require.NoError(t, os.WriteFile(goldenFile, []byte(actual), 0o644))
				t.Logf("updated golden file: %s", goldenFile)
				return
			}

			expected, err := os.ReadFile(goldenFile)
			if os.IsNotExist(err) {
				t.Fatalf("golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual output:\n%s", goldenFile, actual)
			}
			require.NoError(t, err)
			assert.Equal(t, string(expected), actual)
		})
	}
}

// TestGoldenErrors parses the files in testdata/golden/errors/, each of
// which must fail with the message stored in its .golden file.
func TestGoldenErrors(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata/golden/errors", "*.js"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, jsFile := range files {
		baseName := strings.TrimSuffix(filepath.Base(jsFile), ".js")
		t.Run(baseName, func(t *testing.T) {
			input, err := os.ReadFile(jsFile)
			require.NoError(t, err)

			_, parseErr := Parse(context.Background(), string(input), goldenOptions(jsFile)...)
			require.Error(t, parseErr, "expected parse error, but parsing succeeded")
			actual := parseErr.Error()

			goldenFile := strings.TrimSuffix(jsFile, ".js") + ".golden"
			if updateGolden() {
				require.NoError(t, os.WriteFile(goldenFile, []byte(actual), 0o644))
				t.Logf("updated golden file: %s", goldenFile)
				return
			}

			expected, err := os.ReadFile(goldenFile)
			if os.IsNotExist(err) {
				t.Fatalf("golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual error:\n%s", goldenFile, actual)
			}
			require.NoError(t, err)
			assert.Equal(t, string(expected), actual)
		})
	}
}
