package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	homedir.DisableCache = true
}

// run executes the CLI with an empty home directory.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseStdin(t *testing.T) {
	stdout, _, err := run(t, "x => x", "parse", "-f", "arrowFunctions")
	require.NoError(t, err)

	var program struct {
		Type       string `json:"type"`
		SourceType string `json:"sourceType"`
		Body       []struct {
			Expression struct {
				Type string `json:"type"`
			} `json:"expression"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &program))
	assert.Equal(t, "Program", program.Type)
	assert.Equal(t, "script", program.SourceType)
	require.Len(t, program.Body, 1)
	assert.Equal(t, "ArrowFunctionExpression", program.Body[0].Expression.Type)
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "a.js", "var a = 1;\n")
	stdout, _, err := run(t, "", "parse", "--range", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"range": [`)
	assert.True(t, strings.HasPrefix(stdout, "{\n  \"type\": \"Program\""))

	_, _, err = run(t, "", "parse", filepath.Join(t.TempDir(), "missing.js"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSyntaxError(t *testing.T) {
	stdout, stderr, err := run(t, "x => x", "parse")
	require.Error(t, err)
	var reported *reportedError
	assert.True(t, errors.As(err, &reported))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr,
		"syntax error[E1003]: Unsupported syntax: arrow functions (enable ecmaFeatures.arrowFunctions)\n")
	assert.Contains(t, stderr, "  --> <stdin>:1:3\n")
	assert.Contains(t, stderr, " 1 | x => x\n")
	assert.Contains(t, stderr, "= hint: set ecmaFeatures.arrowFunctions to true\n")
}

func TestConfigFile(t *testing.T) {
	config := writeFile(t, "espree.yaml", `
ecmaFeatures:
  blockBindings: true
  templateStrings: true
range: true
`)
	stdout, _, err := run(t, "let a = `b`;", "--config", config, "parse")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"kind": "let"`)
	assert.Contains(t, stdout, `"TemplateLiteral"`)
	assert.Contains(t, stdout, `"range": [`)

	_, _, err = run(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestHomeConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".espree.yaml"),
		[]byte("ecmaFeatures:\n  classes: true\n"), 0o644))

	cmd := newRootCmd()
	t.Setenv("HOME", home)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("class A {}"))
	cmd.SetArgs([]string{"--no-color", "check"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "<stdin>: ok (script)\n  classes\n", out.String())
}

func TestSourceType(t *testing.T) {
	stdout, _, err := run(t, "import a from 'b';", "parse", "--source-type", "module")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"sourceType": "module"`)

	t.Setenv("ESPREE_SOURCE_TYPE", "module")
	stdout, _, err = run(t, "export default 1;", "parse")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"ExportDefaultDeclaration"`)
}

func TestConfigErrors(t *testing.T) {
	_, stderr, err := run(t, "a", "parse", "-f", "arrowFunction", "--source-type", "modul")
	require.Error(t, err)
	assert.Contains(t, stderr,
		`config error[E2001]: unknown ecmaFeatures key "arrowFunction" (did you mean "arrowFunctions"?)`)
	assert.Contains(t, stderr, `config error[E2002]: invalid sourceType "modul" (did you mean "module"?)`)
	assert.Contains(t, stderr, "found 2 errors\n")
}

func TestTokens(t *testing.T) {
	stdout, _, err := run(t, "a = /b/", "tokens")
	require.NoError(t, err)

	var tokens []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &tokens))
	require.Len(t, tokens, 3)
	assert.Equal(t, "Identifier", tokens[0].Type)
	assert.Equal(t, "Punctuator", tokens[1].Type)
	assert.Equal(t, "RegularExpression", tokens[2].Type)
	assert.Equal(t, "/b/", tokens[2].Value)
}

func TestFeatures(t *testing.T) {
	stdout, _, err := run(t, "", "features")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 25)
	assert.True(t, strings.HasPrefix(lines[0], "arrowFunctions"))
	assert.Contains(t, lines[0], "es6")
	assert.Contains(t, lines[0], "arrow functions")
	for _, line := range lines {
		if strings.HasPrefix(line, "jsx ") {
			assert.NotContains(t, line, "es6")
		}
	}

	stdout, _, err = run(t, "", "features", "--enabled", "-f", "jsx", "-f", "globalReturn")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "jsx"))
	assert.True(t, strings.HasPrefix(lines[1], "globalReturn"))
}

func TestCheck(t *testing.T) {
	stdout, _, err := run(t, "let a = () => 1;", "check", "-f", "blockBindings,arrowFunctions")
	require.NoError(t, err)
	assert.Equal(t, "<stdin>: ok (script)\n  arrowFunctions\n  blockBindings\n", stdout)

	_, stderr, err := run(t, "let a = () => 1;", "check",
		"-f", "blockBindings,arrowFunctions", "--allow", "blockbindings")
	require.Error(t, err)
	var reported *reportedError
	require.True(t, errors.As(err, &reported))
	assert.Contains(t, stderr, "check error[E1003]: Unsupported syntax: arrow functions")
	assert.Contains(t, stderr, "  --> <stdin>:1:9\n")
	assert.Contains(t, stderr, "= hint: add arrowFunctions to --allow\n")

	_, _, err = run(t, "var a;", "check", "--allow", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown ecmaFeatures key "nope"`)
}

func TestVerbose(t *testing.T) {
	_, stderr, err := run(t, "var a;", "parse", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "configuration resolved")
	assert.Contains(t, stderr, "parse started")

	_, stderr, err = run(t, "var a;", "parse")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestCanonicalFeatures(t *testing.T) {
	assert.Nil(t, canonicalFeatures(nil))
	assert.Equal(t,
		map[string]bool{"arrowFunctions": true, "jsx": false, "bogus": true},
		canonicalFeatures(map[string]bool{"arrowfunctions": true, "JSX": false, "bogus": true}))
	assert.Equal(t, "objectLiteralShorthandMethods", canonicalName("OBJECTLITERALSHORTHANDMETHODS"))
}
