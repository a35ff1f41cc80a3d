package feature

import (
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLookupRoundTrip(t *testing.T) {
	for _, f := range All() {
		got, ok := Lookup(f.String())
		require.True(t, ok, f.String())
		assert.Equal(t, f, got)
		assert.NotEmpty(t, f.Describe())
	}
	_, ok := Lookup("ArrowFunctions")
	assert.False(t, ok)
}

func TestSetOperations(t *testing.T) {
	s := Of(JSX, Classes)
	assert.True(t, s.Has(JSX))
	assert.True(t, s.Has(Classes))
	assert.False(t, s.Has(Modules))
	assert.Equal(t, 2, s.Len())

	s2 := s.With(Modules).Without(JSX)
	assert.Equal(t, []Feature{Classes, Modules}, s2.Slice())
	// s is a value and must not change
	assert.True(t, s.Has(JSX))

	assert.Equal(t, Of(JSX, Classes, Modules), s.Union(s2))
	assert.Equal(t, Of(JSX), s.Difference(s2))
	assert.Equal(t, "{classes, jsx}", s.String())
}

func TestZeroSetIsEmpty(t *testing.T) {
	var s Set
	for _, f := range All() {
		assert.False(t, s.Has(f))
	}
	assert.Empty(t, s.Slice())
}

func TestFromMap(t *testing.T) {
	s, err := FromMap(map[string]bool{"jsx": true, "classes": false, "forOf": true})
	require.NoError(t, err)
	assert.Equal(t, Of(JSX, ForOf), s)
}

func TestFromMapRejectsUnknownKeys(t *testing.T) {
	_, err := FromMap(map[string]bool{"jsx": true, "arrowFunction": true, "JSX": true})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)

	var unknown *UnknownFeatureError
	require.ErrorAs(t, merr.Errors[0], &unknown)
	assert.Equal(t, "JSX", unknown.Name)
	assert.Contains(t, merr.Errors[0].Error(), `did you mean "jsx"`)
	assert.Contains(t, merr.Errors[1].Error(), `"arrowFunction"`)
}

func TestES6(t *testing.T) {
	s := ES6()
	assert.True(t, s.Has(ArrowFunctions))
	assert.True(t, s.Has(Modules))
	assert.False(t, s.Has(JSX))
	assert.False(t, s.Has(GlobalReturn))
	assert.False(t, s.Has(ExperimentalObjectRestSpread))
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(Of(JSX))
	require.NoError(t, err)
	var m map[string]bool
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, len(All()))
	assert.True(t, m["jsx"])
	assert.False(t, m["classes"])

	var s Set
	require.NoError(t, json.Unmarshal([]byte(`{"classes": true, "jsx": false}`), &s))
	assert.Equal(t, Of(Classes), s)
	assert.Error(t, json.Unmarshal([]byte(`{"nope": true}`), &s))
}

func TestYAML(t *testing.T) {
	var cfg struct {
		Features Set `yaml:"ecmaFeatures"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("ecmaFeatures:\n  generators: true\n  spread: true\n"), &cfg))
	assert.Equal(t, Of(Generators, Spread), cfg.Features)

	err := yaml.Unmarshal([]byte("ecmaFeatures:\n  generator: true\n"), &cfg)
	assert.Error(t, err)
}
