// Package feature defines the closed set of optional grammar toggles
// ("ecmaFeatures") understood by the parser.
package feature

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/RReverser/espree/errors"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Feature identifies one optional grammar production.
type Feature uint8

const (
	ArrowFunctions Feature = iota
	BlockBindings
	RegexYFlag
	RegexUFlag
	TemplateStrings
	BinaryLiterals
	OctalLiterals
	UnicodeCodePointEscapes
	DefaultParams
	RestParams
	ForOf
	ObjectLiteralComputedProperties
	ObjectLiteralShorthandMethods
	ObjectLiteralShorthandProperties
	ObjectLiteralDuplicateProperties
	Generators
	Spread
	SuperInFunctions
	Classes
	NewTarget
	Modules
	JSX
	GlobalReturn
	Destructuring
	ExperimentalObjectRestSpread

	count
)

var names = [count]string{
	ArrowFunctions:                   "arrowFunctions",
	BlockBindings:                    "blockBindings",
	RegexYFlag:                       "regexYFlag",
	RegexUFlag:                       "regexUFlag",
	TemplateStrings:                  "templateStrings",
	BinaryLiterals:                   "binaryLiterals",
	OctalLiterals:                    "octalLiterals",
	UnicodeCodePointEscapes:          "unicodeCodePointEscapes",
	DefaultParams:                    "defaultParams",
	RestParams:                       "restParams",
	ForOf:                            "forOf",
	ObjectLiteralComputedProperties:  "objectLiteralComputedProperties",
	ObjectLiteralShorthandMethods:    "objectLiteralShorthandMethods",
	ObjectLiteralShorthandProperties: "objectLiteralShorthandProperties",
	ObjectLiteralDuplicateProperties: "objectLiteralDuplicateProperties",
	Generators:                       "generators",
	Spread:                           "spread",
	SuperInFunctions:                 "superInFunctions",
	Classes:                          "classes",
	NewTarget:                        "newTarget",
	Modules:                          "modules",
	JSX:                              "jsx",
	GlobalReturn:                     "globalReturn",
	Destructuring:                    "destructuring",
	ExperimentalObjectRestSpread:     "experimentalObjectRestSpread",
}

var descriptions = [count]string{
	ArrowFunctions:                   "arrow functions",
	BlockBindings:                    "let and const declarations",
	RegexYFlag:                       "the regular expression y flag",
	RegexUFlag:                       "the regular expression u flag",
	TemplateStrings:                  "template strings",
	BinaryLiterals:                   "binary literals",
	OctalLiterals:                    "octal literals",
	UnicodeCodePointEscapes:          "unicode code point escapes",
	DefaultParams:                    "default parameters",
	RestParams:                       "rest parameters",
	ForOf:                            "for-of loops",
	ObjectLiteralComputedProperties:  "computed property names",
	ObjectLiteralShorthandMethods:    "shorthand methods",
	ObjectLiteralShorthandProperties: "shorthand properties",
	ObjectLiteralDuplicateProperties: "duplicate object literal properties",
	Generators:                       "generators",
	Spread:                           "spread elements",
	SuperInFunctions:                 "super in functions",
	Classes:                          "classes",
	NewTarget:                        "new.target",
	Modules:                          "modules",
	JSX:                              "JSX",
	GlobalReturn:                     "global return",
	Destructuring:                    "destructuring",
	ExperimentalObjectRestSpread:     "object rest and spread properties",
}

var byName map[string]Feature

func init() {
	byName = make(map[string]Feature, count)
	for i, name := range names {
		byName[name] = Feature(i)
	}
}

// String returns the configuration name of the feature, e.g. "arrowFunctions".
func (f Feature) String() string {
	if f >= count {
		return fmt.Sprintf("feature(%d)", f)
	}
	return names[f]
}

// Describe returns a short human readable name used in error messages.
func (f Feature) Describe() string {
	if f >= count {
		return f.String()
	}
	return descriptions[f]
}

// Valid reports whether f is a member of the enumeration.
func (f Feature) Valid() bool {
	return f < count
}

// Lookup returns the feature with the given configuration name.
func Lookup(name string) (Feature, bool) {
	f, ok := byName[name]
	return f, ok
}

// All returns every known feature in declaration order.
func All() []Feature {
	all := make([]Feature, count)
	for i := range all {
		all[i] = Feature(i)
	}
	return all
}

// UnknownFeatureError is returned for configuration keys that do not name a
// known feature.
type UnknownFeatureError struct {
	Name string
}

func (e *UnknownFeatureError) Error() string {
	msg := fmt.Sprintf("unknown ecmaFeatures key %q", e.Name)
	if hint := errors.FormatSuggestions(errors.SuggestSimilar(e.Name, names[:])); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

// Set is an immutable set of enabled features. The zero value enables nothing,
// which selects the plain ES5 grammar.
type Set uint32

// Of returns a set holding exactly the given features.
func Of(features ...Feature) Set {
	var s Set
	return s.With(features...)
}

// Has reports whether f is enabled.
func (s Set) Has(f Feature) bool {
	return f < count && s&(1<<f) != 0
}

// With returns a copy of s with the given features enabled.
func (s Set) With(features ...Feature) Set {
	for _, f := range features {
		if f < count {
			s |= 1 << f
		}
	}
	return s
}

// Without returns a copy of s with the given features disabled.
func (s Set) Without(features ...Feature) Set {
	for _, f := range features {
		if f < count {
			s &^= 1 << f
		}
	}
	return s
}

// Union returns the features enabled in either set.
func (s Set) Union(other Set) Set {
	return s | other
}

// Difference returns the features of s that are not in other.
func (s Set) Difference(other Set) Set {
	return s &^ other
}

// Len returns the number of enabled features.
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Slice returns the enabled features in declaration order.
func (s Set) Slice() []Feature {
	result := make([]Feature, 0, s.Len())
	for f := Feature(0); f < count; f++ {
		if s.Has(f) {
			result = append(result, f)
		}
	}
	return result
}

// Names returns the enabled feature names sorted alphabetically.
func (s Set) Names() []string {
	result := make([]string, 0, s.Len())
	for _, f := range s.Slice() {
		result = append(result, f.String())
	}
	sort.Strings(result)
	return result
}

func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

// Map returns the set in the ecmaFeatures object form with every known
// feature present.
func (s Set) Map() map[string]bool {
	m := make(map[string]bool, count)
	for f := Feature(0); f < count; f++ {
		m[f.String()] = s.Has(f)
	}
	return m
}

// FromMap validates an ecmaFeatures object. Every key must name a known
// feature; all unknown keys are reported together.
func FromMap(m map[string]bool) (Set, error) {
	var s Set
	var result *multierror.Error
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := Lookup(k)
		if !ok {
			result = multierror.Append(result, &UnknownFeatureError{Name: k})
			continue
		}
		if m[k] {
			s = s.With(f)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return 0, err
	}
	return s, nil
}

// ES6 returns the features implied by module code: every ES2015 grammar
// extension. JSX, globalReturn and experimentalObjectRestSpread stay opt-in.
func ES6() Set {
	return Of(All()...).Without(JSX, GlobalReturn, ExperimentalObjectRestSpread)
}

// MarshalJSON encodes the set as an ecmaFeatures object.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes an ecmaFeatures object, rejecting unknown keys.
func (s *Set) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the set as an ecmaFeatures mapping.
func (s Set) MarshalYAML() (interface{}, error) {
	return s.Map(), nil
}

// UnmarshalYAML decodes an ecmaFeatures mapping, rejecting unknown keys.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]bool
	if err := node.Decode(&m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
