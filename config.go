package espree

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/RReverser/espree/errors"
	"github.com/RReverser/espree/feature"
)

// SourceType selects the top-level grammar.
type SourceType string

const (
	Script SourceType = "script"
	Module SourceType = "module"
)

var sourceTypes = []string{string(Script), string(Module)}

// Config holds the parser options in the form espree accepts them. A zero
// Config parses ES5 script code without location data.
type Config struct {
	EcmaFeatures map[string]bool `json:"ecmaFeatures,omitempty" yaml:"ecmaFeatures,omitempty" mapstructure:"ecmaFeatures"`
	SourceType   SourceType      `json:"sourceType,omitempty" yaml:"sourceType,omitempty" mapstructure:"sourceType"`
	Loc          bool            `json:"loc,omitempty" yaml:"loc,omitempty" mapstructure:"loc"`
	Range        bool            `json:"range,omitempty" yaml:"range,omitempty" mapstructure:"range"`
	Tokens       bool            `json:"tokens,omitempty" yaml:"tokens,omitempty" mapstructure:"tokens"`
	Comment      bool            `json:"comment,omitempty" yaml:"comment,omitempty" mapstructure:"comment"`
}

// Resolve returns the effective feature set and source type of the
// configuration, with extra features enabled on top of EcmaFeatures.
//
// An unset source type is "module" when the modules feature is enabled and
// "script" otherwise. Module code enables every ES6 feature. All problems are
// reported together in a *ConfigError.
func (c Config) Resolve(extra ...feature.Feature) (feature.Set, SourceType, error) {
	var result *multierror.Error

	set, err := feature.FromMap(c.EcmaFeatures)
	if err != nil {
		result = multierror.Append(result, err)
	}
	set = set.With(extra...)

	sourceType := c.SourceType
	switch sourceType {
	case "":
		sourceType = Script
		if set.Has(feature.Modules) {
			sourceType = Module
		}
	case Script:
		if set.Has(feature.Modules) {
			result = multierror.Append(result, &OptionError{
				Code:    errors.E2003,
				Option:  "sourceType",
				Message: `sourceType "script" cannot be combined with ecmaFeatures.modules`,
			})
		}
	case Module:
	default:
		msg := fmt.Sprintf("invalid sourceType %q", string(sourceType))
		if hint := errors.FormatSuggestions(errors.SuggestSimilar(string(sourceType), sourceTypes)); hint != "" {
			msg += " (" + hint + ")"
		}
		result = multierror.Append(result, &OptionError{Code: errors.E2002, Option: "sourceType", Message: msg})
	}

	if err := result.ErrorOrNil(); err != nil {
		return 0, "", &ConfigError{errs: result}
	}
	if sourceType == Module {
		set = set.Union(feature.ES6()).With(feature.Modules)
	}
	return set, sourceType, nil
}

// OptionError is an invalid value for one configuration option.
type OptionError struct {
	Code    errors.ErrorCode
	Option  string
	Message string
}

func (e *OptionError) Error() string {
	return e.Message
}

// ConfigError reports every problem found in a configuration. It is returned
// before any input is read.
type ConfigError struct {
	errs *multierror.Error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.errs.Errors))
	for i, err := range e.errs.Errors {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.errs
}

// Errors returns the individual configuration errors.
func (e *ConfigError) Errors() []error {
	return e.errs.Errors
}

// ToFormatted converts each configuration error for display.
func (e *ConfigError) ToFormatted() []*errors.FormattedError {
	out := make([]*errors.FormattedError, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		fe := &errors.FormattedError{Kind: "config error", Message: err.Error()}
		switch err := err.(type) {
		case *feature.UnknownFeatureError:
			fe.Code = errors.E2001
			fe.Hint = "see `espree features` for the supported names"
		case *OptionError:
			fe.Code = err.Code
		}
		out = append(out, fe)
	}
	return out
}
