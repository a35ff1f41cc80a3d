package espree

import (
	"maps"

	"github.com/rs/zerolog"

	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/parser"
)

// Option configures a Parse or Tokenize call.
type Option func(*options)

type options struct {
	config   Config
	features []feature.Feature
	logger   zerolog.Logger
	filename string
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// parserOptions resolves the configuration into parser options.
func (o *options) parserOptions() ([]parser.Option, error) {
	set, sourceType, err := o.config.Resolve(o.features...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().
		Stringer("features", set).
		Str("sourceType", string(sourceType)).
		Str("file", o.filename).
		Msg("configuration resolved")
	return []parser.Option{
		parser.WithFeatures(set),
		parser.WithModule(sourceType == Module),
		parser.WithLoc(o.config.Loc),
		parser.WithRange(o.config.Range),
		parser.WithTokens(o.config.Tokens),
		parser.WithComments(o.config.Comment),
		parser.WithLogger(o.logger),
		parser.WithFilename(o.filename),
	}, nil
}

// WithConfig replaces the configuration. Features given with WithFeatures
// are kept.
func WithConfig(cfg Config) Option {
	cfg.EcmaFeatures = maps.Clone(cfg.EcmaFeatures)
	return func(o *options) {
		o.config = cfg
	}
}

// WithFeatures enables the given features in addition to the configured
// ecmaFeatures. This option is additive.
func WithFeatures(features ...feature.Feature) Option {
	return func(o *options) {
		o.features = append(o.features, features...)
	}
}

// WithSourceType sets the source type.
func WithSourceType(sourceType SourceType) Option {
	return func(o *options) {
		o.config.SourceType = sourceType
	}
}

// WithLoc attaches line and column locations to nodes and tokens.
func WithLoc() Option {
	return func(o *options) {
		o.config.Loc = true
	}
}

// WithRange attaches offset ranges to nodes and tokens.
func WithRange() Option {
	return func(o *options) {
		o.config.Range = true
	}
}

// WithTokens includes the token list in Program.tokens.
func WithTokens() Option {
	return func(o *options) {
		o.config.Tokens = true
	}
}

// WithComments includes the comment list in Program.comments.
func WithComments() Option {
	return func(o *options) {
		o.config.Comment = true
	}
}

// WithLogger sets the logger for debug events. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFilename sets the file name recorded in syntax errors.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}
