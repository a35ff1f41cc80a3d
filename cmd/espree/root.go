package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RReverser/espree"
	"github.com/RReverser/espree/feature"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "espree",
		Short: "Parse ECMAScript into an ESTree syntax tree",
		Long: `espree parses ECMAScript 2015 source into an ESTree syntax tree.

Optional grammar is enabled with --feature (repeatable) or in the ecmaFeatures
section of the configuration file. Module code enables every ES6 feature.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.espree.yaml)")
	flags.BoolP("verbose", "v", false, "log debug events to stderr")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringSliceP("feature", "f", nil, "enable an ecmaFeatures flag (repeatable)")
	flags.String("source-type", "", `"script" or "module"`)
	flags.Bool("loc", false, "attach line/column locations")
	flags.Bool("range", false, "attach offset ranges")
	flags.Bool("tokens", false, "include the token list")
	flags.Bool("comment", false, "include the comment list")

	bind := map[string]string{
		"config":     "config",
		"verbose":    "verbose",
		"no-color":   "no-color",
		"feature":    "feature",
		"sourceType": "source-type",
		"loc":        "loc",
		"range":      "range",
		"tokens":     "tokens",
		"comment":    "comment",
	}
	for key, name := range bind {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	a.v.SetEnvPrefix("espree")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv("sourceType", "ESPREE_SOURCE_TYPE")
	_ = a.v.BindEnv("no-color", "NO_COLOR", "ESPREE_NO_COLOR")

	root.AddCommand(
		a.parseCmd(),
		a.tokensCmd(),
		a.featuresCmd(),
		a.checkCmd(),
	)
	return root
}

// init reads the configuration file and sets up logging and colors.
func (a *app) init(cmd *cobra.Command) error {
	loaded, err := a.readConfig()
	if err != nil {
		return err
	}

	if a.v.GetBool("no-color") {
		color.NoColor = true
	}

	level := zerolog.InfoLevel
	if a.v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     cmd.ErrOrStderr(),
		NoColor: color.NoColor,
	}).Level(level).With().Timestamp().Logger()
	if loaded {
		a.logger.Debug().Str("file", a.v.ConfigFileUsed()).Msg("configuration file loaded")
	}
	return nil
}

// readConfig reads the file named by --config, or $HOME/.espree.yaml when
// it exists.
func (a *app) readConfig() (bool, error) {
	file := a.v.GetString("config")
	optional := file == ""
	if optional {
		home, err := homedir.Dir()
		if err != nil {
			return false, nil
		}
		file = filepath.Join(home, ".espree.yaml")
	}
	path, err := homedir.Expand(file)
	if err != nil {
		return false, err
	}
	a.v.SetConfigFile(path)
	if err := a.v.ReadInConfig(); err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config: %w", err)
	}
	return true, nil
}

// config assembles the parser configuration from the file, the environment
// and the flags.
func (a *app) config() (espree.Config, error) {
	var cfg espree.Config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.EcmaFeatures = canonicalFeatures(cfg.EcmaFeatures)
	for _, name := range a.v.GetStringSlice("feature") {
		if cfg.EcmaFeatures == nil {
			cfg.EcmaFeatures = map[string]bool{}
		}
		cfg.EcmaFeatures[canonicalName(name)] = true
	}
	return cfg, nil
}

// options returns the parse options for input read from filename.
func (a *app) options(filename string) ([]espree.Option, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return []espree.Option{
		espree.WithConfig(cfg),
		espree.WithFilename(filename),
		espree.WithLogger(a.logger),
	}, nil
}

// canonicalFeatures restores the spelling of feature names, which viper
// lowercases. Unknown names are kept for the parser to report.
func canonicalFeatures(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[canonicalName(k)] = v
	}
	return out
}

func canonicalName(name string) string {
	for _, f := range feature.All() {
		if strings.EqualFold(f.String(), name) {
			return f.String()
		}
	}
	return name
}

// readInput returns the source named by args, or standard input when args
// is empty or "-".
func readInput(cmd *cobra.Command, args []string) (src, filename string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}
