package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RReverser/espree"
	espreeErrors "github.com/RReverser/espree/errors"
	"github.com/RReverser/espree/feature"
	"github.com/RReverser/espree/syntax"
)

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree as JSON",
		Long: `Parse a file, or standard input when no file is given, and print the
ESTree syntax tree as JSON. Use --loc, --range, --tokens and --comment to
include location data and the token and comment lists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, err := a.options(filename)
			if err != nil {
				return err
			}
			program, err := espree.Parse(cmd.Context(), src, opts...)
			if err != nil {
				return report(cmd.ErrOrStderr(), err, src)
			}
			return writeJSON(cmd.OutOrStdout(), program)
		},
	}
}

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token list as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, err := a.options(filename)
			if err != nil {
				return err
			}
			tokens, err := espree.Tokenize(cmd.Context(), src, opts...)
			if err != nil {
				return report(cmd.ErrOrStderr(), err, src)
			}
			return writeJSON(cmd.OutOrStdout(), tokens)
		},
	}
}

func (a *app) featuresCmd() *cobra.Command {
	var enabled bool
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the ecmaFeatures flags",
		Long: `List every ecmaFeatures flag with a description. Flags marked es6 are
enabled by module code. With --enabled only the flags the current
configuration turns on are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := feature.All()
			if enabled {
				cfg, err := a.config()
				if err != nil {
					return err
				}
				set, _, err := cfg.Resolve()
				if err != nil {
					return report(cmd.ErrOrStderr(), err, "")
				}
				list = set.Slice()
			}
			es6 := feature.ES6()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range list {
				mark := ""
				if es6.Has(f) {
					mark = "es6"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", f, mark, f.Describe())
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", false, "list only the flags the configuration enables")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var allow []string
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check that a file parses and list the features it uses",
		Long: `Parse a file and print the ecmaFeatures flags its syntax depends on.

With --allow the file must also use no flag outside the given list, even
when the configuration enables more. Every violation is reported. The exit
status is 1 when the file fails to parse or uses a flag that is not allowed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, err := a.options(filename)
			if err != nil {
				return err
			}
			program, err := espree.Parse(cmd.Context(), src, opts...)
			if err != nil {
				return report(cmd.ErrOrStderr(), err, src)
			}

			required := syntax.Required(program)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", filename, program.SourceType)
			for _, f := range required.Slice() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
			}

			if !cmd.Flags().Changed("allow") {
				return nil
			}
			allowed, err := allowedSet(allow)
			if err != nil {
				return err
			}
			if err := syntax.Validate(program, allowed); err != nil {
				violations := err.(*syntax.ValidationErrors)
				a.logger.Debug().Stringer("missing", violations.Missing()).Msg("check failed")
				return reportViolations(cmd, violations, src, filename)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "ecmaFeatures flags the file may use")
	return cmd
}

func allowedSet(names []string) (feature.Set, error) {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[canonicalName(name)] = true
	}
	return feature.FromMap(m)
}

func reportViolations(cmd *cobra.Command, errs *syntax.ValidationErrors, src, filename string) error {
	formatted := make([]*espreeErrors.FormattedError, 0, len(errs.Errors))
	for _, ve := range errs.Errors {
		formatted = append(formatted, &espreeErrors.FormattedError{
			Code:        espreeErrors.E1003,
			Kind:        "check error",
			Message:     ve.Message,
			Filename:    filename,
			Line:        ve.Position.Line,
			Column:      ve.Position.Column + 1,
			SourceLines: espreeErrors.SourceExcerpt(src, ve.Position.Line, 0),
			Hint:        fmt.Sprintf("add %s to --allow", ve.Feature),
		})
	}
	formatter := espreeErrors.NewFormatter(!color.NoColor)
	fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatMultiple(formatted))
	return &reportedError{err: errs}
}
