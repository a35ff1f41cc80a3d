package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"

	"github.com/RReverser/espree"
	espreeErrors "github.com/RReverser/espree/errors"
	"github.com/RReverser/espree/errz"
)

// reportedError is an error already written to stderr in full.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeJSON prints v indented, colored when w is a terminal.
func writeJSON(w io.Writer, v any) error {
	var data []byte
	var err error
	if !color.NoColor && isTerminal(w) {
		data, err = prettyjson.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// report writes err to w with a source excerpt when it is a syntax or
// configuration error, and marks it as reported.
func report(w io.Writer, err error, src string) error {
	formatter := espreeErrors.NewFormatter(!color.NoColor)

	var se *errz.SyntaxError
	var ce *espree.ConfigError
	switch {
	case errors.As(err, &se):
		io.WriteString(w, formatter.Format(se.ToFormatted(src)))
	case errors.As(err, &ce):
		io.WriteString(w, formatter.FormatMultiple(ce.ToFormatted()))
	default:
		return err
	}
	return &reportedError{err: err}
}
