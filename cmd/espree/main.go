package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			printError(err.Error())
		}
		os.Exit(1)
	}
}

func printError(msg string) {
	fmt.Fprintln(color.Error, color.RedString(msg))
}
