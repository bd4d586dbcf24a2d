package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// reviewMarker renders the review state column used in listings.
func reviewMarker(reviewed bool, colorize bool) string {
	label, color := "pending", ansiYellow
	if reviewed {
		label, color = "reviewed", ansiGreen
	}
	if colorize {
		return color + label + ansiReset
	}
	return label
}

func checkMarker(passed bool, colorize bool) string {
	label, color := "FAIL", ansiRed
	if passed {
		label, color = "OK", ansiGreen
	}
	if colorize {
		return color + label + ansiReset
	}
	return label
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
