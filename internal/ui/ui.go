// Package ui prints launcher notices and errors to stderr. Output is
// colored when stderr is a terminal; the color package handles NO_COLOR and
// non-terminal output on its own.
package ui

import "github.com/fatih/color"

var (
	infoColor = color.New(color.FgCyan)
	errColor  = color.New(color.FgRed)
)

// Infof prints a progress notice to stderr.
func Infof(format string, a ...any) {
	infoColor.Fprintf(color.Error, format, a...)
}

// Errorf prints an error to stderr.
func Errorf(format string, a ...any) {
	errColor.Fprintf(color.Error, format, a...)
}
