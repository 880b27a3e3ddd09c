package main

import (
	"errors"
	"fmt"
	"io"

	knaveerrors "github.com/opal-lang/knave/pkgs/errors"
	"github.com/opal-lang/knave/pkgs/format"
)

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	return format.Colorize(text, color, useColor)
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var knaveErr *knaveerrors.KnaveError
	if errors.As(err, &knaveErr) {
		formatKnaveError(w, knaveErr, useColor)
		return
	}

	// Generic error, e.g. from cobra flag parsing
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", format.ColorRed, useColor), err.Error())
}

// formatKnaveError prints the message, the cause when there is one, and the hint
func formatKnaveError(w io.Writer, err *knaveerrors.KnaveError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", format.ColorRed, useColor), err.Message)

	if err.Cause != nil {
		_, _ = fmt.Fprintf(w, "%s%v\n", Colorize("  Cause: ", format.ColorGray, useColor), err.Cause)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", format.ColorYellow, useColor), err.Hint)
	}
}
