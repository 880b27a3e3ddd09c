// Package format renders knave tokens for humans and tools.
// This includes the diagnostic line format, structured token streams and a
// stable digest of a scan.
package format

import (
	"strconv"
	"strings"

	"github.com/opal-lang/knave/pkgs/lexer"
)

// Line returns the diagnostic line for a token.
//
// Format:
//
//	<KindName>: #<id>
//	<KindName>: #<id>, "<text>", x<length>   (identifiers and string literals)
func Line(tok lexer.Token) string {
	return ColorLine(tok, false)
}

// ColorLine is Line with the kind name colorized when useColor is set
func ColorLine(tok lexer.Token, useColor bool) string {
	var b strings.Builder
	b.Grow(len(tok.Text) + 64)

	b.WriteString(Colorize(tok.Kind.String(), kindColor(tok.Kind), useColor))
	b.WriteString(": #")
	b.WriteString(strconv.FormatUint(tok.ID, 10))

	if tok.Kind.HasPayload() {
		b.WriteString(", \"")
		b.Write(tok.Text)
		b.WriteString("\", x")
		b.WriteString(strconv.Itoa(tok.Len()))
	}
	return b.String()
}

// kindColor picks the ANSI color for a kind name
func kindColor(kind lexer.Kind) string {
	switch {
	case kind.IsKeyword():
		return ColorBlue
	case kind == lexer.Identifier:
		return ColorCyan
	case kind == lexer.LiteralString:
		return ColorGreen
	case kind.IsSymbol():
		return ColorGray
	case kind == lexer.None:
		return ColorRed
	default:
		return ColorYellow
	}
}
