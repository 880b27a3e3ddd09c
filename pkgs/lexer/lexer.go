package lexer

import (
	"log/slog"
	"time"

	"github.com/opal-lang/knave/core/invariant"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing per kind
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	telemetry       TelemetryMode
	legacyCurlyPair bool
	logger          *slog.Logger
}

// WithTelemetryBasic enables basic telemetry (token counts only)
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + timing per kind)
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithLegacyCurlyPair emits CurlyClose instead of CurlyPair for "{}",
// matching the token stream of the first knave tool.
func WithLegacyCurlyPair() LexerOpt {
	return func(c *LexerConfig) {
		c.legacyCurlyPair = true
	}
}

// WithLogger traces every emitted token at debug level
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// TokenTelemetry holds per-kind telemetry
type TokenTelemetry struct {
	Kind      Kind
	Count     int
	TotalTime time.Duration
	AvgTime   time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// Lexer scans a source buffer into tokens, one per NextToken call
type Lexer struct {
	// Core lexing state
	input    []byte // borrowed, never written
	position int    // cursor, never above len(input)
	lastID   uint64 // id of the most recent token

	symbols *symbolTable
	logger  *slog.Logger

	// Telemetry (nil when disabled for zero allocation)
	telemetryMode  TelemetryMode
	tokenTelemetry map[Kind]*TokenTelemetry
}

// NewLexer creates a new lexer over input with optional configuration
func NewLexer(input []byte, opts ...LexerOpt) *Lexer {
	config := &LexerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	lexer := &Lexer{
		symbols:       defaultSymbols,
		logger:        config.logger,
		telemetryMode: config.telemetry,
	}
	if config.legacyCurlyPair {
		lexer.symbols = legacySymbols
	}

	// Only allocate telemetry structures when needed
	if config.telemetry > TelemetryOff {
		lexer.tokenTelemetry = make(map[Kind]*TokenTelemetry)
	}

	lexer.Reset(input)
	return lexer
}

// Reset rearms the lexer over new input. Ids restart at 1.
func (l *Lexer) Reset(input []byte) {
	l.input = input
	l.position = 0
	l.lastID = 0

	for k := range l.tokenTelemetry {
		delete(l.tokenTelemetry, k)
	}
}

// Position returns the cursor as a byte offset into the input
func (l *Lexer) Position() int {
	return l.position
}

// NextToken scans and returns the next token. Once the input is exhausted
// every call returns an EndOfFile token with a fresh id.
func (l *Lexer) NextToken() Token {
	var token Token
	if l.telemetryMode == TelemetryTiming {
		start := time.Now()
		token = l.lexToken()
		l.recordTokenTelemetry(token.Kind, time.Since(start))
	} else {
		token = l.lexToken()
		if l.telemetryMode == TelemetryBasic {
			l.recordTokenTelemetry(token.Kind, 0)
		}
	}

	if l.logger != nil {
		l.logger.Debug("token",
			"id", token.ID,
			"kind", token.Kind.String(),
			"offset", token.Span.Offset,
			"length", token.Span.Length)
	}
	return token
}

// GetTokens drains the lexer up to and including the first EndOfFile token
func (l *Lexer) GetTokens() []Token {
	var tokens []Token
	for {
		token := l.NextToken()
		tokens = append(tokens, token)
		if token.Kind == EndOfFile {
			return tokens
		}
	}
}

// GetTokenTelemetry returns a copy of the per-kind telemetry, or nil when disabled
func (l *Lexer) GetTokenTelemetry() map[Kind]*TokenTelemetry {
	if l.telemetryMode == TelemetryOff || l.tokenTelemetry == nil {
		return nil
	}

	result := make(map[Kind]*TokenTelemetry, len(l.tokenTelemetry))
	for k, v := range l.tokenTelemetry {
		telemetryCopy := *v
		result[k] = &telemetryCopy
	}
	return result
}

func (l *Lexer) recordTokenTelemetry(kind Kind, elapsed time.Duration) {
	tel, exists := l.tokenTelemetry[kind]
	if !exists {
		tel = &TokenTelemetry{Kind: kind, MinTime: elapsed, MaxTime: elapsed}
		l.tokenTelemetry[kind] = tel
	}

	tel.Count++
	if l.telemetryMode < TelemetryTiming {
		return
	}
	tel.TotalTime += elapsed
	tel.AvgTime = tel.TotalTime / time.Duration(tel.Count)
	if elapsed < tel.MinTime {
		tel.MinTime = elapsed
	}
	if elapsed > tel.MaxTime {
		tel.MaxTime = elapsed
	}
}

// lexToken is one step of the scanner state machine
func (l *Lexer) lexToken() Token {
	l.skipWhitespace()

	l.lastID++
	start := l.position

	if !l.inBounds() {
		return Token{ID: l.lastID, Kind: EndOfFile, Span: Span{Offset: start}}
	}

	var kind Kind
	var text Span
	ch := l.input[l.position]
	switch {
	case IsNameStart(ch):
		kind, text = l.lexName()
	case IsStringDelimiter(ch):
		kind, text = l.lexString()
	default:
		kind, text = l.lexSymbol()
	}

	invariant.Invariant(l.position > start, "scan must consume input at offset %d", start)
	invariant.InRange(l.position, start+1, len(l.input), "position")

	token := Token{
		ID:   l.lastID,
		Kind: kind,
		Span: Span{Offset: start, Length: l.position - start},
	}
	if kind != None {
		invariant.Within(text.Offset, text.Length, token.Span.Offset, token.Span.Length, "token text")
		token.Text = l.input[text.Offset:text.End():text.End()]
	}
	invariant.Postcondition(token.Span.End() == l.position, "token #%d must end at the cursor", token.ID)
	return token
}

// inBounds reports whether the cursor is on a scannable byte
func (l *Lexer) inBounds() bool {
	return l.position < len(l.input) && l.input[l.position] != endOfInput
}

func (l *Lexer) skipWhitespace() {
	for l.inBounds() && IsWhitespace(l.input[l.position]) {
		l.position++
	}
}

// lexName scans an identifier or keyword
func (l *Lexer) lexName() (Kind, Span) {
	start := l.position
	l.position++
	for l.inBounds() && IsNameContinue(l.input[l.position]) {
		l.position++
	}

	text := Span{Offset: start, Length: l.position - start}
	if kind, ok := Keywords[string(l.input[start:l.position])]; ok {
		return kind, text
	}
	return Identifier, text
}

// lexString scans a string literal. The text excludes the quotes. An
// unterminated literal ends before the newline or end of input, which are
// left for the next call.
func (l *Lexer) lexString() (Kind, Span) {
	l.position++ // opening quote
	start := l.position
	for l.inBounds() && !IsStringTerminator(l.input[l.position]) {
		l.position++
	}

	text := Span{Offset: start, Length: l.position - start}
	if l.inBounds() && IsStringDelimiter(l.input[l.position]) {
		l.position++ // closing quote
	}
	return LiteralString, text
}

// lexSymbol scans punctuation through the dispatch table. Unknown bytes, and
// a colon that starts no pair, become a one-byte None token.
func (l *Lexer) lexSymbol() (Kind, Span) {
	start := l.position
	kind, width, ok := l.symbols.match(l.input, l.position)
	if !ok {
		width = 1
	}
	l.position += width
	return kind, Span{Offset: start, Length: width}
}
