package lexer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tokenExpectation represents an expected token for testing
type tokenExpectation struct {
	ID     uint64
	Kind   Kind
	Text   string
	Offset int
	Length int
}

// collectTokens scans input to the first EndOfFile token
func collectTokens(input string, opts ...LexerOpt) []tokenExpectation {
	lexer := NewLexer([]byte(input), opts...)
	var actual []tokenExpectation
	for _, token := range lexer.GetTokens() {
		actual = append(actual, tokenExpectation{
			ID:     token.ID,
			Kind:   token.Kind,
			Text:   token.String(),
			Offset: token.Span.Offset,
			Length: token.Span.Length,
		})
	}
	return actual
}

// assertTokens compares actual tokens with expected, providing clear error messages
func assertTokens(t *testing.T, name string, input string, expected []tokenExpectation, opts ...LexerOpt) {
	t.Helper()

	actual := collectTokens(input, opts...)
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s: token mismatch (-expected +actual):\n%s", name, diff)
	}
}

func TestEmptyInput(t *testing.T) {
	assertTokens(t, "empty input", "", []tokenExpectation{
		{1, EndOfFile, "", 0, 0},
	})
}

func TestWhitespaceOnly(t *testing.T) {
	assertTokens(t, "every whitespace byte", " \t\n\v\f\r", []tokenExpectation{
		{1, EndOfFile, "", 6, 0},
	})
}

func TestFunctionDeclaration(t *testing.T) {
	assertTokens(t, "fn main() {}", "fn main() {}", []tokenExpectation{
		{1, KeywordFn, "fn", 0, 2},
		{2, Identifier, "main", 3, 4},
		{3, ParenPair, "()", 7, 2},
		{4, CurlyPair, "{}", 10, 2},
		{5, EndOfFile, "", 12, 0},
	})
}

func TestLegacyCurlyPair(t *testing.T) {
	// The first knave tool reported "{}" with the lone closing brace kind.
	assertTokens(t, "legacy {}", "fn main() {}", []tokenExpectation{
		{1, KeywordFn, "fn", 0, 2},
		{2, Identifier, "main", 3, 4},
		{3, ParenPair, "()", 7, 2},
		{4, CurlyClose, "{}", 10, 2},
		{5, EndOfFile, "", 12, 0},
	}, WithLegacyCurlyPair())

	assertTokens(t, "legacy lone braces unchanged", "{ }", []tokenExpectation{
		{1, CurlyOpen, "{", 0, 1},
		{2, CurlyClose, "}", 2, 1},
		{3, EndOfFile, "", 3, 0},
	}, WithLegacyCurlyPair())
}

func TestKeywordsExactMatchOnly(t *testing.T) {
	assertTokens(t, "keywords", "fn fns Fn import import2 _import", []tokenExpectation{
		{1, KeywordFn, "fn", 0, 2},
		{2, Identifier, "fns", 3, 3},
		{3, Identifier, "Fn", 7, 2},
		{4, KeywordImport, "import", 10, 6},
		{5, Identifier, "import2", 17, 7},
		{6, Identifier, "_import", 25, 7},
		{7, EndOfFile, "", 32, 0},
	})
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "letters digits underscores",
			input: "x1_y2",
			expected: []tokenExpectation{
				{1, Identifier, "x1_y2", 0, 5},
				{2, EndOfFile, "", 5, 0},
			},
		},
		{
			name:  "leading digit is not a name",
			input: "9lives",
			expected: []tokenExpectation{
				{1, None, "", 0, 1},
				{2, Identifier, "lives", 1, 5},
				{3, EndOfFile, "", 6, 0},
			},
		},
		{
			name:  "name stops at symbol",
			input: "a*b",
			expected: []tokenExpectation{
				{1, Identifier, "a", 0, 1},
				{2, Asterisk, "*", 1, 1},
				{3, Identifier, "b", 2, 1},
				{4, EndOfFile, "", 3, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "terminated",
			input: `"hello"`,
			expected: []tokenExpectation{
				{1, LiteralString, "hello", 0, 7},
				{2, EndOfFile, "", 7, 0},
			},
		},
		{
			name:  "empty",
			input: `""`,
			expected: []tokenExpectation{
				{1, LiteralString, "", 0, 2},
				{2, EndOfFile, "", 2, 0},
			},
		},
		{
			name:  "unterminated at newline",
			input: "\"unterminated\n",
			expected: []tokenExpectation{
				{1, LiteralString, "unterminated", 0, 13},
				{2, EndOfFile, "", 14, 0},
			},
		},
		{
			name:  "unterminated at end of input",
			input: `"open`,
			expected: []tokenExpectation{
				{1, LiteralString, "open", 0, 5},
				{2, EndOfFile, "", 5, 0},
			},
		},
		{
			name:  "newline resumes scanning on the next line",
			input: "\"a\nb\"",
			expected: []tokenExpectation{
				{1, LiteralString, "a", 0, 2},
				{2, Identifier, "b", 3, 1},
				{3, LiteralString, "", 4, 1},
				{4, EndOfFile, "", 5, 0},
			},
		},
		{
			name:  "symbols inside literal",
			input: `import "std::io";`,
			expected: []tokenExpectation{
				{1, KeywordImport, "import", 0, 6},
				{2, LiteralString, "std::io", 7, 9},
				{3, Semicolon, ";", 16, 1},
				{4, EndOfFile, "", 17, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestSymbols(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "double colon",
			input: "::",
			expected: []tokenExpectation{
				{1, ColonPair, "::", 0, 2},
				{2, EndOfFile, "", 2, 0},
			},
		},
		{
			name:  "colon equal",
			input: ":=",
			expected: []tokenExpectation{
				{1, ColonEqual, ":=", 0, 2},
				{2, EndOfFile, "", 2, 0},
			},
		},
		{
			name:  "parenthesis pair",
			input: "()",
			expected: []tokenExpectation{
				{1, ParenPair, "()", 0, 2},
				{2, EndOfFile, "", 2, 0},
			},
		},
		{
			name:  "parenthesis open leaves lookahead byte",
			input: "( x",
			expected: []tokenExpectation{
				{1, ParenOpen, "(", 0, 1},
				{2, Identifier, "x", 2, 1},
				{3, EndOfFile, "", 3, 0},
			},
		},
		{
			name:  "parenthesis open then close",
			input: "(x)",
			expected: []tokenExpectation{
				{1, ParenOpen, "(", 0, 1},
				{2, Identifier, "x", 1, 1},
				{3, ParenClose, ")", 2, 1},
				{4, EndOfFile, "", 3, 0},
			},
		},
		{
			name:  "separated braces",
			input: "{ }",
			expected: []tokenExpectation{
				{1, CurlyOpen, "{", 0, 1},
				{2, CurlyClose, "}", 2, 1},
				{3, EndOfFile, "", 3, 0},
			},
		},
		{
			name:  "asterisk semicolon",
			input: "*;",
			expected: []tokenExpectation{
				{1, Asterisk, "*", 0, 1},
				{2, Semicolon, ";", 1, 1},
				{3, EndOfFile, "", 2, 0},
			},
		},
		{
			name:  "pair at end of input",
			input: "x (",
			expected: []tokenExpectation{
				{1, Identifier, "x", 0, 1},
				{2, ParenOpen, "(", 2, 1},
				{3, EndOfFile, "", 3, 0},
			},
		},
		{
			name:  "declaration",
			input: "x := *y;",
			expected: []tokenExpectation{
				{1, Identifier, "x", 0, 1},
				{2, ColonEqual, ":=", 2, 2},
				{3, Asterisk, "*", 5, 1},
				{4, Identifier, "y", 6, 1},
				{5, Semicolon, ";", 7, 1},
				{6, EndOfFile, "", 8, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

// TestLoneColon pins the lone colon policy: only the colon is consumed and
// the next byte is scanned by the following call.
func TestLoneColon(t *testing.T) {
	assertTokens(t, "colon then name", ":x", []tokenExpectation{
		{1, None, "", 0, 1},
		{2, Identifier, "x", 1, 1},
		{3, EndOfFile, "", 2, 0},
	})

	assertTokens(t, "colon at end", "a:", []tokenExpectation{
		{1, Identifier, "a", 0, 1},
		{2, None, "", 1, 1},
		{3, EndOfFile, "", 2, 0},
	})

	assertTokens(t, "colon then colon pair", ": ::", []tokenExpectation{
		{1, None, "", 0, 1},
		{2, ColonPair, "::", 2, 2},
		{3, EndOfFile, "", 4, 0},
	})
}

func TestUnrecognizedBytes(t *testing.T) {
	assertTokens(t, "unknown ascii", "a$b", []tokenExpectation{
		{1, Identifier, "a", 0, 1},
		{2, None, "", 1, 1},
		{3, Identifier, "b", 2, 1},
		{4, EndOfFile, "", 3, 0},
	})

	assertTokens(t, "multi-byte utf-8 is scanned bytewise", "\xc3\xa9", []tokenExpectation{
		{1, None, "", 0, 1},
		{2, None, "", 1, 1},
		{3, EndOfFile, "", 2, 0},
	})
}

func TestSentinelAndEndOfFileHaveNoText(t *testing.T) {
	lexer := NewLexer([]byte("$"))

	none := lexer.NextToken()
	if none.Kind != None || none.Text != nil || none.Len() != 0 {
		t.Errorf("expected None with nil text, got %v %q", none.Kind, none.Text)
	}

	eof := lexer.NextToken()
	if eof.Kind != EndOfFile || eof.Text != nil {
		t.Errorf("expected EndOfFile with nil text, got %v %q", eof.Kind, eof.Text)
	}
}

func TestEmbeddedNULEndsScan(t *testing.T) {
	assertTokens(t, "nul after keyword", "fn\x00main", []tokenExpectation{
		{1, KeywordFn, "fn", 0, 2},
		{2, EndOfFile, "", 2, 0},
	})

	assertTokens(t, "nul inside string", "\"ab\x00cd\"", []tokenExpectation{
		{1, LiteralString, "ab", 0, 3},
		{2, EndOfFile, "", 3, 0},
	})
}

func TestNextTokenAfterEndOfFile(t *testing.T) {
	lexer := NewLexer([]byte("fn"))

	var ids []uint64
	for i := 0; i < 4; i++ {
		token := lexer.NextToken()
		ids = append(ids, token.ID)
		if i > 0 && token.Kind != EndOfFile {
			t.Errorf("call %d: expected EndOfFile, got %v", i+1, token.Kind)
		}
	}

	if diff := cmp.Diff([]uint64{1, 2, 3, 4}, ids); diff != "" {
		t.Errorf("ids mismatch (-expected +actual):\n%s", diff)
	}
	if lexer.Position() != 2 {
		t.Errorf("expected cursor to stay at 2, got %d", lexer.Position())
	}
}

func TestTokenTextIsBufferView(t *testing.T) {
	input := []byte(`fn "body"`)
	lexer := NewLexer(input)

	lexer.NextToken()
	literal := lexer.NextToken()
	if literal.String() != "body" {
		t.Fatalf("expected body, got %q", literal.String())
	}

	// The text aliases the buffer rather than copying it.
	input[4] = 'B'
	if literal.String() != "Body" {
		t.Errorf("expected text to alias the source buffer, got %q", literal.String())
	}

	// Appending to the text must not write into the buffer.
	_ = append(literal.Text, '!')
	if input[8] != '"' {
		t.Errorf("append through token text overwrote the buffer")
	}
}

func TestReset(t *testing.T) {
	lexer := NewLexer([]byte("a b c"))
	lexer.GetTokens()

	lexer.Reset([]byte("import"))
	tokens := lexer.GetTokens()

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].ID != 1 || tokens[0].Kind != KeywordImport {
		t.Errorf("expected #1 KeywordImport after reset, got #%d %v", tokens[0].ID, tokens[0].Kind)
	}
}

func TestLoggerTracesTokens(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewLexer([]byte("fn"), WithLogger(logger)).GetTokens()

	out := buf.String()
	if got := strings.Count(out, "msg=token"); got != 2 {
		t.Errorf("expected 2 trace lines, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Token_Kind::Keyword::FN") {
		t.Errorf("expected keyword kind in trace:\n%s", out)
	}
	if !strings.Contains(out, "Token_Kind::END_OF_FILE") {
		t.Errorf("expected end of file kind in trace:\n%s", out)
	}
}

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
	}{
		{None, "Token_Kind::NONE"},
		{EndOfFile, "Token_Kind::END_OF_FILE"},
		{Identifier, "Token_Kind::IDENTIFIER"},
		{KeywordFn, "Token_Kind::Keyword::FN"},
		{KeywordImport, "Token_Kind::Keyword::IMPORT"},
		{LiteralString, "Token_Kind::Literal::STRING"},
		{CurlyPair, "Token_Kind::Symbol::CURLY_BRACKET('PAIR)"},
		{ParenClose, "Token_Kind::Symbol::PARENTHESIS('CLOSED)"},
		{Kind(99), "Not a Token_Kind"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.name)
		}
	}

	if len(Kinds()) != 16 {
		t.Errorf("expected 16 kinds, got %d", len(Kinds()))
	}
}
