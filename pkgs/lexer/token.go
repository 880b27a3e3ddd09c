package lexer

// Kind represents the closed set of token categories
type Kind int

const (
	// Special tokens
	None      Kind = iota // unrecognized byte, emitted to guarantee progress
	EndOfFile             // end of input

	// Names
	Identifier
	KeywordFn     // fn
	KeywordImport // import

	// Literals
	LiteralString // "..." content without the quotes

	// Symbols
	Asterisk   // *
	CurlyClose // }
	CurlyOpen  // {
	CurlyPair  // {}
	ColonEqual // :=
	ColonPair  // ::
	ParenClose // )
	ParenOpen  // (
	ParenPair  // ()
	Semicolon  // ;
)

// String returns the diagnostic name of the kind
func (k Kind) String() string {
	switch k {
	case None:
		return "Token_Kind::NONE"
	case EndOfFile:
		return "Token_Kind::END_OF_FILE"
	case Identifier:
		return "Token_Kind::IDENTIFIER"
	case KeywordFn:
		return "Token_Kind::Keyword::FN"
	case KeywordImport:
		return "Token_Kind::Keyword::IMPORT"
	case LiteralString:
		return "Token_Kind::Literal::STRING"
	case Asterisk:
		return "Token_Kind::Symbol::ASTERISK"
	case CurlyClose:
		return "Token_Kind::Symbol::CURLY_BRACKET('CLOSED)"
	case CurlyOpen:
		return "Token_Kind::Symbol::CURLY_BRACKET('OPEN)"
	case CurlyPair:
		return "Token_Kind::Symbol::CURLY_BRACKET('PAIR)"
	case ColonEqual:
		return "Token_Kind::Symbol::COLON_EQUAL"
	case ColonPair:
		return "Token_Kind::Symbol::COLON_PAIR"
	case ParenClose:
		return "Token_Kind::Symbol::PARENTHESIS('CLOSED)"
	case ParenOpen:
		return "Token_Kind::Symbol::PARENTHESIS('OPEN)"
	case ParenPair:
		return "Token_Kind::Symbol::PARENTHESIS('PAIR)"
	case Semicolon:
		return "Token_Kind::Symbol::SEMICOLON"
	default:
		return "Not a Token_Kind"
	}
}

// HasPayload reports whether the kind's text is part of its diagnostic line
func (k Kind) HasPayload() bool {
	return k == Identifier || k == LiteralString
}

// IsKeyword reports whether the kind is a reserved word
func (k Kind) IsKeyword() bool {
	return k == KeywordFn || k == KeywordImport
}

// IsSymbol reports whether the kind is punctuation
func (k Kind) IsSymbol() bool {
	return k >= Asterisk && k <= Semicolon
}

// Kinds lists every valid kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(Semicolon)+1)
	for k := None; k <= Semicolon; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Keywords maps reserved words to their kinds. Matching is exact and case-sensitive.
var Keywords = map[string]Kind{
	"fn":     KeywordFn,
	"import": KeywordImport,
}

// Span is a byte range of the source buffer
type Span struct {
	Offset int // 0-based byte offset
	Length int // number of bytes
}

// End returns the offset one past the last byte of the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// Token represents a lexical token
type Token struct {
	ID   uint64 // 1-based, one per NextToken call
	Kind Kind
	Text []byte // view into the source buffer; nil for None and EndOfFile
	Span Span   // bytes consumed by the call, after leading whitespace
}

// Len returns the length of the token text in bytes
func (t Token) Len() int {
	return len(t.Text)
}

// String returns the token text as a string (for testing and debugging)
func (t Token) String() string {
	return string(t.Text)
}
