package lexer

// Byte classification tables, one entry per byte value so every predicate is total.
// Bytes >= 0x80 fall in no class.
var (
	isWhitespace       [256]bool // space, \t, \n, \v, \f, \r
	isNameStart        [256]bool // a-z, A-Z, _
	isNameContinue     [256]bool // name start or 0-9
	isStringDelimiter  [256]bool // "
	isStringTerminator [256]bool // ", \n, NUL
)

// endOfInput is the in-buffer byte that ends a scan early.
const endOfInput = 0

func init() {
	for i := 0; i < 256; i++ {
		ch := byte(i)

		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\n' || ch == '\v' || ch == '\f' || ch == '\r'

		letter := ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		digit := '0' <= ch && ch <= '9'
		isNameStart[i] = letter || ch == '_'
		isNameContinue[i] = isNameStart[i] || digit

		isStringDelimiter[i] = ch == '"'
		isStringTerminator[i] = ch == '"' || ch == '\n' || ch == endOfInput
	}
}

// IsWhitespace reports whether ch is skipped between tokens
func IsWhitespace(ch byte) bool { return isWhitespace[ch] }

// IsNameStart reports whether ch can begin an identifier or keyword
func IsNameStart(ch byte) bool { return isNameStart[ch] }

// IsNameContinue reports whether ch can follow the first byte of a name
func IsNameContinue(ch byte) bool { return isNameContinue[ch] }

// IsStringDelimiter reports whether ch opens a string literal
func IsStringDelimiter(ch byte) bool { return isStringDelimiter[ch] }

// IsStringTerminator reports whether ch ends a string literal
func IsStringTerminator(ch byte) bool { return isStringTerminator[ch] }
