package lexer

import "github.com/opal-lang/knave/core/invariant"

// symbolPair is a two-byte symbol recognized with one byte of lookahead
type symbolPair struct {
	next byte
	kind Kind
}

// symbolRule describes how a symbol lead byte is scanned.
// When the following byte matches one of pairs, both bytes are consumed;
// otherwise only the lead byte is consumed and single is emitted.
// A single of None marks a lead byte that is only valid as part of a pair.
type symbolRule struct {
	single Kind
	pairs  []symbolPair
}

// symbolTable dispatches on the byte under the cursor
type symbolTable [256]*symbolRule

var (
	defaultSymbols = newSymbolTable(CurlyPair)
	legacySymbols  = newSymbolTable(CurlyClose)
)

// newSymbolTable builds the dispatch table. curlyPair is the kind emitted for "{}".
func newSymbolTable(curlyPair Kind) *symbolTable {
	var t symbolTable
	t[':'] = &symbolRule{
		single: None,
		pairs:  []symbolPair{{':', ColonPair}, {'=', ColonEqual}},
	}
	t['*'] = &symbolRule{single: Asterisk}
	t[';'] = &symbolRule{single: Semicolon}
	t['('] = &symbolRule{
		single: ParenOpen,
		pairs:  []symbolPair{{')', ParenPair}},
	}
	t[')'] = &symbolRule{single: ParenClose}
	t['{'] = &symbolRule{
		single: CurlyOpen,
		pairs:  []symbolPair{{'}', curlyPair}},
	}
	t['}'] = &symbolRule{single: CurlyClose}
	return &t
}

// match classifies the symbol starting at input[pos]. It returns the kind and
// the number of bytes consumed, or ok=false when input[pos] is not a symbol byte.
// The lookahead byte is only read when it is inside input.
func (t *symbolTable) match(input []byte, pos int) (kind Kind, width int, ok bool) {
	invariant.Precondition(pos >= 0 && pos < len(input), "symbol match at %d outside input of %d bytes", pos, len(input))

	rule := t[input[pos]]
	if rule == nil {
		return None, 0, false
	}
	if pos+1 < len(input) {
		next := input[pos+1]
		for _, pair := range rule.pairs {
			if pair.next == next {
				return pair.kind, 2, true
			}
		}
	}
	return rule.single, 1, true
}
