// Package invariant provides contract assertions for knave.
//
// Assertions guard the scanner's internal contracts: the cursor stays inside
// the source buffer, every scan step makes progress, and every token's text
// lies inside the bytes it consumed. A violation is a bug in knave, never a
// problem with the user's input, so every function panics.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func (l *Lexer) Reset(input []byte) {
//	    invariant.Precondition(l != nil, "lexer must not be nil")
//	    // ...
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...any) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks internal consistency during execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	start := l.position
//	tok := l.scan()
//	invariant.Invariant(l.position > start, "scan must consume input")
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// InRange panics if value is outside [minVal, maxVal].
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("PRECONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// Within panics unless [offset, offset+length) is a sub-range of
// [outerOffset, outerOffset+outerLength).
func Within(offset, length, outerOffset, outerLength int, name string) {
	if length < 0 || offset < outerOffset || offset+length > outerOffset+outerLength {
		fail("INVARIANT", "%s [%d, %d) must lie within [%d, %d)",
			name, offset, offset+length, outerOffset, outerOffset+outerLength)
	}
}

// fail panics with a formatted message including the caller's location.
func fail(kind, format string, args ...any) {
	// Skip runtime.Callers, fail and the exported wrapper.
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
