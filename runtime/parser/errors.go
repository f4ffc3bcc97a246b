package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pbrass/findr/runtime/lexer"
)

// ErrorKind categorizes parse failures. Every failure is a local,
// non-retryable syntax error in the input expression; the first error aborts
// the parse and is surfaced verbatim.
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnknownTest
	MissingOperand
	InvalidNumber
	InvalidSizeSpec
	InvalidTimeSpec
	InvalidPermSpec
	UnknownFileType
	UnterminatedGroup
	EmptyExpression
	TrailingInput
)

var errorKindNames = [...]string{
	UnexpectedCharacter: "UnexpectedCharacter",
	UnknownTest:         "UnknownTest",
	MissingOperand:      "MissingOperand",
	InvalidNumber:       "InvalidNumber",
	InvalidSizeSpec:     "InvalidSizeSpec",
	InvalidTimeSpec:     "InvalidTimeSpec",
	InvalidPermSpec:     "InvalidPermSpec",
	UnknownFileType:     "UnknownFileType",
	UnterminatedGroup:   "UnterminatedGroup",
	EmptyExpression:     "EmptyExpression",
	TrailingInput:       "TrailingInput",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && int(k) >= 0 {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is a syntax error with the byte offset where it was detected.
type ParseError struct {
	Kind        ErrorKind
	Offset      int // 0-based byte offset into the expression text
	Message     string
	Input       string   // full expression text, for diagnostics
	Suggestions []string // possible fixes, may be empty
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Message)
}

// Diagnostic renders the error with the offending position marked by a
// caret, suitable for terminal output. Offset counts bytes, so the caret
// indent is measured in runes to stay under the right character when the
// input contains multi-byte text.
func (e *ParseError) Diagnostic() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Message)
	if e.Input != "" {
		col := e.Offset
		if col > len(e.Input) {
			col = len(e.Input)
		}
		b.WriteString("  " + e.Input + "\n")
		b.WriteString("  " + strings.Repeat(" ", utf8.RuneCountInString(e.Input[:col])) + "^")
	}
	for _, s := range e.Suggestions {
		b.WriteString("\n  did you mean " + s + "?")
	}
	return b.String()
}

func errAt(kind ErrorKind, input string, offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
		Input:   input,
	}
}

// suggestKeyword fuzzy-matches an unrecognized token against the known
// keyword spellings so UnknownTest errors can propose a fix.
func suggestKeyword(target string) []string {
	candidates := make([]string, 0, len(lexer.Keywords))
	for spelling := range lexer.Keywords {
		candidates = append(candidates, spelling)
	}

	ranks := fuzzy.RankFindFold(strings.TrimLeft(target, "-"), candidates)
	if len(ranks) == 0 {
		return nil
	}

	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return []string{best.Target}
}
