package lexer

import "unicode/utf8"

// Lexer splits a predicate expression into tokens. Whitespace is the only
// token separator and may repeat freely; the characters ( ) and ! are
// self-delimiting and also terminate a raw run. A run that exactly matches a
// keyword spelling becomes that keyword's token, any other run is RAW.
//
// The lexer holds no state beyond its cursor, so independent expressions can
// be tokenized concurrently by independent Lexer values.
type Lexer struct {
	input    []byte
	position int
	line     int
	column   int
}

// New creates a lexer for the given expression text.
func New(input string) *Lexer {
	l := &Lexer{}
	l.Init([]byte(input))
	return l
}

// Init resets the lexer with new input (following the Go scanner pattern).
func (l *Lexer) Init(input []byte) {
	l.input = input
	l.position = 0
	l.line = 1
	l.column = 1
}

// Tokenize scans an entire expression and returns its tokens, including the
// trailing EOF token.
func Tokenize(input string) []Token {
	l := New(input)
	tokens := make([]Token, 0, 16)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipSeparators()

	start := Position{Line: l.line, Column: l.column, Offset: l.position}

	if l.position >= len(l.input) {
		return Token{Type: EOF, Position: start}
	}

	switch l.input[l.position] {
	case '(':
		l.advanceChar()
		return Token{Type: LPAREN, Value: "(", Position: start}
	case ')':
		l.advanceChar()
		return Token{Type: RPAREN, Value: ")", Position: start}
	case '!':
		l.advanceChar()
		return Token{Type: NOT, Value: "!", Position: start}
	}

	return l.lexRun(start)
}

// lexRun scans a maximal run of non-break characters and classifies it.
func (l *Lexer) lexRun(start Position) Token {
	startPos := l.position
	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch < 128 && isBreak[ch] {
			break
		}
		l.advanceChar()
	}

	text := string(l.input[startPos:l.position])
	if typ, ok := Keywords[text]; ok {
		return Token{Type: typ, Value: text, Position: start}
	}
	return Token{Type: RAW, Value: text, Position: start}
}

// skipSeparators skips runs of separator characters between tokens.
func (l *Lexer) skipSeparators() {
	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch >= 128 || !isSeparator[ch] {
			return
		}
		l.advanceChar()
	}
}

// advanceChar moves past one character, handling multi-byte runes for
// position tracking only; token content is carried as raw bytes.
func (l *Lexer) advanceChar() {
	ch := l.input[l.position]

	if ch < 128 {
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.position++
		return
	}

	_, size := utf8.DecodeRune(l.input[l.position:])
	if size <= 0 {
		size = 1
	}
	l.position += size
	l.column++
}
