package lexer

// ASCII character lookup tables for fast classification (zero-allocation).
//
// The expression language has exactly two character classes that matter to
// the token reader: separators (any whitespace) and the three punctuation
// characters that terminate a raw token run. Everything else is raw-token
// material.
var (
	isSeparator [128]bool // space, tab, newline, carriage return, form feed, vertical tab
	isBreak     [128]bool // separator or one of ( ) !
	isDigit     [128]bool // 0-9
	isOctal     [128]bool // 0-7
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isSeparator[i] = ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
		isBreak[i] = isSeparator[i] || ch == '(' || ch == ')' || ch == '!'
		isDigit[i] = '0' <= ch && ch <= '9'
		isOctal[i] = '0' <= ch && ch <= '7'
	}
}

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit(ch byte) bool {
	return ch < 128 && isDigit[ch]
}

// IsOctal reports whether ch is an ASCII octal digit.
func IsOctal(ch byte) bool {
	return ch < 128 && isOctal[ch]
}
