package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokenExpectation struct {
	Type   TokenType
	Value  string
	Offset int
}

func assertTokens(t *testing.T, name string, input string, expected []tokenExpectation) {
	t.Helper()

	tokens := Tokenize(input)
	var actual []tokenExpectation

	for _, token := range tokens {
		actual = append(actual, tokenExpectation{
			Type:   token.Type,
			Value:  token.Value,
			Offset: token.Position.Offset,
		})
	}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s: token mismatch (-expected +actual):\n%s", name, diff)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "single_test_keyword",
			input: "-name",
			expected: []tokenExpectation{
				{NAME, "-name", 0},
				{EOF, "", 5},
			},
		},
		{
			name:  "long_alias",
			input: "--name",
			expected: []tokenExpectation{
				{NAME, "--name", 0},
				{EOF, "", 6},
			},
		},
		{
			name:  "short_alias",
			input: "-n",
			expected: []tokenExpectation{
				{NAME, "-n", 0},
				{EOF, "", 2},
			},
		},
		{
			name:  "operator_aliases",
			input: "-and -a -or -o -not",
			expected: []tokenExpectation{
				{AND, "-and", 0},
				{AND, "-a", 5},
				{OR, "-or", 8},
				{OR, "-o", 12},
				{NOT, "-not", 15},
				{EOF, "", 19},
			},
		},
		{
			name:  "case_sensitive",
			input: "-NAME",
			expected: []tokenExpectation{
				{RAW, "-NAME", 0},
				{EOF, "", 5},
			},
		},
		{
			name:  "keyword_with_argument",
			input: "-size +10k",
			expected: []tokenExpectation{
				{SIZE, "-size", 0},
				{RAW, "+10k", 6},
				{EOF, "", 10},
			},
		},
		{
			name:  "time_keywords",
			input: "-amin -atime -cmin -ctime -mmin -mtime",
			expected: []tokenExpectation{
				{AMIN, "-amin", 0},
				{ATIME, "-atime", 6},
				{CMIN, "-cmin", 13},
				{CTIME, "-ctime", 19},
				{MMIN, "-mmin", 26},
				{MTIME, "-mtime", 32},
				{EOF, "", 38},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestPunctuation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "parens_break_runs",
			input: "(-name)",
			expected: []tokenExpectation{
				{LPAREN, "(", 0},
				{NAME, "-name", 1},
				{RPAREN, ")", 6},
				{EOF, "", 7},
			},
		},
		{
			name:  "bang_breaks_runs",
			input: "!-empty",
			expected: []tokenExpectation{
				{NOT, "!", 0},
				{EMPTY, "-empty", 1},
				{EOF, "", 7},
			},
		},
		{
			name:  "bang_inside_raw_does_break",
			input: "-name a!b",
			expected: []tokenExpectation{
				{NAME, "-name", 0},
				{RAW, "a", 6},
				{NOT, "!", 7},
				{RAW, "b", 8},
				{EOF, "", 9},
			},
		},
		{
			name:  "nested_groups",
			input: "((-true))",
			expected: []tokenExpectation{
				{LPAREN, "(", 0},
				{LPAREN, "(", 1},
				{TRUE, "-true", 2},
				{RPAREN, ")", 7},
				{RPAREN, ")", 8},
				{EOF, "", 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestRawTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "glob_pattern",
			input: "*.go",
			expected: []tokenExpectation{
				{RAW, "*.go", 0},
				{EOF, "", 4},
			},
		},
		{
			name:  "near_miss_keyword_stays_raw",
			input: "-nme",
			expected: []tokenExpectation{
				{RAW, "-nme", 0},
				{EOF, "", 4},
			},
		},
		{
			name:  "signed_argument",
			input: "-mtime -7",
			expected: []tokenExpectation{
				{MTIME, "-mtime", 0},
				{RAW, "-7", 7},
				{EOF, "", 9},
			},
		},
		{
			name:  "path_with_slashes",
			input: "-path ./src/*/gen",
			expected: []tokenExpectation{
				{PATH, "-path", 0},
				{RAW, "./src/*/gen", 6},
				{EOF, "", 17},
			},
		},
		{
			name:  "unicode_in_raw",
			input: "-name héllo",
			expected: []tokenExpectation{
				{NAME, "-name", 0},
				{RAW, "héllo", 6},
				{EOF, "", 12},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestWhitespaceHandling(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "empty_input",
			input: "",
			expected: []tokenExpectation{
				{EOF, "", 0},
			},
		},
		{
			name:  "only_whitespace",
			input: " \t\n ",
			expected: []tokenExpectation{
				{EOF, "", 4},
			},
		},
		{
			name:  "mixed_separators",
			input: "-type\td \n -empty",
			expected: []tokenExpectation{
				{TYPE, "-type", 0},
				{RAW, "d", 6},
				{EMPTY, "-empty", 10},
				{EOF, "", 16},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestLineColumnTracking(t *testing.T) {
	tokens := Tokenize("-name\n  *.go")

	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Position.Line != 1 || tokens[0].Position.Column != 1 {
		t.Errorf("keyword at %d:%d, want 1:1", tokens[0].Position.Line, tokens[0].Position.Column)
	}
	if tokens[1].Position.Line != 2 || tokens[1].Position.Column != 3 {
		t.Errorf("argument at %d:%d, want 2:3", tokens[1].Position.Line, tokens[1].Position.Column)
	}
}
