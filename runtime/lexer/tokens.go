package lexer

import "fmt"

// TokenType represents lexical tokens of the predicate expression language.
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota

	// Punctuation
	LPAREN // (
	RPAREN // )

	// Operators
	NOT // ! or -not
	AND // -and or -a
	OR  // -or or -o

	// Test keywords
	NAME   // -name, --name, -n
	INAME  // -iname
	PATH   // -path
	IPATH  // -ipath
	REGEX  // -regex
	IREGEX // -iregex
	TRUE   // -true
	FALSE  // -false
	EMPTY  // -empty
	TYPE   // -type
	SIZE   // -size
	AMIN   // -amin
	ATIME  // -atime
	CMIN   // -cmin
	CTIME  // -ctime
	MMIN   // -mmin
	MTIME  // -mtime
	ANEWER // -anewer
	CNEWER // -cnewer
	MNEWER // -mnewer
	NEWER  // -newer
	USER   // -user
	GROUP  // -group
	UID    // -uid
	GID    // -gid
	PERM   // -perm

	// Raw argument token: a maximal run of characters that are not
	// whitespace, parentheses or '!'
	RAW
)

var tokenNames = [...]string{
	EOF:    "EOF",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	NOT:    "NOT",
	AND:    "AND",
	OR:     "OR",
	NAME:   "NAME",
	INAME:  "INAME",
	PATH:   "PATH",
	IPATH:  "IPATH",
	REGEX:  "REGEX",
	IREGEX: "IREGEX",
	TRUE:   "TRUE",
	FALSE:  "FALSE",
	EMPTY:  "EMPTY",
	TYPE:   "TYPE",
	SIZE:   "SIZE",
	AMIN:   "AMIN",
	ATIME:  "ATIME",
	CMIN:   "CMIN",
	CTIME:  "CTIME",
	MMIN:   "MMIN",
	MTIME:  "MTIME",
	ANEWER: "ANEWER",
	CNEWER: "CNEWER",
	MNEWER: "MNEWER",
	NEWER:  "NEWER",
	USER:   "USER",
	GROUP:  "GROUP",
	UID:    "UID",
	GID:    "GID",
	PERM:   "PERM",
	RAW:    "RAW",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) && int(t) >= 0 {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsTest reports whether the token type is a test keyword.
func (t TokenType) IsTest() bool {
	return t >= NAME && t <= PERM
}

// Position represents a position in the expression text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Value    string // spelling as written; raw text for RAW tokens
	Position Position
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return t.Value
}

// Keywords maps every accepted spelling to its token type. Matching is exact
// and case-sensitive; the listed aliases are synonyms, not prefixes.
var Keywords = map[string]TokenType{
	"-not": NOT,
	"-and": AND,
	"-a":   AND,
	"-or":  OR,
	"-o":   OR,

	"-name": NAME, "--name": NAME, "-n": NAME,
	"-iname": INAME, "--iname": INAME,
	"-path": PATH, "--path": PATH,
	"-ipath": IPATH, "--ipath": IPATH,
	"-regex": REGEX, "--regex": REGEX,
	"-iregex": IREGEX, "--iregex": IREGEX,
	"-true": TRUE, "--true": TRUE,
	"-false": FALSE, "--false": FALSE,
	"-empty": EMPTY, "--empty": EMPTY,
	"-type": TYPE, "--type": TYPE,
	"-size": SIZE, "--size": SIZE,
	"-amin": AMIN, "--amin": AMIN,
	"-atime": ATIME, "--atime": ATIME,
	"-cmin": CMIN, "--cmin": CMIN,
	"-ctime": CTIME, "--ctime": CTIME,
	"-mmin": MMIN, "--mmin": MMIN,
	"-mtime": MTIME, "--mtime": MTIME,
	"-anewer": ANEWER, "--anewer": ANEWER,
	"-cnewer": CNEWER, "--cnewer": CNEWER,
	"-mnewer": MNEWER, "--mnewer": MNEWER,
	"-newer": NEWER, "--newer": NEWER,
	"-user": USER, "--user": USER,
	"-group": GROUP, "--group": GROUP,
	"-uid": UID, "--uid": UID,
	"-gid": GID, "--gid": GID,
	"-perm": PERM, "--perm": PERM,
}
