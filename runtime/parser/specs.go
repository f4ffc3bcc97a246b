package parser

import (
	"strconv"

	"github.com/pbrass/findr/core/ast"
	"github.com/pbrass/findr/runtime/lexer"
)

// Sub-grammars for the structured test arguments. Each parser consumes the
// whole raw token; a character the grammar cannot place fails with the
// argument's error kind at that character's offset.

// parseNumber parses an unsigned decimal integer. Leading zeros are allowed.
func parseNumber(input string, tok lexer.Token) (uint64, error) {
	s := tok.Value
	for i := 0; i < len(s); i++ {
		if !lexer.IsDigit(s[i]) {
			return 0, errAt(InvalidNumber, input, tok.Position.Offset+i,
				"invalid number %q", s)
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errAt(InvalidNumber, input, tok.Position.Offset, "invalid number %q", s)
	}
	return n, nil
}

// parseSizeSpec parses sign? digits unit? where the unit is one of b c w k M G.
func parseSizeSpec(input string, tok lexer.Token) (ast.SizeSpec, error) {
	s := tok.Value
	base := tok.Position.Offset
	spec := ast.SizeSpec{Unit: ast.UnitBlocks}

	i := 0
	spec.Cmp, i = parseSign(s)

	start := i
	for i < len(s) && lexer.IsDigit(s[i]) {
		i++
	}
	if i == start {
		return ast.SizeSpec{}, errAt(InvalidSizeSpec, input, base+i,
			"size %q has no digits", s)
	}
	mag, err := strconv.ParseUint(s[start:i], 10, 64)
	if err != nil {
		return ast.SizeSpec{}, errAt(InvalidSizeSpec, input, base+start,
			"size %q out of range", s)
	}
	spec.Magnitude = mag

	if i < len(s) {
		unit, ok := sizeUnits[s[i]]
		if !ok || i != len(s)-1 {
			return ast.SizeSpec{}, errAt(InvalidSizeSpec, input, base+i,
				"invalid size suffix %q in %q", s[i:], s)
		}
		spec.Unit = unit
	}

	return spec, nil
}

var sizeUnits = map[byte]ast.SizeUnit{
	'b': ast.UnitBlocks,
	'c': ast.UnitBytes,
	'w': ast.UnitWords,
	'k': ast.UnitKb,
	'M': ast.UnitMb,
	'G': ast.UnitGb,
}

// parseTimeSpec parses sign? digits. The unit is implied by the test kind.
func parseTimeSpec(input string, tok lexer.Token) (ast.TimeSpec, error) {
	s := tok.Value
	base := tok.Position.Offset

	cmp, i := parseSign(s)

	start := i
	for i < len(s) && lexer.IsDigit(s[i]) {
		i++
	}
	if i == start || i != len(s) {
		return ast.TimeSpec{}, errAt(InvalidTimeSpec, input, base+i,
			"invalid time %q", s)
	}
	mag, err := strconv.ParseUint(s[start:], 10, 64)
	if err != nil {
		return ast.TimeSpec{}, errAt(InvalidTimeSpec, input, base+start,
			"time %q out of range", s)
	}

	return ast.TimeSpec{Cmp: cmp, Magnitude: mag}, nil
}

func parseSign(s string) (ast.Comparison, int) {
	if len(s) > 0 {
		switch s[0] {
		case '+':
			return ast.MoreThan, 1
		case '-':
			return ast.LessThan, 1
		}
	}
	return ast.Exact, 0
}

// parseTypeSet parses one or more file type letters, optionally
// comma-separated. Duplicate letters are ignored; the result is a set.
func parseTypeSet(input string, tok lexer.Token) (ast.FileTypeSet, error) {
	s := tok.Value
	base := tok.Position.Offset

	var set ast.FileTypeSet
	expectLetter := true
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && !expectLetter {
			expectLetter = true
			continue
		}
		bit, ok := ast.FileTypeFromLetter(s[i])
		if !ok {
			return 0, errAt(UnknownFileType, input, base+i,
				"unknown file type %q", string(s[i]))
		}
		set |= bit
		expectLetter = false
	}
	if expectLetter {
		// Empty argument or trailing comma.
		return 0, errAt(UnknownFileType, input, base+len(s),
			"file type letter missing in %q", s)
	}

	return set, nil
}

// parsePermSpec parses a -perm argument. A run beginning with a digit, after
// an optional - or / prefix, is a numeric mode of exactly 3 or 4 octal
// digits; anything else is a symbolic clause list. A prefix followed by a
// non-digit is malformed: symbolic specs take no prefix.
func parsePermSpec(input string, tok lexer.Token) (ast.PermSpec, error) {
	s := tok.Value
	base := tok.Position.Offset

	match := ast.ExactMatch
	i := 0
	if len(s) > 0 {
		switch s[0] {
		case '-':
			match, i = ast.AllBitsSet, 1
		case '/':
			match, i = ast.AnyBitSet, 1
		}
	}

	if i < len(s) && lexer.IsDigit(s[i]) {
		return parseNumericPerm(input, s, base, i, match)
	}
	if i > 0 {
		return ast.PermSpec{}, errAt(InvalidPermSpec, input, base+i,
			"permission prefix %q must be followed by an octal mode", string(s[0]))
	}
	return parseSymbolicPerm(input, s, base)
}

func parseNumericPerm(input, s string, base, start int, match ast.PermMatch) (ast.PermSpec, error) {
	digits := s[start:]
	if len(digits) != 3 && len(digits) != 4 {
		return ast.PermSpec{}, errAt(InvalidPermSpec, input, base+start,
			"octal mode %q must have 3 or 4 digits", digits)
	}
	for i := 0; i < len(digits); i++ {
		if !lexer.IsOctal(digits[i]) {
			return ast.PermSpec{}, errAt(InvalidPermSpec, input, base+start+i,
				"invalid octal digit %q in mode %q", string(digits[i]), digits)
		}
	}

	mode, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return ast.PermSpec{}, errAt(InvalidPermSpec, input, base+start, "invalid mode %q", digits)
	}

	return ast.PermSpec{Numeric: &ast.NumericPerm{Mode: uint32(mode), Match: match}}, nil
}

// parseSymbolicPerm parses a comma-separated clause list, each clause being
// principal, operator, then one or more distinct privilege letters.
func parseSymbolicPerm(input, s string, base int) (ast.PermSpec, error) {
	var clauses []ast.PermClause

	i := 0
	for {
		clause, next, err := parsePermClause(input, s, base, i)
		if err != nil {
			return ast.PermSpec{}, err
		}
		clauses = append(clauses, clause)

		if next == len(s) {
			return ast.PermSpec{Symbolic: clauses}, nil
		}
		if s[next] != ',' {
			return ast.PermSpec{}, errAt(InvalidPermSpec, input, base+next,
				"unexpected %q in permission spec %q", string(s[next]), s)
		}
		i = next + 1
	}
}

func parsePermClause(input, s string, base, i int) (ast.PermClause, int, error) {
	if i >= len(s) {
		return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
			"permission clause missing in %q", s)
	}

	var clause ast.PermClause
	switch s[i] {
	case 'u':
		clause.Who = ast.WhoUser
	case 'g':
		clause.Who = ast.WhoGroup
	case 'o':
		clause.Who = ast.WhoOther
	case 'a':
		clause.Who = ast.WhoAll
	default:
		return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
			"unknown permission principal %q", string(s[i]))
	}
	i++

	if i >= len(s) {
		return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
			"permission clause %q missing operator", s)
	}
	switch s[i] {
	case '+':
		clause.Op = ast.OpAdd
	case '-':
		clause.Op = ast.OpRemove
	case '=':
		clause.Op = ast.OpSet
	default:
		return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
			"unknown permission operator %q", string(s[i]))
	}
	i++

	start := i
	for i < len(s) && s[i] != ',' {
		var priv ast.PermPrivSet
		switch s[i] {
		case 'r':
			priv = ast.PrivRead
		case 'w':
			priv = ast.PrivWrite
		case 'x':
			priv = ast.PrivExecute
		default:
			return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
				"unknown privilege %q in permission spec", string(s[i]))
		}
		if clause.Privs&priv != 0 {
			return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
				"duplicate privilege %q in permission clause", string(s[i]))
		}
		clause.Privs |= priv
		i++
	}
	if i == start {
		return ast.PermClause{}, 0, errAt(InvalidPermSpec, input, base+i,
			"permission clause has no privileges")
	}

	return clause, i, nil
}
