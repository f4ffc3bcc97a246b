package parser

import (
	"github.com/pbrass/findr/core/ast"
	"github.com/pbrass/findr/runtime/lexer"
)

// test parses one test keyword and the arguments its grammar requires,
// producing the leaf predicate. The caller has already established that the
// current token is a test keyword.
func (p *parser) test() (ast.Test, error) {
	tok := p.advance()

	switch tok.Type {
	case lexer.TRUE:
		return ast.Test{Kind: ast.TestTrue}, nil
	case lexer.FALSE:
		return ast.Test{Kind: ast.TestFalse}, nil
	case lexer.EMPTY:
		return ast.Test{Kind: ast.TestEmpty}, nil

	case lexer.NAME:
		return p.rawArgTest(tok, ast.TestName, "glob pattern")
	case lexer.INAME:
		return p.rawArgTest(tok, ast.TestIname, "glob pattern")
	case lexer.PATH:
		return p.rawArgTest(tok, ast.TestPath, "glob pattern")
	case lexer.IPATH:
		return p.rawArgTest(tok, ast.TestIpath, "glob pattern")
	case lexer.REGEX:
		return p.rawArgTest(tok, ast.TestRegex, "pattern")
	case lexer.IREGEX:
		return p.rawArgTest(tok, ast.TestIregex, "pattern")
	case lexer.ANEWER:
		return p.rawArgTest(tok, ast.TestAnewer, "reference file")
	case lexer.CNEWER:
		return p.rawArgTest(tok, ast.TestCnewer, "reference file")
	case lexer.MNEWER:
		return p.rawArgTest(tok, ast.TestMnewer, "reference file")
	case lexer.NEWER:
		return p.rawArgTest(tok, ast.TestNewer, "reference file")
	case lexer.USER:
		return p.rawArgTest(tok, ast.TestUser, "user name")
	case lexer.GROUP:
		return p.rawArgTest(tok, ast.TestGroup, "group name")

	case lexer.UID, lexer.GID:
		kind := ast.TestUid
		if tok.Type == lexer.GID {
			kind = ast.TestGid
		}
		arg, err := p.operand(tok, "numeric id")
		if err != nil {
			return ast.Test{}, err
		}
		n, err := parseNumber(p.input, arg)
		if err != nil {
			return ast.Test{}, err
		}
		return ast.Test{Kind: kind, Num: n}, nil

	case lexer.TYPE:
		arg, err := p.operand(tok, "file type letters")
		if err != nil {
			return ast.Test{}, err
		}
		types, err := parseTypeSet(p.input, arg)
		if err != nil {
			return ast.Test{}, err
		}
		return ast.Test{Kind: ast.TestType, Types: types}, nil

	case lexer.SIZE:
		arg, err := p.operand(tok, "size")
		if err != nil {
			return ast.Test{}, err
		}
		spec, err := parseSizeSpec(p.input, arg)
		if err != nil {
			return ast.Test{}, err
		}
		return ast.Test{Kind: ast.TestSize, Size: spec}, nil

	case lexer.AMIN, lexer.ATIME, lexer.CMIN, lexer.CTIME, lexer.MMIN, lexer.MTIME:
		kind := timeKinds[tok.Type]
		arg, err := p.operand(tok, "time")
		if err != nil {
			return ast.Test{}, err
		}
		spec, err := parseTimeSpec(p.input, arg)
		if err != nil {
			return ast.Test{}, err
		}
		return ast.Test{Kind: kind, Time: spec}, nil

	case lexer.PERM:
		arg, err := p.operand(tok, "permission spec")
		if err != nil {
			return ast.Test{}, err
		}
		spec, err := parsePermSpec(p.input, arg)
		if err != nil {
			return ast.Test{}, err
		}
		return ast.Test{Kind: ast.TestPerm, Perm: spec}, nil
	}

	// Unreachable while the keyword table and this switch stay in sync.
	return ast.Test{}, errAt(UnknownTest, p.input, tok.Position.Offset,
		"unknown test %q", tok.Value)
}

var timeKinds = map[lexer.TokenType]ast.TestKind{
	lexer.AMIN:  ast.TestAmin,
	lexer.ATIME: ast.TestAtime,
	lexer.CMIN:  ast.TestCmin,
	lexer.CTIME: ast.TestCtime,
	lexer.MMIN:  ast.TestMmin,
	lexer.MTIME: ast.TestMtime,
}

// rawArgTest handles the tests whose single argument is an opaque raw token.
func (p *parser) rawArgTest(keyword lexer.Token, kind ast.TestKind, want string) (ast.Test, error) {
	arg, err := p.operand(keyword, want)
	if err != nil {
		return ast.Test{}, err
	}
	return ast.Test{Kind: kind, Arg: arg.Value}, nil
}

// operand consumes the raw token following a test keyword. Running out of
// input, or hitting a keyword or punctuation where an argument is required,
// is a MissingOperand failure.
func (p *parser) operand(keyword lexer.Token, want string) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != lexer.RAW {
		return lexer.Token{}, errAt(MissingOperand, p.input, tok.Position.Offset,
			"%s requires a %s operand", keyword.Value, want)
	}
	return p.advance(), nil
}
