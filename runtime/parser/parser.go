package parser

import (
	"github.com/pbrass/findr/core/ast"
	"github.com/pbrass/findr/runtime/lexer"
)

// Parse parses a complete predicate expression into an AST.
//
// Precedence is encoded as three explicit descent tiers, tightest binding
// first: NOT applies to a single term, adjacent terms conjoin left to right
// (with or without an explicit -and), and -or combines conjunction chains
// left to right. A parenthesized group is a term and is opaque to the
// precedence around it.
//
// Parsing is pure: the only state is a cursor over the token slice, so any
// number of expressions can be parsed concurrently. On failure the returned
// error is a *ParseError carrying the error kind and byte offset.
func Parse(input string) (ast.Expr, error) {
	p := &parser{
		input:  input,
		tokens: lexer.Tokenize(input),
	}

	if p.at(lexer.EOF) {
		return nil, errAt(EmptyExpression, input, 0, "expression contains no term")
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.EOF) {
		tok := p.current()
		return nil, errAt(TrailingInput, input, tok.Position.Offset,
			"unexpected %q after complete expression", tok.Value)
	}

	return expr, nil
}

type parser struct {
	input  string
	tokens []lexer.Token
	pos    int
}

func (p *parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) at(t lexer.TokenType) bool {
	return p.tokens[p.pos].Type == t
}

func (p *parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

// expression parses the disjunction tier: conjunction (-or conjunction)*.
func (p *parser) expression() (ast.Expr, error) {
	left, err := p.conjunction()
	if err != nil {
		return nil, err
	}

	for p.at(lexer.OR) {
		p.advance()
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		left = &ast.OrExpr{Left: left, Right: right}
	}

	return left, nil
}

// conjunction parses the conjunction tier: factor ((-and)? factor)*. Two
// adjacent factors with no operator between them conjoin exactly like an
// explicit -and; both associate left.
func (p *parser) conjunction() (ast.Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at(lexer.AND):
			p.advance()
		case p.startsFactor():
			// implicit AND
		default:
			return left, nil
		}

		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &ast.AndExpr{Left: left, Right: right}
	}
}

// startsFactor reports whether the current token can begin a factor, which
// is what makes bare adjacency an implicit AND. A RAW token counts: it sits
// where a test keyword belongs and becomes an UnknownTest error in term.
func (p *parser) startsFactor() bool {
	t := p.current().Type
	return t == lexer.NOT || t == lexer.LPAREN || t == lexer.RAW || t.IsTest()
}

// factor parses the unary tier: (! | -not) applied to exactly one term. The
// operand must be a test or a parenthesized group, never a bare AND/OR
// chain and never another negation.
func (p *parser) factor() (ast.Expr, error) {
	if p.at(lexer.NOT) {
		p.advance()
		term, err := p.term()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Expr: term}, nil
	}
	return p.term()
}

// term parses a single term: a test, or ( expression ).
func (p *parser) term() (ast.Expr, error) {
	tok := p.current()

	switch {
	case tok.Type == lexer.LPAREN:
		return p.group()

	case tok.Type.IsTest():
		test, err := p.test()
		if err != nil {
			return nil, err
		}
		return &ast.TestExpr{Test: test}, nil

	case tok.Type == lexer.RAW:
		err := errAt(UnknownTest, p.input, tok.Position.Offset,
			"unknown test %q", tok.Value)
		err.Suggestions = suggestKeyword(tok.Value)
		return nil, err

	case tok.Type == lexer.EOF:
		return nil, errAt(UnexpectedCharacter, p.input, tok.Position.Offset,
			"expected a term, found end of input")

	default:
		return nil, errAt(UnexpectedCharacter, p.input, tok.Position.Offset,
			"expected a term, found %q", tok.Value)
	}
}

// group parses a parenthesized expression. The group must contain a term
// and must be closed before the input ends.
func (p *parser) group() (ast.Expr, error) {
	open := p.advance() // consume '('

	if p.at(lexer.RPAREN) {
		return nil, errAt(EmptyExpression, p.input, p.current().Position.Offset,
			"parenthesized group contains no term")
	}
	if p.at(lexer.EOF) {
		return nil, errAt(UnterminatedGroup, p.input, open.Position.Offset,
			"'(' is never closed")
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.RPAREN) {
		return nil, errAt(UnterminatedGroup, p.input, open.Position.Offset,
			"'(' is never closed")
	}
	p.advance() // consume ')'

	return expr, nil
}
