package ast

import (
	"strconv"
	"strings"
)

// Canonical surface rendering. Re-parsing the rendered form of any tree the
// parser can produce yields a structurally identical tree; operator aliases
// are normalized to -and, -or and !.

// Keyword returns the canonical surface keyword for a test kind.
func (k TestKind) Keyword() string {
	return "-" + strings.ToLower(k.String())
}

// Binding powers, loosest to tightest. A child rendered in a slot that
// requires a tighter binding than the child has gets wrapped in parentheses.
const (
	precOr = iota + 1
	precAnd
	precNot
	precTest
)

func prec(e Expr) int {
	switch e.(type) {
	case *OrExpr:
		return precOr
	case *AndExpr:
		return precAnd
	case *NotExpr:
		return precNot
	default:
		return precTest
	}
}

func render(b *strings.Builder, e Expr, min int) {
	if prec(e) < min {
		b.WriteString("( ")
		render(b, e, precOr)
		b.WriteString(" )")
		return
	}
	switch n := e.(type) {
	case *OrExpr:
		// Left-associative: the left slot accepts another Or, the right
		// slot must bind at least as tight as And.
		render(b, n.Left, precOr)
		b.WriteString(" -or ")
		render(b, n.Right, precAnd)
	case *AndExpr:
		render(b, n.Left, precAnd)
		b.WriteString(" -and ")
		render(b, n.Right, precNot)
	case *NotExpr:
		// NOT takes a single term: a bare test or a parenthesized group.
		b.WriteString("! ")
		render(b, n.Expr, precTest)
	case *TestExpr:
		renderTest(b, n.Test)
	}
}

func renderTest(b *strings.Builder, t Test) {
	b.WriteString(t.Kind.Keyword())
	switch t.Kind {
	case TestTrue, TestFalse, TestEmpty:
		return
	case TestType:
		b.WriteByte(' ')
		b.WriteString(t.Types.String())
	case TestSize:
		b.WriteByte(' ')
		b.WriteString(t.Size.String())
	case TestAmin, TestAtime, TestCmin, TestCtime, TestMmin, TestMtime:
		b.WriteByte(' ')
		b.WriteString(t.Time.String())
	case TestUid, TestGid:
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(t.Num, 10))
	case TestPerm:
		b.WriteByte(' ')
		b.WriteString(t.Perm.String())
	default:
		b.WriteByte(' ')
		b.WriteString(t.Arg)
	}
}

func (e *TestExpr) String() string { return exprString(e) }
func (e *NotExpr) String() string  { return exprString(e) }
func (e *AndExpr) String() string  { return exprString(e) }
func (e *OrExpr) String() string   { return exprString(e) }

func exprString(e Expr) string {
	var b strings.Builder
	render(&b, e, precOr)
	return b.String()
}
