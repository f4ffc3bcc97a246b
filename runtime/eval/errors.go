package eval

import (
	"errors"
	"fmt"

	"github.com/pbrass/findr/core/ast"
)

var errNoTimestamp = errors.New("timestamp unavailable")

func errBadPattern(kind ast.TestKind, pattern string, err error) error {
	return fmt.Errorf("%s: invalid pattern %q: %w", kind.Keyword(), pattern, err)
}

func errBadReference(path string, err error) error {
	return fmt.Errorf("reference file %q: %w", path, err)
}

func errUnknownUser(name string, err error) error {
	return fmt.Errorf("-user: unknown user %q: %w", name, err)
}

func errUnknownGroup(name string, err error) error {
	return fmt.Errorf("-group: unknown group %q: %w", name, err)
}

func errIdOutOfRange(test string, id uint64) error {
	return fmt.Errorf("%s: id %d out of range", test, id)
}

func errUnknownNode(expr ast.Expr) error {
	return fmt.Errorf("unsupported expression node %T", expr)
}

func errUnknownTest(kind ast.TestKind) error {
	return fmt.Errorf("unsupported test %s", kind)
}
