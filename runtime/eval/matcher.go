// Package eval compiles a parsed predicate expression into a matcher that can
// be applied to directory entries. Compilation front-loads all the work that
// does not depend on the entry under test: glob and regex patterns are
// compiled once, user and group names are resolved to ids, reference files of
// the newer tests are stat'ed, and symbolic permission clauses are folded to
// mode bits. Matching itself never allocates and never returns an error: a
// test whose metadata cannot be read simply does not match, mirroring how
// find treats unreadable entries.
package eval

import (
	"io/fs"
	"math"
	"os/user"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"

	"github.com/pbrass/findr/core/ast"
)

// predicate is one compiled test or connective.
type predicate func(e *entry) bool

// Matcher is a compiled expression. It is immutable and safe for concurrent
// use by any number of goroutines.
type Matcher struct {
	pred predicate
	now  time.Time
}

// Compile builds a Matcher from an expression tree. The reference clock for
// the time tests is taken once, here, so every entry of a scan is judged
// against the same instant. All leaf-level problems are reported together in
// a single multierror rather than one at a time.
func Compile(expr ast.Expr) (*Matcher, error) {
	c := &compiler{}
	pred := c.compile(expr)
	if c.errs != nil {
		return nil, c.errs.ErrorOrNil()
	}
	return &Matcher{pred: pred, now: time.Now()}, nil
}

// Match reports whether the entry at path satisfies the expression. The
// entry's metadata is fetched lazily and at most once per call, so purely
// structural expressions like -name never stat.
func (m *Matcher) Match(path string, d fs.DirEntry) bool {
	e := &entry{path: path, dirent: d, now: m.now}
	return m.pred(e)
}

type compiler struct {
	errs *multierror.Error
}

func (c *compiler) fail(err error) predicate {
	c.errs = multierror.Append(c.errs, err)
	return func(*entry) bool { return false }
}

func (c *compiler) compile(expr ast.Expr) predicate {
	switch n := expr.(type) {
	case *ast.NotExpr:
		p := c.compile(n.Expr)
		return func(e *entry) bool { return !p(e) }
	case *ast.AndExpr:
		l, r := c.compile(n.Left), c.compile(n.Right)
		return func(e *entry) bool { return l(e) && r(e) }
	case *ast.OrExpr:
		l, r := c.compile(n.Left), c.compile(n.Right)
		return func(e *entry) bool { return l(e) || r(e) }
	case *ast.TestExpr:
		return c.compileTest(n.Test)
	}
	return c.fail(errUnknownNode(expr))
}

func (c *compiler) compileTest(t ast.Test) predicate {
	switch t.Kind {
	case ast.TestTrue:
		return func(*entry) bool { return true }
	case ast.TestFalse:
		return func(*entry) bool { return false }
	case ast.TestEmpty:
		return matchEmpty

	case ast.TestName:
		return c.globPred(t, false, (*entry).name)
	case ast.TestIname:
		return c.globPred(t, true, (*entry).name)
	case ast.TestPath:
		return c.globPred(t, false, (*entry).fullPath)
	case ast.TestIpath:
		return c.globPred(t, true, (*entry).fullPath)

	case ast.TestRegex:
		return c.regexPred(t, t.Arg)
	case ast.TestIregex:
		return c.regexPred(t, "(?i)"+t.Arg)

	case ast.TestType:
		types := t.Types
		return func(e *entry) bool { return types.Has(e.fileType()) }

	case ast.TestSize:
		spec := t.Size
		return func(e *entry) bool {
			info, ok := e.stat()
			if !ok || info.IsDir() {
				return false
			}
			return compare(spec.Cmp, uint64(info.Size()), spec.ByteCount())
		}

	case ast.TestAmin:
		return timePred(t.Time, time.Minute, (*entry).accessTime)
	case ast.TestAtime:
		return timePred(t.Time, 24*time.Hour, (*entry).accessTime)
	case ast.TestCmin:
		return timePred(t.Time, time.Minute, (*entry).changeTime)
	case ast.TestCtime:
		return timePred(t.Time, 24*time.Hour, (*entry).changeTime)
	case ast.TestMmin:
		return timePred(t.Time, time.Minute, (*entry).modTime)
	case ast.TestMtime:
		return timePred(t.Time, 24*time.Hour, (*entry).modTime)

	case ast.TestAnewer:
		return c.newerPred(t.Arg, (*entry).accessTime)
	case ast.TestCnewer:
		return c.newerPred(t.Arg, (*entry).changeTime)
	case ast.TestMnewer, ast.TestNewer:
		// -newer is the historical spelling of -mnewer.
		return c.newerPred(t.Arg, (*entry).modTime)

	case ast.TestUid:
		if t.Num > math.MaxUint32 {
			return c.fail(errIdOutOfRange("-uid", t.Num))
		}
		want := uint32(t.Num)
		return func(e *entry) bool {
			uid, _, ok := e.owner()
			return ok && uid == want
		}
	case ast.TestGid:
		if t.Num > math.MaxUint32 {
			return c.fail(errIdOutOfRange("-gid", t.Num))
		}
		want := uint32(t.Num)
		return func(e *entry) bool {
			_, gid, ok := e.owner()
			return ok && gid == want
		}

	case ast.TestUser:
		uid, err := resolveUser(t.Arg)
		if err != nil {
			return c.fail(err)
		}
		return func(e *entry) bool {
			got, _, ok := e.owner()
			return ok && got == uid
		}
	case ast.TestGroup:
		gid, err := resolveGroup(t.Arg)
		if err != nil {
			return c.fail(err)
		}
		return func(e *entry) bool {
			_, got, ok := e.owner()
			return ok && got == gid
		}

	case ast.TestPerm:
		return permPred(t.Perm)
	}

	return c.fail(errUnknownTest(t.Kind))
}

func (c *compiler) globPred(t ast.Test, fold bool, subject func(*entry) string) predicate {
	pattern := t.Arg
	if fold {
		pattern = strings.ToLower(pattern)
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return c.fail(errBadPattern(t.Kind, t.Arg, err))
	}
	return func(e *entry) bool {
		s := subject(e)
		if fold {
			s = strings.ToLower(s)
		}
		return g.Match(s)
	}
}

func (c *compiler) regexPred(t ast.Test, pattern string) predicate {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return c.fail(errBadPattern(t.Kind, t.Arg, err))
	}
	return func(e *entry) bool {
		return re.MatchString(e.fullPath())
	}
}

// timePred compares how many whole units ago the timestamp lies against the
// spec's magnitude. A timestamp in the future never matches.
func timePred(spec ast.TimeSpec, unit time.Duration, ts func(*entry) (time.Time, bool)) predicate {
	return func(e *entry) bool {
		when, ok := ts(e)
		if !ok {
			return false
		}
		elapsed := e.now.Sub(when)
		if elapsed < 0 {
			return false
		}
		ago := uint64(elapsed / unit)
		return compare(spec.Cmp, ago, spec.Magnitude)
	}
}

// newerPred captures the reference file's timestamp at compile time. A
// reference file that cannot be stat'ed is a compile error, not a silent
// mismatch.
func (c *compiler) newerPred(refPath string, ts func(*entry) (time.Time, bool)) predicate {
	ref, err := referenceTime(refPath, ts)
	if err != nil {
		return c.fail(err)
	}
	return func(e *entry) bool {
		when, ok := ts(e)
		return ok && when.After(ref)
	}
}

func matchEmpty(e *entry) bool {
	info, ok := e.stat()
	if !ok {
		return false
	}
	if info.IsDir() {
		return e.dirIsEmpty()
	}
	return info.Mode().IsRegular() && info.Size() == 0
}

func compare(cmp ast.Comparison, got, want uint64) bool {
	switch cmp {
	case ast.MoreThan:
		return got > want
	case ast.LessThan:
		return got < want
	default:
		return got == want
	}
}

// resolveUser accepts a login name or a decimal uid.
func resolveUser(name string) (uint32, error) {
	if isDecimal(name) {
		n, err := strconv.ParseUint(name, 10, 32)
		if err != nil {
			return 0, errUnknownUser(name, err)
		}
		return uint32(n), nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return 0, errUnknownUser(name, err)
	}
	n, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return 0, errUnknownUser(name, err)
	}
	return uint32(n), nil
}

func resolveGroup(name string) (uint32, error) {
	if isDecimal(name) {
		n, err := strconv.ParseUint(name, 10, 32)
		if err != nil {
			return 0, errUnknownGroup(name, err)
		}
		return uint32(n), nil
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, errUnknownGroup(name, err)
	}
	n, err := strconv.ParseUint(g.Gid, 10, 32)
	if err != nil {
		return 0, errUnknownGroup(name, err)
	}
	return uint32(n), nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
