package ast

import (
	"fmt"
	"strings"
)

// Expr represents a node in the predicate expression tree.
//
// A tree is built once by the parser and never mutated afterwards; the
// evaluator walks it read-only, so a single tree may be shared between
// goroutines without synchronization.
type Expr interface {
	String() string
	exprNode()
}

// TestExpr is a leaf predicate.
type TestExpr struct {
	Test Test
}

// NotExpr negates exactly one term (a test or a parenthesized expression).
type NotExpr struct {
	Expr Expr
}

// AndExpr is a conjunction. It is produced both by explicit -and/-a and by
// two adjacent terms with no operator between them.
type AndExpr struct {
	Left  Expr
	Right Expr
}

// OrExpr is a disjunction produced by -or/-o.
type OrExpr struct {
	Left  Expr
	Right Expr
}

func (*TestExpr) exprNode() {}
func (*NotExpr) exprNode()  {}
func (*AndExpr) exprNode()  {}
func (*OrExpr) exprNode()   {}

// TestKind identifies which predicate a Test node carries.
type TestKind int

const (
	TestName TestKind = iota
	TestIname
	TestPath
	TestIpath
	TestRegex
	TestIregex
	TestTrue
	TestFalse
	TestEmpty
	TestType
	TestSize
	TestAmin
	TestAtime
	TestCmin
	TestCtime
	TestMmin
	TestMtime
	TestAnewer
	TestCnewer
	TestMnewer
	TestNewer
	TestUser
	TestGroup
	TestUid
	TestGid
	TestPerm
)

var testKindNames = [...]string{
	TestName:   "Name",
	TestIname:  "Iname",
	TestPath:   "Path",
	TestIpath:  "Ipath",
	TestRegex:  "Regex",
	TestIregex: "Iregex",
	TestTrue:   "True",
	TestFalse:  "False",
	TestEmpty:  "Empty",
	TestType:   "Type",
	TestSize:   "Size",
	TestAmin:   "Amin",
	TestAtime:  "Atime",
	TestCmin:   "Cmin",
	TestCtime:  "Ctime",
	TestMmin:   "Mmin",
	TestMtime:  "Mtime",
	TestAnewer: "Anewer",
	TestCnewer: "Cnewer",
	TestMnewer: "Mnewer",
	TestNewer:  "Newer",
	TestUser:   "User",
	TestGroup:  "Group",
	TestUid:    "Uid",
	TestGid:    "Gid",
	TestPerm:   "Perm",
}

func (k TestKind) String() string {
	if int(k) < len(testKindNames) && int(k) >= 0 {
		return testKindNames[k]
	}
	return fmt.Sprintf("TestKind(%d)", int(k))
}

// Test is a tagged union over the predicate kinds. Kind selects which payload
// field is meaningful:
//
//	Name, Iname, Path, Ipath          Arg (glob, uninterpreted)
//	Regex, Iregex                     Arg (pattern, uninterpreted)
//	Anewer, Cnewer, Mnewer, Newer     Arg (reference file path)
//	User, Group                       Arg (user/group name)
//	Uid, Gid                          Num
//	Type                              Types
//	Size                              Size
//	Amin..Mtime                       Time
//	Perm                              Perm
//	True, False, Empty                none
type Test struct {
	Kind  TestKind
	Arg   string
	Num   uint64
	Types FileTypeSet
	Size  SizeSpec
	Time  TimeSpec
	Perm  PermSpec
}

// Comparison is the sign prefix of a size or time argument.
type Comparison int

const (
	Exact    Comparison = iota // no prefix
	MoreThan                   // +
	LessThan                   // -
)

func (c Comparison) String() string {
	switch c {
	case MoreThan:
		return "+"
	case LessThan:
		return "-"
	default:
		return ""
	}
}

// SizeUnit is the one-letter unit suffix of a -size argument.
type SizeUnit int

const (
	UnitBlocks SizeUnit = iota // b, 512-byte blocks (default when omitted)
	UnitBytes                  // c
	UnitWords                  // w, 2-byte words
	UnitKb                     // k
	UnitMb                     // M
	UnitGb                     // G
)

// Bytes returns the unit's size in bytes.
func (u SizeUnit) Bytes() uint64 {
	switch u {
	case UnitBytes:
		return 1
	case UnitWords:
		return 2
	case UnitKb:
		return 1024
	case UnitMb:
		return 1024 * 1024
	case UnitGb:
		return 1024 * 1024 * 1024
	default:
		return 512
	}
}

func (u SizeUnit) String() string {
	switch u {
	case UnitBytes:
		return "c"
	case UnitWords:
		return "w"
	case UnitKb:
		return "k"
	case UnitMb:
		return "M"
	case UnitGb:
		return "G"
	default:
		return "b"
	}
}

// SizeSpec is the argument of -size: an optional sign, a magnitude, and a
// unit suffix defaulting to 512-byte blocks.
type SizeSpec struct {
	Cmp       Comparison
	Magnitude uint64
	Unit      SizeUnit
}

// ByteCount returns the spec's threshold in bytes.
func (s SizeSpec) ByteCount() uint64 {
	return s.Magnitude * s.Unit.Bytes()
}

func (s SizeSpec) String() string {
	return fmt.Sprintf("%s%d%s", s.Cmp, s.Magnitude, s.Unit)
}

// TimeSpec is the argument of the time tests. The magnitude counts the test's
// implicit unit: minutes for -amin/-cmin/-mmin, 24-hour days for the rest.
type TimeSpec struct {
	Cmp       Comparison
	Magnitude uint64
}

func (t TimeSpec) String() string {
	return fmt.Sprintf("%s%d", t.Cmp, t.Magnitude)
}

// FileTypeSet is a set of file type letters accepted by -type.
type FileTypeSet uint8

const (
	TypeBlock   FileTypeSet = 1 << iota // b, block device
	TypeChar                            // c, character device
	TypeDir                             // d, directory
	TypeFile                            // f, regular file
	TypeSymlink                         // l, symbolic link
	TypePipe                            // p, named pipe (FIFO)
	TypeSocket                          // s, socket
)

// typeLetters is the canonical rendering order.
var typeLetters = []struct {
	bit    FileTypeSet
	letter byte
}{
	{TypeBlock, 'b'},
	{TypeChar, 'c'},
	{TypeDir, 'd'},
	{TypeFile, 'f'},
	{TypeSymlink, 'l'},
	{TypePipe, 'p'},
	{TypeSocket, 's'},
}

// FileTypeFromLetter maps a -type letter to its set bit. ok is false for an
// unrecognized letter.
func FileTypeFromLetter(ch byte) (FileTypeSet, bool) {
	for _, t := range typeLetters {
		if t.letter == ch {
			return t.bit, true
		}
	}
	return 0, false
}

// Has reports whether any bit of t is present in the set.
func (s FileTypeSet) Has(t FileTypeSet) bool {
	return s&t != 0
}

func (s FileTypeSet) String() string {
	var b strings.Builder
	for _, t := range typeLetters {
		if s&t.bit != 0 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteByte(t.letter)
		}
	}
	return b.String()
}

// PermMatch is the prefix of a numeric -perm argument.
type PermMatch int

const (
	ExactMatch PermMatch = iota // no prefix: mode bits equal the spec
	AllBitsSet                  // "-": all spec bits present
	AnyBitSet                   // "/": at least one spec bit present
)

func (m PermMatch) String() string {
	switch m {
	case AllBitsSet:
		return "-"
	case AnyBitSet:
		return "/"
	default:
		return ""
	}
}

// PermSpec is the argument of -perm: either a numeric octal mode or an
// ordered sequence of symbolic clauses. Exactly one of the two is set.
type PermSpec struct {
	Numeric  *NumericPerm
	Symbolic []PermClause
}

func (p PermSpec) String() string {
	if p.Numeric != nil {
		return p.Numeric.String()
	}
	parts := make([]string, len(p.Symbolic))
	for i, c := range p.Symbolic {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// NumericPerm is a 9-or-12-bit mode parsed from 3-4 octal digits.
type NumericPerm struct {
	Mode  uint32
	Match PermMatch
}

func (n NumericPerm) String() string {
	return fmt.Sprintf("%s%03o", n.Match, n.Mode)
}

// PermWho is the principal of a symbolic permission clause.
type PermWho int

const (
	WhoUser  PermWho = iota // u
	WhoGroup                // g
	WhoOther                // o
	WhoAll                  // a
)

func (w PermWho) String() string {
	switch w {
	case WhoGroup:
		return "g"
	case WhoOther:
		return "o"
	case WhoAll:
		return "a"
	default:
		return "u"
	}
}

// PermOp is the operator of a symbolic permission clause.
type PermOp int

const (
	OpAdd    PermOp = iota // +
	OpRemove               // -
	OpSet                  // =
)

func (o PermOp) String() string {
	switch o {
	case OpRemove:
		return "-"
	case OpSet:
		return "="
	default:
		return "+"
	}
}

// PermPrivSet is a set of privilege letters, stored as octal rwx bits so a
// clause folds directly into a mode.
type PermPrivSet uint8

const (
	PrivExecute PermPrivSet = 1 << iota // x
	PrivWrite                           // w
	PrivRead                            // r
)

func (p PermPrivSet) String() string {
	var b strings.Builder
	if p&PrivRead != 0 {
		b.WriteByte('r')
	}
	if p&PrivWrite != 0 {
		b.WriteByte('w')
	}
	if p&PrivExecute != 0 {
		b.WriteByte('x')
	}
	return b.String()
}

// PermClause is one principal/operator/privileges statement of a symbolic
// -perm argument, e.g. u+rwx.
type PermClause struct {
	Who   PermWho
	Op    PermOp
	Privs PermPrivSet
}

func (c PermClause) String() string {
	return c.Who.String() + c.Op.String() + c.Privs.String()
}
