package eval

import (
	"io/fs"

	"github.com/pbrass/findr/core/ast"
)

const permBits = 0o7777

// permPred folds the spec to mode bits once and returns the comparison the
// prefix selects. A symbolic spec describes a complete mode built up from
// nothing, so it compares exactly, like an unprefixed octal mode.
func permPred(spec ast.PermSpec) predicate {
	var want uint32
	match := ast.ExactMatch
	if spec.Numeric != nil {
		want = spec.Numeric.Mode & permBits
		match = spec.Numeric.Match
	} else {
		want = foldSymbolic(spec.Symbolic)
	}

	return func(e *entry) bool {
		info, ok := e.stat()
		if !ok {
			return false
		}
		mode := modeBits(info.Mode())
		switch match {
		case ast.AllBitsSet:
			return mode&want == want
		case ast.AnyBitSet:
			// An empty mask is vacuously satisfied.
			return want == 0 || mode&want != 0
		default:
			return mode == want
		}
	}
}

// modeBits converts Go's bit layout back to the traditional octal one.
func modeBits(m fs.FileMode) uint32 {
	bits := uint32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		bits |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		bits |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		bits |= 0o1000
	}
	return bits
}

// foldSymbolic applies the clauses in order to a zero mode. Each privilege
// letter contributes the same rwx bit position shifted per principal; "a"
// touches all three.
func foldSymbolic(clauses []ast.PermClause) uint32 {
	var mode uint32
	for _, c := range clauses {
		mask := whoMask(c.Who)
		bits := privBits(c.Privs, c.Who)
		switch c.Op {
		case ast.OpAdd:
			mode |= bits
		case ast.OpRemove:
			mode &^= bits
		case ast.OpSet:
			mode = mode&^mask | bits
		}
	}
	return mode
}

func whoMask(who ast.PermWho) uint32 {
	switch who {
	case ast.WhoUser:
		return 0o700
	case ast.WhoGroup:
		return 0o070
	case ast.WhoOther:
		return 0o007
	default:
		return 0o777
	}
}

func privBits(privs ast.PermPrivSet, who ast.PermWho) uint32 {
	var rwx uint32
	if privs&ast.PrivRead != 0 {
		rwx |= 0o4
	}
	if privs&ast.PrivWrite != 0 {
		rwx |= 0o2
	}
	if privs&ast.PrivExecute != 0 {
		rwx |= 0o1
	}

	switch who {
	case ast.WhoUser:
		return rwx << 6
	case ast.WhoGroup:
		return rwx << 3
	case ast.WhoOther:
		return rwx
	default:
		return rwx<<6 | rwx<<3 | rwx
	}
}
