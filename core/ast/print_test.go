package ast

import "testing"

func test(kind TestKind, arg string) Expr {
	return &TestExpr{Test: Test{Kind: kind, Arg: arg}}
}

func TestRenderPrecedence(t *testing.T) {
	a := test(TestName, "a")
	b := test(TestName, "b")
	c := test(TestName, "c")

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "leaf",
			expr: a,
			want: "-name a",
		},
		{
			name: "and_chain_needs_no_parens",
			expr: &AndExpr{Left: &AndExpr{Left: a, Right: b}, Right: c},
			want: "-name a -and -name b -and -name c",
		},
		{
			name: "or_over_and_needs_no_parens",
			expr: &OrExpr{Left: a, Right: &AndExpr{Left: b, Right: c}},
			want: "-name a -or -name b -and -name c",
		},
		{
			name: "and_over_or_parenthesizes_the_or",
			expr: &AndExpr{Left: &OrExpr{Left: a, Right: b}, Right: c},
			want: "( -name a -or -name b ) -and -name c",
		},
		{
			name: "right_nested_and_parenthesized",
			expr: &AndExpr{Left: a, Right: &AndExpr{Left: b, Right: c}},
			want: "-name a -and ( -name b -and -name c )",
		},
		{
			name: "right_nested_or_parenthesized",
			expr: &OrExpr{Left: a, Right: &OrExpr{Left: b, Right: c}},
			want: "-name a -or ( -name b -or -name c )",
		},
		{
			name: "not_leaf",
			expr: &NotExpr{Expr: a},
			want: "! -name a",
		},
		{
			name: "not_over_and_parenthesizes",
			expr: &NotExpr{Expr: &AndExpr{Left: a, Right: b}},
			want: "! ( -name a -and -name b )",
		},
		{
			name: "double_not_parenthesizes",
			expr: &NotExpr{Expr: &NotExpr{Expr: a}},
			want: "! ( ! -name a )",
		},
		{
			name: "not_inside_and",
			expr: &AndExpr{Left: &NotExpr{Expr: a}, Right: b},
			want: "! -name a -and -name b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTests(t *testing.T) {
	tests := []struct {
		name string
		test Test
		want string
	}{
		{
			name: "no_argument",
			test: Test{Kind: TestEmpty},
			want: "-empty",
		},
		{
			name: "glob",
			test: Test{Kind: TestIname, Arg: "*.GO"},
			want: "-iname *.GO",
		},
		{
			name: "type_set_in_canonical_order",
			test: Test{Kind: TestType, Types: TypeSymlink | TypeDir | TypeFile},
			want: "-type d,f,l",
		},
		{
			name: "size_default_unit_spelled",
			test: Test{Kind: TestSize, Size: SizeSpec{Magnitude: 10, Unit: UnitBlocks}},
			want: "-size 10b",
		},
		{
			name: "size_with_sign_and_unit",
			test: Test{Kind: TestSize, Size: SizeSpec{Cmp: MoreThan, Magnitude: 2, Unit: UnitMb}},
			want: "-size +2M",
		},
		{
			name: "time_less_than",
			test: Test{Kind: TestMtime, Time: TimeSpec{Cmp: LessThan, Magnitude: 7}},
			want: "-mtime -7",
		},
		{
			name: "uid",
			test: Test{Kind: TestUid, Num: 1000},
			want: "-uid 1000",
		},
		{
			name: "perm_numeric_padded",
			test: Test{Kind: TestPerm, Perm: PermSpec{Numeric: &NumericPerm{Mode: 0o044, Match: AllBitsSet}}},
			want: "-perm -044",
		},
		{
			name: "perm_numeric_four_digits",
			test: Test{Kind: TestPerm, Perm: PermSpec{Numeric: &NumericPerm{Mode: 0o4755, Match: ExactMatch}}},
			want: "-perm 4755",
		},
		{
			name: "perm_symbolic",
			test: Test{Kind: TestPerm, Perm: PermSpec{Symbolic: []PermClause{
				{Who: WhoUser, Op: OpSet, Privs: PrivRead | PrivWrite | PrivExecute},
				{Who: WhoOther, Op: OpRemove, Privs: PrivWrite},
			}}},
			want: "-perm u=rwx,o-w",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := &TestExpr{Test: tt.test}
			if got := expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSizeUnitBytes(t *testing.T) {
	tests := []struct {
		unit SizeUnit
		want uint64
	}{
		{UnitBlocks, 512},
		{UnitBytes, 1},
		{UnitWords, 2},
		{UnitKb, 1024},
		{UnitMb, 1024 * 1024},
		{UnitGb, 1024 * 1024 * 1024},
	}
	for _, tt := range tests {
		if got := tt.unit.Bytes(); got != tt.want {
			t.Errorf("%s.Bytes() = %d, want %d", tt.unit, got, tt.want)
		}
	}

	spec := SizeSpec{Cmp: MoreThan, Magnitude: 3, Unit: UnitKb}
	if got := spec.ByteCount(); got != 3072 {
		t.Errorf("ByteCount() = %d, want 3072", got)
	}
}

func TestFileTypeSet(t *testing.T) {
	set, ok := FileTypeFromLetter('d')
	if !ok || set != TypeDir {
		t.Fatalf("FileTypeFromLetter('d') = %v, %v", set, ok)
	}
	if _, ok := FileTypeFromLetter('z'); ok {
		t.Error("FileTypeFromLetter('z') accepted an unknown letter")
	}

	both := TypeFile | TypeSymlink
	if !both.Has(TypeFile) || !both.Has(TypeSymlink) || both.Has(TypeDir) {
		t.Errorf("Has() wrong for set %s", both)
	}
}
