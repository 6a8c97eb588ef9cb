package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/cadenza/internal/semantics"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"I^T",
		"bVII^D",
		"IV^S-I^T",
		"V^D/I^T",
		"V^D\\I^T",
		"V^D/{c}I^T",
		"?x^T",
		"?x^?f",
		"(I^T\\IV^S)/V^D",
	} {
		cat, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, src, cat.String())
	}
}

func TestParseLeftAssociativeSlashes(t *testing.T) {
	t.Parallel()

	cat := MustParse("I^T/V^D/IV^S")
	assert.Equal(t, "(I^T/V^D)/IV^S", cat.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"",
		"I",
		"^T",
		"I^",
		"I^Q",
		"Z^T",
		"I^T/",
		"(I^T",
		"I^T/{cI^T",
		"I^T extra",
		"?^T",
	} {
		_, err := Parse(src)
		assert.Error(t, err, "%q should not parse", src)
	}
}

func TestParseVariableSharing(t *testing.T) {
	t.Parallel()

	// The same name within one parse is one variable; root and function
	// namespaces are separate.
	cat := MustParse("?x^?x/?x^T")
	assert.Equal(t, []int{1}, cat.VarIDs(KindRoot))
	assert.Equal(t, []int{2}, cat.VarIDs(KindFunction))
}

func TestParseLoneHalfSharesVariables(t *testing.T) {
	t.Parallel()

	atomic := MustParse("?x^T").(*Atomic)
	assert.Equal(t, atomic.From, atomic.To)
	assert.Equal(t, []int{1}, atomic.VarIDs(KindRoot))
}

func TestParseVariants(t *testing.T) {
	t.Parallel()

	cats, err := ParseVariants("V^D/I^DT")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "V^D/I^D", cats[0].String())
	assert.Equal(t, "V^D/I^T", cats[1].String())

	// Two multi-function halves expand to the cartesian product.
	cats, err = ParseVariants("I^DT/I^TS")
	require.NoError(t, err)
	assert.Len(t, cats, 4)

	_, err = Parse("V^D/I^DT")
	assert.Error(t, err, "Parse rejects multi-function halves")
}

func TestCategoryCopyIsDeep(t *testing.T) {
	t.Parallel()

	orig := MustParse("?x^D/{c}?y^T")
	dup := orig.Copy()
	dup.AssignVar(KindRoot, 1, "V")
	dup.ReplaceSlashID(1, 9)

	assert.Equal(t, "?x^D/{c}?y^T", orig.String())
	assert.True(t, orig.Equals(MustParse("?x^D/{c}?y^T")))
	assert.Equal(t, []int{1}, orig.SlashIDs())
}

func TestCategoryEquals(t *testing.T) {
	t.Parallel()

	assert.True(t, MustParse("V^D/I^T").Equals(MustParse("V^D/I^T")))
	assert.False(t, MustParse("V^D/I^T").Equals(MustParse("V^D\\I^T")))
	assert.False(t, MustParse("V^D/I^T").Equals(MustParse("V^D/{c}I^T")))
	assert.False(t, MustParse("I^T").Equals(MustParse("V^D/I^T")))
	assert.False(t, MustParse("I^T").Equals(MustParse("I^T-V^D")))

	// Slash ids do not take part in equality.
	a := MustParse("V^D/I^T")
	b := MustParse("V^D/I^T")
	b.ReplaceSlashID(1, 7)
	assert.True(t, a.Equals(b))
}

func TestAssignVar(t *testing.T) {
	t.Parallel()

	cat := MustParse("?x^D/?x^T")
	cat.AssignVar(KindRoot, 1, "V")
	assert.Equal(t, "V^D/V^T", cat.String())
	assert.Empty(t, cat.VarIDs(KindRoot))
}

func TestReplaceVarID(t *testing.T) {
	t.Parallel()

	cat := MustParse("?x^T/?y^T")
	cat.ReplaceVarID(KindRoot, 2, 1)
	assert.Equal(t, []int{1}, cat.VarIDs(KindRoot))

	complex := cat.(*Complex)
	assert.True(t, complex.Result.Equals(complex.Argument))
	// The renamed variable no longer carries the source spelling.
	assert.Equal(t, "?x^T/?1^T", cat.String())
}

func TestAtomicStringCollapsesEqualHalves(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "I^T", (&Atomic{From: Half{Root: Lit("I"), Function: Lit("T")}, To: Half{Root: Lit("I"), Function: Lit("T")}}).String())
	assert.Equal(t, "I^T-V^D", MustParse("I^T-V^D").String())
}

func TestModalityTree(t *testing.T) {
	t.Parallel()

	tree := NewModalityTree(&ModalityNode{
		Modality: "",
		Children: []*ModalityNode{{Modality: "c"}},
	})

	// Accepts is reflexive and follows the hierarchy downward only.
	assert.True(t, tree.Accepts("", ""))
	assert.True(t, tree.Accepts("c", "c"))
	assert.True(t, tree.Accepts("", "c"))
	assert.False(t, tree.Accepts("c", ""))
	assert.False(t, tree.Accepts("", "x"))
	assert.False(t, tree.Accepts("x", "x"))
}

func TestSignEquals(t *testing.T) {
	t.Parallel()

	a := MustParseSign(`V^D/I^T : \$x.leftonto($x)`)
	b := MustParseSign(`V^D/I^T : \$y.leftonto($y)`)
	c := MustParseSign(`V^D/I^T : \$y.rightonto($y)`)
	d := MustParseSign(`IV^S/I^T : \$x.leftonto($x)`)

	assert.True(t, a.Equals(b), "alpha-equivalent semantics")
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
}

func TestSignCopyDropsAttempts(t *testing.T) {
	t.Parallel()

	sign := MustParseSign(`I^T : tonic`)
	other := MustParseSign(`I^T : tonic`)
	rule := "marker"
	sign.NoteAttempt(rule, other, nil)

	_, cached := sign.Attempted(rule, other)
	assert.True(t, cached)
	_, cached = sign.Copy().Attempted(rule, other)
	assert.False(t, cached)
}

func TestSignString(t *testing.T) {
	t.Parallel()

	sign := NewSign(MustParse("I^T"), semantics.MustParse("tonic"))
	assert.Equal(t, "I^T : tonic", sign.String())
}

func TestParseSignErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"I^T",
		"not a category : tonic",
		`I^T : \$x.`,
	} {
		_, err := ParseSign(src)
		assert.Error(t, err, src)
	}
}
