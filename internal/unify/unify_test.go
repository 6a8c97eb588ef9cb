package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/cadenza/internal/syntax"
)

func testModalities() *syntax.ModalityTree {
	return syntax.NewModalityTree(&syntax.ModalityNode{
		Modality: "",
		Children: []*syntax.ModalityNode{{Modality: "c"}},
	})
}

func TestUnifyAtomicLiterals(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())

	res, err := u.Unify(syntax.MustParse("I^T"), syntax.MustParse("I^T"))
	require.NoError(t, err)
	assert.Equal(t, "I^T", res.Category.String())

	_, err = u.Unify(syntax.MustParse("I^T"), syntax.MustParse("V^T"))
	assert.Error(t, err)

	_, err = u.Unify(syntax.MustParse("I^T"), syntax.MustParse("I^D"))
	assert.Error(t, err)
}

func TestUnifyBindsVariables(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())

	res, err := u.Unify(syntax.MustParse("?x^T"), syntax.MustParse("I^T"))
	require.NoError(t, err)
	assert.Equal(t, "I^T", res.Category.String())

	v, ok := res.Constraints.Value(syntax.KindRoot, 1)
	require.True(t, ok)
	assert.Equal(t, "I", v)
}

func TestUnifySelf(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())
	for _, src := range []string{"I^T", "?x^?f", "V^D/I^T", "?x^D\\{c}?x^T", "(I^T\\IV^S)/V^D"} {
		a := syntax.MustParse(src)
		b := a.Copy()

		res, err := u.Unify(a, b)
		require.NoError(t, err, src)
		assert.True(t, res.Category.Equals(a), "%s unified with itself gave %s", src, res.Category)
	}
}

func TestUnifyFreeVariablesEquated(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())
	a := syntax.MustParse("?x^T-?y^T")
	b := syntax.MustParse("?z^T-?z^T")
	b.ReplaceVarID(syntax.KindRoot, 1, 3)

	res, err := u.Unify(a, b)
	require.NoError(t, err)
	// ?x, ?y and ?z all share one class, canonicalized to the smallest id,
	// so the halves collapse.
	atomic, ok := res.Category.(*syntax.Atomic)
	require.True(t, ok)
	assert.True(t, atomic.From.Equals(atomic.To), "halves %s and %s", atomic.From, atomic.To)
}

func TestUnifyComplex(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())

	res, err := u.Unify(syntax.MustParse("?x^D/?y^T"), syntax.MustParse("V^D/I^T"))
	require.NoError(t, err)
	assert.Equal(t, "V^D/I^T", res.Category.String())

	_, err = u.Unify(syntax.MustParse("V^D/I^T"), syntax.MustParse("V^D\\I^T"))
	assert.Error(t, err, "opposite slash directions must not unify")

	_, err = u.Unify(syntax.MustParse("V^D/I^T"), syntax.MustParse("I^T"))
	assert.Error(t, err, "complex against atomic must not unify")
}

func TestUnifyModalities(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())

	// The unrestricted slash accepts a coordination slash and the result
	// keeps the more specific modality.
	res, err := u.Unify(syntax.MustParse("V^D/I^T"), syntax.MustParse("V^D/{c}I^T"))
	require.NoError(t, err)
	assert.Equal(t, "V^D/{c}I^T", res.Category.String())

	res, err = u.Unify(syntax.MustParse("V^D/{c}I^T"), syntax.MustParse("V^D/I^T"))
	require.NoError(t, err)
	assert.Equal(t, "V^D/{c}I^T", res.Category.String())
}

func TestUnifyDoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())
	a := syntax.MustParse("?x^D/?y^T")
	b := syntax.MustParse("V^D/I^T")
	before := a.String()

	_, err := u.Unify(a, b)
	require.NoError(t, err)
	assert.Equal(t, before, a.String())
}

func TestSubstitutionApplyIdempotent(t *testing.T) {
	t.Parallel()

	u := NewUnifier(testModalities())
	res, err := u.Unify(syntax.MustParse("?x^D/?y^T"), syntax.MustParse("V^D/?z^T"))
	require.NoError(t, err)

	once := res.Constraints.Apply(res.Inputs[0])
	twice := res.Constraints.Apply(once)
	assert.True(t, once.Equals(twice), "apply gave %s then %s", once, twice)
}

func TestSubstitutionApplyEmptyIsIdentity(t *testing.T) {
	t.Parallel()

	sub := NewSubstitution()
	for _, src := range []string{"I^T", "?x^?f", "(I^T\\IV^S)/{c}V^D"} {
		cat := syntax.MustParse(src)
		applied := sub.Apply(cat.Copy())
		assert.True(t, applied.Equals(cat), "empty substitution changed %s to %s", cat, applied)
	}
}

func TestDistinguishCategories(t *testing.T) {
	t.Parallel()

	a, b := DistinguishCategories(syntax.MustParse("?x^D/?y^T"), syntax.MustParse("?x^D/?y^T"))
	for _, kind := range []string{syntax.KindRoot, syntax.KindFunction} {
		for _, id := range b.VarIDs(kind) {
			assert.NotContains(t, a.VarIDs(kind), id)
		}
	}
	for _, id := range b.SlashIDs() {
		assert.NotContains(t, a.SlashIDs(), id)
	}
}
