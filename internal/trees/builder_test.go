package trees

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jward/cadenza/internal/syntax"
)

// notationResolver reads category annotations in the lexical notation
// and generalizes them. The annotation "?" resolves to an unknown.
func notationResolver(annotation string) (GenCategory, error) {
	if annotation == "?" {
		return UnknownCategory{}, nil
	}
	cat, err := syntax.Parse(annotation)
	if err != nil {
		return nil, err
	}
	return Generalize(cat), nil
}

func chords(pairs ...string) []Chord {
	if len(pairs)%2 != 0 {
		panic("chords wants name/category pairs")
	}
	var out []Chord
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Chord{Name: pairs[i], Category: pairs[i+1]})
	}
	return out
}

func TestGeneralize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", Generalize(syntax.MustParse("I^T")).String())
	assert.Equal(t, "A", Generalize(syntax.MustParse("V^D-I^T")).String())
	assert.Equal(t, "(A/A)", Generalize(syntax.MustParse("V^D/{c}I^T")).String())
	assert.Equal(t, "((A\\A)/A)", Generalize(syntax.MustParse("(I^T\\IV^S)/V^D")).String())

	// Features are dropped entirely.
	a := Generalize(syntax.MustParse("V^D/I^T"))
	b := Generalize(syntax.MustParse("?x^S/{c}bVII^T"))
	assert.True(t, a.Equals(b))
}

func TestUnknownCategoryEqualsNothing(t *testing.T) {
	t.Parallel()

	assert.False(t, UnknownCategory{}.Equals(UnknownCategory{}))
	assert.False(t, UnknownCategory{}.Equals(AtomicCategory{}))
	assert.False(t, AtomicCategory{}.Equals(UnknownCategory{}))
}

func TestBuildSimpleCadence(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	root, err := b.Build(chords("C", "I^T", "G7", "V^D/I^T", "C", "I^T"))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	atomic := AtomicCategory{}
	want := &NonTerminal{
		Rule: "cont",
		Cat:  atomic,
		Children: []Node{
			&Terminal{Chord: Chord{Name: "C", Category: "I^T"}, Cat: atomic},
			&NonTerminal{
				Rule: "appf",
				Cat:  atomic,
				Children: []Node{
					&Terminal{Chord: Chord{Name: "G7", Category: "V^D/I^T"}, Cat: &SlashCategory{Result: atomic, Forward: true, Argument: atomic}},
					&Terminal{Chord: Chord{Name: "C", Category: "I^T"}, Cat: atomic},
				},
			},
		},
	}
	if diff := cmp.Diff(want, root.Children[0]); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPrefersCompositionOverApplication(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	root, err := b.Build(chords(
		"A7", "V^D/I^T",
		"D7", "I^T/IV^S",
		"G", "IV^S",
	))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	// A7 and D7 compose before the result applies to G.
	assert.Equal(t, "<appf <compf A7 D7> G>", root.Children[0].String())
}

func TestBuildComposesWithoutMiddleCheck(t *testing.T) {
	t.Parallel()

	// Composition joins any two same-direction slashes; the inner
	// categories are not compared. (A/(A/A)) and (A/A) compose to (A/A)
	// rather than reducing by application.
	b := NewBuilder(notationResolver)
	root, err := b.Build(chords(
		"E7", "V^D/(I^T/IV^S)",
		"A7", "V^D/I^T",
	))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<compf E7 A7>", root.Children[0].String())
	assert.Equal(t, "(A/A)", root.Children[0].Category().String())
}

func TestBuildBackwardRules(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)

	root, err := b.Build(chords("C", "I^T", "C7", "I^T\\I^T"))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<appb C C7>", root.Children[0].String())

	root, err = b.Build(chords("Em", "I^T\\IV^S", "G7", "V^D\\I^T"))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<compb Em G7>", root.Children[0].String())

	// Backward composition keeps the first result and second argument,
	// mirroring the forward shape.
	root, err = b.Build(chords("Em", "I^T\\(I^T\\IV^S)", "G7", "V^D\\I^T"))
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<compb Em G7>", root.Children[0].String())
	assert.Equal(t, "(A\\A)", root.Children[0].Category().String())
}

func TestBuildCoordination(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver, WithLogger(zaptest.NewLogger(t)))
	root, err := b.Build([]Chord{
		{Name: "A7", Category: "V^D/I^T", CoordUnresolved: true},
		{Name: "Dm7", Category: "II^D/V^D"},
		{Name: "G7", Category: "V^D/I^T", CoordResolved: true},
		{Name: "C", Category: "I^T"},
	})
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<appf <coord A7 <compf Dm7 G7>> C>", root.Children[0].String())
}

func TestBuildCoordinationIgnoresArguments(t *testing.T) {
	t.Parallel()

	// Coordination needs only two forward slashes around the marker;
	// the result is the first cadence's category.
	b := NewBuilder(notationResolver)
	root, err := b.Build([]Chord{
		{Name: "A7", Category: "V^D/I^T", CoordUnresolved: true},
		{Name: "E7", Category: "V^D/(I^T/IV^S)", CoordResolved: true},
	})
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<coord A7 E7>", root.Children[0].String())
	assert.Equal(t, "(A/A)", root.Children[0].Category().String())
}

func TestBuildUnresolvedMarker(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	_, err := b.Build([]Chord{
		{Name: "A7", Category: "V^D/I^T", CoordUnresolved: true},
		{Name: "C", Category: "I^T"},
	})
	require.Error(t, err)
	var buildErr *TreeBuildError
	assert.ErrorAs(t, err, &buildErr)
}

func TestBuildResolverError(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	_, err := b.Build(chords("C", "I^T", "X", "not a category"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X")
}

func TestBuildUnknownLeaves(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	root, err := b.Build(chords("C", "I^T", "X", "?", "C", "I^T"))
	require.NoError(t, err)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "(C X C)", root.String())

	// An empty annotation never reaches the resolver; the chord becomes
	// an unknown leaf directly.
	root, err = b.Build(chords("C", "I^T", "X", "", "C", "I^T"))
	require.NoError(t, err)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "(C X C)", root.String())
}

func TestBuildEmptySequence(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	root, err := b.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestBuildMarkerBlocksReduction(t *testing.T) {
	t.Parallel()

	b := NewBuilder(notationResolver)
	root, err := b.Build([]Chord{
		{Name: "A7", Category: "V^D/I^T", CoordUnresolved: true},
		{Name: "D7", Category: "V^D/I^T", CoordResolved: true},
	})
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "<coord A7 D7>", root.Children[0].String())
	assert.Equal(t, "(A/A)", root.Children[0].Category().String())
}
