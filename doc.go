// Package cadenza analyzes chord sequences with a combinatory
// categorial grammar of tonal harmony. Chords carry categories that
// describe how they expect to resolve; combinator rules consume
// adjacent categories and build up an interpretation of the harmonic
// structure as they go.
//
// # Formalism
//
// A category is either atomic, a span between two tonal centres such as
// I^T or IV^S-I^T, or complex, a functor expecting an adjacent span:
// V^D/I^T is a dominant that resolves rightward onto a tonic. Slashes
// may carry a modality restricting which rules can consume them; the
// grammar's modality hierarchy defines which modalities accept which.
// Categories may leave their root or function underspecified with
// variables (?x^T), bound during rule application by unification.
//
// # Rules
//
// Eight combinators are available: forward and backward application,
// harmonic and crossed composition in both directions, development
// (plain succession of spans) and coordination of unresolved cadences
// sharing one resolution. A rule returns the combined sign, or nil when
// it does not apply; outcomes are memoized on the input signs.
//
// # Usage
//
// Load a grammar, look up lexicon entries and combine them:
//
//	g, err := cadenza.DefaultGrammar()
//	if err != nil { ... }
//
//	dominants, _ := g.Signs("D")
//	tonics, _ := g.Signs("T")
//	appf, _ := g.RuleByName("appf")
//	resolved := appf.Apply([]*cadenza.Sign{dominants[1], tonics[0]})
//
// # Derivation trees
//
// For sequences already annotated with lexicon families, the tree
// builder reconstructs the canonical derivation tree without search:
//
//	root, err := g.BuildTree([]cadenza.Chord{
//		{Name: "C", Category: "T"},
//		{Name: "G7", Category: "D"},
//		{Name: "C", Category: "T"},
//	})
//
// Grammars are YAML files defining the modality hierarchy, the active
// rules and the lexicon; see [LoadGrammar] and the built-in grammar
// returned by [DefaultGrammar].
package cadenza
