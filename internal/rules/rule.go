// Package rules implements the combinators that license the derivation
// steps of an analysis: application, composition, development and
// coordination. A rule either produces a new sign or reports
// inapplicability by returning nil; rules never modify their inputs.
package rules

import (
	"github.com/jward/cadenza/internal/syntax"
)

// Rule is a combinator over signs.
type Rule interface {
	// Name is the conventional display name, e.g. ">" or "<B".
	Name() string
	// InternalName is the stable short name used in configuration and in
	// derivation traces: appf, appb, compf, compb, xcompf, xcompb, dev,
	// coord.
	InternalName() string
	// Arity is the number of input signs the rule consumes.
	Arity() int
	// Apply attempts the rule on the inputs, in surface order. It returns
	// the combined sign, or nil when the rule does not apply. Outcomes
	// are memoized on the first input, so repeating a call is cheap and
	// returns an equal result.
	Apply(inputs []*syntax.Sign) *syntax.Sign
}

// memoized wraps the attempt cache handling shared by all binary rules:
// consult the first input's cache, otherwise run the rule body and
// record the outcome, nil included.
func memoized(rule Rule, inputs []*syntax.Sign, body func(left, right *syntax.Sign) *syntax.Sign) *syntax.Sign {
	if len(inputs) != 2 {
		return nil
	}
	left, right := inputs[0], inputs[1]
	if result, ok := left.Attempted(rule, right); ok {
		return result
	}
	result := body(left, right)
	left.NoteAttempt(rule, right, result)
	return result
}

// inherit picks the slash modality for a combined category: the first
// input's modality when it says anything, otherwise the second's.
func inherit(first, second string) string {
	if first != "" {
		return first
	}
	return second
}

// freshSlashID returns a slash id unused by either category.
func freshSlashID(a, b syntax.Category) int {
	max := 0
	for _, ids := range [][]int{a.SlashIDs(), b.SlashIDs()} {
		for _, id := range ids {
			if id > max {
				max = id
			}
		}
	}
	return max + 1
}
