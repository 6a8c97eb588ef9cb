package rules

import (
	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/unify"
)

// Development joins two adjacent cadence spans into one, without any
// harmonic dependency between them: W-X Y-Z => W-Z. Its interpretation
// is the concatenation of the two inputs' interpretations.
type Development struct{}

// NewDevelopment returns the development rule.
func NewDevelopment() *Development { return &Development{} }

func (r *Development) Name() string         { return "dev" }
func (r *Development) InternalName() string { return "dev" }
func (r *Development) Arity() int           { return 2 }

func (r *Development) Apply(inputs []*syntax.Sign) *syntax.Sign {
	return memoized(r, inputs, r.apply)
}

func (r *Development) apply(left, right *syntax.Sign) *syntax.Sign {
	first, ok := left.Category.(*syntax.Atomic)
	if !ok {
		return nil
	}
	second, ok := right.Category.(*syntax.Atomic)
	if !ok {
		return nil
	}
	ldist, rdist := unify.DistinguishCategories(first, second)
	category := &syntax.Atomic{
		From: ldist.(*syntax.Atomic).From,
		To:   rdist.(*syntax.Atomic).To,
	}
	return syntax.NewSign(category, semantics.Concatenate(left.Semantics, right.Semantics))
}
