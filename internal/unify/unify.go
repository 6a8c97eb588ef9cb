package unify

import (
	"fmt"

	"github.com/jward/cadenza/internal/syntax"
)

// Result is the outcome of a successful unification: the unified
// category with all constraints applied, the constraints themselves,
// and the two input categories.
type Result struct {
	Category    syntax.Category
	Constraints *Substitution
	Inputs      [2]syntax.Category
}

// Unifier unifies pairs of categories under a modality hierarchy.
type Unifier struct {
	Modalities *syntax.ModalityTree
}

// NewUnifier returns a unifier using the given modality hierarchy.
func NewUnifier(modalities *syntax.ModalityTree) *Unifier {
	return &Unifier{Modalities: modalities}
}

// Unify attempts to unify the two categories. On success it returns the
// unified category together with the variable constraints the match
// imposed; on failure it returns a non-nil error and the inputs are
// unchanged. Either way the inputs are never modified.
func (u *Unifier) Unify(a, b syntax.Category) (*Result, error) {
	sub := NewSubstitution()
	built, err := u.unify(a, b, sub)
	if err != nil {
		return nil, err
	}
	return &Result{
		Category:    sub.Apply(built),
		Constraints: sub,
		Inputs:      [2]syntax.Category{a, b},
	}, nil
}

func (u *Unifier) unify(a, b syntax.Category, sub *Substitution) (syntax.Category, error) {
	switch a := a.(type) {
	case *syntax.Atomic:
		b, ok := b.(*syntax.Atomic)
		if !ok {
			return nil, fmt.Errorf("unify: atomic category against complex category")
		}
		if err := unifyHalf(a.From, b.From, sub); err != nil {
			return nil, err
		}
		if err := unifyHalf(a.To, b.To, sub); err != nil {
			return nil, err
		}
		return a.Copy(), nil
	case *syntax.Complex:
		b, ok := b.(*syntax.Complex)
		if !ok {
			return nil, fmt.Errorf("unify: complex category against atomic category")
		}
		if a.Slash.Forward != b.Slash.Forward {
			return nil, fmt.Errorf("unify: slash directions differ")
		}
		modality, ok := u.meetModality(a.Slash.Modality, b.Slash.Modality)
		if !ok {
			return nil, fmt.Errorf("unify: modalities %q and %q are incompatible", a.Slash.Modality, b.Slash.Modality)
		}
		if err := sub.Equate(syntax.KindSlash, a.Slash.ID, b.Slash.ID); err != nil {
			return nil, err
		}
		result, err := u.unify(a.Result, b.Result, sub)
		if err != nil {
			return nil, err
		}
		argument, err := u.unify(a.Argument, b.Argument, sub)
		if err != nil {
			return nil, err
		}
		return &syntax.Complex{
			Result:   result,
			Slash:    syntax.Slash{Forward: a.Slash.Forward, Modality: modality, ID: a.Slash.ID},
			Argument: argument,
		}, nil
	}
	return nil, fmt.Errorf("unify: unknown category type %T", a)
}

// meetModality picks the more specific of two compatible modalities.
// Compatibility runs both ways: a slash requiring the general modality
// accepts one carrying a specialization of it.
func (u *Unifier) meetModality(m1, m2 string) (string, bool) {
	if m1 == m2 {
		return m1, true
	}
	if u.Modalities.Accepts(m1, m2) {
		return m2, true
	}
	if u.Modalities.Accepts(m2, m1) {
		return m1, true
	}
	return "", false
}

// UnifyValues unifies two feature values of the given kind under the
// substitution: equal literals succeed, a literal binds a variable, and
// two free variables are equated.
func (s *Substitution) UnifyValues(kind string, v1, v2 syntax.Value) error {
	return unifyValue(v1, v2, kind, s)
}

func unifyHalf(h1, h2 syntax.Half, sub *Substitution) error {
	if err := unifyValue(h1.Root, h2.Root, syntax.KindRoot, sub); err != nil {
		return err
	}
	return unifyValue(h1.Function, h2.Function, syntax.KindFunction, sub)
}

func unifyValue(v1, v2 syntax.Value, kind string, sub *Substitution) error {
	switch {
	case v1.Bound() && v2.Bound():
		if v1.Lit != v2.Lit {
			return fmt.Errorf("unify: %s features %q and %q differ", kind, v1.Lit, v2.Lit)
		}
		return nil
	case v1.Bound():
		return sub.Assign(kind, v2.Var, v1.Lit)
	case v2.Bound():
		return sub.Assign(kind, v1.Var, v2.Lit)
	default:
		return sub.Equate(kind, v1.Var, v2.Var)
	}
}

// DistinguishCategories returns copies of the two categories with b's
// variable and slash ids renamed away from any id a uses, so that
// unifying them cannot accidentally identify unrelated variables.
func DistinguishCategories(a, b syntax.Category) (syntax.Category, syntax.Category) {
	a = a.Copy()
	b = b.Copy()
	for _, kind := range []string{syntax.KindRoot, syntax.KindFunction} {
		next := maxID(a.VarIDs(kind), b.VarIDs(kind)) + 1
		for _, id := range b.VarIDs(kind) {
			if contains(a.VarIDs(kind), id) {
				b.ReplaceVarID(kind, id, next)
				next++
			}
		}
	}
	next := maxID(a.SlashIDs(), b.SlashIDs()) + 1
	for _, id := range b.SlashIDs() {
		if contains(a.SlashIDs(), id) {
			b.ReplaceSlashID(id, next)
			next++
		}
	}
	return a, b
}

func maxID(lists ...[]int) int {
	max := 0
	for _, list := range lists {
		for _, id := range list {
			if id > max {
				max = id
			}
		}
	}
	return max
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
