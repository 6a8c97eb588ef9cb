package rules

import (
	"errors"

	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/unify"
)

// coordModality marks slashes open to coordination.
const coordModality = "c"

var errNotAtomic = errors.New("rules: coordination needs atomic result categories")

// Coordination combines two unsatisfied cadences expecting the same
// resolution: X/{c}Y Z/{c}Y => X/{c}Y. Both functors must carry the
// coordination modality and agree on the function of their result; the
// combined interpretation resolves both cadences onto the shared
// argument.
type Coordination struct {
	unifier *unify.Unifier
}

// NewCoordination returns the coordination rule under the modality
// hierarchy.
func NewCoordination(modalities *syntax.ModalityTree) *Coordination {
	return &Coordination{unifier: unify.NewUnifier(modalities)}
}

func (r *Coordination) Name() string         { return "&" }
func (r *Coordination) InternalName() string { return "coord" }
func (r *Coordination) Arity() int           { return 2 }

func (r *Coordination) Apply(inputs []*syntax.Sign) *syntax.Sign {
	return memoized(r, inputs, r.apply)
}

func (r *Coordination) apply(left, right *syntax.Sign) *syntax.Sign {
	first, ok := left.Category.(*syntax.Complex)
	if !ok {
		return nil
	}
	second, ok := right.Category.(*syntax.Complex)
	if !ok {
		return nil
	}
	if !first.Slash.Forward || !second.Slash.Forward {
		return nil
	}
	if first.Slash.Modality != coordModality || second.Slash.Modality != coordModality {
		return nil
	}

	ldist, rdist := unify.DistinguishCategories(left.Category, right.Category)
	first = ldist.(*syntax.Complex)
	second = rdist.(*syntax.Complex)

	res, err := r.unifier.Unify(first.Argument, second.Argument)
	if err != nil {
		return nil
	}
	if err := unifyResultFunctions(res.Constraints, first.Result, second.Result); err != nil {
		return nil
	}

	category := res.Constraints.Apply(ldist)
	lsem := semantics.Distinguish(left.Semantics, right.Semantics)
	return syntax.NewSign(category, semantics.Coordinate(lsem, right.Semantics))
}

// unifyResultFunctions requires the two result categories to be simple
// spans with matching function features. Their roots are free to differ.
func unifyResultFunctions(sub *unify.Substitution, a, b syntax.Category) error {
	aat, ok := a.(*syntax.Atomic)
	if !ok {
		return errNotAtomic
	}
	bat, ok := b.(*syntax.Atomic)
	if !ok {
		return errNotAtomic
	}
	if err := sub.UnifyValues(syntax.KindFunction, aat.From.Function, bat.From.Function); err != nil {
		return err
	}
	return sub.UnifyValues(syntax.KindFunction, aat.To.Function, bat.To.Function)
}
