package rules

import (
	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/unify"
)

// Composition is function composition over adjacent functors. The
// harmonic variants compose two slashes of the same direction
// (X/Y Y/Z => X/Z and Y\Z X\Y => X\Z); the crossed variants compose a
// forward slash with a backward one and flip the direction of the
// result (X/Y Y\Z => X\Z and Y/Z X\Y => X/Z).
type Composition struct {
	forward  bool
	harmonic bool
	unifier  *unify.Unifier
}

// NewComposition returns a composition rule. forward selects which
// input is the outer functor, harmonic selects harmonic over crossed
// composition.
func NewComposition(forward, harmonic bool, modalities *syntax.ModalityTree) *Composition {
	return &Composition{forward: forward, harmonic: harmonic, unifier: unify.NewUnifier(modalities)}
}

func (r *Composition) Name() string {
	name := "<B"
	if r.forward {
		name = ">B"
	}
	if !r.harmonic {
		name += "x"
	}
	return name
}

func (r *Composition) InternalName() string {
	switch {
	case r.forward && r.harmonic:
		return "compf"
	case !r.forward && r.harmonic:
		return "compb"
	case r.forward:
		return "xcompf"
	default:
		return "xcompb"
	}
}

func (r *Composition) Arity() int { return 2 }

func (r *Composition) Apply(inputs []*syntax.Sign) *syntax.Sign {
	return memoized(r, inputs, r.apply)
}

func (r *Composition) apply(left, right *syntax.Sign) *syntax.Sign {
	first, ok := left.Category.(*syntax.Complex)
	if !ok {
		return nil
	}
	second, ok := right.Category.(*syntax.Complex)
	if !ok {
		return nil
	}
	if r.harmonic {
		if first.Slash.Forward != r.forward || second.Slash.Forward != r.forward {
			return nil
		}
	} else {
		if !first.Slash.Forward || second.Slash.Forward {
			return nil
		}
	}

	ldist, rdist := unify.DistinguishCategories(left.Category, right.Category)
	first = ldist.(*syntax.Complex)
	second = rdist.(*syntax.Complex)

	// Unify the middle category the two functors share.
	var res *unify.Result
	var err error
	if r.forward {
		res, err = r.unifier.Unify(first.Argument, second.Result)
	} else {
		res, err = r.unifier.Unify(first.Result, second.Argument)
	}
	if err != nil {
		return nil
	}

	combined := &syntax.Complex{
		Slash: syntax.Slash{
			Forward:  r.forward == r.harmonic,
			Modality: inherit(first.Slash.Modality, second.Slash.Modality),
			ID:       freshSlashID(ldist, rdist),
		},
	}
	if r.forward {
		combined.Result = first.Result
		combined.Argument = second.Argument
	} else {
		combined.Result = second.Result
		combined.Argument = first.Argument
	}
	category := res.Constraints.Apply(combined)

	outer, inner := left.Semantics, right.Semantics
	if !r.forward {
		outer, inner = right.Semantics, left.Semantics
	}
	outer = semantics.Distinguish(outer, inner)
	return syntax.NewSign(category, semantics.Compose(outer, inner))
}
