package rules

import (
	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/unify"
)

// Application is forward or backward function application. The functor
// consumes the near half of an atomic argument and the result is the
// span from the functor's result to the argument's far half:
// X/Y Y-Z => X-Z, or Z-Y X\Y => Z-X.
type Application struct {
	forward bool
	unifier *unify.Unifier
}

// NewApplication returns an application rule in the given direction
// under the modality hierarchy.
func NewApplication(forward bool, modalities *syntax.ModalityTree) *Application {
	return &Application{forward: forward, unifier: unify.NewUnifier(modalities)}
}

func (r *Application) Name() string {
	if r.forward {
		return ">"
	}
	return "<"
}

func (r *Application) InternalName() string {
	if r.forward {
		return "appf"
	}
	return "appb"
}

func (r *Application) Arity() int { return 2 }

func (r *Application) Apply(inputs []*syntax.Sign) *syntax.Sign {
	return memoized(r, inputs, r.apply)
}

func (r *Application) apply(left, right *syntax.Sign) *syntax.Sign {
	functor, argument := left, right
	if !r.forward {
		functor, argument = right, left
	}
	fcat, ok := functor.Category.(*syntax.Complex)
	if !ok || fcat.Slash.Forward != r.forward {
		return nil
	}
	acat, ok := argument.Category.(*syntax.Atomic)
	if !ok {
		return nil
	}

	fdist, adist := unify.DistinguishCategories(functor.Category, argument.Category)
	fcat = fdist.(*syntax.Complex)
	acat = adist.(*syntax.Atomic)

	// The functor consumes the near end of the argument span and the
	// result stretches to its far end: V^D/I^T applied to I^T-IV^S
	// yields the span V^D-IV^S.
	near := acat.From
	if !r.forward {
		near = acat.To
	}
	res, err := r.unifier.Unify(fcat.Argument, &syntax.Atomic{From: near, To: near})
	if err != nil {
		return nil
	}

	var category syntax.Category
	if fres, ok := fcat.Result.(*syntax.Atomic); ok {
		if r.forward {
			category = &syntax.Atomic{From: fres.From, To: acat.To}
		} else {
			category = &syntax.Atomic{From: acat.From, To: fres.To}
		}
	} else {
		category = fcat.Result
	}
	category = res.Constraints.Apply(category)
	fsem := semantics.Distinguish(functor.Semantics, argument.Semantics)
	return syntax.NewSign(category, semantics.Apply(fsem, argument.Semantics))
}
