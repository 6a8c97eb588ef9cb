package semantics

// alphaConvert renames every occurrence of from (binding and bound) to to.
func alphaConvert(t Term, from, to Variable) Term {
	switch t := t.(type) {
	case Variable:
		if t == from {
			return to
		}
		return t
	case Literal:
		return t
	case *Abstraction:
		v := t.Variable
		if v == from {
			v = to
		}
		return &Abstraction{Variable: v, Body: alphaConvert(t.Body, from, to)}
	case *Application:
		return &Application{
			Functor:  alphaConvert(t.Functor, from, to),
			Argument: alphaConvert(t.Argument, from, to),
		}
	case *List:
		items := make([]Term, len(t.Items))
		for i, item := range t.Items {
			items[i] = alphaConvert(item, from, to)
		}
		return &List{Items: items}
	default:
		return t
	}
}

// substitute replaces free occurrences of v in t with repl, renaming bound
// variables where they would capture a free variable of repl.
func substitute(t Term, v Variable, repl Term) Term {
	switch t := t.(type) {
	case Variable:
		if t == v {
			return Copy(repl)
		}
		return t
	case Literal:
		return t
	case *Abstraction:
		if t.Variable == v {
			// v is rebound here; the substitution does not reach inside.
			return t
		}
		if FreeVars(repl)[t.Variable] {
			used := Vars(t.Body)
			for rv := range Vars(repl) {
				used[rv] = true
			}
			fresh := freshVariable(t.Variable, used)
			body := alphaConvert(t.Body, t.Variable, fresh)
			return &Abstraction{Variable: fresh, Body: substitute(body, v, repl)}
		}
		return &Abstraction{Variable: t.Variable, Body: substitute(t.Body, v, repl)}
	case *Application:
		return &Application{
			Functor:  substitute(t.Functor, v, repl),
			Argument: substitute(t.Argument, v, repl),
		}
	case *List:
		items := make([]Term, len(t.Items))
		for i, item := range t.Items {
			items[i] = substitute(item, v, repl)
		}
		return &List{Items: items}
	default:
		return t
	}
}

// Reduce rewrites t to beta-normal form. Every redex (\x.b) a becomes b
// with a substituted for x; the result contains no redexes.
func Reduce(t Term) Term {
	switch t := t.(type) {
	case Variable, Literal:
		return t
	case *Abstraction:
		return &Abstraction{Variable: t.Variable, Body: Reduce(t.Body)}
	case *Application:
		functor := Reduce(t.Functor)
		if abs, ok := functor.(*Abstraction); ok {
			return Reduce(substitute(abs.Body, abs.Variable, t.Argument))
		}
		return &Application{Functor: functor, Argument: Reduce(t.Argument)}
	case *List:
		items := make([]Term, len(t.Items))
		for i, item := range t.Items {
			items[i] = Reduce(item)
		}
		return &List{Items: items}
	default:
		return t
	}
}

// AlphaEquivalent reports whether a and b are equal up to consistent
// renaming of variables. Free variables must map one-to-one as well as
// bound ones, matching the original sign-equality behaviour.
func AlphaEquivalent(a, b Term) bool {
	return alphaEquivalent(a, b, map[Variable]Variable{})
}

func alphaEquivalent(a, b Term, sub map[Variable]Variable) bool {
	switch a := a.(type) {
	case Variable:
		bv, ok := b.(Variable)
		if !ok {
			return false
		}
		if mapped, ok := sub[bv]; ok {
			return a == mapped
		}
		// b's variable is free so far: bind it to a's, provided a is not
		// already the image of another variable.
		for _, target := range sub {
			if target == a {
				return false
			}
		}
		sub[bv] = a
		return true
	case Literal:
		bl, ok := b.(Literal)
		return ok && a == bl
	case *Abstraction:
		ba, ok := b.(*Abstraction)
		if !ok {
			return false
		}
		if _, bound := sub[ba.Variable]; bound {
			return false
		}
		for _, target := range sub {
			if target == a.Variable {
				return false
			}
		}
		// The mapping of the abstracted variable is scoped to the body.
		inner := make(map[Variable]Variable, len(sub)+1)
		for k, v := range sub {
			inner[k] = v
		}
		inner[ba.Variable] = a.Variable
		return alphaEquivalent(a.Body, ba.Body, inner)
	case *Application:
		bapp, ok := b.(*Application)
		return ok &&
			alphaEquivalent(a.Functor, bapp.Functor, sub) &&
			alphaEquivalent(a.Argument, bapp.Argument, sub)
	case *List:
		bl, ok := b.(*List)
		if !ok || len(a.Items) != len(bl.Items) {
			return false
		}
		for i := range a.Items {
			if !alphaEquivalent(a.Items[i], bl.Items[i], sub) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
