package semantics

// coordOperator is the logical operator combining two coordinated cadences.
const coordOperator = "&"

// Form is the root container for a logical form, the semantics half of a
// sign.
type Form struct {
	LF Term
}

// NewForm wraps a logical form term.
func NewForm(lf Term) *Form {
	return &Form{LF: lf}
}

// Copy returns a deep copy of the form.
func (f *Form) Copy() *Form {
	return &Form{LF: Copy(f.LF)}
}

// Reduce replaces the logical form with its beta-normal form and returns
// the form for convenience.
func (f *Form) Reduce() *Form {
	f.LF = Reduce(f.LF)
	return f
}

// AlphaEquivalent reports equality up to consistent variable renaming.
func (f *Form) AlphaEquivalent(other *Form) bool {
	return AlphaEquivalent(f.LF, other.LF)
}

func (f *Form) String() string {
	return f.LF.String()
}

// Apply combines a functor form with an argument form by function
// application and reduces the result to beta-normal form.
func Apply(fn, arg *Form) *Form {
	form := &Form{LF: &Application{Functor: Copy(fn.LF), Argument: Copy(arg.LF)}}
	return form.Reduce()
}

// Compose builds the function composition \x.f(g(x)) of two forms, using a
// variable fresh in both, reduced to beta-normal form.
func Compose(f, g *Form) *Form {
	used := Vars(f.LF)
	for v := range Vars(g.LF) {
		used[v] = true
	}
	x := Variable{Name: "x"}
	if used[x] {
		x = freshVariable(x, used)
	}
	form := &Form{LF: &Abstraction{
		Variable: x,
		Body: &Application{
			Functor:  Copy(f.LF),
			Argument: &Application{Functor: Copy(g.LF), Argument: x},
		},
	}}
	return form.Reduce()
}

// Concatenate joins two list interpretations into one list. Non-list
// operands are treated as singleton lists.
func Concatenate(a, b *Form) *Form {
	items := appendItems(nil, Copy(a.LF))
	items = appendItems(items, Copy(b.LF))
	form := &Form{LF: &List{Items: items}}
	return form.Reduce()
}

func appendItems(items []Term, t Term) []Term {
	if list, ok := t.(*List); ok {
		return append(items, list.Items...)
	}
	return append(items, t)
}

// Coordinate combines two cadence interpretations under the coordination
// operator, reduced to beta-normal form.
func Coordinate(a, b *Form) *Form {
	form := &Form{LF: &Application{
		Functor:  &Application{Functor: Literal{Name: coordOperator}, Argument: Copy(a.LF)},
		Argument: Copy(b.LF),
	}}
	return form.Reduce()
}

// Distinguish renames variables in a that also occur in b, so that the two
// forms can be combined without accidental identification. It returns the
// renamed copy of a; b is untouched.
func Distinguish(a, b *Form) *Form {
	aVars := Vars(a.LF)
	bVars := Vars(b.LF)
	used := make(map[Variable]bool, len(aVars)+len(bVars))
	for v := range aVars {
		used[v] = true
	}
	for v := range bVars {
		used[v] = true
	}
	lf := Copy(a.LF)
	for _, v := range sortedVars(aVars) {
		if !bVars[v] {
			continue
		}
		fresh := freshVariable(v, used)
		lf = alphaConvert(lf, v, fresh)
		used[fresh] = true
	}
	return &Form{LF: lf}
}
