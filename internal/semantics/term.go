// Package semantics implements the lambda-calculus logical forms that
// accompany syntactic categories in a sign. Terms are immutable values:
// every operation that would change a term returns a new one. The package
// provides capture-avoiding substitution, reduction to beta-normal form,
// alpha-equivalence, and the combination operators (application,
// composition, concatenation, coordination) the combinator rules delegate
// to.
package semantics

import (
	"fmt"
	"sort"
	"strings"
)

// Term is a node in a logical form. The variant set is closed: Variable,
// Literal, *Abstraction, *Application and *List.
type Term interface {
	term()
	String() string
}

// Variable is a lambda variable. Two variables are the same variable iff
// name and index agree; the index exists so fresh variables can be minted
// from a used name.
type Variable struct {
	Name  string
	Index int
}

func (Variable) term() {}

func (v Variable) String() string {
	if v.Index == 0 {
		return "$" + v.Name
	}
	return fmt.Sprintf("$%s%d", v.Name, v.Index)
}

// Literal is a predicate or constant glued together by lambda expressions.
type Literal struct {
	Name string
}

func (Literal) term() {}

func (l Literal) String() string { return l.Name }

// Abstraction binds Variable in Body.
type Abstraction struct {
	Variable Variable
	Body     Term
}

func (*Abstraction) term() {}

func (a *Abstraction) String() string {
	return "\\" + a.commaString()
}

// commaString renders chained abstractions as \$x,$y.body.
func (a *Abstraction) commaString() string {
	if inner, ok := a.Body.(*Abstraction); ok {
		return a.Variable.String() + "," + inner.commaString()
	}
	return a.Variable.String() + "." + a.Body.String()
}

// Application applies Functor to Argument. Multi-argument predicates are
// curried chains of applications.
type Application struct {
	Functor  Term
	Argument Term
}

func (*Application) term() {}

// infixOperators are rendered between their two arguments rather than in
// prefix position.
var infixOperators = map[string]string{
	coordOperator: " & ",
}

func (a *Application) String() string {
	head, args := a.spine()
	if op, ok := head.(Literal); ok {
		if sym, ok := infixOperators[op.Name]; ok && len(args) == 2 {
			return "(" + args[0].String() + sym + args[1].String() + ")"
		}
	}
	functor := head.String()
	if _, ok := head.(*Abstraction); ok {
		functor = "(" + functor + ")"
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return functor + "(" + strings.Join(parts, ", ") + ")"
}

// spine unwinds a curried application chain into its head and arguments.
func (a *Application) spine() (Term, []Term) {
	if inner, ok := a.Functor.(*Application); ok {
		head, args := inner.spine()
		return head, append(args, a.Argument)
	}
	return a.Functor, []Term{a.Argument}
}

// List is an ordered sequence of logical forms, used for the
// interpretation of spans glued together by the development rule.
type List struct {
	Items []Term
}

func (*List) term() {}

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Copy returns a deep copy of the term.
func Copy(t Term) Term {
	switch t := t.(type) {
	case Variable, Literal:
		return t
	case *Abstraction:
		return &Abstraction{Variable: t.Variable, Body: Copy(t.Body)}
	case *Application:
		return &Application{Functor: Copy(t.Functor), Argument: Copy(t.Argument)}
	case *List:
		items := make([]Term, len(t.Items))
		for i, item := range t.Items {
			items[i] = Copy(item)
		}
		return &List{Items: items}
	default:
		panic(fmt.Sprintf("semantics: unknown term type %T", t))
	}
}

// Equal reports structural equality, with variables compared by name and
// index. For equality up to bound-variable renaming use AlphaEquivalent.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Variable:
		bv, ok := b.(Variable)
		return ok && a == bv
	case Literal:
		bl, ok := b.(Literal)
		return ok && a == bl
	case *Abstraction:
		ba, ok := b.(*Abstraction)
		return ok && a.Variable == ba.Variable && Equal(a.Body, ba.Body)
	case *Application:
		bapp, ok := b.(*Application)
		return ok && Equal(a.Functor, bapp.Functor) && Equal(a.Argument, bapp.Argument)
	case *List:
		bl, ok := b.(*List)
		if !ok || len(a.Items) != len(bl.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], bl.Items[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("semantics: unknown term type %T", a))
	}
}

// Vars returns the set of variables occurring in t, bound or free, one
// entry per distinct variable.
func Vars(t Term) map[Variable]bool {
	vars := make(map[Variable]bool)
	collectVars(t, vars)
	return vars
}

func collectVars(t Term, into map[Variable]bool) {
	switch t := t.(type) {
	case Variable:
		into[t] = true
	case Literal:
	case *Abstraction:
		into[t.Variable] = true
		collectVars(t.Body, into)
	case *Application:
		collectVars(t.Functor, into)
		collectVars(t.Argument, into)
	case *List:
		for _, item := range t.Items {
			collectVars(item, into)
		}
	}
}

// BoundVars returns the set of variables bound by some abstraction in t.
func BoundVars(t Term) map[Variable]bool {
	vars := make(map[Variable]bool)
	collectBoundVars(t, vars)
	return vars
}

func collectBoundVars(t Term, into map[Variable]bool) {
	switch t := t.(type) {
	case *Abstraction:
		into[t.Variable] = true
		collectBoundVars(t.Body, into)
	case *Application:
		collectBoundVars(t.Functor, into)
		collectBoundVars(t.Argument, into)
	case *List:
		for _, item := range t.Items {
			collectBoundVars(item, into)
		}
	}
}

// FreeVars returns the variables of t not bound by any abstraction.
func FreeVars(t Term) map[Variable]bool {
	free := make(map[Variable]bool)
	collectFreeVars(t, map[Variable]bool{}, free)
	return free
}

func collectFreeVars(t Term, bound, free map[Variable]bool) {
	switch t := t.(type) {
	case Variable:
		if !bound[t] {
			free[t] = true
		}
	case *Abstraction:
		inner := make(map[Variable]bool, len(bound)+1)
		for v := range bound {
			inner[v] = true
		}
		inner[t.Variable] = true
		collectFreeVars(t.Body, inner, free)
	case *Application:
		collectFreeVars(t.Functor, bound, free)
		collectFreeVars(t.Argument, bound, free)
	case *List:
		for _, item := range t.Items {
			collectFreeVars(item, bound, free)
		}
	}
}

// freshVariable returns a variable with base's name that is not equal to
// base and does not occur in used.
func freshVariable(base Variable, used map[Variable]bool) Variable {
	v := Variable{Name: base.Name}
	for v == base || used[v] {
		v.Index++
	}
	return v
}

// sortedVars gives a deterministic ordering over a variable set.
func sortedVars(set map[Variable]bool) []Variable {
	vars := make([]Variable, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		if vars[i].Name != vars[j].Name {
			return vars[i].Name < vars[j].Name
		}
		return vars[i].Index < vars[j].Index
	})
	return vars
}
