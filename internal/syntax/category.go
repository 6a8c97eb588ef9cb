// Package syntax implements the category algebra for the chord formalism:
// atomic span categories, slash categories with modalities, the modality
// generalization hierarchy, and signs pairing a category with its
// semantics.
//
// Categories are a closed variant: a Category is either *Atomic or
// *Complex. Values are treated as immutable once published; anything that
// needs to mutate one (a rule, a substitution) works on a Copy.
package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// Variable kinds for feature values and slash occurrences. A substitution
// keeps a separate equivalence assignment per kind.
const (
	KindRoot     = "root"
	KindFunction = "function"
	KindSlash    = "slash"
)

// Value is one feature slot on a half category: either a bound literal
// symbol or an unbound variable identified by a nonzero id. Name carries
// the variable's source spelling for display; identity is the id alone.
type Value struct {
	Lit  string
	Var  int
	Name string
}

// Bound reports whether the value is a literal rather than a variable.
func (v Value) Bound() bool { return v.Var == 0 }

func (v Value) String() string {
	if !v.Bound() {
		if v.Name != "" {
			return "?" + v.Name
		}
		return fmt.Sprintf("?%d", v.Var)
	}
	return v.Lit
}

// Equals compares the literal or the variable id; the display name does
// not take part.
func (v Value) Equals(other Value) bool {
	return v.Lit == other.Lit && v.Var == other.Var
}

// Lit returns a bound value.
func Lit(symbol string) Value { return Value{Lit: symbol} }

// Var returns an unbound variable value.
func Var(id int) Value { return Value{Var: id} }

// NamedVar returns an unbound variable value carrying its source name.
func NamedVar(id int, name string) Value { return Value{Var: id, Name: name} }

// Half is one end of an atomic span: a root (roman-numeral pitch) and a
// harmonic function (T, D or S). Either feature may be a variable.
type Half struct {
	Root     Value
	Function Value
}

func (h Half) String() string {
	return h.Root.String() + "^" + h.Function.String()
}

// Equals compares both features; variables are equal only to themselves.
func (h Half) Equals(other Half) bool {
	return h.Root.Equals(other.Root) && h.Function.Equals(other.Function)
}

// Category is a syntactic category: either *Atomic or *Complex.
type Category interface {
	category()

	// Copy returns a deep copy preserving slash ids and variable ids.
	Copy() Category
	// Equals is structural equality: features for atomic categories,
	// recursive equality plus slash direction and modality for complex
	// ones. Slash ids do not take part in equality.
	Equals(Category) bool
	// SlashIDs returns the sorted set of slash ids in the category.
	SlashIDs() []int
	// ReplaceSlashID renames one slash id throughout the category.
	ReplaceSlashID(old, new int)
	// VarIDs returns the sorted set of feature-variable ids of the kind.
	VarIDs(kind string) []int
	// ReplaceVarID renames one feature variable of the kind throughout.
	ReplaceVarID(kind string, old, new int)
	// AssignVar binds every feature variable of the kind with the id.
	AssignVar(kind string, id int, lit string)

	String() string
}

// IsAtomic reports whether the category is atomic.
func IsAtomic(c Category) bool {
	_, ok := c.(*Atomic)
	return ok
}

// IsComplex reports whether the category is a slash category.
func IsComplex(c Category) bool {
	_, ok := c.(*Complex)
	return ok
}

// Atomic is a span category From-To. Lexical categories have equal
// halves; spans derived by the rules may differ.
type Atomic struct {
	From Half
	To   Half
}

func (*Atomic) category() {}

func (a *Atomic) Copy() Category {
	return &Atomic{From: a.From, To: a.To}
}

func (a *Atomic) Equals(other Category) bool {
	o, ok := other.(*Atomic)
	return ok && a.From.Equals(o.From) && a.To.Equals(o.To)
}

func (a *Atomic) SlashIDs() []int { return nil }

func (a *Atomic) ReplaceSlashID(old, new int) {}

func (a *Atomic) VarIDs(kind string) []int {
	set := make(map[int]bool)
	a.eachValue(kind, func(v *Value) {
		if !v.Bound() {
			set[v.Var] = true
		}
	})
	return sortedIDs(set)
}

func (a *Atomic) ReplaceVarID(kind string, old, new int) {
	a.eachValue(kind, func(v *Value) {
		if v.Var == old {
			// The source name no longer identifies the renamed variable;
			// display falls back to the numeric id.
			*v = Value{Var: new}
		}
	})
}

func (a *Atomic) AssignVar(kind string, id int, lit string) {
	a.eachValue(kind, func(v *Value) {
		if v.Var == id {
			*v = Value{Lit: lit}
		}
	})
}

// eachValue visits the feature slots of the given kind on both halves.
func (a *Atomic) eachValue(kind string, f func(v *Value)) {
	switch kind {
	case KindRoot:
		f(&a.From.Root)
		f(&a.To.Root)
	case KindFunction:
		f(&a.From.Function)
		f(&a.To.Function)
	}
}

func (a *Atomic) String() string {
	if a.From.Equals(a.To) {
		return a.From.String()
	}
	return a.From.String() + "-" + a.To.String()
}

// Slash separates a complex category's result from its argument. The id
// uniquely tags this slash occurrence within one category instance, so
// that bindings can be tracked across copies descending from the same
// lexical entry.
type Slash struct {
	Forward  bool
	Modality string
	ID       int
}

func (s Slash) String() string {
	d := "\\"
	if s.Forward {
		d = "/"
	}
	if s.Modality != "" {
		return d + "{" + s.Modality + "}"
	}
	return d
}

// Equals compares direction and modality; the id is bookkeeping, not part
// of the category's identity.
func (s Slash) Equals(other Slash) bool {
	return s.Forward == other.Forward && s.Modality == other.Modality
}

// Complex is a slash category Result/Argument or Result\Argument.
type Complex struct {
	Result   Category
	Slash    Slash
	Argument Category
}

func (*Complex) category() {}

func (c *Complex) Copy() Category {
	return &Complex{
		Result:   c.Result.Copy(),
		Slash:    c.Slash,
		Argument: c.Argument.Copy(),
	}
}

func (c *Complex) Equals(other Category) bool {
	o, ok := other.(*Complex)
	return ok && c.Slash.Equals(o.Slash) &&
		c.Result.Equals(o.Result) &&
		c.Argument.Equals(o.Argument)
}

func (c *Complex) SlashIDs() []int {
	set := make(map[int]bool)
	c.collectSlashIDs(set)
	return sortedIDs(set)
}

func (c *Complex) collectSlashIDs(into map[int]bool) {
	into[c.Slash.ID] = true
	for _, id := range c.Result.SlashIDs() {
		into[id] = true
	}
	for _, id := range c.Argument.SlashIDs() {
		into[id] = true
	}
}

func (c *Complex) ReplaceSlashID(old, new int) {
	if c.Slash.ID == old {
		c.Slash.ID = new
	}
	c.Result.ReplaceSlashID(old, new)
	c.Argument.ReplaceSlashID(old, new)
}

func (c *Complex) VarIDs(kind string) []int {
	set := make(map[int]bool)
	for _, id := range c.Result.VarIDs(kind) {
		set[id] = true
	}
	for _, id := range c.Argument.VarIDs(kind) {
		set[id] = true
	}
	return sortedIDs(set)
}

func (c *Complex) ReplaceVarID(kind string, old, new int) {
	c.Result.ReplaceVarID(kind, old, new)
	c.Argument.ReplaceVarID(kind, old, new)
}

func (c *Complex) AssignVar(kind string, id int, lit string) {
	c.Result.AssignVar(kind, id, lit)
	c.Argument.AssignVar(kind, id, lit)
}

func (c *Complex) String() string {
	var b strings.Builder
	b.WriteString(parenthesize(c.Result))
	b.WriteString(c.Slash.String())
	b.WriteString(parenthesize(c.Argument))
	return b.String()
}

// parenthesize wraps nested complex categories so the notation reads back
// unambiguously.
func parenthesize(c Category) string {
	if IsComplex(c) {
		return "(" + c.String() + ")"
	}
	return c.String()
}

func sortedIDs(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
