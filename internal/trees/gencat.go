// Package trees reconstructs canonical derivation trees from annotated
// chord sequences. It works over generalized categories, which keep only
// the slash skeleton of a lexical category and drop all tonal features,
// so that a deterministic shift-reduce pass recovers the intended tree
// shape without search.
package trees

import (
	"fmt"

	"github.com/jward/cadenza/internal/syntax"
)

// Generalize strips a lexical category down to its slash skeleton.
func Generalize(cat syntax.Category) GenCategory {
	switch cat := cat.(type) {
	case *syntax.Atomic:
		return AtomicCategory{}
	case *syntax.Complex:
		return &SlashCategory{
			Result:   Generalize(cat.Result),
			Forward:  cat.Slash.Forward,
			Argument: Generalize(cat.Argument),
		}
	default:
		return UnknownCategory{}
	}
}

// GenCategory is a generalized category: an atomic span, a slash
// skeleton or an unknown.
type GenCategory interface {
	gen()
	// Equals reports structural equality. Unknown categories equal
	// nothing, themselves included.
	Equals(other GenCategory) bool
	String() string
}

// AtomicCategory is any atomic span. All atomic spans are
// interchangeable once their features are dropped.
type AtomicCategory struct{}

func (AtomicCategory) gen() {}

func (AtomicCategory) Equals(other GenCategory) bool {
	_, ok := other.(AtomicCategory)
	return ok
}

func (AtomicCategory) String() string { return "A" }

// SlashCategory is the skeleton of a complex category.
type SlashCategory struct {
	Result   GenCategory
	Forward  bool
	Argument GenCategory
}

func (*SlashCategory) gen() {}

func (c *SlashCategory) Equals(other GenCategory) bool {
	o, ok := other.(*SlashCategory)
	return ok && c.Forward == o.Forward &&
		c.Result.Equals(o.Result) && c.Argument.Equals(o.Argument)
}

func (c *SlashCategory) String() string {
	slash := "\\"
	if c.Forward {
		slash = "/"
	}
	return fmt.Sprintf("(%s%s%s)", c.Result, slash, c.Argument)
}

// UnknownCategory stands in for a chord whose category annotation could
// not be interpreted. It combines with nothing and ends up as a direct
// child of the root.
type UnknownCategory struct{}

func (UnknownCategory) gen() {}

func (UnknownCategory) Equals(GenCategory) bool { return false }

func (UnknownCategory) String() string { return "?" }
