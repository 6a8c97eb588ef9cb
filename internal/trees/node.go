package trees

import (
	"fmt"
	"strings"
)

// Chord is one annotated input: the chord label and the name of the
// lexical category assigned to it, plus the coordination markers carried
// over from the annotation.
type Chord struct {
	Name     string
	Category string
	// CoordUnresolved marks the last chord of an interrupted cadence:
	// the cadence to its left shares its resolution with a later one.
	CoordUnresolved bool
	// CoordResolved marks the last chord of the cadence that closes the
	// coordination.
	CoordResolved bool
}

func (c Chord) String() string { return c.Name }

// Node is a vertex of a derivation tree.
type Node interface {
	node()
	// Category is the generalized category the node derives.
	Category() GenCategory
	String() string
}

// Terminal is a leaf holding one input chord.
type Terminal struct {
	Chord Chord
	Cat   GenCategory
}

func (*Terminal) node() {}

func (t *Terminal) Category() GenCategory { return t.Cat }

func (t *Terminal) String() string { return t.Chord.Name }

// NonTerminal is an internal node: the combination of its children by
// one rule.
type NonTerminal struct {
	Children []Node
	Rule     string
	Cat      GenCategory
}

func (*NonTerminal) node() {}

func (n *NonTerminal) Category() GenCategory { return n.Cat }

func (n *NonTerminal) String() string {
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = child.String()
	}
	return fmt.Sprintf("<%s %s>", n.Rule, strings.Join(parts, " "))
}

// Root collects the top-level nodes of a sequence. A fully analyzable
// sequence reduces to a single child; chords that combine with nothing
// remain as extra children.
type Root struct {
	Children []Node
}

func (r *Root) String() string {
	parts := make([]string, len(r.Children))
	for i, child := range r.Children {
		parts[i] = child.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
