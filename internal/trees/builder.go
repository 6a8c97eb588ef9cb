package trees

import (
	"fmt"

	"go.uber.org/zap"
)

// TreeBuildError reports an annotated sequence whose coordination
// markers cannot be consumed: a marker was pushed but no later cadence
// closed the coordination.
type TreeBuildError struct {
	Reason string
}

func (e *TreeBuildError) Error() string { return "trees: " + e.Reason }

// Resolver maps a chord's category annotation to a generalized
// category. Returning UnknownCategory keeps the chord in the tree as an
// uncombined leaf; returning an error aborts the whole sequence.
type Resolver func(category string) (GenCategory, error)

// Builder reconstructs derivation trees by a deterministic shift-reduce
// pass over an annotated sequence.
type Builder struct {
	resolve Resolver
	log     *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger makes the builder trace its shift and reduce steps at
// debug level.
func WithLogger(log *zap.Logger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// NewBuilder returns a builder resolving category annotations through
// the given resolver.
func NewBuilder(resolve Resolver, opts ...BuilderOption) *Builder {
	b := &Builder{resolve: resolve, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// stackItem is either a tree node or a coordination marker.
type stackItem struct {
	node   Node
	marker bool
}

// Build runs the sequence through the shift-reduce pass. Each chord is
// shifted and the stack reduced greedily; a chord closing a
// coordination then attempts exactly one coordination fold, and any
// further reduction waits for the next shift. The remaining stack
// becomes the root's children.
func (b *Builder) Build(chords []Chord) (*Root, error) {
	var stack []stackItem
	for i, chord := range chords {
		var cat GenCategory
		if chord.Category == "" {
			// An untagged chord stays in the tree as an isolated leaf.
			cat = UnknownCategory{}
		} else {
			var err error
			cat, err = b.resolve(chord.Category)
			if err != nil {
				return nil, fmt.Errorf("trees: chord %d (%s): %w", i, chord.Name, err)
			}
		}
		stack = append(stack, stackItem{node: &Terminal{Chord: chord, Cat: cat}})
		b.log.Debug("shift",
			zap.Int("position", i),
			zap.String("chord", chord.Name),
			zap.Stringer("category", cat))
		stack = b.reduce(stack)

		if chord.CoordResolved {
			stack = b.coordinate(stack)
		}
		if chord.CoordUnresolved {
			stack = append(stack, stackItem{marker: true})
			b.log.Debug("push coordination marker", zap.Int("position", i))
		}
	}

	root := &Root{}
	for _, item := range stack {
		if item.marker {
			return nil, &TreeBuildError{Reason: "coordination marker never resolved"}
		}
		root.Children = append(root.Children, item.node)
	}
	return root, nil
}

// reduceOrder tries composition before application before plain
// continuation.
var reduceOrder = []string{"compf", "compb", "appf", "appb", "cont"}

// reduce folds the top of the stack until no rule applies. Each pass
// tries every rule in order against the current top; markers block
// reduction across them.
func (b *Builder) reduce(stack []stackItem) []stackItem {
	for changed := true; changed; {
		changed = false
		for _, rule := range reduceOrder {
			if len(stack) < 2 {
				continue
			}
			x := stack[len(stack)-2]
			y := stack[len(stack)-1]
			if x.marker || y.marker {
				continue
			}
			cat, ok := tryReduce(rule, x.node.Category(), y.node.Category())
			if !ok {
				continue
			}
			node := &NonTerminal{Children: []Node{x.node, y.node}, Rule: rule, Cat: cat}
			stack = append(stack[:len(stack)-2], stackItem{node: node})
			b.log.Debug("reduce", zap.String("rule", rule), zap.Stringer("category", cat))
			changed = true
		}
	}
	return stack
}

// coordinate folds [X/W, marker, Y/Z] at the top of the stack into one
// node deriving X/W; both cadences need only be forward slashes. When
// the shape does not match the stack is left alone; the dangling
// marker surfaces as a TreeBuildError at the end.
func (b *Builder) coordinate(stack []stackItem) []stackItem {
	if len(stack) < 3 {
		return stack
	}
	xi := stack[len(stack)-3]
	mi := stack[len(stack)-2]
	yi := stack[len(stack)-1]
	if !mi.marker || xi.marker || yi.marker {
		return stack
	}
	x, ok := xi.node.Category().(*SlashCategory)
	if !ok {
		return stack
	}
	y, ok := yi.node.Category().(*SlashCategory)
	if !ok {
		return stack
	}
	if !x.Forward || !y.Forward {
		return stack
	}
	node := &NonTerminal{
		Children: []Node{xi.node, yi.node},
		Rule:     "coord",
		Cat:      &SlashCategory{Result: x.Result, Forward: true, Argument: x.Argument},
	}
	b.log.Debug("reduce", zap.String("rule", "coord"), zap.Stringer("category", node.Cat))
	return append(stack[:len(stack)-3], stackItem{node: node})
}

// tryReduce attempts one reduction rule on two adjacent categories.
// Composition joins any two same-direction slashes, with no check on
// the inner categories: the generalized forms are too coarse for the
// middle pair to be meaningful, so the canonical tree keeps the outer
// result and argument only.
func tryReduce(rule string, x, y GenCategory) (GenCategory, bool) {
	xs, _ := x.(*SlashCategory)
	ys, _ := y.(*SlashCategory)
	switch rule {
	case "compf":
		if xs != nil && ys != nil && xs.Forward && ys.Forward {
			return &SlashCategory{Result: xs.Result, Forward: true, Argument: ys.Argument}, true
		}
	case "compb":
		if xs != nil && ys != nil && !xs.Forward && !ys.Forward {
			return &SlashCategory{Result: xs.Result, Forward: false, Argument: ys.Argument}, true
		}
	case "appf":
		if xs != nil && xs.Forward && xs.Argument.Equals(y) {
			return xs.Result, true
		}
	case "appb":
		if ys != nil && !ys.Forward && ys.Argument.Equals(x) {
			return ys.Result, true
		}
	case "cont":
		if isAtomic(x) && isAtomic(y) {
			return AtomicCategory{}, true
		}
	}
	return nil, false
}

func isAtomic(c GenCategory) bool {
	_, ok := c.(AtomicCategory)
	return ok
}
