package cadenza

import (
	"go.uber.org/zap"

	"github.com/jward/cadenza/internal/grammar"
	"github.com/jward/cadenza/internal/rules"
	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/trees"
)

// ParseCategory reads a category in the compact lexical notation, e.g.
// "V^D/{c}I^T" or "?x^T".
func ParseCategory(input string) (Category, error) {
	return syntax.Parse(input)
}

// ParseCategoryVariants reads a category, expanding multi-function
// halves such as I^DT into one category per function choice.
func ParseCategoryVariants(input string) ([]Category, error) {
	return syntax.ParseVariants(input)
}

// ParseSign reads "<category> : <semantics>" into a sign.
func ParseSign(input string) (*Sign, error) {
	return syntax.ParseSign(input)
}

// ParseLogicalForm reads a logical form, e.g. `\$x.leftonto($x)`.
func ParseLogicalForm(input string) (*Form, error) {
	return semantics.Parse(input)
}

// NewModalityTree builds a modality hierarchy from its root nodes.
func NewModalityTree(roots ...*ModalityNode) *ModalityTree {
	return syntax.NewModalityTree(roots...)
}

// NewApplication returns a forward or backward application rule under
// the modality hierarchy.
func NewApplication(forward bool, modalities *ModalityTree) Rule {
	return rules.NewApplication(forward, modalities)
}

// NewComposition returns a composition rule: forward selects the outer
// functor, harmonic selects harmonic over crossed composition.
func NewComposition(forward, harmonic bool, modalities *ModalityTree) Rule {
	return rules.NewComposition(forward, harmonic, modalities)
}

// NewDevelopment returns the development rule.
func NewDevelopment() Rule {
	return rules.NewDevelopment()
}

// NewCoordination returns the coordination rule under the modality
// hierarchy.
func NewCoordination(modalities *ModalityTree) Rule {
	return rules.NewCoordination(modalities)
}

// LoadGrammar reads a grammar from a YAML file.
func LoadGrammar(path string) (*Grammar, error) {
	return grammar.Load(path)
}

// ParseGrammar builds a grammar from YAML bytes.
func ParseGrammar(data []byte) (*Grammar, error) {
	return grammar.Parse(data)
}

// DefaultGrammar returns the built-in jazz grammar.
func DefaultGrammar() (*Grammar, error) {
	return grammar.Default()
}

// NewTreeBuilder returns a shift-reduce derivation tree builder over
// the given category resolver.
func NewTreeBuilder(resolve Resolver, opts ...BuilderOption) *Builder {
	return trees.NewBuilder(resolve, opts...)
}

// WithTreeLogger makes a tree builder trace its shift and reduce steps
// at debug level.
func WithTreeLogger(log *zap.Logger) BuilderOption {
	return trees.WithLogger(log)
}
