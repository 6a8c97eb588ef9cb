package cadenza

import (
	"github.com/jward/cadenza/internal/grammar"
	"github.com/jward/cadenza/internal/rules"
	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/trees"
)

// Public type aliases for the internal types used in the API. These are
// Go type aliases (=) — identical to the internal types at compile
// time. External consumers use these names; no conversion is needed.

type Category = syntax.Category
type Atomic = syntax.Atomic
type Complex = syntax.Complex
type Slash = syntax.Slash
type Half = syntax.Half
type Value = syntax.Value
type Sign = syntax.Sign
type ModalityNode = syntax.ModalityNode
type ModalityTree = syntax.ModalityTree

type Form = semantics.Form

type Rule = rules.Rule

type Grammar = grammar.Grammar

type Chord = trees.Chord
type GenCategory = trees.GenCategory
type AtomicCategory = trees.AtomicCategory
type SlashCategory = trees.SlashCategory
type UnknownCategory = trees.UnknownCategory
type Node = trees.Node
type Terminal = trees.Terminal
type NonTerminal = trees.NonTerminal
type Root = trees.Root
type Resolver = trees.Resolver
type Builder = trees.Builder
type BuilderOption = trees.BuilderOption
type TreeBuildError = trees.TreeBuildError
