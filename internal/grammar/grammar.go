// Package grammar loads a complete analysis grammar from YAML: the
// modality hierarchy, the active combinator rules and the lexicon of
// category families.
package grammar

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jward/cadenza/internal/rules"
	"github.com/jward/cadenza/internal/semantics"
	"github.com/jward/cadenza/internal/syntax"
	"github.com/jward/cadenza/internal/trees"
)

//go:embed grammar.yaml
var defaultConfig []byte

// Grammar is a loaded grammar: the modality hierarchy, the combinator
// rules in configuration order and the lexicon.
type Grammar struct {
	Modalities *syntax.ModalityTree
	Rules      []rules.Rule

	rulesByName map[string]rules.Rule
	families    map[string][]*syntax.Sign
}

type config struct {
	Modalities []modalityConfig `yaml:"modalities"`
	Rules      []ruleConfig     `yaml:"rules"`
	Lexicon    []familyConfig   `yaml:"lexicon"`
}

type modalityConfig struct {
	Modality string           `yaml:"modality"`
	Children []modalityConfig `yaml:"children"`
}

type ruleConfig struct {
	Type     string `yaml:"type"`
	Dir      string `yaml:"dir"`
	Harmonic bool   `yaml:"harmonic"`
}

type familyConfig struct {
	Family  string        `yaml:"family"`
	Entries []entryConfig `yaml:"entries"`
}

type entryConfig struct {
	Category  string `yaml:"category"`
	Semantics string `yaml:"semantics"`
}

// Load reads a grammar from a YAML file.
func Load(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grammar: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a grammar from YAML bytes.
func Parse(data []byte) (*Grammar, error) {
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("grammar: parse config: %w", err)
	}

	g := &Grammar{
		rulesByName: make(map[string]rules.Rule),
		families:    make(map[string][]*syntax.Sign),
	}

	roots := make([]*syntax.ModalityNode, len(cfg.Modalities))
	for i, mc := range cfg.Modalities {
		roots[i] = buildModality(mc)
	}
	g.Modalities = syntax.NewModalityTree(roots...)

	for _, rc := range cfg.Rules {
		rule, err := buildRule(rc, g.Modalities)
		if err != nil {
			return nil, err
		}
		if _, ok := g.rulesByName[rule.InternalName()]; ok {
			return nil, fmt.Errorf("grammar: rule %s configured twice", rule.InternalName())
		}
		g.Rules = append(g.Rules, rule)
		g.rulesByName[rule.InternalName()] = rule
	}

	for _, fc := range cfg.Lexicon {
		if _, ok := g.families[fc.Family]; ok {
			return nil, fmt.Errorf("grammar: family %q defined twice", fc.Family)
		}
		var signs []*syntax.Sign
		for _, ec := range fc.Entries {
			entry, err := buildEntry(ec)
			if err != nil {
				return nil, fmt.Errorf("grammar: family %q: %w", fc.Family, err)
			}
			signs = append(signs, entry...)
		}
		if len(signs) == 0 {
			return nil, fmt.Errorf("grammar: family %q has no entries", fc.Family)
		}
		g.families[fc.Family] = signs
	}

	return g, nil
}

var loadDefault = sync.OnceValues(func() (*Grammar, error) {
	return Parse(defaultConfig)
})

// Default returns the built-in jazz grammar.
func Default() (*Grammar, error) {
	return loadDefault()
}

func buildModality(mc modalityConfig) *syntax.ModalityNode {
	node := &syntax.ModalityNode{Modality: mc.Modality}
	for _, child := range mc.Children {
		node.Children = append(node.Children, buildModality(child))
	}
	return node
}

func buildRule(rc ruleConfig, modalities *syntax.ModalityTree) (rules.Rule, error) {
	forward := false
	switch rc.Dir {
	case "forward":
		forward = true
	case "backward", "":
	default:
		return nil, fmt.Errorf("grammar: rule %s: unknown direction %q", rc.Type, rc.Dir)
	}
	switch rc.Type {
	case "application":
		return rules.NewApplication(forward, modalities), nil
	case "composition":
		return rules.NewComposition(forward, rc.Harmonic, modalities), nil
	case "development":
		return rules.NewDevelopment(), nil
	case "coordination":
		return rules.NewCoordination(modalities), nil
	default:
		return nil, fmt.Errorf("grammar: unknown rule type %q", rc.Type)
	}
}

// buildEntry expands one lexicon entry into signs, one per function
// variant of the category. Each variant carries its own copy of the
// interpretation.
func buildEntry(ec entryConfig) ([]*syntax.Sign, error) {
	cats, err := syntax.ParseVariants(ec.Category)
	if err != nil {
		return nil, err
	}
	sem, err := semantics.Parse(ec.Semantics)
	if err != nil {
		return nil, err
	}
	signs := make([]*syntax.Sign, len(cats))
	for i, cat := range cats {
		signs[i] = syntax.NewSign(cat, sem.Copy())
	}
	return signs, nil
}

// Families returns the family names in sorted order.
func (g *Grammar) Families() []string {
	names := make([]string, 0, len(g.families))
	for name := range g.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signs returns fresh copies of a family's signs, safe for the caller
// to combine and mutate. The second result is false for an unknown
// family.
func (g *Grammar) Signs(family string) ([]*syntax.Sign, bool) {
	signs, ok := g.families[family]
	if !ok {
		return nil, false
	}
	out := make([]*syntax.Sign, len(signs))
	for i, sign := range signs {
		out[i] = sign.Copy()
	}
	return out, true
}

// RuleByName returns the rule with the given internal name, e.g.
// "appf" or "coord".
func (g *Grammar) RuleByName(name string) (rules.Rule, bool) {
	rule, ok := g.rulesByName[name]
	return rule, ok
}

// Resolve maps a family name to the generalized category of its
// entries, for use as a tree-building resolver. An empty family name
// resolves to UnknownCategory, so untagged chords stay in the tree as
// isolated leaves.
func (g *Grammar) Resolve(family string) (trees.GenCategory, error) {
	if family == "" {
		return trees.UnknownCategory{}, nil
	}
	signs, ok := g.families[family]
	if !ok {
		return nil, fmt.Errorf("grammar: unknown family %q", family)
	}
	return trees.Generalize(signs[0].Category), nil
}

// BuildTree reconstructs the derivation tree of a sequence annotated
// with this grammar's family names.
func (g *Grammar) BuildTree(chords []trees.Chord, opts ...trees.BuilderOption) (*trees.Root, error) {
	return trees.NewBuilder(g.Resolve, opts...).Build(chords)
}
