package syntax

import "strings"

// ModalityNode is one node in the modality hierarchy. A node contains its
// own modality and, transitively, everything in its subtrees.
type ModalityNode struct {
	Modality string
	Children []*ModalityNode
}

// Contains reports whether the symbol is this node's own modality or is
// found anywhere in its subtrees. Reflexive by the first case, transitive
// by construction.
func (n *ModalityNode) Contains(modality string) bool {
	if n.Modality == modality {
		return true
	}
	return n.Generalizes(modality)
}

// Generalizes reports whether the symbol occurs strictly below this node.
func (n *ModalityNode) Generalizes(modality string) bool {
	for _, child := range n.Children {
		if child.Contains(modality) {
			return true
		}
	}
	return false
}

// Find returns every node in this subtree carrying the modality.
func (n *ModalityNode) Find(modality string) []*ModalityNode {
	var found []*ModalityNode
	if n.Modality == modality {
		found = append(found, n)
	}
	for _, child := range n.Children {
		found = append(found, child.Find(modality)...)
	}
	return found
}

func (n *ModalityNode) String() string {
	symbol := n.Modality
	if symbol == "" {
		symbol = "NONE"
	}
	if len(n.Children) == 0 {
		return symbol
	}
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = child.String()
	}
	return "<" + symbol + ": " + strings.Join(parts, ", ") + ">"
}

// ModalityTree is a generalization hierarchy over modality symbols. If a
// node for Y is reachable from a node labeled X, then X generalizes Y and
// a Y-modalized slash may be used wherever an X modality is required. A
// symbol absent from the tree never satisfies, and is never satisfied by,
// anything.
type ModalityTree struct {
	Roots []*ModalityNode
}

// NewModalityTree builds a tree over the given root nodes.
func NewModalityTree(roots ...*ModalityNode) *ModalityTree {
	return &ModalityTree{Roots: roots}
}

// Accepts reports whether specific may stand where general is required:
// true iff specific is reachable from some node labeled general,
// including that node itself.
func (t *ModalityTree) Accepts(general, specific string) bool {
	for _, node := range t.Find(general) {
		if node.Contains(specific) {
			return true
		}
	}
	return false
}

// Find returns every node in the tree carrying the modality.
func (t *ModalityTree) Find(modality string) []*ModalityNode {
	var found []*ModalityNode
	for _, root := range t.Roots {
		found = append(found, root.Find(modality)...)
	}
	return found
}

func (t *ModalityTree) String() string {
	parts := make([]string, len(t.Roots))
	for i, root := range t.Roots {
		parts[i] = root.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
