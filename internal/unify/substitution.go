package unify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jward/cadenza/internal/syntax"
)

// Substitution collects the variable constraints produced during
// unification, one assignment per variable kind. Applying a substitution
// to a category writes the constrained values back into the category and
// canonicalizes every equivalence class of unbound variables to its
// smallest key, so Apply is idempotent.
type Substitution struct {
	assignments map[string]*Assignment
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{assignments: make(map[string]*Assignment)}
}

func (s *Substitution) assignment(kind string) *Assignment {
	a, ok := s.assignments[kind]
	if !ok {
		a = NewAssignment()
		s.assignments[kind] = a
	}
	return a
}

// Assign constrains the variable of the given kind to a concrete value.
func (s *Substitution) Assign(kind string, key int, value string) error {
	return s.assignment(kind).Assign(key, value)
}

// Equate constrains two variables of the same kind to take the same value.
func (s *Substitution) Equate(kind string, key1, key2 int) error {
	return s.assignment(kind).Equate(key1, key2)
}

// Value returns the value bound to the variable, if any.
func (s *Substitution) Value(kind string, key int) (string, bool) {
	a, ok := s.assignments[kind]
	if !ok {
		return "", false
	}
	return a.Value(key)
}

// Apply returns a copy of the category with every bound variable
// replaced by its value and every class of still-unbound variables
// renamed to the class's smallest key. The input is not modified.
func (s *Substitution) Apply(cat syntax.Category) syntax.Category {
	out := cat.Copy()
	for _, kind := range []string{syntax.KindRoot, syntax.KindFunction} {
		a, ok := s.assignments[kind]
		if !ok {
			continue
		}
		for _, key := range a.Keys() {
			value, _ := a.Value(key)
			out.AssignVar(kind, key, value)
		}
		s.canonicalize(a, func(old, canonical int) {
			out.ReplaceVarID(kind, old, canonical)
		})
	}
	if a, ok := s.assignments[syntax.KindSlash]; ok {
		s.canonicalize(a, out.ReplaceSlashID)
	}
	return out
}

// canonicalize renames every member of each equivalence class to the
// class minimum. Keys with values need no renaming: Apply has already
// replaced them.
func (s *Substitution) canonicalize(a *Assignment, rename func(old, canonical int)) {
	for _, class := range a.Classes() {
		canonical := class[0]
		if _, bound := a.Value(canonical); bound {
			continue
		}
		for _, key := range class[1:] {
			rename(key, canonical)
		}
	}
}

func (s *Substitution) String() string {
	kinds := make([]string, 0, len(s.assignments))
	for kind := range s.assignments {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = fmt.Sprintf("%s: %s", kind, s.assignments[kind])
	}
	return "{" + strings.Join(parts, "; ") + "}"
}
