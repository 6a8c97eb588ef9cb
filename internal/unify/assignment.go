// Package unify implements the variable-binding machinery behind the
// combinator rules: equivalence-class assignments, kind-indexed
// substitutions and the category unifier.
package unify

import (
	"fmt"
	"sort"
	"strings"
)

// ConflictError reports that two incompatible values were assigned to the
// same key or equivalence class. Rules catch it at their boundary and
// treat the combination as inapplicable.
type ConflictError struct {
	Old string
	New string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unify: %q and %q cannot be assigned to the same key", e.Old, e.New)
}

// Assignment maps integer keys to values and additionally maintains
// disjoint equivalence classes of keys: setting a value through any key
// of a class propagates it to the whole class. Once a conflicting
// assignment has been attempted the assignment is permanently
// inconsistent.
type Assignment struct {
	values       map[int]string
	classes      []map[int]bool
	inconsistent bool
}

// NewAssignment returns an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{values: make(map[int]string)}
}

// Inconsistent reports whether a conflicting assignment was attempted.
func (a *Assignment) Inconsistent() bool { return a.inconsistent }

// Value returns the value constrained to the key, if any.
func (a *Assignment) Value(key int) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the keys with values, in ascending order.
func (a *Assignment) Keys() []int {
	keys := make([]int, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Assign constrains the key, and every key equivalent to it, to the
// value. Assigning a different value to an already-constrained class
// fails with a *ConflictError.
func (a *Assignment) Assign(key int, value string) error {
	if old, ok := a.values[key]; ok && old != value {
		a.inconsistent = true
		return &ConflictError{Old: old, New: value}
	}
	a.values[key] = value
	if class := a.class(key); class != nil {
		for k := range class {
			if old, ok := a.values[k]; ok && old != value {
				a.inconsistent = true
				return &ConflictError{Old: old, New: value}
			}
			a.values[k] = value
		}
	}
	return nil
}

// Equate constrains the two keys to take the same value, merging their
// equivalence classes. If either side already has a value it propagates;
// contradictory existing values fail with a *ConflictError.
func (a *Assignment) Equate(key1, key2 int) error {
	if key1 == key2 {
		return nil
	}
	c1 := a.classIndex(key1)
	c2 := a.classIndex(key2)
	switch {
	case c1 >= 0 && c2 >= 0:
		if c1 == c2 {
			return nil
		}
		for k := range a.classes[c2] {
			a.classes[c1][k] = true
		}
		a.classes = append(a.classes[:c2], a.classes[c2+1:]...)
	case c1 >= 0:
		a.classes[c1][key2] = true
	case c2 >= 0:
		a.classes[c2][key1] = true
	default:
		a.classes = append(a.classes, map[int]bool{key1: true, key2: true})
	}
	// Re-assert any existing values so the merged class agrees.
	for _, key := range []int{key1, key2} {
		if v, ok := a.values[key]; ok {
			if err := a.Assign(key, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Classes returns the equivalence classes, each sorted ascending, in a
// deterministic order.
func (a *Assignment) Classes() [][]int {
	classes := make([][]int, 0, len(a.classes))
	for _, class := range a.classes {
		keys := make([]int, 0, len(class))
		for k := range class {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		classes = append(classes, keys)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i][0] < classes[j][0] })
	return classes
}

// Class returns the sorted equivalence class containing the key, or nil.
func (a *Assignment) Class(key int) []int {
	class := a.class(key)
	if class == nil {
		return nil
	}
	keys := make([]int, 0, len(class))
	for k := range class {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (a *Assignment) class(key int) map[int]bool {
	if i := a.classIndex(key); i >= 0 {
		return a.classes[i]
	}
	return nil
}

func (a *Assignment) classIndex(key int) int {
	for i, class := range a.classes {
		if class[key] {
			return i
		}
	}
	return -1
}

func (a *Assignment) String() string {
	var pairs []string
	for _, k := range a.Keys() {
		pairs = append(pairs, fmt.Sprintf("%d=%s", k, a.values[k]))
	}
	var classes []string
	for _, class := range a.Classes() {
		parts := make([]string, len(class))
		for i, k := range class {
			parts[i] = fmt.Sprintf("%d", k)
		}
		classes = append(classes, "("+strings.Join(parts, ",")+")")
	}
	return "<" + strings.Join(pairs, ", ") + " | [" + strings.Join(classes, ",") + "]>"
}
