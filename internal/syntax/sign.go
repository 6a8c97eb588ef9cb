package syntax

import "github.com/jward/cadenza/internal/semantics"

// Sign is a category paired with its semantic interpretation: the unit a
// chart parser manipulates.
//
// A sign keeps a note of which rules have been attempted against which
// other signs, with the attempt's outcome, so a parser never re-derives
// the same combination within a cell. The memo is owned exclusively by the
// sign: a sign under extension must not be shared across goroutines.
type Sign struct {
	Category  Category
	Semantics *semantics.Form

	attempts map[attemptKey]*Sign
}

type attemptKey struct {
	rule  any
	other *Sign
}

// NewSign builds a sign from a category and its interpretation.
func NewSign(category Category, sem *semantics.Form) *Sign {
	return &Sign{Category: category, Semantics: sem}
}

// Copy duplicates the category and semantics. The rule memo is not
// copied: it tracks attempts against this particular instance.
func (s *Sign) Copy() *Sign {
	return NewSign(s.Category.Copy(), s.Semantics.Copy())
}

// Equals compares categories structurally; semantics need only be
// alpha-equivalent.
func (s *Sign) Equals(other *Sign) bool {
	return s.Category.Equals(other.Category) &&
		s.Semantics.AlphaEquivalent(other.Semantics)
}

// Attempted returns the memoized outcome of applying rule to this sign
// (as the left input) and the other instance, if the pair was tried
// before.
func (s *Sign) Attempted(rule any, other *Sign) (*Sign, bool) {
	result, ok := s.attempts[attemptKey{rule: rule, other: other}]
	return result, ok
}

// NoteAttempt records the outcome of a rule attempt, successful or not,
// keyed by the rule's identity and the other input's identity.
func (s *Sign) NoteAttempt(rule any, other *Sign, result *Sign) {
	if s.attempts == nil {
		s.attempts = make(map[attemptKey]*Sign)
	}
	s.attempts[attemptKey{rule: rule, other: other}] = result
}

func (s *Sign) String() string {
	return s.Category.String() + " : " + s.Semantics.String()
}
