package symtab

import (
	"strings"

	"github.com/gbztools/gbzasm/pkg/value"
)

// Label is a plain name bound to an arbitrary 16-bit value. Unlike a
// Symbol, a Label carries no scope and is not required to resolve to a
// memory address; it is just a named constant or jump target.
type Label struct {
	Name  string
	Value int
	Expr  *value.Value // literal the label was defined from, when known
}

// IsValidLabelName reports whether s is a well-formed label name: letter
// or underscore leading, then letters, digits, or underscores, at most
// MaxSymbolLength characters. Labels carry no scope affix.
func IsValidLabelName(s string) bool {
	if s == "" || len(s) > MaxSymbolLength || !isLeadingLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isSymbolChar(s[i]) {
			return false
		}
	}
	return true
}

// Is16Bit reports whether the label's value needs a 16-bit operand slot.
// The defining literal's width wins when it is known, so a label defined
// as $$00FF stays 16-bit even though its value fits a byte.
func (l Label) Is16Bit() bool {
	if l.Expr != nil {
		return l.Expr.Descriptor().Limits.Max > 0x100
	}
	return l.Value > 0xFF
}

// LabelStore is a case-insensitive, replace-on-push map of Labels.
type LabelStore struct {
	labels map[string]Label
}

// NewLabelStore returns an empty LabelStore.
func NewLabelStore() *LabelStore {
	return &LabelStore{labels: make(map[string]Label)}
}

func normalizeLabel(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Push adds label to the store. If a label with the same (case-insensitive)
// name already exists, Push only replaces it when replace is true; the
// return value reports whether the store changed.
func (s *LabelStore) Push(label Label, replace bool) bool {
	key := normalizeLabel(label.Name)
	if _, exists := s.labels[key]; exists && !replace {
		return false
	}
	s.labels[key] = label
	return true
}

// Find returns the label named name, if present.
func (s *LabelStore) Find(name string) (Label, bool) {
	l, ok := s.labels[normalizeLabel(name)]
	return l, ok
}

// ValueOf returns the value of the label named name, or ok=false if it is
// not yet defined, the forward-reference case the mnemonic resolver must
// handle by deferring resolution.
func (s *LabelStore) ValueOf(name string) (int, bool) {
	l, ok := s.Find(name)
	if !ok {
		return 0, false
	}
	return l.Value, true
}

// Pop removes the label named name.
func (s *LabelStore) Pop(name string) {
	delete(s.labels, normalizeLabel(name))
}

// Clear removes every label, for a fresh translation unit.
func (s *LabelStore) Clear() {
	s.labels = make(map[string]Label)
}
