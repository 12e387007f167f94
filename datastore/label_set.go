package datastore

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// LabelSet is the set of free-form tags attached to a measurement record, e.g. "surveyed" or
// "sensor:front". Labels are trimmed of surrounding whitespace and blank labels are dropped, so
// labels read from flags or storage compare equal to the ones written.
//
// The zero LabelSet is empty and ready to use.
type LabelSet struct {
	elements map[string]struct{}
}

// NewLabelSet returns a LabelSet holding labels.
func NewLabelSet(labels ...string) LabelSet {
	var s LabelSet
	s.Add(labels...)

	return s
}

// Add inserts labels into the set.
func (s *LabelSet) Add(labels ...string) {
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if s.elements == nil {
			s.elements = make(map[string]struct{}, len(labels))
		}
		s.elements[l] = struct{}{}
	}
}

// Remove deletes labels from the set.
func (s *LabelSet) Remove(labels ...string) {
	for _, l := range labels {
		delete(s.elements, strings.TrimSpace(l))
	}
}

// Contains reports whether label is in the set.
func (s *LabelSet) Contains(label string) bool {
	_, ok := s.elements[strings.TrimSpace(label)]

	return ok
}

// ContainsAll reports whether every given label is in the set. It is true when no label is given.
func (s *LabelSet) ContainsAll(labels ...string) bool {
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if !s.Contains(l) {
			return false
		}
	}

	return true
}

// Len returns the number of labels.
func (s *LabelSet) Len() int {
	return len(s.elements)
}

// List returns the labels sorted.
func (s *LabelSet) List() []string {
	if len(s.elements) == 0 {
		return []string{}
	}

	return slices.Sorted(maps.Keys(s.elements))
}

// String returns the sorted labels separated by spaces.
func (s *LabelSet) String() string {
	return strings.Join(s.List(), " ")
}

// Equal reports whether s and other hold the same labels.
func (s *LabelSet) Equal(other LabelSet) bool {
	return maps.Equal(s.elements, other.elements)
}

// Clone returns a copy of s that shares no state with it.
func (s *LabelSet) Clone() LabelSet {
	return LabelSet{elements: maps.Clone(s.elements)}
}

// MarshalJSON writes the labels as a sorted JSON array.
func (s LabelSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON reads a JSON array of labels. null reads as the empty set.
func (s *LabelSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewLabelSet(labels...)

	return nil
}
