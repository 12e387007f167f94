package datastore

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/smartcontractkit/measurement-framework/measure"
)

// MemoryMeasurementStore is an in-memory implementation of the MeasurementStore and
// MutableMeasurementStore interfaces.
type MemoryMeasurementStore struct {
	mu      sync.RWMutex
	Records []MeasurementRecord `json:"records"`
}

// MemoryMeasurementStore implements MeasurementStore interface.
var _ MeasurementStore = &MemoryMeasurementStore{}

// MemoryMeasurementStore implements MutableMeasurementStore interface.
var _ MutableMeasurementStore = &MemoryMeasurementStore{}

// NewMemoryMeasurementStore creates a new, empty MemoryMeasurementStore.
func NewMemoryMeasurementStore() *MemoryMeasurementStore {
	return &MemoryMeasurementStore{Records: []MeasurementRecord{}}
}

// LoadMemoryMeasurementStore decodes a store serialised as {"records": [...]}, resolving the
// measures of its records in reg. A nil reg uses measure.Default().
func LoadMemoryMeasurementStore(data []byte, reg *measure.Registry) (*MemoryMeasurementStore, error) {
	var raw struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	s := NewMemoryMeasurementStore()
	for _, msg := range raw.Records {
		record, err := DecodeRecord(msg, reg)
		if err != nil {
			return nil, err
		}
		if err := s.Add(record); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MarshalJSON serialises the records of the store.
//
// Implements the json.Marshaler interface.
func (s *MemoryMeasurementStore) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return json.Marshal(struct {
		Records []MeasurementRecord `json:"records"`
	}{Records: s.Records})
}

// Get returns the MeasurementRecord for the provided key, or an error if no such record exists.
func (s *MemoryMeasurementStore) Get(key MeasurementKey) (MeasurementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(key)
	if idx == -1 {
		return MeasurementRecord{}, ErrMeasurementNotFound
	}

	return s.Records[idx].Clone(), nil
}

// Fetch returns a copy of all MeasurementRecord in the store.
func (s *MemoryMeasurementStore) Fetch() ([]MeasurementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]MeasurementRecord, 0, len(s.Records))
	for _, record := range s.Records {
		records = append(records, record.Clone())
	}

	return records, nil
}

// Filter returns a copy of all MeasurementRecord in the store that pass all of the provided filters.
// Filters are applied in the order they are provided.
// If no filters are provided, all records are returned.
func (s *MemoryMeasurementStore) Filter(filters ...FilterFunc[MeasurementKey, MeasurementRecord]) []MeasurementRecord {
	records, _ := s.Fetch()
	for _, filter := range filters {
		records = filter(records)
	}

	return records
}

// indexOf returns the index of the record with the provided key, or -1 if no such record exists.
func (s *MemoryMeasurementStore) indexOf(key MeasurementKey) int {
	return slices.IndexFunc(s.Records, func(record MeasurementRecord) bool {
		return record.Key().Equals(key)
	})
}

// Add inserts a new record into the store.
// If a record with the same key already exists, an error is returned.
func (s *MemoryMeasurementStore) Add(record MeasurementRecord) error {
	if err := record.Key().Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(record.Key()) != -1 {
		return ErrMeasurementExists
	}
	s.Records = append(s.Records, record.Clone())

	return nil
}

// Upsert inserts a new record into the store if no record with the same key already exists.
// If a record with the same key already exists, it is replaced.
func (s *MemoryMeasurementStore) Upsert(record MeasurementRecord) error {
	if err := record.Key().Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(record.Key())
	if idx == -1 {
		s.Records = append(s.Records, record.Clone())
		return nil
	}
	s.Records[idx] = record.Clone()

	return nil
}

// Update replaces the existing record with the key of the supplied record.
// If no such record exists, an error is returned.
func (s *MemoryMeasurementStore) Update(record MeasurementRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(record.Key())
	if idx == -1 {
		return ErrMeasurementNotFound
	}
	s.Records[idx] = record.Clone()

	return nil
}

// Delete deletes the record with the provided key, returning an error if no such record exists.
func (s *MemoryMeasurementStore) Delete(key MeasurementKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(key)
	if idx == -1 {
		return ErrMeasurementNotFound
	}
	s.Records = slices.Delete(s.Records, idx, idx+1)

	return nil
}
