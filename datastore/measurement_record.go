package datastore

import (
	"encoding/json"
	"errors"

	"github.com/smartcontractkit/measurement-framework/field"
	"github.com/smartcontractkit/measurement-framework/measure"
)

var (
	// ErrMeasurementNotFound is returned when no record matches a key.
	ErrMeasurementNotFound = errors.New("no measurement record can be found for the provided key")

	// ErrMeasurementExists is returned when a record with the same key is already stored.
	ErrMeasurementExists = errors.New("a measurement record with the supplied key already exists")
)

// MeasurementRecord is a stored measurement together with the entity and attribute it belongs to.
// Quantity is nil for an attribute without a value.
type MeasurementRecord struct {
	Subject  string
	Field    string
	Quantity measure.Quantity
	Labels   LabelSet
}

// MeasurementRecord implements the UniqueRecord interface.
var _ UniqueRecord[MeasurementKey, MeasurementRecord] = MeasurementRecord{}

// Key returns the MeasurementKey of the record.
func (r MeasurementRecord) Key() MeasurementKey {
	return NewMeasurementKey(r.Subject, r.Field)
}

// Clone returns a copy of the record. Quantities are immutable and shared.
func (r MeasurementRecord) Clone() MeasurementRecord {
	return MeasurementRecord{
		Subject:  r.Subject,
		Field:    r.Field,
		Quantity: r.Quantity,
		Labels:   r.Labels.Clone(),
	}
}

// Row returns the stored form of the record quantity.
func (r MeasurementRecord) Row() field.Row {
	return field.Columns{Name: r.Field}.Encode(r.Quantity)
}

// Value returns the record quantity as a convertible value. It is false for an empty record or
// an unknown measure.
func (r MeasurementRecord) Value() (measure.Value, bool) {
	v, ok := r.Quantity.(measure.Value)

	return v, ok
}

// recordJSON is the serialised form of a MeasurementRecord: the measurement is kept in its
// stored form so a record written with one registry can be read back with another.
type recordJSON struct {
	Subject     string    `json:"subject"`
	Field       string    `json:"field"`
	Measurement field.Row `json:"measurement"`
	Labels      LabelSet  `json:"labels"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r MeasurementRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Subject:     r.Subject,
		Field:       r.Field,
		Measurement: r.Row(),
		Labels:      r.Labels,
	})
}

// UnmarshalJSON decodes a record with the default registry. Use DecodeRecord to read records of
// custom measures.
//
// Implements the json.Unmarshaler interface.
func (r *MeasurementRecord) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeRecord(data, nil)
	if err != nil {
		return err
	}
	*r = decoded

	return nil
}

// DecodeRecord decodes a serialised record, resolving its measure in reg. A nil reg uses
// measure.Default().
func DecodeRecord(data []byte, reg *measure.Registry) (MeasurementRecord, error) {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return MeasurementRecord{}, err
	}

	return raw.record(reg)
}

func (raw recordJSON) record(reg *measure.Registry) (MeasurementRecord, error) {
	q, err := field.NewColumns(raw.Field, reg).Decode(raw.Measurement)
	if err != nil {
		return MeasurementRecord{}, err
	}

	return MeasurementRecord{
		Subject:  raw.Subject,
		Field:    raw.Field,
		Quantity: q,
		Labels:   raw.Labels,
	}, nil
}
