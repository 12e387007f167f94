package datastore

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when a key has an empty subject or field.
var ErrInvalidKey = errors.New("measurement key needs a subject and a field")

// MeasurementKey identifies one measurement: the attribute Field of the entity Subject, e.g.
// subject "tower-7" and field "height".
type MeasurementKey struct {
	Subject string `json:"subject"`
	Field   string `json:"field"`
}

// MeasurementKey implements the Comparable interface.
var _ Comparable[MeasurementKey] = MeasurementKey{}

// NewMeasurementKey returns the key of field on subject.
func NewMeasurementKey(subject, field string) MeasurementKey {
	return MeasurementKey{Subject: subject, Field: field}
}

// Equals returns true if the two keys are equal.
func (k MeasurementKey) Equals(other MeasurementKey) bool {
	return k.Subject == other.Subject && k.Field == other.Field
}

// Validate returns ErrInvalidKey if the subject or the field is empty.
func (k MeasurementKey) Validate() error {
	if k.Subject == "" || k.Field == "" {
		return fmt.Errorf("%w: %q", ErrInvalidKey, k.String())
	}

	return nil
}

// String returns the key as "subject.field".
//
// Implements the fmt.Stringer interface.
func (k MeasurementKey) String() string {
	return k.Subject + "." + k.Field
}
