package field

import (
	"errors"
	"fmt"

	"github.com/smartcontractkit/measurement-framework/measure"
)

var (
	// ErrInvalidRange is returned when a range bound is not a value of the field's measure.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfRange is returned when a value falls outside the bounds of a Range.
	ErrOutOfRange = errors.New("value out of range")
)

// Range bounds the values of a measure. A zero Value bound is open.
type Range struct {
	Min measure.Value
	Max measure.Value
}

// NewRange returns a Range over m. Each bound must be the zero Value or a value of m.
func NewRange(m *measure.Measure, lo, hi measure.Value) (Range, error) {
	if lo.IsValid() && !lo.Measure().Same(m) {
		return Range{}, fmt.Errorf("%w: \"min_value\" must be a measure of %s", ErrInvalidRange, m.Name())
	}
	if hi.IsValid() && !hi.Measure().Same(m) {
		return Range{}, fmt.Errorf("%w: \"max_value\" must be a measure of %s", ErrInvalidRange, m.Name())
	}
	if lo.IsValid() && hi.IsValid() && hi.Less(lo) {
		return Range{}, fmt.Errorf("%w: min_value %s is greater than max_value %s", ErrInvalidRange, lo, hi)
	}

	return Range{Min: lo, Max: hi}, nil
}

// IsOpen reports whether the range has no bounds.
func (r Range) IsOpen() bool {
	return !r.Min.IsValid() && !r.Max.IsValid()
}

// Check returns an ErrOutOfRange error if v lies outside r. Bounds are inclusive.
func (r Range) Check(v measure.Value) error {
	if r.Min.IsValid() {
		c, err := v.Compare(r.Min)
		if err != nil {
			return err
		}
		if c < 0 {
			return fmt.Errorf("%w: Ensure this value is greater than or equal to %s.", ErrOutOfRange, r.Min)
		}
	}
	if r.Max.IsValid() {
		c, err := v.Compare(r.Max)
		if err != nil {
			return err
		}
		if c > 0 {
			return fmt.Errorf("%w: Ensure this value is less than or equal to %s.", ErrOutOfRange, r.Max)
		}
	}

	return nil
}
