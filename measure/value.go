package measure

import (
	"cmp"
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Quantity is a stored or computed measurement: either a convertible Value or an Unknown.
type Quantity interface {
	fmt.Stringer

	// Parts returns the measure name (with its standard unit), the original unit and the
	// magnitude in the standard unit.
	Parts() Parts
}

var (
	_ Quantity = Value{}
	_ Quantity = Unknown{}
)

// Value is an immutable measurement. The magnitude is held in the standard unit of the measure;
// unit is the default unit the value was created in and is displayed with.
type Value struct {
	measure  *Measure
	standard float64
	unit     string
}

// Measure returns the measure of v, or nil for the zero Value.
func (v Value) Measure() *Measure { return v.measure }

// Standard returns the magnitude of v in the standard unit.
func (v Value) Standard() float64 { return v.standard }

// Unit returns the default unit key of v.
func (v Value) Unit() string { return v.unit }

// IsValid reports whether v carries a measure.
func (v Value) IsValid() bool { return v.measure != nil }

// IsZero reports whether the magnitude of v is zero.
func (v Value) IsZero() bool { return v.standard == 0 }

// Magnitude returns the magnitude of v in its default unit.
func (v Value) Magnitude() float64 {
	if v.measure == nil {
		return 0
	}
	u, err := v.measure.Unit(v.unit)
	if err != nil {
		return v.standard
	}

	return u.FromStandard(v.standard)
}

// In returns the magnitude of v expressed in unit.
func (v Value) In(unit string) (float64, error) {
	if v.measure == nil {
		return 0, ErrNoMeasure
	}
	u, err := v.measure.Unit(unit)
	if err != nil {
		return 0, err
	}

	return u.FromStandard(v.standard), nil
}

// MustIn is like In but panics on an unknown unit.
func (v Value) MustIn(unit string) float64 {
	f, err := v.In(unit)
	if err != nil {
		panic(err)
	}

	return f
}

// WithUnit returns the same quantity with unit as its default unit.
func (v Value) WithUnit(unit string) (Value, error) {
	if v.measure == nil {
		return Value{}, ErrNoMeasure
	}
	key, err := v.measure.Resolve(unit)
	if err != nil {
		return Value{}, err
	}
	v.unit = key

	return v, nil
}

// Parts implements Quantity.
func (v Value) Parts() Parts {
	if v.measure == nil {
		return Parts{}
	}

	return Parts{
		Measure: v.measure.name + "(" + v.measure.standard + ")",
		Unit:    v.unit,
		Value:   v.standard,
	}
}

// Add returns v + other in the default unit of v.
func (v Value) Add(other Value) (Value, error) {
	if err := v.compatible(other, "added to"); err != nil {
		return Value{}, err
	}
	v.standard += other.standard

	return v, nil
}

// Sub returns v - other in the default unit of v.
func (v Value) Sub(other Value) (Value, error) {
	if err := v.compatible(other, "subtracted from"); err != nil {
		return Value{}, err
	}
	v.standard -= other.standard

	return v, nil
}

// Mul returns v scaled by k.
func (v Value) Mul(k float64) Value {
	v.standard *= k

	return v
}

// Div returns v divided by k.
func (v Value) Div(k float64) (Value, error) {
	if k == 0 {
		return Value{}, ErrDivisionByZero
	}
	v.standard /= k

	return v, nil
}

// Ratio returns v / other for two values of the same measure.
func (v Value) Ratio(other Value) (float64, error) {
	if err := v.compatible(other, "divided by"); err != nil {
		return 0, err
	}
	if other.standard == 0 {
		return 0, ErrDivisionByZero
	}

	return v.standard / other.standard, nil
}

// Neg returns -v.
func (v Value) Neg() Value {
	v.standard = -v.standard

	return v
}

// Abs returns |v|.
func (v Value) Abs() Value {
	if v.standard < 0 {
		v.standard = -v.standard
	}

	return v
}

// Times returns v multiplied by a number of any integer or float type.
func Times[N constraints.Integer | constraints.Float](v Value, n N) Value {
	return v.Mul(float64(n))
}

// Sum adds up values of the same measure. The result takes the default unit of the first value.
func Sum(values ...Value) (Value, error) {
	if len(values) == 0 {
		return Value{}, ErrNoMeasure
	}
	total := values[0]
	for _, val := range values[1:] {
		var err error
		if total, err = total.Add(val); err != nil {
			return Value{}, err
		}
	}

	return total, nil
}

// Equal reports whether v and other have the same measure and the same standard magnitude.
func (v Value) Equal(other Value) bool {
	return v.measure.Same(other.measure) && v.standard == other.standard
}

// Compare returns -1, 0 or 1 as v is less than, equal to or greater than other.
func (v Value) Compare(other Value) (int, error) {
	if err := v.compatible(other, "compared with"); err != nil {
		return 0, err
	}

	return cmp.Compare(v.standard, other.standard), nil
}

// Less reports whether v is strictly less than other. Values of different measures are never
// ordered.
func (v Value) Less(other Value) bool {
	c, err := v.Compare(other)

	return err == nil && c < 0
}

// String returns the magnitude and the default unit, e.g. "20 g".
func (v Value) String() string {
	if v.measure == nil {
		return ""
	}

	return formatFloat(v.Magnitude()) + " " + v.unit
}

// GoString returns the representation of v, e.g. "Weight(g=20)".
func (v Value) GoString() string {
	if v.measure == nil {
		return "Value{}"
	}

	return fmt.Sprintf("%s(%s=%s)", v.measure.name, v.unit, formatFloat(v.Magnitude()))
}

func (v Value) compatible(other Value, verb string) error {
	if v.measure == nil || other.measure == nil {
		return ErrNoMeasure
	}
	if !v.measure.Same(other.measure) {
		return fmt.Errorf("%w: %s must be %s %s, got %s", ErrIncompatibleMeasure, v.measure.name, verb, v.measure.name, other.measure.name)
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Parts is the storage decomposition of a Quantity.
type Parts struct {
	// Measure is the measure name with its standard unit, e.g. "Weight(g)".
	Measure string `json:"measure"`
	// Unit is the original unit of the measurement.
	Unit string `json:"unit"`
	// Value is the magnitude in the standard unit.
	Value float64 `json:"value"`
}

// IsZero reports whether p holds no measurement.
func (p Parts) IsZero() bool {
	return p.Measure == "" && p.Unit == "" && p.Value == 0
}
