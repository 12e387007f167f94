package measure

import "fmt"

// Unknown is a measurement read back from storage whose measure cannot be resolved. It keeps the
// stored parts untouched so it can be written back as-is, but it cannot be converted.
type Unknown struct {
	MeasureName  string
	OriginalUnit string
	Value        float64
}

// Parts implements Quantity.
func (u Unknown) Parts() Parts {
	return Parts{Measure: u.MeasureName, Unit: u.OriginalUnit, Value: u.Value}
}

// In always fails: unknown measures cannot be converted to other units.
func (u Unknown) In(string) (float64, error) {
	return 0, ErrNotConvertible
}

// Equal reports whether u and other share the measure name and the value.
func (u Unknown) Equal(other Unknown) bool {
	return u.MeasureName == other.MeasureName && u.Value == other.Value
}

// Less reports whether u is less than other. Unknowns of different measures are never ordered.
func (u Unknown) Less(other Unknown) bool {
	return u.MeasureName == other.MeasureName && u.Value < other.Value
}

// String implements fmt.Stringer, e.g. "3731.5 ? (ImperialRussian)".
func (u Unknown) String() string {
	return fmt.Sprintf("%s ? (%s)", formatFloat(u.Value), u.MeasureName)
}

// GoString returns the representation of u, e.g. "ImperialRussian(?=3731.5)".
func (u Unknown) GoString() string {
	return fmt.Sprintf("%s(?=%s)", u.MeasureName, formatFloat(u.Value))
}

// EqualQuantity reports whether two quantities are equal: values by measure and standard
// magnitude, unknowns by measure name and value. A Value never equals an Unknown.
func EqualQuantity(a, b Quantity) bool {
	switch x := a.(type) {
	case Value:
		y, ok := b.(Value)
		return ok && x.Equal(y)
	case Unknown:
		y, ok := b.(Unknown)
		return ok && x.Equal(y)
	case nil:
		return b == nil
	default:
		return false
	}
}
