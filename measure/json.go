package measure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// jsonValue is the wire representation of a Value: its magnitude in its default unit.
type jsonValue struct {
	Unit  string          `json:"unit"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes v as {"unit": "mi", "value": 2}.
//
// Implements the json.Marshaler interface.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.measure == nil {
		return []byte("null"), nil
	}

	return json.Marshal(struct {
		Unit  string  `json:"unit"`
		Value float64 `json:"value"`
	}{Unit: v.unit, Value: v.Magnitude()})
}

// UnmarshalJSON decodes {"unit": ..., "value": ...} into v. The measure must already be set,
// typically from m.Zero(), since the wire format does not carry it.
//
// Implements the json.Unmarshaler interface.
func (v *Value) UnmarshalJSON(data []byte) error {
	if v.measure == nil {
		return fmt.Errorf("%w: decode into a value created from its measure", ErrNoMeasure)
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = v.measure.Zero()
		return nil
	}
	decoded, err := v.measure.DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = decoded

	return nil
}

// DecodeJSON decodes the wire representation of a value of m. The unit must be one of the unit
// keys listed by m.Units(); aliases and case variants are rejected. The value may be a JSON
// number or a numeric string.
func (m *Measure) DecodeJSON(data []byte) (Value, error) {
	var raw jsonValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrInvalidMeasurement, err)
	}
	if !m.hasKey(raw.Unit) {
		return Value{}, fmt.Errorf("%w: Invalid unit. %s is not a valid %s unit", ErrUnknownUnit, raw.Unit, m.name)
	}

	text := strings.Trim(strings.TrimSpace(string(raw.Value)), `"`)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: Invalid value. %s is not a valid %s value", ErrInvalidMeasurement, text, m.name)
	}

	return m.New(f, raw.Unit)
}
