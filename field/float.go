package field

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

var (
	// ErrInvalidType is returned when a value of another measure is given to a field.
	ErrInvalidType = errors.New("invalid type")

	// ErrNull is returned when a nullable value is missing from a field that is not nullable.
	ErrNull = errors.New("This field cannot be null.")

	// ErrBlank is returned when an empty value is given to a field that does not allow blanks.
	ErrBlank = errors.New("This field cannot be blank.")
)

// Float stores values of one measure in a single float column holding the standard magnitude.
// Values read back are displayed in the primary unit: the first unit choice, or the standard unit.
type Float struct {
	name        string
	measure     *measure.Measure
	unitChoices []string
	rng         Range
	null        bool
	blank       bool
	separator   string
	lggr        logger.Logger
}

// FloatOption configures a Float field.
type FloatOption func(*floatConfig)

type floatConfig struct {
	unitChoices []string
	min, max    measure.Value
	null, blank bool
	separator   string
	lggr        logger.Logger
}

// WithUnitChoices restricts the units offered by the field. The first choice is the primary unit.
func WithUnitChoices(units ...string) FloatOption {
	return func(c *floatConfig) {
		c.unitChoices = append(c.unitChoices, units...)
	}
}

// WithMin sets the inclusive lower bound.
func WithMin(v measure.Value) FloatOption {
	return func(c *floatConfig) {
		c.min = v
	}
}

// WithMax sets the inclusive upper bound.
func WithMax(v measure.Value) FloatOption {
	return func(c *floatConfig) {
		c.max = v
	}
}

// WithNull allows a missing value.
func WithNull() FloatOption {
	return func(c *floatConfig) {
		c.null = true
	}
}

// WithBlank allows an empty value to pass validation.
func WithBlank() FloatOption {
	return func(c *floatConfig) {
		c.blank = true
	}
}

// WithLabelSeparator sets the separator of bidimensional choice labels, usually the registry's
// Separator(). The default is measure.DefaultLabelSeparator.
func WithLabelSeparator(sep string) FloatOption {
	return func(c *floatConfig) {
		c.separator = sep
	}
}

// WithLogger sets the logger that receives assignment warnings.
func WithLogger(lggr logger.Logger) FloatOption {
	return func(c *floatConfig) {
		c.lggr = lggr
	}
}

// NewFloat returns a single-column field named name bound to m.
func NewFloat(name string, m *measure.Measure, opts ...FloatOption) (*Float, error) {
	if m == nil {
		return nil, fmt.Errorf("field %s takes a measure, none given", name)
	}

	cfg := &floatConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	choices := make([]string, 0, len(cfg.unitChoices))
	for _, u := range cfg.unitChoices {
		key, err := m.Resolve(u)
		if err != nil {
			return nil, fmt.Errorf("field %s unit choice: %w", name, err)
		}
		choices = append(choices, key)
	}

	rng, err := NewRange(m, cfg.min, cfg.max)
	if err != nil {
		return nil, err
	}

	lggr := cfg.lggr
	if lggr == nil {
		lggr = logger.Nop()
	}
	sep := cfg.separator
	if sep == "" {
		sep = measure.DefaultLabelSeparator
	}

	return &Float{
		name:        name,
		measure:     m,
		unitChoices: choices,
		rng:         rng,
		null:        cfg.null,
		blank:       cfg.blank,
		separator:   sep,
		lggr:        lggr,
	}, nil
}

// Name returns the name of the field.
func (f *Float) Name() string { return f.name }

// Measure returns the measure of the field.
func (f *Float) Measure() *measure.Measure { return f.measure }

// Range returns the bounds of the field.
func (f *Float) Range() Range { return f.rng }

// PrimaryUnit returns the unit values are displayed in.
func (f *Float) PrimaryUnit() string {
	if len(f.unitChoices) > 0 {
		return f.unitChoices[0]
	}

	return f.measure.StandardUnit()
}

// Choices returns the selectable units of the field.
func (f *Float) Choices() []measure.Choice {
	all := f.measure.ChoicesSeparated(f.separator)
	if len(f.unitChoices) == 0 {
		return all
	}

	labels := make(map[string]string, len(all))
	for _, c := range all {
		labels[c.Key] = c.Label
	}
	out := make([]measure.Choice, 0, len(f.unitChoices))
	for _, key := range f.unitChoices {
		out = append(out, measure.Choice{Key: key, Label: labels[key]})
	}

	return out
}

// Prep returns the column value for v: nil for nil, the standard magnitude for a value of the
// field's measure, or the number given. Values of other measures are rejected.
func (f *Float) Prep(v any) (driver.Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case measure.Value:
		if !t.IsValid() {
			return nil, nil
		}
		if err := f.checkType(t); err != nil {
			return nil, err
		}

		return t.Standard(), nil
	case *measure.Value:
		if t == nil {
			return nil, nil
		}

		return f.Prep(*t)
	default:
		n, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}

		return n, nil
	}
}

// FromDB returns the value of a stored standard magnitude, displayed in the primary unit.
func (f *Float) FromDB(standard float64) measure.Value {
	v := f.measure.Standard(standard)
	if display, err := v.WithUnit(f.PrimaryUnit()); err == nil {
		return display
	}

	return v
}

// Assign converts v into a value of the field's measure. Values of the measure are kept as they
// are. Raw numbers are taken in the primary unit, which is logged as a warning since the caller
// did not say which unit it meant.
func (f *Float) Assign(v any) (measure.Value, error) {
	switch t := v.(type) {
	case nil:
		return measure.Value{}, nil
	case measure.Value:
		if !t.IsValid() {
			return measure.Value{}, nil
		}
		if err := f.checkType(t); err != nil {
			return measure.Value{}, err
		}

		return t, nil
	case *measure.Value:
		if t == nil {
			return measure.Value{}, nil
		}

		return f.Assign(*t)
	}

	n, err := toFloat(v)
	if err != nil {
		return measure.Value{}, fmt.Errorf("field %s: %w", f.name, err)
	}
	unit := f.PrimaryUnit()
	f.lggr.Warnf("You assigned a float instead of %s to %s, unit was guessed to be %q.", f.measure.Name(), f.name, unit)

	return f.measure.New(n, unit)
}

// Validate checks v against the null, blank and range rules of the field. The zero Value stands
// for a missing value.
func (f *Float) Validate(v measure.Value) error {
	if !v.IsValid() {
		if !f.null {
			return ErrNull
		}
		if !f.blank {
			return ErrBlank
		}

		return nil
	}
	if err := f.checkType(v); err != nil {
		return err
	}

	return f.rng.Check(v)
}

func (f *Float) checkType(v measure.Value) error {
	if v.Measure().Same(f.measure) {
		return nil
	}

	return fmt.Errorf("%w: '%s' (%s) value must be of type %s.", ErrInvalidType, v, v.Measure().Name(), f.measure.Name())
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case []byte:
		return parseFloat(string(n))
	case string:
		return parseFloat(n)
	default:
		return 0, fmt.Errorf("%w: unsupported value %T", ErrInvalidType, v)
	}
}

func parseFloat(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q value must be a float", ErrInvalidType, s)
	}

	return n, nil
}
