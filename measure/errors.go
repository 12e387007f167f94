package measure

import "errors"

var (
	// ErrUnknownUnit is returned when a unit string resolves to no unit of a measure.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownMeasure is returned when a measure name is not registered.
	ErrUnknownMeasure = errors.New("unknown measure")

	// ErrIncompatibleMeasure is returned when two values of different measures are combined or compared.
	ErrIncompatibleMeasure = errors.New("incompatible measures")

	// ErrDivisionByZero is returned when a value is divided by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNotConvertible is returned when an Unknown measurement is asked for a conversion.
	ErrNotConvertible = errors.New("unknown measures cannot be converted to other units")

	// ErrNoMeasure is returned when the zero Value is used where a measure is required.
	ErrNoMeasure = errors.New("value has no measure")

	// ErrInvalidMeasurement is returned when text cannot be read as a measurement.
	ErrInvalidMeasurement = errors.New("invalid measurement")

	// ErrInvalidDefinition is returned for a measure definition that cannot be built.
	ErrInvalidDefinition = errors.New("invalid measure definition")
)
