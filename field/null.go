package field

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/smartcontractkit/measurement-framework/measure"
)

var (
	_ sql.Scanner   = (*NullValue)(nil)
	_ driver.Valuer = NullValue{}
)

// NullValue is a nullable measurement column of a Float field. It scans the stored standard
// magnitude and writes it back.
type NullValue struct {
	Field       *Float
	Measurement measure.Value
	Valid       bool
}

// Null returns an invalid NullValue bound to f, ready to be scanned into.
func (f *Float) Null() *NullValue {
	return &NullValue{Field: f}
}

// Scan implements the sql.Scanner interface.
func (n *NullValue) Scan(src any) error {
	if n.Field == nil {
		return errors.New("NullValue has no field")
	}
	if src == nil {
		n.Measurement, n.Valid = measure.Value{}, false
		return nil
	}
	f, err := toFloat(src)
	if err != nil {
		return err
	}
	n.Measurement, n.Valid = n.Field.FromDB(f), true

	return nil
}

// Value implements the driver.Valuer interface.
func (n NullValue) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	if n.Field == nil {
		return n.Measurement.Standard(), nil
	}

	return n.Field.Prep(n.Measurement)
}
