// Package field maps measurement values onto storage columns, either as three columns holding
// the measure, original unit and standard value, or as a single float column bound to one measure.
package field

import (
	"errors"
	"fmt"
	"maps"
	"regexp"

	"github.com/smartcontractkit/measurement-framework/measure"
)

// Column name patterns of the three-column layout.
const (
	MeasureColumnFormat = "%s_measure"
	UnitColumnFormat    = "%s_unit"
	ValueColumnFormat   = "%s_value"
)

// ErrStandardMismatch is returned when a stored measure was written with a different standard unit
// than the registered measure of the same name.
var ErrStandardMismatch = errors.New("standard unit mismatch")

// measureName parses the measure column, e.g. "Weight(g)" or a bare "Weight".
var measureName = regexp.MustCompile(`([a-zA-Z0-9]+)(?:\(([a-zA-Z0-9_]+)\))?`)

// Row is the stored form of one measurement in the three-column layout.
type Row struct {
	Measure string  `json:"measure"`
	Unit    string  `json:"unit"`
	Value   float64 `json:"value"`
}

// IsEmpty reports whether the row holds no measurement.
func (r Row) IsEmpty() bool {
	return r.Measure == "" || r.Unit == ""
}

// Columns maps a measurement attribute onto three storage columns: the measure descriptor, the
// unit the value was created in and the value in the standard unit.
type Columns struct {
	Name     string
	Registry *measure.Registry
}

// NewColumns returns the column mapping of the attribute name. A nil registry uses
// measure.Default().
func NewColumns(name string, r *measure.Registry) Columns {
	if r == nil {
		r = measure.Default()
	}

	return Columns{Name: name, Registry: r}
}

// MeasureColumn returns the name of the measure descriptor column.
func (c Columns) MeasureColumn() string { return fmt.Sprintf(MeasureColumnFormat, c.Name) }

// UnitColumn returns the name of the original unit column.
func (c Columns) UnitColumn() string { return fmt.Sprintf(UnitColumnFormat, c.Name) }

// ValueColumn returns the name of the standard value column.
func (c Columns) ValueColumn() string { return fmt.Sprintf(ValueColumnFormat, c.Name) }

// Names returns the measure, unit and value column names in storage order.
func (c Columns) Names() []string {
	return []string{c.MeasureColumn(), c.UnitColumn(), c.ValueColumn()}
}

// Encode returns the stored form of q. A nil quantity encodes to an empty row.
func (c Columns) Encode(q measure.Quantity) Row {
	if q == nil {
		return Row{}
	}
	p := q.Parts()

	return Row{Measure: p.Measure, Unit: p.Unit, Value: p.Value}
}

// Decode rebuilds the quantity stored in row. It returns nil for an empty row and a
// measure.Unknown when the measure is not registered or the unit is not one of its units.
func (c Columns) Decode(row Row) (measure.Quantity, error) {
	if row.IsEmpty() {
		return nil, nil
	}

	match := measureName.FindStringSubmatch(row.Measure)
	if match == nil {
		return unknown(row, row.Measure), nil
	}
	name, std := match[1], match[2]

	m, err := c.registry().Lookup(name)
	if err != nil {
		return unknown(row, name), nil
	}
	if std != "" && m.StandardUnit() != std {
		return nil, fmt.Errorf("%w: measurement %s base unit %s does not match stored %s",
			ErrStandardMismatch, name, m.StandardUnit(), std)
	}

	v, err := m.Standard(row.Value).WithUnit(row.Unit)
	if err != nil {
		return unknown(row, name), nil
	}

	return v, nil
}

// ExpandFilter rewrites every criterion holding a quantity into the criteria on its three
// columns. Other criteria are copied as they are. The input map is not modified.
func (c Columns) ExpandFilter(criteria map[string]any) map[string]any {
	out := maps.Clone(criteria)
	for key, val := range criteria {
		q, ok := val.(measure.Quantity)
		if !ok {
			continue
		}
		cols := Columns{Name: key, Registry: c.Registry}
		row := cols.Encode(q)
		delete(out, key)
		out[cols.MeasureColumn()] = row.Measure
		out[cols.UnitColumn()] = row.Unit
		out[cols.ValueColumn()] = row.Value
	}

	return out
}

func (c Columns) registry() *measure.Registry {
	if c.Registry == nil {
		return measure.Default()
	}

	return c.Registry
}

func unknown(row Row, name string) measure.Unknown {
	return measure.Unknown{MeasureName: name, OriginalUnit: row.Unit, Value: row.Value}
}
