package sqlstore

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smartcontractkit/measurement-framework/field"
)

// DefaultTable is the table measurements are stored in unless configured otherwise.
const DefaultTable = "measurements"

// measurementAttribute names the three measurement columns: measurement_measure,
// measurement_unit and measurement_value.
const measurementAttribute = "measurement"

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Every column is text so the same schema runs on postgres and on ramsql. The standard value is
// written with strconv and reads back bit for bit.
const schemaMeasurements = `
		CREATE TABLE IF NOT EXISTS %[1]s (
			subject              TEXT NOT NULL,
			field                TEXT NOT NULL,
			%[2]s                TEXT NOT NULL,
			%[3]s                TEXT NOT NULL,
			%[4]s                TEXT NOT NULL,
			labels               TEXT NOT NULL
		);`

// queries are the statements of one measurements table.
type queries struct {
	schema string
	byKey  string
	all    string
	add    string
	update string
	delete string
}

func newQueries(table string) (queries, error) {
	if !identifier.MatchString(table) {
		return queries{}, fmt.Errorf("invalid table name %q", table)
	}

	cols := field.Columns{Name: measurementAttribute}
	measureCol, unitCol, valueCol := cols.MeasureColumn(), cols.UnitColumn(), cols.ValueColumn()
	selectCols := strings.Join([]string{"subject", "field", measureCol, unitCol, valueCol, "labels"}, ", ")

	return queries{
		schema: fmt.Sprintf(schemaMeasurements, table, measureCol, unitCol, valueCol),
		byKey: fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE subject = $1 AND field = $2`, selectCols, table),
		all: fmt.Sprintf(`
		SELECT %s FROM %s`, selectCols, table),
		add: fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`, table, selectCols),
		update: fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, labels = $6
		WHERE subject = $1 AND field = $2`, table, measureCol, unitCol, valueCol),
		delete: fmt.Sprintf(`
		DELETE FROM %s
		WHERE subject = $1 AND field = $2`, table),
	}, nil
}
