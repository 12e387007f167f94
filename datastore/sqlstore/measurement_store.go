package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/field"
	"github.com/smartcontractkit/measurement-framework/measure"
)

// measurementStore keeps records addressable by subject and field. Uniqueness of the key is
// checked before every write, so concurrent writers must serialise through WithTransaction.
type measurementStore struct {
	db       *dbController
	queries  queries
	registry *measure.Registry
}

var _ datastore.MutableMeasurementStoreV2 = &measurementStore{}

func (s *measurementStore) Get(ctx context.Context, key datastore.MeasurementKey) (datastore.MeasurementRecord, error) {
	records, err := s.query(ctx, s.queries.byKey, key.Subject, key.Field)
	if err != nil {
		return datastore.MeasurementRecord{}, err
	}

	switch len(records) {
	case 0:
		return datastore.MeasurementRecord{}, datastore.ErrMeasurementNotFound
	case 1:
		return records[0], nil
	default:
		return datastore.MeasurementRecord{}, fmt.Errorf("%d measurement records found for %s", len(records), key)
	}
}

// Fetch returns every record ordered by subject and field.
func (s *measurementStore) Fetch(ctx context.Context) ([]datastore.MeasurementRecord, error) {
	records, err := s.query(ctx, s.queries.all)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b datastore.MeasurementRecord) int {
		return strings.Compare(a.Key().String(), b.Key().String())
	})

	return records, nil
}

func (s *measurementStore) Filter(ctx context.Context, filters ...datastore.FilterFunc[datastore.MeasurementKey, datastore.MeasurementRecord]) ([]datastore.MeasurementRecord, error) {
	records, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	for _, filter := range filters {
		records = filter(records)
	}

	return records, nil
}

func (s *measurementStore) Add(ctx context.Context, record datastore.MeasurementRecord) error {
	if err := record.Key().Validate(); err != nil {
		return err
	}
	found, err := s.exists(ctx, record.Key())
	if err != nil {
		return err
	}
	if found {
		return datastore.ErrMeasurementExists
	}

	return s.exec(ctx, s.queries.add, record)
}

func (s *measurementStore) Upsert(ctx context.Context, record datastore.MeasurementRecord) error {
	if err := record.Key().Validate(); err != nil {
		return err
	}
	found, err := s.exists(ctx, record.Key())
	if err != nil {
		return err
	}
	if found {
		return s.exec(ctx, s.queries.update, record)
	}

	return s.exec(ctx, s.queries.add, record)
}

func (s *measurementStore) Update(ctx context.Context, record datastore.MeasurementRecord) error {
	found, err := s.exists(ctx, record.Key())
	if err != nil {
		return err
	}
	if !found {
		return datastore.ErrMeasurementNotFound
	}

	return s.exec(ctx, s.queries.update, record)
}

func (s *measurementStore) Delete(ctx context.Context, key datastore.MeasurementKey) error {
	result, err := s.db.ExecContext(ctx, s.queries.delete, key.Subject, key.Field)
	if err != nil {
		return fmt.Errorf("failed to delete measurement %s: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return datastore.ErrMeasurementNotFound
	}

	return nil
}

func (s *measurementStore) exists(ctx context.Context, key datastore.MeasurementKey) (bool, error) {
	_, err := s.Get(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, datastore.ErrMeasurementNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *measurementStore) exec(ctx context.Context, q string, record datastore.MeasurementRecord) error {
	args, err := encodeRecord(record)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("failed to write measurement %s: %w", record.Key(), err)
	}

	return nil
}

func (s *measurementStore) query(ctx context.Context, q string, args ...any) ([]datastore.MeasurementRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	defer func(rows *sql.Rows) {
		if rows != nil {
			_ = rows.Close()
		}
	}(rows)
	if err != nil {
		return nil, err
	}

	records := []datastore.MeasurementRecord{}
	for rows.Next() {
		var subject, fieldName, measureCol, unitCol, valueCol, labelsCol string
		if err := rows.Scan(&subject, &fieldName, &measureCol, &unitCol, &valueCol, &labelsCol); err != nil {
			return nil, err
		}
		record, err := s.decodeRecord(subject, fieldName, measureCol, unitCol, valueCol, labelsCol)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// encodeRecord returns the insert arguments of a record in column order.
func encodeRecord(record datastore.MeasurementRecord) ([]any, error) {
	row := record.Row()
	labels, err := json.Marshal(record.Labels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode labels of %s: %w", record.Key(), err)
	}

	return []any{
		record.Subject,
		record.Field,
		row.Measure,
		row.Unit,
		strconv.FormatFloat(row.Value, 'g', -1, 64),
		string(labels),
	}, nil
}

func (s *measurementStore) decodeRecord(subject, fieldName, measureCol, unitCol, valueCol, labelsCol string) (datastore.MeasurementRecord, error) {
	value, err := strconv.ParseFloat(valueCol, 64)
	if err != nil {
		return datastore.MeasurementRecord{}, fmt.Errorf("invalid stored value %q of %s.%s: %w", valueCol, subject, fieldName, err)
	}
	q, err := field.NewColumns(fieldName, s.registry).Decode(field.Row{Measure: measureCol, Unit: unitCol, Value: value})
	if err != nil {
		return datastore.MeasurementRecord{}, err
	}

	var labels datastore.LabelSet
	if err := json.Unmarshal([]byte(labelsCol), &labels); err != nil {
		return datastore.MeasurementRecord{}, fmt.Errorf("invalid stored labels of %s.%s: %w", subject, fieldName, err)
	}

	return datastore.MeasurementRecord{
		Subject:  subject,
		Field:    fieldName,
		Quantity: q,
		Labels:   labels,
	}, nil
}
