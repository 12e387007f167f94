package datastore

import (
	"github.com/smartcontractkit/measurement-framework/field"
	"github.com/smartcontractkit/measurement-framework/measure"
)

// The following functions are a default set of filters that can be used with the Filter method of
// the measurement stores. These filters are composable and can be combined to create more complex
// filters. For example, to find the heights of one subject:
//
//	records := store.Filter(
//		MeasurementBySubject("tower-7"),
//		MeasurementByField("height"),
//	)
var _ FilterFunc[MeasurementKey, MeasurementRecord] = MeasurementBySubject("")
var _ FilterFunc[MeasurementKey, MeasurementRecord] = MeasurementByField("")
var _ FilterFunc[MeasurementKey, MeasurementRecord] = MeasurementByMeasure("")
var _ FilterFunc[MeasurementKey, MeasurementRecord] = MeasurementByLabels()
var _ FilterFunc[MeasurementKey, MeasurementRecord] = MeasurementInRange(field.Range{})

// measurementFilter returns a filter that includes records for which the predicate returns true.
func measurementFilter(predicate func(record MeasurementRecord) bool) FilterFunc[MeasurementKey, MeasurementRecord] {
	return func(records []MeasurementRecord) []MeasurementRecord {
		filtered := make([]MeasurementRecord, 0, len(records))
		for _, record := range records {
			if predicate(record) {
				filtered = append(filtered, record)
			}
		}

		return filtered
	}
}

// MeasurementBySubject returns a filter that only includes records of the provided subject.
func MeasurementBySubject(subject string) FilterFunc[MeasurementKey, MeasurementRecord] {
	return measurementFilter(func(record MeasurementRecord) bool {
		return record.Subject == subject
	})
}

// MeasurementByField returns a filter that only includes records of the provided field.
func MeasurementByField(name string) FilterFunc[MeasurementKey, MeasurementRecord] {
	return measurementFilter(func(record MeasurementRecord) bool {
		return record.Field == name
	})
}

// MeasurementByMeasure returns a filter that only includes records whose quantity belongs to the
// named measure. Unknown measurements match on their stored measure name.
func MeasurementByMeasure(name string) FilterFunc[MeasurementKey, MeasurementRecord] {
	return measurementFilter(func(record MeasurementRecord) bool {
		switch q := record.Quantity.(type) {
		case measure.Value:
			return q.IsValid() && q.Measure().Name() == name
		case measure.Unknown:
			return q.MeasureName == name
		default:
			return false
		}
	})
}

// MeasurementByLabels returns a filter that only includes records carrying every provided label.
func MeasurementByLabels(labels ...string) FilterFunc[MeasurementKey, MeasurementRecord] {
	return measurementFilter(func(record MeasurementRecord) bool {
		return record.Labels.ContainsAll(labels...)
	})
}

// MeasurementInRange returns a filter that only includes convertible values within r. Values of
// another measure than the bounds are left out.
func MeasurementInRange(r field.Range) FilterFunc[MeasurementKey, MeasurementRecord] {
	return measurementFilter(func(record MeasurementRecord) bool {
		v, ok := record.Value()
		if !ok || !v.IsValid() {
			return false
		}

		return r.Check(v) == nil
	})
}
