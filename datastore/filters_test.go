package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/measurement-framework/field"
	"github.com/smartcontractkit/measurement-framework/measure"
)

var (
	towerHeight = MeasurementRecord{
		Subject:  "tower-7",
		Field:    "height",
		Quantity: measure.Distance.MustNew(120, "m"),
		Labels:   NewLabelSet("surveyed", "official"),
	}
	towerWeight = MeasurementRecord{
		Subject:  "tower-7",
		Field:    "weight",
		Quantity: measure.Weight.MustNew(7300, "tonne"),
		Labels:   NewLabelSet("estimated"),
	}
	mastHeight = MeasurementRecord{
		Subject:  "mast-2",
		Field:    "height",
		Quantity: measure.Distance.MustNew(300, "ft"),
		Labels:   NewLabelSet("surveyed"),
	}
	roadLength = MeasurementRecord{
		Subject:  "road-1",
		Field:    "length",
		Quantity: measure.Unknown{MeasureName: "ImperialRussian", OriginalUnit: "versta", Value: 1066.8},
	}
	emptyRecord = MeasurementRecord{Subject: "mast-2", Field: "weight"}
)

func TestFilters(t *testing.T) {
	t.Parallel()

	records := []MeasurementRecord{towerHeight, towerWeight, mastHeight, roadLength, emptyRecord}
	heightRange, err := field.NewRange(measure.Distance, measure.Distance.MustNew(100, "m"), measure.Value{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		filters []FilterFunc[MeasurementKey, MeasurementRecord]
		want    []MeasurementKey
	}{
		{
			name:    "by subject",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementBySubject("tower-7")},
			want:    []MeasurementKey{towerHeight.Key(), towerWeight.Key()},
		},
		{
			name:    "by field",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementByField("height")},
			want:    []MeasurementKey{towerHeight.Key(), mastHeight.Key()},
		},
		{
			name:    "by measure",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementByMeasure("Weight")},
			want:    []MeasurementKey{towerWeight.Key()},
		},
		{
			name:    "by unknown measure",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementByMeasure("ImperialRussian")},
			want:    []MeasurementKey{roadLength.Key()},
		},
		{
			name:    "by labels",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementByLabels("surveyed", "official")},
			want:    []MeasurementKey{towerHeight.Key()},
		},
		{
			name:    "in range",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementInRange(heightRange)},
			want:    []MeasurementKey{towerHeight.Key()},
		},
		{
			name: "composed",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{
				MeasurementByField("height"),
				MeasurementByLabels("surveyed"),
				MeasurementBySubject("mast-2"),
			},
			want: []MeasurementKey{mastHeight.Key()},
		},
		{
			name:    "no match",
			filters: []FilterFunc[MeasurementKey, MeasurementRecord]{MeasurementBySubject("bridge-9")},
			want:    []MeasurementKey{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := records
			for _, filter := range tt.filters {
				got = filter(got)
			}

			keys := make([]MeasurementKey, 0, len(got))
			for _, r := range got {
				keys = append(keys, r.Key())
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}
