package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giveMeasure *Measure
		giveUnit    string
		want        string
		wantErr     string
	}{
		{
			name:        "exact unit key",
			giveMeasure: Distance,
			giveUnit:    "mi",
			want:        "mi",
		},
		{
			name:        "exact alias",
			giveMeasure: Distance,
			giveUnit:    "mile",
			want:        "mi",
		},
		{
			name:        "lower-cased unit key",
			giveMeasure: Distance,
			giveUnit:    "KM",
			want:        "km",
		},
		{
			name:        "lower-cased alias",
			giveMeasure: Distance,
			giveUnit:    "Kilometre",
			want:        "km",
		},
		{
			name:        "SI expanded alias",
			giveMeasure: Distance,
			giveUnit:    "centimeter",
			want:        "cm",
		},
		{
			name:        "case sensitive keys are kept apart",
			giveMeasure: Energy,
			giveUnit:    "C",
			want:        "C",
		},
		{
			name:        "lower-cased mixed case key",
			giveMeasure: Energy,
			giveUnit:    "kj",
			want:        "kJ",
		},
		{
			name:        "bidimensional alias",
			giveMeasure: Speed,
			giveUnit:    "mph",
			want:        "mi__hr",
		},
		{
			name:        "bidimensional compound with aliases on both sides",
			giveMeasure: Speed,
			giveUnit:    "mile__hour",
			want:        "mi__hr",
		},
		{
			name:        "unknown unit",
			giveMeasure: Distance,
			giveUnit:    "versta",
			wantErr:     `Distance has no unit "versta"`,
		},
		{
			name:        "bidimensional without separator",
			giveMeasure: Speed,
			giveUnit:    "mi",
			wantErr:     `Speed has no unit "mi"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.giveMeasure.Resolve(tt.giveUnit)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrUnknownUnit)
				require.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMeasure_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveName  string
		giveStd   string
		giveUnits map[string]Unit
		giveOpts  []Option
		wantErr   string
	}{
		{
			name:      "missing name",
			giveStd:   "m",
			giveUnits: map[string]Unit{"m": Scale(1)},
			wantErr:   "measure name is required",
		},
		{
			name:      "standard is not a unit",
			giveName:  "Length",
			giveStd:   "m",
			giveUnits: map[string]Unit{"ft": Scale(0.3048)},
			wantErr:   `standard unit "m" is not a unit`,
		},
		{
			name:      "standard with a factor",
			giveName:  "Length",
			giveStd:   "ft",
			giveUnits: map[string]Unit{"ft": Scale(0.3048)},
			wantErr:   "must have factor 1",
		},
		{
			name:      "zero factor",
			giveName:  "Length",
			giveStd:   "m",
			giveUnits: map[string]Unit{"m": Scale(1), "x": Scale(0)},
			wantErr:   `unit "x" must have a positive factor`,
		},
		{
			name:      "alias to missing unit",
			giveName:  "Length",
			giveStd:   "m",
			giveUnits: map[string]Unit{"m": Scale(1)},
			giveOpts:  []Option{WithAliases(map[string]string{"foot": "ft"})},
			wantErr:   `alias "foot" points to unknown unit "ft"`,
		},
		{
			name:      "SI unit missing",
			giveName:  "Length",
			giveStd:   "m",
			giveUnits: map[string]Unit{"m": Scale(1)},
			giveOpts:  []Option{WithSI("g")},
			wantErr:   `SI unit "g" is not a unit`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewMeasure(tt.giveName, tt.giveStd, tt.giveUnits, tt.giveOpts...)
			require.ErrorIs(t, err, ErrInvalidDefinition)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMeasure_SIExpansion(t *testing.T) {
	t.Parallel()

	units := Time.Units()
	assert.Contains(t, units, "ms")
	assert.Contains(t, units, "Ps")
	assert.Contains(t, units, "min")

	u, err := Time.Unit("millisecond")
	require.NoError(t, err)
	assert.Equal(t, "ms", u.Key)
	assert.InDelta(t, 1e-3, u.Factor, 1e-15)

	ohm, err := Resistance.Unit("kohm")
	require.NoError(t, err)
	assert.Equal(t, "kΩ", ohm.Label)
}

func TestMeasure_Choices(t *testing.T) {
	t.Parallel()

	choices := Temperature.Choices()
	assert.Equal(t, []Choice{
		{Key: "c", Label: "°C"},
		{Key: "f", Label: "°F"},
		{Key: "k", Label: "°K"},
	}, choices)

	degreePerTime := MustBidimensional("DegreePerTime", Temperature, Time)
	bidim := degreePerTime.Choices()
	assert.Contains(t, bidim, Choice{Key: "c__ms", Label: "°C/ms"})
	assert.Contains(t, bidim, Choice{Key: "c__Ps", Label: "°C/Ps"})
	assert.Len(t, bidim, len(Temperature.Units())*len(Time.Units()))
}

func TestMeasure_Bidimensional(t *testing.T) {
	t.Parallel()

	assert.True(t, Speed.IsBidimensional())
	assert.False(t, Distance.IsBidimensional())
	assert.Equal(t, "m__s", Speed.StandardUnit())
	assert.Same(t, Distance, Speed.Primary())
	assert.Same(t, Time, Speed.Reference())

	u, err := Speed.Unit("km__hr")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0/3600.0, u.Factor, 1e-12)
	assert.Zero(t, u.Offset)

	mph, err := Speed.Unit("mph")
	require.NoError(t, err)
	assert.Equal(t, "mi__hr", mph.Key)
	assert.Equal(t, "mi/hr", mph.Label)

	_, err = NewBidimensional("Nested", Speed, Time)
	require.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = NewBidimensional("Broken", Distance, Time, WithAliases(map[string]string{"x": "furlongs__hr"}))
	require.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestMeasure_UnitAttname(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		measure *Measure
		unit    string
		want    string
		wantErr string
	}{
		{name: "exact key", measure: Distance, unit: "ft", want: "ft"},
		{name: "lower-cased key", measure: Distance, unit: "FT", want: "ft"},
		{name: "exact key before lower-cased", measure: Time, unit: "Ps", want: "Ps"},
		{name: "lower-cased key before alias", measure: Time, unit: "PS", want: "ps"},
		{name: "lower-cased alias", measure: Distance, unit: "Feet", want: "ft"},
		{name: "exact alias", measure: Distance, unit: "metre", want: "m"},
		{name: "compound key", measure: Speed, unit: "mi__hr", want: "mi__hr"},
		{name: "lower-cased compound key", measure: Speed, unit: "MI__HR", want: "mi__hr"},
		{name: "bidimensional alias", measure: Speed, unit: "MPH", want: "mi__hr"},
		{
			name:    "unknown",
			measure: Distance,
			unit:    "parsec",
			wantErr: `could not find a unit keyword associated with "parsec"`,
		},
		{
			name:    "compound with unknown part",
			measure: Speed,
			unit:    "mi__fortnight",
			wantErr: `could not find a unit keyword associated with "mi__fortnight"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.measure.UnitAttname(tt.unit)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrUnknownUnit)
				require.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeasure_Same(t *testing.T) {
	t.Parallel()

	override := MustMeasure("Distance", "m", map[string]Unit{"m": Scale(1), "versta": Scale(1066.8)})
	other := MustMeasure("Distance", "ft", map[string]Unit{"ft": Scale(1)})

	assert.True(t, Distance.Same(Distance))
	assert.True(t, Distance.Same(override))
	assert.False(t, Distance.Same(other))
	assert.False(t, Distance.Same(nil))
}
