package measure

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Conversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giveMeasure *Measure
		giveValue   float64
		giveUnit    string
		wantUnit    string
		want        float64
	}{
		{"miles to kilometres", Distance, 1, "mi", "km", 1.609344},
		{"feet to inches", Distance, 1, "ft", "inch", 12},
		{"pounds to grams", Weight, 1, "lb", "g", 453.59237},
		{"kilograms to pounds", Weight, 1, "kg", "lb", 2.2046226218},
		{"celsius to fahrenheit", Temperature, 20, "c", "f", 68},
		{"fahrenheit to celsius", Temperature, 212, "f", "c", 100},
		{"celsius to kelvin", Temperature, 0, "c", "k", 273.15},
		{"hours to seconds", Time, 1, "hr", "s", 3600},
		{"mph to kph", Speed, 65, "mph", "km__hr", 104.60736},
		{"m/s to ft/s", Speed, 1, "m__s", "fps", 3.280839895},
		{"litres to gallons", Volume, 3.785411784, "l", "us_g", 1},
		{"acres to hectares", Area, 1, "acre", "ha", 0.40468564224},
		{"kilowatt hours to joules", Energy, 1, "kWh", "MJ", 3.6},
		{"atmospheres to kilopascal", Pressure, 1, "atm", "kPa", 101.325},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := tt.giveMeasure.New(tt.giveValue, tt.giveUnit)
			require.NoError(t, err)

			got, err := v.In(tt.wantUnit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
			assert.InDelta(t, tt.giveValue, v.Magnitude(), 1e-9)
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	v := Weight.MustNew(2, "kg")
	assert.Same(t, Weight, v.Measure())
	assert.Equal(t, "kg", v.Unit())
	assert.InDelta(t, 2000.0, v.Standard(), 1e-9)
	assert.True(t, v.IsValid())
	assert.False(t, v.IsZero())
	assert.True(t, Weight.Zero().IsZero())
	assert.False(t, Value{}.IsValid())

	_, err := Value{}.In("g")
	require.ErrorIs(t, err, ErrNoMeasure)

	_, err = v.In("furlong")
	require.ErrorIs(t, err, ErrUnknownUnit)

	assert.Panics(t, func() { v.MustIn("furlong") })
	assert.Panics(t, func() { Weight.MustNew(1, "furlong") })
}

func TestValue_WithUnit(t *testing.T) {
	t.Parallel()

	v := Distance.MustNew(1000, "m")
	km, err := v.WithUnit("Kilometer")
	require.NoError(t, err)
	assert.Equal(t, "km", km.Unit())
	assert.InDelta(t, 1.0, km.Magnitude(), 1e-12)
	assert.True(t, v.Equal(km))
	assert.Equal(t, "m", v.Unit(), "original value must not change")

	_, err = v.WithUnit("kg")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestValue_Arithmetic(t *testing.T) {
	t.Parallel()

	a := Distance.MustNew(1, "km")
	b := Distance.MustNew(500, "m")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "km", sum.Unit())
	assert.InDelta(t, 1.5, sum.Magnitude(), 1e-12)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, diff.MustIn("m"), 1e-9)

	assert.InDelta(t, 3.0, a.Mul(3).Magnitude(), 1e-12)
	assert.InDelta(t, 4.0, Times(a, int8(4)).Magnitude(), 1e-12)
	assert.InDelta(t, 0.5, Times(a, float32(0.5)).Magnitude(), 1e-12)

	half, err := a.Div(2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, half.Magnitude(), 1e-12)

	_, err = a.Div(0)
	require.ErrorIs(t, err, ErrDivisionByZero)

	ratio, err := a.Ratio(b)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, ratio, 1e-12)

	_, err = a.Ratio(Distance.Zero())
	require.ErrorIs(t, err, ErrDivisionByZero)

	assert.InDelta(t, -1.0, a.Neg().Magnitude(), 1e-12)
	assert.InDelta(t, 1.0, a.Neg().Abs().Magnitude(), 1e-12)

	total, err := Sum(a, b, b)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, total.Magnitude(), 1e-12)

	_, err = Sum()
	require.ErrorIs(t, err, ErrNoMeasure)
}

func TestValue_IncompatibleMeasures(t *testing.T) {
	t.Parallel()

	d := Distance.MustNew(1, "m")
	w := Weight.MustNew(1, "g")

	_, err := d.Add(w)
	require.ErrorIs(t, err, ErrIncompatibleMeasure)
	require.ErrorContains(t, err, "Distance must be added to Distance, got Weight")

	_, err = d.Sub(w)
	require.ErrorIs(t, err, ErrIncompatibleMeasure)

	_, err = d.Ratio(w)
	require.ErrorIs(t, err, ErrIncompatibleMeasure)

	_, err = d.Compare(w)
	require.ErrorIs(t, err, ErrIncompatibleMeasure)

	_, err = Sum(d, w)
	require.ErrorIs(t, err, ErrIncompatibleMeasure)

	assert.False(t, d.Equal(w))
	assert.False(t, d.Less(w))
	assert.False(t, w.Less(d))
}

func TestValue_Comparison(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"same unit", Weight.MustNew(20, "g"), Weight.MustNew(20, "g"), 0},
		{"different units", Weight.MustNew(1, "kg"), Weight.MustNew(1000, "g"), 0},
		{"less", Distance.MustNew(1, "mi"), Distance.MustNew(2, "km"), -1},
		{"greater", Distance.MustNew(1, "yd"), Distance.MustNew(1, "ft"), 1},
		{"bidimensional alias", Speed.MustNew(2, "mph"), Speed.MustNew(2, "mi__hr"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.a.Compare(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == 0, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want < 0, tt.a.Less(tt.b))
		})
	}
}

func TestValue_TemperatureOrdering(t *testing.T) {
	t.Parallel()

	freezing := Temperature.MustNew(0, "c")
	assert.InDelta(t, freezing.Standard(), Temperature.MustNew(32, "f").Standard(), 1e-9)
	assert.True(t, freezing.Less(Temperature.MustNew(1, "c")))
	assert.True(t, Temperature.MustNew(-40, "f").Less(freezing))
	assert.InDelta(t, -40.0, Temperature.MustNew(-40, "f").MustIn("c"), 1e-9)
}

func TestValue_Formatting(t *testing.T) {
	t.Parallel()

	v := Weight.MustNew(20, "g")
	assert.Equal(t, "20 g", v.String())
	assert.Equal(t, "Weight(g=20)", v.GoString())
	assert.Equal(t, "Weight(g=20)", fmt.Sprintf("%#v", v))
	assert.Equal(t, "2.5 m", Distance.MustNew(2.5, "m").String())
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, "Value{}", Value{}.GoString())
}

func TestValue_Parts(t *testing.T) {
	t.Parallel()

	parts := Weight.MustNew(2, "lb").Parts()
	assert.Equal(t, "Weight(g)", parts.Measure)
	assert.Equal(t, "lb", parts.Unit)
	assert.InDelta(t, 907.18474, parts.Value, 1e-9)

	speed := Speed.MustNew(65, "mph").Parts()
	assert.Equal(t, "Speed(m__s)", speed.Measure)
	assert.Equal(t, "mi__hr", speed.Unit)

	assert.True(t, Value{}.Parts().IsZero())
}

func TestUnknown(t *testing.T) {
	t.Parallel()

	u := Unknown{MeasureName: "ImperialRussian", OriginalUnit: "versta", Value: 3731.5}
	same := Unknown{MeasureName: "ImperialRussian", OriginalUnit: "arshin", Value: 3731.5}
	bigger := Unknown{MeasureName: "ImperialRussian", OriginalUnit: "versta", Value: 4000}
	other := Unknown{MeasureName: "Chinese", OriginalUnit: "li", Value: 4000}

	assert.Equal(t, "3731.5 ? (ImperialRussian)", u.String())
	assert.Equal(t, "ImperialRussian(?=3731.5)", u.GoString())
	assert.Equal(t, Parts{Measure: "ImperialRussian", Unit: "versta", Value: 3731.5}, u.Parts())

	assert.True(t, u.Equal(same))
	assert.True(t, u.Less(bigger))
	assert.False(t, bigger.Less(u))
	assert.False(t, u.Less(other))
	assert.False(t, u.Equal(other))

	_, err := u.In("versta")
	require.ErrorIs(t, err, ErrNotConvertible)
}

func TestEqualQuantity(t *testing.T) {
	t.Parallel()

	u := Unknown{MeasureName: "ImperialRussian", OriginalUnit: "versta", Value: 1}

	assert.True(t, EqualQuantity(Distance.MustNew(1, "km"), Distance.MustNew(1000, "m")))
	assert.True(t, EqualQuantity(u, u))
	assert.True(t, EqualQuantity(nil, nil))
	assert.False(t, EqualQuantity(Distance.Standard(1), u))
	assert.False(t, EqualQuantity(u, Distance.Standard(1)))
	assert.False(t, EqualQuantity(nil, u))
}
