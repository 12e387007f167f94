package measure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Distance.MustNew(2, "mi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit": "mi", "value": 2}`, string(b))

	b, err = json.Marshal(Value{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(struct {
		Range Value `json:"range"`
	}{Range: Speed.MustNew(65, "mph")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"range": {"unit": "mi__hr", "value": 65}}`, string(b))
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	v := Weight.Zero()
	require.NoError(t, json.Unmarshal([]byte(`{"unit": "lb", "value": 2}`), &v))
	assert.Equal(t, "lb", v.Unit())
	assert.InDelta(t, 907.18474, v.Standard(), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsZero())
	assert.Same(t, Weight, v.Measure())

	speed := Speed.Zero()
	require.NoError(t, json.Unmarshal([]byte(`{"unit": "mi__hr", "value": 65}`), &speed))
	assert.Equal(t, "mi__hr", speed.Unit())
	require.ErrorIs(t, json.Unmarshal([]byte(`{"unit": "mph", "value": 65}`), &speed), ErrUnknownUnit)

	var bare Value
	err := json.Unmarshal([]byte(`{"unit": "lb", "value": 2}`), &bare)
	require.ErrorIs(t, err, ErrNoMeasure)
}

func TestMeasure_DecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      string
		wantUnit  string
		wantValue float64
		wantErr   error
		wantMsg   string
	}{
		{
			name:      "number",
			give:      `{"unit": "km", "value": 1.5}`,
			wantUnit:  "km",
			wantValue: 1.5,
		},
		{
			name:      "numeric string",
			give:      `{"unit": "ft", "value": "12"}`,
			wantUnit:  "ft",
			wantValue: 12,
		},
		{
			name:    "alias",
			give:    `{"unit": "mile", "value": 3}`,
			wantErr: ErrUnknownUnit,
			wantMsg: "Invalid unit. mile is not a valid Distance unit",
		},
		{
			name:    "case variant",
			give:    `{"unit": "KM", "value": 3}`,
			wantErr: ErrUnknownUnit,
		},
		{
			name:    "invalid unit",
			give:    `{"unit": "kg", "value": 1}`,
			wantErr: ErrUnknownUnit,
			wantMsg: "Invalid unit. kg is not a valid Distance unit",
		},
		{
			name:    "invalid value",
			give:    `{"unit": "m", "value": "far"}`,
			wantErr: ErrInvalidMeasurement,
			wantMsg: "Invalid value. far is not a valid Distance value",
		},
		{
			name:    "not an object",
			give:    `[1, "m"]`,
			wantErr: ErrInvalidMeasurement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Distance.DecodeJSON([]byte(tt.give))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					require.ErrorContains(t, err, tt.wantMsg)
				}

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnit, got.Unit())
			assert.InDelta(t, tt.wantValue, got.Magnitude(), 1e-9)
		})
	}
}
