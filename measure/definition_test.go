package measure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDefinitions = `version: 1.2.0
measures:
  - name: Time
    standard: s
    units:
      s: {factor: 1}
      h: {factor: 3600}
      d: {factor: 86400, label: days}
    aliases:
      hour: h
    si: [s]
  - name: DegreePerTime
    primary: Temperature
    reference: Time
`

const tomlDefinitions = `version = "1.0.0"

[[measures]]
name = "ImperialRussian"
standard = "m"

[measures.units.m]
factor = 1.0

[measures.units.versta]
factor = 1066.8

[measures.units.arshin]
factor = 0.7112

[measures.aliases]
verst = "versta"

[[measures]]
name = "RussianPace"
primary = "ImperialRussian"
reference = "Time"
`

func TestParseDefinitions(t *testing.T) {
	t.Parallel()

	f, err := ParseDefinitions([]byte(yamlDefinitions), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", f.Version)
	require.Len(t, f.Measures, 2)
	assert.Equal(t, "Time", f.Measures[0].Name)
	assert.InDelta(t, 3600.0, f.Measures[0].Units["h"].Factor, 0)
	assert.Equal(t, "days", f.Measures[0].Units["d"].Label)
	assert.Equal(t, "Temperature", f.Measures[1].Primary)

	f, err = ParseDefinitions([]byte(tomlDefinitions), "toml")
	require.NoError(t, err)
	require.Len(t, f.Measures, 2)
	assert.InDelta(t, 1066.8, f.Measures[0].Units["versta"].Factor, 0)
	assert.Equal(t, "versta", f.Measures[0].Aliases["verst"])

	f, err = ParseDefinitions([]byte(`{"version": "1.0.0", "measures": [{"name": "Count", "standard": "each", "units": {"each": {"factor": 1}, "dozen": {"factor": 12}}}]}`), "json")
	require.NoError(t, err)
	assert.Equal(t, "Count", f.Measures[0].Name)
}

func TestParseDefinitions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveData   string
		giveFormat string
		wantErr    string
	}{
		{
			name:       "unsupported format",
			giveData:   "version: 1.0.0",
			giveFormat: "ini",
			wantErr:    `unsupported definitions format "ini"`,
		},
		{
			name:       "missing version",
			giveData:   "measures: []",
			giveFormat: "yaml",
			wantErr:    "version is required",
		},
		{
			name:       "malformed version",
			giveData:   "version: one",
			giveFormat: "yaml",
			wantErr:    `version "one"`,
		},
		{
			name:       "unsupported major version",
			giveData:   "version: 2.0.0",
			giveFormat: "yaml",
			wantErr:    "version 2.0.0 does not satisfy ^1",
		},
		{
			name:       "duplicate json unit key",
			giveData:   `{"version": "1.0.0", "measures": [{"name": "Count", "standard": "each", "units": {"each": {"factor": 1}, "dozen": {"factor": 12}, "dozen": {"factor": 13}}}]}`,
			giveFormat: "json",
			wantErr:    `measures: units: key "dozen" already defined`,
		},
		{
			name:       "duplicate yaml unit key",
			giveData:   "version: 1.0.0\nmeasures:\n  - name: Count\n    units:\n      dozen: {factor: 12}\n      dozen: {factor: 13}\n",
			giveFormat: "yaml",
			wantErr:    `"dozen" already defined`,
		},
		{
			name:       "malformed json",
			giveData:   `{"version": "1.0.0", "measures": [`,
			giveFormat: "json",
			wantErr:    "invalid measure definition",
		},
		{
			name:       "malformed document",
			giveData:   "version = ",
			giveFormat: "toml",
			wantErr:    "invalid measure definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDefinitions([]byte(tt.giveData), tt.giveFormat)
			require.ErrorIs(t, err, ErrInvalidDefinition)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRegistry_Load(t *testing.T) {
	t.Parallel()

	f, err := ParseDefinitions([]byte(yamlDefinitions), "yaml")
	require.NoError(t, err)

	r := Default()
	loaded, err := r.Load(f)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	tm, err := r.Lookup("Time")
	require.NoError(t, err)
	assert.NotSame(t, Time, tm, "the built-in Time is overridden")
	assert.Contains(t, tm.Units(), "ms")

	v, err := tm.New(2, "hour")
	require.NoError(t, err)
	assert.InDelta(t, 7200.0, v.Standard(), 1e-9)

	// an existing Time value still compares with the overriding measure
	assert.True(t, v.Equal(Time.MustNew(2, "hr")))

	dpt, err := r.Lookup("DegreePerTime")
	require.NoError(t, err)
	assert.True(t, dpt.IsBidimensional())
	assert.Same(t, tm, dpt.Reference(), "reference resolves within the file first")
	assert.Same(t, Temperature, dpt.Primary(), "primary falls back to the registry")

	rate, err := dpt.New(10, "c__h")
	require.NoError(t, err)
	assert.InDelta(t, 10.0/3600.0, rate.Standard(), 1e-12)
}

func TestRegistry_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    DefinitionFile
		wantErr string
	}{
		{
			name: "simple measure without units",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Empty", Standard: "x"},
			}},
			wantErr: "Empty has no units",
		},
		{
			name: "duplicate measure",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Count", Standard: "each", Units: map[string]Unit{"each": Scale(1)}},
				{Name: "Count", Standard: "each", Units: map[string]Unit{"each": Scale(1)}},
			}},
			wantErr: "Count is defined twice",
		},
		{
			name: "duplicate bidimensional measure",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Rate", Primary: "Distance", Reference: "Time"},
				{Name: "Rate", Primary: "Weight", Reference: "Time"},
			}},
			wantErr: "Rate is defined twice",
		},
		{
			name: "bidimensional measure reusing a simple measure name",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Count", Standard: "each", Units: map[string]Unit{"each": Scale(1)}},
				{Name: "Count", Primary: "Distance", Reference: "Time"},
			}},
			wantErr: "Count is defined twice",
		},
		{
			name: "measure without a name",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Standard: "each", Units: map[string]Unit{"each": Scale(1)}},
			}},
			wantErr: "measure without a name",
		},
		{
			name: "bidimensional with units",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Rate", Primary: "Distance", Reference: "Time", Units: map[string]Unit{"x": Scale(1)}},
			}},
			wantErr: "bidimensional Rate cannot declare units",
		},
		{
			name: "unresolved primary",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Rate", Primary: "Nope", Reference: "Time"},
			}},
			wantErr: "Rate primary",
		},
		{
			name: "unresolved reference",
			give: DefinitionFile{Version: "1.0.0", Measures: []Definition{
				{Name: "Rate", Primary: "Distance", Reference: "Nope"},
			}},
			wantErr: "Rate reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Default()
			before := r.Names()

			_, err := r.Load(tt.give)
			require.ErrorIs(t, err, ErrInvalidDefinition)
			require.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, before, r.Names(), "a failed load registers nothing")
		})
	}
}

func TestRegistry_LoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "measures.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDefinitions), 0o600))

	r := Default()
	loaded, err := r.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	v, err := r.ParseIn("ImperialRussian", "2 verst")
	require.NoError(t, err)
	assert.InDelta(t, 2133.6, v.Standard(), 1e-9)

	pace, err := r.Lookup("RussianPace")
	require.NoError(t, err)
	assert.Equal(t, "m__s", pace.StandardUnit())

	_, err = r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read definitions")
}
