package measure

// Unit is a single convertible unit of a Measure.
//
// Factor is the number of standard units in one of this unit. Offset is added after scaling and is
// only non-zero for affine scales such as degrees Celsius.
type Unit struct {
	Key    string  `json:"key" yaml:"key" toml:"key"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Factor float64 `json:"factor" yaml:"factor" toml:"factor"`
	Offset float64 `json:"offset,omitempty" yaml:"offset,omitempty" toml:"offset,omitempty"`
}

// Scale returns a Unit with the given factor and no offset.
func Scale(factor float64) Unit {
	return Unit{Factor: factor}
}

// Affine returns a Unit with the given factor and offset.
func Affine(factor, offset float64) Unit {
	return Unit{Factor: factor, Offset: offset}
}

// ToStandard converts a magnitude expressed in u into the standard unit.
func (u Unit) ToStandard(v float64) float64 {
	return v*u.Factor + u.Offset
}

// FromStandard converts a magnitude expressed in the standard unit into u.
func (u Unit) FromStandard(s float64) float64 {
	return (s - u.Offset) / u.Factor
}

// DisplayLabel returns the label of the unit, falling back to its key.
func (u Unit) DisplayLabel() string {
	if u.Label != "" {
		return u.Label
	}

	return u.Key
}

// siPrefix is a metric prefix applied to SI base units.
type siPrefix struct {
	symbol string
	name   string
	factor float64
}

// siPrefixes lists the prefixes expanded for every SI unit of a Measure.
var siPrefixes = []siPrefix{
	{"y", "yocto", 1e-24},
	{"z", "zepto", 1e-21},
	{"a", "atto", 1e-18},
	{"f", "femto", 1e-15},
	{"p", "pico", 1e-12},
	{"n", "nano", 1e-9},
	{"u", "micro", 1e-6},
	{"m", "milli", 1e-3},
	{"c", "centi", 1e-2},
	{"d", "deci", 1e-1},
	{"da", "deca", 1e1},
	{"h", "hecto", 1e2},
	{"k", "kilo", 1e3},
	{"M", "mega", 1e6},
	{"G", "giga", 1e9},
	{"T", "tera", 1e12},
	{"P", "peta", 1e15},
	{"E", "exa", 1e18},
	{"Z", "zetta", 1e21},
	{"Y", "yotta", 1e24},
}
