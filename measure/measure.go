package measure

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// CompoundSeparator joins the primary and reference unit keys of a bidimensional unit, e.g. "mi__hr".
	CompoundSeparator = "__"

	// DefaultLabelSeparator joins the primary and reference labels of a bidimensional unit.
	DefaultLabelSeparator = "/"
)

// Measure describes a physical quantity: its standard unit and the table of units it can be
// expressed in. A bidimensional Measure is the ratio of a primary and a reference Measure and has
// no unit table of its own.
//
// A Measure is immutable once built and safe for concurrent use.
type Measure struct {
	name     string
	standard string
	units    map[string]Unit
	alias    map[string]string
	lalias   map[string]string
	si       []string

	primary   *Measure
	reference *Measure
}

// Option configures a Measure under construction.
type Option func(*builder)

type builder struct {
	aliases map[string]string
	labels  map[string]string
	si      []string
}

// WithAliases registers alternate names for unit keys.
func WithAliases(aliases map[string]string) Option {
	return func(b *builder) {
		maps.Copy(b.aliases, aliases)
	}
}

// WithLabels sets display labels keyed by unit key.
func WithLabels(labels map[string]string) Option {
	return func(b *builder) {
		maps.Copy(b.labels, labels)
	}
}

// WithSI marks unit keys as SI base units. Each of them is expanded with the metric prefixes,
// e.g. "m" yields "km", "mm", "nm" and so on. Aliases of a base unit are expanded the same way
// ("meter" yields "kilometer").
func WithSI(units ...string) Option {
	return func(b *builder) {
		b.si = append(b.si, units...)
	}
}

// NewMeasure builds a Measure from its unit table. standard must be a key of units (or of an SI
// expansion) with a factor of 1 and no offset.
func NewMeasure(name, standard string, units map[string]Unit, opts ...Option) (*Measure, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: measure name is required", ErrInvalidDefinition)
	}

	b := &builder{aliases: map[string]string{}, labels: map[string]string{}}
	for _, opt := range opts {
		opt(b)
	}

	m := &Measure{
		name:     name,
		standard: standard,
		units:    make(map[string]Unit, len(units)),
		alias:    make(map[string]string, len(b.aliases)),
		si:       slices.Clone(b.si),
	}
	for key, u := range units {
		if u.Factor <= 0 {
			return nil, fmt.Errorf("%w: %s unit %q must have a positive factor", ErrInvalidDefinition, name, key)
		}
		u.Key = key
		m.units[key] = u
	}
	maps.Copy(m.alias, b.aliases)

	// Labels of declared units are set before the SI expansion so prefixed units inherit them.
	pending := map[string]string{}
	for key, label := range b.labels {
		u, ok := m.units[key]
		if !ok {
			pending[key] = label
			continue
		}
		u.Label = label
		m.units[key] = u
	}

	if err := m.expandSI(); err != nil {
		return nil, err
	}

	for key, label := range pending {
		u, ok := m.units[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s label for unknown unit %q", ErrInvalidDefinition, name, key)
		}
		u.Label = label
		m.units[key] = u
	}

	std, ok := m.units[standard]
	if !ok {
		return nil, fmt.Errorf("%w: %s standard unit %q is not a unit", ErrInvalidDefinition, name, standard)
	}
	if std.Factor != 1 || std.Offset != 0 {
		return nil, fmt.Errorf("%w: %s standard unit %q must have factor 1 and no offset", ErrInvalidDefinition, name, standard)
	}

	for alias, key := range m.alias {
		if _, ok := m.units[key]; !ok {
			return nil, fmt.Errorf("%w: %s alias %q points to unknown unit %q", ErrInvalidDefinition, name, alias, key)
		}
	}
	m.lalias = lowerAliases(m.units, m.alias)

	return m, nil
}

// MustMeasure is like NewMeasure but panics on error. It is intended for package level measures.
func MustMeasure(name, standard string, units map[string]Unit, opts ...Option) *Measure {
	m, err := NewMeasure(name, standard, units, opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// NewBidimensional builds the Measure primary / reference, e.g. Speed = Distance / Time. Aliases
// map composite unit names to "primary__reference" keys ("mph" -> "mi__hr").
func NewBidimensional(name string, primary, reference *Measure, opts ...Option) (*Measure, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: measure name is required", ErrInvalidDefinition)
	}
	if primary == nil || reference == nil {
		return nil, fmt.Errorf("%w: %s needs a primary and a reference measure", ErrInvalidDefinition, name)
	}
	if primary.IsBidimensional() || reference.IsBidimensional() {
		return nil, fmt.Errorf("%w: %s cannot nest bidimensional measures", ErrInvalidDefinition, name)
	}

	b := &builder{aliases: map[string]string{}, labels: map[string]string{}}
	for _, opt := range opts {
		opt(b)
	}

	m := &Measure{
		name:      name,
		standard:  primary.standard + CompoundSeparator + reference.standard,
		alias:     make(map[string]string, len(b.aliases)),
		lalias:    make(map[string]string, len(b.aliases)),
		primary:   primary,
		reference: reference,
	}
	for alias, key := range b.aliases {
		resolved, err := m.resolveCompound(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s alias %q: %w", ErrInvalidDefinition, name, alias, err)
		}
		m.alias[alias] = resolved
		m.lalias[strings.ToLower(alias)] = resolved
	}

	return m, nil
}

// MustBidimensional is like NewBidimensional but panics on error.
func MustBidimensional(name string, primary, reference *Measure, opts ...Option) *Measure {
	m, err := NewBidimensional(name, primary, reference, opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Name returns the name of the measure, e.g. "Weight".
func (m *Measure) Name() string { return m.name }

// StandardUnit returns the key of the standard unit, e.g. "g", or "m__s" for Speed.
func (m *Measure) StandardUnit() string { return m.standard }

// IsBidimensional reports whether m is the ratio of two other measures.
func (m *Measure) IsBidimensional() bool { return m.primary != nil }

// Primary returns the numerator measure of a bidimensional measure, or nil.
func (m *Measure) Primary() *Measure { return m.primary }

// Reference returns the denominator measure of a bidimensional measure, or nil.
func (m *Measure) Reference() *Measure { return m.reference }

// String implements fmt.Stringer.
func (m *Measure) String() string { return m.name }

// Same reports whether m and other describe the same measure. Two measures are the same when
// they share a name and a standard unit, so that an overridden measure still matches values built
// from the original.
func (m *Measure) Same(other *Measure) bool {
	if m == nil || other == nil {
		return m == other
	}

	return m == other || (m.name == other.name && m.standard == other.standard)
}

// Resolve returns the canonical unit key for a unit string. The lookup order is the exact unit
// key, an exact alias, the lower-cased unit key and finally a lower-cased alias.
func (m *Measure) Resolve(unit string) (string, error) {
	if m.IsBidimensional() {
		if key, ok := m.alias[unit]; ok {
			return key, nil
		}
		if key, ok := m.lalias[strings.ToLower(unit)]; ok {
			return key, nil
		}

		return m.resolveCompound(unit)
	}

	if _, ok := m.units[unit]; ok {
		return unit, nil
	}
	if key, ok := m.alias[unit]; ok {
		return key, nil
	}
	lower := strings.ToLower(unit)
	if _, ok := m.units[lower]; ok {
		return lower, nil
	}
	if key, ok := m.lalias[lower]; ok {
		return key, nil
	}

	return "", fmt.Errorf("%w: %s has no unit %q", ErrUnknownUnit, m.name, unit)
}

// UnitAttname returns the unit key named by unit, trying the exact unit key, then the lower-cased
// unit key and then a lower-cased alias. Exact aliases are not consulted.
func (m *Measure) UnitAttname(unit string) (string, error) {
	lower := strings.ToLower(unit)
	switch {
	case m.hasKey(unit):
		return unit, nil
	case m.hasKey(lower):
		return lower, nil
	}
	if key, ok := m.lalias[lower]; ok {
		return key, nil
	}

	return "", fmt.Errorf("%w: could not find a unit keyword associated with %q", ErrUnknownUnit, unit)
}

// hasKey reports whether key is a unit key of m. For a bidimensional measure the key is a
// compound of a primary and a reference unit key.
func (m *Measure) hasKey(key string) bool {
	if !m.IsBidimensional() {
		_, ok := m.units[key]

		return ok
	}
	p, r, ok := strings.Cut(key, CompoundSeparator)
	if !ok {
		return false
	}

	return m.primary.hasKey(p) && m.reference.hasKey(r)
}

func (m *Measure) resolveCompound(unit string) (string, error) {
	p, r, ok := strings.Cut(unit, CompoundSeparator)
	if !ok {
		return "", fmt.Errorf("%w: %s has no unit %q", ErrUnknownUnit, m.name, unit)
	}
	pk, err := m.primary.Resolve(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s has no unit %q", ErrUnknownUnit, m.name, unit)
	}
	rk, err := m.reference.Resolve(r)
	if err != nil {
		return "", fmt.Errorf("%w: %s has no unit %q", ErrUnknownUnit, m.name, unit)
	}

	return pk + CompoundSeparator + rk, nil
}

// Unit returns the unit a unit string resolves to. Units of a bidimensional measure carry the
// ratio of the primary and reference factors; offsets take no part in a rate.
func (m *Measure) Unit(unit string) (Unit, error) {
	key, err := m.Resolve(unit)
	if err != nil {
		return Unit{}, err
	}
	if !m.IsBidimensional() {
		return m.units[key], nil
	}

	p, r, _ := strings.Cut(key, CompoundSeparator)
	pu := m.primary.units[p]
	ru := m.reference.units[r]

	return Unit{
		Key:    key,
		Label:  pu.DisplayLabel() + DefaultLabelSeparator + ru.DisplayLabel(),
		Factor: pu.Factor / ru.Factor,
	}, nil
}

// Units returns the sorted unit keys of the measure. For a bidimensional measure every
// combination of primary and reference units is listed.
func (m *Measure) Units() []string {
	if m.IsBidimensional() {
		var keys []string
		for _, p := range m.primary.Units() {
			for _, r := range m.reference.Units() {
				keys = append(keys, p+CompoundSeparator+r)
			}
		}

		return keys
	}

	return slices.Sorted(maps.Keys(m.units))
}

// Aliases returns a copy of the exact alias table.
func (m *Measure) Aliases() map[string]string {
	return maps.Clone(m.alias)
}

// SIUnits returns the SI base units the measure was built with.
func (m *Measure) SIUnits() []string {
	return slices.Clone(m.si)
}

// Choice is a selectable unit: its key and its display label.
type Choice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Choices returns the selectable units of m ordered by key.
func (m *Measure) Choices() []Choice {
	return m.choices(DefaultLabelSeparator)
}

// ChoicesSeparated is Choices with bidimensional labels joined by sep, e.g. "mi per hr".
func (m *Measure) ChoicesSeparated(sep string) []Choice {
	return m.choices(sep)
}

func (m *Measure) choices(sep string) []Choice {
	if m.IsBidimensional() {
		var out []Choice
		for _, p := range m.primary.Choices() {
			for _, r := range m.reference.Choices() {
				out = append(out, Choice{
					Key:   p.Key + CompoundSeparator + r.Key,
					Label: p.Label + sep + r.Label,
				})
			}
		}

		return out
	}

	keys := m.Units()
	out := make([]Choice, 0, len(keys))
	for _, k := range keys {
		out = append(out, Choice{Key: k, Label: m.units[k].DisplayLabel()})
	}

	return out
}

// New returns a Value of v expressed in unit.
func (m *Measure) New(v float64, unit string) (Value, error) {
	u, err := m.Unit(unit)
	if err != nil {
		return Value{}, err
	}

	return Value{measure: m, standard: u.ToStandard(v), unit: u.Key}, nil
}

// MustNew is like New but panics on an unknown unit.
func (m *Measure) MustNew(v float64, unit string) Value {
	val, err := m.New(v, unit)
	if err != nil {
		panic(err)
	}

	return val
}

// Standard returns a Value of v expressed in the standard unit.
func (m *Measure) Standard(v float64) Value {
	return Value{measure: m, standard: v, unit: m.standard}
}

// Zero returns the zero Value of m.
func (m *Measure) Zero() Value {
	return m.Standard(0)
}

func (m *Measure) expandSI() error {
	for _, base := range m.si {
		bu, ok := m.units[base]
		if !ok {
			return fmt.Errorf("%w: %s SI unit %q is not a unit", ErrInvalidDefinition, m.name, base)
		}
		var baseAliases []string
		for alias, key := range m.alias {
			if key == base {
				baseAliases = append(baseAliases, alias)
			}
		}
		for _, p := range siPrefixes {
			key := p.symbol + base
			if _, exists := m.units[key]; exists {
				continue
			}
			u := Unit{Key: key, Factor: bu.Factor * p.factor, Offset: bu.Offset}
			if bu.Label != "" {
				u.Label = p.symbol + bu.Label
			}
			m.units[key] = u
			for _, alias := range baseAliases {
				name := p.name + alias
				if _, taken := m.alias[name]; !taken {
					m.alias[name] = key
				}
			}
		}
	}

	return nil
}

// lowerAliases builds the case-insensitive alias table: lower-cased aliases plus lower-cased
// unit keys that do not collide with an existing key. Ambiguous entries are left out.
func lowerAliases(units map[string]Unit, alias map[string]string) map[string]string {
	out := make(map[string]string, len(alias))
	ambiguous := map[string]bool{}
	add := func(lower, key string) {
		if ambiguous[lower] {
			return
		}
		if prev, ok := out[lower]; ok && prev != key {
			delete(out, lower)
			ambiguous[lower] = true

			return
		}
		out[lower] = key
	}

	for _, a := range slices.Sorted(maps.Keys(alias)) {
		add(strings.ToLower(a), alias[a])
	}
	for _, k := range slices.Sorted(maps.Keys(units)) {
		lower := strings.ToLower(k)
		if _, ok := units[lower]; ok {
			continue
		}
		add(lower, k)
	}

	return out
}
