package measure

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Registry is a named set of measures. It resolves measure names read back from storage, guesses
// the measure of a bare unit and knows how measures combine under multiplication and division.
//
// Registering a measure under a name that is already taken replaces it, which is how a built-in
// measure is overridden by a custom definition.
type Registry struct {
	mu        sync.RWMutex
	measures  map[string]*Measure
	order     []string
	aliases   map[string]string
	relations []relation
	separator string
}

// relation records product = a * b.
type relation struct {
	product, a, b *Measure
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		measures:  map[string]*Measure{},
		aliases:   map[string]string{},
		separator: DefaultLabelSeparator,
	}
}

// Default returns a new Registry loaded with the built-in measures. Each call returns an
// independent registry, so overriding a measure in one does not affect another.
func Default() *Registry {
	r := NewRegistry()
	for _, m := range builtins {
		r.Override(m.Name(), m)
	}
	_ = r.Alias("Mass", Weight.Name())
	_ = r.Relate(Area, Distance, Distance)
	_ = r.Relate(Volume, Area, Distance)

	return r
}

// Register adds m under its own name. It fails if the name is already registered.
func (r *Registry) Register(m *Measure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.measures[m.Name()]; ok {
		return fmt.Errorf("measure %q is already registered", m.Name())
	}
	r.set(m.Name(), m)

	return nil
}

// Override registers m under name, replacing whatever was registered there.
func (r *Registry) Override(name string, m *Measure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.set(name, m)
}

func (r *Registry) set(name string, m *Measure) {
	if _, ok := r.measures[name]; !ok {
		r.order = append(r.order, name)
	}
	r.measures[name] = m
}

// Alias makes alias resolve to the measure registered as name. Aliases are not listed by Names.
func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.measures[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMeasure, name)
	}
	r.aliases[alias] = name

	return nil
}

// Lookup returns the measure registered under name or one of its aliases.
func (r *Registry) Lookup(name string) (*Measure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.measures[name]; ok {
		return m, nil
	}
	if target, ok := r.aliases[name]; ok {
		return r.measures[target], nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownMeasure, name)
}

// Names returns the registered measure names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.measures))
}

// SetSeparator sets the separator between primary and reference labels of bidimensional units.
func (r *Registry) SetSeparator(sep string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.separator = sep
}

// Separator returns the label separator of bidimensional units.
func (r *Registry) Separator() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.separator
}

// Relate declares product = a * b. The relation is used in both operand orders, and for
// division of the product by either factor.
func (r *Registry) Relate(product, a, b *Measure) error {
	if product == nil || a == nil || b == nil {
		return fmt.Errorf("%w: relation needs three measures", ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.relations = append(r.relations, relation{product: product, a: a, b: b})

	return nil
}

// Choices returns the unit choices of the named measure, labelled with the registry separator.
func (r *Registry) Choices(name string) ([]Choice, error) {
	m, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	return m.choices(r.Separator()), nil
}

// ChoiceGroup holds the unit choices of one measure.
type ChoiceGroup struct {
	Measure string   `json:"measure"`
	Choices []Choice `json:"choices"`
}

// UnitChoices returns the unit choices of every simple measure grouped by measure name.
// Bidimensional measures are left out. With includeMeasure the keys are qualified as
// "Measure.unit".
func (r *Registry) UnitChoices(includeMeasure bool) []ChoiceGroup {
	var groups []ChoiceGroup
	for _, name := range r.Names() {
		m, err := r.Lookup(name)
		if err != nil || m.IsBidimensional() {
			continue
		}
		choices := m.Choices()
		if includeMeasure {
			for i := range choices {
				choices[i].Key = name + "." + choices[i].Key
			}
		}
		groups = append(groups, ChoiceGroup{Measure: name, Choices: choices})
	}

	return groups
}

// Guess returns a Value of v in unit for the first measure that accepts the unit. The candidates
// are the named measures in the given order, or every registered measure in registration order.
func (r *Registry) Guess(v float64, unit string, names ...string) (Value, error) {
	if len(names) == 0 {
		r.mu.RLock()
		names = slices.Clone(r.order)
		r.mu.RUnlock()
	}

	for _, name := range names {
		m, err := r.Lookup(name)
		if err != nil {
			return Value{}, err
		}
		if val, err := m.New(v, unit); err == nil {
			return val, nil
		}
	}

	return Value{}, fmt.Errorf("%w: no valid measure found for %s %s", ErrUnknownUnit, formatFloat(v), unit)
}

var measurementText = regexp.MustCompile(`^\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*([a-zA-Z_/]+)\s*$`)

// Parse reads a measurement written as "<number> <unit>", e.g. "2.5 mi" or "65 mi/hr", and guesses
// its measure. A "/" in the unit separates the primary and reference units.
func (r *Registry) Parse(s string) (Value, error) {
	v, unit, err := splitMeasurement(s)
	if err != nil {
		return Value{}, err
	}

	return r.Guess(v, unit)
}

// ParseIn is like Parse but only accepts the named measure.
func (r *Registry) ParseIn(name, s string) (Value, error) {
	m, err := r.Lookup(name)
	if err != nil {
		return Value{}, err
	}
	v, unit, err := splitMeasurement(s)
	if err == nil {
		var val Value
		if val, err = m.New(v, unit); err == nil {
			return val, nil
		}
	}

	return Value{}, fmt.Errorf("%w: %s is not a valid measurement of %s", ErrInvalidMeasurement, s, strings.ToLower(m.Name()))
}

func splitMeasurement(s string) (float64, string, error) {
	match := measurementText.FindStringSubmatch(s)
	if match == nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidMeasurement, s)
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q: %w", ErrInvalidMeasurement, s, err)
	}

	return v, strings.ReplaceAll(match[2], "/", CompoundSeparator), nil
}

// Multiply returns a * b for measures related by Relate, or a bidimensional value times its
// reference (Speed * Time = Distance).
func (r *Registry) Multiply(a, b Value) (Value, error) {
	if !a.IsValid() || !b.IsValid() {
		return Value{}, ErrNoMeasure
	}
	if m := r.productOf(a.measure, b.measure); m != nil {
		return m.Standard(a.standard * b.standard), nil
	}
	for _, pair := range [][2]Value{{a, b}, {b, a}} {
		x, y := pair[0], pair[1]
		if x.measure.IsBidimensional() && x.measure.reference.Same(y.measure) {
			return x.measure.primary.Standard(x.standard * y.standard), nil
		}
	}

	return Value{}, fmt.Errorf("%w: cannot multiply %s by %s", ErrIncompatibleMeasure, a.measure.Name(), b.measure.Name())
}

// Divide returns a / b for a product divided by one of its factors, a primary measure divided
// by a reference measure of a registered bidimensional measure (Distance / Time = Speed), or a
// primary measure divided by a bidimensional value (Distance / Speed = Time).
func (r *Registry) Divide(a, b Value) (Value, error) {
	if !a.IsValid() || !b.IsValid() {
		return Value{}, ErrNoMeasure
	}
	if b.standard == 0 {
		return Value{}, ErrDivisionByZero
	}
	if m := r.factorOf(a.measure, b.measure); m != nil {
		return m.Standard(a.standard / b.standard), nil
	}
	if b.measure.IsBidimensional() && b.measure.primary.Same(a.measure) {
		return b.measure.reference.Standard(a.standard / b.standard), nil
	}
	if a.measure.IsBidimensional() && a.measure.primary.Same(b.measure) {
		return Value{}, fmt.Errorf("%w: cannot divide %s by %s", ErrIncompatibleMeasure, a.measure.Name(), b.measure.Name())
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		m := r.measures[name]
		if m.IsBidimensional() && m.primary.Same(a.measure) && m.reference.Same(b.measure) {
			return m.Standard(a.standard / b.standard), nil
		}
	}

	return Value{}, fmt.Errorf("%w: cannot divide %s by %s", ErrIncompatibleMeasure, a.measure.Name(), b.measure.Name())
}

func (r *Registry) productOf(a, b *Measure) *Measure {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rel := range r.relations {
		if (rel.a.Same(a) && rel.b.Same(b)) || (rel.a.Same(b) && rel.b.Same(a)) {
			return rel.product
		}
	}

	return nil
}

func (r *Registry) factorOf(product, factor *Measure) *Measure {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rel := range r.relations {
		if !rel.product.Same(product) {
			continue
		}
		switch {
		case rel.a.Same(factor):
			return rel.b
		case rel.b.Same(factor):
			return rel.a
		}
	}

	return nil
}
