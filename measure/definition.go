package measure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// definitionConstraint is the range of definition file versions this package can read.
const definitionConstraint = "^1"

// DefinitionFile is a set of custom measure definitions, as read from YAML, TOML or JSON.
//
//	version: 1.0.0
//	measures:
//	  - name: Time
//	    standard: s
//	    units:
//	      s: {factor: 1}
//	      h: {factor: 3600}
//	  - name: DegreePerTime
//	    primary: Temperature
//	    reference: Time
type DefinitionFile struct {
	Version  string       `json:"version" yaml:"version" toml:"version"`
	Measures []Definition `json:"measures" yaml:"measures" toml:"measures"`
}

// Definition describes one measure. A definition with Primary and Reference set describes a
// bidimensional measure and must not carry units.
type Definition struct {
	Name      string            `json:"name" yaml:"name" toml:"name"`
	Standard  string            `json:"standard,omitempty" yaml:"standard,omitempty" toml:"standard,omitempty"`
	Units     map[string]Unit   `json:"units,omitempty" yaml:"units,omitempty" toml:"units,omitempty"`
	Aliases   map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	SI        []string          `json:"si,omitempty" yaml:"si,omitempty" toml:"si,omitempty"`
	Primary   string            `json:"primary,omitempty" yaml:"primary,omitempty" toml:"primary,omitempty"`
	Reference string            `json:"reference,omitempty" yaml:"reference,omitempty" toml:"reference,omitempty"`
}

func (d Definition) bidimensional() bool {
	return d.Primary != "" || d.Reference != ""
}

// ReadDefinitions reads a definition file. The format is chosen by extension: .yaml/.yml, .toml
// or .json.
func ReadDefinitions(path string) (DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("failed to read definitions: %w", err)
	}

	return ParseDefinitions(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseDefinitions decodes definitions in the given format ("yaml", "yml", "toml" or "json") and
// checks the file version.
func ParseDefinitions(data []byte, format string) (DefinitionFile, error) {
	var (
		file DefinitionFile
		err  error
	)
	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &file)
	case "toml":
		err = toml.Unmarshal(data, &file)
	case "json":
		if err = checkDuplicateKeys(json.NewDecoder(bytes.NewReader(data))); err == nil {
			err = json.Unmarshal(data, &file)
		}
	default:
		return DefinitionFile{}, fmt.Errorf("%w: unsupported definitions format %q", ErrInvalidDefinition, format)
	}
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := file.checkVersion(); err != nil {
		return DefinitionFile{}, err
	}

	return file, nil
}

// checkDuplicateKeys reads one JSON value from dec and fails on an object that repeats a key.
// encoding/json keeps the last of repeated keys, while YAML and TOML reject them.
func checkDuplicateKeys(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	switch delim {
	case '{':
		seen := map[string]bool{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := tok.(string)
			if !ok {
				return errors.New("object key is not a string")
			}
			if seen[key] {
				return fmt.Errorf("key %q already defined", key)
			}
			seen[key] = true
			if err := checkDuplicateKeys(dec); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	case '[':
		for dec.More() {
			if err := checkDuplicateKeys(dec); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token()

	return err
}

func (f DefinitionFile) checkVersion() error {
	if f.Version == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidDefinition)
	}
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return fmt.Errorf("%w: version %q: %w", ErrInvalidDefinition, f.Version, err)
	}
	c, err := semver.NewConstraint(definitionConstraint)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: version %s does not satisfy %s", ErrInvalidDefinition, v, definitionConstraint)
	}

	return nil
}

// Load builds the measures of f and registers them, replacing registered measures of the same
// name. Simple measures are built first so a bidimensional measure can refer to a measure defined
// in the same file. Nothing is registered if any definition fails.
func (r *Registry) Load(f DefinitionFile) ([]*Measure, error) {
	names := make(map[string]bool, len(f.Measures))
	for _, d := range f.Measures {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: measure without a name", ErrInvalidDefinition)
		}
		if names[d.Name] {
			return nil, fmt.Errorf("%w: %s is defined twice", ErrInvalidDefinition, d.Name)
		}
		names[d.Name] = true
	}

	built := map[string]*Measure{}
	var out []*Measure

	for _, d := range f.Measures {
		if d.bidimensional() {
			continue
		}
		if len(d.Units) == 0 {
			return nil, fmt.Errorf("%w: %s has no units", ErrInvalidDefinition, d.Name)
		}
		m, err := NewMeasure(d.Name, d.Standard, d.Units, WithAliases(d.Aliases), WithSI(d.SI...))
		if err != nil {
			return nil, err
		}
		built[d.Name] = m
		out = append(out, m)
	}

	find := func(name string) (*Measure, error) {
		if m, ok := built[name]; ok {
			return m, nil
		}

		return r.Lookup(name)
	}
	for _, d := range f.Measures {
		if !d.bidimensional() {
			continue
		}
		if len(d.Units) > 0 {
			return nil, fmt.Errorf("%w: bidimensional %s cannot declare units", ErrInvalidDefinition, d.Name)
		}
		primary, err := find(d.Primary)
		if err != nil {
			return nil, fmt.Errorf("%w: %s primary: %w", ErrInvalidDefinition, d.Name, err)
		}
		reference, err := find(d.Reference)
		if err != nil {
			return nil, fmt.Errorf("%w: %s reference: %w", ErrInvalidDefinition, d.Name, err)
		}
		m, err := NewBidimensional(d.Name, primary, reference, WithAliases(d.Aliases))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	for _, m := range out {
		r.Override(m.Name(), m)
	}

	return out, nil
}

// LoadFile reads a definition file and loads it into r.
func (r *Registry) LoadFile(path string) ([]*Measure, error) {
	f, err := ReadDefinitions(path)
	if err != nil {
		return nil, err
	}

	return r.Load(f)
}
