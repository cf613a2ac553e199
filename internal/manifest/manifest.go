// Package manifest loads clocks.yaml, the project-level declaration of
// named clocks and their base frequencies that a Lambda-Listen project
// ties its clock variables to.
package manifest

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lambdalisten/lambdalisten/internal/ident"
	"github.com/lambdalisten/lambdalisten/internal/modaltypes"
)

// SchemaVersion is the current manifest schema version.
const SchemaVersion = "lambdalisten.manifest/v1"

// ClockDecl declares one named clock and the frequency, in Hz, its ticks
// advance at. A clock variable's coefficient (modaltypes.Clock.Coeff) is
// always relative to the declaring ClockDecl's frequency, never absolute.
type ClockDecl struct {
	Name        string  `yaml:"name"`
	FrequencyHz float64 `yaml:"frequency_hz"`
	Description string  `yaml:"description,omitempty"`
}

// Manifest is the parsed form of clocks.yaml.
type Manifest struct {
	Schema string      `yaml:"schema"`
	Clocks []ClockDecl `yaml:"clocks"`
}

// Load reads and validates a manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest validation failed: %w", err)
	}

	return &m, nil
}

// Validate checks the manifest for internal consistency: every clock has a
// name and a positive frequency, and no name is declared twice.
func (m *Manifest) Validate() error {
	if m.Schema == "" {
		m.Schema = SchemaVersion
	}

	seen := make(map[string]bool, len(m.Clocks))
	for _, c := range m.Clocks {
		if c.Name == "" {
			return fmt.Errorf("clock declaration missing name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate clock declaration: %s", c.Name)
		}
		seen[c.Name] = true

		if c.FrequencyHz <= 0 {
			return fmt.Errorf("clock %q: frequency_hz must be positive, got %v", c.Name, c.FrequencyHz)
		}
	}

	return nil
}

// Registry resolves a Manifest's declared clock names into ident.Symbols
// through in, and records each one's base frequency so callers (the CLI,
// the error reporter) can print a clock's real-world rate rather than just
// its coefficient over an opaque variable.
type Registry struct {
	freq map[ident.Symbol]float64
	name map[ident.Symbol]string
}

// NewRegistry interns every clock declared in m through in and returns the
// resulting Registry. Load must have succeeded (or Validate must have
// passed) on m before calling this.
func NewRegistry(in *ident.Interner, m *Manifest) *Registry {
	r := &Registry{
		freq: make(map[ident.Symbol]float64, len(m.Clocks)),
		name: make(map[ident.Symbol]string, len(m.Clocks)),
	}
	for _, c := range m.Clocks {
		sym := in.Intern(c.Name)
		r.freq[sym] = c.FrequencyHz
		r.name[sym] = c.Name
	}
	return r
}

// FrequencyOf returns the declared frequency of the clock variable sym, if
// any project manifest declared it.
func (r *Registry) FrequencyOf(sym ident.Symbol) (float64, bool) {
	f, ok := r.freq[sym]
	return f, ok
}

// EffectiveHz computes the real-world tick rate of a modal Clock whose
// base variable is declared in r: a Clock with coefficient num/den over a
// variable declared at freqHz ticks num/den times per base tick, so the
// effective rate is freqHz * num/den.
func (r *Registry) EffectiveHz(c modaltypes.Clock) (float64, bool) {
	base, ok := r.freq[c.Var]
	if !ok {
		return 0, false
	}
	f, _ := c.Coeff.Float64()
	return base * f, true
}

// Names returns every declared clock name, sorted, for CLI listing.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.name))
	for _, n := range r.name {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
