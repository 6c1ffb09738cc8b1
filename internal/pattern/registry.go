package pattern

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// file is the YAML document shape: a map of bank name to Spec.
type file struct {
	Banks map[string]Spec `yaml:"banks"`
}

// Registry holds compiled bank patterns. It is built once and
// read-only afterwards, so concurrent lookups need no locking.
type Registry struct {
	banks map[string]*BankPattern
	names []string
}

// LoadDefault builds a registry from the embedded bank patterns.
func LoadDefault() (*Registry, error) {
	return Parse(defaultsYAML)
}

// LoadFile builds a registry from a YAML file on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Bank: "", Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	return Parse(data)
}

// Parse builds a registry from YAML bytes, compiling and validating
// every bank pattern. Any invalid bank fails the whole load.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigError{Bank: "", Err: fmt.Errorf("parsing bank config: %w", err)}
	}
	if len(f.Banks) == 0 {
		return nil, &ConfigError{Bank: "", Err: fmt.Errorf("no banks configured")}
	}

	r := &Registry{banks: make(map[string]*BankPattern, len(f.Banks))}
	for name, spec := range f.Banks {
		p, err := Compile(name, spec)
		if err != nil {
			return nil, err
		}
		r.banks[name] = p
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns the pattern for a bank.
func (r *Registry) Get(bank string) (*BankPattern, error) {
	p, ok := r.banks[bank]
	if !ok {
		return nil, &ConfigError{Bank: bank, Err: fmt.Errorf("unknown bank")}
	}
	return p, nil
}

// Banks returns the configured bank names, sorted.
func (r *Registry) Banks() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Detect identifies the issuing bank of a statement by scanning the
// text for the bank name or any configured alias. Banks are checked
// in sorted-name order so detection is deterministic.
func (r *Registry) Detect(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, name := range r.names {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name, true
		}
	}
	for _, name := range r.names {
		for _, alias := range r.banks[name].Aliases {
			if strings.Contains(lower, strings.ToLower(alias)) {
				return name, true
			}
		}
	}
	return "", false
}
