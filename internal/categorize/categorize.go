// Package categorize labels transactions by keyword lookup. All
// keywords are compiled into a single Aho-Corasick matcher, so each
// description is scanned once regardless of how many keywords exist.
package categorize

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"gopkg.in/yaml.v3"

	"github.com/estatement-dev/estatement/internal/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultCategory is the label for descriptions matching no keyword.
const DefaultCategory = "Other"

type file struct {
	Categories map[string][]string `yaml:"categories"`
}

// Categorizer maps descriptions to category labels. Immutable after
// construction and safe for concurrent use.
type Categorizer struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	labels   []string
	fallback string
}

// New builds a categorizer from a category -> keywords mapping.
// Categories are processed in sorted order and longer keywords win
// over shorter ones, so labeling is deterministic.
func New(categories map[string][]string, fallback string) *Categorizer {
	if fallback == "" {
		fallback = DefaultCategory
	}
	c := &Categorizer{fallback: fallback}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, kw := range categories[name] {
			kw = strings.ToUpper(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			c.keywords = append(c.keywords, kw)
			c.labels = append(c.labels, name)
		}
	}
	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}
	return c
}

// LoadDefault builds a categorizer from the embedded category mapping.
func LoadDefault(fallback string) (*Categorizer, error) {
	return parseYAML(defaultsYAML, fallback)
}

// LoadFile builds a categorizer from a YAML mapping on disk.
func LoadFile(path, fallback string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category mapping: %w", err)
	}
	return parseYAML(data, fallback)
}

func parseYAML(data []byte, fallback string) (*Categorizer, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing category mapping: %w", err)
	}
	return New(f.Categories, fallback), nil
}

// Categorize returns the label for a description. Of all matching
// keywords the longest wins; ties go to the first in sorted category
// order.
func (c *Categorizer) Categorize(description string) string {
	if c.matcher == nil {
		return c.fallback
	}
	hits := c.matcher.Match([]byte(strings.ToUpper(description)))
	if len(hits) == 0 {
		return c.fallback
	}

	best := -1
	for _, h := range hits {
		if best == -1 ||
			len(c.keywords[h]) > len(c.keywords[best]) ||
			(len(c.keywords[h]) == len(c.keywords[best]) && h < best) {
			best = h
		}
	}
	return c.labels[best]
}

// Apply labels a slice of transactions, returning new values; the
// inputs are never mutated.
func (c *Categorizer) Apply(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		out[i] = t.WithCategory(c.Categorize(t.Description))
	}
	return out
}
