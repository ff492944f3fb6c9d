package names

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAliases collapses split-credit artist strings onto one canonical name.
var DefaultAliases = map[string]string{
	"Alka Yagnik & Arvind Hasabnish": "Alka Yagnik",
}

// Normalizer resolves known alias strings to a canonical name.
// Matching is exact and case-sensitive.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer copies aliases into a new Normalizer.
func NewNormalizer(aliases map[string]string) *Normalizer {
	n := &Normalizer{aliases: make(map[string]string, len(aliases))}
	for k, v := range aliases {
		n.aliases[k] = v
	}
	return n
}

// Default returns a Normalizer seeded with DefaultAliases.
func Default() *Normalizer {
	return NewNormalizer(DefaultAliases)
}

// Normalize returns the canonical name for name, or name itself.
// A nil Normalizer is the identity.
func (n *Normalizer) Normalize(name string) string {
	if n == nil {
		return name
	}
	if canonical, ok := n.aliases[name]; ok {
		return canonical
	}
	return name
}

// Len returns the number of aliases.
func (n *Normalizer) Len() int {
	if n == nil {
		return 0
	}
	return len(n.aliases)
}

// With returns a copy of n with extra aliases layered on top.
func (n *Normalizer) With(extra map[string]string) *Normalizer {
	out := NewNormalizer(nil)
	if n != nil {
		for k, v := range n.aliases {
			out.aliases[k] = v
		}
	}
	for k, v := range extra {
		out.aliases[k] = v
	}
	return out
}

// SplitNames splits a ", "-joined multi-valued field back into its names.
// Surrounding whitespace is trimmed and empty parts dropped.
func SplitNames(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadFile layers the aliases in a YAML file on top of DefaultAliases.
// A missing path yields the defaults.
//
//	aliases:
//	  "Alka Yagnik & Arvind Hasabnish": "Alka Yagnik"
func LoadFile(path string) (*Normalizer, error) {
	n := Default()
	if path == "" {
		return n, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return n, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading alias file: %w", err)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing alias file %s: %w", path, err)
	}
	for raw, canonical := range f.Aliases {
		if strings.TrimSpace(canonical) == "" {
			return nil, fmt.Errorf("alias %q: canonical name must not be empty", raw)
		}
	}
	return n.With(f.Aliases), nil
}
