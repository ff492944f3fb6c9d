package aggregation

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Steam app IDs of the two Skyrim catalog entries.
const (
	SkyrimAppID   = "72850"
	SkyrimSEAppID = "489830"
)

// SkyrimRule folds Skyrim Special Edition into the original Skyrim entry.
func SkyrimRule() ConsolidationRule {
	rule := ConsolidationRule{
		Name:        "skyrim",
		KeyColumn:   "appid",
		PrimaryID:   SkyrimAppID,
		SecondaryID: SkyrimSEAppID,
		Policy: ConsolidationPolicy{
			"playtime_forever":  OpSum,
			"completion_time":   OpSum,
			"xp":                OpSum,
			"rtime_last_played": OpMax,
			"badgeid":           OpMax,
			"communityitemid":   OpMax,
			"level":             OpMax,
			"scarcity":          OpAverage,
		},
	}
	rule.Fingerprint = fingerprint(rule)
	return rule
}

// fingerprint hashes a canonical rendering of the rule so that built-in rules
// carry the same staleness marker as file-backed ones.
func fingerprint(r ConsolidationRule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%s", r.Name, r.KeyColumn, r.PrimaryID, r.SecondaryID)
	cols := make([]string, 0, len(r.Policy))
	for c := range r.Policy {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	for _, c := range cols {
		fmt.Fprintf(&b, "|%s=%s", c, r.Policy[c])
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(b.String())))
}

// idText decodes any YAML scalar as its literal text, so that numeric app IDs
// and string IDs are handled alike.
type idText string

func (t *idText) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", n.Line)
	}
	*t = idText(n.Value)
	return nil
}

// rawRule is the on-disk YAML shape.
type rawRule struct {
	Name        string            `yaml:"name"`
	KeyColumn   string            `yaml:"key_column"`
	PrimaryID   idText            `yaml:"primary_id"`
	SecondaryID idText            `yaml:"secondary_id"`
	Policy      map[string]string `yaml:"policy"`
}

// RuleRepository defines the interface for loading consolidation rules.
type RuleRepository interface {
	// List returns all loaded rules that key on keyColumn; empty means all.
	List(ctx context.Context, keyColumn string) ([]ConsolidationRule, error)

	// GetRules returns all rules sorted by name.
	GetRules() []ConsolidationRule
}

var _ RuleRepository = (*FileSystemRuleRepository)(nil)

// FileSystemRuleRepository serves the built-in rules plus any *.yaml rule
// files found in a directory. A file rule replaces a built-in rule of the same
// name. Rules are loaded once at startup.
type FileSystemRuleRepository struct {
	dir   string
	rules map[string]ConsolidationRule // keyed by Name
}

// NewFileSystemRuleRepository creates a new repository and eagerly loads all rules
// from dir. Returns an error if any rule file is malformed or invalid.
func NewFileSystemRuleRepository(dir string) (*FileSystemRuleRepository, error) {
	repo := &FileSystemRuleRepository{
		dir:   dir,
		rules: map[string]ConsolidationRule{"skyrim": SkyrimRule()},
	}
	if dir == "" {
		return repo, nil
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemRuleRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil // no rules directory, built-ins only
	}
	if err != nil {
		return fmt.Errorf("consolidation rule dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("consolidation rule path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading consolidation rule dir: %w", err)
	}

	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading rule file %s: %w", path, err)
		}

		var raw rawRule
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing rule file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // skip empty / comment-only files
		}
		if prev, dup := seen[raw.Name]; dup {
			return fmt.Errorf("rule %q: duplicate rule name in %s and %s", raw.Name, prev, e.Name())
		}
		seen[raw.Name] = e.Name()

		if raw.KeyColumn == "" {
			return fmt.Errorf("rule %q: key_column must not be empty", raw.Name)
		}
		if raw.PrimaryID == "" || raw.SecondaryID == "" {
			return fmt.Errorf("rule %q: primary_id and secondary_id are required", raw.Name)
		}
		if raw.PrimaryID == raw.SecondaryID {
			return fmt.Errorf("rule %q: primary_id and secondary_id must differ", raw.Name)
		}

		policy := make(ConsolidationPolicy, len(raw.Policy))
		for col, op := range raw.Policy {
			if !ValidOperator(op) {
				return fmt.Errorf("rule %q: unsupported operator %q for column %q", raw.Name, op, col)
			}
			policy[col] = op
		}

		r.rules[raw.Name] = ConsolidationRule{
			Name:        raw.Name,
			KeyColumn:   raw.KeyColumn,
			PrimaryID:   string(raw.PrimaryID),
			SecondaryID: string(raw.SecondaryID),
			Policy:      policy,
			Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
		}
	}
	return nil
}

// List returns all loaded rules, optionally filtered by key column.
func (r *FileSystemRuleRepository) List(_ context.Context, keyColumn string) ([]ConsolidationRule, error) {
	var out []ConsolidationRule
	for _, rule := range r.GetRules() {
		if keyColumn != "" && rule.KeyColumn != keyColumn {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

// GetRules returns all rules sorted by name.
func (r *FileSystemRuleRepository) GetRules() []ConsolidationRule {
	rules := make([]ConsolidationRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
	return rules
}
