package aggregation

import (
	"log/slog"

	"github.com/aevon-lab/mediadash/internal/core/table"
)

// Consolidate merges the rule's secondary row into its primary row and drops
// the secondary. The merged row keeps the primary's position. When the key
// column or either row is missing the table is returned unchanged and merged
// is false, which makes repeated application a no-op.
func Consolidate(t *table.Table, rule ConsolidationRule) (out *table.Table, merged bool) {
	if t.Empty() || !t.HasColumn(rule.KeyColumn) {
		return t, false
	}

	matches := func(id string) func(table.Row) bool {
		return func(r table.Row) bool { return r.Get(rule.KeyColumn).String() == id }
	}
	pi := t.IndexWhere(matches(rule.PrimaryID))
	si := t.IndexWhere(matches(rule.SecondaryID))
	if pi < 0 || si < 0 {
		return t, false
	}

	primary, secondary := t.Row(pi), t.Row(si)
	mergedRow := primary.Clone()
	for _, col := range t.Columns() {
		if col == rule.KeyColumn {
			continue
		}
		op, ok := rule.Policy[col]
		if !ok {
			continue
		}
		mergedRow[col] = Operators[op].Merge(primary.Get(col), secondary.Get(col))
	}

	out = table.New(t.Columns()...)
	for i, r := range t.Rows() {
		switch i {
		case si:
			continue
		case pi:
			out.Append(mergedRow)
		default:
			out.Append(r)
		}
	}
	return out, true
}

// ConsolidateAll applies every rule in order and returns the number of merges.
func ConsolidateAll(t *table.Table, rules []ConsolidationRule) (*table.Table, int) {
	n := 0
	for _, rule := range rules {
		var merged bool
		t, merged = Consolidate(t, rule)
		if merged {
			n++
			slog.Debug("[Consolidate] Merged duplicate entity",
				"rule", rule.Name, "primary", rule.PrimaryID, "secondary", rule.SecondaryID)
		}
	}
	return t, n
}
