package reconcile

import "report-reconciler/core/table"

// Remap renames columns through the mapping and keeps only the columns that end
// up with a canonical name. Columns already carrying a canonical name are kept.
// When several columns land on the same canonical name the first one wins.
func Remap(t *table.Table, m ColumnMapping) *table.Table {
	renamed := t.Rename(func(name string) string {
		if canonical, ok := m.Lookup(name); ok {
			return canonical
		}
		return name
	})

	canonical := make(map[string]struct{}, m.Len())
	for _, name := range m.Canonical() {
		canonical[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(canonical))
	var drop []int
	for i, name := range renamed.Names() {
		if _, ok := canonical[name]; !ok {
			drop = append(drop, i)
			continue
		}
		if _, dup := seen[name]; dup {
			drop = append(drop, i)
			continue
		}
		seen[name] = struct{}{}
	}
	return renamed.Drop(drop...)
}
