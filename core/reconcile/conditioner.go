package reconcile

import (
	"report-reconciler/core/table"
	"report-reconciler/core/utils"
)

// Condition removes the noise columns from both tables.
// Names match case-insensitively and ignore surrounding whitespace. Absent noise
// columns are not an error and rows are never touched.
func Condition(manual, automated *table.Table, noise []string) ConditionResult {
	m, droppedManual := dropNoise(manual, noise)
	a, droppedAutomated := dropNoise(automated, noise)
	return ConditionResult{
		Manual:           m,
		Automated:        a,
		DroppedManual:    droppedManual,
		DroppedAutomated: droppedAutomated,
	}
}

func dropNoise(t *table.Table, noise []string) (*table.Table, []string) {
	folded := make(map[string]struct{}, len(noise))
	for _, n := range noise {
		folded[utils.FoldName(n)] = struct{}{}
	}

	var (
		positions []int
		dropped   []string
	)
	for i, name := range t.Names() {
		if _, ok := folded[utils.FoldName(name)]; ok {
			positions = append(positions, i)
			dropped = append(dropped, name)
		}
	}
	return t.Drop(positions...), dropped
}
