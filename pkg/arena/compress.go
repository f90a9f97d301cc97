package arena

import "slices"

// CompressPriorities returns a copy of the arena whose priorities are
// renumbered, independently per priority component, to the smallest dense
// range that preserves both the relative order and the parity of every
// priority. Consecutive distinct priorities of equal parity collapse onto one
// value. Winning regions are unchanged; only the number of distinct
// priorities the solvers iterate over shrinks.
//
// For example the priorities {2, 4, 5, 7, 8} become {0, 0, 1, 1, 2}, and
// {3, 6} becomes {1, 2}.
func (a *Arena) CompressPriorities() *Arena {
	tables := make([]map[int]int, a.arity)
	for k := range tables {
		tables[k] = compressionTable(a, k)
	}
	return a.MapPriorities(func(k, p int) int { return tables[k][p] })
}

func compressionTable(a *Arena, k int) map[int]int {
	distinct := make([]int, 0, len(a.nodes))
	for _, n := range a.nodes {
		distinct = append(distinct, n.Priorities[k])
	}
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	table := make(map[int]int, len(distinct))
	if len(distinct) == 0 {
		return table
	}
	val := distinct[0] % 2
	for i, p := range distinct {
		if i > 0 && p%2 != distinct[i-1]%2 {
			val++
		}
		table[p] = val
	}
	return table
}
