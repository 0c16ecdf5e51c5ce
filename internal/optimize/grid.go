package optimize

import (
	"fmt"
	"sort"
)

// Grid maps a tunable parameter name to its ordered candidate values.
type Grid map[string][]any

// Combination assigns one value per parameter name.
type Combination map[string]any

// Combinations expands the full Cartesian product of the grid.
// Parameter names are walked in sorted order so the expansion (and
// everything ranked from it) is reproducible across runs.
func (g Grid) Combinations() []Combination {
	names := make([]string, 0, len(g))
	total := 1
	for name, candidates := range g {
		if len(candidates) == 0 {
			continue
		}
		names = append(names, name)
		total *= len(candidates)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil
	}

	out := make([]Combination, 0, total)
	idx := make([]int, len(names))
	for {
		combo := make(Combination, len(names))
		for i, name := range names {
			combo[name] = g[name][idx[i]]
		}
		out = append(out, combo)

		// Odometer increment, last name fastest.
		i := len(names) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g[names[i]]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

// String renders the combination with sorted keys, for logs and tables.
func (c Combination) String() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	s := ""
	for i, name := range names {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%v", name, c[name])
	}
	return s
}
