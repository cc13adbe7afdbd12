package report

// Compress merges consecutive identical cells into groups. Two cells are
// identical when both Primary and Secondary match exactly. Expanding the
// result with Expand reproduces cells, and no two adjacent groups hold equal
// values. An empty input yields an empty result.
func Compress(cells []Cell) []Group {
	groups := make([]Group, 0, len(cells))
	for _, c := range cells {
		if n := len(groups); n > 0 && groups[n-1].Value == c {
			groups[n-1].Span++
			continue
		}
		groups = append(groups, Group{Value: c, Span: 1})
	}
	return groups
}

// Expand is the inverse of Compress.
func Expand(groups []Group) []Cell {
	cells := make([]Cell, 0, SpanTotal(groups))
	for _, g := range groups {
		for i := 0; i < g.Span; i++ {
			cells = append(cells, g.Value)
		}
	}
	return cells
}

// SpanTotal returns the number of columns covered by groups.
func SpanTotal(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += g.Span
	}
	return total
}
