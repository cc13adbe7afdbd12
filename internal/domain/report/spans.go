package report

// Spans counts labels per key, where key normalises a raw label before
// grouping. Every occurrence of a key is counted, wherever it appears, and
// results are ordered by the first occurrence of each key. Callers building
// header rows pass labels already clustered by key, in which case the counts
// are exactly the column spans. A nil key groups by the label itself.
func Spans(labels []string, key func(string) string) []Span {
	if key == nil {
		key = func(s string) string { return s }
	}

	index := make(map[string]int, len(labels))
	spans := make([]Span, 0, len(labels))
	for _, label := range labels {
		k := key(label)
		if i, ok := index[k]; ok {
			spans[i].Count++
			continue
		}
		index[k] = len(spans)
		spans = append(spans, Span{Label: k, Count: 1})
	}
	return spans
}

// Contiguous reports whether every key in labels occupies a single run,
// i.e. whether Spans can be rendered as adjacent colspans without
// reordering the columns.
func Contiguous(labels []string, key func(string) string) bool {
	if key == nil {
		key = func(s string) string { return s }
	}
	seen := make(map[string]bool, len(labels))
	prev := ""
	for i, label := range labels {
		k := key(label)
		if i > 0 && k == prev {
			continue
		}
		if seen[k] {
			return false
		}
		seen[k] = true
		prev = k
	}
	return true
}
