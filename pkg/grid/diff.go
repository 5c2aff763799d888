package grid

// Diff returns the widgets whose ids appear in only one of the layouts:
// those of a missing from b, followed by those of b missing from a.
func Diff(a, b Layout) Layout {
	inA := ids(a)
	inB := ids(b)

	var out Layout
	for _, w := range a {
		if _, ok := inB[w.ID]; !ok {
			out = append(out, w)
		}
	}
	for _, w := range b {
		if _, ok := inA[w.ID]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// Added returns the widgets of next whose ids are not in prev.
func Added(prev, next Layout) Layout {
	known := ids(prev)
	var out Layout
	for _, w := range next {
		if _, ok := known[w.ID]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// Removed returns the widgets of prev whose ids are not in next.
func Removed(prev, next Layout) Layout {
	return Added(next, prev)
}

func ids(l Layout) map[string]struct{} {
	m := make(map[string]struct{}, len(l))
	for _, w := range l {
		m[w.ID] = struct{}{}
	}
	return m
}
