package framework

// arena stores per-vertex integer rows contiguously. Row v occupies
// items[offsets[v]:offsets[v+1]].
type arena struct {
	offsets []int
	items   []int
}

func newArena(rows [][]int) arena {
	total := 0
	for _, r := range rows {
		total += len(r)
	}
	a := arena{
		offsets: make([]int, len(rows)+1),
		items:   make([]int, 0, total),
	}
	for v, r := range rows {
		a.items = append(a.items, r...)
		a.offsets[v+1] = len(a.items)
	}
	return a
}

// row returns a capacity-limited view so appends by callers never clobber the
// next row.
func (a arena) row(v int) []int {
	lo, hi := a.offsets[v], a.offsets[v+1]
	return a.items[lo:hi:hi]
}

func (a arena) size() int { return len(a.items) }
