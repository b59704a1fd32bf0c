package parser

// window keeps completed and scannable states of the last size+1 columns.
// States drawn from a column of age n are copied with n*penalty added to their scores,
// so that parsing may skip up to size unexpected tokens.
type window struct {
	completed [][]int
	scannable [][]int
	last      int
	penalty   float64
}

func newWindow(size int, penalty float64) *window {
	return &window{
		completed: make([][]int, size+1),
		scannable: make([][]int, size+1),
		last:      size,
		penalty:   penalty,
	}
}

func (w *window) push(col *column) {
	w.last = (w.last + 1) % len(w.completed)
	w.completed[w.last] = col.completed
	w.scannable[w.last] = col.scannable
}

func (w *window) collect(c *chart, lists [][]int) []int {
	n := len(lists)
	var result []int
	for age := 0; age < n; age++ {
		list := lists[(w.last-age+n)%n]
		if age == 0 {
			result = append(result, list...)
			continue
		}

		for _, idx := range list {
			result = append(result, c.copyState(idx, float64(age)*w.penalty))
		}
	}
	return result
}

func (w *window) allCompleted(c *chart) []int {
	return w.collect(c, w.completed)
}

func (w *window) allScannable(c *chart) []int {
	return w.collect(c, w.scannable)
}
