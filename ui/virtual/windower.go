package virtual

import "sort"

// Window defaults.
const (
	DefaultOverscan  = 3
	DefaultThreshold = 50
)

// Heights is the accessor the windower accumulates offsets from.
type Heights interface {
	RowHeight(row int) float64
}

// Row is one materialized row of a window.
type Row struct {
	Index  int
	Top    float64
	Height float64
}

// Bottom is the offset just past the row.
func (r Row) Bottom() float64 { return r.Top + r.Height }

// Window is the result of a windowing pass.
type Window struct {
	// Start and Stop are the inclusive bounds of Rows. Both are -1 for an
	// empty window.
	Start, Stop int
	Rows        []Row
	TotalHeight float64
	// Virtualized is false when the row count is at or below the threshold
	// and every row was returned.
	Virtualized bool
}

// Len is the number of rows in the window.
func (w Window) Len() int { return len(w.Rows) }

// Contains reports whether row is materialized by the window.
func (w Window) Contains(row int) bool {
	return len(w.Rows) > 0 && row >= w.Start && row <= w.Stop
}

// Windower computes visible row ranges from a cumulative-offset table.
//
// offsets[i] is the top of row i and offsets[rowCount] the total height.
// The table is rebuilt lazily: entries up to the watermark are trusted and
// everything past it is recomputed from the height accessor on next use.
type Windower struct {
	heights   Heights
	rowCount  int
	overscan  int
	threshold int

	offsets []float64
	valid   int // offsets[0..valid] are current
}

// WindowerOption configures a Windower.
type WindowerOption func(*Windower)

// WithOverscan sets the number of extra rows rendered on each side.
func WithOverscan(n int) WindowerOption {
	return func(w *Windower) {
		if n >= 0 {
			w.overscan = n
		}
	}
}

// WithThreshold sets the row count at or below which windowing is bypassed.
// A negative value always windows.
func WithThreshold(n int) WindowerOption {
	return func(w *Windower) { w.threshold = n }
}

// NewWindower returns a windower over heights with zero rows.
func NewWindower(heights Heights, opts ...WindowerOption) *Windower {
	w := &Windower{
		heights:   heights,
		overscan:  DefaultOverscan,
		threshold: DefaultThreshold,
		offsets:   []float64{0},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// RowCount is the number of rows the windower covers.
func (w *Windower) RowCount() int { return w.rowCount }

// Overscan is the configured overscan count.
func (w *Windower) Overscan() int { return w.overscan }

// Threshold is the configured virtualization threshold.
func (w *Windower) Threshold() int { return w.threshold }

// Virtualized reports whether the current row count is windowed.
func (w *Windower) Virtualized() bool { return w.rowCount > w.threshold }

// SetRowCount changes the number of rows. Growing keeps every valid offset
// (a pure append leaves the prefix untouched); shrinking truncates.
func (w *Windower) SetRowCount(n int) {
	if n < 0 {
		n = 0
	}
	if n == w.rowCount {
		return
	}
	if n < w.rowCount {
		w.offsets = w.offsets[:n+1]
		if w.valid > n {
			w.valid = n
		}
	} else {
		// The old total became the top of the first appended row and is
		// still correct; the appended rows are computed on demand.
		for len(w.offsets) < n+1 {
			w.offsets = append(w.offsets, 0)
		}
	}
	w.rowCount = n
}

// Splice records a structural edit: removed rows starting at at were
// replaced by inserted rows. Offsets from at onward are recomputed.
func (w *Windower) Splice(at, removed, inserted int) {
	if at < 0 {
		at = 0
	}
	n := w.rowCount - removed + inserted
	if n < at {
		n = at
	}
	w.Invalidate(at)
	if n+1 <= cap(w.offsets) {
		w.offsets = w.offsets[:n+1]
	} else {
		next := make([]float64, n+1)
		copy(next, w.offsets)
		w.offsets = next
	}
	w.rowCount = n
	if w.valid > n {
		w.valid = n
	}
}

// Invalidate marks the offsets of every row after row as stale. The top of
// row itself does not depend on its own height and stays valid.
func (w *Windower) Invalidate(row int) {
	if row < 0 {
		row = 0
	}
	if row < w.valid {
		w.valid = row
	}
}

// Reset discards the whole offset table.
func (w *Windower) Reset() {
	w.valid = 0
}

// ensure makes offsets[0..upto] valid.
func (w *Windower) ensure(upto int) {
	if upto > w.rowCount {
		upto = w.rowCount
	}
	for i := w.valid; i < upto; i++ {
		w.offsets[i+1] = w.offsets[i] + w.heights.RowHeight(i)
	}
	if upto > w.valid {
		w.valid = upto
	}
}

// Offset returns the cumulative offset (top) of row. Offset(RowCount())
// is the total height.
func (w *Windower) Offset(row int) float64 {
	if row <= 0 {
		return 0
	}
	if row > w.rowCount {
		row = w.rowCount
	}
	w.ensure(row)
	return w.offsets[row]
}

// TotalHeight is the sum of every row height.
func (w *Windower) TotalHeight() float64 {
	return w.Offset(w.rowCount)
}

// RowAt returns the index of the row covering offset y, clamped to the
// row range. It returns -1 when there are no rows.
func (w *Windower) RowAt(y float64) int {
	if w.rowCount == 0 {
		return -1
	}
	w.ensure(w.rowCount)
	// First row whose bottom lies past y.
	i := sort.Search(w.rowCount, func(i int) bool { return w.offsets[i+1] > y })
	if i >= w.rowCount {
		i = w.rowCount - 1
	}
	return i
}

// Window computes the rows to materialize for a viewport of height
// viewport scrolled to scroll.
//
// Every row with Offset(i) < scroll+viewport and Offset(i)+height > scroll
// is included, plus up to Overscan rows on each side. Below the threshold
// every row is returned.
func (w *Windower) Window(scroll, viewport float64) Window {
	if w.rowCount == 0 {
		return Window{Start: -1, Stop: -1}
	}
	w.ensure(w.rowCount)
	total := w.offsets[w.rowCount]

	if !w.Virtualized() {
		return w.collect(0, w.rowCount-1, total, false)
	}

	if scroll < 0 {
		scroll = 0
	}
	start := w.RowAt(scroll)
	end := scroll + viewport
	// Last row whose top lies before the bottom edge of the viewport.
	stop := sort.Search(w.rowCount, func(i int) bool { return w.offsets[i] >= end }) - 1
	if stop < start {
		stop = start
	}

	start -= w.overscan
	if start < 0 {
		start = 0
	}
	stop += w.overscan
	if stop > w.rowCount-1 {
		stop = w.rowCount - 1
	}
	return w.collect(start, stop, total, true)
}

func (w *Windower) collect(start, stop int, total float64, virtualized bool) Window {
	rows := make([]Row, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		rows = append(rows, Row{
			Index:  i,
			Top:    w.offsets[i],
			Height: w.offsets[i+1] - w.offsets[i],
		})
	}
	return Window{
		Start:       start,
		Stop:        stop,
		Rows:        rows,
		TotalHeight: total,
		Virtualized: virtualized,
	}
}
