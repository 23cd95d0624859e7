package virtual

import "math"

// DefaultEpsilon is the smallest height change that invalidates offsets.
const DefaultEpsilon = 0.5

// Source produces the rendered height of a mounted row. ok is false when
// the row is not mounted, in which case nothing is measured.
type Source interface {
	MeasureRow(row int) (height float64, ok bool)
}

// Measurer reports rendered heights into the cache and marks the windower's
// offsets stale when a height actually moved.
type Measurer struct {
	cache   *HeightCache
	win     *Windower
	epsilon float64
	metrics Metrics
}

// NewMeasurer wires a measurer to the cache and windower it keeps in sync.
func NewMeasurer(cache *HeightCache, win *Windower, epsilon float64) *Measurer {
	if !(epsilon >= 0) {
		epsilon = DefaultEpsilon
	}
	return &Measurer{cache: cache, win: win, epsilon: epsilon, metrics: nopMetrics{}}
}

// Report stores a measured height for row. It returns the change relative
// to the height the windower was using and whether that change exceeded
// epsilon. A change within epsilon marks the row measured at its current
// height. Out-of-range rows are dropped.
func (m *Measurer) Report(row int, h float64) (delta float64, changed bool) {
	if row < 0 || row >= m.win.RowCount() {
		m.metrics.MeasureDropped("out_of_range")
		return 0, false
	}
	old := m.cache.Get(row)
	m.cache.Set(row, h)
	delta = m.cache.Get(row) - old
	changed = math.Abs(delta) > m.epsilon
	if changed {
		m.win.Invalidate(row)
	} else {
		// Keep the height the offset table was built with.
		if m.cache.Has(row) {
			m.cache.Set(row, old)
		}
		delta = 0
	}
	m.metrics.MeasurePass(changed)
	return delta, changed
}

// Measure asks src for row's rendered height and reports it. Unmounted rows
// are a silent no-op.
func (m *Measurer) Measure(src Source, row int) (delta float64, changed bool) {
	h, ok := src.MeasureRow(row)
	if !ok {
		m.metrics.MeasureDropped("unmounted")
		return 0, false
	}
	return m.Report(row, h)
}
