package virtual

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Slot is what the host hands a renderer for one materialized row.
type Slot struct {
	Index int
	Top   float64
	// Height is the height the windower currently assigns the row. Auto is
	// true while the row is unmeasured and Height is only the estimate.
	Height float64
	Auto   bool
}

// RowRenderer is the collaborator that turns a row into terminal output.
//
// RowFingerprint must change whenever anything that affects the rendered
// output changes (content length, sub-structure sizes, local UI state). The
// host re-renders a mounted row only when its fingerprint or the width
// changes. The returned string is the row's final layout: the host measures
// it with lipgloss.Height and reports that height.
type RowRenderer interface {
	RowCount() int
	RowKey(row int) string
	RowFingerprint(row int) uint64
	RenderRow(slot Slot, width int) string
}

type mount struct {
	index       int
	fingerprint uint64
	width       int
	content     string
	lines       []string
}

// Host keeps exactly the rows of the current window mounted, each with its
// last rendered output.
type Host struct {
	renderer RowRenderer
	measured func(row int) bool
	width    int

	mounted map[string]*mount
	byIndex map[int]string
}

// NewHost returns a host with nothing mounted. measured reports whether a
// row already has a measured height; it may be nil.
func NewHost(r RowRenderer, measured func(row int) bool) *Host {
	return &Host{
		renderer: r,
		measured: measured,
		mounted:  make(map[string]*mount),
		byIndex:  make(map[int]string),
	}
}

// SetWidth changes the render width. Mounted rows re-render on next use.
func (h *Host) SetWidth(w int) { h.width = w }

// Width is the current render width.
func (h *Host) Width() int { return h.width }

// Reset unmounts everything.
func (h *Host) Reset() {
	h.mounted = make(map[string]*mount)
	h.byIndex = make(map[int]string)
}

// Mounted is the number of mounted rows.
func (h *Host) Mounted() int { return len(h.mounted) }

// IsMounted reports whether the row with key is mounted.
func (h *Host) IsMounted(key string) bool {
	_, ok := h.mounted[key]
	return ok
}

// IndexOf returns the current index of a mounted row.
func (h *Host) IndexOf(key string) (int, bool) {
	m, ok := h.mounted[key]
	if !ok {
		return 0, false
	}
	return m.index, true
}

// Sync mounts the rows of win and unmounts everything else. It returns the
// indices of rows mounted by this call and the keys of rows it unmounted.
// Rows that stay mounted are re-rendered when their fingerprint changed but
// are not re-measured; that is the coordinator's job.
func (h *Host) Sync(win Window) (mounted []int, unmounted []string) {
	keep := make(map[string]bool, len(win.Rows))
	byIndex := make(map[int]string, len(win.Rows))
	for _, r := range win.Rows {
		key := h.renderer.RowKey(r.Index)
		keep[key] = true
		byIndex[r.Index] = key
		m, ok := h.mounted[key]
		if !ok {
			m = &mount{index: r.Index}
			h.mounted[key] = m
			h.render(m, r)
			mounted = append(mounted, r.Index)
			continue
		}
		m.index = r.Index
		if m.width != h.width || m.fingerprint != h.renderer.RowFingerprint(r.Index) {
			h.render(m, r)
		}
	}
	for key := range h.mounted {
		if !keep[key] {
			delete(h.mounted, key)
			unmounted = append(unmounted, key)
		}
	}
	h.byIndex = byIndex
	return mounted, unmounted
}

func (h *Host) render(m *mount, r Row) {
	slot := Slot{Index: r.Index, Top: r.Top, Height: r.Height}
	slot.Auto = h.measured == nil || !h.measured(r.Index)
	m.fingerprint = h.renderer.RowFingerprint(r.Index)
	m.width = h.width
	m.content = h.renderer.RenderRow(slot, h.width)
	m.lines = strings.Split(m.content, "\n")
}

// MeasureRow implements Source. The row is re-rendered first if it went
// stale since it was last drawn.
func (h *Host) MeasureRow(row int) (float64, bool) {
	key, ok := h.byIndex[row]
	if !ok {
		return 0, false
	}
	m, ok := h.mounted[key]
	if !ok {
		return 0, false
	}
	if m.width != h.width || m.fingerprint != h.renderer.RowFingerprint(row) {
		h.render(m, Row{Index: row})
	}
	return float64(lipgloss.Height(m.content)), true
}

// Lines returns the rendered lines of a mounted row.
func (h *Host) Lines(row int) ([]string, bool) {
	key, ok := h.byIndex[row]
	if !ok {
		return nil, false
	}
	m, ok := h.mounted[key]
	if !ok {
		return nil, false
	}
	return m.lines, true
}
