package virtual

import (
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
)

// maxSettlePasses bounds the mount→measure→rewindow loop in refresh.
const maxSettlePasses = 8

// Config sizes the list. Zero values fall back to the package defaults.
type Config struct {
	DefaultHeight float64
	MinHeight     float64
	// Overscan is the number of extra rows mounted on each side of the
	// viewport. A negative value disables overscan.
	Overscan int
	// Threshold is the row count at or below which every row is mounted.
	// A negative value always windows.
	Threshold     int
	Epsilon       float64
	SettleMode    SettleMode
	SettleDelay   time.Duration
	MutationDelay time.Duration
	// WheelStep is the scroll distance of one mouse wheel notch.
	WheelStep float64
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		DefaultHeight: DefaultRowHeight,
		MinHeight:     DefaultMinHeight,
		Overscan:      DefaultOverscan,
		Threshold:     DefaultThreshold,
		Epsilon:       DefaultEpsilon,
		SettleDelay:   DefaultSettleDelay,
		MutationDelay: DefaultMutationDelay,
		WheelStep:     3,
	}
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(v *List) {
		if l != nil {
			v.log = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(v *List) {
		if m != nil {
			v.metrics = m
		}
	}
}

// WithScheduler replaces the coordinator's scheduler.
func WithScheduler(s Scheduler) Option {
	return func(v *List) { v.coord.SetScheduler(s) }
}

// List is the hosting component of the windowed renderer. It owns the
// height cache, the offset table, the coordinator and the scroll position;
// rows only report measurements through it.
type List struct {
	cfg      Config
	renderer RowRenderer

	cache    *HeightCache
	win      *Windower
	measurer *Measurer
	coord    *Coordinator
	host     *Host

	docID    string
	keys     []string
	keyIndex map[string]int

	width  int
	height int
	scroll float64
	window Window

	log     *zap.Logger
	metrics Metrics
}

// New constructs a List rendering rows from r. Call SetDocument before use.
func New(r RowRenderer, cfg Config, opts ...Option) *List {
	def := DefaultConfig()
	if cfg.DefaultHeight <= 0 {
		cfg.DefaultHeight = def.DefaultHeight
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = def.MinHeight
	}
	switch {
	case cfg.Overscan == 0:
		cfg.Overscan = def.Overscan
	case cfg.Overscan < 0:
		cfg.Overscan = 0
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.WheelStep <= 0 {
		cfg.WheelStep = def.WheelStep
	}

	cache := NewHeightCache(cfg.DefaultHeight, cfg.MinHeight)
	win := NewWindower(cache, WithOverscan(cfg.Overscan), WithThreshold(cfg.Threshold))
	coord := NewCoordinator()
	coord.SetMode(cfg.SettleMode)
	coord.SetDelays(cfg.SettleDelay, cfg.MutationDelay)

	l := &List{
		cfg:      cfg,
		renderer: r,
		cache:    cache,
		win:      win,
		measurer: NewMeasurer(cache, win, cfg.Epsilon),
		coord:    coord,
		host:     NewHost(r, cache.Has),
		keyIndex: make(map[string]int),
		window:   Window{Start: -1, Stop: -1},
		log:      zap.NewNop(),
		metrics:  nopMetrics{},
	}
	for _, o := range opts {
		o(l)
	}
	l.measurer.metrics = l.metrics
	l.coord.metrics = l.metrics
	return l
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// The cache, windower, coordinator and host are exposed for inspection; the
// list remains their only writer.
func (l *List) Cache() *HeightCache { return l.cache }
func (l *List) Windower() *Windower { return l.win }
func (l *List) Coordinator() *Coordinator { return l.coord }
func (l *List) Host() *Host { return l.host }
func (l *List) Window() Window { return l.window }
func (l *List) DocumentID() string { return l.docID }
func (l *List) Scroll() float64 { return l.scroll }
func (l *List) Width() int { return l.width }
func (l *List) Height() int { return l.height }
func (l *List) TotalHeight() float64 { return l.win.TotalHeight() }
func (l *List) RowCount() int { return l.win.RowCount() }
func (l *List) Virtualized() bool { return l.win.Virtualized() }
func (l *List) Offset(row int) float64 { return l.win.Offset(row) }
func (l *List) RowHeight(row int) float64 { return l.cache.RowHeight(row) }
func (l *List) StateOf(key string) State { return l.coord.StateOf(key) }

// IndexOf returns the current index of the row with key.
func (l *List) IndexOf(key string) (int, bool) {
	i, ok := l.keyIndex[key]
	return i, ok
}

// ---------------------------------------------------------------------------
// Structure
// ---------------------------------------------------------------------------

// SetSize updates the viewport. A width change invalidates every measured
// height because rows re-wrap.
func (l *List) SetSize(w, h int) {
	if w != l.width {
		l.cache.ClearAll()
		l.win.Reset()
		l.host.Reset()
		l.host.SetWidth(w)
	}
	l.width = w
	l.height = h
	l.refresh()
}

// SetDocument switches to a document identity. The cache, the offset table
// and every pending measurement are dropped together before the next
// window is computed, so no frame sees a half-reset state.
func (l *List) SetDocument(id string) {
	l.docID = id
	l.coord.CancelAll()
	l.cache.ClearAll()
	l.installKeys()
	l.win.SetRowCount(len(l.keys))
	l.win.Reset()
	l.host.Reset()
	l.scroll = 0
	l.metrics.DocumentReset()
	l.log.Debug("document reset",
		zap.String("document", id),
		zap.Int("rows", len(l.keys)),
		zap.Uint64("generation", l.coord.Generation()))
	l.refresh()
}

// SyncRows picks up rows added, removed or reordered within the current
// document. Offsets from the first changed index onward are recomputed; a
// pure append keeps every existing offset.
func (l *List) SyncRows() {
	old := l.keys
	l.installKeys()
	at := 0
	for at < len(old) && at < len(l.keys) && old[at] == l.keys[at] {
		at++
	}
	switch {
	case at == len(old) && at == len(l.keys):
		return
	case at == len(old):
		l.win.SetRowCount(len(l.keys))
	default:
		l.win.Splice(at, len(old)-at, len(l.keys)-at)
	}
	for key := range l.coordPendingOutside() {
		l.coord.Cancel(key)
	}
	if at < len(old) {
		l.cache.Retain(l.keyIndex)
	}
	l.log.Debug("rows changed",
		zap.Int("from", at),
		zap.Int("before", len(old)),
		zap.Int("after", len(l.keys)))
	l.clampScroll()
	l.refresh()
}

func (l *List) installKeys() {
	n := l.renderer.RowCount()
	keys := make([]string, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		keys[i] = l.renderer.RowKey(i)
		index[keys[i]] = i
	}
	l.keys = keys
	l.keyIndex = index
	l.cache.SetKeys(keys)
}

// coordPendingOutside returns pending keys that no longer name a row.
func (l *List) coordPendingOutside() map[string]bool {
	gone := make(map[string]bool)
	for key := range l.coord.rows {
		if _, ok := l.keyIndex[key]; !ok {
			gone[key] = true
		}
	}
	return gone
}

// ---------------------------------------------------------------------------
// Invalidation
// ---------------------------------------------------------------------------

// Invalidate schedules a re-measurement of the row with key after reason.
// Mounted rows pick up their new content right away but keep their old
// height until the measurement fires. Unknown keys are ignored.
func (l *List) Invalidate(key string, reason Reason) tea.Cmd {
	row, ok := l.keyIndex[key]
	if !ok {
		return nil
	}
	l.refresh()
	return l.coord.Trigger(row, key, reason)
}

// Refresh re-renders mounted rows whose fingerprint changed without
// scheduling any measurement. Use it for changes that cannot affect height.
func (l *List) Refresh() { l.refresh() }

// Update handles deferred measurements and mouse wheel scrolling.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MeasureDue:
		l.handleMeasureDue(msg)
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			l.ScrollBy(-l.cfg.WheelStep)
		case tea.MouseWheelDown:
			l.ScrollBy(l.cfg.WheelStep)
		}
	}
	return nil
}

func (l *List) handleMeasureDue(due MeasureDue) {
	row, ok := l.coord.Fire(due, l.win.RowCount(), l.host.IndexOf)
	if !ok {
		l.log.Debug("measurement dropped",
			zap.String("key", due.Key),
			zap.Uint64("seq", due.Seq),
			zap.Uint64("generation", due.Gen))
		return
	}
	l.measure(row)
	l.coord.Done(due.Key)
	l.refresh()
}

// measure re-measures a mounted row and keeps the content the user is
// looking at still when the row lies entirely above the viewport.
func (l *List) measure(row int) {
	oldBottom := l.win.Offset(row) + l.cache.RowHeight(row)
	delta, changed := l.measurer.Measure(l.host, row)
	if changed && oldBottom <= l.scroll {
		l.scroll += delta
	}
}

// refresh recomputes the window, mounts and unmounts rows, and measures the
// rows mounted for the first time. Measurements can move the window, so it
// repeats until no new row is mounted.
func (l *List) refresh() {
	if l.width <= 0 {
		l.clampScroll()
		l.window = l.win.Window(l.scroll, float64(l.height))
		return
	}
	for pass := 0; pass < maxSettlePasses; pass++ {
		l.clampScroll()
		l.window = l.win.Window(l.scroll, float64(l.height))
		mounted, unmounted := l.host.Sync(l.window)
		for _, key := range unmounted {
			l.coord.Cancel(key)
		}
		moved := false
		for _, row := range mounted {
			oldBottom := l.win.Offset(row) + l.cache.RowHeight(row)
			delta, changed := l.measurer.Measure(l.host, row)
			if changed {
				moved = true
				if oldBottom <= l.scroll {
					l.scroll += delta
				}
			}
		}
		if !moved {
			break
		}
	}
	l.metrics.WindowComputed(l.window.Len(), l.window.Virtualized)
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

func (l *List) maxScroll() float64 {
	m := l.win.TotalHeight() - float64(l.height)
	if m < 0 {
		return 0
	}
	return m
}

func (l *List) clampScroll() {
	if l.scroll > l.maxScroll() {
		l.scroll = l.maxScroll()
	}
	if l.scroll < 0 || math.IsNaN(l.scroll) {
		l.scroll = 0
	}
}

// ScrollTo moves the top of the viewport to y.
func (l *List) ScrollTo(y float64) {
	l.scroll = y
	l.refresh()
}

// ScrollBy moves the viewport by delta (positive scrolls down).
func (l *List) ScrollBy(delta float64) { l.ScrollTo(l.scroll + delta) }

// PageDown scrolls down by one full viewport height.
func (l *List) PageDown() { l.ScrollBy(float64(l.height)) }

// PageUp scrolls up by one full viewport height.
func (l *List) PageUp() { l.ScrollBy(-float64(l.height)) }

// HalfPageDown scrolls down by half the viewport height.
func (l *List) HalfPageDown() { l.ScrollBy(float64(l.height / 2)) }

// HalfPageUp scrolls up by half the viewport height.
func (l *List) HalfPageUp() { l.ScrollBy(-float64(l.height / 2)) }

// ScrollToTop positions the viewport at the first row.
func (l *List) ScrollToTop() { l.ScrollTo(0) }

// ScrollToBottom positions the viewport so the last row is fully visible.
func (l *List) ScrollToBottom() {
	// Rows near the end may be unmeasured; measuring them moves the total,
	// so aim at the bottom again once they are mounted.
	for i := 0; i < maxSettlePasses; i++ {
		target := l.maxScroll()
		l.ScrollTo(target)
		if l.maxScroll() == target {
			return
		}
	}
}

// AtBottom reports whether the viewport shows the end of the content.
func (l *List) AtBottom() bool { return l.scroll >= l.maxScroll() }

// EnsureVisible scrolls the minimum distance that brings row into view.
// A row taller than the viewport is aligned to its top.
func (l *List) EnsureVisible(row int) {
	if row < 0 || row >= l.win.RowCount() {
		return
	}
	top := l.win.Offset(row)
	bottom := top + l.cache.RowHeight(row)
	vh := float64(l.height)
	switch {
	case top < l.scroll:
		l.ScrollTo(top)
	case bottom > l.scroll+vh:
		target := bottom - vh
		if target > top {
			target = top
		}
		l.ScrollTo(target)
	}
}

// RowAtY resolves a line relative to the top of the viewport to a row
// index, or -1.
func (l *List) RowAtY(y int) int {
	if y < 0 || y >= l.height {
		return -1
	}
	abs := l.scroll + float64(y)
	if abs >= l.win.TotalHeight() {
		return -1
	}
	return l.win.RowAt(abs)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View composes the mounted rows into exactly Height() lines. Each row is
// drawn at its cumulative offset and clipped to the height the windower
// assigns it, so a row whose content grew keeps its old footprint until it
// is re-measured.
func (l *List) View() string {
	if l.height <= 0 || l.width <= 0 {
		return ""
	}
	out := make([]string, l.height)
	base := int(math.Floor(l.scroll))
	for _, r := range l.window.Rows {
		lines, ok := l.host.Lines(r.Index)
		if !ok {
			continue
		}
		top := int(math.Floor(r.Top)) - base
		span := int(math.Ceil(r.Height))
		for j := 0; j < span && j < len(lines); j++ {
			y := top + j
			if y < 0 {
				continue
			}
			if y >= l.height {
				break
			}
			out[y] = lines[j]
		}
	}
	return strings.Join(out, "\n")
}
