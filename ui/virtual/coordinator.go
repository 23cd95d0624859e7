package virtual

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// Deferral defaults. SettleDelay covers re-renders driven by local row state
// (edit mode, comment panel, typing); MutationDelay covers changes that pass
// through the document store before the row re-renders.
const (
	DefaultSettleDelay   = 50 * time.Millisecond
	DefaultMutationDelay = 100 * time.Millisecond
)

// Reason identifies the interaction that may have resized a row.
type Reason int

const (
	ReasonEditToggled Reason = iota
	ReasonCommentsToggled
	ReasonTextGrowth
	ReasonCommentAdded
	ReasonCommentDeleted
	ReasonContentCommitted
)

func (r Reason) String() string {
	switch r {
	case ReasonEditToggled:
		return "edit_toggled"
	case ReasonCommentsToggled:
		return "comments_toggled"
	case ReasonTextGrowth:
		return "text_growth"
	case ReasonCommentAdded:
		return "comment_added"
	case ReasonCommentDeleted:
		return "comment_deleted"
	case ReasonContentCommitted:
		return "content_committed"
	default:
		return "unknown"
	}
}

// Mutation reports whether the reason goes through an external state update
// before the row re-renders.
func (r Reason) Mutation() bool {
	switch r {
	case ReasonCommentAdded, ReasonCommentDeleted, ReasonContentCommitted:
		return true
	}
	return false
}

// State is the re-measurement state of one row.
type State int

const (
	StateStable State = iota
	StatePending
	StateMeasuring
)

func (s State) String() string {
	switch s {
	case StateStable:
		return "stable"
	case StatePending:
		return "pending"
	case StateMeasuring:
		return "measuring"
	default:
		return "unknown"
	}
}

// SettleMode selects how the coordinator waits for a row to settle.
type SettleMode int

const (
	// SettleTimer waits a fixed delay per Reason.
	SettleTimer SettleMode = iota
	// SettleFrame measures on the first update after the triggering one,
	// once the state change has been applied and rendered.
	SettleFrame
)

// ParseSettleMode maps a config string to a SettleMode. Unknown values map
// to SettleTimer.
func ParseSettleMode(s string) SettleMode {
	if s == "frame" {
		return SettleFrame
	}
	return SettleTimer
}

// MeasureDue is delivered when a scheduled re-measurement should run.
type MeasureDue struct {
	Key    string
	Row    int
	Seq    uint64
	Gen    uint64
	Reason Reason
}

// Scheduler turns a deferral into a command that delivers msg later.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TickScheduler delivers msg after d.
func TickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// FrameScheduler delivers msg as soon as the runtime processes commands,
// which is after the current update and its render.
func FrameScheduler(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

type rowState struct {
	state  State
	seq    uint64
	reason Reason
}

// Coordinator schedules deferred re-measurement of rows.
//
// Every trigger bumps a sequence number stored for the row; a MeasureDue
// only runs if it carries the latest sequence for its row and the current
// generation. Superseded and cancelled ticks therefore fall through as
// no-ops instead of having to be stopped.
type Coordinator struct {
	settleDelay   time.Duration
	mutationDelay time.Duration
	mode          SettleMode
	schedule      Scheduler

	gen  uint64
	seq  uint64
	rows map[string]*rowState

	metrics Metrics
}

// NewCoordinator returns a coordinator with the default delays in timer mode.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		settleDelay:   DefaultSettleDelay,
		mutationDelay: DefaultMutationDelay,
		schedule:      TickScheduler,
		rows:          make(map[string]*rowState),
		metrics:       nopMetrics{},
	}
}

// SetDelays overrides the settle and mutation delays. Non-positive values
// keep the current setting.
func (c *Coordinator) SetDelays(settle, mutation time.Duration) {
	if settle > 0 {
		c.settleDelay = settle
	}
	if mutation > 0 {
		c.mutationDelay = mutation
	}
}

// SetMode switches between timer and frame settling.
func (c *Coordinator) SetMode(mode SettleMode) {
	c.mode = mode
	if mode == SettleFrame {
		c.schedule = FrameScheduler
	} else {
		c.schedule = TickScheduler
	}
}

// SetScheduler replaces the scheduler. Tests use it to capture deferrals.
func (c *Coordinator) SetScheduler(s Scheduler) {
	if s != nil {
		c.schedule = s
	}
}

// Mode is the current settle mode.
func (c *Coordinator) Mode() SettleMode { return c.mode }

// Generation is the current document generation.
func (c *Coordinator) Generation() uint64 { return c.gen }

// Delay returns the deferral used for reason.
func (c *Coordinator) Delay(reason Reason) time.Duration {
	if c.mode == SettleFrame {
		return 0
	}
	if reason.Mutation() {
		return c.mutationDelay
	}
	return c.settleDelay
}

// Trigger schedules a re-measurement of the row at index row with key key.
// The cached height is left in place until the measurement runs. A trigger
// for a row that is already pending supersedes the earlier one.
func (c *Coordinator) Trigger(row int, key string, reason Reason) tea.Cmd {
	rs, ok := c.rows[key]
	if !ok {
		rs = &rowState{}
		c.rows[key] = rs
	}
	if rs.state == StatePending {
		c.metrics.Coalesced()
	}
	c.seq++
	rs.state = StatePending
	rs.seq = c.seq
	rs.reason = reason
	c.metrics.Triggered(reason)

	return c.schedule(c.Delay(reason), MeasureDue{
		Key:    key,
		Row:    row,
		Seq:    c.seq,
		Gen:    c.gen,
		Reason: reason,
	})
}

// Fire validates a due measurement. It returns the row index to measure
// and true only when the tick is current (generation and sequence match),
// the row is still tracked, and resolve places it inside [0, rowCount).
// On success the row moves to StateMeasuring and the caller must call Done.
// Every rejected tick is dropped without side effects on other rows.
func (c *Coordinator) Fire(due MeasureDue, rowCount int, resolve func(key string) (int, bool)) (int, bool) {
	if due.Gen != c.gen {
		c.metrics.MeasureDropped("stale_generation")
		return 0, false
	}
	rs, ok := c.rows[due.Key]
	if !ok {
		c.metrics.MeasureDropped("cancelled")
		return 0, false
	}
	if rs.seq != due.Seq || rs.state != StatePending {
		c.metrics.MeasureDropped("superseded")
		return 0, false
	}
	row := due.Row
	if resolve != nil {
		idx, found := resolve(due.Key)
		if !found {
			delete(c.rows, due.Key)
			c.metrics.MeasureDropped("unmounted")
			return 0, false
		}
		row = idx
	}
	if row < 0 || row >= rowCount {
		delete(c.rows, due.Key)
		c.metrics.MeasureDropped("out_of_range")
		return 0, false
	}
	rs.state = StateMeasuring
	return row, true
}

// Done marks a measuring row stable again.
func (c *Coordinator) Done(key string) {
	if rs, ok := c.rows[key]; ok && rs.state == StateMeasuring {
		delete(c.rows, key)
	}
}

// Cancel forgets any pending measurement for key.
func (c *Coordinator) Cancel(key string) {
	delete(c.rows, key)
}

// CancelAll forgets every pending measurement and starts a new generation
// so ticks already in flight can never land.
func (c *Coordinator) CancelAll() {
	c.gen++
	c.rows = make(map[string]*rowState)
}

// StateOf returns the state of the row with key.
func (c *Coordinator) StateOf(key string) State {
	if rs, ok := c.rows[key]; ok {
		return rs.state
	}
	return StateStable
}

// Pending is the number of rows waiting for or undergoing measurement.
func (c *Coordinator) Pending() int { return len(c.rows) }
