package virtual

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduled struct {
	delay time.Duration
	due   MeasureDue
}

// captureScheduler records deferrals instead of starting timers.
type captureScheduler struct {
	calls []scheduled
}

func (s *captureScheduler) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	due, _ := msg.(MeasureDue)
	s.calls = append(s.calls, scheduled{delay: d, due: due})
	return func() tea.Msg { return msg }
}

func (s *captureScheduler) last() MeasureDue {
	return s.calls[len(s.calls)-1].due
}

func newTestCoordinator() (*Coordinator, *captureScheduler, *recMetrics) {
	c := NewCoordinator()
	sched := &captureScheduler{}
	c.SetScheduler(sched.schedule)
	rec := newRecMetrics()
	c.metrics = rec
	return c, sched, rec
}

func TestCoordinator_DelayPerReason(t *testing.T) {
	c, sched, _ := newTestCoordinator()
	c.Trigger(1, "a", ReasonEditToggled)
	c.Trigger(2, "b", ReasonCommentsToggled)
	c.Trigger(3, "c", ReasonTextGrowth)
	c.Trigger(4, "d", ReasonCommentAdded)
	c.Trigger(5, "e", ReasonCommentDeleted)
	c.Trigger(6, "f", ReasonContentCommitted)

	want := []time.Duration{50, 50, 50, 100, 100, 100}
	require.Len(t, sched.calls, len(want))
	for i, w := range want {
		assert.Equal(t, w*time.Millisecond, sched.calls[i].delay, "call %d", i)
	}
}

func TestCoordinator_SetDelaysKeepsNonPositive(t *testing.T) {
	c := NewCoordinator()
	c.SetDelays(20*time.Millisecond, 0)
	assert.Equal(t, 20*time.Millisecond, c.Delay(ReasonEditToggled))
	assert.Equal(t, DefaultMutationDelay, c.Delay(ReasonCommentAdded))
}

func TestCoordinator_FrameModeHasNoDelay(t *testing.T) {
	c := NewCoordinator()
	c.SetMode(SettleFrame)
	assert.Equal(t, SettleFrame, c.Mode())
	assert.Zero(t, c.Delay(ReasonCommentAdded))

	cmd := c.Trigger(0, "a", ReasonEditToggled)
	require.NotNil(t, cmd)
	due, ok := cmd().(MeasureDue)
	require.True(t, ok)
	assert.Equal(t, "a", due.Key)
}

func TestParseSettleMode(t *testing.T) {
	assert.Equal(t, SettleFrame, ParseSettleMode("frame"))
	assert.Equal(t, SettleTimer, ParseSettleMode("timer"))
	assert.Equal(t, SettleTimer, ParseSettleMode(""))
}

func TestCoordinator_TriggerLeavesRowPending(t *testing.T) {
	c, _, rec := newTestCoordinator()
	c.Trigger(7, "r7", ReasonEditToggled)
	assert.Equal(t, StatePending, c.StateOf("r7"))
	assert.Equal(t, StateStable, c.StateOf("r8"))
	assert.Equal(t, 1, c.Pending())
	assert.Equal(t, 1, rec.triggered[ReasonEditToggled])
}

func TestCoordinator_RapidTriggersCoalesce(t *testing.T) {
	c, sched, rec := newTestCoordinator()
	for i := 0; i < 5; i++ {
		c.Trigger(7, "r7", ReasonTextGrowth)
	}
	require.Len(t, sched.calls, 5)
	assert.Equal(t, 4, rec.coalesced)

	fired := 0
	for _, s := range sched.calls {
		if _, ok := c.Fire(s.due, 100, nil); ok {
			fired++
			c.Done(s.due.Key)
		}
	}
	assert.Equal(t, 1, fired, "only the last trigger measures")
	assert.Equal(t, 4, rec.dropped["superseded"])
	assert.Equal(t, StateStable, c.StateOf("r7"))
}

func TestCoordinator_FireTransitionsThroughMeasuring(t *testing.T) {
	c, sched, _ := newTestCoordinator()
	c.Trigger(3, "r3", ReasonCommentsToggled)

	row, ok := c.Fire(sched.last(), 10, nil)
	require.True(t, ok)
	assert.Equal(t, 3, row)
	assert.Equal(t, StateMeasuring, c.StateOf("r3"))

	_, ok = c.Fire(sched.last(), 10, nil)
	assert.False(t, ok, "a tick cannot fire twice")

	c.Done("r3")
	assert.Equal(t, StateStable, c.StateOf("r3"))
	assert.Zero(t, c.Pending())
}

func TestCoordinator_TriggerWhileMeasuringSchedulesAgain(t *testing.T) {
	c, sched, _ := newTestCoordinator()
	c.Trigger(3, "r3", ReasonEditToggled)
	_, ok := c.Fire(sched.last(), 10, nil)
	require.True(t, ok)

	c.Trigger(3, "r3", ReasonTextGrowth)
	c.Done("r3")
	assert.Equal(t, StatePending, c.StateOf("r3"), "Done does not swallow a newer trigger")

	_, ok = c.Fire(sched.last(), 10, nil)
	assert.True(t, ok)
}

func TestCoordinator_CancelAllDropsInFlightTicks(t *testing.T) {
	c, sched, rec := newTestCoordinator()
	c.Trigger(7, "r7", ReasonEditToggled)
	stale := sched.last()

	gen := c.Generation()
	c.CancelAll()
	assert.Equal(t, gen+1, c.Generation())
	assert.Zero(t, c.Pending())

	// The same key re-triggered in the new document must not let the old
	// tick through.
	c.Trigger(7, "r7", ReasonEditToggled)
	_, ok := c.Fire(stale, 5000, nil)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.dropped["stale_generation"])
	assert.Equal(t, StatePending, c.StateOf("r7"))
}

func TestCoordinator_CancelledRowIsDropped(t *testing.T) {
	c, sched, rec := newTestCoordinator()
	c.Trigger(1, "a", ReasonEditToggled)
	c.Cancel("a")
	_, ok := c.Fire(sched.last(), 10, nil)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.dropped["cancelled"])
}

func TestCoordinator_OutOfRangeIsDropped(t *testing.T) {
	c, sched, rec := newTestCoordinator()
	c.Trigger(60, "r60", ReasonCommentDeleted)
	_, ok := c.Fire(sched.last(), 50, nil)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.dropped["out_of_range"])
	assert.Equal(t, StateStable, c.StateOf("r60"))
}

func TestCoordinator_ResolveFollowsMovedRow(t *testing.T) {
	c, sched, rec := newTestCoordinator()
	c.Trigger(4, "k", ReasonEditToggled)

	row, ok := c.Fire(sched.last(), 10, func(string) (int, bool) { return 6, true })
	require.True(t, ok)
	assert.Equal(t, 6, row)
	c.Done("k")

	c.Trigger(4, "k", ReasonEditToggled)
	_, ok = c.Fire(sched.last(), 10, func(string) (int, bool) { return 0, false })
	assert.False(t, ok)
	assert.Equal(t, 1, rec.dropped["unmounted"])
	assert.Zero(t, c.Pending())
}

func TestReason_Mutation(t *testing.T) {
	assert.False(t, ReasonEditToggled.Mutation())
	assert.False(t, ReasonTextGrowth.Mutation())
	assert.True(t, ReasonCommentAdded.Mutation())
	assert.True(t, ReasonContentCommitted.Mutation())
	assert.Equal(t, "comment_deleted", ReasonCommentDeleted.String())
}
