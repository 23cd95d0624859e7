package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haree123/document-editor/config"
	"github.com/Haree123/document-editor/document"
	"github.com/Haree123/document-editor/msg"
	"github.com/Haree123/document-editor/ui/virtual"
)

type scheduled struct {
	delay time.Duration
	msg   tea.Msg
}

// capture records measurements instead of starting timers.
type capture struct {
	calls []scheduled
}

func (c *capture) schedule(d time.Duration, m tea.Msg) tea.Cmd {
	c.calls = append(c.calls, scheduled{delay: d, msg: m})
	return func() tea.Msg { return m }
}

func (c *capture) last(t *testing.T) scheduled {
	t.Helper()
	require.NotEmpty(t, c.calls)
	return c.calls[len(c.calls)-1]
}

// deliver feeds every recorded measurement to m, as the runtime would once
// the delays elapse.
func (c *capture) deliver(t *testing.T, m Model) Model {
	t.Helper()
	calls := c.calls
	c.calls = nil
	for _, s := range calls {
		m, _ = step(t, m, s.msg)
	}
	return m
}

func step(t *testing.T, m Model, in tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	out, cmd := m.Update(in)
	next, ok := out.(Model)
	require.True(t, ok)
	return next, cmd
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func pressAll(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = step(t, m, press(k))
	}
	return m
}

func newTestModel(t *testing.T) (Model, *capture) {
	t.Helper()
	c := &capture{}
	m := New(Options{Config: config.Defaults(), Scheduler: c.schedule})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, c
}

func TestNew_OpensDefaultDocument(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, 3, m.list.RowCount())
	assert.Equal(t, "default", m.source)
	assert.Equal(t, 99, m.list.Width())
	assert.Equal(t, 37, m.list.Height())
	assert.False(t, m.list.Virtualized())

	view := ansi.Strip(m.renderView())
	assert.Contains(t, view, "Compliance Document")
	assert.Contains(t, view, "3 blocks")
	assert.NotContains(t, view, "virtualized")
	assert.Len(t, strings.Split(m.renderView(), "\n"), 40)
}

func TestSelection_MovesAndClamps(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAll(t, m, "n")
	assert.Equal(t, "block-1", m.rows.selected)
	m = pressAll(t, m, "n", "n", "n", "n")
	assert.Equal(t, "block-3", m.rows.selected)
	m = pressAll(t, m, "p")
	assert.Equal(t, "block-2", m.rows.selected)
	m = pressAll(t, m, "esc")
	assert.Empty(t, m.rows.selected)
}

func TestEdit_RemeasuresAfterSettle(t *testing.T) {
	m, c := newTestModel(t)
	m = pressAll(t, m, "n", "e")
	require.Equal(t, StateEditing, m.state)
	assert.Equal(t, "block-1", m.rows.editing)
	assert.Equal(t, virtual.StatePending, m.list.StateOf("block-1"))
	assert.Equal(t, config.Defaults().SettleDelay, c.last(t).delay)

	m = c.deliver(t, m)
	assert.Equal(t, virtual.StateStable, m.list.StateOf("block-1"))
	want := lipgloss.Height(m.rows.RenderRow(virtual.Slot{Index: 0}, m.list.Width()))
	assert.Equal(t, float64(want), m.list.RowHeight(0))
}

func TestEdit_TypingCoalescesAndSaves(t *testing.T) {
	m, c := newTestModel(t)
	m = pressAll(t, m, "n", "e")
	c.calls = nil

	m = pressAll(t, m, "z", "z", "z")
	require.Len(t, c.calls, 3, "one trigger per keystroke")
	staged, ok := m.store.Staged("block-1")
	require.True(t, ok)
	assert.Equal(t, "Document Titlezzz", staged)

	m = c.deliver(t, m)
	assert.Equal(t, virtual.StateStable, m.list.StateOf("block-1"))

	m = pressAll(t, m, "ctrl+s")
	assert.Equal(t, StateBrowsing, m.state)
	b, err := m.store.Block("block-1")
	require.NoError(t, err)
	assert.Equal(t, "Document Titlezzz", b.Content)

	m, _ = step(t, m, msg.BlockCommitted{BlockID: "block-1", Changed: true})
	assert.Equal(t, config.Defaults().MutationDelay, c.last(t).delay)
	m = c.deliver(t, m)
	assert.Equal(t, virtual.StateStable, m.list.StateOf("block-1"))
}

func TestEdit_EscapeDiscardsStaged(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAll(t, m, "n", "e", "z", "esc")
	assert.Equal(t, StateBrowsing, m.state)
	_, ok := m.store.Staged("block-1")
	assert.False(t, ok)
	b, _ := m.store.Block("block-1")
	assert.Equal(t, "Document Title", b.Content)
}

func TestEdit_ReadOnlyBlockIsRefused(t *testing.T) {
	m, c := newTestModel(t)
	m = pressAll(t, m, "n", "n", "n")
	require.Equal(t, "block-3", m.rows.selected)
	c.calls = nil

	m = pressAll(t, m, "e")
	assert.Equal(t, StateBrowsing, m.state)
	assert.Empty(t, c.calls)
	assert.Equal(t, 1, m.toasts.Len())
	assert.Equal(t, 36, m.list.Height(), "the toast takes a line from the list")
}

func TestCommitDue_OnlyLatestStageCommits(t *testing.T) {
	m, _ := newTestModel(t)
	first, err := m.store.Stage("block-2", "first")
	require.NoError(t, err)
	second, err := m.store.Stage("block-2", "second")
	require.NoError(t, err)

	m, cmd := step(t, m, msg.CommitDue{BlockID: "block-2", Seq: first})
	assert.Nil(t, cmd)

	m, cmd = step(t, m, msg.CommitDue{BlockID: "block-2", Seq: second})
	require.NotNil(t, cmd)
	assert.Equal(t, msg.BlockCommitted{BlockID: "block-2", Changed: true}, cmd())
	b, _ := m.store.Block("block-2")
	assert.Equal(t, "second", b.Content)
}

func TestComments_AddThroughForm(t *testing.T) {
	m, c := newTestModel(t)
	m = pressAll(t, m, "n", "n", "a")
	require.Equal(t, StateCommenting, m.state)
	assert.Equal(t, virtual.StatePending, m.list.StateOf("block-2"))

	m = pressAll(t, m, "enter")
	assert.Equal(t, StateCommenting, m.state, "empty comments are refused")

	m = pressAll(t, m, "h", "i", "enter")
	assert.Equal(t, StateBrowsing, m.state)
	cs := m.store.Comments("block-2")
	require.Len(t, cs, 1)
	assert.Equal(t, "hi", cs[0].Content)
	assert.Equal(t, config.DefaultAuthor, cs[0].Author)
	assert.True(t, m.rows.open["block-2"])

	m, _ = step(t, m, msg.CommentChanged{BlockID: "block-2", Added: true})
	assert.Equal(t, config.Defaults().MutationDelay, c.last(t).delay)
	m = c.deliver(t, m)
	assert.Equal(t, virtual.StateStable, m.list.StateOf("block-2"))
	assert.Contains(t, ansi.Strip(m.list.View()), "Comments (1)")
}

func TestComments_ToggleAndDelete(t *testing.T) {
	m, c := newTestModel(t)
	m = pressAll(t, m, "2")
	require.Equal(t, "test-doc-all-types", m.list.DocumentID())
	m = pressAll(t, m, "n", "n", "n", "n")
	require.Equal(t, "block-4", m.rows.selected)
	c.calls = nil

	m = pressAll(t, m, "c")
	assert.True(t, m.rows.open["block-4"])
	assert.Equal(t, config.Defaults().SettleDelay, c.last(t).delay)

	m, cmd := step(t, m, press("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, msg.CommentChanged{BlockID: "block-4"}, cmd())
	assert.Len(t, m.store.Comments("block-4"), 1)
}

func TestAI_CommitsResult(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAll(t, m, "n", "n", "i")
	assert.True(t, m.rows.pending["block-2"])

	m, _ = step(t, m, msg.AIResult{BlockID: "block-2", Action: document.Improve, Content: "better"})
	assert.False(t, m.rows.pending["block-2"])
	b, _ := m.store.Block("block-2")
	assert.Equal(t, "better", b.Content)

	m = pressAll(t, m, "u")
	b, _ = m.store.Block("block-2")
	assert.Contains(t, b.Content, "editable paragraph")
	assert.Equal(t, virtual.StatePending, m.list.StateOf("block-2"))
}

func TestAI_ReadOnlyIsRefused(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAll(t, m, "n", "n", "n", "s")
	assert.False(t, m.rows.pending["block-3"])
	assert.Equal(t, 1, m.toasts.Len())
}

func TestAI_ResultAfterDocumentSwitchIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAll(t, m, "n", "n", "i", "1")
	m, cmd := step(t, m, msg.AIResult{BlockID: "block-2", Action: document.Improve, Content: "late"})
	assert.Nil(t, cmd)
	b, _ := m.store.Block("block-2")
	assert.NotEqual(t, "late", b.Content)
}

func TestPreset_LargeDocumentIsVirtualized(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAll(t, m, "7")
	assert.Equal(t, 10000, m.list.RowCount())
	assert.True(t, m.list.Virtualized())
	assert.Less(t, m.list.Host().Mounted(), 100)

	view := ansi.Strip(m.renderView())
	assert.Contains(t, view, "virtualized")
	assert.Contains(t, view, "10,000 blocks")

	m, _ = step(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	assert.Positive(t, m.list.Scroll())
	m = pressAll(t, m, "G")
	assert.True(t, m.list.AtBottom())
}

func TestDocumentLoaded_ResetsListAndDropsStaleMeasurements(t *testing.T) {
	m, c := newTestModel(t)
	m = pressAll(t, m, "n", "e")
	stale := c.calls
	c.calls = nil

	m, _ = step(t, m, msg.DocumentLoaded{Doc: document.AllTypes(), Source: "doc.yaml"})
	assert.Equal(t, StateBrowsing, m.state)
	assert.Empty(t, m.rows.editing)
	assert.Equal(t, "doc.yaml", m.source)
	assert.Equal(t, 10, m.list.RowCount())

	for _, s := range stale {
		m, _ = step(t, m, s.msg)
	}
	assert.Equal(t, virtual.StateStable, m.list.StateOf("block-1"))

	m, _ = step(t, m, msg.DocumentLoaded{Source: "doc.yaml", Err: document.ErrInvalidTable})
	assert.Equal(t, 10, m.list.RowCount(), "a failed reload keeps the open document")
	assert.Equal(t, 2, m.toasts.Len())
}

func TestVisualLines(t *testing.T) {
	assert.Equal(t, 1, visualLines("", 10))
	assert.Equal(t, 2, visualLines("abcdef", 3))
	assert.Equal(t, 3, visualLines("abcdef\nx", 3))
}
