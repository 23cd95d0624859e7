package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/Haree123/document-editor/config"
	"github.com/Haree123/document-editor/document"
	"github.com/Haree123/document-editor/msg"
	"github.com/Haree123/document-editor/style"
	"github.com/Haree123/document-editor/telemetry"
	"github.com/Haree123/document-editor/ui/block"
	"github.com/Haree123/document-editor/ui/common"
	"github.com/Haree123/document-editor/ui/toast"
	"github.com/Haree123/document-editor/ui/virtual"
)

// -- Model --------------------------------------------------------------------

// Options configures the root model.
type Options struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *telemetry.Collector
	// Doc is the document opened at startup; nil opens the default preset.
	Doc    *document.Document
	Source string
	// Scheduler replaces the list's measurement scheduler.
	Scheduler virtual.Scheduler
}

// Model is the root Bubble Tea model. It owns the document store, the
// virtual list and every widget, and routes each height-changing action to
// the list as an invalidation.
type Model struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *telemetry.Collector

	store  *document.Store
	rows   *rows
	list   *virtual.List
	source string

	editor textarea.Model
	form   textinput.Model
	toasts toast.Model

	state  State
	layout Layout
	keys   KeyMap

	width      int
	height     int
	lastRender time.Duration
}

// New constructs the root Model.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	doc, source := opts.Doc, opts.Source
	if doc == nil {
		doc, source = document.Default(), "default"
	}

	store := document.NewStore(doc)
	rs := newRows(store, block.NewRenderer(style.IsDark()))

	vopts := []virtual.Option{virtual.WithLogger(log.Named("virtual"))}
	if opts.Metrics != nil {
		vopts = append(vopts, virtual.WithMetrics(opts.Metrics))
	}
	if opts.Scheduler != nil {
		vopts = append(vopts, virtual.WithScheduler(opts.Scheduler))
	}
	list := virtual.New(rs, listConfig(opts.Config), vopts...)
	list.SetDocument(doc.ID)

	m := Model{
		cfg:     opts.Config,
		log:     log,
		metrics: opts.Metrics,
		store:   store,
		rows:    rs,
		list:    list,
		source:  source,
		editor:  newEditor(),
		form:    newCommentForm(),
		toasts:  toast.New(),
		state:   StateBrowsing,
		keys:    DefaultKeyMap(),
		width:   80,
		height:  24,
	}
	m.recomputeLayout()
	return m
}

// listConfig maps persisted settings onto the list. Zero overscan means
// none in the settings file.
func listConfig(cfg config.Config) virtual.Config {
	overscan := cfg.Overscan
	if overscan == 0 {
		overscan = -1
	}
	return virtual.Config{
		DefaultHeight: cfg.DefaultRowHeight,
		MinHeight:     cfg.MinRowHeight,
		Overscan:      overscan,
		Threshold:     cfg.Threshold,
		SettleMode:    virtual.ParseSettleMode(cfg.SettleMode),
		SettleDelay:   cfg.SettleDelay,
		MutationDelay: cfg.MutationDelay,
	}
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "Start typing…"
	ta.ShowLineNumbers = false
	ta.SetHeight(editorMinLines)
	return ta
}

func newCommentForm() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Write a comment and press enter"
	return ti
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tea.RequestWindowSize() }
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(rawMsg)
	if d := m.rows.takeSpent(); d > 0 {
		m.lastRender = d
		if m.metrics != nil {
			m.metrics.ObserveRender(d)
		}
	}
	return m, cmd
}

func (m Model) update(rawMsg tea.Msg) (Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.recomputeLayout()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case tea.MouseWheelMsg:
		return m, m.list.Update(v)

	case tea.MouseClickMsg:
		if v.Button == tea.MouseLeft && m.state == StateBrowsing {
			if row := m.list.RowAtY(v.Y - m.layout.HeaderHeight); row >= 0 {
				m.selectRow(row)
			}
		}
		return m, nil

	case virtual.MeasureDue:
		return m, m.list.Update(v)

	case toast.ExpireMsg:
		m.toasts.Expire()
		m.recomputeLayout()
		return m, nil

	// -- Documents --

	case msg.DocumentLoaded:
		return m.handleDocumentLoaded(v)

	// -- Block edits --

	case msg.CommitDue:
		return m.handleCommitDue(v)

	case msg.BlockCommitted:
		return m.handleBlockCommitted(v)

	case msg.AIResult:
		return m.handleAIResult(v)

	// -- Comments --

	case msg.CommentChanged:
		return m.handleCommentChanged(v)
	}

	return m.updateWidgets(rawMsg)
}

// updateWidgets forwards everything else (cursor blinks, pastes) to the
// focused widget.
func (m Model) updateWidgets(rawMsg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateEditing:
		m.editor, cmd = m.editor.Update(rawMsg)
		m.rows.editor = m.editor.View()
		m.list.Refresh()
	case StateCommenting:
		m.form, cmd = m.form.Update(rawMsg)
		m.rows.form = m.form.View()
		m.list.Refresh()
	}
	return m, cmd
}

// -- Keys ---------------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	if key.Matches(k, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	switch m.state {
	case StateEditing:
		return m.handleEditingKey(k)
	case StateCommenting:
		return m.handleCommentingKey(k)
	default:
		return m.handleBrowsingKey(k)
	}
}

func (m Model) handleBrowsingKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.ScrollDown):
		m.list.ScrollBy(1)
	case key.Matches(k, m.keys.ScrollUp):
		m.list.ScrollBy(-1)
	case key.Matches(k, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(k, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(k, m.keys.HalfPageDown):
		m.list.HalfPageDown()
	case key.Matches(k, m.keys.HalfPageUp):
		m.list.HalfPageUp()
	case key.Matches(k, m.keys.ScrollTop):
		m.list.ScrollToTop()
	case key.Matches(k, m.keys.ScrollBottom):
		m.list.ScrollToBottom()
	case key.Matches(k, m.keys.SelectNext):
		m.moveSelection(1)
	case key.Matches(k, m.keys.SelectPrev):
		m.moveSelection(-1)
	case key.Matches(k, m.keys.Escape):
		m.rows.selected = ""
		m.list.Refresh()
	case key.Matches(k, m.keys.Edit):
		return m.startEditing()
	case key.Matches(k, m.keys.ToggleComments):
		return m.toggleComments()
	case key.Matches(k, m.keys.AddComment):
		return m.startCommenting()
	case key.Matches(k, m.keys.DeleteComment):
		return m.deleteLastComment()
	case key.Matches(k, m.keys.Improve):
		return m.runAI(document.Improve)
	case key.Matches(k, m.keys.Summarize):
		return m.runAI(document.Summarize)
	case key.Matches(k, m.keys.Undo):
		return m.undo()
	case key.Matches(k, m.keys.Redo):
		return m.redo()
	case key.Matches(k, m.keys.Preset):
		return m.openPreset(k.String())
	}
	return m, nil
}

func (m Model) handleEditingKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Escape):
		return m.stopEditing(false)
	case key.Matches(k, m.keys.Save):
		return m.stopEditing(true)
	}

	id := m.rows.editing
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(k)
	cmds := []tea.Cmd{cmd}

	m.sizeEditor()
	m.rows.editor = m.editor.View()
	if value := m.editor.Value(); value != before {
		if seq, err := m.store.Stage(id, value); err == nil {
			cmds = append(cmds, commitAfter(m.cfg.CommitDelay, id, seq))
		}
		cmds = append(cmds, m.list.Invalidate(id, virtual.ReasonTextGrowth))
	} else {
		m.list.Refresh()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleCommentingKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Escape):
		return m, m.stopCommenting()
	case key.Matches(k, m.keys.Submit):
		return m.submitComment()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(k)
	m.rows.form = m.form.View()
	m.list.Refresh()
	return m, cmd
}

// -- Selection ----------------------------------------------------------------

// target returns the selected block, selecting the row at the top of the
// viewport when nothing is selected yet.
func (m *Model) target() (string, bool) {
	if _, ok := m.list.IndexOf(m.rows.selected); ok {
		return m.rows.selected, true
	}
	row := m.list.RowAtY(0)
	if row < 0 {
		return "", false
	}
	m.selectRow(row)
	return m.rows.selected, true
}

func (m *Model) selectRow(row int) {
	m.rows.selected = m.rows.RowKey(row)
	m.list.EnsureVisible(row)
	m.list.Refresh()
}

func (m *Model) moveSelection(delta int) {
	n := m.list.RowCount()
	if n == 0 {
		return
	}
	row := m.list.RowAtY(0)
	if i, ok := m.list.IndexOf(m.rows.selected); ok {
		row = i + delta
	}
	m.selectRow(min(max(row, 0), n-1))
}

// -- Editing ------------------------------------------------------------------

func (m Model) startEditing() (Model, tea.Cmd) {
	id, ok := m.target()
	if !ok {
		return m, nil
	}
	b, err := m.store.Block(id)
	if err != nil {
		return m, m.notify(err.Error(), toast.Error)
	}
	if !b.Editable {
		return m, m.notify("This block is read-only", toast.Warning)
	}

	m.state = StateEditing
	m.rows.editing = id
	m.editor.SetValue(document.EditableContent(b))
	m.sizeEditor()
	focus := m.editor.Focus()
	m.rows.editor = m.editor.View()

	inv := m.list.Invalidate(id, virtual.ReasonEditToggled)
	if row, ok := m.list.IndexOf(id); ok {
		m.list.EnsureVisible(row)
	}
	return m, tea.Batch(focus, inv)
}

// stopEditing closes the editor. With save the editor content is committed
// right away; a commit that fails keeps the editor open.
func (m Model) stopEditing(save bool) (Model, tea.Cmd) {
	id := m.rows.editing
	var cmds []tea.Cmd
	if save {
		changed, err := m.commitNow(id, m.editor.Value())
		if err != nil {
			return m, m.notify(err.Error(), toast.Error)
		}
		cmds = append(cmds, committed(id, changed, nil), m.notify("Saved", toast.Success))
	} else {
		m.store.Discard(id)
	}

	m.editor.Blur()
	m.state = StateBrowsing
	m.rows.editing = ""
	m.rows.editor = ""
	cmds = append(cmds, m.list.Invalidate(id, virtual.ReasonEditToggled))
	return m, tea.Batch(cmds...)
}

func (m *Model) commitNow(id, content string) (bool, error) {
	seq, err := m.store.Stage(id, content)
	if err != nil {
		return false, err
	}
	return m.store.Commit(id, seq)
}

// sizeEditor fits the editor to the list width and grows it with its
// content, one line per wrapped line.
func (m *Model) sizeEditor() {
	w := max(m.layout.ListWidth-style.BlockEditing.GetHorizontalFrameSize(), 1)
	m.editor.SetWidth(w)
	lines := visualLines(m.editor.Value(), w) + 1
	m.editor.SetHeight(min(max(lines, editorMinLines), editorMaxLines))
}

func visualLines(s string, width int) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		w := runewidth.StringWidth(line)
		n += max(1, int(math.Ceil(float64(w)/float64(width))))
	}
	return n
}

func commitAfter(d time.Duration, id string, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg.CommitDue{BlockID: id, Seq: seq}
	})
}

func committed(id string, changed bool, err error) tea.Cmd {
	return func() tea.Msg {
		return msg.BlockCommitted{BlockID: id, Changed: changed, Err: err}
	}
}

func (m Model) handleCommitDue(v msg.CommitDue) (Model, tea.Cmd) {
	changed, err := m.store.Commit(v.BlockID, v.Seq)
	if !changed && err == nil {
		return m, nil
	}
	return m, committed(v.BlockID, changed, err)
}

// handleBlockCommitted is the only path by which committed content reaches
// the list.
func (m Model) handleBlockCommitted(v msg.BlockCommitted) (Model, tea.Cmd) {
	if v.Err != nil {
		// Half-typed tables are invalid JSON; say so only on save.
		if errors.Is(v.Err, document.ErrInvalidTable) && v.BlockID == m.rows.editing {
			return m, nil
		}
		if errors.Is(v.Err, document.ErrBlockNotFound) {
			return m, nil
		}
		return m, m.notify(v.Err.Error(), toast.Error)
	}
	if !v.Changed {
		return m, nil
	}
	m.log.Debug("block committed", zap.String("block", v.BlockID))
	return m, m.list.Invalidate(v.BlockID, virtual.ReasonContentCommitted)
}

// -- AI -----------------------------------------------------------------------

func (m Model) runAI(action document.Action) (Model, tea.Cmd) {
	id, ok := m.target()
	if !ok {
		return m, nil
	}
	if m.rows.pending[id] {
		return m, m.notify("AI is already working on this block", toast.Info)
	}
	b, err := m.store.Block(id)
	if err != nil {
		return m, m.notify(err.Error(), toast.Error)
	}
	content, err := document.Transform(b, action)
	if err != nil {
		return m, m.notify("AI actions need an editable paragraph or heading", toast.Warning)
	}

	m.rows.pending[id] = true
	m.list.Refresh()
	return m, tea.Tick(m.cfg.AIDelay, func(time.Time) tea.Msg {
		return msg.AIResult{BlockID: id, Action: action, Content: content}
	})
}

func (m Model) handleAIResult(v msg.AIResult) (Model, tea.Cmd) {
	if !m.rows.pending[v.BlockID] {
		// The document changed while the action was running.
		return m, nil
	}
	delete(m.rows.pending, v.BlockID)
	m.list.Refresh()
	if v.Err != nil {
		return m, m.notify(v.Err.Error(), toast.Error)
	}

	changed, err := m.commitNow(v.BlockID, v.Content)
	if err != nil {
		return m, m.notify(err.Error(), toast.Error)
	}
	if v.BlockID == m.rows.editing {
		m.editor.SetValue(v.Content)
		m.sizeEditor()
		m.rows.editor = m.editor.View()
	}
	label := "Content improved"
	if v.Action == document.Summarize {
		label = "Content summarized"
	}
	return m, tea.Batch(committed(v.BlockID, changed, nil), m.notify(label, toast.Success))
}

// -- Comments -----------------------------------------------------------------

func (m Model) toggleComments() (Model, tea.Cmd) {
	id, ok := m.target()
	if !ok {
		return m, nil
	}
	m.rows.open[id] = !m.rows.open[id]
	return m, m.list.Invalidate(id, virtual.ReasonCommentsToggled)
}

func (m Model) startCommenting() (Model, tea.Cmd) {
	id, ok := m.target()
	if !ok {
		return m, nil
	}
	m.state = StateCommenting
	m.rows.commenting = id
	m.form.Reset()
	m.sizeForm()
	focus := m.form.Focus()
	m.rows.form = m.form.View()

	inv := m.list.Invalidate(id, virtual.ReasonCommentsToggled)
	if row, ok := m.list.IndexOf(id); ok {
		m.list.EnsureVisible(row)
	}
	return m, tea.Batch(focus, inv)
}

func (m *Model) stopCommenting() tea.Cmd {
	id := m.rows.commenting
	m.form.Blur()
	m.state = StateBrowsing
	m.rows.commenting = ""
	m.rows.form = ""
	return m.list.Invalidate(id, virtual.ReasonCommentsToggled)
}

func (m Model) submitComment() (Model, tea.Cmd) {
	id := m.rows.commenting
	_, err := m.store.AddComment(id, m.form.Value(), m.cfg.Author)
	if errors.Is(err, document.ErrEmptyComment) {
		return m, m.notify("Comment is empty", toast.Warning)
	}
	m.rows.open[id] = true
	closed := m.stopCommenting()
	return m, tea.Batch(closed, commentChanged(id, true, err))
}

func (m Model) deleteLastComment() (Model, tea.Cmd) {
	id, ok := m.target()
	if !ok {
		return m, nil
	}
	cs := m.store.Comments(id)
	if len(cs) == 0 {
		return m, m.notify("No comments to delete", toast.Info)
	}
	err := m.store.DeleteComment(id, cs[len(cs)-1].ID)
	return m, commentChanged(id, false, err)
}

func (m *Model) sizeForm() {
	frame := style.BlockNormal.GetHorizontalFrameSize() + style.CommentBox.GetHorizontalFrameSize()
	m.form.SetWidth(max(m.layout.ListWidth-frame-lipgloss.Width(m.form.Prompt)-1, 1))
}

func commentChanged(id string, added bool, err error) tea.Cmd {
	return func() tea.Msg {
		return msg.CommentChanged{BlockID: id, Added: added, Err: err}
	}
}

func (m Model) handleCommentChanged(v msg.CommentChanged) (Model, tea.Cmd) {
	if v.Err != nil {
		return m, m.notify(v.Err.Error(), toast.Error)
	}
	reason, label := virtual.ReasonCommentDeleted, "Comment deleted"
	if v.Added {
		reason, label = virtual.ReasonCommentAdded, "Comment added"
	}
	return m, tea.Batch(m.list.Invalidate(v.BlockID, reason), m.notify(label, toast.Success))
}

// -- History ------------------------------------------------------------------

func (m Model) undo() (Model, tea.Cmd) {
	id, err := m.store.Undo()
	if errors.Is(err, document.ErrNothingToUndo) {
		return m, m.notify("Nothing to undo", toast.Info)
	}
	return m.afterHistory(id, err, "Undone")
}

func (m Model) redo() (Model, tea.Cmd) {
	id, err := m.store.Redo()
	if errors.Is(err, document.ErrNothingToRedo) {
		return m, m.notify("Nothing to redo", toast.Info)
	}
	return m.afterHistory(id, err, "Redone")
}

func (m Model) afterHistory(id string, err error, label string) (Model, tea.Cmd) {
	if err != nil {
		return m, m.notify(err.Error(), toast.Error)
	}
	return m, tea.Batch(m.list.Invalidate(id, virtual.ReasonContentCommitted), m.notify(label, toast.Info))
}

// -- Documents ----------------------------------------------------------------

func (m Model) openPreset(k string) (Model, tea.Cmd) {
	n, err := strconv.Atoi(k)
	presets := document.Presets()
	if err != nil || n < 1 || n > len(presets) {
		return m, nil
	}
	p := presets[n-1]
	m.loadDocument(p.Build(), p.Key)
	return m, m.notify("Opened "+p.Label, toast.Info)
}

func (m Model) handleDocumentLoaded(v msg.DocumentLoaded) (Model, tea.Cmd) {
	if v.Err != nil {
		m.log.Warn("document load failed", zap.String("source", v.Source), zap.Error(v.Err))
		return m, m.notify("Reload failed: "+v.Err.Error(), toast.Error)
	}
	m.loadDocument(v.Doc, v.Source)
	return m, m.notify("Reloaded "+v.Source, toast.Info)
}

// loadDocument replaces the open document. The list treats every load as a
// new identity and drops all cached heights.
func (m *Model) loadDocument(doc *document.Document, source string) {
	m.editor.Blur()
	m.form.Blur()
	m.state = StateBrowsing
	m.store = document.NewStore(doc)
	m.rows.reset(m.store)
	m.source = source
	m.list.SetDocument(doc.ID)
	m.log.Info("document opened",
		zap.String("document", doc.ID),
		zap.String("source", source),
		zap.Int("blocks", doc.Len()))
}

// -- Helpers ------------------------------------------------------------------

func (m *Model) notify(text string, level toast.Level) tea.Cmd {
	cmd := m.toasts.Add(text, level)
	m.recomputeLayout()
	return cmd
}

func (m *Model) recomputeLayout() {
	m.layout = ComputeLayout(m.width, m.height, m.toasts.Len())
	m.list.SetSize(m.layout.ListWidth, m.layout.ListHeight)
	m.sizeForm()
	if m.state == StateEditing {
		m.sizeEditor()
		m.rows.editor = m.editor.View()
	}
}

// -- View ---------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	sections := []string{m.headerView(), m.listView()}
	if m.toasts.Len() > 0 {
		sections = append(sections, m.toasts.View(m.width))
	}
	sections = append(sections, m.statusView())
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	doc := m.store.Document()
	st := m.store.Stats()

	title := style.Title(doc.Title)
	if m.list.Virtualized() {
		title += " " + style.HeaderBadge.Render("virtualized")
	}
	detail := fmt.Sprintf("%s blocks · %d editable · %d comments · %d mounted",
		humanize.Comma(int64(st.Blocks)), st.Editable, st.Comments, m.list.Host().Mounted())
	if m.lastRender > 0 {
		detail += " · render " + m.lastRender.Round(time.Microsecond).String()
	}
	line := title + "  " + style.HeaderDetail.Render(detail)
	line = ansi.Truncate(line, m.width, "…")
	sep := style.HeaderSeparator.Render(strings.Repeat("─", max(m.width, 0)))
	return line + "\n" + sep
}

func (m Model) listView() string {
	h := m.layout.ListHeight
	pane := lipgloss.NewStyle().Width(m.layout.ListWidth).Height(h).MaxHeight(h)
	if m.list.RowCount() == 0 {
		return pane.Render(style.Hint.Render("This document has no blocks. Press 1-7 to open another."))
	}
	body := pane.Render(m.list.View())
	bar := common.Scrollbar(h, m.list.TotalHeight(), m.list.Scroll())
	if bar == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}

func (m Model) statusView() string {
	var hints []string
	switch m.state {
	case StateEditing:
		hints = helpLine(m.keys.Save, m.keys.Escape)
	case StateCommenting:
		hints = helpLine(m.keys.Submit, m.keys.Escape)
	default:
		hints = helpLine(
			m.keys.ScrollDown, m.keys.SelectNext, m.keys.Edit, m.keys.ToggleComments,
			m.keys.AddComment, m.keys.Improve, m.keys.Summarize, m.keys.Undo,
			m.keys.Preset, m.keys.Quit,
		)
	}
	pos := "top"
	if total := m.list.TotalHeight() - float64(m.layout.ListHeight); total > 0 {
		pos = fmt.Sprintf("%d%%", int(math.Round(100*m.list.Scroll()/total)))
	}
	line := style.StatusKey.Render(m.state.String()+" "+pos) + "  " +
		style.StatusBar.Render(strings.Join(hints, " · "))
	return ansi.Truncate(line, m.width, "…")
}
