// Package block renders a single document block as a list row: toolbar,
// content or editor, and the optional comment thread.
package block

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/Haree123/document-editor/document"
	"github.com/Haree123/document-editor/style"
)

const (
	minWidth       = 12
	maxAuthorWidth = 24
	timeLayout     = "Jan 2 15:04"
)

// State is the local UI state of one row. Everything in it can change the
// row's height.
type State struct {
	Selected     bool
	Editing      bool
	ShowComments bool
	AIPending    bool
	// Editor and CommentForm are the rendered views of the focused widgets,
	// set only on the row that owns them.
	Editor      string
	CommentForm string
}

// Renderer draws blocks. It is not safe for concurrent use.
type Renderer struct {
	md *markdown
}

// NewRenderer returns a renderer using the dark or light markdown style.
func NewRenderer(dark bool) *Renderer {
	return &Renderer{md: newMarkdown(markdownStyle(dark))}
}

// SetDark switches the markdown style.
func (r *Renderer) SetDark(dark bool) { r.md.setStyle(markdownStyle(dark)) }

func markdownStyle(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// Render draws b with its comments at the given total width. The result
// ends with one blank separator line.
func (r *Renderer) Render(b *document.Block, comments []document.Comment, st State, width int) string {
	if width < minWidth {
		width = minWidth
	}
	frame := style.BlockNormal
	switch {
	case st.Editing:
		frame = style.BlockEditing
	case st.Selected:
		frame = style.BlockSelected
	}
	inner := width - frame.GetHorizontalFrameSize()

	parts := []string{toolbar(b, len(comments), st, inner)}
	if st.Editing && st.Editor != "" {
		parts = append(parts, st.Editor)
	} else {
		parts = append(parts, r.content(b, inner))
	}
	if st.ShowComments {
		parts = append(parts, thread(comments, st.CommentForm, inner))
	}
	return frame.Width(width).Render(strings.Join(parts, "\n")) + "\n"
}

// ---------------------------------------------------------------------------
// Toolbar
// ---------------------------------------------------------------------------

func badge(b *document.Block) string {
	switch b.Type {
	case document.Heading:
		return fmt.Sprintf("H%d", b.Level)
	case document.List:
		if b.Ordered {
			return "ordered list"
		}
		return "list"
	default:
		return string(b.Type)
	}
}

func toolbar(b *document.Block, comments int, st State, width int) string {
	segs := []string{style.Badge(string(b.Type)).Render(badge(b))}
	if !b.Editable {
		segs = append(segs, style.ToolbarReadOnly.Render("read-only"))
	}
	if comments > 0 {
		noun := "comments"
		if comments == 1 {
			noun = "comment"
		}
		segs = append(segs, style.ToolbarComments.Render(fmt.Sprintf("%d %s", comments, noun)))
	}
	if st.Editing {
		segs = append(segs, style.ToolbarEditing.Render("editing"))
	}
	if st.AIPending {
		segs = append(segs, style.ToolbarPending.Render("AI working…"))
	}
	line := strings.Join(segs, style.Faint.Render(" · "))
	return ansi.Truncate(line, width, "…")
}

// ---------------------------------------------------------------------------
// Content
// ---------------------------------------------------------------------------

func (r *Renderer) content(b *document.Block, width int) string {
	var out string
	switch b.Type {
	case document.Heading:
		out = heading(b, width)
	case document.Paragraph:
		out = r.md.render(b.Content, width)
		if out == "" {
			out = style.Hint.Render("Empty paragraph")
		}
	case document.List:
		out = list(b, width)
	case document.Table:
		out = grid(b, width)
	default:
		out = style.ErrorText.Render("unsupported block type " + string(b.Type))
	}
	if !b.Editable {
		return style.ReadOnlyText.Render(out)
	}
	return out
}

func heading(b *document.Block, width int) string {
	lvl := b.Level
	if lvl < 1 || lvl > len(style.HeadingText) {
		lvl = 1
	}
	text := b.Content
	if text == "" {
		return style.Hint.Render("Empty heading")
	}
	return style.HeadingText[lvl-1].Width(width).Render(text)
}

func list(b *document.Block, width int) string {
	if len(b.Items) == 0 {
		return style.Hint.Render("Empty list")
	}
	lines := make([]string, len(b.Items))
	for i, it := range b.Items {
		marker := "• "
		if b.Ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		mw := runewidth.StringWidth(marker)
		body := lipgloss.NewStyle().Width(max(width-mw, 1)).Render(it)
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, style.ListBullet.Render(marker), body)
	}
	return strings.Join(lines, "\n")
}

func grid(b *document.Block, width int) string {
	if len(b.Headers) == 0 && len(b.Rows) == 0 {
		return style.Hint.Render("Empty table")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.TableBorder).
		Headers(b.Headers...).
		Rows(b.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.TableHeader
			}
			return style.TableCell
		})
	out := t.String()
	if lipgloss.Width(out) > width {
		out = t.Width(width).String()
	}
	return out
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func thread(comments []document.Comment, form string, width int) string {
	box := style.CommentBox
	inner := max(width-box.GetHorizontalFrameSize(), 1)

	var parts []string
	parts = append(parts, style.Bold.Render(fmt.Sprintf("Comments (%d)", len(comments))))
	if len(comments) == 0 {
		parts = append(parts, style.CommentEmpty.Render("No comments yet. Press a to add one."))
	}
	for _, c := range comments {
		author := runewidth.Truncate(c.Author, maxAuthorWidth, "…")
		meta := style.CommentAuthor.Render(author)
		if !c.Timestamp.IsZero() {
			meta += style.CommentTime.Render("  " + c.Timestamp.Format(timeLayout))
		}
		body := style.CommentBody.Width(inner).Render(c.Content)
		parts = append(parts, meta+"\n"+body)
	}
	if form != "" {
		parts = append(parts, form)
	}
	return box.Width(width).Render(strings.Join(parts, "\n"))
}

func stripANSI(s string) string { return ansi.Strip(s) }
