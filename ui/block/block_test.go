package block

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haree123/document-editor/document"
)

func plainText(s string) string { return stripANSI(s) }

func TestRender_EndsWithSeparatorAndFitsWidth(t *testing.T) {
	r := NewRenderer(true)
	d := document.AllTypes()
	for _, id := range d.Order {
		out := r.Render(d.Blocks[id], d.Comments[id], State{}, 60)
		require.True(t, strings.HasSuffix(out, "\n"), id)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 60, "%s: %q", id, plainText(line))
		}
	}
}

func TestRender_Toolbar(t *testing.T) {
	r := NewRenderer(true)
	d := document.AllTypes()

	out := plainText(r.Render(d.Blocks["block-5"], d.Comments["block-5"], State{}, 80))
	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "paragraph")
	assert.Contains(t, first, "read-only")
	assert.Contains(t, first, "1 comment")

	out = plainText(r.Render(d.Blocks["block-2"], nil, State{Editing: true, AIPending: true}, 80))
	first = strings.Split(out, "\n")[0]
	assert.Contains(t, first, "H2")
	assert.Contains(t, first, "editing")
	assert.Contains(t, first, "AI working")
}

func TestRender_ListAndTable(t *testing.T) {
	r := NewRenderer(true)
	d := document.AllTypes()

	out := plainText(r.Render(d.Blocks["block-7"], nil, State{}, 80))
	assert.Contains(t, out, "1. First step in the process")
	assert.Contains(t, out, "3. Third and final step")

	out = plainText(r.Render(d.Blocks["block-8"], nil, State{}, 80))
	assert.Contains(t, out, "Department")
	assert.Contains(t, out, "Alice Brown")
}

func TestRender_CommentsOnlyWhenShown(t *testing.T) {
	r := NewRenderer(true)
	d := document.AllTypes()
	b, cs := d.Blocks["block-10"], d.Comments["block-10"]

	closed := r.Render(b, cs, State{}, 80)
	open := r.Render(b, cs, State{ShowComments: true}, 80)
	assert.NotContains(t, plainText(closed), "John Reviewer")
	assert.Contains(t, plainText(open), "John Reviewer")
	assert.Contains(t, plainText(open), "Comments (3)")
	assert.Greater(t, lipgloss.Height(open), lipgloss.Height(closed))

	empty := plainText(r.Render(d.Blocks["block-1"], nil, State{ShowComments: true}, 80))
	assert.Contains(t, empty, "No comments yet")
}

func TestRender_LongAuthorIsTruncated(t *testing.T) {
	r := NewRenderer(true)
	b := &document.Block{ID: "x", Type: document.Paragraph, Content: "hi", Editable: true}
	cs := []document.Comment{{ID: "c", Author: strings.Repeat("Bartholomew ", 5), Content: "ok", Timestamp: time.Now()}}
	out := plainText(r.Render(b, cs, State{ShowComments: true}, 80))
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("Bartholomew ", 3))
}

func TestRender_EditorReplacesContent(t *testing.T) {
	r := NewRenderer(true)
	b := document.AllTypes().Blocks["block-1"]
	out := plainText(r.Render(b, nil, State{Editing: true, Editor: "EDITOR-VIEW"}, 80))
	assert.Contains(t, out, "EDITOR-VIEW")
	assert.NotContains(t, out, "Main Heading")
}

func TestRender_NarrowWidthWrapsTaller(t *testing.T) {
	r := NewRenderer(true)
	b := document.Large(1).At(0)
	wide := r.Render(b, nil, State{}, 120)
	narrow := r.Render(b, nil, State{}, 40)
	assert.Greater(t, lipgloss.Height(narrow), lipgloss.Height(wide))
}

func TestMarkdown_Memoized(t *testing.T) {
	m := newMarkdown("dark")
	a := m.render("Some **bold** text", 40)
	b := m.render("Some **bold** text", 40)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, m.memo.ItemCount())
	assert.Contains(t, plainText(a), "bold")

	m.render("Some **bold** text", 50)
	assert.Equal(t, 2, m.memo.ItemCount())

	m.setStyle("light")
	assert.Zero(t, m.memo.ItemCount())
	assert.Empty(t, m.render("   ", 40))
}
