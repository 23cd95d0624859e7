package app

import (
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/Haree123/document-editor/document"
	"github.com/Haree123/document-editor/ui/block"
	"github.com/Haree123/document-editor/ui/virtual"
)

// rows adapts the document store and per-block UI state to the virtual
// list. The list owns heights; rows only says what each block looks like.
type rows struct {
	store    *document.Store
	renderer *block.Renderer

	selected   string
	editing    string
	commenting string
	// editor and form are the current views of the widgets owned by the
	// editing and commenting rows.
	editor string
	form   string

	open    map[string]bool // comment threads shown
	pending map[string]bool // AI actions in flight

	spent time.Duration
}

func newRows(store *document.Store, r *block.Renderer) *rows {
	return &rows{
		store:    store,
		renderer: r,
		open:     make(map[string]bool),
		pending:  make(map[string]bool),
	}
}

// reset points rows at a new store and forgets every block's UI state.
func (r *rows) reset(store *document.Store) {
	r.store = store
	r.selected, r.editing, r.commenting = "", "", ""
	r.editor, r.form = "", ""
	r.open = make(map[string]bool)
	r.pending = make(map[string]bool)
}

func (r *rows) RowCount() int { return r.store.Document().Len() }

func (r *rows) RowKey(row int) string { return r.store.Document().Order[row] }

func (r *rows) state(id string) block.State {
	st := block.State{
		Selected:     id == r.selected,
		Editing:      id == r.editing,
		ShowComments: r.open[id] || id == r.commenting,
		AIPending:    r.pending[id],
	}
	if st.Editing {
		st.Editor = r.editor
	}
	if id == r.commenting {
		st.CommentForm = r.form
	}
	return st
}

// RowFingerprint covers the block, its comments and every bit of UI state
// the row renders.
func (r *rows) RowFingerprint(row int) uint64 {
	id := r.RowKey(row)
	b := r.store.Document().Blocks[id]
	if b == nil {
		return 0
	}
	st := r.state(id)

	h := xxhash.New()
	var buf [9]byte
	fp := document.Fingerprint(b, r.store.Comments(id))
	for i := 0; i < 8; i++ {
		buf[i] = byte(fp >> (8 * i))
	}
	for i, bit := range []bool{st.Selected, st.Editing, st.ShowComments, st.AIPending} {
		if bit {
			buf[8] |= 1 << i
		}
	}
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(st.Editor)
	_, _ = h.WriteString("\x00" + st.CommentForm)
	return h.Sum64()
}

func (r *rows) RenderRow(slot virtual.Slot, width int) string {
	start := time.Now()
	defer func() { r.spent += time.Since(start) }()

	id := r.RowKey(slot.Index)
	b := r.store.Document().Blocks[id]
	if b == nil {
		return ""
	}
	return r.renderer.Render(b, r.store.Comments(id), r.state(id), width)
}

// takeSpent returns the time spent rendering rows since the last call.
func (r *rows) takeSpent() time.Duration {
	d := r.spent
	r.spent = 0
	return d
}
