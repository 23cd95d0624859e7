package app

const (
	// headerHeight is the title line plus its separator.
	headerHeight = 2
	statusHeight = 1
	// scrollbarWidth is the column reserved right of the list.
	scrollbarWidth = 1

	listMinWidth  = 20
	listMinHeight = 3

	// Editor sizing, in lines.
	editorMinLines = 3
	editorMaxLines = 20
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int
	StatusHeight int
	ToastHeight  int
	ListWidth    int // width handed to the virtual list
	ListHeight   int // viewport height of the virtual list
}

// ComputeLayout calculates the layout dimensions based on terminal size.
//
// The list gets everything left after the header, the toast stack and the
// status bar, minus one column for the scrollbar. Both list dimensions are
// clamped to small minimums so a tiny terminal still renders.
func ComputeLayout(termW, termH, toastLines int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: headerHeight,
		StatusHeight: statusHeight,
		ToastHeight:  toastLines,
	}
	l.ListWidth = termW - scrollbarWidth
	if l.ListWidth < listMinWidth {
		l.ListWidth = listMinWidth
	}
	l.ListHeight = termH - l.HeaderHeight - l.StatusHeight - l.ToastHeight
	if l.ListHeight < listMinHeight {
		l.ListHeight = listMinHeight
	}
	return l
}
