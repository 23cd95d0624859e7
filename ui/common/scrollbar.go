// Package common holds small widgets shared by the editor views.
package common

import (
	"math"
	"strings"

	"github.com/Haree123/document-editor/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// Scrollbar renders a vertical scrollbar one column wide and viewport rows
// tall. The thumb is sized and positioned proportionally to the visible
// region of content. When the content fits, the result is empty.
//
// Content height is usually an estimate while rows are still unmeasured, so
// the thumb may drift as measurements arrive.
func Scrollbar(viewport int, content, offset float64) string {
	vh := viewport
	if vh <= 0 || content <= float64(vh) {
		return ""
	}

	thumbH := int(math.Round(float64(vh) * float64(vh) / content))
	if thumbH < 1 {
		thumbH = 1
	}
	if thumbH > vh {
		thumbH = vh
	}

	scrollable := content - float64(vh)
	thumbTop := int(math.Round(offset * float64(vh-thumbH) / scrollable))
	if thumbTop+thumbH > vh {
		thumbTop = vh - thumbH
	}
	if thumbTop < 0 {
		thumbTop = 0
	}

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
