package app

// State represents the current application state.
type State int

const (
	StateBrowsing   State = iota // Scrolling and selecting blocks
	StateEditing                 // Text editor open on the selected block
	StateCommenting              // Comment form open on the selected block
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateEditing:
		return "editing"
	case StateCommenting:
		return "commenting"
	default:
		return "unknown"
	}
}
