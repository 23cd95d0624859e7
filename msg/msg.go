// Package msg defines the tea.Msg types dispatched within the editor.
// It depends only on the document model to avoid import cycles.
package msg

import "github.com/Haree123/document-editor/document"

// -- Documents --

// DocumentLoaded replaces the open document. Every load is a new identity
// for the renderer, even when the id matches the current one.
type DocumentLoaded struct {
	Doc    *document.Document
	Source string // preset key or file path
	Err    error
}

// -- Block edits --

// CommitDue fires when the debounce for a staged block edit expires.
type CommitDue struct {
	BlockID string
	Seq     uint64
}

// BlockCommitted reports that a staged edit reached the store.
type BlockCommitted struct {
	BlockID string
	Changed bool
	Err     error
}

// AIResult carries the output of a mock AI action.
type AIResult struct {
	BlockID string
	Action  document.Action
	Content string
	Err     error
}

// -- Comments --

// CommentChanged reports an added or deleted comment.
type CommentChanged struct {
	BlockID string
	Added   bool
	Err     error
}
