package document

import "errors"

var (
	ErrBlockNotFound     = errors.New("block not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrReadOnly          = errors.New("block is read-only")
	ErrInvalidTable      = errors.New("invalid table data")
	ErrEmptyComment      = errors.New("comment is empty")
	ErrUnsupportedAction = errors.New("action not supported for this block")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
)
