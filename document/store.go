package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultAuthor signs comments added without an author.
const DefaultAuthor = "Anonymous"

type staged struct {
	content string
	seq     uint64
}

type editKind int

const (
	editBlock editKind = iota
	editCommentAdd
	editCommentDelete
)

// edit is one undoable mutation.
type edit struct {
	kind    editKind
	blockID string
	before  *Block
	after   *Block
	comment Comment
	index   int
}

// Stats summarizes a document.
type Stats struct {
	Blocks   int
	Editable int
	Comments int
}

// Store owns a document and applies every change to it. Block edits are
// staged first and committed later so rapid typing produces one update;
// only the most recently staged content for a block is ever committed.
type Store struct {
	doc    *Document
	staged map[string]staged
	seq    uint64

	undo []edit
	redo []edit

	now   func() time.Time
	newID func() string
}

// NewStore wraps doc. A nil doc yields an empty untitled document.
func NewStore(doc *Document) *Store {
	if doc == nil {
		doc = New("Untitled")
	}
	if doc.Blocks == nil {
		doc.Blocks = make(map[string]*Block)
	}
	if doc.Comments == nil {
		doc.Comments = make(map[string][]Comment)
	}
	return &Store{
		doc:    doc,
		staged: make(map[string]staged),
		now:    time.Now,
		newID:  NewID,
	}
}

// Document returns the current document. Callers must not mutate it.
func (s *Store) Document() *Document { return s.doc }

// Block returns the block with id.
func (s *Store) Block(id string) (*Block, error) {
	b, ok := s.doc.Blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return b, nil
}

// Comments returns the comments on a block, oldest first.
func (s *Store) Comments(blockID string) []Comment {
	return s.doc.Comments[blockID]
}

// Stats counts blocks, editable blocks and comments.
func (s *Store) Stats() Stats {
	st := Stats{Blocks: len(s.doc.Order)}
	for _, id := range s.doc.Order {
		if b := s.doc.Blocks[id]; b != nil && b.Editable {
			st.Editable++
		}
	}
	for _, cs := range s.doc.Comments {
		st.Comments += len(cs)
	}
	return st
}

// ---------------------------------------------------------------------------
// Block edits
// ---------------------------------------------------------------------------

// Stage records content as the pending edit for a block and returns the
// sequence number Commit must be called with.
func (s *Store) Stage(blockID, content string) (uint64, error) {
	b, err := s.Block(blockID)
	if err != nil {
		return 0, err
	}
	if !b.Editable {
		return 0, fmt.Errorf("%w: %s", ErrReadOnly, blockID)
	}
	s.seq++
	s.staged[blockID] = staged{content: content, seq: s.seq}
	return s.seq, nil
}

// Staged returns the pending content for a block, if any.
func (s *Store) Staged(blockID string) (string, bool) {
	st, ok := s.staged[blockID]
	return st.content, ok
}

// Commit applies the staged content for a block if seq is still the latest
// stage. It reports whether the block changed. A superseded seq is not an
// error.
func (s *Store) Commit(blockID string, seq uint64) (bool, error) {
	st, ok := s.staged[blockID]
	if !ok || st.seq != seq {
		return false, nil
	}
	delete(s.staged, blockID)
	return s.apply(blockID, st.content)
}

// Flush commits whatever is staged for a block right away.
func (s *Store) Flush(blockID string) (bool, error) {
	st, ok := s.staged[blockID]
	if !ok {
		return false, nil
	}
	return s.Commit(blockID, st.seq)
}

// Discard drops the staged content for a block.
func (s *Store) Discard(blockID string) {
	delete(s.staged, blockID)
}

func (s *Store) apply(blockID, content string) (bool, error) {
	b, err := s.Block(blockID)
	if err != nil {
		return false, err
	}
	if !b.Editable {
		return false, fmt.Errorf("%w: %s", ErrReadOnly, blockID)
	}
	next, err := withContent(b, content)
	if err != nil {
		return false, err
	}
	if Fingerprint(next, nil) == Fingerprint(b, nil) {
		return false, nil
	}
	s.doc.Blocks[blockID] = next
	s.push(edit{kind: editBlock, blockID: blockID, before: b, after: next})
	return true, nil
}

// withContent returns a copy of b holding content parsed for its type.
func withContent(b *Block, content string) (*Block, error) {
	next := b.Clone()
	switch b.Type {
	case Paragraph, Heading:
		next.Content = content
	case List:
		var items []string
		for _, line := range strings.Split(content, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				items = append(items, line)
			}
		}
		next.Items = items
	case Table:
		var t tableJSON
		if err := json.Unmarshal([]byte(content), &t); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
		next.Headers = t.Headers
		next.Rows = t.Rows
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAction, b.Type)
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

// AddComment appends a comment to a block. Read-only blocks accept
// comments. An empty author becomes DefaultAuthor.
func (s *Store) AddComment(blockID, content, author string) (Comment, error) {
	if _, err := s.Block(blockID); err != nil {
		return Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, ErrEmptyComment
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultAuthor
	}
	c := Comment{
		ID:        s.newID(),
		BlockID:   blockID,
		Content:   content,
		Author:    author,
		Timestamp: s.now(),
	}
	s.doc.Comments[blockID] = append(s.doc.Comments[blockID], c)
	s.push(edit{kind: editCommentAdd, blockID: blockID, comment: c, index: len(s.doc.Comments[blockID]) - 1})
	return c, nil
}

// DeleteComment removes a comment from a block.
func (s *Store) DeleteComment(blockID, commentID string) error {
	cs := s.doc.Comments[blockID]
	for i, c := range cs {
		if c.ID == commentID {
			s.removeComment(blockID, i)
			s.push(edit{kind: editCommentDelete, blockID: blockID, comment: c, index: i})
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
}

func (s *Store) removeComment(blockID string, i int) {
	cs := s.doc.Comments[blockID]
	next := make([]Comment, 0, len(cs)-1)
	next = append(next, cs[:i]...)
	next = append(next, cs[i+1:]...)
	s.doc.Comments[blockID] = next
}

func (s *Store) insertComment(blockID string, i int, c Comment) {
	cs := s.doc.Comments[blockID]
	if i > len(cs) {
		i = len(cs)
	}
	next := make([]Comment, 0, len(cs)+1)
	next = append(next, cs[:i]...)
	next = append(next, c)
	next = append(next, cs[i:]...)
	s.doc.Comments[blockID] = next
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

func (s *Store) push(e edit) {
	s.undo = append(s.undo, e)
	s.redo = nil
}

// CanUndo reports whether Undo has anything to revert.
func (s *Store) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo has anything to reapply.
func (s *Store) CanRedo() bool { return len(s.redo) > 0 }

// Undo reverts the most recent change and returns the id of the block it
// touched.
func (s *Store) Undo() (string, error) {
	if len(s.undo) == 0 {
		return "", ErrNothingToUndo
	}
	e := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	switch e.kind {
	case editBlock:
		s.doc.Blocks[e.blockID] = e.before
	case editCommentAdd:
		s.removeComment(e.blockID, e.index)
	case editCommentDelete:
		s.insertComment(e.blockID, e.index, e.comment)
	}
	delete(s.staged, e.blockID)
	s.redo = append(s.redo, e)
	return e.blockID, nil
}

// Redo reapplies the most recently undone change and returns the id of the
// block it touched.
func (s *Store) Redo() (string, error) {
	if len(s.redo) == 0 {
		return "", ErrNothingToRedo
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	switch e.kind {
	case editBlock:
		s.doc.Blocks[e.blockID] = e.after
	case editCommentAdd:
		s.insertComment(e.blockID, e.index, e.comment)
	case editCommentDelete:
		s.removeComment(e.blockID, e.index)
	}
	s.undo = append(s.undo, e)
	return e.blockID, nil
}
