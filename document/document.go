// Package document is the block document model and the store that owns
// every mutation to it.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/oklog/ulid/v2"
)

// BlockType is the kind of content a block holds.
type BlockType string

const (
	Heading   BlockType = "heading"
	Paragraph BlockType = "paragraph"
	List      BlockType = "list"
	Table     BlockType = "table"
)

// Block is one row of a document.
type Block struct {
	ID       string    `yaml:"id"`
	Type     BlockType `yaml:"type"`
	Editable bool      `yaml:"editable"`

	// Heading, Paragraph
	Level   int    `yaml:"level,omitempty"`
	Content string `yaml:"content,omitempty"`

	// List
	Items   []string `yaml:"items,omitempty"`
	Ordered bool     `yaml:"ordered,omitempty"`

	// Table
	Headers []string   `yaml:"headers,omitempty"`
	Rows    [][]string `yaml:"rows,omitempty"`
}

// Clone returns a deep copy of b.
func (b *Block) Clone() *Block {
	c := *b
	c.Items = append([]string(nil), b.Items...)
	c.Headers = append([]string(nil), b.Headers...)
	if b.Rows != nil {
		c.Rows = make([][]string, len(b.Rows))
		for i, r := range b.Rows {
			c.Rows[i] = append([]string(nil), r...)
		}
	}
	return &c
}

// HasText reports whether the block carries free text the AI actions can
// rewrite.
func (b *Block) HasText() bool {
	return b.Type == Paragraph || b.Type == Heading
}

// Comment is a note attached to a block.
type Comment struct {
	ID        string    `yaml:"id"`
	BlockID   string    `yaml:"block_id"`
	Content   string    `yaml:"content"`
	Author    string    `yaml:"author"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Document is an ordered set of blocks plus their comments.
type Document struct {
	ID       string
	Title    string
	Order    []string
	Blocks   map[string]*Block
	Comments map[string][]Comment
}

// New returns an empty document with a fresh id.
func New(title string) *Document {
	return &Document{
		ID:       NewID(),
		Title:    title,
		Blocks:   make(map[string]*Block),
		Comments: make(map[string][]Comment),
	}
}

// Append adds b at the end of the document.
func (d *Document) Append(b *Block) {
	d.Blocks[b.ID] = b
	d.Order = append(d.Order, b.ID)
}

// Len is the number of blocks.
func (d *Document) Len() int { return len(d.Order) }

// At returns the block at position i.
func (d *Document) At(i int) *Block {
	if i < 0 || i >= len(d.Order) {
		return nil
	}
	return d.Blocks[d.Order[i]]
}

// IndexOf returns the position of the block with id, or -1.
func (d *Document) IndexOf(id string) int {
	for i, bid := range d.Order {
		if bid == id {
			return i
		}
	}
	return -1
}

// NewID returns a lexically sortable unique id.
func NewID() string { return strings.ToLower(ulid.Make().String()) }

type tableJSON struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// EditableContent is the text form of b presented in the editor: the text
// of a paragraph or heading, one list item per line, or a table as JSON.
func EditableContent(b *Block) string {
	switch b.Type {
	case List:
		return strings.Join(b.Items, "\n")
	case Table:
		data, err := json.MarshalIndent(tableJSON{Headers: b.Headers, Rows: b.Rows}, "", "  ")
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return b.Content
	}
}

// Fingerprint changes whenever anything that affects how b and its
// comments render changes.
func Fingerprint(b *Block, comments []Comment) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(string(b.Type))
	_, _ = fmt.Fprintf(h, "\x00%t%d%t", b.Editable, b.Level, b.Ordered)
	_, _ = h.WriteString("\x00" + b.Content)
	for _, it := range b.Items {
		_, _ = h.WriteString("\x01" + it)
	}
	for _, hd := range b.Headers {
		_, _ = h.WriteString("\x02" + hd)
	}
	for _, r := range b.Rows {
		_, _ = h.WriteString("\x03")
		for _, cell := range r {
			_, _ = h.WriteString("\x04" + cell)
		}
	}
	for _, c := range comments {
		_, _ = h.WriteString("\x05" + c.ID + "\x00" + c.Content)
	}
	return h.Sum64()
}
