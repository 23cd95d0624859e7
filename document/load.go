package document

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileBlock is a block as written in a YAML document, with its comments
// inline.
type fileBlock struct {
	Block    `yaml:",inline"`
	Comments []Comment `yaml:"comments,omitempty"`
}

type fileDocument struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Blocks []fileBlock `yaml:"blocks"`
}

// Load reads a YAML document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document. Blocks without an id get one; duplicate
// ids and unknown block types are rejected.
func Parse(data []byte) (*Document, error) {
	var f fileDocument
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	d := New(strings.TrimSpace(f.Title))
	if f.ID != "" {
		d.ID = f.ID
	}
	if d.Title == "" {
		d.Title = "Untitled"
	}
	for i, fb := range f.Blocks {
		b := fb.Block
		if b.ID == "" {
			b.ID = NewID()
		}
		if _, dup := d.Blocks[b.ID]; dup {
			return nil, fmt.Errorf("block %d: duplicate id %q", i, b.ID)
		}
		switch b.Type {
		case Heading:
			if b.Level < 1 || b.Level > 6 {
				b.Level = 1
			}
		case Paragraph, List, Table:
		default:
			return nil, fmt.Errorf("block %d: unknown type %q", i, b.Type)
		}
		blk := b
		d.Append(&blk)
		for _, c := range fb.Comments {
			c.BlockID = b.ID
			if c.ID == "" {
				c.ID = NewID()
			}
			if c.Author == "" {
				c.Author = DefaultAuthor
			}
			d.Comments[b.ID] = append(d.Comments[b.ID], c)
		}
	}
	return d, nil
}
