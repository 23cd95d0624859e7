package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditableContent(t *testing.T) {
	d := AllTypes()
	assert.Equal(t, "Main Heading (Level 1)", EditableContent(d.Blocks["block-1"]))
	assert.Equal(t, "First step in the process\nSecond step to follow\nThird and final step",
		EditableContent(d.Blocks["block-7"]))

	table := EditableContent(d.Blocks["block-9"])
	assert.True(t, strings.HasPrefix(table, "{\n  \"headers\": ["))
	assert.Contains(t, table, `"Q1 2025"`)
}

func TestEditableContentRoundTripsThroughStore(t *testing.T) {
	s := NewStore(AllTypes())
	b, _ := s.Block("block-8")
	seq, err := s.Stage("block-8", EditableContent(b))
	require.NoError(t, err)
	changed, err := s.Commit("block-8", seq)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFingerprint(t *testing.T) {
	d := AllTypes()
	b := d.Blocks["block-6"]
	base := Fingerprint(b, nil)
	assert.Equal(t, base, Fingerprint(b.Clone(), nil))

	grown := b.Clone()
	grown.Items = append(grown.Items, "Fifth")
	assert.NotEqual(t, base, Fingerprint(grown, nil))

	assert.NotEqual(t, base, Fingerprint(b, []Comment{{ID: "x", Content: "hi"}}))

	ordered := b.Clone()
	ordered.Ordered = true
	assert.NotEqual(t, base, Fingerprint(ordered, nil))
}

func TestClone_IsDeep(t *testing.T) {
	b := AllTypes().Blocks["block-8"]
	c := b.Clone()
	c.Rows[0][0] = "changed"
	c.Headers[0] = "changed"
	assert.Equal(t, "John Doe", b.Rows[0][0])
	assert.Equal(t, "Name", b.Headers[0])
}

func TestTransform(t *testing.T) {
	d := AllTypes()
	out, err := Transform(d.Blocks["block-1"], Improve)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[AI Enhanced] Main Heading (Level 1)\n\n"))

	out, err = Transform(d.Blocks["block-4"], Summarize)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[AI Summary] This is an editable"))
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.Equal(t, len("[AI Summary] ")+100+3, len(out))

	out, err = Transform(d.Blocks["block-10"], Summarize)
	require.NoError(t, err)
	assert.Equal(t, "[AI Summary] "+d.Blocks["block-10"].Content, out)
}

func TestTransform_Rejects(t *testing.T) {
	d := AllTypes()
	_, err := Transform(d.Blocks["block-5"], Improve)
	assert.ErrorIs(t, err, ErrReadOnly)
	_, err = Transform(d.Blocks["block-6"], Improve)
	assert.ErrorIs(t, err, ErrUnsupportedAction)
	_, err = Transform(d.Blocks["block-1"], Action("translate"))
	assert.ErrorIs(t, err, ErrUnsupportedAction)
	_, err = Transform(nil, Improve)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestLarge(t *testing.T) {
	d := Large(1000)
	assert.Equal(t, "large-doc", d.ID)
	assert.Equal(t, "Large Document (1,000 blocks)", d.Title)
	require.Equal(t, 1000, d.Len())

	assert.Equal(t, Paragraph, d.At(0).Type)
	assert.Equal(t, Heading, d.At(1).Type)
	assert.Equal(t, List, d.At(2).Type)
	assert.Equal(t, Table, d.At(3).Type)
	assert.True(t, d.At(0).Editable)
	assert.False(t, d.At(1).Editable)
	assert.True(t, d.At(15).Editable, "tables on multiples of five are editable")

	seen := make(map[string]bool)
	for _, id := range d.Order {
		require.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, d.Comments, 100)
	assert.Len(t, d.Comments[d.Order[10]], 1)
}

func TestPresets(t *testing.T) {
	ps := Presets()
	require.Len(t, ps, 7)
	assert.Equal(t, "Default", ps[0].Label)
	assert.Equal(t, "10,000 Blocks", ps[6].Label)
	assert.Equal(t, 3, ps[0].Build().Len())
	assert.Equal(t, 100, ps[2].Build().Len())
}

const sampleYAML = `
id: handbook
title: Team Handbook
blocks:
  - id: intro
    type: heading
    level: 9
    content: Welcome
    editable: true
  - type: list
    ordered: true
    items: [one, two]
    comments:
      - content: needs a third
  - id: grid
    type: table
    headers: [a, b]
    rows:
      - ["1", "2"]
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "handbook", d.ID)
	assert.Equal(t, "Team Handbook", d.Title)
	require.Equal(t, 3, d.Len())

	assert.Equal(t, 1, d.At(0).Level, "out-of-range level falls back to 1")
	list := d.At(1)
	assert.NotEmpty(t, list.ID)
	assert.Equal(t, []string{"one", "two"}, list.Items)
	require.Len(t, d.Comments[list.ID], 1)
	assert.Equal(t, DefaultAuthor, d.Comments[list.ID][0].Author)
	assert.Equal(t, list.ID, d.Comments[list.ID][0].BlockID)
	assert.Equal(t, [][]string{{"1", "2"}}, d.At(2).Rows)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("blocks:\n  - type: video\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("blocks:\n  - id: a\n    type: paragraph\n  - id: a\n    type: paragraph\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("blocks: [unterminated"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
