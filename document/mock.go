package document

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Preset is a built-in document selectable from the UI.
type Preset struct {
	Key   string
	Label string
	Build func() *Document
}

// Presets lists the built-in documents in display order.
func Presets() []Preset {
	sized := func(n int) Preset {
		return Preset{
			Key:   fmt.Sprintf("large-%d", n),
			Label: humanize.Comma(int64(n)) + " Blocks",
			Build: func() *Document { return Large(n) },
		}
	}
	return []Preset{
		{Key: "default", Label: "Default", Build: Default},
		{Key: "all-types", Label: "All Block Types", Build: AllTypes},
		sized(100),
		sized(500),
		sized(1000),
		sized(5000),
		sized(10000),
	}
}

// Default is the small starter document.
func Default() *Document {
	d := New("Compliance Document")
	d.Append(&Block{ID: "block-1", Type: Heading, Level: 1, Content: "Document Title", Editable: true})
	d.Append(&Block{ID: "block-2", Type: Paragraph, Editable: true,
		Content: "This is an editable paragraph. Press e to edit or use AI actions to improve or summarize the content."})
	d.Append(&Block{ID: "block-3", Type: Paragraph, Editable: false,
		Content: "This is a read-only paragraph. You cannot edit this content, but you can still add comments to it."})
	return d
}

// AllTypes shows every block type in editable and read-only form.
func AllTypes() *Document {
	d := New("Document with All Block Types")
	d.ID = "test-doc-all-types"
	d.Append(&Block{ID: "block-1", Type: Heading, Level: 1, Content: "Main Heading (Level 1)", Editable: true})
	d.Append(&Block{ID: "block-2", Type: Heading, Level: 2, Content: "Subheading (Level 2) - Read Only"})
	d.Append(&Block{ID: "block-3", Type: Heading, Level: 3, Content: "Section Heading (Level 3)", Editable: true})
	d.Append(&Block{ID: "block-4", Type: Paragraph, Editable: true,
		Content: "This is an editable paragraph. Press e to edit or use the AI actions to improve or summarize the content. The AI features are mocked for demonstration purposes."})
	d.Append(&Block{ID: "block-5", Type: Paragraph,
		Content: "This is a read-only paragraph. You cannot edit this content, but you can still add comments to discuss it with your team members."})
	d.Append(&Block{ID: "block-6", Type: List, Editable: true, Items: []string{
		"First bullet point - editable list",
		"Second bullet point with more text",
		"Third bullet point",
		"Fourth item in the list",
	}})
	d.Append(&Block{ID: "block-7", Type: List, Ordered: true, Items: []string{
		"First step in the process",
		"Second step to follow",
		"Third and final step",
	}})
	d.Append(&Block{ID: "block-8", Type: Table, Editable: true,
		Headers: []string{"Name", "Role", "Department", "Status"},
		Rows: [][]string{
			{"John Doe", "Senior Developer", "Engineering", "Active"},
			{"Jane Smith", "UX Designer", "Design", "Active"},
			{"Bob Johnson", "Product Manager", "Product", "Active"},
			{"Alice Brown", "QA Engineer", "Quality", "Inactive"},
		}})
	d.Append(&Block{ID: "block-9", Type: Table,
		Headers: []string{"Quarter", "Revenue", "Growth", "Target"},
		Rows: [][]string{
			{"Q1 2025", "$1.2M", "15%", "$1.5M"},
			{"Q2 2025", "$1.5M", "25%", "$1.8M"},
			{"Q3 2025", "$1.8M", "20%", "$2.0M"},
		}})
	d.Append(&Block{ID: "block-10", Type: Paragraph, Editable: true,
		Content: "This paragraph has pre-existing comments. Open them to see how the comment system works!"})

	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	d.Comments["block-4"] = []Comment{
		{ID: "comment-1", BlockID: "block-4", Author: "Sarah Johnson", Timestamp: at("2025-01-07T10:30:00Z"),
			Content: "This paragraph needs more detail about the implementation strategy."},
		{ID: "comment-2", BlockID: "block-4", Author: "Mike Chen", Timestamp: at("2025-01-07T14:15:00Z"),
			Content: "Agreed. Also consider adding concrete examples."},
	}
	d.Comments["block-5"] = []Comment{
		{ID: "comment-3", BlockID: "block-5", Author: "Emily Davis", Timestamp: at("2025-01-08T09:00:00Z"),
			Content: "Even though this is read-only, we can still discuss it here."},
	}
	d.Comments["block-10"] = []Comment{
		{ID: "comment-4", BlockID: "block-10", Author: "John Reviewer", Timestamp: at("2025-01-08T11:00:00Z"),
			Content: "Great work on this section!"},
		{ID: "comment-5", BlockID: "block-10", Author: "Jane Editor", Timestamp: at("2025-01-08T12:30:00Z"),
			Content: "Please add timestamp information."},
		{ID: "comment-6", BlockID: "block-10", Author: "Original Author", Timestamp: at("2025-01-08T13:00:00Z"),
			Content: "Fixed! Thanks for the feedback."},
	}
	return d
}

// Large generates a document of n blocks cycling through paragraph,
// heading, list and table, with a comment on every tenth block.
func Large(n int) *Document {
	d := New(fmt.Sprintf("Large Document (%s blocks)", humanize.Comma(int64(n))))
	d.ID = "large-doc"
	d.Order = make([]string, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		b := largeBlock(i, n)
		d.Append(b)
		if i%10 == 0 {
			d.Comments[b.ID] = []Comment{{
				ID:        NewID(),
				BlockID:   b.ID,
				Content:   fmt.Sprintf("Comment on block %d", i+1),
				Author:    "Test User",
				Timestamp: now,
			}}
		}
	}
	return d
}

func largeBlock(i, n int) *Block {
	b := &Block{ID: NewID()}
	switch i % 4 {
	case 1:
		b.Type = Heading
		b.Level = i%3 + 1
		b.Content = fmt.Sprintf("Heading %d: Performance Test Section", i+1)
		b.Editable = i%3 == 0
	case 2:
		b.Type = List
		b.Ordered = i%2 == 0
		b.Items = []string{
			fmt.Sprintf("List item %d.1 - Testing virtualization", i+1),
			fmt.Sprintf("List item %d.2 - Efficient rendering", i+1),
			fmt.Sprintf("List item %d.3 - Smooth scrolling", i+1),
		}
		b.Editable = i%4 == 0
	case 3:
		b.Type = Table
		b.Headers = []string{"Metric", "Value", "Status"}
		b.Rows = [][]string{
			{fmt.Sprintf("Block %d", i+1), fmt.Sprintf("%dms", (i*37)%1000), "Optimized"},
			{fmt.Sprintf("Render %d", i+1), fmt.Sprintf("%dms", (i*13)%100), "Fast"},
		}
		b.Editable = i%5 == 0
	default:
		b.Type = Paragraph
		b.Content = fmt.Sprintf("This is paragraph %d. Lorem ipsum dolor sit amet, consectetur adipiscing elit. "+
			"This content demonstrates efficient virtualization with %d blocks. "+
			"Performance remains smooth even with large datasets because only the visible rows are rendered.", i+1, n)
		b.Editable = i%2 == 0
	}
	return b
}
