package block

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/patrickmn/go-cache"
)

const (
	memoTTL     = 10 * time.Minute
	memoCleanup = 20 * time.Minute
)

// markdown renders paragraph text with glamour. Rendered output is memoized
// by width, style and content so remounting a row that scrolled back into
// view does not pay for glamour again.
type markdown struct {
	styleName string
	renderers map[int]*glamour.TermRenderer
	memo      *cache.Cache
}

func newMarkdown(styleName string) *markdown {
	return &markdown{
		styleName: styleName,
		renderers: make(map[int]*glamour.TermRenderer),
		memo:      cache.New(memoTTL, memoCleanup),
	}
}

// setStyle switches between glamour's dark and light styles.
func (m *markdown) setStyle(name string) {
	if name == m.styleName {
		return
	}
	m.styleName = name
	m.renderers = make(map[int]*glamour.TermRenderer)
	m.memo.Flush()
}

func (m *markdown) render(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	key := fmt.Sprintf("%s:%d:%x", m.styleName, width, xxhash.Sum64String(src))
	if v, ok := m.memo.Get(key); ok {
		return v.(string)
	}
	out := m.glamour(src, width)
	m.memo.SetDefault(key, out)
	return out
}

func (m *markdown) glamour(src string, width int) string {
	r, ok := m.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.styleName),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return plain(src, width)
		}
		m.renderers[width] = r
	}
	out, err := r.Render(src)
	if err != nil {
		return plain(src, width)
	}
	return trimBlankLines(out)
}

// plain wraps src without markdown styling.
func plain(src string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(src)
}

// trimBlankLines drops the empty lines glamour puts around a document.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(stripANSI(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(stripANSI(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
