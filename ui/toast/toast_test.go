package toast

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_KeepsNewestThree(t *testing.T) {
	m := New()
	for _, s := range []string{"a", "b", "c", "d"} {
		require.NotNil(t, m.Add(s, Info))
	}
	require.Equal(t, 3, m.Len())
	out := m.View(40)
	assert.NotContains(t, out, " a")
	assert.Contains(t, out, "d")
}

func TestModel_ExpirePrunes(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := New()
	m.now = func() time.Time { return now }
	m.Add("saved", Success)

	now = now.Add(time.Second)
	m.Add("failed", Error)

	now = now.Add(ttl - time.Second)
	m.Expire()
	require.Equal(t, 1, m.Len())
	assert.Contains(t, m.View(40), "failed")

	now = now.Add(time.Second)
	m.Expire()
	assert.Zero(t, m.Len())
	assert.Empty(t, m.View(40))
}

func TestModel_ViewIsRightAligned(t *testing.T) {
	m := New()
	m.Add("ok", Warning)
	out := m.View(30)
	assert.Equal(t, 30, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(out, " "))
}
