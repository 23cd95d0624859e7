package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	l := New(Options{})
	assert.False(t, l.Core().Enabled(zap.ErrorLevel))
}

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")
	l := New(Options{Path: path, Debug: true})
	l.Debug("document reset", zap.String("document", "large-doc"), zap.Int("rows", 5000))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "document reset", entry["message"])
	assert.Equal(t, "large-doc", entry["document"])
	assert.EqualValues(t, 5000, entry["rows"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_InfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")
	l := New(Options{Path: path})
	l.Debug("hidden")
	l.Info("shown")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
