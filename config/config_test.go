package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "Anonymous", cfg.Author)
}

func TestLoad_MalformedFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("theme: [unterminated"), 0o644))
	assert.Equal(t, Defaults(), Load(dir))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	cfg := Defaults()
	cfg.Theme = "light"
	cfg.Author = "sam"
	cfg.SettleMode = "frame"
	cfg.MutationDelay = 250 * time.Millisecond
	require.NoError(t, Save(dir, cfg))

	assert.Equal(t, cfg, Load(dir))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("overscan: 5\n"), 0o644))
	cfg := Load(dir)
	assert.Equal(t, 5, cfg.Overscan)
	assert.Equal(t, 50, cfg.Threshold)
	assert.Equal(t, 300*time.Millisecond, cfg.CommitDelay)
}

func TestValidate_ClampsNonsense(t *testing.T) {
	cfg := Config{
		DefaultRowHeight: 0.5,
		MinRowHeight:     -3,
		Overscan:         -1,
		SettleMode:       "eventually",
		SettleDelay:      -time.Second,
	}
	cfg.Validate()
	assert.Equal(t, 1.0, cfg.MinRowHeight)
	assert.Equal(t, 1.0, cfg.DefaultRowHeight)
	assert.Zero(t, cfg.Overscan)
	assert.Equal(t, "timer", cfg.SettleMode)
	assert.Equal(t, 50*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, "Anonymous", cfg.Author)
}
