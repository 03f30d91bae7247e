package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	reset()
	t.Cleanup(reset)
	return home
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	wd := t.TempDir()
	var lvl slog.LevelVar

	c, err := Load(wd, false, &lvl)
	require.NoError(t, err)

	assert.Equal(t, wd, c.WorkingDir)
	assert.Equal(t, "catppuccin", c.TUI.Theme)
	assert.Equal(t, "my-form-123", c.Links.FormID)
	assert.Equal(t, "my-button-456", c.Links.ButtonID)
	assert.False(t, c.Registry.Dedup)
	assert.Zero(t, c.Registry.EvictAfter)
	assert.Equal(t, slog.LevelInfo, lvl.Level())
	assert.Same(t, c, Get())
}

func TestLoadMergesLocalConfig(t *testing.T) {
	home := isolate(t)
	wd := t.TempDir()
	writeJSON(t, filepath.Join(home, ".widgetlink.json"), map[string]any{
		"tui":   map[string]any{"theme": "dracula"},
		"links": map[string]any{"formId": "global-form"},
	})
	writeJSON(t, filepath.Join(wd, ".widgetlink.json"), map[string]any{
		"links":    map[string]any{"formId": "local-form", "file": "links.json"},
		"registry": map[string]any{"dedup": true, "evictAfter": "30s"},
	})

	c, err := Load(wd, true, nil)
	require.NoError(t, err)

	assert.True(t, c.Debug)
	assert.Equal(t, "dracula", c.TUI.Theme)
	assert.Equal(t, "local-form", c.Links.FormID)
	assert.Equal(t, filepath.Join(wd, "links.json"), c.Links.File)
	assert.True(t, c.Registry.Dedup)
	assert.Equal(t, 30*time.Second, c.Registry.EvictAfter)
}

func TestLoadRejectsNegativeEviction(t *testing.T) {
	isolate(t)
	wd := t.TempDir()
	writeJSON(t, filepath.Join(wd, ".widgetlink.json"), map[string]any{
		"registry": map[string]any{"evictAfter": "-1s"},
	})

	_, err := Load(wd, false, nil)
	assert.ErrorContains(t, err, "evictAfter")
}

func TestUpdateTheme(t *testing.T) {
	home := isolate(t)
	_, err := Load(t.TempDir(), false, nil)
	require.NoError(t, err)

	require.NoError(t, UpdateTheme("tokyonight"))

	assert.Equal(t, "tokyonight", Get().TUI.Theme)
	data, err := os.ReadFile(filepath.Join(home, ".widgetlink.json"))
	require.NoError(t, err)
	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "tokyonight", raw["tui"]["theme"])
}
