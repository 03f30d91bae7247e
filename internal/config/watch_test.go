package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLinkFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"formId":"a","linkedFormId":"b"}`), 0o644))
	lf, err := ReadLinkFile(good)
	require.NoError(t, err)
	assert.Equal(t, LinkFile{FormID: "a", LinkedFormID: "b"}, lf)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"formId":`), 0o644))
	_, err = ReadLinkFile(broken)
	assert.ErrorIs(t, err, ErrInvalidLinks)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))
	_, err = ReadLinkFile(empty)
	assert.ErrorIs(t, err, ErrInvalidLinks)

	_, err = ReadLinkFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidLinks)
}

func TestWatchLinks(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "links.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"formId":"f1","linkedFormId":"f1"}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan LinkFile, 16)
	done := make(chan error, 1)
	go func() {
		done <- WatchLinks(ctx, path, func(lf LinkFile) { got <- lf })
	}()

	select {
	case lf := <-got:
		assert.Equal(t, "f1", lf.FormID)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for initial link file")
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"formId":"f2","linkedFormId":"f2"}`), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case lf := <-got:
			if lf.FormID == "f2" {
				cancel()
				select {
				case err := <-done:
					assert.NoError(t, err)
				case <-time.After(2 * time.Second):
					t.Fatal("watcher did not stop")
				}
				return
			}
		case <-deadline:
			cancel()
			t.Fatal("timeout waiting for updated link file")
		}
	}
}

func TestLinkFileDiff(t *testing.T) {
	before := "{\n  \"formId\": \"f1\",\n  \"linkedFormId\": \"f1\"\n}\n"
	after := strings.Replace(before, `"linkedFormId": "f1"`, `"linkedFormId": "f2"`, 1)

	d := linkFileDiff("/tmp/links.json", before, after)
	assert.Contains(t, d, "--- links.json (before)")
	assert.Contains(t, d, "+++ links.json (after)")
	assert.Contains(t, d, `-  "linkedFormId": "f1"`)
	assert.Contains(t, d, `+  "linkedFormId": "f2"`)

	assert.Empty(t, linkFileDiff("links.json", before, before))
}
