package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fsnotify/fsnotify"
)

// ErrInvalidLinks is returned for link files that are not valid JSON or
// name no identifier at all.
var ErrInvalidLinks = errors.New("invalid link file")

// LinkFile is the document watched through links.file. FormID is the id the
// form publishes under and LinkedFormID the id the button listens to.
type LinkFile struct {
	FormID       string `json:"formId"`
	LinkedFormID string `json:"linkedFormId"`
}

func ReadLinkFile(path string) (LinkFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LinkFile{}, fmt.Errorf("read link file: %w", err)
	}
	return parseLinkFile(path, data)
}

func parseLinkFile(path string, data []byte) (LinkFile, error) {
	var lf LinkFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return LinkFile{}, fmt.Errorf("%w: %s: %v", ErrInvalidLinks, path, err)
	}
	if lf.FormID == "" && lf.LinkedFormID == "" {
		return LinkFile{}, fmt.Errorf("%w: %s: no identifiers", ErrInvalidLinks, path)
	}
	return lf, nil
}

// WatchLinks calls fn with the current contents of path and again after
// every change, until ctx is done. The parent directory is watched so that
// editors which replace the file on save are handled. Unreadable or invalid
// contents are logged and skipped, and so are writes that leave the bytes
// unchanged.
func WatchLinks(ctx context.Context, path string, fn func(LinkFile)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var prev string
	load := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("links: ignoring link file", "path", path, "error", err)
			return
		}
		cur := string(data)
		if cur == prev {
			return
		}
		lf, err := parseLinkFile(path, data)
		if err != nil {
			slog.Warn("links: ignoring link file", "path", path, "error", err)
			return
		}
		if prev != "" {
			slog.Debug("links: changed", "path", path, "diff", linkFileDiff(path, prev, cur))
		}
		prev = cur
		slog.Debug("links: loaded", "path", path, "formId", lf.FormID, "linkedFormId", lf.LinkedFormID)
		fn(lf)
	}
	if _, err := os.Stat(path); err == nil {
		load()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				load()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("links: watcher error", "path", path, "error", err)
		}
	}
}

// linkFileDiff renders a unified diff between two revisions of a link file.
func linkFileDiff(path, before, after string) string {
	name := filepath.Base(path)
	return udiff.Unified(name+" (before)", name+" (after)", before, after)
}
