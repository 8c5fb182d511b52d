// Package results persists per-item results incrementally and publishes
// batch progress snapshots.
package results

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/forgeworks/idea-forge/internal/model"
)

// Writer appends completed items to a JSON result artifact. Every append
// rewrites the full array through a temp file and rename, so the artifact
// on disk is always valid JSON and an interrupted batch still yields a
// parseable partial result set.
type Writer struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	items []*model.Item
}

// NewWriter creates a result writer. If the target file already holds a
// valid result array from an earlier run, its entries are kept and new
// completions append after them.
func NewWriter(path string, logger *slog.Logger) (*Writer, error) {
	w := &Writer{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return nil, fmt.Errorf("failed to read existing results: %w", err)
	}

	var existing []*model.Item
	if err := json.Unmarshal(data, &existing); err != nil {
		logger.Warn("existing result file is not a valid result array, starting fresh",
			"path", path, "error", err)
		return w, nil
	}

	w.items = existing
	if len(existing) > 0 {
		logger.Info("resuming result file", "path", path, "existing_items", len(existing))
	}

	return w, nil
}

// Append adds one item and flushes the artifact.
func (w *Writer) Append(item *model.Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = append(w.items, item)
	return w.flush()
}

// Items returns a copy of the accumulated results.
func (w *Writer) Items() []*model.Item {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]*model.Item, len(w.items))
	copy(out, w.items)
	return out
}

// flush writes the full array atomically. Callers hold w.mu.
func (w *Writer) flush() error {
	data, err := json.MarshalIndent(w.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := writeFileAtomic(w.path, data); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	w.logger.Debug("results flushed", "path", w.path, "items", len(w.items))
	return nil
}

// writeFileAtomic writes via a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
