package results

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forgeworks/idea-forge/internal/model"
)

// FilePublisher overwrites a small JSON progress document after every
// item completion, so a stateless poller can check on a batch without
// talking to the running process.
type FilePublisher struct {
	path   string
	logger *slog.Logger
}

// NewFilePublisher creates a progress publisher for one batch.
func NewFilePublisher(dir, batchID string, logger *slog.Logger) *FilePublisher {
	return &FilePublisher{
		path:   ProgressPath(dir, batchID),
		logger: logger,
	}
}

// ProgressPath returns the progress file location for a batch.
func ProgressPath(dir, batchID string) string {
	return filepath.Join(dir, fmt.Sprintf("progress_%s.json", batchID))
}

// Path returns the file this publisher writes.
func (p *FilePublisher) Path() string {
	return p.path
}

// Publish overwrites the progress document atomically.
func (p *FilePublisher) Publish(progress model.BatchProgress) error {
	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := writeFileAtomic(p.path, data); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}

	p.logger.Debug("progress published",
		"processed", progress.ProcessedIdeas,
		"total", progress.TotalIdeas,
		"status", progress.Status)

	return nil
}

// ReadProgress loads a batch's progress document.
func ReadProgress(path string) (model.BatchProgress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.BatchProgress{}, fmt.Errorf("failed to read progress file: %w", err)
	}

	var progress model.BatchProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return model.BatchProgress{}, fmt.Errorf("failed to parse progress file: %w", err)
	}

	return progress, nil
}
