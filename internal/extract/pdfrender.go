package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// maxPDFPages caps how many rendered pages are sent per document.
const maxPDFPages = 5

// renderPDFPages rasterizes the first pages of a PDF and returns them as
// base64 JPEG data URIs in page order. Requires pdftoppm on PATH.
func renderPDFPages(ctx context.Context, path string, maxPages int) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "forge-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create page directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")

	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-jpeg",
		"-f", "1",
		"-l", strconv.Itoa(maxPages),
		"-scale-to", "1024",
		path,
		prefix,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, truncate(string(output), 500))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".jpg") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	pages := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", name, err)
		}
		pages = append(pages, dataURI("image/jpeg", data))
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}

	return pages, nil
}
