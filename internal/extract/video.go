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
	"time"

	"github.com/forgeworks/idea-forge/internal/model"
)

// sampleFrames decodes frames from a video at the given interval, scaled
// down for transport, and returns them as base64 data URIs in playback
// order. Requires ffmpeg on PATH.
func sampleFrames(ctx context.Context, path string, interval time.Duration, maxFrames int) ([]string, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not available: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "forge-frames-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	fps := 1.0 / interval.Seconds()
	pattern := filepath.Join(tmpDir, "frame_%03d.jpg")

	// scale keeps the longer edge at or below 512px without upscaling.
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", path,
		"-vf", fmt.Sprintf("fps=%g,scale='min(512,iw)':-2", fps),
		"-frames:v", strconv.Itoa(maxFrames),
		"-q:v", "7",
		"-y",
		pattern,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, truncate(string(output), 500))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".jpg") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	frames := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %w", name, err)
		}
		frames = append(frames, dataURI("image/jpeg", data))
	}

	return frames, nil
}

// videoProbe is the deterministic video fallback: container metadata via
// ffprobe.
func (e *Extractor) videoProbe(ctx context.Context, path string) (Result, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return Result{}, fmt.Errorf("ffprobe not available: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:format=duration",
		"-of", "csv=p=0",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	var width, height int
	var duration float64
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		fields := strings.Split(strings.TrimSpace(line), ",")
		switch len(fields) {
		case 2:
			width, _ = strconv.Atoi(fields[0])
			height, _ = strconv.Atoi(fields[1])
		case 1:
			duration, _ = strconv.ParseFloat(fields[0], 64)
		}
	}

	content := fmt.Sprintf("Video file: %s. Duration: %.1fs, Resolution: %dx%d",
		filepath.Base(path), duration, width, height)

	return Result{Content: content, Category: model.CategoryText, Source: SourceFallback}, nil
}
