// Package input loads the batch inputs: the submissions CSV, the rubric
// file, and each submission's attached files.
package input

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forgeworks/idea-forge/internal/extract"
	"github.com/forgeworks/idea-forge/internal/model"
)

// canonicalColumn translates the long-form survey column headers exported
// by the submission platform into item field names. Short canonical names
// are accepted too; unknown columns map to "".
func canonicalColumn(header string) string {
	switch strings.TrimSpace(header) {
	case "Idea Id", "idea_id":
		return "idea_id"
	case "Your idea title", "idea_title":
		return "idea_title"
	case "Brief summary of your Idea", "brief_summary":
		return "brief_summary"
	case "Challenge/Business opportunity being addressed and the ability to scale it across multiple customers.",
		"challenge_opportunity":
		return "challenge_opportunity"
	case "Novelty of the idea, benefits and risks.", "novelty_benefits_risks":
		return "novelty_benefits_risks"
	case "Highlight adherence to Responsible AI principles such as Security, Fairness, Privacy & Legal compliance.",
		"responsible_ai":
		return "responsible_ai"
	default:
		return ""
	}
}

// LoadItems reads the submissions CSV into items.
func LoadItems(path string, logger *slog.Logger) ([]*model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ideas file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read ideas header: %w", err)
	}

	fields := make([]string, len(header))
	for i, col := range header {
		fields[i] = canonicalColumn(col)
	}

	var items []*model.Item
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ideas row: %w", err)
		}

		item := &model.Item{Status: model.ItemQueued}
		for i, value := range row {
			if i >= len(fields) {
				break
			}
			value = strings.TrimSpace(value)
			switch fields[i] {
			case "idea_id":
				item.ID = value
			case "idea_title":
				item.Title = value
			case "brief_summary":
				item.Summary = value
			case "challenge_opportunity":
				item.Challenge = value
			case "novelty_benefits_risks":
				item.Novelty = value
			case "responsible_ai":
				item.ResponsibleAI = value
			}
		}

		if item.ID == "" {
			logger.Warn("skipping row without an idea id", "row", len(items)+1)
			continue
		}

		items = append(items, item)
	}

	logger.Info("loaded ideas", "path", path, "items", len(items))
	return items, nil
}

// LoadRubric reads the rubric JSON file. Two shapes are accepted: a flat
// name-to-weight map, and a list of {name, weight, description} objects
// when criterion order and descriptions matter.
func LoadRubric(path string, logger *slog.Logger) (model.Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Rubric{}, fmt.Errorf("failed to read rubric file: %w", err)
	}

	var rubric model.Rubric

	var asList []model.Criterion
	if err := json.Unmarshal(data, &asList); err == nil {
		rubric.Criteria = asList
	} else {
		var asMap map[string]float64
		if err := json.Unmarshal(data, &asMap); err != nil {
			return model.Rubric{}, fmt.Errorf("rubric file is neither a weight map nor a criterion list: %w", err)
		}

		names := make([]string, 0, len(asMap))
		for name := range asMap {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rubric.Criteria = append(rubric.Criteria, model.Criterion{Name: name, Weight: asMap[name]})
		}
	}

	if len(rubric.Criteria) == 0 {
		return model.Rubric{}, fmt.Errorf("rubric file contains no criteria")
	}

	if total := rubric.TotalWeight(); math.Abs(total-1.0) > 0.001 {
		logger.Warn("rubric weights do not sum to 1.0", "total_weight", total)
	}

	logger.Info("loaded rubric", "path", path, "criteria", len(rubric.Criteria))
	return rubric, nil
}

// AttachFiles scans filesDir/<idea-id>/ for each item and records the
// supported files found there, sorted by name. Items without a directory
// simply get no files.
func AttachFiles(items []*model.Item, filesDir string, logger *slog.Logger) {
	if filesDir == "" {
		return
	}

	for _, item := range items {
		dir := filepath.Join(filesDir, item.ID)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("failed to read files directory", "idea_id", item.ID, "error", err)
			}
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if !extract.SupportedFile(path) {
				logger.Debug("skipping unsupported file", "idea_id", item.ID, "file", entry.Name())
				continue
			}
			item.Files = append(item.Files, path)
		}

		sort.Strings(item.Files)
		if len(item.Files) > 0 {
			logger.Debug("attached files", "idea_id", item.ID, "files", len(item.Files))
		}
	}
}
