package input

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/idea-forge/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadItemsCanonicalHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.csv")
	writeFile(t, path, `idea_id,idea_title,brief_summary,challenge_opportunity,novelty_benefits_risks,responsible_ai
101,AI scribe,Transcribes visits,Clinician burnout,Novel pipeline,Privacy reviewed
102,Crop monitor,Detects blight,Yield loss,Edge deployment,Bias audited
`)

	items, err := LoadItems(path, testLogger())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "101", items[0].ID)
	assert.Equal(t, "AI scribe", items[0].Title)
	assert.Equal(t, "Transcribes visits", items[0].Summary)
	assert.Equal(t, "Clinician burnout", items[0].Challenge)
	assert.Equal(t, "Novel pipeline", items[0].Novelty)
	assert.Equal(t, "Privacy reviewed", items[0].ResponsibleAI)
	assert.Equal(t, model.ItemQueued, items[0].Status)
	assert.Equal(t, "102", items[1].ID)
}

func TestLoadItemsSurveyHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.csv")
	writeFile(t, path, `Idea Id,Your idea title,Brief summary of your Idea
7,Voice kiosk,Self-service ordering
`)

	items, err := LoadItems(path, testLogger())
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "7", items[0].ID)
	assert.Equal(t, "Voice kiosk", items[0].Title)
	assert.Equal(t, "Self-service ordering", items[0].Summary)
}

func TestLoadItemsSkipsRowsWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.csv")
	writeFile(t, path, `idea_id,idea_title
1,Valid idea
,No id here
2,Another valid idea
`)

	items, err := LoadItems(path, testLogger())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
}

func TestLoadRubricWeightMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.json")
	writeFile(t, path, `{"novelty": 0.5, "feasibility": 0.3, "clarity": 0.2}`)

	rubric, err := LoadRubric(path, testLogger())
	require.NoError(t, err)

	require.Len(t, rubric.Criteria, 3)
	assert.InDelta(t, 1.0, rubric.TotalWeight(), 0.001)

	c, ok := rubric.Lookup("novelty")
	require.True(t, ok)
	assert.InDelta(t, 0.5, c.Weight, 0.001)
}

func TestLoadRubricCriterionList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.json")
	writeFile(t, path, `[
		{"name": "Novelty", "weight": 0.6, "description": "How new is it"},
		{"name": "Feasibility", "weight": 0.4}
	]`)

	rubric, err := LoadRubric(path, testLogger())
	require.NoError(t, err)

	require.Len(t, rubric.Criteria, 2)
	assert.Equal(t, "Novelty", rubric.Criteria[0].Name)
	assert.Equal(t, "How new is it", rubric.Criteria[0].Description)
}

func TestLoadRubricRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.json")
	writeFile(t, path, `"just a string"`)

	_, err := LoadRubric(path, testLogger())
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	writeFile(t, empty, `{}`)
	_, err = LoadRubric(empty, testLogger())
	assert.Error(t, err)
}

func TestAttachFiles(t *testing.T) {
	filesDir := t.TempDir()
	writeFile(t, filepath.Join(filesDir, "101", "b-notes.txt"), "notes")
	writeFile(t, filepath.Join(filesDir, "101", "a-demo.png"), "png")
	writeFile(t, filepath.Join(filesDir, "101", "ignore.xyz"), "unsupported")

	items := []*model.Item{
		{ID: "101"},
		{ID: "102"},
	}

	AttachFiles(items, filesDir, testLogger())

	require.Len(t, items[0].Files, 2)
	assert.Equal(t, "a-demo.png", filepath.Base(items[0].Files[0]))
	assert.Equal(t, "b-notes.txt", filepath.Base(items[0].Files[1]))
	assert.Empty(t, items[1].Files)
}
