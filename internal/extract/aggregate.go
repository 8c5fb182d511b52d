package extract

import (
	"fmt"
	"strings"

	"github.com/forgeworks/idea-forge/internal/model"
)

// FileResult pairs an extraction result with the file it came from.
type FileResult struct {
	Name   string
	Result Result
}

// Aggregate joins per-file extraction results into a single labeled text
// block and reduces the per-file categories into one. A submission counts
// as a prototype when any of its files does.
func Aggregate(results []FileResult) (string, model.ContentCategory) {
	category := model.CategoryText

	var b strings.Builder
	for _, fr := range results {
		fmt.Fprintf(&b, "\n--- Content from %s ---\n%s\n", fr.Name, fr.Result.Content)
		if fr.Result.Category == model.CategoryPrototype {
			category = model.CategoryPrototype
		}
	}

	return b.String(), category
}
