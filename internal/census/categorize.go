package census

import (
	"path/filepath"
	"strings"
)

// CategoryOther is the label for files whose extension matches no category.
const CategoryOther = "Other"

// categoryClass pairs a label with the extensions it claims.
type categoryClass struct {
	Label string
	Exts  []string
}

// categoryTable is process-wide immutable configuration. Order matters:
// the first class claiming an extension wins, so Scripts takes ".bat" and
// ".cmd" ahead of Applications.
var categoryTable = []categoryClass{
	{Label: "Images", Exts: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp"}},
	{Label: "Videos", Exts: []string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm"}},
	{Label: "Audio", Exts: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"}},
	{Label: "Documents", Exts: []string{".txt", ".doc", ".docx", ".pdf", ".xls", ".xlsx", ".ppt", ".pptx", ".csv"}},
	{Label: "Scripts", Exts: []string{".py", ".js", ".ps1", ".sh", ".bat", ".cmd"}},
	{Label: "Archives", Exts: []string{".zip", ".rar", ".7z", ".tar", ".gz"}},
	{Label: "Applications", Exts: []string{".exe", ".msi", ".bat", ".cmd"}},
}

// extToLabel is compiled once from categoryTable for O(1) lookup, keeping
// the first label seen for an extension claimed twice.
var extToLabel = func() map[string]string {
	lookup := make(map[string]string)

	for _, class := range categoryTable {
		for _, ext := range class.Exts {
			if _, ok := lookup[ext]; !ok {
				lookup[ext] = class.Label
			}
		}
	}

	return lookup
}()

// Labels returns all category labels in table order, CategoryOther last.
func Labels() []string {
	labels := make([]string, 0, len(categoryTable)+1)
	for _, class := range categoryTable {
		labels = append(labels, class.Label)
	}

	return append(labels, CategoryOther)
}

// Categorize maps a file name to its category label via extension lookup.
// The extension is lowercased first; a missing or unknown extension yields
// CategoryOther. Pure function, always returns a label.
func Categorize(name string) string {
	ext := strings.ToLower(filepath.Ext(name))

	if label, ok := extToLabel[ext]; ok {
		return label
	}

	return CategoryOther
}
