package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extRank orders face render formats; lower wins when a stem exists twice.
var extRank = map[string]int{
	".bmp":  0,
	".tga":  1,
	".png":  2,
	".jpg":  3,
	".jpeg": 3,
	".webp": 4,
}

// Index maps lowercase face stems (e.g. "sky_back0001") to filesystem paths.
// Terragen writes BMP by default, so BMP takes priority over other formats
// sharing a stem.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir (non-recursively) for face renders.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		rank, ok := extRank[ext]
		if !ok {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		path := filepath.Join(dir, e.Name())

		existing, exists := idx.entries[stem]
		if !exists || rank < extRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
	}

	return idx
}

// FaceStem builds the renderer's file stem for a face and frame,
// e.g. FaceStem("Back", "0001") = "Sky_Back0001".
func FaceStem(face, frame string) string {
	return "Sky_" + face + frame
}

// ResolvePath returns the filesystem path for a stem, or ("", false).
func (idx *Index) ResolvePath(stem string) (string, bool) {
	path, ok := idx.entries[strings.ToLower(stem)]
	return path, ok
}

// Len returns the number of indexed renders.
func (idx *Index) Len() int {
	return len(idx.entries)
}
