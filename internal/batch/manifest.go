package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one composed frame in the output manifest.
type ManifestEntry struct {
	Frame string `json:"frame"`
	Image string `json:"image"`
	Faces int    `json:"faces"`
}

// WriteManifest writes manifest.json listing successfully composed frames.
// Image paths are relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		img := r.Output
		if rel, err := filepath.Rel(dir, r.Output); err == nil {
			img = filepath.ToSlash(rel)
		}
		entries = append(entries, ManifestEntry{
			Frame: r.Frame,
			Image: img,
			Faces: r.Faces,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
