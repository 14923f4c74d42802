package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"climbing-skybox/internal/layout"
	"climbing-skybox/internal/texture"
)

// Config holds all configurable paths and atlas settings for a batch run.
type Config struct {
	// Paths
	BaseDir     string `json:"base_dir"`
	FacesDir    string `json:"faces_dir"`
	TexturesDir string `json:"textures_dir"`

	// Naming
	TextureName string `json:"texture_name"`
	Format      string `json:"format"`

	// Frames
	Frames     []string `json:"frames"`
	FirstFrame int      `json:"first_frame"`
	LastFrame  int      `json:"last_frame"`
	FramePad   int      `json:"frame_pad"`

	// Atlas
	Layout  *layout.Layout `json:"layout"`
	Resume  bool           `json:"resume"`
	Workers int            `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.FacesDir != "" {
		c.FacesDir = flags.FacesDir
	}
	if flags.TexturesDir != "" {
		c.TexturesDir = flags.TexturesDir
	}
	if flags.TextureName != "" {
		c.TextureName = flags.TextureName
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if len(flags.Frames) > 0 {
		c.Frames = flags.Frames
	}
	if flags.FirstFrame > 0 {
		c.FirstFrame = flags.FirstFrame
	}
	if flags.LastFrame > 0 {
		c.LastFrame = flags.LastFrame
	}
	if flags.FramePad > 0 {
		c.FramePad = flags.FramePad
	}
	if flags.Resume {
		c.Resume = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.FacesDir == "" {
		c.FacesDir = "Output"
	}
	if c.TexturesDir == "" {
		c.TexturesDir = "Textures"
	}
	if c.BaseDir != "" {
		if !filepath.IsAbs(c.FacesDir) {
			c.FacesDir = filepath.Join(c.BaseDir, c.FacesDir)
		}
		if !filepath.IsAbs(c.TexturesDir) {
			c.TexturesDir = filepath.Join(c.BaseDir, c.TexturesDir)
		}
	}

	if c.TextureName == "" {
		c.TextureName = "Sky_MountainSide_Alt_"
	}
	if c.Format != string(texture.FormatWebP) {
		c.Format = string(texture.FormatPNG)
	}

	// Frame numbering
	if c.FramePad <= 0 {
		c.FramePad = 4
	}
	if len(c.Frames) == 0 {
		if c.FirstFrame <= 0 {
			c.FirstFrame = 1
		}
		if c.LastFrame <= 0 {
			c.LastFrame = 21
		}
		if c.LastFrame < c.FirstFrame {
			c.LastFrame = c.FirstFrame
		}
		c.Frames = FrameRange(c.FirstFrame, c.LastFrame, c.FramePad)
	}

	if c.Layout == nil {
		l := layout.Default()
		c.Layout = &l
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir     string
	FacesDir    string
	TexturesDir string
	TextureName string
	Format      string
	Frames      []string
	FirstFrame  int
	LastFrame   int
	FramePad    int
	Resume      bool
	Workers     int
}

// FrameRange returns zero-padded frame numbers first..last inclusive.
func FrameRange(first, last, pad int) []string {
	var frames []string
	for n := first; n <= last; n++ {
		frames = append(frames, fmt.Sprintf("%0*d", pad, n))
	}
	return frames
}

// OutputPath returns the atlas path for a frame.
func (c *Config) OutputPath(frame string) string {
	return filepath.Join(c.TexturesDir, c.TextureName+frame+"."+c.Format)
}
